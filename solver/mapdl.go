package solver

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/deploylab/trussim/apdl"
)

// Config locates and sizes the external MAPDL installation. The solver is
// always driven in batch mode: the generated deck goes in, a text log and
// the reactions file come out.
type Config struct {
	Exe     string        // solver executable, e.g. /usr/ansys_inc/v231/ansys/bin/ansys231
	NProc   int           // -np processor count
	Timeout time.Duration // wall clock limit per run
}

// ErrTimeout marks a run killed by the wall clock limit. Batch campaigns
// treat it as a per-model failure, not a fatal error.
var ErrTimeout = errors.New("solver run timed out")

const (
	deckFileName   = "solve.inp"
	outputFileName = "solve.out"
	runLogFileName = "run.log"
)

// Run is one solver invocation rooted in its own directory under logRoot.
// MAPDL scratch files, the deck, the solver transcript and the reactions
// file all land there.
type Run struct {
	Name string
	Dir  string
	Log  *log.Logger

	logFile *os.File
}

// NewRun creates the run directory log/<timestamp>_<folder>_<bc>_<model>
// and opens a structured run.log inside it.
func NewRun(logRoot, folderName, modelName, bcName string) (*Run, error) {
	ts := time.Now().Format("20060102_1504")
	name := ts + "_" + folderName + "_" + bcName + "_" + modelName
	dir := filepath.Join(logRoot, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(err, "create run directory")
	}

	f, err := os.Create(filepath.Join(dir, runLogFileName))
	if err != nil {
		return nil, errors.Wrap(err, "create run log")
	}
	lg := log.New()
	lg.SetOutput(f)
	lg.SetLevel(log.DebugLevel)
	lg.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	return &Run{Name: name, Dir: dir, Log: lg, logFile: f}, nil
}

func (r *Run) DeckPath() string   { return filepath.Join(r.Dir, deckFileName) }
func (r *Run) OutputPath() string { return filepath.Join(r.Dir, outputFileName) }

func (r *Run) ReactionsPath() string {
	return filepath.Join(r.Dir, apdl.ReactionsFileName+"."+apdl.ReactionsFileExt)
}

// Close releases the run log file handle.
func (r *Run) Close() error {
	if r.logFile == nil {
		return nil
	}
	err := r.logFile.Close()
	r.logFile = nil
	return err
}

// Execute launches the solver on the run's deck and waits for it, subject
// to the configured timeout. The solver runs with the run directory as its
// working directory so scratch and result files stay contained.
func (cfg Config) Execute(ctx context.Context, r *Run) error {
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	args := []string{"-b", "-np", strconv.Itoa(cfg.NProc), "-i", deckFileName, "-o", outputFileName}
	r.Log.WithFields(log.Fields{"exe": cfg.Exe, "args": args, "dir": r.Dir}).Info("launching solver")

	cmd := exec.CommandContext(ctx, cfg.Exe, args...)
	cmd.Dir = r.Dir

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	if ctx.Err() == context.DeadlineExceeded {
		r.Log.WithField("elapsed", elapsed).Warn("solver run timed out")
		return errors.Wrapf(ErrTimeout, "after %s", elapsed)
	}
	if err != nil {
		r.Log.WithError(err).Error("solver exited with error")
		return errors.Wrap(err, "run solver")
	}
	r.Log.WithField("elapsed", elapsed).Info("solver finished")
	return nil
}

// Cleanup removes solver scratch files from the run directory, keeping the
// run log, the result database and any .cdb archives.
func (r *Run) Cleanup() error {
	entries, err := os.ReadDir(r.Dir)
	if err != nil {
		return errors.Wrap(err, "read run directory")
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if keepFile(e.Name()) {
			continue
		}
		if err := os.Remove(filepath.Join(r.Dir, e.Name())); err != nil {
			return errors.Wrapf(err, "remove %s", e.Name())
		}
	}
	return nil
}

func keepFile(name string) bool {
	switch name {
	case runLogFileName, "file.rst":
		return true
	}
	return filepath.Ext(name) == ".cdb"
}
