package apdl

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Deck accumulates an APDL batch input file, one command per line. Numeric
// arguments are formatted with full precision; nil arguments become empty
// fields so trailing command slots can be skipped.
type Deck struct {
	lines []string
}

func NewDeck() *Deck {
	return &Deck{}
}

// Cmd appends a command with comma separated arguments, e.g.
// Cmd("MP", "EX", 1, 962.8) emits "MP,EX,1,962.8".
func (d *Deck) Cmd(name string, args ...interface{}) {
	fields := make([]string, 1, len(args)+1)
	fields[0] = name
	for _, a := range args {
		fields = append(fields, formatArg(a))
	}
	// drop trailing empty fields
	for len(fields) > 1 && fields[len(fields)-1] == "" {
		fields = fields[:len(fields)-1]
	}
	d.lines = append(d.lines, strings.Join(fields, ","))
}

// Raw appends a line verbatim, for parameter assignments and *VWRITE
// format records that are not comma separated commands.
func (d *Deck) Raw(line string) {
	d.lines = append(d.lines, line)
}

// Comment appends an APDL comment line.
func (d *Deck) Comment(text string) {
	d.lines = append(d.lines, "! "+text)
}

func (d *Deck) Len() int {
	return len(d.lines)
}

func (d *Deck) String() string {
	return strings.Join(d.lines, "\n") + "\n"
}

func (d *Deck) WriteFile(path string) error {
	if err := os.WriteFile(path, []byte(d.String()), 0644); err != nil {
		return errors.Wrap(err, "write input deck")
	}
	return nil
}

func formatArg(a interface{}) string {
	switch v := a.(type) {
	case nil:
		return ""
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
