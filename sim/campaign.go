package sim

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/deploylab/trussim/apdl"
	"github.com/deploylab/trussim/geometry"
	"github.com/deploylab/trussim/solver"
)

// CampaignFolder pairs a model directory with its mechanism family.
type CampaignFolder struct {
	Path     string `yaml:"Path"`
	MechType string `yaml:"MechType"`
}

// Campaign is a YAML-described batch of simulations: every model file in
// every folder, under every listed boundary condition. Shipped campaigns
// reproduce the paper's deployment test, aspect-ratio scaling and
// extension-ratio sweep result sets.
type Campaign struct {
	Title              string           `yaml:"Title"`
	Folders            []CampaignFolder `yaml:"Folders"`
	BoundaryConditions []string         `yaml:"BoundaryConditions"`

	PercentDisplacement float64 `yaml:"PercentDisplacement"`
	Substeps            int     `yaml:"Substeps"`
	NumElements         int     `yaml:"NumElements"`
	NumCrossElements    int     `yaml:"NumCrossElements"`
	ElementType         string  `yaml:"ElementType"`
	Scale               float64 `yaml:"Scale"`
	CrossScale          float64 `yaml:"CrossScale"`
	E                   float64 `yaml:"E"`
	Warp                bool    `yaml:"Warp"`

	// TorsionFixedDisplacement pins the torsion load case to an absolute
	// twist instead of a percent displacement (the sweep uses 0.0628 rad).
	TorsionFixedDisplacement *float64 `yaml:"TorsionFixedDisplacement"`
}

func (c *Campaign) Parse(data []byte) error {
	if err := yaml.Unmarshal(data, c); err != nil {
		return errors.Wrap(err, "parse campaign")
	}
	if len(c.Folders) == 0 {
		return errors.New("campaign lists no folders")
	}
	if len(c.BoundaryConditions) == 0 {
		return errors.New("campaign lists no boundary conditions")
	}
	return nil
}

func (c *Campaign) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", c.Title)
	fmt.Printf("%8.5f\t\t= PercentDisplacement\n", c.PercentDisplacement)
	fmt.Printf("[%d]\t\t\t= Substeps\n", c.Substeps)
	fmt.Printf("[%s]\t\t= ElementType\n", c.ElementType)
	fmt.Printf("%8.5f\t\t= Scale\n", c.Scale)
	fmt.Printf("%8.5f\t\t= CrossScale\n", c.CrossScale)
	fmt.Printf("%8.5f\t\t= E\n", c.E)
	bcs := append([]string(nil), c.BoundaryConditions...)
	sort.Strings(bcs)
	fmt.Printf("BCs = %v\n", bcs)
	for _, f := range c.Folders {
		fmt.Printf("Folder[%s] = %s\n", f.MechType, f.Path)
	}
}

// params translates the campaign defaults into single-run parameters,
// filling holes with the tool defaults. A zero or empty campaign field
// means "unset": a campaign cannot override a parameter to zero. A field
// that ever needs a meaningful zero must become a pointer like
// TorsionFixedDisplacement.
func (c *Campaign) params() Params {
	p := DefaultParams()
	if c.PercentDisplacement != 0 {
		p.PercentDisplacement = c.PercentDisplacement
	}
	if c.Substeps != 0 {
		p.Substeps = c.Substeps
	}
	if c.NumElements != 0 {
		p.NumElements = c.NumElements
	}
	if c.NumCrossElements != 0 {
		p.NumCrossElements = c.NumCrossElements
	}
	if c.ElementType != "" {
		p.ElementType = c.ElementType
	}
	if c.Scale != 0 {
		p.Scale = c.Scale
	}
	if c.CrossScale != 0 {
		p.CrossScale = c.CrossScale
	}
	if c.E != 0 {
		p.E = c.E
	}
	p.Warp = c.Warp
	return p
}

// RunCampaign sweeps every model under every boundary condition. Kresling
// and HERDS models get the nodal boundary variants automatically. A model
// that fails or times out is logged and skipped; the campaign carries on.
// Returns the number of runs that converged and the number attempted.
func RunCampaign(ctx context.Context, cfg solver.Config, paths Paths, c *Campaign) (converged, attempted int, err error) {
	for _, folder := range c.Folders {
		mech, err := geometry.NewMechType(folder.MechType)
		if err != nil {
			return converged, attempted, err
		}

		entries, err := os.ReadDir(folder.Path)
		if err != nil {
			return converged, attempted, errors.Wrapf(err, "list models in %s", folder.Path)
		}

		for _, e := range entries {
			if e.IsDir() || strings.Contains(e.Name(), "mass") {
				continue
			}
			for _, bcName := range c.BoundaryConditions {
				if err := ctx.Err(); err != nil {
					return converged, attempted, err
				}

				bc, err := campaignBoundary(bcName, mech)
				if err != nil {
					return converged, attempted, err
				}

				p := c.params()
				p.ModelFile = e.Name()
				p.FolderPath = folder.Path
				p.Mech = mech
				p.Boundary = bc
				if bc.Type == apdl.Torsion && c.TorsionFixedDisplacement != nil {
					fixed := *c.TorsionFixedDisplacement
					p.FixedDisplacement = &fixed
				}

				attempted++
				fields := log.Fields{"model": e.Name(), "bc": bc.Name(), "mech": mech}
				ok, err := Run(ctx, cfg, paths, p)
				switch {
				case err != nil:
					log.WithFields(fields).WithError(err).Error("run failed")
				case !ok:
					log.WithFields(fields).Warn("run did not converge")
				default:
					converged++
					log.WithFields(fields).Info("run converged")
				}
			}
		}
	}
	return converged, attempted, nil
}

// campaignBoundary resolves a campaign boundary name for a mechanism:
// tube-like families always use the nodal variants.
func campaignBoundary(name string, mech geometry.MechType) (apdl.Boundary, error) {
	bc, err := apdl.ParseBoundary(name)
	if err != nil {
		return apdl.Boundary{}, err
	}
	if mech == geometry.Kresling || mech == geometry.HERDS {
		bc.Nodal = true
	}
	return bc, nil
}

// LoadCampaign reads and validates a campaign YAML file.
func LoadCampaign(path string) (*Campaign, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read campaign file")
	}
	c := &Campaign{}
	if err := c.Parse(data); err != nil {
		return nil, errors.Wrapf(err, "campaign %s", path)
	}
	return c, nil
}
