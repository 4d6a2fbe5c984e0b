package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"

	"github.com/spf13/cobra"

	mapimage "github.com/jmylchreest/colourfactory/internal/image"
	"github.com/jmylchreest/colourfactory/internal/reserved"
)

type reservedOptions struct {
	*rootOptions
	path   string
	images []string
	checks []string
}

func newReservedCmd(root *rootOptions) *cobra.Command {
	o := &reservedOptions{rootOptions: root}

	cmd := &cobra.Command{
		Use:   "reserved",
		Short: "Inspect the reserved colour list",
		Long: `Load the reserved colour list, report how many colours it reserves and
optionally check whether specific colours are reserved.

Colours are matched the same way generation matches them: by the red, green
and blue values written one after another, so 1,10,0 and 11,0,0 are the same
entry.`,
		Example: `  # Count reserved colours
  colourfactory reserved -r map/definition.csv

  # Check colours
  colourfactory reserved --check 10,20,30 --check 11,0,0

  # Include colours already painted on the province map
  colourfactory reserved -r map/definition.csv --reserved-image map/provinces.bmp`,
		Args: cobra.NoArgs,
		RunE: o.run,
	}

	cmd.Flags().StringVarP(&o.path, "reserved", "r", "", "reserved colour list (default from config: definition.csv)")
	cmd.Flags().StringArrayVar(&o.images, "reserved-image", nil, "also reserve every colour in this BMP/PNG map image (repeatable)")
	cmd.Flags().StringArrayVar(&o.checks, "check", nil, "colour to check as r,g,b (repeatable)")

	return cmd
}

func (o *reservedOptions) run(cmd *cobra.Command, _ []string) error {
	path := o.path
	if path == "" {
		path = o.cfg.ReservedPath
	}

	set, err := o.loadReserved(cmd, path, o.images)
	if err != nil {
		return err
	}

	if len(o.checks) == 0 {
		return nil
	}

	table := NewTable("Colour", "Hex", "Key", "Reserved")
	for _, check := range o.checks {
		c, err := parseRGB(check)
		if err != nil {
			return err
		}
		table.AddRow(c.String(), c.Hex(), c.Key(), strconv.FormatBool(set.ContainsRGB(c)))
	}
	o.printf(cmd, "\n%s", table.Render())

	return nil
}

// loadReserved loads the reserved list at path. A missing list is not fatal:
// it is reported and an empty set is returned so every colour is eligible.
// Colours found in any of the map images are reserved as well.
func (o *rootOptions) loadReserved(cmd *cobra.Command, path string, images []string) (*reserved.Set, error) {
	set, err := reserved.Load(path)
	switch {
	case err == nil:
		o.printf(cmd, "✓ Loaded %d reserved colours from %s\n", set.Len(), path)
		o.logger.Debug("reserved list loaded", "path", path, "entries", set.Len())
	case errors.Is(err, fs.ErrNotExist):
		o.warnf(cmd, "Reserved list %s not found; every colour is eligible\n", path)
		o.logger.Warn("reserved list missing, continuing with an empty set", "path", path)
		set = reserved.Empty()
	default:
		return nil, err
	}

	loader := mapimage.NewFileLoader()
	for _, imagePath := range images {
		img, err := loader.Load(imagePath)
		if err != nil {
			return nil, fmt.Errorf("failed to load reserved image: %w", err)
		}
		added := set.AddColours(mapimage.Colours(img))
		o.printf(cmd, "✓ Reserved %d more colours from %s\n", added, imagePath)
		o.logger.Debug("reserved image loaded", "path", imagePath, "new_entries", added)
	}

	return set, nil
}
