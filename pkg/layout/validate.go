package layout

import (
	"github.com/matzehuels/contentstack/pkg/errors"
)

// Validate checks a layout before it is stored. Resolve itself tolerates any
// shape; Validate rejects layouts the layout service should never send:
// components without a type, non-http feed URLs, malformed placement names
// and negative indexes or counts.
func Validate(cfg Config) error {
	for r, row := range cfg {
		if row.Width < 0 {
			return errors.New(errors.ErrCodeInvalidLayout, "row %d: negative width %d", r, row.Width)
		}
		for i, c := range row.Components {
			if err := validateComponent(c); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidLayout, err, "row %d component %d", r, i)
			}
		}
	}
	return nil
}

func validateComponent(c Component) error {
	if c.Type == "" {
		return errors.New(errors.ErrCodeInvalidLayout, "missing component type")
	}
	if c.Feed != nil {
		if err := errors.ValidateURL(c.Feed.URL); err != nil {
			return err
		}
	}
	if c.Spocs != nil && c.Spocs.Placement != nil {
		if err := errors.ValidatePlacementName(c.Spocs.Placement.Name); err != nil {
			return err
		}
	}
	if c.Placement != nil {
		if err := errors.ValidatePlacementName(c.Placement.Name); err != nil {
			return err
		}
	}
	for _, pos := range c.SpocPositions() {
		if pos.Index < 0 {
			return errors.New(errors.ErrCodeInvalidLayout, "negative spoc position %d", pos.Index)
		}
	}
	if c.Properties.Items() < 0 || c.Properties.Offset() < 0 {
		return errors.New(errors.ErrCodeInvalidLayout, "negative items or offset")
	}
	return nil
}
