package document

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedTemplate = errors.New("malformed template")
	ErrDuplicateID       = errors.New("duplicate component id")
	ErrEmptyID           = errors.New("component id is empty")
	ErrUnknownType       = errors.New("unknown component type")
	ErrLeafChildren      = errors.New("leaf component has children")
	ErrColumnMismatch    = errors.New("grid column count does not match its children")
	ErrInvalidColumn     = errors.New("grid column is not a container")
	ErrUnencodableProps  = errors.New("component props cannot be encoded")
)

// Validate checks the structural invariants of a tree received from outside
// the editor. All violations are reported, joined into a single error.
func Validate(nodes []Component) error {
	seen := make(map[string]struct{})
	var errs []error
	Walk(nodes, func(c Component, _ int) bool {
		if c.ID == "" {
			errs = append(errs, fmt.Errorf("%w (type %q)", ErrEmptyID, c.Type))
		} else if _, dup := seen[c.ID]; dup {
			errs = append(errs, fmt.Errorf("%w: %s", ErrDuplicateID, c.ID))
		}
		seen[c.ID] = struct{}{}

		if !c.Type.Valid() {
			errs = append(errs, fmt.Errorf("%w: %q (id %s)", ErrUnknownType, c.Type, c.ID))
		}
		if !c.Type.IsContainer() && len(c.Children) > 0 {
			errs = append(errs, fmt.Errorf("%w: %s", ErrLeafChildren, c.ID))
		}
		if c.Type == TypeGrid {
			if n := c.Props.Int(PropColumns, len(c.Children)); n != len(c.Children) {
				errs = append(errs, fmt.Errorf("%w: %s has %d columns, %d children", ErrColumnMismatch, c.ID, n, len(c.Children)))
			}
			for _, col := range c.Children {
				if col.Type != TypeContainer {
					errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidColumn, col.ID))
				}
			}
		}
		return true
	})
	return errors.Join(errs...)
}
