package types

import (
	apierrors "github.com/rosette-api/rosette-go/client/internal/errors"
)

// Validate checks params against the descriptor's required and exclusive key
// groups. It returns a *ValidationError listing every problem found.
func Validate(d Descriptor, params *Parameters) error {
	var missing, conflicting []string
	for _, group := range d.Required {
		if len(group) == 0 {
			continue
		}
		satisfied := false
		for _, key := range group {
			if params.Has(key) {
				satisfied = true
				break
			}
		}
		if !satisfied {
			missing = append(missing, group[0])
		}
	}
	for _, group := range d.Exclusive {
		var present []string
		for _, key := range group {
			if params.Has(key) {
				present = append(present, key)
			}
		}
		if len(present) > 1 {
			conflicting = append(conflicting, present...)
		}
	}
	if len(missing) == 0 && len(conflicting) == 0 {
		return nil
	}
	return &apierrors.ValidationError{
		Operation:   string(d.Name),
		Missing:     missing,
		Conflicting: conflicting,
	}
}
