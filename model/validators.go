// SPDX-License-Identifier: MIT
// Package model: numeric validators.
//
// Purpose:
//   - One place for the "no NaN in messages, adjoints or beliefs" policy.
//   - Return sentinel errors tagged with the validator and caller context.

package model

import "fmt"

// ValidateNotNaN returns ErrNaN, tagged with what, when t holds a NaN entry.
func ValidateNotNaN(what string, t *VarTensor) error {
	if t == nil {
		return nil
	}
	for c, v := range t.values {
		if t.s.IsNaN(v) {
			return fmt.Errorf("ValidateNotNaN: %s at config %d: %w", what, c, ErrNaN)
		}
	}

	return nil
}

// ValidateAllNotNaN applies ValidateNotNaN to every tensor; nil entries are skipped.
func ValidateAllNotNaN(what string, ts []*VarTensor) error {
	for i, t := range ts {
		if err := ValidateNotNaN(fmt.Sprintf("%s[%d]", what, i), t); err != nil {
			return err
		}
	}

	return nil
}
