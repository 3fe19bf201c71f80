package models

import (
	"strings"

	"github.com/localnerve/shopdb/internal/types"
)

// Patch is a partial representation of T. Apply merges only the fields present
// over an existing row, so an update never clobbers what the client left out.
// Validate checks value constraints; with create set it also reports the first
// required field that is absent.
type Patch[T any] interface {
	Apply(row *T)
	Validate(create bool) error
}

func blank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

func mergeString(dst *string, src *string) {
	if !blank(src) {
		*dst = *src
	}
}

func mergeInt64(dst *int64, src *types.FlexInt64) {
	if src != nil {
		*dst = src.Int64()
	}
}

// firstMissing returns a MissingField error for the first name whose
// presence flag is false, walking in declaration order.
func firstMissing(fields ...fieldPresence) error {
	for _, f := range fields {
		if !f.present {
			return types.MissingField(f.name)
		}
	}
	return nil
}

type fieldPresence struct {
	name    string
	present bool
}

func field(name string, present bool) fieldPresence {
	return fieldPresence{name: name, present: present}
}
