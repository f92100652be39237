package services

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/l1t48/Test-backend/internal/common"
)

// FieldErrors maps an input field name to the rule it broke. It matches
// common.ErrorValidation under errors.Is.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+f[k])
	}
	return "validation error: " + strings.Join(parts, ", ")
}

func (f FieldErrors) Is(target error) bool {
	return target == common.ErrorValidation
}

func (f FieldErrors) errOrNil() error {
	if len(f) == 0 {
		return nil
	}
	return f
}

func (f FieldErrors) required(field, v string) {
	if v == "" {
		f[field] = "required"
	}
}

func (f FieldErrors) max(field, v string, n int) {
	if utf8.RuneCountInString(v) > n {
		f[field] = "max"
	}
}

// optional returns nil for a blank string, a pointer to the trimmed value
// otherwise.
func optional(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
