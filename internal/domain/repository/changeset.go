package repository

import (
	"slices"
	"strings"

	"scribe/internal/errors"
)

// ErrInvalidChangeset is returned when a changeset names a column twice or a
// column the target table does not allow.
var ErrInvalidChangeset = errors.New("invalid changeset")

// Assignment sets Column to Value.
type Assignment struct {
	Column string
	Value  any
}

// Changeset is an ordered list of column assignments for a partial update.
// Only fields present in a request are added.
type Changeset []Assignment

// Set appends an assignment.
func (c Changeset) Set(column string, value any) Changeset {
	return append(c, Assignment{Column: column, Value: value})
}

// IsEmpty reports whether there is nothing to update.
func (c Changeset) IsEmpty() bool {
	return len(c) == 0
}

// Has reports whether column is assigned.
func (c Changeset) Has(column string) bool {
	return slices.ContainsFunc(c, func(a Assignment) bool { return a.Column == column })
}

// Columns lists the assigned columns in order.
func (c Changeset) Columns() []string {
	columns := make([]string, len(c))
	for i, a := range c {
		columns[i] = a.Column
	}

	return columns
}

// Validate checks every column is in allowed and appears once.
func (c Changeset) Validate(allowed ...string) error {
	seen := make(map[string]struct{}, len(c))
	for _, a := range c {
		if !slices.Contains(allowed, a.Column) {
			return errors.Wrapf(ErrInvalidChangeset, "column %q is not updatable", a.Column)
		}
		if _, dup := seen[a.Column]; dup {
			return errors.Wrapf(ErrInvalidChangeset, "column %q assigned twice", a.Column)
		}
		seen[a.Column] = struct{}{}
	}

	return nil
}

// SetClause renders "col = ?, col = ?" with one placeholder per assignment and
// returns the bound values in the same order.
func (c Changeset) SetClause() (string, []any) {
	parts := make([]string, len(c))
	values := make([]any, len(c))
	for i, a := range c {
		parts[i] = a.Column + " = ?"
		values[i] = a.Value
	}

	return strings.Join(parts, ", "), values
}
