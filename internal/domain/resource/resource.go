// Package resource describes the CRUD families as data. Every family shares
// one repository and one handler; the descriptor carries everything that
// differs between them: table, owner column, field list, defaults, ordering.
package resource

import "time"

type Field struct {
	// Column is the storage column name; it is also the external JSON key
	// unless the handler is given a rename view.
	Column string

	// Int marks columns stored as integers (progress, weekly_repeat).
	Int bool

	// Required fields must be present and non-empty on Create.
	Required bool

	// Default supplies the value when the caller omits the field. A nil
	// Default means the column is stored as NULL when omitted.
	Default func() any

	// JSONText marks text columns that must hold valid JSON (colleagues).
	JSONText bool

	// Immutable fields are set at create and never touched by Update.
	Immutable bool
}

type Descriptor struct {
	// Name is the route family, e.g. "ideas"; routes mount at "/"+Name.
	Name string

	Table       string
	OwnerColumn string

	Fields []Field

	// OrderBy is the List-by-owner ordering clause, e.g. "created_date DESC".
	OrderBy string

	// ListAliases are extra GET list path prefixes serving identical reads,
	// e.g. "/career" for career_goals.
	ListAliases []string
}

// Columns returns the field column names in declaration order.
func (d Descriptor) Columns() []string {
	cols := make([]string, len(d.Fields))
	for i, f := range d.Fields {
		cols[i] = f.Column
	}
	return cols
}

// Now is the default creation timestamp. Stored as text so both backends
// round-trip it unchanged.
func Now() any {
	return time.Now().UTC().Format(time.RFC3339)
}

func Literal(v any) func() any {
	return func() any { return v }
}
