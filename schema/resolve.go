package schema

import (
	"errors"
	"fmt"

	"github.com/spektr-org/lens/query"
)

// ============================================================================
// RESOLVER — Field reference → field definition
// ============================================================================
// Walks a reference against table metadata: direct ids, FK hops into target
// tables, temporal/binning wrappers. A failed resolution is an error the
// caller turns into a placeholder label; it must never abort a whole
// description.
// ============================================================================

// ErrNotFound reports a reference that does not resolve against the table.
var ErrNotFound = errors.New("not found")

// Resolution is the outcome of resolving a field reference.
type Resolution struct {
	// Field is the terminal field definition.
	Field *Field

	// Path lists the FK fields traversed to reach Field, outermost first.
	// Empty for same-table references.
	Path []*Field

	// Unit is the temporal unit from the outermost temporal wrapper, or ""
	// when the reference is unbucketed.
	Unit query.Unit
}

// Resolve resolves ref against table. Aggregation references do not name a
// column and always fail here; the describer handles them before resolving.
func Resolve(table *Table, ref query.FieldRef) (Resolution, error) {
	switch r := ref.(type) {
	case nil:
		return Resolution{}, fmt.Errorf("nil field reference: %w", ErrNotFound)
	case query.FieldID:
		if table == nil {
			return Resolution{}, fmt.Errorf("field %d: no table metadata: %w", r.ID, ErrNotFound)
		}
		f, ok := table.Field(r.ID)
		if !ok {
			return Resolution{}, fmt.Errorf("field %d in table %q: %w", r.ID, table.Name, ErrNotFound)
		}
		return Resolution{Field: f}, nil
	case query.ForeignField:
		if table == nil {
			return Resolution{}, fmt.Errorf("fk field %d: no table metadata: %w", r.Via, ErrNotFound)
		}
		fk, ok := table.Field(r.Via)
		if !ok {
			return Resolution{}, fmt.Errorf("fk field %d in table %q: %w", r.Via, table.Name, ErrNotFound)
		}
		if fk.Target == nil {
			return Resolution{}, fmt.Errorf("fk field %q: target table not loaded: %w", fk.Name, ErrNotFound)
		}
		inner, err := Resolve(fk.Target, r.Field)
		if err != nil {
			return Resolution{}, err
		}
		inner.Path = append([]*Field{fk}, inner.Path...)
		return inner, nil
	case query.TemporalField:
		inner, err := Resolve(table, r.Field)
		if err != nil {
			return Resolution{}, err
		}
		// Outermost wrapper wins when units are nested.
		inner.Unit = r.Unit
		return inner, nil
	case query.BinnedField:
		return Resolve(table, r.Field)
	case query.AggregationRef:
		return Resolution{}, fmt.Errorf("aggregation reference %d is not a column: %w", r.Index, ErrNotFound)
	}
	return Resolution{}, fmt.Errorf("unhandled field reference %T: %w", ref, ErrNotFound)
}
