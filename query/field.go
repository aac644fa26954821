package query

import "fmt"

// ============================================================================
// FIELD REFERENCES — Tagged variants identifying a column
// ============================================================================
// A reference names a column directly, through a foreign-key hop, wrapped
// with a temporal unit or binning strategy, or points at an aggregation
// clause (order-by only). References are values: wrapping or rewrapping
// always builds a new reference.
// ============================================================================

// FieldRef identifies a column in a query clause.
type FieldRef interface {
	fieldRef()
}

// FieldID references a column of the query's own table by id.
type FieldID struct {
	ID int64
}

// ForeignField references a column reached through a foreign-key field.
// Via is the FK field on the current table; Field resolves against the
// FK's target table.
type ForeignField struct {
	Via   int64
	Field FieldRef
}

// TemporalField wraps a reference with a time-bucketing unit.
type TemporalField struct {
	Field FieldRef
	Unit  Unit
}

// BinnedField wraps a reference with a numeric binning strategy.
type BinnedField struct {
	Field    FieldRef
	Strategy Binning
}

// AggregationRef points at an aggregation clause by position.
// Only meaningful as an order-by key.
type AggregationRef struct {
	Index int
}

func (FieldID) fieldRef()        {}
func (ForeignField) fieldRef()   {}
func (TemporalField) fieldRef()  {}
func (BinnedField) fieldRef()    {}
func (AggregationRef) fieldRef() {}

// Binning describes how a numeric column is bucketed for display.
type Binning struct {
	Strategy string  `json:"strategy"` // "default", "bin-width", "num-bins"
	BinWidth float64 `json:"bin-width,omitempty"`
	NumBins  int     `json:"num-bins,omitempty"`
}

// DefaultBinning is the auto-chosen numeric bucketing.
var DefaultBinning = Binning{Strategy: "default"}

// BaseOf strips temporal and binning wrappers down to the identity-bearing
// reference (FieldID, ForeignField, or AggregationRef).
func BaseOf(ref FieldRef) FieldRef {
	for {
		switch r := ref.(type) {
		case TemporalField:
			ref = r.Field
		case BinnedField:
			ref = r.Field
		default:
			return ref
		}
	}
}

// Bucket wraps the base of ref with a temporal unit, replacing any existing
// temporal or binning wrapper.
func Bucket(ref FieldRef, unit Unit) FieldRef {
	return TemporalField{Field: BaseOf(ref), Unit: unit}
}

// Bin wraps the base of ref with a binning strategy, replacing any existing
// wrapper.
func Bin(ref FieldRef, strategy Binning) FieldRef {
	return BinnedField{Field: BaseOf(ref), Strategy: strategy}
}

// UnitOf returns the temporal unit carried by ref's outermost temporal
// wrapper, or "" if unbucketed.
func UnitOf(ref FieldRef) Unit {
	if t, ok := ref.(TemporalField); ok {
		return t.Unit
	}
	return ""
}

// SameDimension reports whether two references target the same underlying
// column, ignoring temporal-unit and binning wrappers. This is the identity
// rule behind add-or-replace semantics.
func SameDimension(a, b FieldRef) bool {
	if a == nil || b == nil {
		return false
	}
	return dimensionKey(BaseOf(a)) == dimensionKey(BaseOf(b))
}

func dimensionKey(ref FieldRef) string {
	switch r := ref.(type) {
	case FieldID:
		return fmt.Sprintf("field:%d", r.ID)
	case ForeignField:
		return fmt.Sprintf("fk:%d/%s", r.Via, dimensionKey(BaseOf(r.Field)))
	case AggregationRef:
		return fmt.Sprintf("agg:%d", r.Index)
	default:
		return ""
	}
}
