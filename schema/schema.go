package schema

import "github.com/spektr-org/lens/query"

// ============================================================================
// SCHEMA — Table metadata the description layer resolves against
// ============================================================================
// Caller-provided and read-only: display names, field definitions, and the
// metric/segment lookup tables. The library never mutates a Table and may
// share one across any number of concurrent description calls.
// ============================================================================

// Table is the metadata for one table.
type Table struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	DisplayName string    `json:"display_name"`
	Fields      []*Field  `json:"fields"`
	Metrics     []Metric  `json:"metrics,omitempty"`
	Segments    []Segment `json:"segments,omitempty"`
}

// FieldKind is a field's coarse value type.
type FieldKind string

const (
	KindText       FieldKind = "text"
	KindNumber     FieldKind = "number"
	KindTemporal   FieldKind = "temporal"
	KindCoordinate FieldKind = "coordinate"
)

// Field is the metadata for one column.
type Field struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	DisplayName string    `json:"display_name"`
	Kind        FieldKind `json:"kind"`

	// Foreign key: TargetID names the target table, Target is wired in by
	// the caller once the target's metadata is loaded. A nil Target leaves
	// FK references unresolvable, which degrades to a placeholder label.
	TargetID int64  `json:"target_id,omitempty"`
	Target   *Table `json:"-"`

	// Preferred numeric bucketing for distribution drills.
	DefaultBinning *query.Binning `json:"default_binning,omitempty"`
}

// Metric is a named, reusable aggregation defined in metadata.
type Metric struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Segment is a named, reusable filter predicate defined in metadata.
type Segment struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Field looks up a column by id.
func (t *Table) Field(id int64) (*Field, bool) {
	if t == nil {
		return nil, false
	}
	for _, f := range t.Fields {
		if f.ID == id {
			return f, true
		}
	}
	return nil, false
}

// Metric looks up a metric by id.
func (t *Table) Metric(id int64) (Metric, bool) {
	if t == nil {
		return Metric{}, false
	}
	for _, m := range t.Metrics {
		if m.ID == id {
			return m, true
		}
	}
	return Metric{}, false
}

// Segment looks up a segment by id.
func (t *Table) Segment(id int64) (Segment, bool) {
	if t == nil {
		return Segment{}, false
	}
	for _, s := range t.Segments {
		if s.ID == id {
			return s, true
		}
	}
	return Segment{}, false
}

// ============================================================================
// RESULT COLUMNS — What a rendered cell knows about itself
// ============================================================================

// BucketRange is the [Min, Max) value range of one histogram bin.
type BucketRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Column is the result-column metadata a click handler holds when the user
// interacts with a rendered value. It carries enough to rebuild filters and
// breakouts without re-fetching the schema.
type Column struct {
	Ref  query.FieldRef
	Kind FieldKind

	// Unit is the temporal granularity the column is currently displayed
	// at; empty for non-temporal or unbucketed columns.
	Unit query.Unit

	// Bucket is the displayed bin's value range for histogram columns.
	Bucket *BucketRange

	// DefaultBinning overrides the field's preferred bucketing for
	// distribution drills.
	DefaultBinning *query.Binning
}
