package query

// ============================================================================
// QUERY — Structured query model
// ============================================================================
// A Query is either structured (clause groups over field references) or
// native (opaque text the library never inspects). Drill operations accept
// Query and treat anything non-structured as "not applicable".
//
// All values here are immutable by convention: operations that change a
// query work on a Clone and return the copy.
// ============================================================================

// Query is a saved question's dataset query.
type Query interface {
	isQuery()
}

// StructuredQuery is the clause-group representation of a query.
// It marshals to the tagged-array wire format; see json.go.
type StructuredQuery struct {
	Aggregations []Aggregation
	Breakouts    []FieldRef
	Filter       Filter // nil = no filter
	OrderBys     []OrderBy
	Limit        *int
}

// NativeQuery is an opaque query in the warehouse's own language.
// The library never parses it; it exists so callers can pass any saved
// question through drill operations and get a clean no-op for native ones.
type NativeQuery struct {
	Query string `json:"query"`
}

func (*StructuredQuery) isQuery() {}
func (*NativeQuery) isQuery()     {}

// Direction orders an OrderBy clause.
type Direction string

const (
	Ascending  Direction = "ascending"
	Descending Direction = "descending"
)

// OrderBy is one (direction, field) sort pair.
type OrderBy struct {
	Direction Direction
	Field     FieldRef
}

// Clone returns a deep-enough copy: clause slices are fresh, clause values
// are immutable and shared. Mutating the clone's clause groups never touches
// the original.
func (q *StructuredQuery) Clone() *StructuredQuery {
	if q == nil {
		return nil
	}
	out := &StructuredQuery{
		Filter: q.Filter,
	}
	if q.Aggregations != nil {
		out.Aggregations = append([]Aggregation(nil), q.Aggregations...)
	}
	if q.Breakouts != nil {
		out.Breakouts = append([]FieldRef(nil), q.Breakouts...)
	}
	if q.OrderBys != nil {
		out.OrderBys = append([]OrderBy(nil), q.OrderBys...)
	}
	if q.Limit != nil {
		n := *q.Limit
		out.Limit = &n
	}
	return out
}

// LimitOf wraps a row limit for StructuredQuery.Limit.
func LimitOf(n int) *int {
	return &n
}
