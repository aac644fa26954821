package query

// ============================================================================
// FILTERS — Boolean expression tree over comparison clauses
// ============================================================================
// A filter is a tree: and/or connectives hold operand lists, leaves are
// comparisons, segment references, relative date ranges, or coordinate
// boxes. The description generator flattens the outermost connective into a
// conjunction list; drill operations scan that list for same-dimension
// replacement.
// ============================================================================

// Filter is one node of a query's filter tree.
type Filter interface {
	filterClause()
}

// BoolOp is a variadic boolean connective.
type BoolOp string

const (
	And BoolOp = "and"
	Or  BoolOp = "or"
)

// BoolFilter combines operand filters with a connective.
type BoolFilter struct {
	Op       BoolOp
	Operands []Filter
}

// CompareOp names a comparison operator.
type CompareOp string

const (
	Equal       CompareOp = "="
	NotEqual    CompareOp = "!="
	LessThan    CompareOp = "<"
	GreaterThan CompareOp = ">"
	AtMost      CompareOp = "<="
	AtLeast     CompareOp = ">="
	Between     CompareOp = "between"
	IsNull      CompareOp = "is-null"
	NotNull     CompareOp = "not-null"
	Contains    CompareOp = "contains"
	StartsWith  CompareOp = "starts-with"
	EndsWith    CompareOp = "ends-with"
)

// Comparison compares a column against literal operands.
// Args holds scalars: numbers, strings, time.Time, or nothing for the
// null checks. Between carries exactly two args, low then high.
type Comparison struct {
	Op    CompareOp
	Field FieldRef
	Args  []any
}

// SegmentFilter references a named predicate defined in table metadata.
type SegmentFilter struct {
	SegmentID int64
}

// RelativeRange is the between-shorthand over a relative offset: the last
// Offset Units of a temporal column ("previous 30 days" style). Offset is
// negative for the past.
type RelativeRange struct {
	Field  FieldRef
	Offset int
	Unit   Unit
}

// InsideFilter keeps rows whose coordinate pair falls inside a bounding
// box. Bounds follow map convention: north, west, south, east.
type InsideFilter struct {
	LatField FieldRef
	LonField FieldRef
	LatMax   float64
	LonMin   float64
	LatMin   float64
	LonMax   float64
}

func (BoolFilter) filterClause()    {}
func (Comparison) filterClause()    {}
func (SegmentFilter) filterClause() {}
func (RelativeRange) filterClause() {}
func (InsideFilter) filterClause()  {}

// FilterList flattens a filter's outermost "and" into its operand list. A
// nil filter is an empty list; any other node is a single-element list.
// The inverse is BuildFilter.
func FilterList(f Filter) []Filter {
	switch node := f.(type) {
	case nil:
		return nil
	case BoolFilter:
		if node.Op == And {
			return node.Operands
		}
	}
	return []Filter{f}
}

// BuildFilter rebuilds a filter from a flattened operand list: empty → nil,
// one → the clause itself, more → an "and" over the list.
func BuildFilter(operands []Filter) Filter {
	switch len(operands) {
	case 0:
		return nil
	case 1:
		return operands[0]
	default:
		return BoolFilter{Op: And, Operands: operands}
	}
}
