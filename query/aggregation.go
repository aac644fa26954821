package query

// ============================================================================
// AGGREGATIONS — Tagged variants of an aggregation clause
// ============================================================================
// The variant set is closed. Anything that is not one of the named shapes is
// an ExpressionAggregation — the fallback is an explicit variant, not an
// unknown tag falling through.
// ============================================================================

// Aggregation is one clause of a query's aggregation group.
type Aggregation interface {
	aggregation()
}

// AggOp names a basic aggregation operator.
type AggOp string

const (
	OpCount           AggOp = "count"
	OpCumulativeCount AggOp = "cum-count"
	OpAverage         AggOp = "avg"
	OpDistinct        AggOp = "distinct"
	OpStdDev          AggOp = "stddev"
	OpSum             AggOp = "sum"
	OpCumulativeSum   AggOp = "cum-sum"
	OpMax             AggOp = "max"
	OpMin             AggOp = "min"
)

// RawRows asks for unaggregated rows.
type RawRows struct{}

// BasicAggregation applies a named operator to a column. Field is nil for
// count and cum-count, set for every other operator.
type BasicAggregation struct {
	Op    AggOp
	Field FieldRef
}

// MetricAggregation references a metric defined in table metadata.
type MetricAggregation struct {
	MetricID int64
}

// NamedAggregation wraps an inner clause with an explicit display name.
// The name wins over any derived description.
type NamedAggregation struct {
	Name  string
	Inner Aggregation
}

// ExpressionAggregation is an arbitrary aggregation expression — the
// explicit fallback variant rendered by the expression formatter.
type ExpressionAggregation struct {
	Expr Expression
}

func (RawRows) aggregation()               {}
func (BasicAggregation) aggregation()      {}
func (MetricAggregation) aggregation()     {}
func (NamedAggregation) aggregation()      {}
func (ExpressionAggregation) aggregation() {}

// Count is the plain row-count aggregation.
func Count() Aggregation {
	return BasicAggregation{Op: OpCount}
}
