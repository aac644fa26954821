package describe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/lens/query"
	"github.com/spektr-org/lens/schema"
)

func ordersTable() *schema.Table {
	products := &schema.Table{
		ID: 2, Name: "products", DisplayName: "Product",
		Fields: []*schema.Field{
			{ID: 21, Name: "category", DisplayName: "Category", Kind: schema.KindText},
		},
	}
	return &schema.Table{
		ID: 1, Name: "orders", DisplayName: "Orders",
		Fields: []*schema.Field{
			{ID: 7, Name: "total", DisplayName: "Total", Kind: schema.KindNumber},
			{ID: 8, Name: "created_at", DisplayName: "Created At", Kind: schema.KindTemporal},
			{ID: 9, Name: "status", DisplayName: "Status", Kind: schema.KindText},
			{ID: 3, Name: "product_id", DisplayName: "Product ID", Kind: schema.KindNumber,
				TargetID: 2, Target: products},
		},
		Metrics:  []schema.Metric{{ID: 4, Name: "Revenue"}},
		Segments: []schema.Segment{{ID: 11, Name: "Expensive Things"}},
	}
}

func TestDescribeEndToEnd(t *testing.T) {
	q := &query.StructuredQuery{
		Aggregations: []query.Aggregation{query.Count()},
		Breakouts:    []query.FieldRef{query.FieldID{ID: 8}},
		Filter: query.BoolFilter{Op: query.And, Operands: []query.Filter{
			query.Comparison{Op: query.Equal, Field: query.FieldID{ID: 9}, Args: []any{5}},
		}},
		Limit: query.LimitOf(10),
	}

	got := Describe(ordersTable(), q, Options{})
	assert.Equal(t,
		"Orders, Count, Grouped by Created At, Filtered by Status is 5, 10 rows",
		got.String())
}

func TestDescribeMissingInputs(t *testing.T) {
	q := &query.StructuredQuery{Aggregations: []query.Aggregation{query.Count()}}
	assert.Empty(t, Describe(nil, q, Options{}).String())
	assert.Empty(t, Describe(ordersTable(), nil, Options{}).String())
}

func TestAggregationConjunction(t *testing.T) {
	sum := query.BasicAggregation{Op: query.OpSum, Field: query.FieldID{ID: 7}}
	avg := query.BasicAggregation{Op: query.OpAverage, Field: query.FieldID{ID: 7}}

	tests := []struct {
		name string
		aggs []query.Aggregation
		want string
	}{
		{"none", nil, "Orders"},
		{"one", []query.Aggregation{query.Count()}, "Orders, Count"},
		{"two", []query.Aggregation{query.Count(), sum},
			"Orders, Count and Sum of Total"},
		{"three oxford comma", []query.Aggregation{query.Count(), sum, avg},
			"Orders, Count, Sum of Total, and Average of Total"},
		{"four", []query.Aggregation{query.Count(), sum, avg, query.RawRows{}},
			"Orders, Count, Sum of Total, Average of Total, and Raw data"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := &query.StructuredQuery{Aggregations: tt.aggs}
			assert.Equal(t, tt.want, Describe(ordersTable(), q, Options{}).String())
		})
	}
}

func TestAggregationVariants(t *testing.T) {
	tests := []struct {
		name string
		agg  query.Aggregation
		want string
	}{
		{"raw rows", query.RawRows{}, "Raw data"},
		{"count", query.BasicAggregation{Op: query.OpCount}, "Count"},
		{"cumulative count", query.BasicAggregation{Op: query.OpCumulativeCount}, "Cumulative count"},
		{"average", query.BasicAggregation{Op: query.OpAverage, Field: query.FieldID{ID: 7}}, "Average of Total"},
		{"distinct", query.BasicAggregation{Op: query.OpDistinct, Field: query.FieldID{ID: 7}}, "Distinct values of Total"},
		{"stddev", query.BasicAggregation{Op: query.OpStdDev, Field: query.FieldID{ID: 7}}, "Standard deviation of Total"},
		{"sum", query.BasicAggregation{Op: query.OpSum, Field: query.FieldID{ID: 7}}, "Sum of Total"},
		{"cumulative sum", query.BasicAggregation{Op: query.OpCumulativeSum, Field: query.FieldID{ID: 7}}, "Cumulative sum of Total"},
		{"max", query.BasicAggregation{Op: query.OpMax, Field: query.FieldID{ID: 7}}, "Maximum of Total"},
		{"min", query.BasicAggregation{Op: query.OpMin, Field: query.FieldID{ID: 7}}, "Minimum of Total"},
		{"metric", query.MetricAggregation{MetricID: 4}, "Revenue"},
		{"unknown metric", query.MetricAggregation{MetricID: 99}, "[Unknown Metric]"},
		{"named wins", query.NamedAggregation{Name: "My Number",
			Inner: query.BasicAggregation{Op: query.OpSum, Field: query.FieldID{ID: 7}}}, "My Number"},
		{"expression", query.ExpressionAggregation{Expr: query.Expression{
			Op:   "/",
			Args: []any{query.Expression{Op: "sum", Args: []any{query.FieldRef(query.FieldID{ID: 7})}}, float64(100)},
		}}, "(sum(Total)) / 100"},
		{"unknown field degrades", query.BasicAggregation{Op: query.OpSum, Field: query.FieldID{ID: 999}},
			"Sum of [Unknown Field]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := &query.StructuredQuery{Aggregations: []query.Aggregation{tt.agg}}
			got := Describe(ordersTable(), q, Options{Sections: []Section{SectionAggregation}})
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestMetricFragmentIsTyped(t *testing.T) {
	q := &query.StructuredQuery{Aggregations: []query.Aggregation{query.MetricAggregation{MetricID: 4}}}
	got := Describe(ordersTable(), q, Options{Sections: []Section{SectionAggregation}})
	require.Len(t, got, 1)
	assert.Equal(t, KindMetric, got[0].Kind)
}

func TestBreakoutsJoinWithAndOnly(t *testing.T) {
	q := &query.StructuredQuery{
		Breakouts: []query.FieldRef{
			query.FieldID{ID: 8},
			query.FieldID{ID: 9},
			query.ForeignField{Via: 3, Field: query.FieldID{ID: 21}},
		},
	}
	got := Describe(ordersTable(), q, Options{Sections: []Section{SectionBreakout}})
	assert.Equal(t, "Grouped by Created At and Status and Category", got.String())
}

func TestOrderBySection(t *testing.T) {
	q := &query.StructuredQuery{
		Aggregations: []query.Aggregation{query.Count()},
		OrderBys: []query.OrderBy{
			{Direction: query.Ascending, Field: query.FieldID{ID: 8}},
			{Direction: query.Descending, Field: query.AggregationRef{Index: 0}},
		},
	}
	got := Describe(ordersTable(), q, Options{Sections: []Section{SectionOrderBy}})
	assert.Equal(t, "Sorted by Created At ascending and Count descending", got.String())
}

func TestLimitSection(t *testing.T) {
	one := &query.StructuredQuery{Limit: query.LimitOf(1)}
	many := &query.StructuredQuery{Limit: query.LimitOf(5)}
	assert.Equal(t, "1 row", Describe(ordersTable(), one, Options{Sections: []Section{SectionLimit}}).String())
	assert.Equal(t, "5 rows", Describe(ordersTable(), many, Options{Sections: []Section{SectionLimit}}).String())
}

func TestEmptySectionsAreOmitted(t *testing.T) {
	q := &query.StructuredQuery{Aggregations: []query.Aggregation{query.Count()}}
	got := Describe(ordersTable(), q, Options{})
	assert.Equal(t, "Orders, Count", got.String())
}

func TestSectionsSubsetAndOrder(t *testing.T) {
	q := &query.StructuredQuery{
		Aggregations: []query.Aggregation{query.Count()},
		Filter:       query.Comparison{Op: query.Equal, Field: query.FieldID{ID: 9}, Args: []any{"open"}},
	}
	got := Describe(ordersTable(), q, Options{Sections: []Section{SectionFilter, SectionTable}})
	assert.Equal(t, "Filtered by Status is open, Orders", got.String())
}

func TestTablePluralization(t *testing.T) {
	table := &schema.Table{ID: 3, Name: "product", DisplayName: "Product"}
	q := &query.StructuredQuery{}
	got := Describe(table, q, Options{Sections: []Section{SectionTable}})
	assert.Equal(t, "Products", got.String())

	// Already-plural names stay untouched.
	got = Describe(ordersTable(), q, Options{Sections: []Section{SectionTable}})
	assert.Equal(t, "Orders", got.String())
}
