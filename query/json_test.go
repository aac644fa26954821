package query

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryJSONRoundTrip(t *testing.T) {
	orig := &StructuredQuery{
		Aggregations: []Aggregation{
			Count(),
			BasicAggregation{Op: OpSum, Field: FieldID{ID: 7}},
			MetricAggregation{MetricID: 4},
			NamedAggregation{Name: "Revenue", Inner: BasicAggregation{Op: OpSum, Field: FieldID{ID: 7}}},
		},
		Breakouts: []FieldRef{
			TemporalField{Field: FieldID{ID: 8}, Unit: Month},
			ForeignField{Via: 3, Field: FieldID{ID: 21}},
		},
		Filter: BoolFilter{Op: And, Operands: []Filter{
			Comparison{Op: Equal, Field: FieldID{ID: 9}, Args: []any{float64(5)}},
			BoolFilter{Op: Or, Operands: []Filter{
				SegmentFilter{SegmentID: 11},
				Comparison{Op: Contains, Field: FieldID{ID: 10}, Args: []any{"gadget"}},
			}},
			RelativeRange{Field: FieldID{ID: 8}, Offset: -30, Unit: Day},
		}},
		OrderBys: []OrderBy{
			{Direction: Descending, Field: AggregationRef{Index: 1}},
			{Direction: Ascending, Field: FieldID{ID: 9}},
		},
		Limit: LimitOf(100),
	}

	data, err := json.Marshal(orig)
	require.NoError(t, err)

	var got StructuredQuery
	require.NoError(t, json.Unmarshal(data, &got))

	if diff := cmp.Diff(orig, &got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestQueryJSONWireShape(t *testing.T) {
	q := &StructuredQuery{
		Aggregations: []Aggregation{BasicAggregation{Op: OpSum, Field: FieldID{ID: 7}}},
		Filter:       Comparison{Op: Equal, Field: FieldID{ID: 9}, Args: []any{float64(5)}},
	}
	data, err := json.Marshal(q)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"aggregation": [["sum", ["field", 7]]],
		"filter": ["=", ["field", 9], 5]
	}`, string(data))
}

func TestQueryJSONExpressionRoundTrip(t *testing.T) {
	orig := &StructuredQuery{
		Aggregations: []Aggregation{
			ExpressionAggregation{Expr: Expression{
				Op: "/",
				Args: []any{
					Expression{Op: "sum", Args: []any{FieldRef(FieldID{ID: 7})}},
					float64(100),
				},
			}},
		},
	}
	data, err := json.Marshal(orig)
	require.NoError(t, err)

	var got StructuredQuery
	require.NoError(t, json.Unmarshal(data, &got))
	if diff := cmp.Diff(orig, &got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestQueryJSONUnknownTags(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"aggregation", `{"aggregation": [["median", ["field", 7]]]}`, "median"},
		{"filter", `{"filter": ["near", ["field", 9], 5]}`, "near"},
		{"field", `{"breakout": [["column", 7]]}`, "column"},
		{"unit", `{"breakout": [["temporal", ["field", 8], "fortnight"]]}`, "fortnight"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var q StructuredQuery
			err := json.Unmarshal([]byte(tt.in), &q)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
