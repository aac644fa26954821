package describe

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/lens/query"
)

func filterOnly(t *testing.T, f query.Filter) string {
	t.Helper()
	q := &query.StructuredQuery{Filter: f}
	return Describe(ordersTable(), q, Options{Sections: []Section{SectionFilter}}).String()
}

func TestFilterDescriptions(t *testing.T) {
	status := query.FieldID{ID: 9}
	total := query.FieldID{ID: 7}
	created := query.FieldID{ID: 8}

	tests := []struct {
		name string
		f    query.Filter
		want string
	}{
		{"none", nil, ""},
		{"bare comparison gets implicit and", query.Comparison{Op: query.Equal, Field: status, Args: []any{5}},
			"Filtered by Status is 5"},
		{"two clauses", query.BoolFilter{Op: query.And, Operands: []query.Filter{
			query.Comparison{Op: query.Equal, Field: status, Args: []any{"open"}},
			query.Comparison{Op: query.GreaterThan, Field: total, Args: []any{100}},
		}}, "Filtered by Status is open and Total is greater than 100"},
		{"three clauses oxford", query.BoolFilter{Op: query.And, Operands: []query.Filter{
			query.Comparison{Op: query.Equal, Field: status, Args: []any{"open"}},
			query.Comparison{Op: query.GreaterThan, Field: total, Args: []any{100}},
			query.Comparison{Op: query.NotNull, Field: created},
		}}, "Filtered by Status is open, Total is greater than 100, and Created At is not empty"},
		{"top level or", query.BoolFilter{Op: query.Or, Operands: []query.Filter{
			query.Comparison{Op: query.Equal, Field: status, Args: []any{"open"}},
			query.Comparison{Op: query.Equal, Field: status, Args: []any{"closed"}},
		}}, "Filtered by Status is open or Status is closed"},
		{"nested group", query.BoolFilter{Op: query.And, Operands: []query.Filter{
			query.Comparison{Op: query.GreaterThan, Field: total, Args: []any{100}},
			query.BoolFilter{Op: query.Or, Operands: []query.Filter{
				query.Comparison{Op: query.Equal, Field: status, Args: []any{"open"}},
				query.Comparison{Op: query.Equal, Field: status, Args: []any{"pending"}},
			}},
		}}, "Filtered by Total is greater than 100 and Status is open or Status is pending"},
		{"between", query.Comparison{Op: query.Between, Field: total, Args: []any{10.0, 20.5}},
			"Filtered by Total is between 10 and 20.5"},
		{"is empty", query.Comparison{Op: query.IsNull, Field: status},
			"Filtered by Status is empty"},
		{"multiple equality operands", query.Comparison{Op: query.Equal, Field: status,
			Args: []any{"open", "closed", "pending"}},
			"Filtered by Status is open, closed, or pending"},
		{"contains", query.Comparison{Op: query.Contains, Field: status, Args: []any{"pen"}},
			"Filtered by Status contains pen"},
		{"segment", query.SegmentFilter{SegmentID: 11},
			"Filtered by Expensive Things"},
		{"unknown segment", query.SegmentFilter{SegmentID: 99},
			"Filtered by [Unknown Segment]"},
		{"relative range shows field only", query.RelativeRange{Field: created, Offset: -30, Unit: query.Day},
			"Filtered by Created At"},
		{"unknown field degrades", query.Comparison{Op: query.Equal, Field: query.FieldID{ID: 999}, Args: []any{1}},
			"Filtered by [Unknown Field] is 1"},
		{"fk field", query.Comparison{Op: query.Equal,
			Field: query.ForeignField{Via: 3, Field: query.FieldID{ID: 21}}, Args: []any{"Widgets"}},
			"Filtered by Category is Widgets"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, filterOnly(t, tt.f))
		})
	}
}

func TestSegmentFragmentIsTyped(t *testing.T) {
	q := &query.StructuredQuery{Filter: query.SegmentFilter{SegmentID: 11}}
	got := Describe(ordersTable(), q, Options{Sections: []Section{SectionFilter}})
	require.Len(t, got, 2)
	assert.Equal(t, KindText, got[0].Kind)
	assert.Equal(t, KindSegment, got[1].Kind)
	assert.Equal(t, "Expensive Things", got[1].Text)
}

func TestFilterTimeValues(t *testing.T) {
	created := query.FieldID{ID: 8}
	midnight := time.Date(2024, time.May, 15, 0, 0, 0, 0, time.UTC)
	afternoon := time.Date(2024, time.May, 15, 14, 30, 0, 0, time.UTC)

	assert.Equal(t, "Filtered by Created At is May 15, 2024",
		filterOnly(t, query.Comparison{Op: query.Equal, Field: created, Args: []any{midnight}}))
	assert.Equal(t, "Filtered by Created At is May 15, 2024, 14:30",
		filterOnly(t, query.Comparison{Op: query.Equal, Field: created, Args: []any{afternoon}}))
}
