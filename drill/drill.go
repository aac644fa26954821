package drill

import (
	"github.com/spektr-org/lens/query"
	"github.com/spektr-org/lens/schema"
)

// ============================================================================
// DRILL — Click interactions → query mutations
// ============================================================================
// Every operation is a pure Query → Query transformation: the input is
// never mutated, and a non-structured query is a clean no-op (applied =
// false), not an error. Replacement is keyed on base dimension identity, so
// drilling the same column twice refines one filter instead of stacking
// two.
// ============================================================================

// structured unwraps q, reporting whether drill operations apply to it.
func structured(q query.Query) (*query.StructuredQuery, bool) {
	sq, ok := q.(*query.StructuredQuery)
	return sq, ok && sq != nil
}

// AddOrReplaceFilter adds f to the query's filter list. When an existing
// clause targets the same base dimension it is replaced in its tree
// position; otherwise f is appended to the flattened "and" list.
func AddOrReplaceFilter(q query.Query, f query.Filter) (query.Query, bool) {
	sq, ok := structured(q)
	if !ok || f == nil {
		return q, false
	}
	out := sq.Clone()
	list := append([]query.Filter(nil), query.FilterList(out.Filter)...)

	dim, keyed := filterDimension(f)
	replaced := false
	if keyed {
		for i, existing := range list {
			if existingDim, ok := filterDimension(existing); ok && query.SameDimension(existingDim, dim) {
				list[i] = f
				replaced = true
				break
			}
		}
	}
	if !replaced {
		list = append(list, f)
	}
	out.Filter = query.BuildFilter(list)
	return out, true
}

// AddOrReplaceBreakout adds ref to the breakout list, replacing an existing
// breakout on the same base dimension in place.
func AddOrReplaceBreakout(q query.Query, ref query.FieldRef) (query.Query, bool) {
	sq, ok := structured(q)
	if !ok || ref == nil {
		return q, false
	}
	out := sq.Clone()
	for i, existing := range out.Breakouts {
		if query.SameDimension(existing, ref) {
			out.Breakouts[i] = ref
			return out, true
		}
	}
	out.Breakouts = append(out.Breakouts, ref)
	return out, true
}

// filterDimension extracts the base dimension a clause constrains.
// Connectives and segments have none.
func filterDimension(f query.Filter) (query.FieldRef, bool) {
	switch node := f.(type) {
	case query.Comparison:
		return node.Field, node.Field != nil
	case query.RelativeRange:
		return node.Field, node.Field != nil
	case query.InsideFilter:
		return node.LatField, node.LatField != nil
	}
	return nil, false
}

// FilterFromPoint builds a concrete filter from a clicked value and applies
// it through AddOrReplaceFilter.
//
// Temporal columns filter at the column's displayed granularity; histogram
// columns filter over the clicked bin's value range; plain columns get an
// equality filter. An absent value always means is-null.
func FilterFromPoint(q query.Query, value any, col schema.Column) (query.Query, bool) {
	sq, ok := structured(q)
	if !ok || col.Ref == nil {
		return q, false
	}
	return AddOrReplaceFilter(sq, pointFilter(value, col))
}

func pointFilter(value any, col schema.Column) query.Filter {
	base := query.BaseOf(col.Ref)
	switch {
	case value == nil:
		return query.Comparison{Op: query.IsNull, Field: base}
	case col.Unit != "":
		return query.Comparison{
			Op:    query.Equal,
			Field: query.Bucket(col.Ref, col.Unit),
			Args:  []any{value},
		}
	case col.Bucket != nil:
		// Bin edges are half-open; the upper bound belongs to the next
		// bin when the ranges tile.
		return query.Comparison{
			Op:    query.Between,
			Field: base,
			Args:  []any{col.Bucket.Min, col.Bucket.Max},
		}
	default:
		return query.Comparison{Op: query.Equal, Field: base, Args: []any{value}}
	}
}

// PointDrill pairs a clicked value with the column it was clicked in.
type PointDrill struct {
	Value  any
	Column schema.Column
}

// Pivot zooms into a cell: each dimension drill becomes a filter and its
// breakout is removed, then the new breakouts are appended. The result
// groups by the new dimensions inside the drilled-down slice.
func Pivot(q query.Query, newBreakouts []query.FieldRef, drills []PointDrill) (query.Query, bool) {
	sq, ok := structured(q)
	if !ok {
		return q, false
	}
	var out query.Query = sq.Clone()
	for _, d := range drills {
		out, _ = FilterFromPoint(out, d.Value, d.Column)
		cur := out.(*query.StructuredQuery)
		kept := cur.Breakouts[:0]
		for _, b := range cur.Breakouts {
			if !query.SameDimension(b, d.Column.Ref) {
				kept = append(kept, b)
			}
		}
		cur.Breakouts = kept
	}
	cur := out.(*query.StructuredQuery)
	cur.Breakouts = append(cur.Breakouts, newBreakouts...)
	return cur, true
}

// Distribution resets the query to a canonical histogram: count grouped by
// the column, auto-bucketed by month for temporal columns and by the
// default binning for numeric ones. Filters survive; aggregations,
// breakouts, sorts, and the limit do not.
func Distribution(q query.Query, col schema.Column) (query.Query, bool) {
	sq, ok := structured(q)
	if !ok || col.Ref == nil {
		return q, false
	}
	breakout := query.BaseOf(col.Ref)
	switch col.Kind {
	case schema.KindTemporal:
		breakout = query.Bucket(col.Ref, query.Month)
	case schema.KindNumber:
		binning := query.DefaultBinning
		if col.DefaultBinning != nil {
			binning = *col.DefaultBinning
		}
		breakout = query.Bin(col.Ref, binning)
	}

	out := sq.Clone()
	out.Aggregations = []query.Aggregation{query.Count()}
	out.Breakouts = []query.FieldRef{breakout}
	out.OrderBys = nil
	out.Limit = nil
	return out, true
}
