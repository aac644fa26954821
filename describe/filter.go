package describe

import (
	"github.com/dustin/go-humanize/english"

	"github.com/spektr-org/lens/query"
	"github.com/spektr-org/lens/schema"
)

// ============================================================================
// FILTER DESCRIPTION — Boolean tree → conjunction list
// ============================================================================
// The outermost connective flattens into "Filtered by A and B and C"; an
// unwrapped single clause gets an implicit "and". Nested groups recurse
// with their own conjunction word using the same comma rule.
// ============================================================================

func describeFilter(table *schema.Table, f query.Filter) Fragments {
	if f == nil {
		return nil
	}
	conjunction := "and"
	operands := []query.Filter{f}
	if node, ok := f.(query.BoolFilter); ok {
		conjunction = string(node.Op)
		operands = node.Operands
	}
	if len(operands) == 0 {
		return nil
	}
	items := make([]Fragments, 0, len(operands))
	for _, op := range operands {
		items = append(items, describeFilterClause(table, op))
	}
	out := Fragments{text("Filtered by ")}
	return append(out, joinConjunction(items, conjunction)...)
}

func describeFilterClause(table *schema.Table, f query.Filter) Fragments {
	switch node := f.(type) {
	case query.BoolFilter:
		items := make([]Fragments, 0, len(node.Operands))
		for _, op := range node.Operands {
			items = append(items, describeFilterClause(table, op))
		}
		return joinConjunction(items, string(node.Op))
	case query.Comparison:
		return describeComparison(table, node)
	case query.SegmentFilter:
		if s, ok := table.Segment(node.SegmentID); ok {
			return Fragments{{Kind: KindSegment, Text: s.Name}}
		}
		return Fragments{text(UnknownSegment)}
	case query.RelativeRange:
		// Trending shorthand: the offset is implementation detail, only
		// the field reads back.
		return Fragments{fieldLabel(table, node.Field)}
	case query.InsideFilter:
		return Fragments{fieldLabel(table, node.LatField), text(" is inside a bounding box")}
	}
	return nil
}

func describeComparison(table *schema.Table, cmp query.Comparison) Fragments {
	label := fieldLabel(table, cmp.Field)
	switch cmp.Op {
	case query.IsNull:
		return Fragments{label, text(" is empty")}
	case query.NotNull:
		return Fragments{label, text(" is not empty")}
	case query.Between:
		if len(cmp.Args) == 2 {
			return Fragments{label, text(" is between " +
				formatValue(cmp.Args[0]) + " and " + formatValue(cmp.Args[1]))}
		}
		return Fragments{label}
	}
	verb, ok := comparisonVerbs[cmp.Op]
	if !ok || len(cmp.Args) == 0 {
		return Fragments{label}
	}
	values := make([]string, len(cmp.Args))
	for i, arg := range cmp.Args {
		values[i] = formatValue(arg)
	}
	// Multiple operands read as alternatives: "Status is open, closed, or
	// pending".
	return Fragments{label, text(" " + verb + " " + english.OxfordWordSeries(values, "or"))}
}

var comparisonVerbs = map[query.CompareOp]string{
	query.Equal:       "is",
	query.NotEqual:    "is not",
	query.LessThan:    "is less than",
	query.GreaterThan: "is greater than",
	query.AtMost:      "is less than or equal to",
	query.AtLeast:     "is greater than or equal to",
	query.Contains:    "contains",
	query.StartsWith:  "starts with",
	query.EndsWith:    "ends with",
}
