package describe

import (
	"github.com/dustin/go-humanize/english"
)

// ============================================================================
// SERVER-DESCRIBED QUERIES — Formatting without metadata
// ============================================================================
// Some callers only hold a server-computed summary of a query: every entry
// already carries display strings, so nothing resolves against a schema.
// Same sections, same joins, degraded information.
// ============================================================================

// ServerDescription is the pre-resolved description payload.
type ServerDescription struct {
	Table        string              `json:"table,omitempty"`
	Aggregations []ServerAggregation `json:"aggregation,omitempty"`
	Breakouts    []string            `json:"breakout,omitempty"`
	Filters      []ServerFilter      `json:"filter,omitempty"`
	OrderBys     []ServerOrderBy     `json:"order-by,omitempty"`
	Limit        *int                `json:"limit,omitempty"`
}

// ServerAggregation is one pre-resolved aggregation entry. Type matches the
// basic operator tags, with named/expression clauses collapsed to
// "aggregation" and metric references to "metric"; Arg carries the resolved
// display string for the typed kinds that need one.
type ServerAggregation struct {
	Type string `json:"type"`
	Arg  string `json:"arg,omitempty"`
}

// ServerFilter is one pre-resolved filter entry: either a segment name or a
// field display string.
type ServerFilter struct {
	Segment string `json:"segment,omitempty"`
	Field   string `json:"field,omitempty"`
}

// ServerOrderBy is one pre-resolved sort entry.
type ServerOrderBy struct {
	Field     string `json:"field"`
	Direction string `json:"direction"` // "ascending" or "descending"
}

// DescribeServer renders a server-described payload with the same section
// and join rules as Describe.
func DescribeServer(desc *ServerDescription, opts Options) Fragments {
	if desc == nil {
		return nil
	}
	if opts.Sections == nil {
		opts.Sections = DefaultSections
	}

	var parts []Fragments
	for _, section := range opts.Sections {
		var fs Fragments
		switch section {
		case SectionTable:
			if desc.Table != "" {
				fs = Fragments{text(pluralize(desc.Table))}
			}
		case SectionAggregation:
			fs = serverAggregations(desc.Aggregations)
		case SectionBreakout:
			fs = serverBreakouts(desc.Breakouts)
		case SectionFilter:
			fs = serverFilters(desc.Filters)
		case SectionOrderBy:
			fs = serverOrderBys(desc.OrderBys)
		case SectionLimit:
			if desc.Limit != nil {
				fs = Fragments{text(english.Plural(*desc.Limit, "row", ""))}
			}
		}
		parts = append(parts, fs)
	}
	return joinFragments(parts, ", ")
}

func serverAggregations(aggs []ServerAggregation) Fragments {
	var items []Fragments
	for _, agg := range aggs {
		if fs := serverAggregation(agg); len(fs) > 0 {
			items = append(items, fs)
		}
	}
	return joinConjunction(items, "and")
}

func serverAggregation(agg ServerAggregation) Fragments {
	switch agg.Type {
	case "rows":
		return Fragments{text("Raw data")}
	case "count":
		return Fragments{text("Count")}
	case "cum-count":
		return Fragments{text("Cumulative count")}
	case "avg":
		return Fragments{text("Average of " + agg.Arg)}
	case "distinct":
		return Fragments{text("Distinct values of " + agg.Arg)}
	case "stddev":
		return Fragments{text("Standard deviation of " + agg.Arg)}
	case "sum":
		return Fragments{text("Sum of " + agg.Arg)}
	case "cum-sum":
		return Fragments{text("Cumulative sum of " + agg.Arg)}
	case "max":
		return Fragments{text("Maximum of " + agg.Arg)}
	case "min":
		return Fragments{text("Minimum of " + agg.Arg)}
	case "metric":
		if agg.Arg == "" {
			return Fragments{text(UnknownMetric)}
		}
		return Fragments{{Kind: KindMetric, Text: agg.Arg}}
	case "aggregation":
		return Fragments{text(agg.Arg)}
	}
	return nil
}

func serverBreakouts(breakouts []string) Fragments {
	if len(breakouts) == 0 {
		return nil
	}
	out := Fragments{text("Grouped by ")}
	for i, b := range breakouts {
		if i > 0 {
			out = append(out, text(" and "))
		}
		out = append(out, Fragment{Kind: KindField, Text: b})
	}
	return out
}

func serverFilters(filters []ServerFilter) Fragments {
	if len(filters) == 0 {
		return nil
	}
	var items []Fragments
	for _, f := range filters {
		switch {
		case f.Segment != "":
			items = append(items, Fragments{{Kind: KindSegment, Text: f.Segment}})
		case f.Field != "":
			items = append(items, Fragments{{Kind: KindField, Text: f.Field}})
		}
	}
	if len(items) == 0 {
		return nil
	}
	out := Fragments{text("Filtered by ")}
	return append(out, joinConjunction(items, "and")...)
}

func serverOrderBys(orderBys []ServerOrderBy) Fragments {
	if len(orderBys) == 0 {
		return nil
	}
	out := Fragments{text("Sorted by ")}
	for i, ob := range orderBys {
		if i > 0 {
			out = append(out, text(" and "))
		}
		out = append(out, Fragment{Kind: KindField, Text: ob.Field}, text(" "+ob.Direction))
	}
	return out
}
