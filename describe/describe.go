package describe

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize/english"

	"github.com/spektr-org/lens/query"
	"github.com/spektr-org/lens/schema"
)

// ============================================================================
// DESCRIBE — Structured query → readable sentence fragments
// ============================================================================
// Pipeline: run each requested section against the query, drop the empty
// ones, join the rest with ", ". Resolution failures degrade to placeholder
// labels; they never abort the description.
// ============================================================================

// Placeholder labels substituted when metadata resolution fails.
const (
	UnknownField   = "[Unknown Field]"
	UnknownMetric  = "[Unknown Metric]"
	UnknownSegment = "[Unknown Segment]"
)

// Section names one clause group of the description.
type Section string

const (
	SectionTable       Section = "table"
	SectionAggregation Section = "aggregation"
	SectionBreakout    Section = "breakout"
	SectionFilter      Section = "filter"
	SectionOrderBy     Section = "order-by"
	SectionLimit       Section = "limit"
)

// DefaultSections is the canonical section order.
var DefaultSections = []Section{
	SectionTable, SectionAggregation, SectionBreakout,
	SectionFilter, SectionOrderBy, SectionLimit,
}

// Options configures description generation. The zero value renders every
// section in canonical order with the built-in expression formatter.
type Options struct {
	// Sections is the ordered subset of sections to render.
	Sections []Section

	// FormatExpression renders an arbitrary expression clause. Nil selects
	// the built-in formatter.
	FormatExpression func(query.Expression) string
}

// normalize applies defaults once at the boundary.
func (o Options) normalize(table *schema.Table) Options {
	if o.Sections == nil {
		o.Sections = DefaultSections
	}
	if o.FormatExpression == nil {
		o.FormatExpression = expressionFormatter(table)
	}
	return o
}

// Describe renders a structured query against table metadata. Missing
// inputs produce an empty sequence.
func Describe(table *schema.Table, q *query.StructuredQuery, opts Options) Fragments {
	if table == nil || q == nil {
		return nil
	}
	opts = opts.normalize(table)

	var parts []Fragments
	for _, section := range opts.Sections {
		var fs Fragments
		switch section {
		case SectionTable:
			fs = describeTable(table)
		case SectionAggregation:
			fs = describeAggregations(table, q, opts)
		case SectionBreakout:
			fs = describeBreakouts(table, q)
		case SectionFilter:
			fs = describeFilter(table, q.Filter)
		case SectionOrderBy:
			fs = describeOrderBys(table, q, opts)
		case SectionLimit:
			fs = describeLimit(q)
		}
		parts = append(parts, fs)
	}
	return joinFragments(parts, ", ")
}

// ── Sections ────────────────────────────────────────────────────────────────

func describeTable(table *schema.Table) Fragments {
	name := table.DisplayName
	if name == "" {
		name = table.Name
	}
	if name == "" {
		return nil
	}
	return Fragments{text(pluralize(name))}
}

// pluralize makes a table name read as a collection. Names that already end
// in "s" stay untouched so "Orders" never becomes "Orderses".
func pluralize(name string) string {
	if strings.HasSuffix(strings.ToLower(name), "s") {
		return name
	}
	return english.PluralWord(2, name, "")
}

func describeAggregations(table *schema.Table, q *query.StructuredQuery, opts Options) Fragments {
	var items []Fragments
	for _, agg := range q.Aggregations {
		items = append(items, describeAggregation(table, agg, opts))
	}
	return joinConjunction(items, "and")
}

func describeAggregation(table *schema.Table, agg query.Aggregation, opts Options) Fragments {
	switch a := agg.(type) {
	case query.RawRows:
		return Fragments{text("Raw data")}
	case query.BasicAggregation:
		switch a.Op {
		case query.OpCount:
			return Fragments{text("Count")}
		case query.OpCumulativeCount:
			return Fragments{text("Cumulative count")}
		}
		label, ok := aggregationPrefixes[a.Op]
		if !ok {
			return Fragments{text(opts.FormatExpression(query.Expression{Op: string(a.Op)}))}
		}
		return Fragments{text(label), fieldLabel(table, a.Field)}
	case query.MetricAggregation:
		if m, ok := table.Metric(a.MetricID); ok {
			return Fragments{{Kind: KindMetric, Text: m.Name}}
		}
		return Fragments{text(UnknownMetric)}
	case query.NamedAggregation:
		return Fragments{text(a.Name)}
	case query.ExpressionAggregation:
		return Fragments{text(opts.FormatExpression(a.Expr))}
	}
	return nil
}

var aggregationPrefixes = map[query.AggOp]string{
	query.OpAverage:       "Average of ",
	query.OpDistinct:      "Distinct values of ",
	query.OpStdDev:        "Standard deviation of ",
	query.OpSum:           "Sum of ",
	query.OpCumulativeSum: "Cumulative sum of ",
	query.OpMax:           "Maximum of ",
	query.OpMin:           "Minimum of ",
}

func describeBreakouts(table *schema.Table, q *query.StructuredQuery) Fragments {
	if len(q.Breakouts) == 0 {
		return nil
	}
	out := Fragments{text("Grouped by ")}
	for i, ref := range q.Breakouts {
		if i > 0 {
			out = append(out, text(" and "))
		}
		out = append(out, fieldLabel(table, ref))
	}
	return out
}

func describeOrderBys(table *schema.Table, q *query.StructuredQuery, opts Options) Fragments {
	if len(q.OrderBys) == 0 {
		return nil
	}
	out := Fragments{text("Sorted by ")}
	for i, ob := range q.OrderBys {
		if i > 0 {
			out = append(out, text(" and "))
		}
		if ref, ok := query.BaseOf(ob.Field).(query.AggregationRef); ok {
			if ref.Index >= 0 && ref.Index < len(q.Aggregations) {
				out = append(out, describeAggregation(table, q.Aggregations[ref.Index], opts)...)
			} else {
				out = append(out, text(UnknownField))
			}
		} else {
			out = append(out, fieldLabel(table, ob.Field))
		}
		out = append(out, text(" "+string(ob.Direction)))
	}
	return out
}

func describeLimit(q *query.StructuredQuery) Fragments {
	if q.Limit == nil {
		return nil
	}
	return Fragments{text(english.Plural(*q.Limit, "row", ""))}
}

// ── Field labels & values ───────────────────────────────────────────────────

// fieldLabel resolves a reference to a display label, degrading to the
// placeholder on any resolution failure.
func fieldLabel(table *schema.Table, ref query.FieldRef) Fragment {
	res, err := schema.Resolve(table, ref)
	if err != nil {
		return text(UnknownField)
	}
	name := res.Field.DisplayName
	if name == "" {
		name = res.Field.Name
	}
	return Fragment{Kind: KindField, Text: name}
}

// formatValue renders a filter operand as display text.
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case time.Time:
		if val.Hour() == 0 && val.Minute() == 0 && val.Second() == 0 {
			return val.Format("January 2, 2006")
		}
		return val.Format("January 2, 2006, 15:04")
	}
	return fmt.Sprintf("%v", v)
}

// expressionFormatter builds the default formatter for arbitrary expression
// clauses: infix for arithmetic, function style otherwise.
func expressionFormatter(table *schema.Table) func(query.Expression) string {
	var format func(e query.Expression) string
	formatArg := func(arg any) string {
		switch v := arg.(type) {
		case query.Expression:
			return "(" + format(v) + ")"
		case query.FieldRef:
			return fieldLabel(table, v).Text
		default:
			return formatValue(v)
		}
	}
	format = func(e query.Expression) string {
		args := make([]string, len(e.Args))
		for i, arg := range e.Args {
			args[i] = formatArg(arg)
		}
		switch e.Op {
		case "+", "-", "*", "/":
			return strings.Join(args, " "+e.Op+" ")
		}
		return e.Op + "(" + strings.Join(args, ", ") + ")"
	}
	return format
}
