package query

import (
	"encoding/json"
	"fmt"
	"time"
)

// ============================================================================
// WIRE CODEC — Tagged-array JSON form
// ============================================================================
// Clauses persist as tagged arrays, the head naming the variant:
//
//	{"aggregation": [["count"], ["sum", ["field", 7]]],
//	 "breakout":    [["temporal", ["field", 8], "month"]],
//	 "filter":      ["and", ["=", ["field", 9], 5]],
//	 "order-by":    [["asc", ["field", 7]]],
//	 "limit":       10}
//
// Unknown tags fail decode with an error naming the tag; they never decode
// into a silent fallback variant.
// ============================================================================

// MarshalJSON emits the tagged-array wire form.
func (q *StructuredQuery) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, 5)
	if len(q.Aggregations) > 0 {
		aggs := make([]any, len(q.Aggregations))
		for i, a := range q.Aggregations {
			aggs[i] = encodeAggregation(a)
		}
		out["aggregation"] = aggs
	}
	if len(q.Breakouts) > 0 {
		brs := make([]any, len(q.Breakouts))
		for i, b := range q.Breakouts {
			brs[i] = encodeFieldRef(b)
		}
		out["breakout"] = brs
	}
	if q.Filter != nil {
		out["filter"] = encodeFilter(q.Filter)
	}
	if len(q.OrderBys) > 0 {
		obs := make([]any, len(q.OrderBys))
		for i, ob := range q.OrderBys {
			tag := "asc"
			if ob.Direction == Descending {
				tag = "desc"
			}
			obs[i] = []any{tag, encodeFieldRef(ob.Field)}
		}
		out["order-by"] = obs
	}
	if q.Limit != nil {
		out["limit"] = *q.Limit
	}
	return json.Marshal(out)
}

func encodeFieldRef(ref FieldRef) any {
	switch r := ref.(type) {
	case FieldID:
		return []any{"field", r.ID}
	case ForeignField:
		return []any{"fk", r.Via, encodeFieldRef(r.Field)}
	case TemporalField:
		return []any{"temporal", encodeFieldRef(r.Field), string(r.Unit)}
	case BinnedField:
		return []any{"binned", encodeFieldRef(r.Field), r.Strategy}
	case AggregationRef:
		return []any{"aggregation", r.Index}
	}
	return nil
}

func encodeAggregation(a Aggregation) any {
	switch agg := a.(type) {
	case RawRows:
		return []any{"rows"}
	case BasicAggregation:
		if agg.Field == nil {
			return []any{string(agg.Op)}
		}
		return []any{string(agg.Op), encodeFieldRef(agg.Field)}
	case MetricAggregation:
		return []any{"metric", agg.MetricID}
	case NamedAggregation:
		return []any{"named", agg.Name, encodeAggregation(agg.Inner)}
	case ExpressionAggregation:
		return []any{"expression", encodeExpression(agg.Expr)}
	}
	return nil
}

func encodeExpression(e Expression) any {
	args := make([]any, len(e.Args))
	for i, arg := range e.Args {
		switch v := arg.(type) {
		case FieldRef:
			args[i] = encodeFieldRef(v)
		case Expression:
			args[i] = encodeExpression(v)
		default:
			args[i] = v
		}
	}
	return map[string]any{"op": e.Op, "args": args}
}

func encodeFilter(f Filter) any {
	switch node := f.(type) {
	case BoolFilter:
		out := []any{string(node.Op)}
		for _, op := range node.Operands {
			out = append(out, encodeFilter(op))
		}
		return out
	case Comparison:
		out := []any{string(node.Op), encodeFieldRef(node.Field)}
		for _, arg := range node.Args {
			if t, ok := arg.(time.Time); ok {
				out = append(out, t.Format(time.RFC3339))
				continue
			}
			out = append(out, arg)
		}
		return out
	case SegmentFilter:
		return []any{"segment", node.SegmentID}
	case RelativeRange:
		return []any{"time-interval", encodeFieldRef(node.Field), node.Offset, string(node.Unit)}
	case InsideFilter:
		return []any{"inside",
			encodeFieldRef(node.LatField), encodeFieldRef(node.LonField),
			node.LatMax, node.LonMin, node.LatMin, node.LonMax}
	}
	return nil
}

// ── Decoding ────────────────────────────────────────────────────────────────

type rawQuery struct {
	Aggregations []json.RawMessage `json:"aggregation"`
	Breakouts    []json.RawMessage `json:"breakout"`
	Filter       json.RawMessage   `json:"filter"`
	OrderBys     []json.RawMessage `json:"order-by"`
	Limit        *int              `json:"limit"`
}

// UnmarshalJSON parses the tagged-array wire form.
func (q *StructuredQuery) UnmarshalJSON(data []byte) error {
	var raw rawQuery
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*q = StructuredQuery{Limit: raw.Limit}
	for _, msg := range raw.Aggregations {
		agg, err := decodeAggregation(msg)
		if err != nil {
			return fmt.Errorf("aggregation: %w", err)
		}
		q.Aggregations = append(q.Aggregations, agg)
	}
	for _, msg := range raw.Breakouts {
		ref, err := decodeFieldRef(msg)
		if err != nil {
			return fmt.Errorf("breakout: %w", err)
		}
		q.Breakouts = append(q.Breakouts, ref)
	}
	if len(raw.Filter) > 0 {
		f, err := decodeFilter(raw.Filter)
		if err != nil {
			return fmt.Errorf("filter: %w", err)
		}
		q.Filter = f
	}
	for _, msg := range raw.OrderBys {
		tag, rest, err := decodeTagged(msg)
		if err != nil {
			return fmt.Errorf("order-by: %w", err)
		}
		var dir Direction
		switch tag {
		case "asc":
			dir = Ascending
		case "desc":
			dir = Descending
		default:
			return fmt.Errorf("order-by: unknown direction tag %q", tag)
		}
		if len(rest) != 1 {
			return fmt.Errorf("order-by: expected one field reference")
		}
		ref, err := decodeFieldRef(rest[0])
		if err != nil {
			return fmt.Errorf("order-by: %w", err)
		}
		q.OrderBys = append(q.OrderBys, OrderBy{Direction: dir, Field: ref})
	}
	return nil
}

// decodeTagged splits a tagged array into its head tag and remaining
// elements.
func decodeTagged(raw json.RawMessage) (string, []json.RawMessage, error) {
	var parts []json.RawMessage
	if err := json.Unmarshal(raw, &parts); err != nil {
		return "", nil, fmt.Errorf("expected tagged array: %w", err)
	}
	if len(parts) == 0 {
		return "", nil, fmt.Errorf("empty clause array")
	}
	var tag string
	if err := json.Unmarshal(parts[0], &tag); err != nil {
		return "", nil, fmt.Errorf("clause tag must be a string: %w", err)
	}
	return tag, parts[1:], nil
}

func decodeInt64(raw json.RawMessage) (int64, error) {
	var n int64
	err := json.Unmarshal(raw, &n)
	return n, err
}

func decodeFieldRef(raw json.RawMessage) (FieldRef, error) {
	tag, rest, err := decodeTagged(raw)
	if err != nil {
		return nil, err
	}
	switch tag {
	case "field":
		if len(rest) != 1 {
			return nil, fmt.Errorf("field: expected one id")
		}
		id, err := decodeInt64(rest[0])
		if err != nil {
			return nil, fmt.Errorf("field id: %w", err)
		}
		return FieldID{ID: id}, nil
	case "fk":
		if len(rest) != 2 {
			return nil, fmt.Errorf("fk: expected via id and inner reference")
		}
		via, err := decodeInt64(rest[0])
		if err != nil {
			return nil, fmt.Errorf("fk via: %w", err)
		}
		inner, err := decodeFieldRef(rest[1])
		if err != nil {
			return nil, err
		}
		return ForeignField{Via: via, Field: inner}, nil
	case "temporal":
		if len(rest) != 2 {
			return nil, fmt.Errorf("temporal: expected inner reference and unit")
		}
		inner, err := decodeFieldRef(rest[0])
		if err != nil {
			return nil, err
		}
		var unit Unit
		if err := json.Unmarshal(rest[1], &unit); err != nil {
			return nil, fmt.Errorf("temporal unit: %w", err)
		}
		if !unit.Valid() {
			return nil, fmt.Errorf("unknown temporal unit %q", unit)
		}
		return TemporalField{Field: inner, Unit: unit}, nil
	case "binned":
		if len(rest) != 2 {
			return nil, fmt.Errorf("binned: expected inner reference and strategy")
		}
		inner, err := decodeFieldRef(rest[0])
		if err != nil {
			return nil, err
		}
		var strategy Binning
		if err := json.Unmarshal(rest[1], &strategy); err != nil {
			return nil, fmt.Errorf("binning strategy: %w", err)
		}
		return BinnedField{Field: inner, Strategy: strategy}, nil
	case "aggregation":
		if len(rest) != 1 {
			return nil, fmt.Errorf("aggregation reference: expected one index")
		}
		idx, err := decodeInt64(rest[0])
		if err != nil {
			return nil, fmt.Errorf("aggregation index: %w", err)
		}
		return AggregationRef{Index: int(idx)}, nil
	}
	return nil, fmt.Errorf("unknown field reference tag %q", tag)
}

func decodeAggregation(raw json.RawMessage) (Aggregation, error) {
	tag, rest, err := decodeTagged(raw)
	if err != nil {
		return nil, err
	}
	switch tag {
	case "rows":
		return RawRows{}, nil
	case "metric":
		if len(rest) != 1 {
			return nil, fmt.Errorf("metric: expected one id")
		}
		id, err := decodeInt64(rest[0])
		if err != nil {
			return nil, fmt.Errorf("metric id: %w", err)
		}
		return MetricAggregation{MetricID: id}, nil
	case "named":
		if len(rest) != 2 {
			return nil, fmt.Errorf("named: expected name and inner clause")
		}
		var name string
		if err := json.Unmarshal(rest[0], &name); err != nil {
			return nil, fmt.Errorf("named: %w", err)
		}
		inner, err := decodeAggregation(rest[1])
		if err != nil {
			return nil, err
		}
		return NamedAggregation{Name: name, Inner: inner}, nil
	case "expression":
		if len(rest) != 1 {
			return nil, fmt.Errorf("expression: expected one body")
		}
		expr, err := decodeExpression(rest[0])
		if err != nil {
			return nil, err
		}
		return ExpressionAggregation{Expr: expr}, nil
	}
	op := AggOp(tag)
	switch op {
	case OpCount, OpCumulativeCount, OpAverage, OpDistinct, OpStdDev,
		OpSum, OpCumulativeSum, OpMax, OpMin:
	default:
		return nil, fmt.Errorf("unknown aggregation tag %q", tag)
	}
	agg := BasicAggregation{Op: op}
	if len(rest) > 1 {
		return nil, fmt.Errorf("%s: too many operands", tag)
	}
	if len(rest) == 1 {
		ref, err := decodeFieldRef(rest[0])
		if err != nil {
			return nil, err
		}
		agg.Field = ref
	}
	return agg, nil
}

type rawExpression struct {
	Op   string            `json:"op"`
	Args []json.RawMessage `json:"args"`
}

func decodeExpression(raw json.RawMessage) (Expression, error) {
	var re rawExpression
	if err := json.Unmarshal(raw, &re); err != nil {
		return Expression{}, fmt.Errorf("expression: %w", err)
	}
	if re.Op == "" {
		return Expression{}, fmt.Errorf("expression: missing op")
	}
	expr := Expression{Op: re.Op}
	for _, arg := range re.Args {
		expr.Args = append(expr.Args, decodeExpressionArg(arg))
	}
	return expr, nil
}

// decodeExpressionArg decodes an operand: arrays are field references,
// objects are nested expressions, everything else stays scalar.
func decodeExpressionArg(raw json.RawMessage) any {
	trimmed := string(raw)
	if len(trimmed) > 0 {
		switch trimmed[0] {
		case '[':
			if ref, err := decodeFieldRef(raw); err == nil {
				return ref
			}
		case '{':
			if expr, err := decodeExpression(raw); err == nil {
				return expr
			}
		}
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	return v
}

func decodeFilter(raw json.RawMessage) (Filter, error) {
	tag, rest, err := decodeTagged(raw)
	if err != nil {
		return nil, err
	}
	switch tag {
	case "and", "or":
		node := BoolFilter{Op: BoolOp(tag)}
		for _, msg := range rest {
			operand, err := decodeFilter(msg)
			if err != nil {
				return nil, err
			}
			node.Operands = append(node.Operands, operand)
		}
		return node, nil
	case "segment":
		if len(rest) != 1 {
			return nil, fmt.Errorf("segment: expected one id")
		}
		id, err := decodeInt64(rest[0])
		if err != nil {
			return nil, fmt.Errorf("segment id: %w", err)
		}
		return SegmentFilter{SegmentID: id}, nil
	case "time-interval":
		if len(rest) != 3 {
			return nil, fmt.Errorf("time-interval: expected reference, offset, unit")
		}
		ref, err := decodeFieldRef(rest[0])
		if err != nil {
			return nil, err
		}
		offset, err := decodeInt64(rest[1])
		if err != nil {
			return nil, fmt.Errorf("time-interval offset: %w", err)
		}
		var unit Unit
		if err := json.Unmarshal(rest[2], &unit); err != nil {
			return nil, fmt.Errorf("time-interval unit: %w", err)
		}
		if !unit.Valid() {
			return nil, fmt.Errorf("unknown temporal unit %q", unit)
		}
		return RelativeRange{Field: ref, Offset: int(offset), Unit: unit}, nil
	case "inside":
		if len(rest) != 6 {
			return nil, fmt.Errorf("inside: expected two references and four bounds")
		}
		lat, err := decodeFieldRef(rest[0])
		if err != nil {
			return nil, err
		}
		lon, err := decodeFieldRef(rest[1])
		if err != nil {
			return nil, err
		}
		bounds := make([]float64, 4)
		for i, msg := range rest[2:] {
			if err := json.Unmarshal(msg, &bounds[i]); err != nil {
				return nil, fmt.Errorf("inside bound: %w", err)
			}
		}
		return InsideFilter{
			LatField: lat, LonField: lon,
			LatMax: bounds[0], LonMin: bounds[1], LatMin: bounds[2], LonMax: bounds[3],
		}, nil
	}
	op := CompareOp(tag)
	switch op {
	case Equal, NotEqual, LessThan, GreaterThan, AtMost, AtLeast,
		Between, IsNull, NotNull, Contains, StartsWith, EndsWith:
	default:
		return nil, fmt.Errorf("unknown filter tag %q", tag)
	}
	if len(rest) < 1 {
		return nil, fmt.Errorf("%s: missing field reference", tag)
	}
	ref, err := decodeFieldRef(rest[0])
	if err != nil {
		return nil, err
	}
	cmp := Comparison{Op: op, Field: ref}
	for _, msg := range rest[1:] {
		var v any
		if err := json.Unmarshal(msg, &v); err != nil {
			return nil, fmt.Errorf("%s operand: %w", tag, err)
		}
		cmp.Args = append(cmp.Args, v)
	}
	return cmp, nil
}
