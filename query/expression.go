package query

// Expression is an arbitrary aggregation/expression clause: an operator
// applied to operands. Operands are numbers, strings, field references, or
// nested expressions. The library only carries expressions through to a
// formatter; it never evaluates them.
type Expression struct {
	Op   string
	Args []any
}
