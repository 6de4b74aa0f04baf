package querybuilder

// Condition is one predicate of a WHERE clause. Predicates are joined with AND.
type Condition interface {
	render(s *statement)
}

type compareCondition struct {
	column string
	op     string
	value  any
}

func Eq(column string, value any) Condition {
	return compareCondition{column: column, op: "=", value: value}
}

// Lte bounds a column from above; ledger prefix reads use it on sequence.
func Lte(column string, value any) Condition {
	return compareCondition{column: column, op: "<=", value: value}
}

func Gt(column string, value any) Condition {
	return compareCondition{column: column, op: ">", value: value}
}

func (c compareCondition) render(s *statement) {
	s.write(c.column, " ", c.op, " ", s.bind(c.value))
}

type inCondition struct {
	column string
	values []any
}

// In with no values matches nothing.
func In(column string, values []any) Condition {
	return inCondition{column: column, values: values}
}

func (c inCondition) render(s *statement) {
	if len(c.values) == 0 {
		s.write("1=0")
		return
	}
	s.write(c.column, " IN (")
	for i, v := range c.values {
		if i > 0 {
			s.write(", ")
		}
		s.write(s.bind(v))
	}
	s.write(")")
}

type isNullCondition struct {
	column string
}

func IsNull(column string) Condition {
	return isNullCondition{column: column}
}

func (c isNullCondition) render(s *statement) {
	s.write(c.column, " IS NULL")
}

type exprCondition struct {
	expr string
	args []any
}

// Expr is a raw predicate; each ? binds the next arg.
func Expr(expr string, args ...any) Condition {
	return exprCondition{expr: expr, args: args}
}

func (c exprCondition) render(s *statement) {
	s.raw(c.expr, c.args)
}
