package querybuilder

import (
	"strconv"
	"strings"
)

// statement accumulates SQL text and its positional arguments. Placeholders
// are numbered in the order values are bound.
type statement struct {
	sql  strings.Builder
	args []any
}

func (s *statement) write(parts ...string) {
	for _, p := range parts {
		s.sql.WriteString(p)
	}
}

func (s *statement) bind(value any) string {
	s.args = append(s.args, value)
	return "$" + strconv.Itoa(len(s.args))
}

// raw writes expr, binding one arg for each ? in order. A ? with no arg left
// is written through unchanged.
func (s *statement) raw(expr string, args []any) {
	if len(args) == 0 {
		s.sql.WriteString(expr)
		return
	}
	next := 0
	for i := 0; i < len(expr); i++ {
		if expr[i] == '?' && next < len(args) {
			s.sql.WriteString(s.bind(args[next]))
			next++
			continue
		}
		s.sql.WriteByte(expr[i])
	}
}

func (s *statement) where(conditions []Condition) {
	for i, c := range conditions {
		if i == 0 {
			s.write(" WHERE ")
		} else {
			s.write(" AND ")
		}
		c.render(s)
	}
}

func (s *statement) list(keyword string, items []string) {
	if len(items) > 0 {
		s.write(" ", keyword, " ", strings.Join(items, ", "))
	}
}

func (s *statement) positive(keyword string, n int) {
	if n > 0 {
		s.write(" ", keyword, " ", strconv.Itoa(n))
	}
}

func (s *statement) result() (string, []any, error) {
	args := s.args
	if args == nil {
		args = []any{}
	}
	return s.sql.String(), args, nil
}
