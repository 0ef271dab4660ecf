package filterexpr

import (
	"fmt"
	"strings"
	"time"
)

// Match evaluates the condition against a field value held in memory.
func (c Condition) Match(v any) bool {
	if c.Fold {
		v = fold(v)
	}
	switch val := v.(type) {
	case string:
		switch c.Op {
		case OpEQ:
			return val == c.Value
		case OpSW:
			prefix, _ := c.Value.(string)
			return strings.HasPrefix(val, prefix)
		case OpIN:
			list, _ := c.Value.([]string)
			for _, s := range list {
				if s == val {
					return true
				}
			}
			return false
		}
	case time.Time:
		bound, ok := c.Value.(time.Time)
		if !ok {
			return false
		}
		switch c.Op {
		case OpEQ:
			return val.Equal(bound)
		case OpGTE:
			return !val.Before(bound)
		case OpLTE:
			return !val.After(bound)
		}
	}
	return false
}

// MatchAll reports whether every condition holds. get returns the value of a
// filter field by name.
func (q *Query) MatchAll(get func(field string) any) bool {
	if q == nil {
		return true
	}
	for _, c := range q.Conditions {
		if !c.Match(get(c.Field)) {
			return false
		}
	}
	return true
}

// SQL renders the query as a WHERE clause, its arguments and an ORDER BY list.
// placeholder renders the n-th (1-based) bind parameter.
func (q *Query) SQL(placeholder func(n int) string) (where string, args []any, orderBy string) {
	if q == nil {
		return "", nil, ""
	}
	var clauses []string
	bind := func(v any) string {
		args = append(args, v)
		return placeholder(len(args))
	}
	for _, c := range q.Conditions {
		col := c.Column
		if c.Fold {
			col = "LOWER(" + col + ")"
		}
		switch c.Op {
		case OpEQ, OpGTE, OpLTE:
			clauses = append(clauses, fmt.Sprintf("%s %s %s", col, sqlOp(c.Op), bind(c.Value)))
		case OpSW:
			prefix, _ := c.Value.(string)
			clauses = append(clauses, fmt.Sprintf("%s LIKE %s ESCAPE '\\'", col, bind(escapeLike(prefix)+"%")))
		case OpIN:
			list, _ := c.Value.([]string)
			marks := make([]string, len(list))
			for i, s := range list {
				marks[i] = bind(s)
			}
			clauses = append(clauses, fmt.Sprintf("%s IN (%s)", col, strings.Join(marks, ", ")))
		}
	}
	where = strings.Join(clauses, " AND ")

	terms := make([]string, len(q.Order))
	for i, t := range q.Order {
		dir := "ASC"
		if t.Desc {
			dir = "DESC"
		}
		terms[i] = t.Column + " " + dir
	}
	orderBy = strings.Join(terms, ", ")
	return where, args, orderBy
}

func sqlOp(op Op) string {
	if op == OpEQ {
		return "="
	}
	return string(op)
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// DollarPlaceholder renders postgres style $n parameters.
func DollarPlaceholder(n int) string { return fmt.Sprintf("$%d", n) }

// QuestionPlaceholder renders sqlite style ? parameters.
func QuestionPlaceholder(int) string { return "?" }
