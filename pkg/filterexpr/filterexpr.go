// Package filterexpr compiles CEL-style list filters and order_by clauses into a
// backend neutral Query. Only conjunctions of simple comparisons are accepted.
package filterexpr

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/cel-go/cel"
	exprpb "google.golang.org/genproto/googleapis/api/expr/v1alpha1"
)

// Msg wraps request DTOs that expose filter and order_by raw inputs.
type Msg interface {
	GetFilter() string
	GetOrderBy() string
}

// Kind describes the literal type a field accepts.
type Kind string

const (
	KindString    Kind = "string"
	KindTimestamp Kind = "timestamp"
)

// Op is a supported comparison.
type Op string

const (
	OpEQ  Op = "=="
	OpGTE Op = ">="
	OpLTE Op = "<="
	OpSW  Op = "startsWith"
	OpIN  Op = "in"
)

// Field describes a filterable field.
type Field struct {
	Column string
	Kind   Kind
	Ops    []Op
	// Fold lowercases string literals and values before comparison.
	Fold bool
}

func (f Field) allows(op Op) bool {
	for _, o := range f.Ops {
		if o == op {
			return true
		}
	}
	return false
}

// Schema whitelists the filter fields and order keys of a resource.
type Schema struct {
	Fields map[string]Field
	// OrderKeys maps an order_by key to its column.
	OrderKeys map[string]string
	// DefaultOrder applies when order_by is empty. Its last term also breaks ties.
	DefaultOrder []OrderTerm
}

// Condition is one compiled predicate.
type Condition struct {
	Field  string
	Column string
	Op     Op
	Fold   bool
	Value  any
}

// OrderTerm is one order_by key.
type OrderTerm struct {
	Key    string
	Column string
	Desc   bool
}

// Query is a compiled filter and order.
type Query struct {
	Conditions []Condition
	Order      []OrderTerm
}

// CompileMsg compiles the filter and order_by carried by msg.
func CompileMsg[M Msg](msg M, schema Schema) (*Query, error) {
	return Compile(msg.GetFilter(), msg.GetOrderBy(), schema)
}

// Compile parses filter and orderBy against schema.
func Compile(filter, orderBy string, schema Schema) (*Query, error) {
	conds, err := compileFilter(filter, schema.Fields)
	if err != nil {
		return nil, fmt.Errorf("filter: %w", err)
	}
	order, err := compileOrder(orderBy, schema)
	if err != nil {
		return nil, fmt.Errorf("order_by: %w", err)
	}
	return &Query{Conditions: conds, Order: order}, nil
}

func compileFilter(filter string, fields map[string]Field) ([]Condition, error) {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return nil, nil
	}
	if len(fields) == 0 {
		return nil, errors.New("schema has no filterable fields")
	}

	opts := make([]cel.EnvOption, 0, len(fields))
	for name, f := range fields {
		switch f.Kind {
		case KindString:
			opts = append(opts, cel.Variable(name, cel.StringType))
		case KindTimestamp:
			opts = append(opts, cel.Variable(name, cel.TimestampType))
		default:
			return nil, fmt.Errorf("field %q: unsupported kind %s", name, f.Kind)
		}
	}
	env, err := cel.NewEnv(opts...)
	if err != nil {
		return nil, err
	}

	ast, issues := env.Parse(filter)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("invalid filter: %w", issues.Err())
	}
	parsed, err := cel.AstToParsedExpr(ast)
	if err != nil {
		return nil, fmt.Errorf("convert AST: %w", err)
	}

	var terms []*exprpb.Expr
	if err := flattenAnd(parsed.GetExpr(), &terms); err != nil {
		return nil, err
	}

	conds := make([]Condition, 0, len(terms))
	for _, term := range terms {
		cond, err := compileTerm(term)
		if err != nil {
			return nil, err
		}
		f, ok := fields[cond.Field]
		if !ok {
			return nil, fmt.Errorf("field %q is not allowed", cond.Field)
		}
		if !f.allows(cond.Op) {
			return nil, fmt.Errorf("operator %q is not allowed for field %q", cond.Op, cond.Field)
		}
		if err := checkLiteral(f.Kind, cond.Op, cond.Value); err != nil {
			return nil, fmt.Errorf("field %q: %w", cond.Field, err)
		}
		cond.Column = f.Column
		cond.Fold = f.Fold
		if f.Fold {
			cond.Value = fold(cond.Value)
		}
		conds = append(conds, cond)
	}
	return conds, nil
}

// cel-go parses a && b && c as nested binary calls.
func flattenAnd(expr *exprpb.Expr, out *[]*exprpb.Expr) error {
	if expr == nil {
		return errors.New("empty expression")
	}
	call := expr.GetCallExpr()
	if call == nil {
		*out = append(*out, expr)
		return nil
	}
	switch call.Function {
	case "_&&_":
		for _, arg := range call.Args {
			if err := flattenAnd(arg, out); err != nil {
				return err
			}
		}
		return nil
	case "_||_", "_?_:_", "!_":
		return fmt.Errorf("logical operator %q is not supported; only AND is allowed", call.Function)
	default:
		*out = append(*out, expr)
		return nil
	}
}

func compileTerm(expr *exprpb.Expr) (Condition, error) {
	call := expr.GetCallExpr()
	if call == nil {
		return Condition{}, errors.New("expected a comparison or function call")
	}

	var (
		op         Op
		lhs, rhs   *exprpb.Expr
		wantString bool
	)
	switch call.Function {
	case "_==_":
		op = OpEQ
	case "_>=_":
		op = OpGTE
	case "_<=_":
		op = OpLTE
	case "@in", "_in_":
		op = OpIN
	case "startsWith":
		op, wantString = OpSW, true
	default:
		return Condition{}, fmt.Errorf("function %q is not supported", call.Function)
	}

	switch {
	case call.Target != nil && len(call.Args) == 1:
		lhs, rhs = call.Target, call.Args[0]
	case call.Target == nil && len(call.Args) == 2:
		lhs, rhs = call.Args[0], call.Args[1]
	default:
		return Condition{}, fmt.Errorf("operator %q expects two operands", op)
	}

	ident := lhs.GetIdentExpr()
	if ident == nil {
		return Condition{}, errors.New("left-hand side must be an identifier")
	}
	value, err := literal(rhs)
	if err != nil {
		return Condition{}, err
	}
	if _, ok := value.(string); wantString && !ok {
		return Condition{}, errors.New("startsWith requires a string literal argument")
	}
	return Condition{Field: ident.GetName(), Op: op, Value: value}, nil
}

func literal(expr *exprpb.Expr) (any, error) {
	if c := expr.GetConstExpr(); c != nil {
		if _, ok := c.ConstantKind.(*exprpb.Constant_StringValue); ok {
			return c.GetStringValue(), nil
		}
		return nil, fmt.Errorf("literal type %T is not supported", c.ConstantKind)
	}

	if list := expr.GetListExpr(); list != nil {
		values := make([]string, 0, len(list.GetElements()))
		for i, elem := range list.GetElements() {
			v, err := literal(elem)
			if err != nil {
				return nil, fmt.Errorf("list element %d: %w", i, err)
			}
			s, ok := v.(string)
			if !ok {
				return nil, errors.New("list elements must be strings")
			}
			values = append(values, s)
		}
		return values, nil
	}

	if call := expr.GetCallExpr(); call != nil && call.Function == "timestamp" {
		if call.Target != nil || len(call.Args) != 1 || call.Args[0].GetConstExpr() == nil {
			return nil, errors.New("timestamp() expects a single string literal")
		}
		raw := call.Args[0].GetConstExpr().GetStringValue()
		t, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return nil, fmt.Errorf("timestamp literal %q is not RFC3339", raw)
		}
		return t, nil
	}

	return nil, errors.New("right-hand side must be a literal, list literal, or timestamp() call")
}

func checkLiteral(kind Kind, op Op, value any) error {
	switch kind {
	case KindString:
		if op == OpIN {
			list, ok := value.([]string)
			if !ok || len(list) == 0 {
				return errors.New("expected a non-empty list of strings")
			}
			return nil
		}
		if _, ok := value.(string); !ok {
			return errors.New("expected string literal")
		}
	case KindTimestamp:
		if op == OpIN || op == OpSW {
			return fmt.Errorf("operator %q does not apply to timestamps", op)
		}
		if _, ok := value.(time.Time); !ok {
			return errors.New("expected timestamp() literal")
		}
	}
	return nil
}

func fold(v any) any {
	switch t := v.(type) {
	case string:
		return strings.ToLower(t)
	case []string:
		out := make([]string, len(t))
		for i, s := range t {
			out[i] = strings.ToLower(s)
		}
		return out
	default:
		return v
	}
}
