// Package expr evaluates small boolean expressions over sbool values.
//
// The language offers both of the ways a Bool can be composed. The keywords
// and, or and not short-circuit on truthiness and return an operand (or, for
// not, a plain bool). The operators &, | and ^ are strict: when either
// operand is a *sbool.Bool they are applied through the Registry, so they
// reject operands outside {0,1} and keep same-flavored results in flavor.
// Arithmetic with a Bool always fails. Between plain integers every operator
// is ordinary int64 math with truncated division.
package expr

import (
	"fmt"
	"io"
	"log"
	"math"
	"strconv"

	"github.com/pkg/errors"

	"github.com/sbool-dev/sbool/sbool"
	"github.com/sbool-dev/sbool/telemetry/counters"
)

// Resolver looks up the value bound to a name. Supported values are
// *sbool.Bool, bool and the integer kinds.
type Resolver interface {
	Recall(name string) (interface{}, bool)
}

// MapResolver is a Resolver over a plain map.
type MapResolver map[string]interface{}

// Recall implements Resolver.
func (m MapResolver) Recall(name string) (interface{}, bool) {
	v, ok := m[name]
	return v, ok
}

// Evaluator evaluates expressions against one registry and one resolver.
type Evaluator struct {
	registry *sbool.Registry
	resolver Resolver
	logger   *log.Logger
}

// NewEvaluator returns an Evaluator. A nil registry means sbool.Default and
// a nil resolver leaves every name undefined.
func NewEvaluator(registry *sbool.Registry, resolver Resolver) *Evaluator {
	if registry == nil {
		registry = sbool.Default
	}
	if resolver == nil {
		resolver = MapResolver(nil)
	}
	return &Evaluator{
		registry: registry,
		resolver: resolver,
		logger:   log.New(io.Discard, "", 0),
	}
}

// SetLogger sets where e traces its results. A nil logger silences e. It
// must not be called concurrently with Eval.
func (e *Evaluator) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard, "", 0)
	}
	e.logger = l
}

// Eval parses and evaluates src. The result is a *sbool.Bool, a bool or an
// int64.
func (e *Evaluator) Eval(src string) (interface{}, error) {
	n, err := Parse(src)
	if err != nil {
		counters.CounterExpressionsEvaluated.Add(1, counters.NewLabel("status", "error"))
		return nil, err
	}

	v, err := e.EvalNode(n)
	if err != nil {
		counters.CounterExpressionsEvaluated.Add(1, counters.NewLabel("status", "error"))
		return nil, err
	}

	counters.CounterExpressionsEvaluated.Add(1, counters.NewLabel("status", "success"))
	e.logger.Printf("[TRACE] (expr) %s => %s", n, Format(v))
	return v, nil
}

// EvalNode evaluates an already parsed expression.
func (e *Evaluator) EvalNode(n Node) (interface{}, error) {
	switch n := n.(type) {
	case *IntLit:
		return n.Value, nil

	case *BoolLit:
		return n.Value, nil

	case *Const:
		return e.registry.Of(n.Truth), nil

	case *Ident:
		raw, ok := e.resolver.Recall(n.Name)
		if !ok {
			return nil, &UndefinedError{Pos: n.At, Name: n.Name}
		}
		v, ok := normalize(raw)
		if !ok {
			return nil, &EvalError{Pos: n.At, Msg: fmt.Sprintf("%s holds unsupported value of type %T", n.Name, raw)}
		}
		return v, nil

	case *Obtain:
		b, err := e.registry.Obtain(n.Truth, n.Flavor)
		if err != nil {
			return nil, errors.Wrapf(err, "offset %d", n.At)
		}
		return b, nil

	case *Unary:
		return e.evalUnary(n)

	case *Binary:
		return e.evalBinary(n)

	case *Logical:
		x, err := e.EvalNode(n.X)
		if err != nil {
			return nil, err
		}
		if truthy(x) == (n.Op == "or") {
			return x, nil
		}
		return e.EvalNode(n.Y)

	case *Not:
		x, err := e.EvalNode(n.X)
		if err != nil {
			return nil, err
		}
		return !truthy(x), nil

	case *Compare:
		x, err := e.EvalNode(n.X)
		if err != nil {
			return nil, err
		}
		y, err := e.EvalNode(n.Y)
		if err != nil {
			return nil, err
		}
		switch n.Op {
		case "==":
			return equal(x, y), nil
		case "!=":
			return !equal(x, y), nil
		case "is":
			return x == y, nil
		case "is not":
			return x != y, nil
		}
	}

	return nil, &EvalError{Pos: n.Pos(), Msg: fmt.Sprintf("cannot evaluate %s", n)}
}

func (e *Evaluator) evalUnary(n *Unary) (interface{}, error) {
	x, err := e.EvalNode(n.X)
	if err != nil {
		return nil, err
	}

	if b, ok := x.(*sbool.Bool); ok {
		switch n.Op {
		case "~", "not_":
			return b.Not(), nil
		default:
			_, err := e.registry.Apply(sbool.OpSub, int64(0), b)
			return nil, errors.Wrapf(err, "offset %d", n.At)
		}
	}

	i := toInt(x)
	switch n.Op {
	case "~":
		return ^i, nil
	case "-":
		return -i, nil
	case "not_":
		if i != 0 && i != 1 {
			return nil, &EvalError{Pos: n.At, Msg: fmt.Sprintf("not_ expects 0 or 1, got %d", i)}
		}
		return e.registry.Of(i == 0), nil
	}
	return nil, &EvalError{Pos: n.At, Msg: fmt.Sprintf("unknown operator %q", n.Op)}
}

func (e *Evaluator) evalBinary(n *Binary) (interface{}, error) {
	x, err := e.EvalNode(n.X)
	if err != nil {
		return nil, err
	}
	y, err := e.EvalNode(n.Y)
	if err != nil {
		return nil, err
	}

	op, ok := sbool.ParseOp(n.Op)
	if !ok {
		return nil, &EvalError{Pos: n.At, Msg: fmt.Sprintf("unknown operator %q", n.Op)}
	}

	_, xb := x.(*sbool.Bool)
	_, yb := y.(*sbool.Bool)
	if xb || yb {
		b, err := e.registry.Apply(op, x, y)
		if err != nil {
			return nil, errors.Wrapf(err, "offset %d", n.At)
		}
		return b, nil
	}

	a, b := toInt(x), toInt(y)
	switch op {
	case sbool.OpAnd:
		return a & b, nil
	case sbool.OpOr:
		return a | b, nil
	case sbool.OpXor:
		return a ^ b, nil
	case sbool.OpAdd:
		return a + b, nil
	case sbool.OpSub:
		return a - b, nil
	case sbool.OpMul:
		return a * b, nil
	case sbool.OpDiv, sbool.OpMod:
		if b == 0 {
			return nil, &EvalError{Pos: n.At, Msg: "division by zero"}
		}
		if op == sbool.OpDiv {
			return a / b, nil
		}
		return a % b, nil
	case sbool.OpShl, sbool.OpShr:
		if b < 0 {
			return nil, &EvalError{Pos: n.At, Msg: fmt.Sprintf("negative shift count %d", b)}
		}
		if op == sbool.OpShl {
			return a << uint64(b), nil
		}
		return a >> uint64(b), nil
	}
	return nil, &EvalError{Pos: n.At, Msg: fmt.Sprintf("unknown operator %q", n.Op)}
}

// Format renders an evaluation result.
func Format(v interface{}) string {
	switch v := v.(type) {
	case *sbool.Bool:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	case int64:
		return strconv.FormatInt(v, 10)
	}
	return fmt.Sprintf("%v", v)
}

// normalize maps a resolved value onto the evaluator's value set.
func normalize(v interface{}) (interface{}, bool) {
	switch t := v.(type) {
	case *sbool.Bool:
		return t, t != nil
	case bool:
		return t, true
	case int:
		return int64(t), true
	case int8:
		return int64(t), true
	case int16:
		return int64(t), true
	case int32:
		return int64(t), true
	case int64:
		return t, true
	case uint:
		return int64(t), uint64(t) <= math.MaxInt64
	case uint8:
		return int64(t), true
	case uint16:
		return int64(t), true
	case uint32:
		return int64(t), true
	case uint64:
		return int64(t), t <= math.MaxInt64
	}
	return nil, false
}

// toInt is only called on plain values.
func toInt(v interface{}) int64 {
	switch t := v.(type) {
	case bool:
		if t {
			return 1
		}
		return 0
	case int64:
		return t
	}
	return 0
}

func truthy(v interface{}) bool {
	switch t := v.(type) {
	case *sbool.Bool:
		return t.Bool()
	case bool:
		return t
	case int64:
		return t != 0
	}
	return false
}

func equal(x, y interface{}) bool {
	if b, ok := x.(*sbool.Bool); ok {
		return b.Equal(y)
	}
	if b, ok := y.(*sbool.Bool); ok {
		return b.Equal(x)
	}
	return toInt(x) == toInt(y)
}
