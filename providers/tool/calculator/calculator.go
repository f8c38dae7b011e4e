// Package calculator provides a safe arithmetic evaluator tool. Expressions
// are parsed into an AST and walked node by node, so no user input is ever
// executed.
package calculator

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"math"
	"strconv"

	"github.com/vatsavvamsi-hub/autonomous-task-agent/providers/tool"
)

// New returns the calculator tool specification.
func New() tool.Spec {
	return tool.Spec{
		Name:        "calculator",
		Description: "Evaluates a mathematical expression and returns the numeric result. Supports +, -, *, /, %, parentheses, and unary minus.",
		Params: map[string]string{
			"expression": "The mathematical expression to evaluate, e.g. '(2 + 3) * 4'",
		},
		Run: run,
	}
}

func run(_ context.Context, args tool.Args) (string, error) {
	expression, err := args.Text("expression")
	if err != nil {
		return "", err
	}

	result, err := Evaluate(expression)
	switch {
	case errors.Is(err, ErrDivisionByZero):
		return "Error: Division by zero.", nil
	case err != nil:
		return fmt.Sprintf("Error evaluating '%s': %v", expression, err), nil
	}

	return "Result: " + strconv.FormatFloat(result, 'f', -1, 64), nil
}

// ErrDivisionByZero is returned by Evaluate when the divisor of a / or %
// operation is zero.
var ErrDivisionByZero = errors.New("division by zero")

// Evaluate parses expression as arithmetic and computes its value. Only
// numeric literals, the binary operators + - * / %, parenthesised groups,
// and unary plus/minus are accepted.
func Evaluate(expression string) (float64, error) {
	node, err := parser.ParseExpr(expression)
	if err != nil {
		return 0, errors.New("not a valid arithmetic expression")
	}
	return evalNode(node)
}

func evalNode(node ast.Expr) (float64, error) {
	switch n := node.(type) {
	case *ast.BasicLit:
		if n.Kind != token.INT && n.Kind != token.FLOAT {
			return 0, fmt.Errorf("unsupported literal %q", n.Value)
		}
		return strconv.ParseFloat(n.Value, 64)

	case *ast.ParenExpr:
		return evalNode(n.X)

	case *ast.UnaryExpr:
		operand, err := evalNode(n.X)
		if err != nil {
			return 0, err
		}
		switch n.Op {
		case token.SUB:
			return -operand, nil
		case token.ADD:
			return operand, nil
		default:
			return 0, fmt.Errorf("unsupported unary operator %q", n.Op)
		}

	case *ast.BinaryExpr:
		left, err := evalNode(n.X)
		if err != nil {
			return 0, err
		}
		right, err := evalNode(n.Y)
		if err != nil {
			return 0, err
		}
		return applyBinary(n.Op, left, right)

	default:
		return 0, fmt.Errorf("unsupported syntax in expression")
	}
}

func applyBinary(op token.Token, left, right float64) (float64, error) {
	switch op {
	case token.ADD:
		return left + right, nil
	case token.SUB:
		return left - right, nil
	case token.MUL:
		return left * right, nil
	case token.QUO:
		if right == 0 {
			return 0, ErrDivisionByZero
		}
		return left / right, nil
	case token.REM:
		if right == 0 {
			return 0, ErrDivisionByZero
		}
		return math.Mod(left, right), nil
	default:
		return 0, fmt.Errorf("unsupported operator %q", op)
	}
}
