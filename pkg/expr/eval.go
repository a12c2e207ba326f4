package expr

import (
	"math"

	"cinder/pkg/errors"
	"cinder/pkg/vm"
)

// Evaluator walks an expression tree and drives the vm's arithmetic
// dispatcher. Thrown runtime values surface as *errors.RuntimeError with
// the throwing operator's position; the thrown value stays reachable
// through the error's cause chain.
type Evaluator struct {
	machine *vm.VM
}

func NewEvaluator(machine *vm.VM) *Evaluator {
	return &Evaluator{machine: machine}
}

// EvaluateString tokenizes, parses and evaluates a single expression.
func (e *Evaluator) EvaluateString(source string) (vm.Value, error) {
	node, err := NewParser(NewLexer(source)).Parse()
	if err != nil {
		return vm.Undefined, err
	}
	return e.Evaluate(node)
}

func (e *Evaluator) Evaluate(node Node) (vm.Value, error) {
	switch n := node.(type) {
	case *NumberLiteral:
		return vm.NumberValue(n.Value), nil
	case *BigIntLiteral:
		return vm.NewBigInt(false, n.Magnitude), nil
	case *StringLiteral:
		return vm.NewString(n.Value), nil
	case *Identifier:
		return identifierValue(n.Name), nil
	case *UnaryExpr:
		operand, err := e.Evaluate(n.Operand)
		if err != nil {
			return vm.Undefined, err
		}
		result, err := e.machine.EvaluateUnary(operand, n.Op.Type == TokenPlus)
		if err != nil {
			return vm.Undefined, e.runtimeError(n.Op, err)
		}
		return result, nil
	case *BinaryExpr:
		left, err := e.Evaluate(n.Left)
		if err != nil {
			return vm.Undefined, err
		}
		right, err := e.Evaluate(n.Right)
		if err != nil {
			return vm.Undefined, err
		}
		var result vm.Value
		if n.Op.Type == TokenPlus {
			result, err = e.machine.EvaluateAddition(left, right)
		} else {
			result, err = e.machine.EvaluateBinary(binaryOp(n.Op.Type), left, right)
		}
		if err != nil {
			return vm.Undefined, e.runtimeError(n.Op, err)
		}
		return result, nil
	}
	return vm.Undefined, &errors.RuntimeError{Position: node.Pos(), Msg: "unsupported expression"}
}

func (e *Evaluator) runtimeError(op Token, cause error) error {
	return (&errors.RuntimeError{Position: op.Pos, Msg: cause.Error()}).CausedBy(cause)
}

func binaryOp(tt TokenType) vm.ArithmeticOp {
	switch tt {
	case TokenMinus:
		return vm.OpSubtract
	case TokenStar:
		return vm.OpMultiply
	case TokenSlash:
		return vm.OpDivide
	case TokenPercent:
		return vm.OpRemainder
	case TokenStarStar:
		return vm.OpExponent
	}
	panic("expr: not a binary arithmetic token: " + tt.String())
}

func identifierValue(name string) vm.Value {
	switch name {
	case "true":
		return vm.True
	case "false":
		return vm.False
	case "null":
		return vm.Null
	case "NaN":
		return vm.NaN
	case "Infinity":
		return vm.NumberValue(math.Inf(1))
	default: // undefined
		return vm.Undefined
	}
}
