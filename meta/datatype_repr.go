package meta

import (
	"github.com/dolthub/privaql/dtype"
	"github.com/dolthub/privaql/expr"
)

// DataTypeRepr folds an expr.Expr tree into its DataType, transcribing
// meta.rs's `impl ExprRepr for DataType` match arms rule for rule.
type DataTypeRepr struct{}

func (DataTypeRepr) Dot(node expr.Expr, children []dtype.DataType) (dtype.DataType, error) {
	return DotDataType(node, children)
}

// DotDataType implements the DataType::dot match. node carries the raw
// expression (for its own fields, e.g. a FunctionName or literal
// value); children holds each of node.Children()'s already-folded
// DataType, in order.
func DotDataType(node expr.Expr, children []dtype.DataType) (dtype.DataType, error) {
	switch n := node.(type) {
	case expr.Column:
		return dtype.Null, ErrInternal.New("tried to complete a column " + n.Key.String())

	case expr.Literal:
		return n.Value.DataType(), nil

	case expr.As:
		return children[0], nil

	case expr.Function:
		if len(children) == 0 {
			return dtype.Null, ErrExpected.New("function to have at least one argument")
		}
		fst := children[0]
		for _, c := range children[1:] {
			if c != fst {
				return dtype.Null, ErrExpected.New("all arguments of functions to have the same type")
			}
		}
		switch n.Name {
		case expr.Count:
			return dtype.Integer, nil
		case expr.Sum, expr.Max, expr.Min:
			if !fst.IsNumeric() {
				return dtype.Null, ErrInvalidType.New("numeric type", fst.String())
			}
			return fst, nil
		case expr.StdDev, expr.Avg:
			if !fst.IsNumeric() {
				return dtype.Null, ErrInvalidType.New("numeric type", fst.String())
			}
			return dtype.Float, nil
		case expr.Concat:
			if fst != dtype.String {
				return dtype.Null, ErrInvalidType.New("string type", fst.String())
			}
			return dtype.String, nil
		default:
			return dtype.Null, ErrInternal.New("unknown function " + n.Name.String())
		}

	case expr.IsNull:
		return dtype.Boolean, nil

	case expr.IsNotNull:
		return dtype.Boolean, nil

	case expr.InList:
		exprType := children[0]
		for _, elt := range children[1:] {
			if elt != exprType {
				return dtype.Null, ErrExpected.New(
					"in an expression of the form `a IN (b, [c, ..])`, the type of `a` needs to be the same as the type of each list element")
			}
		}
		return exprType, nil

	case expr.Between:
		exprType, low, high := children[0], children[1], children[2]
		if exprType.IsNumeric() && low.IsNumeric() && high.IsNumeric() {
			return dtype.Boolean, nil
		}
		return dtype.Null, ErrExpected.New(
			"in an expression of the form `a BETWEEN b AND c`, the type of `a` needs to be the same as the type of both `b` and `c`")

	case expr.UnaryOp:
		switch n.Op {
		case expr.Plus, expr.Minus:
			if !children[0].IsNumeric() {
				return dtype.Null, ErrExpected.New("the argument of `+` or `-` to be a numeric type")
			}
			return children[0], nil
		case expr.Not:
			if children[0] != dtype.Boolean {
				return dtype.Null, ErrExpected.New("the argument of `NOT` to be a boolean")
			}
			return children[0], nil
		default:
			return dtype.Null, ErrInternal.New("unknown unary operator")
		}

	case expr.BinaryOp:
		left, right := children[0], children[1]
		switch n.Op {
		case expr.OpPlus, expr.OpMinus, expr.OpMultiply, expr.OpDivide, expr.OpModulus:
			if !left.IsNumeric() || !right.IsNumeric() {
				return dtype.Null, ErrExpected.New(
					"the type of both arguments of a binary arithmetic operator expression to both be numeric")
			}
			return left, nil
		case expr.OpGt, expr.OpLt, expr.OpGtEq, expr.OpLtEq, expr.OpEq, expr.OpNotEq:
			if left != right {
				return dtype.Null, ErrExpected.New(
					"the types of left and right expressions in a binary comparison operator to be the same")
			}
			return dtype.Boolean, nil
		case expr.OpLike, expr.OpNotLike:
			if left != dtype.String || right != dtype.String {
				return dtype.Null, ErrExpected.New(
					"in an expression of the form `a LIKE b`, both `a` and `b` need to be strings")
			}
			return dtype.Boolean, nil
		case expr.OpAnd, expr.OpOr:
			if left != dtype.Boolean || right != dtype.Boolean {
				return dtype.Null, ErrExpected.New(
					"in an expression of the form `a AND b` or `a OR b`, both `a` and `b` need to be booleans")
			}
			return dtype.Boolean, nil
		default:
			return dtype.Null, ErrInternal.New("unknown binary operator")
		}

	case expr.Case:
		nConds := len(n.Conditions)
		nResults := len(n.Results)
		if nResults == 0 {
			return dtype.Null, ErrExpected.New("at least one `THEN ...` in an expression of the form `CASE`")
		}
		condTypes := children[:nConds]
		resultTypes := children[nConds : nConds+nResults]
		fst := resultTypes[len(resultTypes)-1]
		for _, r := range resultTypes[:len(resultTypes)-1] {
			if r != fst {
				return dtype.Null, caseErr()
			}
		}
		for _, c := range condTypes {
			if c != dtype.Boolean {
				return dtype.Null, caseErr()
			}
		}
		if n.Else != nil {
			elseType := children[nConds+nResults]
			if elseType != fst {
				return dtype.Null, caseErr()
			}
		}
		return fst, nil

	case expr.Hash:
		return dtype.Bytes, nil

	case expr.Replace:
		return children[1], nil

	case expr.Noisy:
		return children[0], nil

	default:
		return dtype.Null, ErrInternal.New("unknown expression node")
	}
}

func caseErr() error {
	return ErrExpected.New(
		"in an expression of the form `CASE WHEN a THEN b ELSE c`, `a` needs to be a boolean and `b` and `c` need to have the same type")
}
