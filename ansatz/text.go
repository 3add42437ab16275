package ansatz

import (
	"github.com/dolthub/privaql/expr"
	"github.com/dolthub/privaql/rel"
)

func unaryOpText(op expr.UnaryOperator) string {
	switch op {
	case expr.Plus:
		return "+"
	case expr.Minus:
		return "-"
	case expr.Not:
		return "NOT"
	default:
		return "?"
	}
}

func binaryOpText(op expr.BinaryOperator) string {
	switch op {
	case expr.OpPlus:
		return "+"
	case expr.OpMinus:
		return "-"
	case expr.OpMultiply:
		return "*"
	case expr.OpDivide:
		return "/"
	case expr.OpModulus:
		return "%"
	case expr.OpGt:
		return ">"
	case expr.OpLt:
		return "<"
	case expr.OpGtEq:
		return ">="
	case expr.OpLtEq:
		return "<="
	case expr.OpEq:
		return "="
	case expr.OpNotEq:
		return "!="
	case expr.OpLike:
		return "LIKE"
	case expr.OpNotLike:
		return "NOT LIKE"
	case expr.OpAnd:
		return "AND"
	case expr.OpOr:
		return "OR"
	default:
		return "?"
	}
}

func joinKindText(k rel.JoinKind) string {
	switch k {
	case rel.InnerJoin:
		return "INNER"
	case rel.LeftJoin:
		return "LEFT"
	case rel.RightJoin:
		return "RIGHT"
	case rel.FullJoin:
		return "FULL"
	case rel.CrossJoin:
		return "CROSS"
	default:
		return "INNER"
	}
}

func setOpText(op rel.SetOperator) string {
	switch op {
	case rel.Union:
		return "UNION"
	case rel.Intersect:
		return "INTERSECT"
	case rel.Except:
		return "EXCEPT"
	default:
		return "UNION"
	}
}

func textToUnaryOp(s string) expr.UnaryOperator {
	switch s {
	case "+":
		return expr.Plus
	case "-":
		return expr.Minus
	default:
		return expr.Not
	}
}

func textToBinaryOp(s string) expr.BinaryOperator {
	switch s {
	case "+":
		return expr.OpPlus
	case "-":
		return expr.OpMinus
	case "*":
		return expr.OpMultiply
	case "/":
		return expr.OpDivide
	case "%":
		return expr.OpModulus
	case ">":
		return expr.OpGt
	case "<":
		return expr.OpLt
	case ">=":
		return expr.OpGtEq
	case "<=":
		return expr.OpLtEq
	case "=":
		return expr.OpEq
	case "!=":
		return expr.OpNotEq
	case "LIKE":
		return expr.OpLike
	case "NOT LIKE":
		return expr.OpNotLike
	case "OR":
		return expr.OpOr
	default:
		return expr.OpAnd
	}
}

func textToJoinKind(s string) rel.JoinKind {
	switch s {
	case "LEFT":
		return rel.LeftJoin
	case "RIGHT":
		return rel.RightJoin
	case "FULL":
		return rel.FullJoin
	case "CROSS":
		return rel.CrossJoin
	default:
		return rel.InnerJoin
	}
}

func textToSetOp(s string) rel.SetOperator {
	switch s {
	case "INTERSECT":
		return rel.Intersect
	case "EXCEPT":
		return rel.Except
	default:
		return rel.Union
	}
}

func textToFunctionName(s string) (expr.FunctionName, bool) {
	switch s {
	case "COUNT":
		return expr.Count, true
	case "SUM":
		return expr.Sum, true
	case "MIN":
		return expr.Min, true
	case "MAX":
		return expr.Max, true
	case "AVG":
		return expr.Avg, true
	case "STDDEV":
		return expr.StdDev, true
	case "CONCAT":
		return expr.Concat, true
	default:
		return 0, false
	}
}
