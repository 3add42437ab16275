// Package bigquery provides the BigQuery ansatz.Backend: an override
// table replacing the default Hash lowering with BigQuery's own digest
// functions, since BigQuery has no generic "salted hash" builtin.
//
// Grounded on backends/bigquery/mod.rs's BigQueryExprT::expr_ansatz,
// which rewrites an Expr::Hash node into
// TO_BASE64(SHA256(CONCAT(<base64 salt>, expr))).
package bigquery

import (
	"encoding/base64"
	"fmt"

	"github.com/dolthub/privaql/ansatz"
	"github.com/dolthub/privaql/dtype"
	"github.com/dolthub/privaql/expr"
)

// Backend is the BigQuery ansatz.Backend. Every lowering falls through
// to ansatz.Default except Hash, which has no portable SQL rendering.
var Backend = ansatz.NewBackend("bigquery").OverrideExpr(expr.Hash{}, lowerHash)

func lowerHash(node expr.Expr, children []ansatz.ExprAst) (ansatz.ExprAst, error) {
	n := node.(expr.Hash)

	salt, ok := children[1].(ansatz.LiteralAst)
	if !ok {
		return nil, fmt.Errorf("bigquery: Hash salt must lower to a literal, got %T", children[1])
	}
	saltBytes, err := saltLiteralBytes(salt.Value)
	if err != nil {
		return nil, err
	}
	saltLiteral := ansatz.LiteralAst{Value: dtype.StringValue(base64.StdEncoding.EncodeToString(saltBytes))}

	concat := ansatz.FuncCallAst{Name: "CONCAT", Args: []ansatz.ExprAst{saltLiteral, children[0]}}

	algoName, err := bigQueryAlgoName(n.Algo)
	if err != nil {
		return nil, err
	}
	digest := ansatz.FuncCallAst{Name: algoName, Args: []ansatz.ExprAst{concat}}

	return ansatz.FuncCallAst{Name: "TO_BASE64", Args: []ansatz.ExprAst{digest}}, nil
}

func saltLiteralBytes(v dtype.LiteralValue) ([]byte, error) {
	s, ok := v.(dtype.StringValue)
	if !ok {
		return nil, fmt.Errorf("bigquery: Hash salt literal must be a string, got %T", v)
	}
	return []byte(s), nil
}

func bigQueryAlgoName(algo expr.HashAlgorithm) (string, error) {
	switch algo {
	case expr.SHA256:
		return "SHA256", nil
	default:
		return "", fmt.Errorf("bigquery: unsupported hash algorithm %s", algo)
	}
}
