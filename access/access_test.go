package access

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorFormatsReasonAndDescription(t *testing.T) {
	require := require.New(t)
	cause := errors.New("connection refused")
	err := Wrap(BackendErrorKind, "could not reach backend", cause)
	require.Equal("backend: could not reach backend", err.Error())
	require.Equal(cause, err.Unwrap())

	err.Description = "retrying in 5s"
	require.Equal("backend: could not reach backend (retrying in 5s)", err.Error())
}

func TestErrorKindString(t *testing.T) {
	cases := map[ErrorKind]string{
		ParserErrorKind:   "parser",
		UnparserErrorKind: "unparser",
		BackendErrorKind:  "backend",
		AccessErrorKind:   "access",
		ErrorKind(99):     "unknown",
	}
	for kind, want := range cases {
		require.Equal(t, want, kind.String())
	}
}
