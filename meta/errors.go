package meta

import "gopkg.in/src-d/go-errors.v1"

// ValidateError kinds, one NewKind per variant of the teacher's
// ValidateError enum (meta.rs): Internal, Expected, InvalidType,
// UnknownType, SchemaMismatch.
var (
	ErrInternal       = errors.NewKind("internal error: %s")
	ErrExpected       = errors.NewKind("expected %s")
	ErrInvalidType    = errors.NewKind("expected %s, got %s")
	ErrUnknownType    = errors.NewKind("unknown type: %s")
	ErrSchemaMismatch = errors.NewKind("schema mismatch: %s")
)
