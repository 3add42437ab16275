package dtype

import (
	"github.com/spf13/cast"
)

// LiteralValue is the sum type of constant values an Expr.Literal node may
// hold: Long, Double, Boolean, StringLiteral or Null.
type LiteralValue interface {
	isLiteralValue()
	// DataType returns the DataType this literal carries.
	DataType() DataType
}

// LongValue is a 64-bit integer literal.
type LongValue int64

func (LongValue) isLiteralValue()    {}
func (LongValue) DataType() DataType { return Integer }

// DoubleValue is a 64-bit floating point literal.
type DoubleValue float64

func (DoubleValue) isLiteralValue()    {}
func (DoubleValue) DataType() DataType { return Float }

// BoolValue is a boolean literal.
type BoolValue bool

func (BoolValue) isLiteralValue()    {}
func (BoolValue) DataType() DataType { return Boolean }

// StringValue is a string literal.
type StringValue string

func (StringValue) isLiteralValue()    {}
func (StringValue) DataType() DataType { return String }

// NullLiteral is the untyped SQL NULL literal.
type NullLiteral struct{}

func (NullLiteral) isLiteralValue()    {}
func (NullLiteral) DataType() DataType { return Null }

// NewLong coerces an arbitrary Go value (int, int32, string numerals, ...)
// into a LongValue, the way callers at the parser boundary hand us
// loosely-typed literal payloads.
func NewLong(v interface{}) (LongValue, error) {
	n, err := cast.ToInt64E(v)
	if err != nil {
		return 0, err
	}
	return LongValue(n), nil
}

// NewDouble coerces an arbitrary Go value into a DoubleValue.
func NewDouble(v interface{}) (DoubleValue, error) {
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, err
	}
	return DoubleValue(f), nil
}

// NewBool coerces an arbitrary Go value into a BoolValue.
func NewBool(v interface{}) (BoolValue, error) {
	b, err := cast.ToBoolE(v)
	if err != nil {
		return false, err
	}
	return BoolValue(b), nil
}

// NewString coerces an arbitrary Go value into a StringValue.
func NewString(v interface{}) (StringValue, error) {
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", err
	}
	return StringValue(s), nil
}

// DistributionKind names the noise distribution a Noisy expression draws
// from.
type DistributionKind int

const (
	// Laplace is the only distribution kind required by the
	// differential-privacy policy's noise injection step.
	Laplace DistributionKind = iota
)

func (k DistributionKind) String() string {
	switch k {
	case Laplace:
		return "Laplace"
	default:
		return "Unknown"
	}
}

// Distribution parameterises the noise a Noisy expression node adds,
// e.g. Laplace(mean=0, variance=sensitivity/epsilon).
type Distribution struct {
	Kind     DistributionKind
	Mean     float64
	Variance float64
}
