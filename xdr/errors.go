package xdr

import "errors"

// common decode errors
var (
	ErrTruncatedInput      = errors.New("truncated input")
	ErrTrailingBytes       = errors.New("unexpected trailing bytes")
	ErrLengthExceedsMax    = errors.New("length exceeds maximum")
	ErrNonZeroPadding      = errors.New("non zero padding byte")
	ErrInvalidBool         = errors.New("invalid bool value")
	ErrInvalidOptional     = errors.New("invalid optional flag")
	ErrInvalidUTF8         = errors.New("string is not valid utf-8")
	ErrInvalidDiscriminant = errors.New("invalid union discriminant")
)
