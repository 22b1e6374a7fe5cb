// Copyright (c) 2025 Neomantra Corp

package market

import "fmt"

var (
	ErrUnknownEnum        = fmt.Errorf("unknown enum value")
	ErrEncodeOverflow     = fmt.Errorf("numeric overflows encoding width")
	ErrTruncatedInput     = fmt.Errorf("truncated input")
	ErrInvariantViolation = fmt.Errorf("invariant violation")
	ErrNoMessage          = fmt.Errorf("no message scanned")
	ErrMalformedFrame     = fmt.Errorf("malformed frame")
)

func unexpectedBytesError(got int, want int) error {
	return fmt.Errorf("%w: expected %d bytes, got %d", ErrTruncatedInput, want, got)
}

func unexpectedMsgTypeError(got MessageType, want MessageType) error {
	return fmt.Errorf("expected MessageType %d, got %d", want, got)
}
