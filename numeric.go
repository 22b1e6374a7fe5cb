// Copyright (c) 2025 Neomantra Corp
//
// Fixed-point numeric sub-codec.
//
// A value is carried as an unsigned big-endian mantissa followed by a
// one-byte scale; the decoded value is mantissa * 10^(-scale). Two widths
// exist: 5 bytes (4-byte mantissa) for prices and quantities, and 10 bytes
// (9-byte mantissa) for kline volume.
//
// Inputs are decimal.Decimal, never float64: the mantissa and scale are
// taken from the canonical decimal string, so round trips are exact.

package market

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	Numeric5_Size  = 5
	Numeric10_Size = 10

	numeric10MantissaBits = 72 // 9 bytes
)

// mantissaScale splits a decimal into its digit string and scale.
// The sign is not representable on the wire, so negatives overflow.
func mantissaScale(d decimal.Decimal) (string, int, error) {
	str := d.String()
	if strings.HasPrefix(str, "-") {
		return "", 0, fmt.Errorf("%w: negative value %s", ErrEncodeOverflow, str)
	}
	scale := 0
	if dot := strings.IndexByte(str, '.'); dot >= 0 {
		scale = len(str) - dot - 1
		str = str[:dot] + str[dot+1:]
	}
	if scale > math.MaxUint8 {
		return "", 0, fmt.Errorf("%w: scale %d exceeds one byte", ErrEncodeOverflow, scale)
	}
	return str, scale, nil
}

// AppendNumeric5 appends the 5-byte form of d to dst.
func AppendNumeric5(dst []byte, d decimal.Decimal) ([]byte, error) {
	digits, scale, err := mantissaScale(d)
	if err != nil {
		return dst, err
	}
	mantissa, err := strconv.ParseUint(digits, 10, 64)
	if err != nil || mantissa > math.MaxUint32 {
		return dst, fmt.Errorf("%w: mantissa %s exceeds 4 bytes", ErrEncodeOverflow, digits)
	}
	dst = binary.BigEndian.AppendUint32(dst, uint32(mantissa))
	return append(dst, byte(scale)), nil
}

// EncodeNumeric5 returns the 5-byte form of d.
func EncodeNumeric5(d decimal.Decimal) ([]byte, error) {
	return AppendNumeric5(make([]byte, 0, Numeric5_Size), d)
}

// DecodeNumeric5 reads a 5-byte numeric from the front of b.
func DecodeNumeric5(b []byte) (decimal.Decimal, error) {
	if len(b) < Numeric5_Size {
		return decimal.Decimal{}, unexpectedBytesError(len(b), Numeric5_Size)
	}
	mantissa := binary.BigEndian.Uint32(b[0:4])
	return decimal.New(int64(mantissa), -int32(b[4])), nil
}

// AppendNumeric10 appends the 10-byte form of d to dst.
func AppendNumeric10(dst []byte, d decimal.Decimal) ([]byte, error) {
	digits, scale, err := mantissaScale(d)
	if err != nil {
		return dst, err
	}
	mantissa, ok := new(big.Int).SetString(digits, 10)
	if !ok || mantissa.BitLen() > numeric10MantissaBits {
		return dst, fmt.Errorf("%w: mantissa %s exceeds 9 bytes", ErrEncodeOverflow, digits)
	}
	var buf [Numeric10_Size - 1]byte
	mantissa.FillBytes(buf[:])
	dst = append(dst, buf[:]...)
	return append(dst, byte(scale)), nil
}

// EncodeNumeric10 returns the 10-byte form of d.
func EncodeNumeric10(d decimal.Decimal) ([]byte, error) {
	return AppendNumeric10(make([]byte, 0, Numeric10_Size), d)
}

// DecodeNumeric10 reads a 10-byte numeric from the front of b.
func DecodeNumeric10(b []byte) (decimal.Decimal, error) {
	if len(b) < Numeric10_Size {
		return decimal.Decimal{}, unexpectedBytesError(len(b), Numeric10_Size)
	}
	mantissa := new(big.Int).SetBytes(b[0:9])
	return decimal.NewFromBigInt(mantissa, -int32(b[9])), nil
}
