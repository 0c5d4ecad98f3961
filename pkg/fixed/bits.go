// Package fixed decodes the packed integer fields and Q28.4 fixed-point
// values used by the binary graph format.
package fixed

import "velo_router/pkg/check"

const intSize = 32

// ExtractBits returns the length-bit field of value starting at bit start,
// sign-extended when signed is true and zero-extended otherwise.
func ExtractBits(value int32, start, length int, signed bool) (int32, error) {
	if signed {
		return ExtractSigned(value, start, length)
	}
	return ExtractUnsigned(value, start, length)
}

// ExtractSigned returns the sign-extended length-bit field of value starting
// at bit start. length may be the full 32 bits.
func ExtractSigned(value int32, start, length int) (int32, error) {
	if err := checkRange(start, length, intSize); err != nil {
		return 0, err
	}
	return signed(value, start, length), nil
}

// ExtractUnsigned returns the zero-extended length-bit field of value
// starting at bit start. length is at most 31 so the result stays positive.
func ExtractUnsigned(value int32, start, length int) (int32, error) {
	if err := checkRange(start, length, intSize-1); err != nil {
		return 0, err
	}
	return unsigned(value, start, length), nil
}

// MustExtractSigned is like ExtractSigned but panics on an invalid range.
// It is meant for constant field layouts.
func MustExtractSigned(value int32, start, length int) int32 {
	v, err := ExtractSigned(value, start, length)
	if err != nil {
		panic(err)
	}
	return v
}

// MustExtractUnsigned is like ExtractUnsigned but panics on an invalid range.
func MustExtractUnsigned(value int32, start, length int) int32 {
	v, err := ExtractUnsigned(value, start, length)
	if err != nil {
		panic(err)
	}
	return v
}

func checkRange(start, length, maxLength int) error {
	return check.Argument(
		start >= 0 && start < intSize && length >= 0 && length <= maxLength && start+length <= intSize,
		"bit range start=%d length=%d", start, length)
}

func signed(value int32, start, length int) int32 {
	if length == 0 {
		return 0
	}
	return value << uint(intSize-start-length) >> uint(intSize-length)
}

func unsigned(value int32, start, length int) int32 {
	if length == 0 {
		return 0
	}
	return int32(uint32(value) << uint(intSize-start-length) >> uint(intSize-length))
}
