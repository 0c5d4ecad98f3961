package fixed

import (
	"errors"
	"testing"

	"velo_router/pkg/check"
)

func TestOfIntRoundTrip(t *testing.T) {
	for _, i := range []int32{0, 1, -1, 7, -7, 2022, -2022, 1<<27 - 1, -1 << 27} {
		q, err := OfInt(i)
		if err != nil {
			t.Fatalf("OfInt(%d): %v", i, err)
		}
		if got := AsFloat64(q); got != float64(i) {
			t.Errorf("AsFloat64(OfInt(%d)) = %v", i, got)
		}
	}
}

func TestOfIntMatchesShift(t *testing.T) {
	for _, i := range []int32{-1, -2, -1000, -1 << 27} {
		q, err := OfInt(i)
		if err != nil {
			t.Fatalf("OfInt(%d): %v", i, err)
		}
		if q != i*16 {
			t.Errorf("OfInt(%d) = %d, want %d", i, q, i*16)
		}
	}
}

func TestOfIntOutOfRange(t *testing.T) {
	for _, i := range []int32{1 << 28, -1<<28 - 1} {
		if _, err := OfInt(i); !errors.Is(err, check.ErrInvalidArgument) {
			t.Errorf("OfInt(%d) err = %v, want ErrInvalidArgument", i, err)
		}
	}
	for _, i := range []int32{1<<28 - 1, -1 << 28} {
		if _, err := OfInt(i); err != nil {
			t.Errorf("OfInt(%d) err = %v, want nil", i, err)
		}
	}
}

func TestAsFloat(t *testing.T) {
	tests := []struct {
		q    int32
		want float64
	}{
		{0x10b, 16.6875},
		{0x100, 16},
		{-1, -0.0625},
		{0x1801, 384.0625},
	}
	for _, tt := range tests {
		if got := AsFloat64(tt.q); got != tt.want {
			t.Errorf("AsFloat64(%#x) = %v, want %v", tt.q, got, tt.want)
		}
		if got := AsFloat32(tt.q); got != float32(tt.want) {
			t.Errorf("AsFloat32(%#x) = %v, want %v", tt.q, got, tt.want)
		}
	}
}

func TestCeilDiv(t *testing.T) {
	tests := []struct{ x, y, want int }{
		{0, 32, 0},
		{267, 32, 9},
		{256, 32, 8},
		{1, 1, 1},
	}
	for _, tt := range tests {
		got, err := CeilDiv(tt.x, tt.y)
		if err != nil {
			t.Fatalf("CeilDiv(%d, %d): %v", tt.x, tt.y, err)
		}
		if got != tt.want {
			t.Errorf("CeilDiv(%d, %d) = %d, want %d", tt.x, tt.y, got, tt.want)
		}
	}
	if _, err := CeilDiv(-1, 2); !errors.Is(err, check.ErrInvalidArgument) {
		t.Errorf("CeilDiv(-1, 2) err = %v", err)
	}
	if _, err := CeilDiv(1, 0); !errors.Is(err, check.ErrInvalidArgument) {
		t.Errorf("CeilDiv(1, 0) err = %v", err)
	}
}
