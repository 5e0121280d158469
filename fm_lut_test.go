// fm_lut_test.go - Tests for the sine and exp2 lookup tables

package main

import (
	"math"
	"testing"
)

func TestLUT_SineAccuracy(t *testing.T) {
	initLUT()

	// Linear interpolation over 4096 entries keeps the error far below
	// anything audible
	maxErr := 0.0
	for i := 0; i < 10000; i++ {
		phase := float32(i) / 10000.0
		got := float64(lutSin(phase))
		want := math.Sin(2.0 * math.Pi * float64(phase))
		if err := math.Abs(got - want); err > maxErr {
			maxErr = err
		}
	}
	if maxErr > 1e-5 {
		t.Errorf("sine LUT max error %g, want < 1e-5", maxErr)
	}
}

func TestLUT_SineWrap(t *testing.T) {
	initLUT()

	cases := []struct {
		phase   float32
		wrapped float32
	}{
		{-0.25, 0.75},
		{1.25, 0.25},
		{0.5, 0.5},
	}
	for _, c := range cases {
		got := lutSin(c.phase)
		want := lutSin(c.wrapped)
		if math.Abs(float64(got-want)) > 1e-6 {
			t.Errorf("lutSin(%v) = %v, want lutSin(%v) = %v", c.phase, got, c.wrapped, want)
		}
	}
}

func TestLUT_Exp2(t *testing.T) {
	initLUT()

	// Fast path
	if got := lutExp2(0.0); got != 1.0 {
		t.Errorf("lutExp2(0) = %v, want exactly 1.0", got)
	}

	for _, x := range []float32{-14.0, -5.0, -0.5, 0.25, 1.0, 5.0, 9.9} {
		got := float64(lutExp2(x))
		want := math.Exp2(float64(x))
		if rel := math.Abs(got-want) / want; rel > 1e-4 {
			t.Errorf("lutExp2(%v) = %v, want %v (rel err %g)", x, got, want, rel)
		}
	}

	// Out-of-range inputs clamp instead of misindexing
	if got := lutExp2(-100.0); got <= 0 || got > 2e-6 {
		t.Errorf("lutExp2(-100) = %v, want clamp to 2^-20", got)
	}
	if got := lutExp2(100.0); got < 1000.0 || got > 1025.0 {
		t.Errorf("lutExp2(100) = %v, want clamp near 2^10", got)
	}
}

func TestLUT_ClosedFormWaves(t *testing.T) {
	cases := []struct {
		name string
		fn   func(float32) float32
		in   float32
		want float32
	}{
		{"square low half", lutSquare, 0.25, 1.0},
		{"square high half", lutSquare, 0.75, -1.0},
		{"triangle start", lutTriangle, 0.0, -1.0},
		{"triangle peak", lutTriangle, 0.5, 1.0},
		{"saw start", lutSaw, 0.0, 1.0},
		{"saw middle", lutSaw, 0.5, 0.0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.fn(c.in); math.Abs(float64(got-c.want)) > 1e-6 {
				t.Errorf("got %v, want %v", got, c.want)
			}
		})
	}
}
