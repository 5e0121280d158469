// fm_lut.go - Lookup tables for sine and exp2 with linear interpolation

package main

import "math"

// Precomputed scale factors
const (
	oscLUTSizeF     = float32(OSC_LUT_SIZE)
	exp2LUTSizeF    = float32(EXP2_LUT_SIZE)
	exp2LUTRange    = float32(EXP2_LUT_MAX - EXP2_LUT_MIN)
	exp2LUTRangeInv = 1.0 / exp2LUTRange
)

var (
	sinLUT         [OSC_LUT_SIZE]float32
	exp2LUT        [EXP2_LUT_SIZE]float32
	lutInitialized bool
)

// initLUT populates the sine and exp2 tables. Call once at startup,
// before any audio processing; lookups are reentrant afterwards.
func initLUT() {
	if lutInitialized {
		return
	}

	for i := 0; i < OSC_LUT_SIZE; i++ {
		angle := 2.0 * math.Pi * float64(i) / float64(OSC_LUT_SIZE)
		sinLUT[i] = float32(math.Sin(angle))
	}

	for i := 0; i < EXP2_LUT_SIZE; i++ {
		x := EXP2_LUT_MIN + (float64(i)/float64(EXP2_LUT_SIZE))*float64(exp2LUTRange)
		exp2LUT[i] = float32(math.Exp2(x))
	}

	lutInitialized = true
}

// lutSin looks up sin(2*pi*phase) with linear interpolation.
// Expects phase already near [0, 1); a single wrap handles the
// [-1, 2) range produced by the oscillator.
func lutSin(phase float32) float32 {
	if phase < 0.0 {
		phase += 1.0
	} else if phase >= 1.0 {
		phase -= 1.0
	}

	index := phase * oscLUTSizeF
	whole := int(index)
	frac := index - float32(whole)
	// Masking makes deep FM excursions wrap instead of misindexing
	i0 := whole & (OSC_LUT_SIZE - 1)
	i1 := (i0 + 1) & (OSC_LUT_SIZE - 1)

	return sinLUT[i0] + frac*(sinLUT[i1]-sinLUT[i0])
}

// lutExp2 looks up 2^x with linear interpolation, valid for x in [-20, 10].
func lutExp2(x float32) float32 {
	// Fast path for the common case
	if x == 0.0 {
		return 1.0
	}

	// Clamp to valid range (no diagnostics in the hot path)
	if x < EXP2_LUT_MIN {
		x = EXP2_LUT_MIN
	} else if x >= EXP2_LUT_MAX {
		x = EXP2_LUT_MAX - 0.001
	}

	normalized := (x - EXP2_LUT_MIN) * exp2LUTRangeInv
	indexF := normalized * (exp2LUTSizeF - 1)
	i0 := int(indexF)
	frac := indexF - float32(i0)

	return exp2LUT[i0] + frac*(exp2LUT[i0+1]-exp2LUT[i0])
}

// lutSquare returns a square wave sample (expects phase in [0, 1)).
func lutSquare(phase float32) float32 {
	if phase < 0.5 {
		return 1.0
	}
	return -1.0
}

// lutTriangle returns a triangle wave sample (expects phase in [0, 1)).
func lutTriangle(phase float32) float32 {
	return 1.0 - 2.0*abs32(2.0*phase-1.0)
}

// lutSaw returns a falling sawtooth sample (expects phase in [0, 1)).
func lutSaw(phase float32) float32 {
	return 1.0 - 2.0*phase
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
