// fm_oscillator.go - Phase accumulator oscillator with phase-modulation input

package main

// Oscillator is a phase accumulator with phase-modulation and
// pitch-multiplier inputs. Phase lives in [0, 1); the increment is
// cached as frequency / SAMPLE_RATE.
type Oscillator struct {
	phase    float32
	phaseInc float32 // Cached: frequency * INV_SAMPLE_RATE
	waveform uint8
}

// SetFrequency clamps the frequency to [0, 20000] Hz and caches the
// per-sample phase increment.
func (o *Oscillator) SetFrequency(freq float32) {
	if freq < 0.0 {
		freq = 0.0
	} else if freq > 20000.0 {
		freq = 20000.0
	}
	o.phaseInc = freq * INV_SAMPLE_RATE
}

// Frequency returns the configured frequency in Hz.
func (o *Oscillator) Frequency() float32 {
	return o.phaseInc * SAMPLE_RATE
}

// SetWaveform selects the output waveform (WAVEFORM_SINE default).
func (o *Oscillator) SetWaveform(waveform uint8) {
	if waveform > WAVEFORM_SQUARE {
		waveform = WAVEFORM_SINE
	}
	o.waveform = waveform
}

// Reset returns the phase to zero.
func (o *Oscillator) Reset() {
	o.phase = 0.0
}

// Process generates one sample. phaseMod is added to the output phase;
// pitchMod multiplies the frequency (1.0 = no change, 2.0 = octave up).
// A single conditional wrap is sufficient for the bounded modulation
// depths produced by the algorithm routing.
func (o *Oscillator) Process(phaseMod, pitchMod float32) float32 {
	// Modulated phase for output
	modulatedPhase := o.phase + phaseMod

	if modulatedPhase >= 1.0 {
		modulatedPhase -= 1.0
	} else if modulatedPhase < 0.0 {
		modulatedPhase += 1.0
	}

	// Advance base phase with pitch modulation
	o.phase += o.phaseInc * pitchMod

	if o.phase >= 1.0 {
		o.phase -= 1.0
	} else if o.phase < 0.0 {
		o.phase += 1.0
	}

	switch o.waveform {
	case WAVEFORM_TRIANGLE:
		return lutTriangle(modulatedPhase)
	case WAVEFORM_SAW_DOWN:
		return lutSaw(modulatedPhase)
	case WAVEFORM_SAW_UP:
		return -lutSaw(modulatedPhase)
	case WAVEFORM_SQUARE:
		return lutSquare(modulatedPhase)
	default:
		return lutSin(modulatedPhase)
	}
}
