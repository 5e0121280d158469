// fm_lfo.go - Low-frequency oscillator for vibrato and tremolo

package main

// LFO produces a pitch multiplier and an amplitude modulation factor
// once per sample, shared by all voices. Sample & hold draws from an
// xorshift32 generator on each phase wrap.
type LFO struct {
	config *LFOConfig

	phase           float32
	ampMod          float32
	pitchMod        float32
	delaySamples    int32
	sampleHoldValue float32

	randState uint32
}

// Configure installs the LFO configuration. Modulation outputs stay at
// their neutral values until the first Trigger.
func (l *LFO) Configure(cfg *LFOConfig) {
	l.config = cfg
	if l.randState == 0 {
		l.randState = 12345
	}
	l.pitchMod = 1.0
}

func (l *LFO) fastRandom() float32 {
	l.randState ^= l.randState << 13
	l.randState ^= l.randState >> 17
	l.randState ^= l.randState << 5
	return float32(l.randState)*4.6566129e-10*2.0 - 1.0
}

func clamp99(v uint8) uint8 {
	if v > 99 {
		return 99
	}
	return v
}

// Trigger resets the phase and restarts the configured onset delay.
func (l *LFO) Trigger() {
	l.phase = 0.0
	l.ampMod = 0.0
	l.pitchMod = 1.0
	if l.config != nil {
		l.delaySamples = int32(lfoDelayTable[clamp99(l.config.Delay)] * SAMPLE_RATE)
	}
}

// Process advances the LFO one sample, refreshing AmpMod and PitchMod.
func (l *LFO) Process() {
	if l.config == nil {
		return
	}

	if l.delaySamples > 0 {
		l.delaySamples--
		l.ampMod = 0.0
		l.pitchMod = 1.0
		return
	}

	if l.phase >= 1.0 {
		l.phase -= 1.0
	}

	// Decoded banks can carry 7-bit values past the legal ranges
	speed := clamp99(l.config.Speed)
	pms := l.config.PitchModSens & 7

	var value float32
	switch l.config.Waveform {
	case LFO_WAVE_TRIANGLE:
		value = lutTriangle(l.phase)
	case LFO_WAVE_SAW_DOWN:
		value = -lutSaw(l.phase)
	case LFO_WAVE_SAW_UP:
		value = lutSaw(l.phase)
	case LFO_WAVE_SQUARE:
		value = lutSquare(l.phase)
	case LFO_WAVE_SINE:
		value = lutSin(l.phase)
	default:
		// Sample & hold: advance first, refresh the held value on wrap
		l.phase += lfoSpeedTable[speed] * INV_SAMPLE_RATE
		if l.phase >= 1.0 {
			l.phase -= 1.0
			l.sampleHoldValue = l.fastRandom()
		}
		value = l.sampleHoldValue

		l.ampMod = (value*0.5 + 0.5) * float32(l.config.AmpModDepth) * INV_PARAM_99
		l.pitchMod = lutExp2(value * float32(l.config.PitchModDepth) * INV_PARAM_99 * lfoPMSTable[pms])
		return
	}

	l.ampMod = (value*0.5 + 0.5) * float32(l.config.AmpModDepth) * INV_PARAM_99
	l.pitchMod = lutExp2(value * float32(l.config.PitchModDepth) * INV_PARAM_99 * lfoPMSTable[pms])

	l.phase += lfoSpeedTable[speed] * INV_SAMPLE_RATE
}

// AmpMod returns the current amplitude modulation factor (0..1).
func (l *LFO) AmpMod() float32 {
	return l.ampMod
}

// PitchMod returns the current pitch multiplier (1.0 = no modulation).
// An unconfigured LFO is neutral.
func (l *LFO) PitchMod() float32 {
	if l.config == nil {
		return 1.0
	}
	return l.pitchMod
}
