// fm_lfo_test.go - Tests for the low-frequency oscillator

package main

import "testing"

func TestLFO_UnconfiguredIsNeutral(t *testing.T) {
	var lfo LFO
	lfo.Process()
	if got := lfo.PitchMod(); got != 1.0 {
		t.Errorf("unconfigured LFO pitch mod %v, want 1.0", got)
	}
	if got := lfo.AmpMod(); got != 0.0 {
		t.Errorf("unconfigured LFO amp mod %v, want 0.0", got)
	}
}

func TestLFO_DelayHoldsNeutral(t *testing.T) {
	initLUT()

	cfg := LFOConfig{
		Waveform:      LFO_WAVE_SINE,
		Speed:         70,
		Delay:         50, // ~0.486s
		PitchModDepth: 99,
		AmpModDepth:   99,
		PitchModSens:  7,
	}

	var lfo LFO
	lfo.Configure(&cfg)
	lfo.Trigger()

	delaySamples := int(lfoDelayTable[50] * SAMPLE_RATE)
	for i := 0; i < delaySamples; i++ {
		lfo.Process()
		if lfo.PitchMod() != 1.0 || lfo.AmpMod() != 0.0 {
			t.Fatalf("modulation active at sample %d, inside the %d-sample delay", i, delaySamples)
		}
	}

	// After the delay the modulation comes alive
	moved := false
	for i := 0; i < 44100; i++ {
		lfo.Process()
		if lfo.PitchMod() != 1.0 || lfo.AmpMod() != 0.0 {
			moved = true
			break
		}
	}
	if !moved {
		t.Error("no modulation after the delay expired")
	}
}

func TestLFO_AmpModRange(t *testing.T) {
	initLUT()

	for wf := uint8(0); wf <= 5; wf++ {
		cfg := LFOConfig{
			Waveform:    wf,
			Speed:       80,
			AmpModDepth: 99,
		}

		var lfo LFO
		lfo.Configure(&cfg)
		lfo.Trigger()

		for i := 0; i < 44100; i++ {
			lfo.Process()
			am := lfo.AmpMod()
			if am < 0.0 || am > 1.0 {
				t.Fatalf("waveform %d amp mod %v out of [0, 1]", wf, am)
			}
		}
	}
}

func TestLFO_ZeroDepthIsNeutral(t *testing.T) {
	initLUT()

	cfg := LFOConfig{Waveform: LFO_WAVE_TRIANGLE, Speed: 90}

	var lfo LFO
	lfo.Configure(&cfg)
	lfo.Trigger()

	for i := 0; i < 10000; i++ {
		lfo.Process()
		if got := lfo.PitchMod(); got != 1.0 {
			t.Fatalf("pitch mod %v with zero depth at sample %d, want 1.0", got, i)
		}
		if got := lfo.AmpMod(); got != 0.0 {
			t.Fatalf("amp mod %v with zero depth at sample %d, want 0.0", got, i)
		}
	}
}

func TestLFO_SampleHoldChangesOnWrap(t *testing.T) {
	initLUT()

	cfg := LFOConfig{
		Waveform:    LFO_WAVE_SAMPLE_HOLD,
		Speed:       99, // ~49 Hz, wraps every ~895 samples
		AmpModDepth: 99,
	}

	var lfo LFO
	lfo.Configure(&cfg)
	lfo.Trigger()

	seen := make(map[float32]bool)
	for i := 0; i < 10000; i++ {
		lfo.Process()
		seen[lfo.AmpMod()] = true
	}
	if len(seen) < 3 {
		t.Errorf("sample & hold produced %d distinct values in 10000 samples, want several", len(seen))
	}
}

func TestLFO_PitchModBounds(t *testing.T) {
	initLUT()

	// Full depth, full sensitivity: multiplier swings within 2^-1..2^1
	cfg := LFOConfig{
		Waveform:      LFO_WAVE_TRIANGLE,
		Speed:         80,
		PitchModDepth: 99,
		PitchModSens:  7,
	}

	var lfo LFO
	lfo.Configure(&cfg)
	lfo.Trigger()

	var lo, hi float32 = 10.0, 0.0
	for i := 0; i < 44100; i++ {
		lfo.Process()
		pm := lfo.PitchMod()
		if pm < lo {
			lo = pm
		}
		if pm > hi {
			hi = pm
		}
	}
	if lo < 0.49 || hi > 2.01 {
		t.Errorf("pitch mod range [%v, %v], want within [0.5, 2.0]", lo, hi)
	}
	if hi < 1.5 || lo > 0.67 {
		t.Errorf("pitch mod range [%v, %v] too narrow for full depth", lo, hi)
	}
}
