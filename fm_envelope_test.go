// fm_envelope_test.go - Tests for the Q24 log-domain amplitude envelope

package main

import "testing"

func TestEnvelope_UnconfiguredIsSilent(t *testing.T) {
	initLUT()

	var env Envelope
	for i := 0; i < 100; i++ {
		if got := env.Process(); got != 0.0 {
			t.Fatalf("unconfigured envelope produced %v at sample %d, want 0", got, i)
		}
	}
	if env.IsActive() {
		t.Error("unconfigured envelope reports active")
	}
}

func TestEnvelope_AttackReachesSustain(t *testing.T) {
	initLUT()

	cfg := EnvelopeConfig{
		OutputLevel: 90,
		L1:          99, L2: 99, L3: 99, L4: 0,
		R1: 99, R2: 99, R3: 99, R4: 99,
	}

	var env Envelope
	env.SetConfig(&cfg)
	env.Trigger()

	var last float32
	for i := 0; i < 44100; i++ {
		last = env.Process()
		if last < 0.0 {
			t.Fatalf("negative envelope output %v at sample %d", last, i)
		}
	}

	// Full-scale sustain at output level 90 sits near unity gain
	if last < 0.5 {
		t.Errorf("sustain level %v after 1s, want near full scale", last)
	}
	if !env.IsActive() {
		t.Error("envelope inactive while key held")
	}
}

func TestEnvelope_ReleaseReachesSilence(t *testing.T) {
	initLUT()

	cfg := EnvelopeConfig{
		OutputLevel: 99,
		L1:          99, L2: 99, L3: 99, L4: 0,
		R1: 99, R2: 99, R3: 99, R4: 99,
	}

	var env Envelope
	env.SetConfig(&cfg)
	env.Trigger()

	for i := 0; i < 44100; i++ {
		env.Process()
	}

	env.Release()
	for i := 0; i < 44100; i++ {
		env.Process()
	}

	// L4 == 0: the envelope must have parked in the idle state and
	// report inactive
	if env.State() != 4 {
		t.Errorf("envelope state %d one second after release, want 4 (idle)", env.State())
	}
	if env.IsActive() {
		t.Error("envelope still active one second after release with L4 == 0")
	}
}

func TestEnvelope_SustainNonZeroL4StaysActive(t *testing.T) {
	initLUT()

	cfg := EnvelopeConfig{
		OutputLevel: 99,
		L1:          99, L2: 90, L3: 80, L4: 50,
		R1: 99, R2: 99, R3: 99, R4: 99,
	}

	var env Envelope
	env.SetConfig(&cfg)
	env.Trigger()
	for i := 0; i < 44100; i++ {
		env.Process()
	}
	env.Release()
	for i := 0; i < 88200; i++ {
		env.Process()
	}

	if !env.IsActive() {
		t.Error("envelope with L4 > 0 must stay active at its idle level")
	}
	if got := env.Process(); got <= 0.0 {
		t.Errorf("idle level output %v with L4 = 50, want > 0", got)
	}
}

func TestEnvelope_StaticTimingDelaysZeroAttack(t *testing.T) {
	initLUT()

	// L1 == 0 with a slow rate: the attack stage is an equal-level
	// pause taken from the static table, not an instant skip
	cfg := EnvelopeConfig{
		OutputLevel: 99,
		L1:          0, L2: 99, L3: 99, L4: 0,
		R1: 50, R2: 99, R3: 99, R4: 99,
	}

	var env Envelope
	env.SetConfig(&cfg)
	env.Trigger()

	if env.State() != 0 {
		t.Fatalf("state %d after trigger, want 0", env.State())
	}

	// statics[50] / 20 samples must elapse before stage 1
	expected := int(envStatics[50] / 20)
	for i := 0; i < expected-1; i++ {
		env.Process()
	}
	if env.State() != 0 {
		t.Errorf("attack pause ended after %d samples, want %d", expected-1, expected)
	}
	env.Process()
	if env.State() != 1 {
		t.Errorf("state %d after static pause, want 1", env.State())
	}
}

func TestEnvelope_ResetGoesIdle(t *testing.T) {
	initLUT()

	cfg := DefaultEnvelopeConfig()
	var env Envelope
	env.SetConfig(&cfg)
	env.Trigger()
	for i := 0; i < 1000; i++ {
		env.Process()
	}

	env.Reset()
	if env.State() != 4 {
		t.Errorf("state %d after reset, want 4", env.State())
	}
	// L4 == 0 in the default config: reset means silent and inactive
	if env.IsActive() {
		t.Error("default envelope active after reset")
	}
}

func TestEnvelope_RateScalingShortensStages(t *testing.T) {
	initLUT()

	cfg := EnvelopeConfig{
		OutputLevel: 99,
		L1:          99, L2: 0, L3: 0, L4: 0,
		R1: 99, R2: 40, R3: 99, R4: 99,
	}

	settleTime := func(rateScaling int32) int {
		var env Envelope
		env.SetConfig(&cfg)
		env.SetRateScaling(rateScaling)
		env.Trigger()
		for i := 0; i < 1000000; i++ {
			env.Process()
			if env.State() >= 2 {
				return i
			}
		}
		return 1000000
	}

	slow := settleTime(0)
	fast := settleTime(6)
	if fast >= slow {
		t.Errorf("rate scaling 6 settled in %d samples, unscaled in %d; want faster", fast, slow)
	}
}
