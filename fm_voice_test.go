// fm_voice_test.go - Tests for the voice aggregate

package main

import "testing"

func TestVoice_TransposeClampsNote(t *testing.T) {
	initLUT()

	cfg := DefaultVoiceConfig()
	cfg.OperatorConfigs[0].Frequency.Coarse = 1
	cfg.Transpose = 48 // +24 semitones
	peCfg := DefaultPitchEnvelopeConfig()

	var voice Voice
	voice.Configure(&cfg, &peCfg)

	// 120 + 24 clamps to 127
	voice.NoteOn(120, 100)
	want := midiToFrequency(127)
	if got := voice.operators[0].calculatedFrequency; abs32(got-want) > 0.5 {
		t.Errorf("operator frequency %v for clamped note, want %v", got, want)
	}

	// Transpose 0 means -24 semitones; note 10 clamps at 0
	cfg.Transpose = 0
	voice.Configure(&cfg, &peCfg)
	voice.NoteOn(10, 100)
	want = midiToFrequency(0)
	if got := voice.operators[0].calculatedFrequency; abs32(got-want) > 0.01 {
		t.Errorf("operator frequency %v for clamped note, want %v", got, want)
	}
}

func TestVoice_UnconfiguredIsInert(t *testing.T) {
	initLUT()

	var voice Voice
	voice.NoteOn(69, 100)
	if voice.IsActive() {
		t.Error("unconfigured voice active after note-on")
	}
	for i := 0; i < 100; i++ {
		if got := voice.Process(); got != 0.0 {
			t.Fatalf("unconfigured voice produced %v", got)
		}
	}
}

func TestVoice_ConfigureRejectsNilAlgorithm(t *testing.T) {
	cfg := DefaultVoiceConfig()
	cfg.Algorithm = nil
	peCfg := DefaultPitchEnvelopeConfig()

	var voice Voice
	voice.Configure(&cfg, &peCfg)
	voice.NoteOn(69, 100)
	if voice.IsActive() {
		t.Error("voice with nil algorithm accepted configuration")
	}
}

func TestVoice_ActiveTracksEnvelopes(t *testing.T) {
	initLUT()

	cfg := DefaultVoiceConfig()
	peCfg := DefaultPitchEnvelopeConfig()

	var voice Voice
	voice.Configure(&cfg, &peCfg)

	if voice.IsActive() {
		t.Error("voice active before any note")
	}

	voice.NoteOn(60, 100)
	if !voice.IsActive() {
		t.Error("voice inactive after note-on")
	}

	voice.NoteOff()
	for i := 0; i < 44100; i++ {
		voice.Process()
	}
	if voice.IsActive() {
		t.Error("voice still active after release decayed (L4 == 0)")
	}

	if voice.CurrentMidiNote() != 60 {
		t.Errorf("current note %d, want 60", voice.CurrentMidiNote())
	}
}
