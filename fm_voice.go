// fm_voice.go - A single polyphonic slot: six operators, one algorithm, one pitch envelope

package main

// Voice owns its six operators and algorithm by value; the algorithm
// addresses the operator array by index, so the whole voice can be
// copied or embedded without fixups. The pitch envelope multiplies the
// shared LFO's pitch modulation each sample.
type Voice struct {
	operators [NUM_OPERATORS]Operator
	algorithm Algorithm
	pitchEnv  PitchEnvelope

	config *VoiceConfig
	lfo    *LFO

	currentMidiNote uint8
}

// Configure installs a complete voice configuration and resets all state.
func (v *Voice) Configure(cfg *VoiceConfig, pitchEnvCfg *PitchEnvelopeConfig) {
	if cfg == nil || cfg.Algorithm == nil {
		return
	}

	v.config = cfg

	for i := range v.operators {
		v.operators[i].SetConfig(&cfg.OperatorConfigs[i])
	}

	v.algorithm.SetConfig(cfg.Algorithm)
	v.applyFeedback(cfg.Feedback)
	v.pitchEnv.SetConfig(pitchEnvCfg)

	v.Reset()
}

// UpdateConfig re-reads the configuration without resetting note state.
// Used for live edits between samples.
func (v *Voice) UpdateConfig(cfg *VoiceConfig) {
	if cfg == nil {
		return
	}

	v.config = cfg

	for i := range v.operators {
		v.operators[i].SetConfig(&cfg.OperatorConfigs[i])
	}

	v.algorithm.SetConfig(cfg.Algorithm)
	v.applyFeedback(cfg.Feedback)
}

// SetLFO attaches the synth-global LFO.
func (v *Voice) SetLFO(lfo *LFO) {
	v.lfo = lfo
}

func (v *Voice) applyFeedback(feedback uint8) {
	cfg := v.algorithm.Config()
	if cfg == nil || !cfg.HasFeedback {
		return
	}
	if cfg.FeedbackOperator < NUM_OPERATORS {
		v.operators[cfg.FeedbackOperator].SetFeedback(feedback)
	}
}

// SetFeedback changes the feedback level on the designated operator.
func (v *Voice) SetFeedback(feedback uint8) {
	v.applyFeedback(feedback)
}

// SetAlgorithm switches the routing graph.
func (v *Voice) SetAlgorithm(cfg *AlgorithmConfig) {
	v.algorithm.SetConfig(cfg)
}

// NoteOn starts a note on this voice, applying the configured transpose.
func (v *Voice) NoteOn(midiNote, velocity uint8) {
	if v.config == nil {
		return
	}

	v.currentMidiNote = midiNote

	note := int(midiNote) + int(v.config.Transpose) - 24
	if note < 0 {
		note = 0
	} else if note > 127 {
		note = 127
	}

	for i := range v.operators {
		v.operators[i].Trigger(uint8(note), velocity)
	}
	v.pitchEnv.Trigger()
}

// NoteOff releases every operator envelope and the pitch envelope.
func (v *Voice) NoteOff() {
	for i := range v.operators {
		v.operators[i].Release()
	}
	v.pitchEnv.Release()
}

// Process generates one sample: pitch envelope times LFO pitch
// modulation drives the oscillators, the LFO amp modulation rides the
// operator outputs.
func (v *Voice) Process() float32 {
	pitchMod := v.pitchEnv.Process()
	ampMod := float32(0.0)
	if v.lfo != nil {
		pitchMod *= v.lfo.PitchMod()
		ampMod = v.lfo.AmpMod()
	}
	return v.algorithm.Process(&v.operators, pitchMod, ampMod)
}

// Reset returns the voice to idle.
func (v *Voice) Reset() {
	v.algorithm.Reset()
	for i := range v.operators {
		v.operators[i].Reset()
	}
	v.pitchEnv.Reset()
}

// CurrentMidiNote returns the note this voice last played.
func (v *Voice) CurrentMidiNote() uint8 {
	return v.currentMidiNote
}

// IsActive reports whether any operator envelope is still sounding.
func (v *Voice) IsActive() bool {
	for i := range v.operators {
		if v.operators[i].IsActive() {
			return true
		}
	}
	return false
}
