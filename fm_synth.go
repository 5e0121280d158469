// fm_synth.go - Polyphonic FM synthesizer with voice stealing

/*
Eight-voice pool driven one sample at a time:

- NoteOn takes the first inactive voice; with none free it steals the
  voice with the smallest age stamp (ties break to the lowest slot).
- Stolen notes are released, not cut, so their tail overlaps the new
  attack.
- The LFO retriggers on the first note after silence and, with key
  sync enabled, on every note. A steal never retriggers it.
- Monophonic mode releases everything and plays on voice 0.

Process() is the per-sample entry point: advance the LFO once, then sum
the active voices. It takes no locks and performs no allocation; when
playback crosses threads the backend pump serializes access.
*/

package main

// Synth is the top of the DSP graph.
type Synth struct {
	voices           [POLYPHONY]Voice
	voiceAge         [POLYPHONY]uint64
	globalAgeCounter uint64
	activeNoteCount  int

	lfo LFO

	config *SynthConfig
}

// Configure installs a complete synth configuration on all voices.
func (s *Synth) Configure(cfg *SynthConfig) {
	s.config = cfg
	s.lfo.Configure(&cfg.LFOConfig)

	for i := range s.voices {
		s.voices[i].Configure(&cfg.VoiceConfig, &cfg.PitchEnvelopeConfig)
		s.voices[i].SetLFO(&s.lfo)
	}
}

// NoteOn starts a note, allocating or stealing a voice as needed.
func (s *Synth) NoteOn(midiNote, velocity uint8) {
	if s.config == nil {
		return
	}

	if s.config.Monophonic {
		for i := range s.voices {
			s.voices[i].NoteOff()
		}
		s.lfo.Trigger()
		s.voices[0].NoteOn(midiNote, velocity)
		return
	}

	// Find a free voice
	for i := range s.voices {
		if !s.voices[i].IsActive() {
			s.voiceAge[i] = s.globalAgeCounter
			s.globalAgeCounter++
			s.voices[i].NoteOn(midiNote, velocity)
			s.activeNoteCount++

			if s.activeNoteCount == 1 || s.config.LFOConfig.LFOKeySync {
				s.lfo.Trigger()
			}
			return
		}
	}

	// Voice stealing: reassign the oldest voice, lowest slot on ties
	oldestIndex := 0
	oldestAge := s.voiceAge[0]
	for i := 1; i < POLYPHONY; i++ {
		if s.voiceAge[i] < oldestAge {
			oldestAge = s.voiceAge[i]
			oldestIndex = i
		}
	}

	s.voices[oldestIndex].NoteOff()
	s.voiceAge[oldestIndex] = s.globalAgeCounter
	s.globalAgeCounter++
	s.voices[oldestIndex].NoteOn(midiNote, velocity)
}

// NoteOff releases the voice playing the given note (first match).
func (s *Synth) NoteOff(midiNote uint8) {
	if s.config == nil {
		return
	}

	if s.config.Monophonic {
		s.voices[0].NoteOff()
		return
	}

	for i := range s.voices {
		if s.voices[i].IsActive() && s.voices[i].CurrentMidiNote() == midiNote {
			s.voices[i].NoteOff()
			s.activeNoteCount--
			return
		}
	}
}

// Process generates one output sample: one LFO step, then the sum of
// all active voices. An unconfigured synth returns exactly 0.
func (s *Synth) Process() float32 {
	if s.config == nil {
		return 0.0
	}

	s.lfo.Process()

	sample := float32(0.0)
	for i := range s.voices {
		if s.voices[i].IsActive() {
			sample += s.voices[i].Process()
		}
	}

	return sample
}

// SetFeedback changes the feedback level on all voices.
func (s *Synth) SetFeedback(feedback uint8) {
	for i := range s.voices {
		s.voices[i].SetFeedback(feedback)
	}
}

// SetAlgorithm switches all voices to another routing graph.
func (s *Synth) SetAlgorithm(cfg *AlgorithmConfig) {
	for i := range s.voices {
		s.voices[i].SetAlgorithm(cfg)
	}
}

// SetOSCKeySync sets oscillator key sync on every operator of the
// active configuration.
func (s *Synth) SetOSCKeySync(sync bool) {
	if s.config == nil {
		return
	}
	for i := range s.config.VoiceConfig.OperatorConfigs {
		s.config.VoiceConfig.OperatorConfigs[i].OSCKeySync = sync
	}
	s.UpdateConfig()
}

// UpdateConfig pushes edited voice parameters to all voices without
// resetting note state.
func (s *Synth) UpdateConfig() {
	if s.config == nil {
		return
	}
	for i := range s.voices {
		s.voices[i].UpdateConfig(&s.config.VoiceConfig)
	}
}

// ActiveVoices reports how many voices are currently sounding.
func (s *Synth) ActiveVoices() int {
	count := 0
	for i := range s.voices {
		if s.voices[i].IsActive() {
			count++
		}
	}
	return count
}
