// fm_config.go - Parameter structures for voices, operators, LFO and pitch envelope

/*
All numeric parameters use the DX7-canonical unsigned ranges. Config
structs are immutable while a note is sounding: they flow into the DSP
components on Configure()/SetConfig() calls and are only edited between
notes. The zero-suitable defaults returned by the Default* constructors
match the original AS7 power-on voice.
*/

package main

// EnvelopeConfig holds the four-stage amplitude envelope parameters.
type EnvelopeConfig struct {
	OutputLevel uint8 // Operator volume (0-99)

	L1 uint8 // Envelope levels (0-99)
	L2 uint8
	L3 uint8
	L4 uint8

	R1 uint8 // Envelope rates (0-99)
	R2 uint8
	R3 uint8
	R4 uint8

	RateScaling uint8 // Rate scaling sensitivity (0-7)
}

// FrequencyConfig selects the operator frequency.
type FrequencyConfig struct {
	FixedFrequency bool // false = ratio mode, true = fixed frequency mode

	Detune uint8 // 0-14, center at 7 (no detune)
	Coarse uint8 // 0-31 (0 = ratio 0.5, 1 = 1, 2 = 2, ...)
	Fine   uint8 // 0-99 (adds 0-99% of coarse value)
}

// Operator waveforms
const (
	WAVEFORM_SINE = iota
	WAVEFORM_TRIANGLE
	WAVEFORM_SAW_DOWN
	WAVEFORM_SAW_UP
	WAVEFORM_SQUARE
)

// OperatorConfig holds one operator's full parameter set.
type OperatorConfig struct {
	On bool // Operator enabled/disabled

	Frequency FrequencyConfig
	Envelope  EnvelopeConfig

	VelocitySensitivity uint8 // 0-7
	AmpModSens          uint8 // 0-3

	LvlSclBreakpoint uint8 // 0-99
	LvlSclLeftDepth  uint8 // 0-99
	LvlSclRightDepth uint8 // 0-99
	LvlSclLeftCurve  uint8 // 0-3: -LIN, -EXP, +EXP, +LIN
	LvlSclRightCurve uint8

	OSCKeySync bool  // If true, oscillator phase restarts on new note
	Waveform   uint8 // WAVEFORM_SINE .. WAVEFORM_SQUARE (sine for DX7 compatibility)
}

// AlgorithmConfig describes one fixed modulation routing graph.
// The catalogue of 32 instances lives in fm_algorithms.go; all fields
// are read-only after construction.
type AlgorithmConfig struct {
	// Connection matrix: Connections[modulator][carrier] = true if the
	// modulation edge exists. Informational; not used in the hot path.
	Connections [NUM_OPERATORS][NUM_OPERATORS]bool

	// Precomputed adjacency for the hot path. Every index stored in
	// ModulatorIndices[i][0..ModulatorCount[i]) is strictly greater
	// than i, which is what permits the single descending pass.
	ModulatorCount   [NUM_OPERATORS]uint8
	ModulatorIndices [NUM_OPERATORS][NUM_OPERATORS]uint8

	IsCarrier [NUM_OPERATORS]bool // True if the operator sums into the output

	HasFeedback      bool
	FeedbackOperator uint8 // Which operator feeds back into itself (0-5)
}

// VoiceConfig groups the per-voice parameters.
type VoiceConfig struct {
	OperatorConfigs [NUM_OPERATORS]OperatorConfig

	Algorithm *AlgorithmConfig

	Feedback  uint8 // Feedback level (0-7)
	Transpose uint8 // 0-48, effective semitones = Transpose - 24
}

// LFO waveforms
const (
	LFO_WAVE_TRIANGLE = iota
	LFO_WAVE_SAW_DOWN
	LFO_WAVE_SAW_UP
	LFO_WAVE_SQUARE
	LFO_WAVE_SINE
	LFO_WAVE_SAMPLE_HOLD
)

// LFOConfig holds the global low-frequency oscillator parameters.
type LFOConfig struct {
	Waveform uint8 // LFO_WAVE_TRIANGLE .. LFO_WAVE_SAMPLE_HOLD

	Speed uint8 // 0-99
	Delay uint8 // 0-99

	PitchModDepth uint8 // 0-99
	AmpModDepth   uint8 // 0-99

	PitchModSens uint8 // 0-7

	LFOKeySync bool // If true, LFO restarts on every new note
}

// PitchEnvelopeConfig holds the four-stage pitch envelope (50 = unity).
type PitchEnvelopeConfig struct {
	L1 uint8
	L2 uint8
	L3 uint8
	L4 uint8

	R1 uint8
	R2 uint8
	R3 uint8
	R4 uint8
}

// SynthConfig is the complete parameter set consumed by Synth.Configure.
type SynthConfig struct {
	VoiceConfig         VoiceConfig
	LFOConfig           LFOConfig
	PitchEnvelopeConfig PitchEnvelopeConfig

	Monophonic bool
}

// DefaultEnvelopeConfig returns the power-on envelope (organ-style:
// instant attack, full sustain, fast release).
func DefaultEnvelopeConfig() EnvelopeConfig {
	return EnvelopeConfig{
		OutputLevel: 99,
		L1:          99, L2: 99, L3: 99, L4: 0,
		R1: 99, R2: 0, R3: 0, R4: 99,
	}
}

// DefaultFrequencyConfig returns ratio mode at unity with no detune.
func DefaultFrequencyConfig() FrequencyConfig {
	return FrequencyConfig{Detune: 7}
}

// DefaultOperatorConfig returns an enabled sine operator with the
// power-on envelope and no scaling.
func DefaultOperatorConfig() OperatorConfig {
	return OperatorConfig{
		On:        true,
		Frequency: DefaultFrequencyConfig(),
		Envelope:  DefaultEnvelopeConfig(),
	}
}

// DefaultVoiceConfig returns six default operators on algorithm 1 with
// no feedback and neutral transpose.
func DefaultVoiceConfig() VoiceConfig {
	cfg := VoiceConfig{
		Algorithm: &algorithmCatalogue[0],
		Transpose: 24,
	}
	for i := range cfg.OperatorConfigs {
		cfg.OperatorConfigs[i] = DefaultOperatorConfig()
	}
	return cfg
}

// DefaultPitchEnvelopeConfig returns a flat pitch envelope (all unity).
func DefaultPitchEnvelopeConfig() PitchEnvelopeConfig {
	return PitchEnvelopeConfig{
		L1: 50, L2: 50, L3: 50, L4: 50,
	}
}

// DefaultSynthConfig returns the complete power-on configuration.
func DefaultSynthConfig() SynthConfig {
	return SynthConfig{
		VoiceConfig:         DefaultVoiceConfig(),
		LFOConfig:           LFOConfig{},
		PitchEnvelopeConfig: DefaultPitchEnvelopeConfig(),
	}
}
