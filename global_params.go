// global_params.go - Persisted global performance settings

package main

import (
	"encoding/binary"
	"fmt"
	"os"
)

// ModWheelAssignment selects which modulation targets the mod wheel drives.
type ModWheelAssignment struct {
	PitchModDepth bool // Vibrato
	AmpModDepth   bool // Tremolo
	EGBias        bool // Expression
}

// GlobalParams are the settings that survive power cycles: pitch-bend
// range, mod-wheel routing and the MIDI receive channel. They live
// outside any preset.
type GlobalParams struct {
	PitchBendRange     uint8 // Semitones, 0-24, default 12
	ModWheelIntensity  uint8 // 0-99
	ModWheelAssignment ModWheelAssignment
	MidiChannel        uint8 // 1-16, 0 = OMNI
}

// SetDefaults restores factory values.
func (p *GlobalParams) SetDefaults() {
	p.PitchBendRange = 12
	p.ModWheelIntensity = 0
	p.ModWheelAssignment = ModWheelAssignment{}
	p.MidiChannel = 1
}

// validateAndClamp forces loaded values into their legal ranges.
func (p *GlobalParams) validateAndClamp() {
	if p.PitchBendRange > 24 {
		p.PitchBendRange = 24
	}
	if p.ModWheelIntensity > 99 {
		p.ModWheelIntensity = 99
	}
	if p.MidiChannel > 16 {
		p.MidiChannel = 16
	}
}

// LoadFromFile reads params from disk; any mismatch falls back to
// defaults and reports an error.
func (p *GlobalParams) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		p.SetDefaults()
		return fmt.Errorf("could not open params file: %w", err)
	}

	if len(data) < 11 {
		p.SetDefaults()
		return fmt.Errorf("params file truncated: %d bytes", len(data))
	}
	if binary.LittleEndian.Uint32(data[0:4]) != PARAMS_MAGIC {
		p.SetDefaults()
		return fmt.Errorf("params file has wrong magic")
	}
	if data[4] != PARAMS_VERSION {
		p.SetDefaults()
		return fmt.Errorf("unsupported params version %d", data[4])
	}

	p.PitchBendRange = data[5]
	p.ModWheelIntensity = data[6]
	p.ModWheelAssignment.PitchModDepth = data[7] != 0
	p.ModWheelAssignment.AmpModDepth = data[8] != 0
	p.ModWheelAssignment.EGBias = data[9] != 0
	p.MidiChannel = data[10]

	p.validateAndClamp()
	return nil
}

// SaveToFile writes the params to disk.
func (p *GlobalParams) SaveToFile(path string) error {
	data := make([]byte, 11)
	binary.LittleEndian.PutUint32(data[0:4], PARAMS_MAGIC)
	data[4] = PARAMS_VERSION
	data[5] = p.PitchBendRange
	data[6] = p.ModWheelIntensity
	data[7] = b2u8(p.ModWheelAssignment.PitchModDepth)
	data[8] = b2u8(p.ModWheelAssignment.AmpModDepth)
	data[9] = b2u8(p.ModWheelAssignment.EGBias)
	data[10] = p.MidiChannel

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("could not write params file: %w", err)
	}
	return nil
}
