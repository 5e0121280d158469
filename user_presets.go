// user_presets.go - Native .as7 preset files

/*
A user preset stores a complete SynthConfig, including the extensions
the DX7 bank format cannot carry (per-operator on/off and waveform,
monophonic mode). The file is a 40-byte header followed by a flat
one-byte-per-scalar payload:

  header: magic "AS7\0" (0x00375341 LE), version, 3 reserved bytes,
          32-byte null-padded preset name
  payload: 6 x 24 operator bytes, algorithm index, feedback, transpose,
           7 LFO bytes, 8 pitch-envelope bytes (L1-L4 then R1-R4),
           monophonic flag

Readers reject mismatched magic or version.
*/

package main

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	USER_PRESET_MAGIC   = 0x00375341 // "AS7\0"
	USER_PRESET_VERSION = 1
	USER_PRESET_EXT     = ".as7"

	userPresetHeaderSize = 40
	userPresetNameSize   = 32
	userPresetConfigSize = NUM_OPERATORS*24 + 3 + 7 + 8 + 1
)

func b2u8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// serializeSynthConfig flattens a SynthConfig into the payload layout.
func serializeSynthConfig(cfg *SynthConfig) []byte {
	buf := make([]byte, 0, userPresetConfigSize)

	for i := 0; i < NUM_OPERATORS; i++ {
		op := &cfg.VoiceConfig.OperatorConfigs[i]
		buf = append(buf,
			b2u8(op.On),
			b2u8(op.Frequency.FixedFrequency),
			op.Frequency.Detune,
			op.Frequency.Coarse,
			op.Frequency.Fine,
			op.Envelope.OutputLevel,
			op.Envelope.L1, op.Envelope.L2, op.Envelope.L3, op.Envelope.L4,
			op.Envelope.R1, op.Envelope.R2, op.Envelope.R3, op.Envelope.R4,
			op.Envelope.RateScaling,
			op.VelocitySensitivity,
			op.AmpModSens,
			op.LvlSclBreakpoint,
			op.LvlSclLeftDepth,
			op.LvlSclRightDepth,
			op.LvlSclLeftCurve,
			op.LvlSclRightCurve,
			b2u8(op.OSCKeySync),
			op.Waveform,
		)
	}

	// Algorithm is stored as its catalogue index, not a pointer
	algoIndex := uint8(0)
	for i := range algorithmCatalogue {
		if cfg.VoiceConfig.Algorithm == &algorithmCatalogue[i] {
			algoIndex = uint8(i)
			break
		}
	}
	buf = append(buf, algoIndex, cfg.VoiceConfig.Feedback, cfg.VoiceConfig.Transpose)

	buf = append(buf,
		cfg.LFOConfig.Waveform,
		cfg.LFOConfig.Speed,
		cfg.LFOConfig.Delay,
		cfg.LFOConfig.PitchModDepth,
		cfg.LFOConfig.AmpModDepth,
		cfg.LFOConfig.PitchModSens,
		b2u8(cfg.LFOConfig.LFOKeySync),
	)

	buf = append(buf,
		cfg.PitchEnvelopeConfig.L1, cfg.PitchEnvelopeConfig.L2,
		cfg.PitchEnvelopeConfig.L3, cfg.PitchEnvelopeConfig.L4,
		cfg.PitchEnvelopeConfig.R1, cfg.PitchEnvelopeConfig.R2,
		cfg.PitchEnvelopeConfig.R3, cfg.PitchEnvelopeConfig.R4,
	)

	buf = append(buf, b2u8(cfg.Monophonic))
	return buf
}

// deserializeSynthConfig rebuilds a SynthConfig from the payload layout.
func deserializeSynthConfig(buf []byte, cfg *SynthConfig) error {
	if len(buf) < userPresetConfigSize {
		return fmt.Errorf("preset payload truncated: %d bytes, need %d", len(buf), userPresetConfigSize)
	}

	pos := 0
	next := func() uint8 {
		v := buf[pos]
		pos++
		return v
	}

	for i := 0; i < NUM_OPERATORS; i++ {
		op := &cfg.VoiceConfig.OperatorConfigs[i]
		op.On = next() != 0
		op.Frequency.FixedFrequency = next() != 0
		op.Frequency.Detune = next()
		op.Frequency.Coarse = next()
		op.Frequency.Fine = next()
		op.Envelope.OutputLevel = next()
		op.Envelope.L1 = next()
		op.Envelope.L2 = next()
		op.Envelope.L3 = next()
		op.Envelope.L4 = next()
		op.Envelope.R1 = next()
		op.Envelope.R2 = next()
		op.Envelope.R3 = next()
		op.Envelope.R4 = next()
		op.Envelope.RateScaling = next()
		op.VelocitySensitivity = next()
		op.AmpModSens = next()
		op.LvlSclBreakpoint = next()
		op.LvlSclLeftDepth = next()
		op.LvlSclRightDepth = next()
		op.LvlSclLeftCurve = next()
		op.LvlSclRightCurve = next()
		op.OSCKeySync = next() != 0
		op.Waveform = next()
	}

	cfg.VoiceConfig.Algorithm = AlgorithmByIndex(next())
	cfg.VoiceConfig.Feedback = next()
	cfg.VoiceConfig.Transpose = next()

	cfg.LFOConfig.Waveform = next()
	cfg.LFOConfig.Speed = next()
	cfg.LFOConfig.Delay = next()
	cfg.LFOConfig.PitchModDepth = next()
	cfg.LFOConfig.AmpModDepth = next()
	cfg.LFOConfig.PitchModSens = next()
	cfg.LFOConfig.LFOKeySync = next() != 0

	cfg.PitchEnvelopeConfig.L1 = next()
	cfg.PitchEnvelopeConfig.L2 = next()
	cfg.PitchEnvelopeConfig.L3 = next()
	cfg.PitchEnvelopeConfig.L4 = next()
	cfg.PitchEnvelopeConfig.R1 = next()
	cfg.PitchEnvelopeConfig.R2 = next()
	cfg.PitchEnvelopeConfig.R3 = next()
	cfg.PitchEnvelopeConfig.R4 = next()

	cfg.Monophonic = next() != 0
	return nil
}

// SaveUserPreset writes a preset file into dir, named after the preset.
func SaveUserPreset(cfg *SynthConfig, name, dir string) error {
	if name == "" {
		return fmt.Errorf("preset name cannot be empty")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("could not create preset directory: %w", err)
	}

	header := make([]byte, userPresetHeaderSize)
	binary.LittleEndian.PutUint32(header[0:4], USER_PRESET_MAGIC)
	header[4] = USER_PRESET_VERSION
	copy(header[8:8+userPresetNameSize-1], name)

	data := append(header, serializeSynthConfig(cfg)...)

	path := filepath.Join(dir, name+USER_PRESET_EXT)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("could not write preset file: %w", err)
	}

	fmt.Printf("Successfully saved user preset: %s\n", path)
	return nil
}

// LoadUserPreset reads a preset file and materialises it into cfg.
// Returns the stored preset name.
func LoadUserPreset(path string, cfg *SynthConfig) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("could not open preset file: %w", err)
	}

	if len(data) < userPresetHeaderSize {
		return "", fmt.Errorf("preset file too small: %d bytes", len(data))
	}
	if binary.LittleEndian.Uint32(data[0:4]) != USER_PRESET_MAGIC {
		return "", fmt.Errorf("not an AS7 preset file")
	}
	if data[4] != USER_PRESET_VERSION {
		return "", fmt.Errorf("unsupported preset version %d", data[4])
	}

	name := strings.TrimRight(string(data[8:8+userPresetNameSize]), "\x00")

	if err := deserializeSynthConfig(data[userPresetHeaderSize:], cfg); err != nil {
		return "", err
	}
	return name, nil
}

// ListUserPresets returns the preset names (without extension) found in dir.
func ListUserPresets(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("could not read preset directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.EqualFold(filepath.Ext(name), USER_PRESET_EXT) {
			names = append(names, strings.TrimSuffix(name, filepath.Ext(name)))
		}
	}
	return names, nil
}
