// fm_pitchenv.go - Four-stage pitch envelope returning a frequency multiplier

package main

// Per-sample unit increment: Q24 / (21.3 * 44100), rescaled to the
// configured sample rate.
const (
	pitchEnvUnitBase = 16777216.0 / (21.3 * 44100.0)
	pitchEnvUnit     = pitchEnvUnitBase * (44100.0 / SAMPLE_RATE)
)

// PitchEnvelope works in the signed Q24 log domain (levels are
// pitchEnvLevelTable entries shifted left 19) and converts to a float
// frequency multiplier on output (1.0 = unity).
type PitchEnvelope struct {
	config *PitchEnvelopeConfig

	level       int32 // Q24
	targetLevel int32
	increment   int32
	stage       uint8
	rising      bool
	keyDown     bool
}

func (p *PitchEnvelope) advanceStage(newStage uint8) {
	p.stage = newStage
	if p.stage >= 4 {
		return
	}

	var rate, levelParam uint8
	switch p.stage {
	case 0:
		rate, levelParam = p.config.R1, p.config.L1
	case 1:
		rate, levelParam = p.config.R2, p.config.L2
	case 2:
		rate, levelParam = p.config.R3, p.config.L3
	default:
		rate, levelParam = p.config.R4, p.config.L4
	}

	p.targetLevel = int32(pitchEnvLevelTable[clamp99(levelParam)]) << 19
	p.rising = p.targetLevel > p.level
	p.increment = int32(float32(pitchEnvRateTable[clamp99(rate)]) * pitchEnvUnit)
}

// SetConfig installs the configuration and parks at the L4 level.
func (p *PitchEnvelope) SetConfig(cfg *PitchEnvelopeConfig) {
	p.config = cfg
	if cfg != nil {
		p.level = int32(pitchEnvLevelTable[clamp99(cfg.L4)]) << 19
		p.keyDown = false
		p.stage = 3
	}
}

// Trigger starts stage 0.
func (p *PitchEnvelope) Trigger() {
	if p.config == nil {
		return
	}
	p.keyDown = true
	p.advanceStage(0)
}

// Release moves to the release stage.
func (p *PitchEnvelope) Release() {
	if p.config == nil {
		return
	}
	p.keyDown = false
	p.advanceStage(3)
}

// Process advances one sample and returns the frequency multiplier.
// An unconfigured pitch envelope returns 1.0.
func (p *PitchEnvelope) Process() float32 {
	if p.config == nil {
		return 1.0
	}

	// Stages 0-2 always run; stage 3 only after key-up
	shouldProcess := p.stage < 3 || (p.stage == 3 && !p.keyDown)

	if shouldProcess {
		if p.rising {
			p.level += p.increment
			if p.level >= p.targetLevel {
				p.level = p.targetLevel
				if p.stage < 3 {
					p.advanceStage(p.stage + 1)
				}
			}
		} else {
			p.level -= p.increment
			if p.level <= p.targetLevel {
				p.level = p.targetLevel
				if p.stage < 3 {
					p.advanceStage(p.stage + 1)
				}
			}
		}
	}

	return lutExp2(float32(p.level) * INV_Q24_ONE)
}

// Reset parks at the configured L4 level with the key up.
func (p *PitchEnvelope) Reset() {
	if p.config != nil {
		p.level = int32(pitchEnvLevelTable[clamp99(p.config.L4)]) << 19
	} else {
		p.level = 0
	}
	p.stage = 3
	p.keyDown = false
}
