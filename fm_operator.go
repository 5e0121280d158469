// fm_operator.go - FM operator: oscillator + envelope with velocity and key scaling

package main

import "math"

// Operator combines one oscillator and one amplitude envelope with the
// per-operator trims: velocity sensitivity, keyboard level scaling,
// envelope rate scaling and the feedback memory. Velocity and scaling
// factors are computed on Trigger, never per sample.
type Operator struct {
	osc Oscillator
	env Envelope

	config *OperatorConfig

	// Cached values (computed on trigger)
	calculatedFrequency float32
	velocityFactor      float32
	levelScalingFactor  float32
	feedbackLevel       float32
	previousOutput      float32

	// Cached config values for the hot path
	cachedAmpModSens float32
	isOn             bool
}

// midiToFrequency converts a MIDI note number to Hz (A4 = note 69 = 440 Hz).
func midiToFrequency(midiNote uint8) float32 {
	return 13.75 * float32(math.Exp2((float64(midiNote)-9.0)/12.0))
}

func (op *Operator) updateFrequency(baseFrequency float32) {
	if op.config == nil {
		op.calculatedFrequency = 0.0
		return
	}

	freq := &op.config.Frequency
	var baseFreq float32
	detuneMultiplier := float32(1.0)

	if freq.FixedFrequency {
		baseFreq = fixedFreqBase[freq.Coarse%4] * fixedFreqFine[freq.Fine%100]
	} else {
		coarseValue := float32(freq.Coarse)
		if freq.Coarse == 0 {
			coarseValue = 0.5
		}
		fineFactor := 1.0 + float32(freq.Fine)*0.01
		baseFreq = baseFrequency * coarseValue * fineFactor

		if freq.Detune != 7 {
			detuneIdx := int(freq.Detune) - 7
			if detuneIdx < 0 {
				detuneIdx = -detuneIdx
			}
			detuneAmount := detuneTable[detuneIdx] * 0.001
			if freq.Detune < 7 {
				detuneMultiplier = 1.0 - detuneAmount
			} else {
				detuneMultiplier = 1.0 + detuneAmount
			}
		}
	}

	op.calculatedFrequency = baseFreq * detuneMultiplier
	op.osc.SetFrequency(op.calculatedFrequency)
}

// scaleRate converts a MIDI note and rate-scaling sensitivity into the
// qRate delta fed to the amplitude envelope. The two correction rules
// reproduce the hardware's rate ladder exactly.
func scaleRate(midiNote, sensitivity uint8) int32 {
	x := int32(midiNote)/3 - 7
	if x < 0 {
		x = 0
	} else if x > 31 {
		x = 31
	}

	qRateDelta := (int32(sensitivity) * x) >> 3
	rem := x & 7
	if sensitivity == 3 && rem == 3 {
		qRateDelta--
	} else if sensitivity == 7 && rem > 0 && rem < 4 {
		qRateDelta++
	}
	return qRateDelta
}

// computeVelocityFactor interpolates the velocity curve linearly over
// the nine breakpoints of velocityPoints.
func computeVelocityFactor(velocity, sensitivity uint8) float32 {
	if velocity < 1 {
		velocity = 1
	} else if velocity > 127 {
		velocity = 127
	}
	if sensitivity > 7 {
		sensitivity = 7
	}

	v := int(velocity)
	if v == velocityPoints[0] {
		return velocityFactorTable[sensitivity][0]
	}
	if v == velocityPoints[8] {
		return velocityFactorTable[sensitivity][8]
	}

	for i := 0; i < 8; i++ {
		if v <= velocityPoints[i] && v > velocityPoints[i+1] {
			t := float32(v-velocityPoints[i+1]) / float32(velocityPoints[i]-velocityPoints[i+1])
			return velocityFactorTable[sensitivity][i+1] +
				t*(velocityFactorTable[sensitivity][i]-velocityFactorTable[sensitivity][i+1])
		}
	}
	return velocityFactorTable[sensitivity][0]
}

// scaleLevel computes the keyboard level scaling factor for a note,
// using the left/right depth and curve around the breakpoint key.
func scaleLevel(midiNote, outputLevel, breakpoint, leftDepth, rightDepth, leftCurve, rightCurve uint8) float32 {
	if leftDepth == 0 && rightDepth == 0 {
		return 1.0
	}

	offset := int(midiNote) - int(breakpoint) - 17

	var group, depth int
	var curve uint8

	if offset >= 0 {
		group = (offset + 1) / 3
		depth = int(rightDepth)
		curve = rightCurve
	} else {
		group = -(offset - 1) / 3
		depth = int(leftDepth)
		curve = leftCurve
	}

	if group > 99 {
		group = 99
	}

	var scale int
	if curve == 0 || curve == 3 {
		scale = (group * depth * 329) >> 12
	} else {
		expGroup := group
		if expGroup > 32 {
			expGroup = 32
		}
		scale = (int(keyscaleExp[expGroup]) * depth * 329) >> 15
	}

	if curve < 2 {
		scale = -scale
	}

	scaledOutlevel := int(scaleOutLevel(outputLevel))
	clampedWithScale := scaledOutlevel + scale
	if clampedWithScale > 127 {
		clampedWithScale = 127
	}

	effectiveScale := clampedWithScale - scaledOutlevel
	return lutExp2(float32(effectiveScale<<5) * INV_Q24_ONE)
}

// SetConfig installs the operator configuration.
func (op *Operator) SetConfig(cfg *OperatorConfig) {
	op.config = cfg
	if cfg != nil {
		op.env.SetConfig(&cfg.Envelope)
		op.osc.SetWaveform(cfg.Waveform)
		op.isOn = cfg.On
		op.cachedAmpModSens = float32(cfg.AmpModSens) * INV_PARAM_3
	}
}

// SetFeedback installs the feedback gain from the 8-entry ladder.
func (op *Operator) SetFeedback(feedback uint8) {
	if feedback > MAX_FEEDBACK_VALUE {
		feedback = MAX_FEEDBACK_VALUE
	}
	op.feedbackLevel = feedbackTable[feedback]
}

// Trigger starts a note: recomputes frequency, velocity and scaling
// factors, optionally resets the oscillator phase, and fires the envelope.
func (op *Operator) Trigger(midiNote, velocity uint8) {
	if op.config == nil {
		return
	}

	op.updateFrequency(midiToFrequency(midiNote))

	op.velocityFactor = computeVelocityFactor(velocity, op.config.VelocitySensitivity)
	op.levelScalingFactor = scaleLevel(midiNote, op.config.Envelope.OutputLevel,
		op.config.LvlSclBreakpoint, op.config.LvlSclLeftDepth, op.config.LvlSclRightDepth,
		op.config.LvlSclLeftCurve, op.config.LvlSclRightCurve)

	if op.config.OSCKeySync {
		op.osc.Reset()
	}

	op.env.SetRateScaling(scaleRate(midiNote, op.config.Envelope.RateScaling))
	op.env.Trigger()
	op.previousOutput = 0.0
}

// Release drops the envelope into its release stage.
func (op *Operator) Release() {
	op.env.Release()
}

// Reset returns the operator to silence.
func (op *Operator) Reset() {
	op.osc.Reset()
	op.env.Reset()
	op.previousOutput = 0.0
}

// IsActive reports whether the amplitude envelope still produces output.
func (op *Operator) IsActive() bool {
	return op.env.IsActive()
}

// Process generates one sample with external phase modulation.
func (op *Operator) Process(phaseMod, pitchMod, ampMod float32) float32 {
	if !op.isOn {
		return 0.0
	}

	envelopeLevel := op.env.Process()
	oscillatorValue := op.osc.Process(phaseMod, pitchMod)
	ampModFactor := ampMod * op.cachedAmpModSens

	return oscillatorValue * envelopeLevel * op.velocityFactor * op.levelScalingFactor * (1.0 - ampModFactor)
}

// ProcessWithFeedback generates one sample using the operator's own
// previous output (pre-AM) as phase modulation.
func (op *Operator) ProcessWithFeedback(pitchMod, ampMod float32) float32 {
	if !op.isOn {
		return 0.0
	}

	envelopeLevel := op.env.Process()

	phaseMod := op.feedbackLevel * op.previousOutput * FEEDBACK_SCALING
	oscillatorValue := op.osc.Process(phaseMod, pitchMod)
	gainedOutput := oscillatorValue * envelopeLevel * op.velocityFactor * op.levelScalingFactor

	op.previousOutput = gainedOutput
	ampModFactor := ampMod * op.cachedAmpModSens

	return gainedOutput * (1.0 - ampModFactor)
}
