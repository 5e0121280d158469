// fm_envelope.go - DX7-style four-stage amplitude envelope in Q24 log domain

/*
The envelope integrates in a 32-bit Q24 log-level domain and converts to
a linear gain on output via exp2(level - 14). Stage timing reproduces
the DX7 rate ladder:

  qRate     = (R * 41) >> 6 + rateScaling, capped at 63
  increment = (4 + (qRate & 3)) << (2 + (qRate >> 2))   per sample

Stages whose target equals the current level still take an audible
amount of time; those pauses come from the 77-entry static table below
(measured timings, in samples at 44.1 kHz). Rising segments use the
hardware's jump target and the (17<<24 - level) >> 24 step shape.
*/

package main

// Output level mapping for user levels below 20
var envLevelLUT = [20]uint8{
	0, 5, 9, 13, 17, 20, 23, 25, 27, 29, 31, 33, 35, 37, 39, 41, 42, 43, 45, 46,
}

// Equal-level stage durations in samples, indexed by staticRate.
// Rates 77-99 use 20 * (99 - rate) instead.
var envStatics = [77]int32{
	1764000, 1764000, 1411200, 1411200, 1190700, 1014300, 992250,
	882000, 705600, 705600, 584325, 507150, 502740, 441000, 418950,
	352800, 308700, 286650, 253575, 220500, 220500, 176400, 145530,
	145530, 125685, 110250, 110250, 88200, 88200, 74970, 61740,
	61740, 55125, 48510, 44100, 37485, 31311, 30870, 27562, 27562,
	22050, 18522, 17640, 15435, 14112, 13230, 11025, 9261, 9261, 7717,
	6615, 6615, 5512, 5512, 4410, 3969, 3969, 3439, 2866, 2690, 2249,
	1984, 1896, 1808, 1411, 1367, 1234, 1146, 926, 837, 837, 705,
	573, 573, 529, 441, 441,
}

// Sample rate scaling in Q24: rescales the 44.1 kHz-referenced
// increments and static counts to the configured rate.
const envSRMultiplier = uint32(44100.0 / SAMPLE_RATE * Q24_ONE)

// Envelope is the DX7 ADSR. State 0-3 are the four stages, 4 is idle.
type Envelope struct {
	config *EnvelopeConfig

	// Cached config values for the hot path
	levels      [4]uint8
	rates       [4]uint8
	outputLevel int32

	// Runtime state
	currentLevel uint32 // Q24
	increment    int32  // Q24 per sample
	targetLevel  int32  // Q24
	staticCount  int32
	rateScaling  int32
	currentState uint8
	rising       bool
	keyDown      bool
	initialised  bool
}

func scaleOutLevel(outlevel uint8) uint8 {
	if outlevel >= 20 {
		return 28 + outlevel
	}
	return envLevelLUT[outlevel]
}

func (e *Envelope) goToState(newState uint8) {
	e.currentState = newState
	if e.currentState >= 4 {
		return
	}

	newLevel := e.levels[e.currentState]
	actualLevel := int32(scaleOutLevel(newLevel)) >> 1
	actualLevel = (actualLevel << 6) + e.outputLevel - 4256
	if actualLevel < 16 {
		actualLevel = 16
	}

	e.targetLevel = actualLevel << 16
	e.rising = uint32(e.targetLevel) > e.currentLevel

	qRate := (int32(e.rates[e.currentState]) * 41) >> 6
	qRate += e.rateScaling
	if qRate > 63 {
		qRate = 63
	}

	// Equal-level stages still pause for an audible duration
	if uint32(e.targetLevel) == e.currentLevel || (e.currentState == 0 && newLevel == 0) {
		staticRate := int32(e.rates[e.currentState]) + e.rateScaling
		if staticRate > 99 {
			staticRate = 99
		}

		if staticRate < 77 {
			e.staticCount = envStatics[staticRate]
		} else {
			e.staticCount = 20 * (99 - staticRate)
		}
		if staticRate < 77 && e.currentState == 0 && newLevel == 0 {
			e.staticCount /= 20
		}
		e.staticCount = int32((int64(e.staticCount) * int64(envSRMultiplier)) >> 24)
	} else {
		e.staticCount = 0
	}

	e.increment = (4 + (qRate & 3)) << (2 + uint(qRate>>2))
	e.increment = int32((int64(e.increment) * int64(envSRMultiplier)) >> 24)
}

// SetConfig installs a new envelope configuration and returns to idle.
func (e *Envelope) SetConfig(cfg *EnvelopeConfig) {
	e.initialised = true
	e.config = cfg
	e.refreshFromConfig()
	e.currentLevel = 0
	e.staticCount = 0
	e.goToState(4)
}

// Update re-reads the configuration without restarting the envelope.
// Used for live edits while a note is sounding.
func (e *Envelope) Update(rateScaling int32) {
	if e.config == nil {
		return
	}
	e.refreshFromConfig()
	e.rateScaling = rateScaling
	e.goToState(e.currentState)
}

func (e *Envelope) refreshFromConfig() {
	e.levels[0] = e.config.L1
	e.levels[1] = e.config.L2
	e.levels[2] = e.config.L3
	e.levels[3] = e.config.L4
	e.rates[0] = e.config.R1
	e.rates[1] = e.config.R2
	e.rates[2] = e.config.R3
	e.rates[3] = e.config.R4
	e.outputLevel = int32(scaleOutLevel(e.config.OutputLevel)) << 5
}

// SetRateScaling installs the per-note qRate delta from key scaling.
func (e *Envelope) SetRateScaling(rateScaling int32) {
	e.rateScaling = rateScaling
	e.goToState(e.currentState)
}

// Trigger starts the attack stage.
func (e *Envelope) Trigger() {
	e.keyDown = true
	e.goToState(0)
}

// Release drops into the release stage unless already past it.
func (e *Envelope) Release() {
	e.keyDown = false
	if e.currentState < 3 {
		e.goToState(3)
	}
}

// Process advances one sample and returns the linear gain in [0, 1].
func (e *Envelope) Process() float32 {
	if !e.initialised {
		return 0.0
	}

	// Equal-level pause: hold and count down
	if e.staticCount > 0 {
		e.staticCount--
		if e.staticCount == 0 {
			e.goToState(e.currentState + 1)
		}
		return lutExp2(float32(e.currentLevel)*INV_Q24_ONE - 14.0)
	}

	// Stages 0-2 always run; stage 3 only after key-up
	shouldProcess := e.currentState < 3 || (e.currentState == 3 && !e.keyDown)

	if shouldProcess {
		if e.rising {
			const jumpTarget = 1716
			if e.currentLevel < jumpTarget<<16 {
				e.currentLevel = jumpTarget << 16
			}
			e.currentLevel += ((uint32(17<<24) - e.currentLevel) >> 24) * uint32(e.increment)
			if e.currentLevel >= uint32(e.targetLevel) {
				e.currentLevel = uint32(e.targetLevel)
				e.goToState(e.currentState + 1)
			}
		} else {
			e.currentLevel -= uint32(e.increment)
			if e.currentLevel <= uint32(e.targetLevel) {
				e.currentLevel = uint32(e.targetLevel)
				e.goToState(e.currentState + 1)
			}
		}
	}

	return lutExp2(float32(e.currentLevel)*INV_Q24_ONE - 14.0)
}

// Reset returns to idle with zero level.
func (e *Envelope) Reset() {
	e.goToState(4)
	e.currentLevel = 0
}

// State returns the current stage (0-3: ADSR, 4: idle).
func (e *Envelope) State() uint8 {
	return e.currentState
}

// IsActive reports whether the envelope still produces output: any
// running stage, or idle with a non-zero L4.
func (e *Envelope) IsActive() bool {
	return e.initialised && (e.currentState < 4 || e.levels[3] > 0)
}
