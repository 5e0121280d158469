// fm_algorithm.go - Per-sample routing of the six-operator modulation graph

package main

// Algorithm evaluates one voice's operators through a fixed modulation
// graph. It holds indices into the voice's operator array, never
// pointers, so a Voice stays a trivially relocatable aggregate. The
// six-slot modulation buffer is private to the voice and needs no
// synchronization.
type Algorithm struct {
	modulationBuffer [NUM_OPERATORS]float32
	config           *AlgorithmConfig
}

// SetConfig selects the routing graph.
func (a *Algorithm) SetConfig(cfg *AlgorithmConfig) {
	a.config = cfg
}

// Config returns the active routing graph (nil before configuration).
func (a *Algorithm) Config() *AlgorithmConfig {
	return a.config
}

// Reset clears the modulation scratch buffer.
func (a *Algorithm) Reset() {
	for i := range a.modulationBuffer {
		a.modulationBuffer[i] = 0.0
	}
}

// Process evaluates all six operators for one sample and returns the
// sum of the carriers.
//
// Operators run from index 5 down to 0. Because every stored modulator
// index is strictly greater than the operator it modulates, a single
// descending pass visits each modulator before its carrier: no
// scheduling, no cycle detection. The one feedback loop is handled by
// the designated operator's own one-sample memory.
func (a *Algorithm) Process(ops *[NUM_OPERATORS]Operator, pitchMod, ampMod float32) float32 {
	cfg := a.config
	if cfg == nil {
		return 0.0
	}

	finalOutput := float32(0.0)

	a.modulationBuffer[0] = 0.0
	a.modulationBuffer[1] = 0.0
	a.modulationBuffer[2] = 0.0
	a.modulationBuffer[3] = 0.0
	a.modulationBuffer[4] = 0.0
	a.modulationBuffer[5] = 0.0

	for i := NUM_OPERATORS - 1; i >= 0; i-- {
		var phaseMod float32
		modCount := int(cfg.ModulatorCount[i])
		for j := 0; j < modCount; j++ {
			phaseMod += a.modulationBuffer[cfg.ModulatorIndices[i][j]]
		}
		phaseMod *= MODULATION_SCALING

		var output float32
		if cfg.HasFeedback && i == int(cfg.FeedbackOperator) {
			output = ops[i].ProcessWithFeedback(pitchMod, ampMod)
		} else {
			output = ops[i].Process(phaseMod, pitchMod, ampMod)
		}

		a.modulationBuffer[i] = output

		if cfg.IsCarrier[i] {
			finalOutput += output
		}
	}

	return finalOutput
}
