// fm_algorithms.go - The 32 DX7 modulation routing graphs

/*
Each entry encodes one DX7 algorithm: which operators modulate which,
which are carriers, and where the single feedback loop sits. The
catalogue is expanded at startup from the compact per-algorithm specs
below into AlgorithmConfig values with the precomputed adjacency the
hot path consumes.

Indices are core order: operator 0 here is DX7 OP1, operator 5 is DX7
OP6 (the SysEx decoder reverses the packed OP6..OP1 order on load).

Two of the original graphs (4 and 6) close their loop with a plain
modulation edge instead of the operator-local feedback path. That edge
points downward (modulator index below the carrier), so under the
descending evaluation order it always reads a freshly cleared buffer
slot and contributes exactly zero. The hot-path adjacency omits it,
keeping every stored modulator index strictly greater than its carrier;
the informational connection matrix retains the full original topology.
*/

package main

import "fmt"

type algorithmSpec struct {
	mods       [NUM_OPERATORS][]uint8 // hot-path modulators per operator, all > own index
	extraEdges [][2]uint8             // display-only edges {modulator, carrier} outside the hot path
	carriers   uint8                  // bitmask, bit i set = operator i is a carrier
	feedback   int8                   // feedback operator index, -1 = none
}

var algorithmSpecs = [32]algorithmSpec{
	// 1: 2>1, 6>5>4>3, fb 6
	{mods: [NUM_OPERATORS][]uint8{{1}, nil, {3}, {4}, {5}, nil}, carriers: 0b000101, feedback: 5},
	// 2: 2>1, 6>5>4>3, fb 2
	{mods: [NUM_OPERATORS][]uint8{{1}, nil, {3}, {4}, {5}, nil}, carriers: 0b000101, feedback: 1},
	// 3: 3>2>1, 6>5>4, fb 6
	{mods: [NUM_OPERATORS][]uint8{{1}, {2}, nil, {4}, {5}, nil}, carriers: 0b001001, feedback: 5},
	// 4: 3>2>1, 6>5>4, loop 4>6
	{mods: [NUM_OPERATORS][]uint8{{1}, {2}, nil, {4}, {5}, nil}, extraEdges: [][2]uint8{{3, 5}}, carriers: 0b001001, feedback: -1},
	// 5: 2>1, 4>3, 6>5, fb 6
	{mods: [NUM_OPERATORS][]uint8{{1}, nil, {3}, nil, {5}, nil}, carriers: 0b010101, feedback: 5},
	// 6: 2>1, 4>3, 6>5, loop 5>6
	{mods: [NUM_OPERATORS][]uint8{{1}, nil, {3}, nil, {5}, nil}, extraEdges: [][2]uint8{{4, 5}}, carriers: 0b010101, feedback: -1},
	// 7: 2>1, (4,5)>3, 6>5, fb 6
	{mods: [NUM_OPERATORS][]uint8{{1}, nil, {3, 4}, nil, {5}, nil}, carriers: 0b000101, feedback: 5},
	// 8: as 7, fb 4
	{mods: [NUM_OPERATORS][]uint8{{1}, nil, {3, 4}, nil, {5}, nil}, carriers: 0b000101, feedback: 3},
	// 9: as 7, fb 2
	{mods: [NUM_OPERATORS][]uint8{{1}, nil, {3, 4}, nil, {5}, nil}, carriers: 0b000101, feedback: 1},
	// 10: 3>2>1, (5,6)>4, fb 3
	{mods: [NUM_OPERATORS][]uint8{{1}, {2}, nil, {4, 5}, nil, nil}, carriers: 0b001001, feedback: 2},
	// 11: as 10, fb 6
	{mods: [NUM_OPERATORS][]uint8{{1}, {2}, nil, {4, 5}, nil, nil}, carriers: 0b001001, feedback: 5},
	// 12: 2>1, (4,5,6)>3, fb 2
	{mods: [NUM_OPERATORS][]uint8{{1}, nil, {3, 4, 5}, nil, nil, nil}, carriers: 0b000101, feedback: 1},
	// 13: as 12, fb 6
	{mods: [NUM_OPERATORS][]uint8{{1}, nil, {3, 4, 5}, nil, nil, nil}, carriers: 0b000101, feedback: 5},
	// 14: 2>1, 4>3, (5,6)>4, 6>5, fb 6
	{mods: [NUM_OPERATORS][]uint8{{1}, nil, {3}, {4, 5}, {5}, nil}, carriers: 0b000101, feedback: 5},
	// 15: as 14, fb 2
	{mods: [NUM_OPERATORS][]uint8{{1}, nil, {3}, {4, 5}, {5}, nil}, carriers: 0b000101, feedback: 1},
	// 16: (2,3,5)>1, 4>3, 6>5, fb 6
	{mods: [NUM_OPERATORS][]uint8{{1, 2, 4}, nil, {3}, nil, {5}, nil}, carriers: 0b000001, feedback: 5},
	// 17: as 16, fb 2
	{mods: [NUM_OPERATORS][]uint8{{1, 2, 4}, nil, {3}, nil, {5}, nil}, carriers: 0b000001, feedback: 1},
	// 18: (2,3,4)>1, 5>4, 6>5, fb 3
	{mods: [NUM_OPERATORS][]uint8{{1, 2, 3}, nil, nil, {4}, {5}, nil}, carriers: 0b000001, feedback: 2},
	// 19: 2>1, 3>2, 6>4, 6>5, fb 6
	{mods: [NUM_OPERATORS][]uint8{{1}, {2}, nil, {5}, {5}, nil}, carriers: 0b011001, feedback: 5},
	// 20: 3>1, 3>2, (5,6)>4, fb 3
	{mods: [NUM_OPERATORS][]uint8{{2}, {2}, nil, {4, 5}, nil, nil}, carriers: 0b001011, feedback: 2},
	// 21: 3>1, 3>2, 6>4, 6>5, fb 3
	{mods: [NUM_OPERATORS][]uint8{{2}, {2}, nil, {5}, {5}, nil}, carriers: 0b011011, feedback: 2},
	// 22: 2>1, 6>3, 6>4, 6>5, fb 6
	{mods: [NUM_OPERATORS][]uint8{{1}, nil, {5}, {5}, {5}, nil}, carriers: 0b011101, feedback: 5},
	// 23: 3>2, 6>4, 6>5, fb 6
	{mods: [NUM_OPERATORS][]uint8{nil, {2}, nil, {5}, {5}, nil}, carriers: 0b011011, feedback: 5},
	// 24: 6>3, 6>4, 6>5, fb 6
	{mods: [NUM_OPERATORS][]uint8{nil, nil, {5}, {5}, {5}, nil}, carriers: 0b011111, feedback: 5},
	// 25: 6>4, 6>5, fb 6
	{mods: [NUM_OPERATORS][]uint8{nil, nil, nil, {5}, {5}, nil}, carriers: 0b011111, feedback: 5},
	// 26: 3>2, (5,6)>4, fb 6
	{mods: [NUM_OPERATORS][]uint8{nil, {2}, nil, {4, 5}, nil, nil}, carriers: 0b001011, feedback: 5},
	// 27: as 26, fb 3
	{mods: [NUM_OPERATORS][]uint8{nil, {2}, nil, {4, 5}, nil, nil}, carriers: 0b001011, feedback: 2},
	// 28: 2>1, 4>3, 5>4, fb 5
	{mods: [NUM_OPERATORS][]uint8{{1}, nil, {3}, {4}, nil, nil}, carriers: 0b100101, feedback: 4},
	// 29: 4>3, 6>5, fb 6
	{mods: [NUM_OPERATORS][]uint8{nil, nil, {3}, nil, {5}, nil}, carriers: 0b010111, feedback: 5},
	// 30: 4>3, 5>4, fb 5
	{mods: [NUM_OPERATORS][]uint8{nil, nil, {3}, {4}, nil, nil}, carriers: 0b100111, feedback: 4},
	// 31: 6>5, fb 6
	{mods: [NUM_OPERATORS][]uint8{nil, nil, nil, nil, {5}, nil}, carriers: 0b011111, feedback: 5},
	// 32: all carriers, fb 6
	{mods: [NUM_OPERATORS][]uint8{nil, nil, nil, nil, nil, nil}, carriers: 0b111111, feedback: 5},
}

// algorithmCatalogue holds the 32 expanded routing graphs, read-only
// after startup. Voices reference entries by pointer.
var algorithmCatalogue = func() [32]AlgorithmConfig {
	var catalogue [32]AlgorithmConfig
	for n, spec := range algorithmSpecs {
		cfg := &catalogue[n]
		for i := 0; i < NUM_OPERATORS; i++ {
			cfg.ModulatorCount[i] = uint8(len(spec.mods[i]))
			for j, m := range spec.mods[i] {
				cfg.ModulatorIndices[i][j] = m
				cfg.Connections[m][i] = true
			}
			cfg.IsCarrier[i] = spec.carriers&(1<<uint(i)) != 0
		}
		for _, edge := range spec.extraEdges {
			cfg.Connections[edge[0]][edge[1]] = true
		}
		if spec.feedback >= 0 {
			cfg.HasFeedback = true
			cfg.FeedbackOperator = uint8(spec.feedback)
		}
	}
	return catalogue
}()

// AlgorithmByIndex returns the catalogue entry for index 0-31; indices
// out of range fall back to algorithm 1 with a diagnostic.
func AlgorithmByIndex(index uint8) *AlgorithmConfig {
	if index >= 32 {
		fmt.Printf("Warning: algorithm index %d out of range, using 0\n", index)
		index = 0
	}
	return &algorithmCatalogue[index]
}
