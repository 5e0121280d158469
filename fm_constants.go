// fm_constants.go - Fixed DSP tables and constants for the AS7 FM core

/*
All tables are taken from the DX7 voice architecture:

- Feedback gain ladder (8 entries, 0 to unity)
- Keyboard level scaling curves (linear and exponential)
- Fixed-frequency base/fine tables for fixed-mode operators
- Non-linear detune table (15 entries)
- Velocity sensitivity factor table (8 sensitivities x 9 breakpoints)
- LFO speed (Hz), delay (seconds) and pitch-mod sensitivity tables
- Pitch envelope rate ladder and signed level table

The envelope-internal tables (output level LUT, equal-level static
timings) live next to the envelope in fm_envelope.go.
*/

package main

// Audio
const (
	SAMPLE_RATE     = 44100.0
	INV_SAMPLE_RATE = 1.0 / SAMPLE_RATE
)

// Synth
const (
	POLYPHONY          = 8
	NUM_OPERATORS      = 6
	MODULATION_SCALING = 12.5 // Perceptual FM index scaling; tuning knob, no hardware reference
)

// LUT sizes
const (
	OSC_LUT_SIZE  = 4096
	EXP2_LUT_SIZE = 4096
	EXP2_LUT_MIN  = -20.0
	EXP2_LUT_MAX  = 10.0
)

// Feedback
const (
	MAX_FEEDBACK_VALUE = 7
	FEEDBACK_SCALING   = 1.0
)

var feedbackTable = [8]float32{
	0.0, 0.015625, 0.03125, 0.0625, 0.125, 0.25, 0.5, 1.0,
}

// Operator output scaling applied by downstream consumers (WAV writer,
// playback backends) before converting to the output sample format.
const OPERATOR_SCALING = 0.125

// Keyboard level scaling, exponential curve (group index clamped to 32)
var keyscaleExp = [33]uint8{
	0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 11, 14, 16, 19, 23, 27, 33, 39, 47, 56, 66,
	80, 94, 110, 126, 142, 158, 174, 190, 206, 222, 238, 250,
}

// Frequency
const (
	MAX_DETUNE = 14
	MAX_COARSE = 31
	MAX_FINE   = 99
)

var fixedFreqBase = [4]float32{1.0, 10.0, 100.0, 1000.0}

// 100 logarithmic steps, 1.0 to ~9.77 (one decade minus one step)
var fixedFreqFine = [100]float32{
	1.0, 1.02329, 1.04713, 1.07152, 1.09648, 1.12202, 1.14815, 1.17490, 1.20226, 1.23027,
	1.25893, 1.28825, 1.31826, 1.34896, 1.38038, 1.41254, 1.44544, 1.47911, 1.51356, 1.54882,
	1.58489, 1.62181, 1.65959, 1.69824, 1.73780, 1.77826, 1.81970, 1.86209, 1.90546, 1.94984,
	1.99526, 2.04174, 2.08930, 2.13796, 2.18776, 2.23872, 2.29087, 2.34423, 2.39883, 2.45475,
	2.51189, 2.57040, 2.63027, 2.69153, 2.75423, 2.81838, 2.88404, 2.95123, 3.01999, 3.09032,
	3.16228, 3.23594, 3.31131, 3.38844, 3.46737, 3.54813, 3.63078, 3.71535, 3.80189, 3.89045,
	3.98107, 4.07380, 4.16869, 4.26582, 4.36516, 4.46684, 4.57088, 4.67735, 4.78630, 4.89779,
	5.01187, 5.12859, 5.24808, 5.37032, 5.49541, 5.62341, 5.75440, 5.88844, 6.02559, 6.16595,
	6.30957, 6.45654, 6.60693, 6.76083, 6.91831, 7.07946, 7.24436, 7.41311, 7.58578, 7.76247,
	7.94328, 8.12830, 8.31764, 8.51138, 8.70964, 8.91251, 9.12011, 9.33253, 9.54993, 9.77237,
}

// DX7 detune table (non-linear, indexed by distance from center)
var detuneTable = [15]float32{
	0.0, 0.078, 0.156, 0.234, 0.312, 0.468, 0.624, 0.780,
	0.936, 1.092, 1.248, 1.404, 1.560, 1.872, 2.184,
}

// Envelope Q24 fixed point
const (
	Q24_ONE     = 1 << 24
	INV_Q24_ONE = 1.0 / float32(Q24_ONE)
)

// Velocity sensitivity: factor table indexed [sensitivity][breakpoint],
// breakpoints in velocityPoints. Linear interpolation between points.
var velocityFactorTable = [8][9]float32{
	{0.543250331, 0.543250331, 0.543250331, 0.543250331, 0.543250331, 0.543250331, 0.543250331, 0.543250331, 0.543250331},
	{0.595662144, 0.568852931, 0.543250331, 0.501187234, 0.45708819, 0.421696503, 0.3672823, 0.309029543, 0.154881662},
	{0.647888095, 0.595662144, 0.518800039, 0.45708819, 0.384591782, 0.323593657, 0.251188643, 0.177827941, 0.042657952},
	{0.691830971, 0.623734835, 0.518800039, 0.421696503, 0.323593657, 0.251188643, 0.169824365, 0.096605088, 0.011885022},
	{0.770016444, 0.651628394, 0.501187234, 0.384591782, 0.27542287, 0.1840772, 0.114815362, 0.054954087, 0.003427678},
	{0.839459987, 0.677641508, 0.501187234, 0.354813389, 0.229086765, 0.142889396, 0.077624712, 0.031622777, 0.001188502},
	{0.920449572, 0.706317554, 0.478630092, 0.323593657, 0.192752491, 0.10964782, 0.053088444, 0.017378008, 0.000524807},
	{1.0, 0.73790423, 0.478630092, 0.298538262, 0.16218101, 0.086099375, 0.035892193, 0.01, 0.000398107},
}

var velocityPoints = [9]int{127, 111, 95, 79, 64, 48, 32, 16, 1}

// LFO speed in Hz for parameter values 0-99
var lfoSpeedTable = [100]float32{
	0.062541, 0.125031, 0.312393, 0.437120, 0.624610,
	0.750694, 0.936330, 1.125302, 1.249609, 1.436782,
	1.560915, 1.752081, 1.875117, 2.062494, 2.247191,
	2.374451, 2.560492, 2.686728, 2.873976, 2.998950,
	3.188013, 3.369840, 3.500175, 3.682224, 3.812065,
	4.000800, 4.186202, 4.310716, 4.501260, 4.623209,
	4.814636, 4.930480, 5.121901, 5.315191, 5.434783,
	5.617346, 5.750431, 5.946717, 6.062811, 6.248438,
	6.431695, 6.564264, 6.749460, 6.868132, 7.052186,
	7.250580, 7.375719, 7.556294, 7.687577, 7.877738,
	7.993605, 8.181967, 8.372405, 8.504848, 8.685079,
	8.810573, 8.986341, 9.122423, 9.300595, 9.500285,
	9.607994, 9.798158, 9.950249, 10.117361, 11.251125,
	11.384335, 12.562814, 13.676149, 13.904338, 15.092062,
	16.366612, 16.638935, 17.869907, 19.193858, 19.425019,
	20.833333, 21.034918, 22.502250, 24.003841, 24.260068,
	25.746653, 27.173913, 27.578599, 29.052876, 30.693677,
	31.191516, 32.658393, 34.317090, 34.674064, 36.416606,
	38.197097, 38.550501, 40.387722, 40.749796, 42.625746,
	44.326241, 44.883303, 46.772685, 48.590865, 49.261084,
}

// LFO onset delay in seconds for parameter values 0-99
var lfoDelayTable = [100]float32{
	0.000, 0.006, 0.012, 0.019, 0.026, 0.033, 0.040, 0.047, 0.051, 0.055,
	0.062, 0.069, 0.076, 0.082, 0.089, 0.092, 0.094, 0.095, 0.096, 0.096,
	0.106, 0.116, 0.126, 0.136, 0.138, 0.139, 0.140, 0.141, 0.141, 0.141,
	0.161, 0.181, 0.200, 0.210, 0.214, 0.216, 0.217, 0.218, 0.219, 0.219,
	0.284, 0.325, 0.366, 0.398, 0.414, 0.422, 0.426, 0.428, 0.429, 0.430,
	0.486, 0.526, 0.571, 0.606, 0.631, 0.643, 0.649, 0.652, 0.654, 0.656,
	0.712, 0.768, 0.824, 0.851, 0.878, 0.892, 0.899, 0.902, 0.904, 0.906,
	1.017, 1.092, 1.167, 1.236, 1.271, 1.288, 1.296, 1.301, 1.303, 1.305,
	1.455, 1.562, 1.670, 1.734, 1.766, 1.782, 1.789, 1.793, 1.795, 1.797,
	1.932, 2.080, 2.153, 2.190, 2.227, 2.375, 2.523, 2.615, 2.724, 2.832,
}

// LFO pitch-mod sensitivity scaling
var lfoPMSTable = [8]float32{
	0.0, 0.051, 0.092, 0.135, 0.21, 0.355, 0.615, 1.000,
}

// Pitch envelope rate ladder
var pitchEnvRateTable = [100]uint8{
	1, 2, 3, 3, 4, 4, 5, 5, 6, 6, 7, 7, 8, 8, 9, 9, 10, 10, 11, 11, 12,
	12, 13, 13, 14, 14, 15, 16, 16, 17, 18, 18, 19, 20, 21, 22, 23, 24,
	25, 26, 27, 28, 30, 31, 33, 34, 36, 37, 38, 39, 41, 42, 44, 46, 47,
	49, 51, 53, 54, 56, 58, 60, 62, 64, 66, 68, 70, 72, 74, 76, 79, 82,
	85, 88, 91, 94, 98, 102, 106, 110, 115, 120, 125, 130, 135, 141, 147,
	153, 159, 165, 171, 178, 185, 193, 202, 211, 232, 243, 254, 255,
}

// Pitch envelope level table: maps 0-99 to a signed log scale, 50 = unity
var pitchEnvLevelTable = [100]int8{
	-128, -116, -104, -95, -85, -76, -68, -61, -56, -52, -49, -46, -43,
	-41, -39, -37, -35, -33, -32, -31, -30, -29, -28, -27, -26, -25, -24,
	-23, -22, -21, -20, -19, -18, -17, -16, -15, -14, -13, -12, -11, -10,
	-9, -8, -7, -6, -5, -4, -3, -2, -1, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10,
	11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, 25, 26, 27,
	28, 29, 30, 31, 32, 33, 34, 35, 38, 40, 43, 46, 49, 53, 58, 65, 73,
	82, 92, 103, 115, 127,
}

// Global parameters persistence
const (
	PARAMS_FILE_PATH = "params.bin"
	PARAMS_VERSION   = 1
	PARAMS_MAGIC     = 0x47504152 // "GPAR"
)

// Inverse constants for parameter normalization
const (
	INV_PARAM_99 = 1.0 / 99.0
	INV_PARAM_7  = 1.0 / 7.0
	INV_PARAM_3  = 1.0 / 3.0
)
