package apu

// NTSC 2A03 clock, in Hz.
const CPUClock = 1789773

// Length counter load values, indexed by the 5-bit value written to the
// length registers ($4003/$4007/$400B/$400F, bits 3-7).
var lengthLUT = [32]uint8{
	10, 254, 20, 2, 40, 4, 80, 6,
	160, 8, 60, 10, 14, 12, 26, 14,
	12, 16, 24, 18, 48, 20, 96, 22,
	192, 24, 72, 26, 16, 28, 32, 30,
}

// Noise channel timer periods, indexed by the low nibble of $400E.
var noisePeriodLUT = [16]uint16{
	4, 8, 16, 32, 64, 96, 128, 160,
	202, 254, 380, 508, 762, 1016, 2034, 4068,
}

// DMC timer periods, indexed by the low nibble of $4010.
var dmcPeriodLUT = [16]uint16{
	428, 380, 340, 320, 286, 254, 226, 214,
	190, 160, 142, 128, 106, 85, 72, 54,
}

// 32-step output sequence of the triangle channel.
var triangleSequence = [32]uint8{
	15, 14, 13, 12, 11, 10, 9, 8,
	7, 6, 5, 4, 3, 2, 1, 0,
	0, 1, 2, 3, 4, 5, 6, 7,
	8, 9, 10, 11, 12, 13, 14, 15,
}
