package hc595seg

// MaxDigit is the largest value the display can show (hexadecimal F).
const MaxDigit = 15

// digits maps a digit value to the segment pattern shifted into the register.
// A cleared bit lights its segment (common anode wiring). Segments A..G sit on
// bits 7..1 and the decimal point on bit 0.
var digits = [MaxDigit + 1]byte{
	0b00000010, // 0
	0b10011110, // 1
	0b00100100, // 2
	0b00001100, // 3
	0b10011000, // 4
	0b01001000, // 5
	0b01000000, // 6
	0b00011110, // 7
	0b00000000, // 8
	0b00001000, // 9
	0b00010000, // A
	0b11000000, // B
	0b01100010, // C
	0b10000100, // D
	0b01100000, // E
	0b01110000, // F
}

// Pattern returns the segment pattern for digit v.
// ok is false when v is outside [0, MaxDigit].
func Pattern(v int) (p byte, ok bool) {
	if v < 0 || v > MaxDigit {
		return 0, false
	}
	return digits[v], true
}

// InRange reports whether v can be shown on the display.
func InRange(v int64) bool {
	return v >= 0 && v <= MaxDigit
}
