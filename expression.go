package mdmath

// Expression is one math expression as seen by the TeX input processor.
type Expression struct {
	Source  string // Raw TeX between the delimiters, without them
	Display bool   // Block ($$...$$) or inline ($...$); informational only
}
