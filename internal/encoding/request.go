package encoding

// Request captures one compression invocation as collected by a front end.
// A nil CRF means "use the preset default"; zero is a valid CRF value.
type Request struct {
	Input  string
	Preset string
	CRF    *int
	Scale  string
	FPS    int
	Codec  string
	Output string
}

// Result reports a finished compression. Ratio is output size over input
// size; anything below 1.0 means the encode shrank the file.
type Result struct {
	InputPath   string
	OutputPath  string
	InputBytes  int64
	OutputBytes int64
	Ratio       float64
	Success     bool
}

// ReductionPercent returns the size reduction as a percentage for display.
func (r Result) ReductionPercent() float64 {
	if r.InputBytes <= 0 {
		return 0
	}
	return (1 - float64(r.OutputBytes)/float64(r.InputBytes)) * 100
}
