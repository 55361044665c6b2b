package core

// SampleProcessor is anything that consumes one input sample and produces
// one output sample while advancing internal state: a biquad section, a
// cascade of sections, or a controller.
type SampleProcessor interface {
	ProcessSample(x float64) float64
	Reset()
}

// Run feeds every sample of in through p and returns the outputs.
// p is not reset first.
func Run(p SampleProcessor, in []float64) []float64 {
	out := make([]float64, len(in))
	for i, x := range in {
		out[i] = p.ProcessSample(x)
	}

	return out
}
