package biquad_test

import (
	"fmt"

	"github.com/cwbudde/algo-control/dsp/filter/biquad"
)

func ExampleSection_ProcessSample() {
	s := biquad.NewSection(biquad.Coefficients{
		B0: 0.25, B1: 0.5, B2: 0.25,
		A1: -0.2, A2: 0.04,
	})

	for i := range 4 {
		var x float64
		if i == 0 {
			x = 1
		}

		fmt.Printf("y[%d] = %.3f\n", i, s.ProcessSample(x))
	}
	// Output:
	// y[0] = 0.250
	// y[1] = 0.550
	// y[2] = 0.350
	// y[3] = 0.048
}

func ExampleNormalize() {
	c, err := biquad.Normalize(3, 6, 9, 3, 12, 15)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("%+v stable=%v\n", c, c.Stable())

	_, err = biquad.Normalize(1, 0, 0, 0, 0, 0)
	fmt.Println(err)
	// Output:
	// {B0:1 B1:2 B2:3 A1:4 A2:5} stable=false
	// biquad: leading denominator coefficient a0 is zero
}

func ExampleFromZPK() {
	c, err := biquad.FromZPK(
		[2]complex128{-2, -1},
		[2]complex128{complex(-0.5, 0.5), complex(-0.5, -0.5)},
		0.5,
	)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("B=(%.2f, %.2f, %.2f) A=(1, %.2f, %.2f)\n", c.B0, c.B1, c.B2, c.A1, c.A2)
	fmt.Printf("spectral radius %.4f\n", c.SpectralRadius())
	// Output:
	// B=(0.50, 1.50, 1.00) A=(1, 1.00, 0.50)
	// spectral radius 0.7071
}

func ExampleChain_ProcessSample() {
	chain := biquad.NewChain([]biquad.Coefficients{
		{B0: 1, B1: 2, B2: 3, A1: 4, A2: 5},
		{B0: 1},
	})

	out := make([]float64, 5)
	for i := range out {
		out[i] = chain.ProcessSample(float64(i))
	}

	fmt.Println(out)
	fmt.Println("order", chain.Order(), "stable", chain.Stable())
	// Output:
	// [0 1 0 5 -4]
	// order 4 stable false
}

func ExampleSection_StepResponse() {
	// Trapezoidal PI with Ts=1, Kp=2, Ti=1.
	s := biquad.NewSection(biquad.Coefficients{B0: 3, B1: 2, B2: -1, A2: -1})

	fmt.Println(s.StepResponse(5))
	// Output:
	// [3 5 7 9 11]
}
