package biquad

import (
	_ "github.com/cwbudde/algo-control/dsp/filter/biquad/internal/arch/generic" // register block kernels
)
