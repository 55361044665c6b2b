// Command pidinfo prints the discrete realization of a PID controller.
//
// Usage:
//
//	pidinfo [flags]
//
// For each discretization method it prints the synthesized biquad
// coefficients, poles, zeros and stability, followed by the first samples
// of the controller's unit-step response. With -plant it also closes the
// loop around a first-order plant and reports step metrics and margins.
//
// Examples:
//
//	pidinfo -kp 2 -ti 1
//	pidinfo -ts 0.01 -kp 3 -ti 0.5 -td 0.05 -n 10 -all
//	pidinfo -kp 3 -ti 0.5 -limit 1.5 -plant 0.9 -antiwindup none
//	pidinfo -kp 3 -ti 0.5 -plant 0.9 -deadtime 2.5 -filter 1
package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"text/tabwriter"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-control/dsp/control"
	"github.com/cwbudde/algo-control/dsp/delay"
	"github.com/cwbudde/algo-control/dsp/filter/biquad"
	"github.com/cwbudde/algo-control/dsp/filter/design"
	"github.com/cwbudde/algo-control/dsp/filter/design/pid"
	"github.com/cwbudde/algo-control/dsp/spectrum"
	"github.com/cwbudde/algo-control/dsp/system/statespace"
	"github.com/cwbudde/algo-control/stats/response"
)

type options struct {
	tc         pid.TimeConstants
	limit      float64
	methods    []pid.Method
	antiWindup control.AntiWindup
	steps      int
	plant      float64
	deadTime   float64
	filterHz   float64
	loopSteps  int
}

func main() {
	ts := flag.Float64("ts", 0.1, "sample time in seconds")
	kp := flag.Float64("kp", 1, "proportional gain")
	ti := flag.Float64("ti", math.Inf(1), "integral time in seconds (+Inf disables)")
	td := flag.Float64("td", 0, "derivative time in seconds (0 disables)")
	n := flag.Float64("n", math.Inf(1), "derivative filter ratio (+Inf for no filter)")
	limit := flag.Float64("limit", math.Inf(1), "output limit (+Inf for unbounded)")
	method := flag.String("method", "trapezoidal", "discretization method (trapezoidal, forward-euler, backward-euler)")
	all := flag.Bool("all", false, "show all discretization methods")
	antiWindup := flag.String("antiwindup", "freeze", "anti-windup policy (freeze, none)")
	steps := flag.Int("steps", 10, "number of step-response samples to print")
	plant := flag.Float64("plant", math.NaN(), "pole of a unity-gain first-order plant to close the loop around")
	deadTime := flag.Float64("deadtime", 0, "plant dead time in samples")
	filterHz := flag.Float64("filter", 0, "corner of a first-order measurement low-pass in Hz (0 disables)")
	loopSteps := flag.Int("loop-steps", 500, "closed-loop simulation length in samples")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: pidinfo [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Prints the discrete biquad realization of a PID controller.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  pidinfo -kp 2 -ti 1\n")
		fmt.Fprintf(os.Stderr, "  pidinfo -ts 0.01 -kp 3 -ti 0.5 -td 0.05 -n 10 -all\n")
		fmt.Fprintf(os.Stderr, "  pidinfo -kp 3 -ti 0.5 -limit 1.5 -plant 0.9 -antiwindup none\n")
		fmt.Fprintf(os.Stderr, "  pidinfo -kp 3 -ti 0.5 -plant 0.9 -deadtime 2.5 -filter 1\n")
	}
	flag.Parse()

	opts := options{
		tc:        pid.TimeConstants{Kp: *kp, Ti: *ti, Td: *td, N: *n, Ts: *ts},
		limit:     *limit,
		steps:     *steps,
		plant:     *plant,
		deadTime:  *deadTime,
		filterHz:  *filterHz,
		loopSteps: *loopSteps,
	}

	var err error
	if opts.antiWindup, err = control.ParseAntiWindup(*antiWindup); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	if *all {
		opts.methods = pid.Methods
	} else {
		m, err := pid.ParseMethod(*method)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(2)
		}
		opts.methods = []pid.Method{m}
	}

	if err := run(os.Stdout, opts); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(w io.Writer, opts options) error {
	p, err := opts.tc.Params()
	if err != nil {
		return err
	}

	controllers := make([]*control.Controller, 0, len(opts.methods))
	methods := make([]pid.Method, 0, len(opts.methods))

	for _, m := range opts.methods {
		c, err := control.New(p,
			control.WithMethod(m),
			control.WithLimit(opts.limit),
			control.WithAntiWindup(opts.antiWindup),
		)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %s: %v\n", m, err)
			continue
		}

		controllers = append(controllers, c)
		methods = append(methods, m)
	}

	if len(controllers) == 0 {
		return fmt.Errorf("no realizable controller for %+v", p)
	}

	if err := printCoefficients(w, methods, controllers); err != nil {
		return err
	}

	if err := printStepResponse(w, methods, controllers, opts.steps); err != nil {
		return err
	}

	if math.IsNaN(opts.plant) {
		return nil
	}

	return printClosedLoop(w, methods, controllers, opts)
}

func printCoefficients(w io.Writer, methods []pid.Method, controllers []*control.Controller) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Method\tKind\tB0\tB1\tB2\tA1\tA2\tPoles\tZeros\tStable\n")
	fmt.Fprintf(tw, "------\t----\t--\t--\t--\t--\t--\t-----\t-----\t------\n")

	for i, c := range controllers {
		k := c.Coefficients()
		poles, zeros := c.Poles(), c.Zeros()
		fmt.Fprintf(tw, "%s\t%s\t%.6g\t%.6g\t%.6g\t%.6g\t%.6g\t%.4g %.4g\t%.4g %.4g\t%t\n",
			methods[i], c.Kind(),
			k.B0, k.B1, k.B2, k.A1, k.A2,
			poles[0], poles[1], zeros[0], zeros[1],
			c.Stable(),
		)
	}

	fmt.Fprintln(tw)

	return tw.Flush()
}

func printStepResponse(w io.Writer, methods []pid.Method, controllers []*control.Controller, steps int) error {
	if steps <= 0 {
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "k")
	for _, m := range methods {
		fmt.Fprintf(tw, "\t%s", m)
	}
	fmt.Fprintln(tw)

	for _, c := range controllers {
		c.Reset()
	}

	for k := range steps {
		fmt.Fprintf(tw, "%d", k)
		for _, c := range controllers {
			marker := ""
			u := c.ProcessSample(1)
			if c.Clipping() {
				marker = "*"
			}
			fmt.Fprintf(tw, "\t%.6g%s", u, marker)
		}
		fmt.Fprintln(tw)
	}

	fmt.Fprintln(tw)

	return tw.Flush()
}

// printClosedLoop runs a unit setpoint step through the loop
// y[k] = a y[k-1] + (1-a) u[k-d], optionally measured through a low-pass,
// and reports step metrics and margins.
func printClosedLoop(w io.Writer, methods []pid.Method, controllers []*control.Controller, opts options) error {
	a := opts.plant
	if !(math.Abs(a) < 1) {
		return fmt.Errorf("plant pole %v must lie inside the unit circle", a)
	}

	sensor := biquad.Coefficients{B0: 1}
	if opts.filterHz > 0 {
		sensor = design.FirstOrderLowpass(opts.filterHz, 1/opts.tc.Ts)
		if sensor == (biquad.Coefficients{}) {
			return fmt.Errorf("measurement filter %v Hz must lie below Nyquist", opts.filterHz)
		}
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Method\tOvershoot [%%]\tRise [s]\tSettling [s]\tSS error\tPM [deg]\tGM [dB]\n")
	fmt.Fprintf(tw, "------\t-------------\t--------\t------------\t--------\t--------\t-------\n")

	for i, c := range controllers {
		plant, err := statespace.New(
			mat.NewDense(1, 1, []float64{a}),
			mat.NewDense(1, 1, []float64{1 - a}),
			mat.NewDense(1, 1, []float64{1}),
			nil,
		)
		if err != nil {
			return err
		}

		dead, err := delay.NewDeadTime(opts.deadTime)
		if err != nil {
			return err
		}

		meas := biquad.NewSection(sensor)
		c.Reset()

		y := make([]float64, opts.loopSteps+1)
		for k := 1; k < len(y); k++ {
			e := 1 - meas.ProcessSample(y[k-1])
			y[k] = plant.StepScalar(dead.ProcessSample(c.ProcessSample(e)))
		}

		info, err := response.Step(y, opts.tc.Ts, response.WithReference(1))
		if err != nil {
			return err
		}

		margins, err := openLoopMargins(c, a, dead, sensor, opts.tc.Ts)
		if err != nil {
			return err
		}

		fmt.Fprintf(tw, "%s\t%.3g\t%.4g\t%.4g\t%.3g\t%.4g\t%.4g\n",
			methods[i],
			info.OvershootPct, info.RiseTime, info.SettlingTime, info.SteadyStateError,
			margins.PhaseMarginDeg, margins.GainMarginDB,
		)
	}

	return tw.Flush()
}

func openLoopMargins(c *control.Controller, a float64, dead *delay.DeadTime, sensor biquad.Coefficients, ts float64) (spectrum.StabilityMargins, error) {
	const bins = 4096

	freqs, err := spectrum.Bins(bins, ts)
	if err != nil {
		return spectrum.StabilityMargins{}, err
	}

	freqs = freqs[1:]
	plant := biquad.Coefficients{B0: 1 - a, A1: -a}

	resp := make([]complex128, len(freqs))
	for i, f := range freqs {
		resp[i] = c.Coefficients().Response(f, 1/ts) * plant.Response(f, 1/ts) * dead.Response(f, ts) * sensor.Response(f, 1/ts)
	}

	return spectrum.Margins(freqs, resp)
}
