// Command adaptid identifies an unknown FIR system with adaptive filters.
//
// It drives a plant with white noise, adapts one or more algorithms to the
// plant output, and prints convergence metrics and the learned taps.
//
// Usage:
//
//	adaptid [flags] [algorithm ...]
//
// Without arguments it runs every algorithm.
//
// Examples:
//
//	adaptid nlms rls
//	adaptid -plant 1,0.5,0.25 -noise 0.01 -n 8000
//	adaptid -mu 0.02 -taps 6 lms leaky-lms
//	adaptid -nfft 16 ap
//	adaptid -list
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"math/cmplx"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/pion/logging"

	"github.com/cwbudde/algo-adaptive/dsp/filter/adaptive"
	"github.com/cwbudde/algo-adaptive/dsp/filter/fir"
	"github.com/cwbudde/algo-adaptive/dsp/signal"
	"github.com/cwbudde/algo-adaptive/measure/convergence"
)

var registry = map[string]adaptive.Algorithm{
	"lms":       adaptive.LMS,
	"leaky-lms": adaptive.LeakyLMS,
	"nlms":      adaptive.NLMS,
	"sslms":     adaptive.SSLMS,
	"gngd":      adaptive.GNGD,
	"rls":       adaptive.RLS,
	"ap":        adaptive.AP,
}

var errUsage = errors.New("adaptid: invalid usage")

type settings struct {
	plant   []float64
	taps    int
	samples int
	seed    int64
	noise   float64
	nfft    int
	coeffs  bool
	verbose bool

	mu, leak, eps, rho float64
	order              int
}

func main() {
	err := run(os.Args[1:], os.Stdout, os.Stderr)
	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
	default:
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("adaptid", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var s settings
	plant := fs.String("plant", "0.5,-0.3,0.2,0.1", "comma-separated FIR coefficients of the unknown system")
	fs.IntVar(&s.taps, "taps", 0, "adaptive filter length (default: plant length)")
	fs.IntVar(&s.samples, "n", 4000, "signal length in samples")
	fs.Int64Var(&s.seed, "seed", 1, "random seed for input and noise")
	fs.Float64Var(&s.noise, "noise", 0, "standard deviation of measurement noise added to the plant output")
	fs.IntVar(&s.nfft, "nfft", 0, "print the learned magnitude response on this many FFT bins (power of two)")
	fs.BoolVar(&s.coeffs, "coeffs", false, "print the learned coefficients")
	fs.BoolVar(&s.verbose, "v", false, "log hyperparameter warnings and solver fallbacks to stderr")
	fs.Float64Var(&s.mu, "mu", math.NaN(), "learning rate (forgetting factor for rls)")
	fs.Float64Var(&s.leak, "leak", math.NaN(), "leakage factor for lms, leaky-lms, nlms, sslms")
	fs.Float64Var(&s.eps, "eps", math.NaN(), "regularization for gngd, rls, ap")
	fs.Float64Var(&s.rho, "rho", math.NaN(), "regularization adaptation rate for gngd")
	fs.IntVar(&s.order, "order", 0, "projection order for ap")
	all := fs.Bool("all", false, "run all algorithms")
	list := fs.Bool("list", false, "list available algorithm names")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: adaptid [flags] [algorithm ...]\n\n")
		fmt.Fprintf(stderr, "Identifies an unknown FIR system with adaptive filters.\n")
		fmt.Fprintf(stderr, "Without arguments or with -all, runs every algorithm.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  adaptid nlms rls\n")
		fmt.Fprintf(stderr, "  adaptid -plant 1,0.5,0.25 -noise 0.01 -n 8000\n")
		fmt.Fprintf(stderr, "  adaptid -list\n")
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *list {
		return printList(stdout)
	}

	var err error
	if s.plant, err = parsePlant(*plant); err != nil {
		return err
	}
	if s.taps == 0 {
		s.taps = len(s.plant)
	}
	if s.taps < 0 || s.samples < s.taps {
		return fmt.Errorf("%w: need 0 < taps <= n, got taps=%d n=%d", errUsage, s.taps, s.samples)
	}

	names := fs.Args()
	if len(names) == 0 || *all {
		names = sortedNames()
	}
	algos, err := resolveAlgorithms(names, stderr)
	if err != nil {
		return err
	}

	desired, input, err := signal.NewGenerator(signal.WithSeed(s.seed)).Identification(s.plant, s.samples, s.noise)
	if err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	logger := newLogger(s.verbose, stderr)

	results := make([]result, 0, len(algos))
	for _, algo := range algos {
		r, err := identify(algo, s, desired, input, logger)
		if err != nil {
			return fmt.Errorf("%v: %w", algo, err)
		}
		results = append(results, r)
	}

	if err := printSummary(stdout, results); err != nil {
		return err
	}
	if s.coeffs {
		if err := printCoefficients(stdout, s.plant, results); err != nil {
			return err
		}
	}
	if s.nfft > 0 {
		return printResponse(stdout, s.plant, results, s.nfft)
	}
	return nil
}

func parsePlant(list string) ([]float64, error) {
	fields := strings.Split(list, ",")
	plant := make([]float64, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: plant coefficient %q: %w", errUsage, f, err)
		}
		plant = append(plant, v)
	}
	if len(plant) == 0 {
		return nil, fmt.Errorf("%w: plant has no coefficients", errUsage)
	}
	return plant, nil
}

func sortedNames() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool { return registry[names[i]] < registry[names[j]] })
	return names
}

func printList(w io.Writer) error {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		if _, err := fmt.Fprintln(w, n); err != nil {
			return err
		}
	}
	return nil
}

func resolveAlgorithms(names []string, stderr io.Writer) ([]adaptive.Algorithm, error) {
	var algos []adaptive.Algorithm
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		a, ok := registry[name]
		if !ok {
			fmt.Fprintf(stderr, "warning: unknown algorithm %q (use -list to see available)\n", name)
			continue
		}
		algos = append(algos, a)
	}
	if len(algos) == 0 {
		return nil, fmt.Errorf("%w: no matching algorithms", errUsage)
	}
	return algos, nil
}

func newLogger(verbose bool, stderr io.Writer) logging.LeveledLogger {
	f := logging.NewDefaultLoggerFactory()
	f.Writer = stderr
	f.DefaultLogLevel = logging.LogLevelWarn
	if verbose {
		f.DefaultLogLevel = logging.LogLevelDebug
	}
	return f.NewLogger("adaptid")
}

type result struct {
	algo     adaptive.Algorithm
	filter   *adaptive.Filter
	coeffs   []float64
	report   convergence.Report
	misalign float64
	diag     adaptive.Diagnostics
}

func identify(algo adaptive.Algorithm, s settings, desired, input []float64, logger logging.LeveledLogger) (result, error) {
	opts := []adaptive.Option{adaptive.WithLogger(logger)}
	if !math.IsNaN(s.mu) {
		opts = append(opts, adaptive.WithLearningRate(s.mu))
	}
	if !math.IsNaN(s.leak) {
		opts = append(opts, adaptive.WithLeakage(s.leak))
	}
	if !math.IsNaN(s.eps) {
		opts = append(opts, adaptive.WithEpsilon(s.eps))
	}
	if !math.IsNaN(s.rho) {
		opts = append(opts, adaptive.WithRho(s.rho))
	}
	if s.order > 0 {
		opts = append(opts, adaptive.WithOrder(s.order))
	}

	f, err := adaptive.New(algo, adaptive.Zeros(s.taps), opts...)
	if err != nil {
		return result{}, err
	}
	if err := f.Run(desired, input); err != nil {
		return result{}, err
	}

	coeffs, err := f.Coefficients()
	if err != nil {
		return result{}, err
	}
	errSig, err := f.ErrorSignal()
	if err != nil {
		return result{}, err
	}
	report, err := convergence.Analyze(desired, errSig)
	if err != nil {
		return result{}, err
	}
	diag, err := f.Diagnostics()
	if err != nil {
		return result{}, err
	}

	misalign := math.NaN()
	if len(coeffs) >= len(s.plant) {
		ref := make([]float64, len(coeffs))
		copy(ref, s.plant)
		if m, err := convergence.MisalignmentDB(coeffs, ref); err == nil {
			misalign = m
		}
	}

	return result{
		algo:     algo,
		filter:   f,
		coeffs:   coeffs,
		report:   report,
		misalign: misalign,
		diag:     diag,
	}, nil
}

func formatDB(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return fmt.Sprintf("%.2f", v)
}

func printSummary(w io.Writer, results []result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Algorithm\tTaps\tMSE [dB]\tSteady MSE [dB]\tERLE [dB]\tMisalign [dB]\tFallbacks\n")
	fmt.Fprintf(tw, "---------\t----\t--------\t---------------\t---------\t-------------\t---------\n")
	for _, r := range results {
		fmt.Fprintf(tw, "%v\t%d\t%s\t%s\t%s\t%s\t%d\n",
			r.algo,
			len(r.coeffs),
			formatDB(r.report.MSE_dB),
			formatDB(r.report.SteadyStateMSE_dB),
			formatDB(r.report.ERLE_dB),
			formatDB(r.misalign),
			r.diag.SingularFallbacks,
		)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return nil
}

func printCoefficients(w io.Writer, plant []float64, results []result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "\nTap\tPlant")
	for _, r := range results {
		fmt.Fprintf(tw, "\t%v", r.algo)
	}
	fmt.Fprintln(tw)

	taps := len(plant)
	for _, r := range results {
		taps = max(taps, len(r.coeffs))
	}
	for k := range taps {
		fmt.Fprintf(tw, "%d\t%s", k, tap(plant, k))
		for _, r := range results {
			fmt.Fprintf(tw, "\t%s", tap(r.coeffs, k))
		}
		fmt.Fprintln(tw)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return nil
}

func tap(c []float64, k int) string {
	if k >= len(c) {
		return "-"
	}
	return fmt.Sprintf("%.6f", c[k])
}

func printResponse(w io.Writer, plant []float64, results []result, nfft int) error {
	want, err := fir.FrequencyResponse(plant, nfft)
	if err != nil {
		return fmt.Errorf("%w: -nfft: %w", errUsage, err)
	}
	got := make([][]complex128, len(results))
	for i, r := range results {
		if got[i], err = r.filter.FrequencyResponse(nfft); err != nil {
			return fmt.Errorf("%w: -nfft: %w", errUsage, err)
		}
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "\nBin\tPlant [dB]")
	for _, r := range results {
		fmt.Fprintf(tw, "\t%v [dB]", r.algo)
	}
	fmt.Fprintln(tw)
	for k := 0; k <= nfft/2; k++ {
		fmt.Fprintf(tw, "%d\t%s", k, magnitudeDB(want[k]))
		for i := range results {
			fmt.Fprintf(tw, "\t%s", magnitudeDB(got[i][k]))
		}
		fmt.Fprintln(tw)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return nil
}

func magnitudeDB(h complex128) string {
	m := cmplx.Abs(h)
	if m == 0 {
		return "-inf"
	}
	return fmt.Sprintf("%.2f", 20*math.Log10(m))
}
