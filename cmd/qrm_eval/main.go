package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/qrm-go/qrm/counts"
	"github.com/qrm-go/qrm/internal/artifact"
	"github.com/qrm-go/qrm/internal/config"
	"github.com/qrm-go/qrm/internal/metrics"
	"github.com/qrm-go/qrm/internal/verify"
	"github.com/qrm-go/qrm/synth"
)

const (
	statusOK       = "ok"
	statusSkipped  = "skipped"
	statusMismatch = "mismatch"
)

type record struct {
	Variant     string
	R, M, RIn   int
	Trial       int
	StatePrep   bool
	CNOTs       int
	Hadamards   int
	Depth       int
	Predicted   int
	PredictedH  int
	Oracle      string
	Code        string
	State       string
	Artifact    string
	Micros      int64
	Fingerprint uint64
}

func (r record) failed() bool {
	return r.Oracle != statusOK || r.Code != statusOK || (r.State != statusOK && r.State != statusSkipped)
}

type runner struct {
	log       *zap.Logger
	collector *metrics.Collector
	codec     artifact.Codec
	artifacts string
	simMaxM   int
}

func (rn *runner) run(c evalCase) (record, error) {
	rec := record{
		Variant:   c.Variant.String(),
		R:         c.R,
		M:         c.M,
		RIn:       c.RIn,
		Trial:     c.Trial,
		StatePrep: c.StatePrep,
		State:     statusSkipped,
	}
	opts := append(c.options(), synth.WithLogger(rn.log), synth.WithTracer(rn.collector))
	cfg, err := synth.NewConfig(c.Variant, c.R, c.M, opts...)
	if err != nil {
		return rec, err
	}
	start := time.Now()
	res, err := synth.Synthesize(cfg)
	if err != nil {
		return rec, err
	}
	took := time.Since(start)
	rn.collector.ObserveResult(cfg, res, took)
	rec.Micros = took.Microseconds()
	rec.CNOTs = res.Circuit.CNOTCount()
	rec.Hadamards = res.Circuit.HCount()
	rec.Depth = res.Circuit.Depth()
	rec.Fingerprint = res.Circuit.Fingerprint()

	if rec.Predicted, err = counts.Predict(cfg); err != nil {
		return rec, err
	}
	if rec.PredictedH, err = counts.Hadamards(cfg); err != nil {
		return rec, err
	}
	rec.Oracle = statusOK
	if rec.Predicted != rec.CNOTs || rec.PredictedH != rec.Hadamards {
		rec.Oracle = statusMismatch
		rn.collector.Mismatch(c.Variant)
		rn.log.Warn("oracle mismatch",
			zap.Stringer("variant", c.Variant), zap.Int("r", c.R), zap.Int("m", c.M),
			zap.Int("cnots", rec.CNOTs), zap.Int("predicted", rec.Predicted))
	}

	rec.Code = statusOK
	if err := verify.Code(cfg, res); err != nil {
		rec.Code = err.Error()
	}
	if c.M <= rn.simMaxM {
		var ref *synth.Result
		if c.Variant == synth.Recursive {
			opts := []synth.Option{}
			if c.qubits != nil {
				opts = append(opts, synth.WithQubits(c.qubits))
			}
			if ref, err = synth.Encode(synth.Standard, c.R, c.M, opts...); err != nil {
				return rec, err
			}
		}
		rec.State = statusOK
		if err := verify.State(res, ref); err != nil {
			rec.State = err.Error()
		}
	}

	if rn.artifacts != "" && c.Trial == 0 {
		path, err := artifact.Save(rn.artifacts, cfg, res, rn.codec)
		if err != nil {
			return rec, err
		}
		rec.Artifact = path
	}
	return rec, nil
}

func main() {
	var (
		cfgPath   = flag.String("config", "", "YAML config with sweep/report/artifacts sections")
		variants  = flag.String("variants", "", "comma-separated variants (standard,recursive,basis,asymmetric,punctured)")
		minM      = flag.Int("min-m", 0, "smallest m")
		maxM      = flag.Int("max-m", 0, "largest m")
		workers   = flag.Int("workers", 0, "cases synthesized in parallel")
		seed      = flag.Int64("seed", 0, "random seed for partition trials")
		trials    = flag.Int("random-partitions", 0, "random split orders per recursive case")
		simMaxM   = flag.Int("simulate-max-m", 0, "largest m run on the state vector simulator")
		statePrep = flag.Bool("state-prep", false, "drop the all-ones logical of punctured encoders")
		outDir    = flag.String("out", "", "report directory")
		artDir    = flag.String("artifacts", "", "directory for compressed encoders (empty: none)")
		codecName = flag.String("codec", "", "artifact codec: none|zstd|lz4")
		textfile  = flag.String("metrics-textfile", "", "prometheus textfile to write after the sweep")
		debug     = flag.Bool("debug", false, "log every recursion node")
	)
	flag.Parse()

	conf, err := config.Load(*cfgPath)
	if err != nil {
		fatalf("%v", err)
	}
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["variants"] {
		conf.Sweep.Variants = strings.Split(*variants, ",")
	}
	if set["min-m"] {
		conf.Sweep.MinM = *minM
	}
	if set["max-m"] {
		conf.Sweep.MaxM = *maxM
	}
	if set["workers"] {
		conf.Sweep.Workers = *workers
	}
	if set["seed"] {
		conf.Sweep.Seed = *seed
	}
	if set["random-partitions"] {
		conf.Sweep.RandomPartitions = *trials
	}
	if set["simulate-max-m"] {
		conf.Sweep.SimulateMaxM = *simMaxM
	}
	if set["state-prep"] {
		conf.Sweep.StatePrep = *statePrep
	}
	if set["out"] {
		conf.Report = config.ReportConfig{Dir: *outDir, Textfile: conf.Report.Textfile}
	}
	if set["artifacts"] {
		conf.Artifacts.Dir = *artDir
	}
	if set["codec"] {
		conf.Artifacts.Codec = *codecName
	}
	if set["metrics-textfile"] {
		conf.Report.Textfile = *textfile
	}
	c := conf.WithDefaults()
	conf = &c

	logger, closer, err := conf.CreateLogger(*debug)
	if err != nil {
		fatalf("%v", err)
	}
	failed, err := sweep(conf, logger, os.Stdout)
	os.Exit(finish(logger, closer, failed, err))
}

// sweep runs every case of conf and writes the reports, returning the number of
// failed records.
func sweep(conf *config.Config, logger *zap.Logger, out io.Writer) (int, error) {
	cases, err := buildCases(conf.Sweep)
	if err != nil {
		return 0, err
	}
	codec, err := artifact.CodecByName(conf.Artifacts.Codec)
	if err != nil {
		return 0, err
	}
	rn := &runner{
		log:       logger,
		collector: metrics.New(),
		codec:     codec,
		artifacts: conf.Artifacts.Dir,
		simMaxM:   conf.Sweep.SimulateMaxM,
	}
	logger.Info("sweep",
		zap.Int("cases", len(cases)),
		zap.Int("workers", conf.Sweep.Workers),
		zap.Int("min_m", conf.Sweep.MinM),
		zap.Int("max_m", conf.Sweep.MaxM))

	records := make([]record, len(cases))
	eg, ctx := errgroup.WithContext(context.Background())
	eg.SetLimit(conf.Sweep.Workers)
	for i, ec := range cases {
		i, ec := i, ec
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rec, err := rn.run(ec)
			if err != nil {
				return fmt.Errorf("%s r=%d m=%d trial %d: %w", ec.Variant, ec.R, ec.M, ec.Trial, err)
			}
			records[i] = rec
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return 0, err
	}

	if err := writeReports(conf.Report, records); err != nil {
		return 0, err
	}
	if conf.Report.Textfile != "" {
		if err := rn.collector.WriteTextfile(conf.Report.Textfile); err != nil {
			return 0, err
		}
	}
	failed := printSummary(out, records)
	fmt.Fprintf(out, "Report written: %s\nJSON: %s\nCSV: %s\n", conf.Report.Markdown, conf.Report.JSON, conf.Report.CSV)
	if failed > 0 {
		logger.Warn("sweep finished with failures", zap.Int("failed", failed))
	}
	return failed, nil
}

// finish flushes and closes the log and returns the process exit code: 1 on error,
// 2 when any record failed.
func finish(logger *zap.Logger, closer io.Closer, failed int, err error) int {
	code := 0
	switch {
	case err != nil:
		logger.Error("sweep failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		code = 1
	case failed > 0:
		code = 2
	}
	_ = logger.Sync()
	if cerr := closer.Close(); cerr != nil {
		fmt.Fprintln(os.Stderr, cerr)
	}
	return code
}

func fatalf(f string, a ...any) {
	fmt.Fprintf(os.Stderr, f+"\n", a...)
	os.Exit(1)
}
