package benchmark

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config defines the comparison run parameters passed from the CLI.
type Config struct {
	TargetsFile  string        // path to the YAML target registry
	TargetFilter []string      // optional target names to keep, empty keeps all
	RequestCount int           // latency-probe requests per target
	MetricsPath  string        // path of the metrics endpoint, default /metrics
	WorkloadPath string        // path probed for latency, default /startup-check
	Timeout      time.Duration // per-request HTTP timeout
	Delay        time.Duration // optional pause between probe requests
	LogFormat    string        // "json" or "console", default is "console"
	RunID        string        // optional label for this run, generated when empty
	HistoryPath  string        // Pebble store for run history, empty disables it
	Out          io.Writer     // report destination, default os.Stdout
}

// TargetResult accumulates everything measured for one target. The runner
// owns the ordered result table and hands it to the aggregator and reporter;
// nothing here lives in package-level state.
type TargetResult struct {
	Target     Target            `json:"target"`
	Skipped    bool              `json:"skipped,omitempty"`
	SkipReason string            `json:"skipReason,omitempty"`
	Metrics    map[string]string `json:"metrics"`
	FetchError string            `json:"fetchError,omitempty"`
	ProbeError string            `json:"probeError,omitempty"`
	Samples    []LatencySample   `json:"samples,omitempty"`
	ColdMs     float64           `json:"coldMs,omitempty"`
	WarmMs     float64           `json:"warmMs,omitempty"`
	LatencyOK  bool              `json:"latencyOk"` // complete probe sequence collected
	WarmOK     bool              `json:"warmOk"`    // at least one warm sample behind WarmMs
}

// OK reports whether the target was fully measured: configured, metrics
// fetched and the probe sequence completed without interruption.
func (r *TargetResult) OK() bool {
	return !r.Skipped && r.FetchError == "" && r.ProbeError == ""
}

// MetricLabel returns the recorded value of a field, or the unavailable
// sentinel. Derived latency fields are rendered with two decimals.
func (r *TargetResult) MetricLabel(field string) string {
	switch field {
	case FieldColdMs:
		if !r.LatencyOK {
			return Unavailable
		}
		return fmt.Sprintf("%.2f", r.ColdMs)
	case FieldWarmMs:
		if !r.WarmOK {
			return Unavailable
		}
		return fmt.Sprintf("%.2f", r.WarmMs)
	}
	if v, ok := r.Metrics[field]; ok && v != "" {
		return v
	}
	return Unavailable
}

// NumericMetric returns a field as a float, false when undefined.
func (r *TargetResult) NumericMetric(field string) (float64, bool) {
	switch field {
	case FieldColdMs:
		if !r.LatencyOK {
			return 0, false
		}
		return r.ColdMs, true
	case FieldWarmMs:
		if !r.WarmOK {
			return 0, false
		}
		return r.WarmMs, true
	}
	return NumericValue(r.Metrics[field])
}

// RunReport is the complete outcome of one comparison run.
type RunReport struct {
	ID        string          `json:"id"`
	StartedAt time.Time       `json:"startedAt"`
	Duration  time.Duration   `json:"duration"`
	Requests  int             `json:"requests"`
	Results   []*TargetResult `json:"results"`
}

// AllOK reports whether every configured target was fully measured. The CLI
// maps this to the process exit code.
func (rep *RunReport) AllOK() bool {
	for _, r := range rep.Results {
		if !r.OK() {
			return false
		}
	}
	return len(rep.Results) > 0
}

// RunComparison orchestrates the full comparison lifecycle: registry, then
// per-target metrics fetch and latency probe, then aggregation and report.
// Targets run strictly one after another; a failure never crosses a target
// boundary. The returned error covers run-level problems only (unreadable
// registry, history store) — per-target failures land on the results.
func RunComparison(cfg Config) (*RunReport, error) {
	setupLog(cfg)

	if cfg.RequestCount <= 0 {
		return nil, fmt.Errorf("request count must be positive, got %d", cfg.RequestCount)
	}
	if cfg.RunID == "" {
		cfg.RunID = uuid.NewString()
	}
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}

	targets, err := LoadTargets(cfg.TargetsFile)
	if err != nil {
		return nil, err
	}
	targets = FilterTargets(targets, cfg.TargetFilter)
	if len(targets) == 0 {
		return nil, fmt.Errorf("no targets left after filtering for %v", cfg.TargetFilter)
	}

	log.Info().
		Str("run_id", cfg.RunID).
		Int("targets", len(targets)).
		Int("requests_per_target", cfg.RequestCount).
		Str("workload_path", cfg.WorkloadPath).
		Dur("timeout", cfg.Timeout).
		Msg("Starting comparison run")

	fetcher := NewFetcher(cfg.MetricsPath, cfg.Timeout)
	prober := NewProber(cfg.WorkloadPath, cfg.Timeout, cfg.Delay)

	report := &RunReport{
		ID:        cfg.RunID,
		StartedAt: time.Now().UTC(),
		Requests:  cfg.RequestCount,
		Results:   make([]*TargetResult, 0, len(targets)),
	}

	ctx := context.Background()
	for _, target := range targets {
		report.Results = append(report.Results, runTarget(ctx, target, fetcher, prober, cfg.RequestCount))
	}
	report.Duration = time.Since(report.StartedAt)

	if err := NewReporter(cfg.Out).Render(report); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}

	if cfg.HistoryPath != "" {
		if err := saveRun(cfg.HistoryPath, report); err != nil {
			return nil, err
		}
	}

	log.Info().
		Str("run_id", report.ID).
		Dur("elapsed", report.Duration).
		Bool("all_ok", report.AllOK()).
		Msg("Comparison run complete")
	return report, nil
}

// runTarget fully measures one target before the next begins.
func runTarget(ctx context.Context, target Target, fetcher *Fetcher, prober *Prober, requests int) *TargetResult {
	result := &TargetResult{
		Target:  target,
		Metrics: make(map[string]string, len(MetricFields)),
	}

	if err := ValidateTarget(target); err != nil {
		log.Warn().Str("target", target.Name).Err(err).Msg("Skipping misconfigured target")
		result.Skipped = true
		result.SkipReason = err.Error()
		for _, s := range UnavailableSamples(target) {
			result.Metrics[s.Field] = s.Value
		}
		return result
	}

	log.Info().Str("target", target.Name).Str("url", target.URL).Msg("Measuring target")

	samples, err := fetcher.Fetch(ctx, target)
	if err != nil {
		log.Warn().Str("target", target.Name).Err(err).Msg("Metrics unavailable")
		result.FetchError = err.Error()
		samples = UnavailableSamples(target)
	}
	for _, s := range samples {
		result.Metrics[s.Field] = s.Value
	}

	latencies, err := prober.Probe(ctx, target, requests)
	if err != nil {
		// All-or-nothing: a mid-sequence failure invalidates the whole
		// sequence, so no samples are kept for this target.
		log.Warn().Str("target", target.Name).Err(err).Msg("Latency probe failed")
		result.ProbeError = err.Error()
		return result
	}
	result.Samples = latencies
	result.LatencyOK = len(latencies) > 0
	result.ColdMs, result.WarmMs, result.WarmOK = ColdWarm(latencies)

	log.Info().
		Str("target", target.Name).
		Float64("cold_ms", result.ColdMs).
		Float64("warm_avg_ms", result.WarmMs).
		Int("samples", len(latencies)).
		Msg("Target measured")
	return result
}

func saveRun(path string, report *RunReport) error {
	store, err := OpenHistory(path)
	if err != nil {
		return fmt.Errorf("open history store: %w", err)
	}
	defer store.Close()

	if err := store.Put(report); err != nil {
		return fmt.Errorf("save run %q: %w", report.ID, err)
	}
	log.Info().Str("run_id", report.ID).Str("path", path).Msg("Run saved to history")
	return nil
}

func setupLog(cfg Config) {
	if strings.ToLower(cfg.LogFormat) == "json" {
		zerolog.TimeFieldFormat = time.RFC3339Nano
		log.Logger = log.Output(os.Stderr)
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
	}
}
