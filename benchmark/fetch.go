package benchmark

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Unavailable is the sentinel value recorded for any metric field a target
// did not report. Missing fields are expected (a native image reports
// different fields than a JVM) and never abort the run.
const Unavailable = "unavailable"

// Metric field names as they appear in the target's /metrics payload.
// A dot selects one level of nesting.
const (
	FieldStartupSeconds = "startupTimeSeconds"
	FieldMemoryUsedMB   = "memory.usedMB"
	FieldImageType      = "imageType"
	FieldConnectionPool = "connectionPool"
	FieldProfile        = "profile"

	// Derived from the latency probe, not the metrics payload.
	FieldColdMs = "coldMs"
	FieldWarmMs = "warmMs"
)

// MetricFields lists the payload fields extracted per target, in report order.
var MetricFields = []string{
	FieldStartupSeconds,
	FieldMemoryUsedMB,
	FieldImageType,
	FieldConnectionPool,
	FieldProfile,
}

// NumericFields lists every field the reporter ranks by min/max.
var NumericFields = []string{
	FieldStartupSeconds,
	FieldMemoryUsedMB,
	FieldColdMs,
	FieldWarmMs,
}

// MetricSample is one named scalar reported by a target's metrics endpoint.
type MetricSample struct {
	Target string `json:"target"`
	Field  string `json:"field"`
	Value  string `json:"value"`
	Unit   string `json:"unit,omitempty"`
}

var fieldUnits = map[string]string{
	FieldStartupSeconds: "s",
	FieldMemoryUsedMB:   "MB",
	FieldColdMs:         "ms",
	FieldWarmMs:         "ms",
}

// Fetcher retrieves the metrics payload from a target and extracts the fixed
// set of comparison fields.
type Fetcher struct {
	client *http.Client
	path   string
}

// NewFetcher creates a Fetcher hitting the given metrics path with a bounded
// per-request timeout.
func NewFetcher(metricsPath string, timeout time.Duration) *Fetcher {
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
		path:   metricsPath,
	}
}

// Fetch issues one GET against the target's metrics endpoint and returns one
// sample per field in MetricFields. On transport failure, non-2xx status or a
// malformed payload it returns a FetchError; the caller records every field
// for the target as unavailable instead of aborting the run.
func (f *Fetcher) Fetch(ctx context.Context, target Target) ([]MetricSample, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimSuffix(target.URL, "/")+f.path, nil)
	if err != nil {
		return nil, &FetchError{Target: target.Name, Err: err}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{Target: target.Name, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, &FetchError{Target: target.Name, Status: resp.StatusCode}
	}

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &FetchError{Target: target.Name, Err: fmt.Errorf("decode payload: %w", err)}
	}

	samples := make([]MetricSample, 0, len(MetricFields))
	for _, field := range MetricFields {
		samples = append(samples, MetricSample{
			Target: target.Name,
			Field:  field,
			Value:  extractField(payload, field),
			Unit:   fieldUnits[field],
		})
	}
	return samples, nil
}

// UnavailableSamples builds the sample set recorded for a target whose
// metrics endpoint could not be read.
func UnavailableSamples(target Target) []MetricSample {
	samples := make([]MetricSample, 0, len(MetricFields))
	for _, field := range MetricFields {
		samples = append(samples, MetricSample{
			Target: target.Name,
			Field:  field,
			Value:  Unavailable,
			Unit:   fieldUnits[field],
		})
	}
	return samples
}

// extractField pulls a scalar out of a flat or one-level-nested payload.
// Values arrive either as JSON numbers or as pre-formatted numeric strings
// depending on the service implementation, so both are accepted.
func extractField(payload map[string]any, field string) string {
	var raw any = payload
	for _, part := range strings.Split(field, ".") {
		m, ok := raw.(map[string]any)
		if !ok {
			return Unavailable
		}
		raw, ok = m[part]
		if !ok {
			return Unavailable
		}
	}

	switch v := raw.(type) {
	case string:
		if v == "" {
			return Unavailable
		}
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return Unavailable
	}
}

// NumericValue parses a sample value as a float. The second return is false
// for the unavailable sentinel and for non-numeric fields like imageType.
func NumericValue(value string) (float64, bool) {
	if value == "" || value == Unavailable {
		return 0, false
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
