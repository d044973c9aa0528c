package benchmark

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"
)

// LatencySample is one client-side wall-clock measurement against a target's
// workload endpoint. Index 0 is the cold sample; everything after is warm.
type LatencySample struct {
	Target   string        `json:"target"`
	Index    int           `json:"index"`
	Duration time.Duration `json:"duration"`
}

// Cold reports whether this is the first sample in the target's sequence.
func (s LatencySample) Cold() bool { return s.Index == 0 }

// Prober issues sequential requests against a target's workload endpoint and
// measures duration per request. Requests are strictly sequential: the warm
// samples are defined relative to the first one, and overlapping requests
// would blur that distinction.
type Prober struct {
	client *http.Client
	path   string
	delay  time.Duration
}

// NewProber creates a Prober for the given workload path. timeout bounds each
// request; delay, if positive, is slept between consecutive requests.
func NewProber(workloadPath string, timeout, delay time.Duration) *Prober {
	if workloadPath == "" {
		workloadPath = "/startup-check"
	}
	return &Prober{
		client: &http.Client{Timeout: timeout},
		path:   workloadPath,
		delay:  delay,
	}
}

// Probe issues count sequential GETs against the target. The contract is
// all-or-nothing: on the first failure (non-2xx, timeout, connection error)
// every sample collected so far is discarded and a ProbeError is returned, so
// a target's averages are computed either from a complete uninterrupted
// sequence or not at all. Response bodies are drained but not interpreted.
func (p *Prober) Probe(ctx context.Context, target Target, count int) ([]LatencySample, error) {
	samples := make([]LatencySample, 0, count)
	probeURL := strings.TrimSuffix(target.URL, "/") + p.path

	for i := 0; i < count; i++ {
		if i > 0 && p.delay > 0 {
			time.Sleep(p.delay)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, probeURL, nil)
		if err != nil {
			return nil, &ProbeError{Target: target.Name, Request: i, Err: err}
		}

		start := time.Now()
		resp, err := p.client.Do(req)
		elapsed := time.Since(start)
		if err != nil {
			return nil, &ProbeError{Target: target.Name, Request: i, Err: err}
		}
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, &ProbeError{Target: target.Name, Request: i, Status: resp.StatusCode}
		}

		samples = append(samples, LatencySample{
			Target:   target.Name,
			Index:    i,
			Duration: elapsed,
		})
	}
	return samples, nil
}
