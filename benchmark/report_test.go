package benchmark

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReporterRendersAvailableAndNA(t *testing.T) {
	ok := &TargetResult{
		Target: Target{Name: "native-pooled", URL: "http://native"},
		Metrics: map[string]string{
			FieldStartupSeconds: "0.180",
			FieldMemoryUsedMB:   "42.00",
			FieldImageType:      "Native (GraalVM)",
			FieldConnectionPool: "Cloud SQL Connector",
			FieldProfile:        "prod",
		},
		ColdMs:    120.5,
		WarmMs:    14.2,
		LatencyOK: true,
		WarmOK:    true,
	}
	broken := &TargetResult{
		Target:     Target{Name: "jvm-direct", URL: "http://jvm"},
		Metrics:    map[string]string{FieldImageType: "JVM"},
		ProbeError: "request 1 failed",
	}

	report := &RunReport{
		ID:        "report-test",
		StartedAt: time.Now(),
		Requests:  10,
		Results:   []*TargetResult{ok, broken},
	}

	var buf bytes.Buffer
	require.NoError(t, NewReporter(&buf).Render(report))
	out := buf.String()

	assert.Contains(t, out, "native-pooled")
	assert.Contains(t, out, "0.180")
	assert.Contains(t, out, "120.50")
	assert.Contains(t, out, "N/A", "unavailable cells render as N/A")
	assert.Contains(t, out, "probe-failed")
	assert.Contains(t, out, "Rankings")
	assert.Contains(t, out, "Means by imageType")
	assert.Contains(t, out, "Means by connectionPool")
}

func TestReporterAllUnavailableDoesNotFail(t *testing.T) {
	report := &RunReport{
		ID:       "empty",
		Requests: 5,
		Results: []*TargetResult{
			{
				Target:     Target{Name: "down"},
				Metrics:    map[string]string{},
				FetchError: "unreachable",
				ProbeError: "unreachable",
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, NewReporter(&buf).Render(report))
	assert.Contains(t, buf.String(), "N/A")
}
