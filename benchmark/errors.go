package benchmark

import (
	"errors"
	"fmt"
)

// Failures are always local to a single target. The runner records them on the
// per-target result and keeps going; only the final exit code reflects them.

// ConfigurationError means a target's address could not be resolved from the
// registry. The target is skipped before any request is issued.
type ConfigurationError struct {
	Target string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("target %q: %s", e.Target, e.Reason)
}

// FetchError means the metrics endpoint was unreachable, returned a non-2xx
// status, or produced a payload that could not be decoded.
type FetchError struct {
	Target string
	Status int // 0 when the request never completed
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch metrics from %q: %v", e.Target, e.Err)
	}
	return fmt.Sprintf("fetch metrics from %q: unexpected status %d", e.Target, e.Status)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ProbeError means a latency-probe request failed mid-sequence. All samples
// collected for the target up to that point are discarded.
type ProbeError struct {
	Target  string
	Request int // zero-based index of the failed request
	Status  int
	Err     error
}

func (e *ProbeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("probe %q: request %d failed: %v", e.Target, e.Request, e.Err)
	}
	return fmt.Sprintf("probe %q: request %d returned status %d", e.Target, e.Request, e.Status)
}

func (e *ProbeError) Unwrap() error { return e.Err }

// Helpers to classify errors without reaching for the concrete type.
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

func IsFetchError(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}

func IsProbeError(err error) bool {
	var pe *ProbeError
	return errors.As(err, &pe)
}
