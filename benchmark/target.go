package benchmark

import (
	"fmt"
	"net/url"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// Target is one deployed service instance under comparison. The list of
// targets is injected configuration, typically written by the deployment
// tooling; this package never discovers endpoints on its own.
type Target struct {
	Name string `yaml:"name" json:"name"`
	URL  string `yaml:"url" json:"url"`
}

type targetsFile struct {
	Targets []Target `yaml:"targets"`
}

// LoadTargets reads an ordered target list from a YAML file. Order is
// preserved because later stages break ties by registry order.
func LoadTargets(path string) ([]Target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read targets file: %w", err)
	}

	var f targetsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse targets file %q: %w", path, err)
	}
	if len(f.Targets) == 0 {
		return nil, fmt.Errorf("targets file %q defines no targets", path)
	}
	return f.Targets, nil
}

// FilterTargets keeps only targets whose name appears in names, preserving
// registry order. An empty filter keeps everything.
func FilterTargets(targets []Target, names []string) []Target {
	if len(names) == 0 {
		return targets
	}
	kept := make([]Target, 0, len(targets))
	for _, t := range targets {
		if slices.Contains(names, t.Name) {
			kept = append(kept, t)
		}
	}
	return kept
}

// ValidateTarget checks that a target's address resolves to an absolute
// http(s) URL. Invalid targets are excluded from the run, not fatal to it.
func ValidateTarget(t Target) error {
	if t.Name == "" {
		return &ConfigurationError{Target: t.URL, Reason: "missing name"}
	}
	if t.URL == "" {
		return &ConfigurationError{Target: t.Name, Reason: "missing url"}
	}
	u, err := url.Parse(t.URL)
	if err != nil {
		return &ConfigurationError{Target: t.Name, Reason: fmt.Sprintf("invalid url %q: %v", t.URL, err)}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return &ConfigurationError{Target: t.Name, Reason: fmt.Sprintf("unsupported scheme %q", u.Scheme)}
	}
	if u.Host == "" {
		return &ConfigurationError{Target: t.Name, Reason: fmt.Sprintf("url %q has no host", t.URL)}
	}
	return nil
}
