package benchmark

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// Reporter renders a run report as a plain-text comparison table with a
// ranking section and per-group means. It renders whatever is available:
// unavailable cells become "N/A" and never fail the render.
type Reporter struct {
	w io.Writer
}

func NewReporter(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

var fieldHeaders = map[string]string{
	FieldStartupSeconds: "STARTUP_S",
	FieldMemoryUsedMB:   "MEMORY_MB",
	FieldImageType:      "IMAGE",
	FieldConnectionPool: "POOL",
	FieldProfile:        "PROFILE",
	FieldColdMs:         "COLD_MS",
	FieldWarmMs:         "WARM_MS",
}

// reportFields is the column order: payload fields first, then derived ones.
var reportFields = append(append([]string{}, MetricFields...), FieldColdMs, FieldWarmMs)

// Render writes the full report. Sections: per-target table, min/max
// rankings per numeric metric, and means grouped by image type and
// connection pool with the percent delta between the first two groups.
func (rp *Reporter) Render(report *RunReport) error {
	fmt.Fprintf(rp.w, "\nComparison run %s (%d requests per target)\n\n", report.ID, report.Requests)

	if err := rp.renderTable(report.Results); err != nil {
		return err
	}
	rp.renderRankings(report.Results)
	rp.renderGroups(report.Results, FieldImageType)
	rp.renderGroups(report.Results, FieldConnectionPool)
	return nil
}

func (rp *Reporter) renderTable(results []*TargetResult) error {
	tw := tabwriter.NewWriter(rp.w, 0, 4, 2, ' ', 0)

	fmt.Fprint(tw, "TARGET")
	for _, field := range reportFields {
		fmt.Fprintf(tw, "\t%s", fieldHeaders[field])
	}
	fmt.Fprintln(tw, "\tSTATUS")

	for _, r := range results {
		fmt.Fprint(tw, r.Target.Name)
		for _, field := range reportFields {
			fmt.Fprintf(tw, "\t%s", cell(r.MetricLabel(field)))
		}
		fmt.Fprintf(tw, "\t%s\n", status(r))
	}
	return tw.Flush()
}

func (rp *Reporter) renderRankings(results []*TargetResult) {
	fmt.Fprintf(rp.w, "\nRankings\n")
	for _, field := range NumericFields {
		min, max, ok := RankByField(results, field)
		if !ok {
			fmt.Fprintf(rp.w, "  %-18s N/A\n", fieldHeaders[field]+":")
			continue
		}
		fmt.Fprintf(rp.w, "  %-18s lowest %s (%s), highest %s (%s)\n",
			fieldHeaders[field]+":",
			min.Target.Name, cell(min.MetricLabel(field)),
			max.Target.Name, cell(max.MetricLabel(field)))
	}
}

func (rp *Reporter) renderGroups(results []*TargetResult, groupField string) {
	fmt.Fprintf(rp.w, "\nMeans by %s\n", groupField)
	for _, field := range NumericFields {
		means := GroupMeansBy(results, groupField, field)
		if len(means) == 0 {
			continue
		}
		fmt.Fprintf(rp.w, "  %s:", fieldHeaders[field])
		for _, g := range means {
			fmt.Fprintf(rp.w, "  %s=%.2f (n=%d)", g.Key, g.Mean, g.Count)
		}
		// Pairwise delta of the first two groups: positive means the
		// second group is faster/smaller than the first.
		if len(means) >= 2 {
			if delta, ok := PercentDelta(means[0].Mean, means[1].Mean); ok {
				fmt.Fprintf(rp.w, "  delta=%+.1f%%", delta)
			} else {
				fmt.Fprint(rp.w, "  delta=N/A")
			}
		}
		fmt.Fprintln(rp.w)
	}
}

func cell(v string) string {
	if v == Unavailable {
		return "N/A"
	}
	return v
}

func status(r *TargetResult) string {
	switch {
	case r.Skipped:
		return "skipped"
	case r.ProbeError != "":
		return "probe-failed"
	case r.FetchError != "":
		return "metrics-failed"
	default:
		return "ok"
	}
}
