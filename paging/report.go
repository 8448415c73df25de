package paging

import (
	"encoding/json"
	"fmt"
	"io"
)

// Report is the end-of-run summary
type Report struct {
	TraceFile        string           `json:"trace_file"`
	PhysicalMemoryKB uint32           `json:"physical_memory_kb"`
	PageSizeKB       uint32           `json:"page_size_kb"`
	Algorithm        string           `json:"algorithm"`
	Stats            Stats            `json:"stats"`
	TruncatedAtLine  int              `json:"truncated_at_line,omitempty"`
	Metrics          *MetricsSnapshot `json:"metrics,omitempty"`
}

// NewReport builds a report for a finished run
func NewReport(cfg *Config, stats Stats) *Report {
	return &Report{
		TraceFile:        cfg.TraceFile,
		PhysicalMemoryKB: cfg.PhysicalMemoryKB,
		PageSizeKB:       cfg.PageSizeKB,
		Algorithm:        cfg.Algorithm,
		Stats:            stats,
	}
}

// WriteText writes the human-readable report.
// Pages read are page faults; pages written are dirty evictions.
func (r *Report) WriteText(w io.Writer) error {
	_, err := fmt.Fprintf(w,
		"Input file: %s\n"+
			"Memory size: %d KB\n"+
			"Page size: %d KB\n"+
			"Replacement policy: %s\n"+
			"Total memory accesses: %d\n"+
			"Pages read: %d\n"+
			"Pages written: %d\n",
		r.TraceFile,
		r.PhysicalMemoryKB,
		r.PageSizeKB,
		r.Algorithm,
		r.Stats.TotalAccesses,
		r.Stats.PageFaults,
		r.Stats.PagesWrittenToDisk,
	)
	if err != nil {
		return err
	}

	if r.Metrics != nil {
		_, err = fmt.Fprintf(w,
			"Hit rate: %.2f%%\n"+
				"Compulsory misses: %d\n"+
				"Evictions: %d\n",
			r.Metrics.HitRate*100,
			r.Metrics.CompulsoryMisses,
			r.Metrics.Evictions,
		)
	}
	return err
}

// WriteJSON writes the report as indented JSON
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteReportsJSON writes several reports as one indented JSON array
func WriteReportsJSON(w io.Writer, reports []*Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(reports)
}
