package output

import (
	"encoding/json"
	"io"
	"time"

	"github.com/jsonspec/jsonspec/packages/batch"
	"github.com/jsonspec/jsonspec/packages/schema"
)

type jsonFileResult struct {
	File     string                   `json:"file"`
	Valid    bool                     `json:"valid"`
	Error    string                   `json:"error,omitempty"`
	Errors   []schema.ValidationError `json:"errors,omitempty"`
	Duration time.Duration            `json:"duration_ns"`
}

type jsonSummary struct {
	Total   int              `json:"total"`
	Valid   int              `json:"valid"`
	Invalid int              `json:"invalid"`
	Errored int              `json:"errored"`
	P50     time.Duration    `json:"p50_ns"`
	P95     time.Duration    `json:"p95_ns"`
	P99     time.Duration    `json:"p99_ns"`
	Files   []jsonFileResult `json:"files"`
}

// WriteJSON writes the summary to w as indented JSON.
func WriteJSON(w io.Writer, summary *batch.Summary) error {
	out := jsonSummary{
		Total:   summary.Total,
		Valid:   summary.Valid,
		Invalid: summary.Invalid,
		Errored: summary.Errored,
		P50:     summary.P50,
		P95:     summary.P95,
		P99:     summary.P99,
	}
	for _, fr := range summary.Results {
		jfr := jsonFileResult{File: fr.File, Duration: fr.Duration}
		if fr.Err != nil {
			jfr.Error = fr.Err.Error()
		} else {
			jfr.Valid = fr.Result.Valid
			jfr.Errors = fr.Result.Errors
		}
		out.Files = append(out.Files, jfr)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
