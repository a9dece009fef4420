package driver

import (
	"encoding/json"
	"fmt"

	"shoumei/internal/diag"
	"shoumei/internal/observ"
	"shoumei/internal/source"
)

type timingPayload struct {
	Kind    string               `json:"kind"`
	Path    string               `json:"path,omitempty"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

// timingMessage renders a timer report as an Info message; the JSON payload
// rides along as a note.
func timingMessage(path source.ModulePath, report observ.Report) diag.Message {
	payload := timingPayload{
		Kind:    "pipeline",
		Path:    path.String(),
		TotalMS: report.TotalMS,
		Phases:  report.Phases,
	}
	msg := diag.NewInfo(diag.ObsTimings, diag.InFile(path),
		fmt.Sprintf("timings (%s): total %.2f ms", payload.Kind, payload.TotalMS))
	data, err := json.Marshal(payload)
	if err != nil {
		return msg
	}
	return msg.WithNote(diag.InFile(path), string(data))
}
