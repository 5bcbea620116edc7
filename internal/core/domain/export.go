package domain

import "strings"

// ExportFormat is the file type a design is rendered to
type ExportFormat string

const (
	ExportFormatPDF  ExportFormat = "pdf"
	ExportFormatPNG  ExportFormat = "png"
	ExportFormatJPG  ExportFormat = "jpg"
	ExportFormatPPTX ExportFormat = "pptx"
)

// ParseExportFormat normalizes a user supplied format.
// Returns ErrInvalidRequest for anything unsupported.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch f := ExportFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case ExportFormatPDF, ExportFormatPNG, ExportFormatJPG, ExportFormatPPTX:
		return f, nil
	case "jpeg":
		return ExportFormatJPG, nil
	default:
		return "", ErrInvalidRequest
	}
}

// ExportStatus is the provider-side state of an export job
type ExportStatus string

const (
	ExportStatusInProgress ExportStatus = "in_progress"
	ExportStatusSuccess    ExportStatus = "success"
	ExportStatusFailed     ExportStatus = "failed"
)

// IsTerminal returns true once the provider will not change the status again
func (s ExportStatus) IsTerminal() bool {
	return s == ExportStatusSuccess || s == ExportStatusFailed
}

// ExportJob is an asynchronous design export.
// It is created by a submit call and only mutated by polling the provider.
type ExportJob struct {
	ID       string       `json:"id"`
	DesignID string       `json:"design_id,omitempty"`
	Format   ExportFormat `json:"format,omitempty"`
	Status   ExportStatus `json:"status"`
	URLs     []string     `json:"urls"`
	Error    *ExportError `json:"error,omitempty"`

	// TimedOut is set by callers that gave up waiting. The provider job is untouched.
	TimedOut bool `json:"timed_out,omitempty"`
}

// ExportError describes why the provider failed a job
type ExportError struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}

// ExportJobRecord is what we remember locally about a submitted job
// so that polls can report the design and format back to the caller.
type ExportJobRecord struct {
	JobID    string       `json:"job_id"`
	DesignID string       `json:"design_id"`
	Format   ExportFormat `json:"format"`
}
