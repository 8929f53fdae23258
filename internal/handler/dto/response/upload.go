package response

import (
	"time"

	"ops-console/internal/domain/upload"
	"ops-console/internal/usecase/commands"

	"github.com/google/uuid"
)

type PreviewResponse struct {
	PreviewID uuid.UUID             `json:"previewId"`
	Type      string                `json:"type"`
	Rows      []upload.PreviewRow   `json:"rows"`
	Summary   upload.PreviewSummary `json:"summary"`
	CreatedAt time.Time             `json:"createdAt"`
	ExpiresAt time.Time             `json:"expiresAt"`
	AppliedAt *time.Time            `json:"appliedAt,omitempty"`
}

func FromPreview(p *upload.Preview) *PreviewResponse {
	return &PreviewResponse{
		PreviewID: p.ID,
		Type:      string(p.Type),
		Rows:      p.Rows,
		Summary:   p.Summary,
		CreatedAt: p.CreatedAt,
		ExpiresAt: p.ExpiresAt,
		AppliedAt: p.AppliedAt,
	}
}

type ApplyResultResponse struct {
	SuccessCount int                 `json:"successCount"`
	ErrorCount   int                 `json:"errorCount"`
	Errors       []commands.RowError `json:"errors"`
}

func FromApplyResult(r *commands.ApplyResult) *ApplyResultResponse {
	errs := r.Errors
	if errs == nil {
		errs = []commands.RowError{}
	}
	return &ApplyResultResponse{
		SuccessCount: r.SuccessCount,
		ErrorCount:   r.ErrorCount,
		Errors:       errs,
	}
}

type TemplateResponse struct {
	Type    string   `json:"type"`
	Columns []string `json:"columns"`
	CSVText string   `json:"csvText"`
}
