package request

import (
	"strings"

	"github.com/google/uuid"
)

type CreatePreviewRequest struct {
	Type              string `json:"type"`
	CSVText           string `json:"csvText"`
	ContextOutletID   *int64 `json:"contextOutletId,omitempty"`
	ContextCampaignID *int64 `json:"contextCampaignId,omitempty"`
}

func (r CreatePreviewRequest) TrimmedType() string {
	return strings.TrimSpace(r.Type)
}

type ApplyPreviewRequest struct {
	PreviewID uuid.UUID `json:"previewId" binding:"required"`
	Reason    string    `json:"reason"`
}
