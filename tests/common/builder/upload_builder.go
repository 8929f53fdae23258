//go:build unit || e2e

package builder

import (
	"time"

	"ops-console/internal/domain/upload"
	reqdto "ops-console/internal/handler/dto/request"

	"github.com/google/uuid"
)

type PreviewBuilder struct {
	Type      upload.Type
	CSVText   string
	ActorID   uuid.UUID
	Rows      []upload.PreviewRow
	CreatedAt time.Time
	TTL       time.Duration
}

func NewPreviewBuilder() *PreviewBuilder {
	return &PreviewBuilder{
		Type:      upload.TypeMenuStock,
		CSVText:   "outlet_id,item_id,stock\n1,10,25\n",
		ActorID:   uuid.New(),
		CreatedAt: time.Now(),
		TTL:       20 * time.Minute,
		Rows: []upload.PreviewRow{
			{
				RowNumber: 2,
				OutletID:  1,
				ItemID:    10,
				ItemLabel: "Margherita Pizza",
				Old:       upload.Values{"stock": upload.IntCell(5)},
				New:       upload.Values{"stock": upload.IntCell(25)},
				Status:    upload.StatusOK,
			},
		},
	}
}

func (b *PreviewBuilder) With(mutate func(*PreviewBuilder)) *PreviewBuilder {
	mutate(b)
	return b
}

func (b *PreviewBuilder) BuildDomain() *upload.Preview {
	rows := make([]upload.PreviewRow, len(b.Rows))
	copy(rows, b.Rows)
	for i := range rows {
		rows[i].OldSummary = rows[i].Old.Summary()
		rows[i].NewSummary = rows[i].New.Summary()
	}
	return &upload.Preview{
		ID:        uuid.New(),
		Type:      b.Type,
		Rows:      rows,
		Summary:   upload.Summarize(rows),
		ActorID:   b.ActorID,
		CreatedAt: b.CreatedAt,
		ExpiresAt: b.CreatedAt.Add(b.TTL),
	}
}

func (b *PreviewBuilder) BuildCreateRequestDTO() reqdto.CreatePreviewRequest {
	return reqdto.CreatePreviewRequest{
		Type:    string(b.Type),
		CSVText: b.CSVText,
	}
}

func (b *PreviewBuilder) BuildApplyRequestDTO(previewID uuid.UUID) reqdto.ApplyPreviewRequest {
	return reqdto.ApplyPreviewRequest{
		PreviewID: previewID,
		Reason:    "weekly price sync",
	}
}
