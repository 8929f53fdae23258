package commands

import (
	"context"
	"strings"

	"ops-console/internal/domain/upload"
	"ops-console/internal/domain/user"
	"ops-console/internal/pkg/errs"
	"ops-console/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrUnknownUploadType     = errs.New("unknown upload type")
	ErrRoleNotAllowed        = errs.New("role not allowed for this upload type")
	ErrNoParseableHeaders    = errs.New("csv has no parseable headers")
	ErrTooManyRows           = errs.New("csv exceeds the row ceiling")
	ErrMissingColumns        = errs.New("csv is missing required columns")
	ErrPreviewNotFound       = errs.New("preview not found")
	ErrPreviewAlreadyApplied = errs.New("preview already applied")
	ErrPreviewHasErrors      = errs.New("preview still has error rows")
	ErrReasonRequired        = errs.New("reason is required")
)

type CreatePreviewRequest struct {
	Type              string
	CSVText           string
	ContextOutletID   *int64
	ContextCampaignID *int64
}

type ApplyPreviewRequest struct {
	PreviewID uuid.UUID
	Reason    string
}

type RowError struct {
	RowNumber int    `json:"rowNumber"`
	Message   string `json:"message"`
}

type ApplyResult struct {
	SuccessCount int        `json:"successCount"`
	ErrorCount   int        `json:"errorCount"`
	Errors       []RowError `json:"errors,omitempty"`
}

type UploadCommands interface {
	CreatePreview(ctx context.Context, req CreatePreviewRequest, actorID uuid.UUID, role user.Role) (*upload.Preview, error)
	GetPreview(ctx context.Context, previewID, actorID uuid.UUID) (*upload.Preview, error)
	ApplyPreview(ctx context.Context, req ApplyPreviewRequest, actorID uuid.UUID, role user.Role) (*ApplyResult, error)
}

type uploadUseCaseImpl struct {
	uow     shared.UnitOfWork
	store   shared.PreviewStore
	maxRows int
}

func NewUploadUseCase(uow shared.UnitOfWork, store shared.PreviewStore, maxRows int) UploadCommands {
	return &uploadUseCaseImpl{uow: uow, store: store, maxRows: maxRows}
}

func (uc *uploadUseCaseImpl) CreatePreview(ctx context.Context, req CreatePreviewRequest, actorID uuid.UUID, role user.Role) (*upload.Preview, error) {
	uc.store.PruneExpired()

	typ, err := upload.ParseType(req.Type)
	if err != nil {
		return nil, errs.Mark(err, ErrUnknownUploadType)
	}
	if !typ.AllowsRole(role) {
		return nil, ErrRoleNotAllowed
	}

	doc := upload.ParseCSV(req.CSVText)
	if len(doc.Headers) == 0 {
		return nil, ErrNoParseableHeaders
	}
	if len(doc.Rows) > uc.maxRows {
		return nil, ErrTooManyRows
	}
	if missing := typ.MissingColumns(doc.Headers); len(missing) > 0 {
		return nil, errs.Mark(errs.New("missing required columns: "+strings.Join(missing, ", ")), ErrMissingColumns)
	}

	rows, summary, err := buildPreview(ctx, uc.uow.Reads(), buildParams{
		Type:              typ,
		Rows:              doc.Rows,
		ContextOutletID:   req.ContextOutletID,
		ContextCampaignID: req.ContextCampaignID,
	})
	if err != nil {
		return nil, err
	}

	return uc.store.Create(typ, rows, summary, actorID), nil
}

// GetPreview re-displays a staged preview to its owner. Previews belonging
// to anyone else are reported as not found; ids are the only handle and must
// not be probeable.
func (uc *uploadUseCaseImpl) GetPreview(_ context.Context, previewID, actorID uuid.UUID) (*upload.Preview, error) {
	uc.store.PruneExpired()

	p, ok := uc.store.Get(previewID)
	if !ok || p.ActorID != actorID {
		return nil, ErrPreviewNotFound
	}
	return p, nil
}

func (uc *uploadUseCaseImpl) ApplyPreview(ctx context.Context, req ApplyPreviewRequest, actorID uuid.UUID, role user.Role) (*ApplyResult, error) {
	uc.store.PruneExpired()

	if strings.TrimSpace(req.Reason) == "" {
		return nil, ErrReasonRequired
	}

	p, ok := uc.store.Get(req.PreviewID)
	if !ok {
		return nil, ErrPreviewNotFound
	}
	if !p.Type.AllowsRole(role) {
		return nil, ErrRoleNotAllowed
	}
	if p.AppliedAt != nil {
		return nil, ErrPreviewAlreadyApplied
	}
	if p.Summary.Errors > 0 {
		return nil, ErrPreviewHasErrors
	}

	result, err := applyPreview(ctx, uc.uow, p, strings.TrimSpace(req.Reason), actorID)
	if err != nil {
		return nil, err
	}

	uc.store.MarkApplied(req.PreviewID)
	return result, nil
}
