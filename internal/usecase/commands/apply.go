package commands

import (
	"context"

	"github.com/cockroachdb/errors"

	"ops-console/internal/domain/upload"
	"ops-console/internal/usecase/shared"

	"github.com/google/uuid"
)

// applyPreview performs every row mutation of an error-free preview inside
// one transaction. Two failure modes exist at this level: a row whose
// underlying entity vanished since the preview was built is skipped and
// reported per-row, while any other store failure rolls the whole
// transaction back so no partial change set is ever visible.
func applyPreview(ctx context.Context, uow shared.UnitOfWork, p *upload.Preview, reason string, actorID uuid.UUID) (*ApplyResult, error) {
	handler := handlerFor(p.Type)
	result := &ApplyResult{}

	err := uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		// Within may retry the whole transaction; start the tally fresh each
		// attempt so retried rows are not double counted.
		*result = ApplyResult{}
		for _, row := range p.Rows {
			// Error rows cannot reach this point through the normal flow;
			// if one does, skip it rather than losing the whole batch.
			if row.Status == upload.StatusError {
				result.ErrorCount++
				result.Errors = append(result.Errors, RowError{RowNumber: row.RowNumber, Message: row.Message})
				continue
			}

			if err := handler.apply(ctx, tx, row, actorID, reason); err != nil {
				if errors.Is(err, errRowVanished) {
					result.ErrorCount++
					result.Errors = append(result.Errors, RowError{
						RowNumber: row.RowNumber,
						Message:   "row no longer exists",
					})
					continue
				}
				return err
			}
			result.SuccessCount++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
