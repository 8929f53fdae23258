package repository

import (
	"context"

	"ops-console/internal/infra"
	"ops-console/internal/infra/db"
	"ops-console/internal/usecase/shared"
)

// AuditRepository writes the who/what/when trail for every applied row.
// Write-only from the pipeline's point of view; reading the trail belongs to
// the audit console, not this service.
type AuditRepository struct {
	db db.DBTX
}

func NewAuditRepository(dbtx db.DBTX) *AuditRepository {
	return &AuditRepository{db: dbtx}
}

func (r *AuditRepository) Insert(ctx context.Context, entry shared.AuditEntry) error {
	const q = `INSERT INTO audit_log (entity_type, entity_id, action, actor_id, before, after)
		VALUES ($1, $2, $3, $4, $5::jsonb, $6::jsonb)`

	_, err := r.db.Exec(ctx, q,
		entry.EntityType, entry.EntityID, entry.Action, entry.ActorID, string(entry.Before), string(entry.After))
	if err != nil {
		return infra.WrapRepoErr("failed to insert audit entry", err)
	}
	return nil
}
