package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/deadeye/laserworks/internal/core/domain"
	"github.com/deadeye/laserworks/internal/core/ports"
)

// auditTrail appends to the audit recorder without ever failing the caller.
// A nil recorder disables auditing.
type auditTrail struct {
	rec ports.AuditRecorder
	log zerolog.Logger
}

func (a auditTrail) record(ctx context.Context, entity, key string, action domain.AuditAction, fields ...string) {
	if a.rec == nil {
		return
	}
	entry := domain.AuditEntry{
		Entity:    entity,
		Key:       key,
		Action:    action,
		Actor:     domain.ActorFrom(ctx),
		Timestamp: time.Now().UTC(),
		Fields:    fields,
	}
	if err := a.rec.Record(ctx, entry); err != nil {
		a.log.Warn().Err(err).
			Str("entity", entity).
			Str("key", key).
			Str("action", string(action)).
			Msg("audit record failed")
	}
}

// notFound converts a repository miss into a NotFound error carrying msg.
func notFound(err error, msg string) error {
	if errors.Is(err, ports.ErrNoRows) {
		return domain.NotFound(msg)
	}
	return err
}
