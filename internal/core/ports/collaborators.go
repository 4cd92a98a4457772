package ports

import (
	"context"
	"time"

	"github.com/deadeye/laserworks/internal/core/domain"
)

// Hasher hashes and verifies passwords.
type Hasher interface {
	Hash(plain string) (string, error)
	Compare(plain, digest string) bool
}

// Mail is a single outbound email.
type Mail struct {
	To      string
	Subject string
	HTML    string
}

// Mailer delivers one email synchronously.
type Mailer interface {
	Send(ctx context.Context, m Mail) error
}

// MailQueue accepts mail for asynchronous delivery.
type MailQueue interface {
	Enqueue(m Mail) error
}

// ConfirmationStore remembers which confirmation tokens were already used.
type ConfirmationStore interface {
	// Consume marks id as used until ttl elapses. It reports false when id
	// had already been consumed.
	Consume(ctx context.Context, id string, ttl time.Duration) (bool, error)
	// Release forgets a consumed id so the token can be used again.
	Release(ctx context.Context, id string) error
}

// AuditRecorder appends entries to the audit trail.
type AuditRecorder interface {
	Record(ctx context.Context, entry domain.AuditEntry) error
}
