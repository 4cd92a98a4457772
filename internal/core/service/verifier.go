package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/deadeye/laserworks/internal/core/domain"
	"github.com/deadeye/laserworks/internal/core/ports"
	"github.com/deadeye/laserworks/internal/pkg/token"
)

// DefaultVerificationURL prefixes the confirmation token in mailed links.
const DefaultVerificationURL = "http://localhost:5173/email-verification/"

// Verifier mails confirmation links and consumes them when followed.
type Verifier struct {
	users   ports.UserManager
	signer  *token.Confirmations
	store   ports.ConfirmationStore
	queue   ports.MailQueue
	linkURL string
	log     zerolog.Logger
}

// NewVerifier wires the confirmation flow. A nil store accepts a token any
// number of times until it expires.
func NewVerifier(
	users ports.UserManager,
	signer *token.Confirmations,
	store ports.ConfirmationStore,
	queue ports.MailQueue,
	linkURL string,
	logger zerolog.Logger,
) *Verifier {
	if linkURL == "" {
		linkURL = DefaultVerificationURL
	}
	return &Verifier{users: users, signer: signer, store: store, queue: queue, linkURL: linkURL, log: logger}
}

// SendConfirmation queues a confirmation email for username. Delivery
// happens asynchronously.
func (v *Verifier) SendConfirmation(ctx context.Context, username, email string) error {
	if email == "" {
		return domain.BadRequest("email is required")
	}
	if _, err := v.users.Get(ctx, username); err != nil {
		return err
	}

	tkn, err := v.signer.Sign(username)
	if err != nil {
		return fmt.Errorf("sign confirmation: %w", err)
	}
	link := v.linkURL + tkn

	err = v.queue.Enqueue(ports.Mail{
		To:      email,
		Subject: "Confirmation Email",
		HTML:    fmt.Sprintf(`Please click this link to confirm your email: <a href="%s">%s</a>`, link, link),
	})
	if err != nil {
		return fmt.Errorf("queue confirmation: %w", err)
	}

	v.log.Info().Str("username", username).Msg("confirmation email queued")
	return nil
}

// Confirm verifies the user named by raw. Each token works once; a token
// whose verification fails stays usable.
func (v *Verifier) Confirm(ctx context.Context, raw string) (*domain.User, error) {
	conf, err := v.signer.Parse(raw)
	if err != nil {
		return nil, err
	}

	if v.store != nil {
		fresh, err := v.store.Consume(ctx, conf.ID, time.Until(conf.ExpiresAt))
		if err != nil {
			return nil, fmt.Errorf("consume confirmation: %w", err)
		}
		if !fresh {
			return nil, domain.BadRequest("confirmation token already used")
		}
	}

	user, err := v.users.Verify(ctx, conf.Username)
	if err != nil {
		if v.store != nil {
			if rerr := v.store.Release(ctx, conf.ID); rerr != nil {
				v.log.Error().Err(rerr).Str("username", conf.Username).Msg("release confirmation token")
			}
		}
		return nil, err
	}
	return user, nil
}
