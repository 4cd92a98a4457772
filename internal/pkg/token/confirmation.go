package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/deadeye/laserworks/internal/core/domain"
)

const defaultConfirmationTTL = 24 * time.Hour

// Confirmation is a verified email-confirmation token.
type Confirmation struct {
	ID        string
	Username  string
	ExpiresAt time.Time
}

type confirmationClaims struct {
	User string `json:"user"`
	jwt.RegisteredClaims
}

// Confirmations signs the links mailed to users to confirm their address.
// It uses its own secret so an identity token can never be replayed as a
// confirmation token or vice versa.
type Confirmations struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewConfirmations(secret string, ttl time.Duration) *Confirmations {
	if ttl <= 0 {
		ttl = defaultConfirmationTTL
	}
	return &Confirmations{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Sign issues a confirmation token for username.
func (c *Confirmations) Sign(username string) (string, error) {
	now := c.now()
	claims := confirmationClaims{
		User: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Parse verifies raw. Failures are BadRequest: the link is the input.
func (c *Confirmations) Parse(raw string) (Confirmation, error) {
	claims := &confirmationClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !tkn.Valid || claims.User == "" || claims.ID == "" {
		return Confirmation{}, domain.BadRequest("invalid or expired confirmation token")
	}

	return Confirmation{
		ID:        claims.ID,
		Username:  claims.User,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
