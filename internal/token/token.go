// internal/token/token.go
//
// Signed session tokens for reconnecting to a room.
// Responsibilities:
//   - Issue an HS256 JWT naming the room and the stable player id.
//   - Verify signature, algorithm and expiry; map every failure to
//     apperr.ErrInvalidToken.
//
// Notes:
//   - Connection ids are not part of the token. A reconnect looks the player
//     up by id, so a token survives any number of reconnects until it expires.

package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/guessword/go-server/internal/apperr"
)

// Claims identify one seat in one room.
type Claims struct {
	RoomID   string `json:"room"`
	PlayerID string `json:"player"`
	jwt.RegisteredClaims
}

type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type Option func(*Issuer)

// WithClock overrides time.Now for issuing and verifying.
func WithClock(now func() time.Time) Option { return func(i *Issuer) { i.now = now } }

func NewIssuer(secret string, ttl time.Duration, opts ...Option) *Issuer {
	i := &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
	for _, o := range opts {
		o(i)
	}
	return i
}

// Issue signs a token for playerID in roomID.
func (i *Issuer) Issue(roomID, playerID string) (string, error) {
	now := i.now()
	c := Claims{
		RoomID:   roomID,
		PlayerID: playerID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   playerID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(i.secret)
}

// Verify parses tok and returns its claims.
func (i *Issuer) Verify(tok string) (Claims, error) {
	var c Claims
	t, err := jwt.ParseWithClaims(tok, &c, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil || !t.Valid {
		return Claims{}, apperr.ErrInvalidToken
	}
	if c.RoomID == "" || c.PlayerID == "" {
		return Claims{}, apperr.ErrInvalidToken
	}
	return c, nil
}
