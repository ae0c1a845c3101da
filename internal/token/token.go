// Package token issues and verifies the signed bearer tokens the API hands
// out at registration and login. Tokens are HS256 JWTs carrying the numeric
// subject id, an issued-at, and an absolute expiry. Expiry is the only
// deactivation mechanism; there is no revocation list.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL matches the 24-hour expiry baked into issued tokens.
const DefaultTTL = 24 * time.Hour

// PurposeEmailVerify tags tokens embedded in email-verification links so they
// cannot be replayed as login tokens (and vice versa).
const PurposeEmailVerify = "email_verify"

// ErrInvalidToken is returned for every verification failure: malformed
// input, bad signature, wrong signing method, wrong purpose, or expiry.
// Callers never learn which sub-case occurred.
var ErrInvalidToken = errors.New("invalid or expired token")

// Service signs and verifies bearer tokens with a process-wide secret.
type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// New creates a Service signing with secret. A non-positive ttl falls back to
// DefaultTTL.
func New(secret string, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithClock overrides the time source. Intended for tests simulating expiry.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Issue returns a signed bearer token for subjectID.
func (s *Service) Issue(subjectID int64) (string, error) {
	return s.sign(subjectID, "")
}

// IssueFor returns a signed token tagged with a purpose claim, e.g. the
// one-time email-verification link token.
func (s *Service) IssueFor(subjectID int64, purpose string) (string, error) {
	return s.sign(subjectID, purpose)
}

func (s *Service) sign(subjectID int64, purpose string) (string, error) {
	now := s.now().UTC()
	claims := jwt.MapClaims{
		"user_id": subjectID,
		"iat":     now.Unix(),
		"exp":     now.Add(s.ttl).Unix(),
	}
	if purpose != "" {
		claims["purpose"] = purpose
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify checks signature and expiry and returns the subject id. Any failure
// yields ErrInvalidToken.
func (s *Service) Verify(tokenString string) (int64, error) {
	return s.verify(tokenString, "")
}

// VerifyFor is Verify with an additional purpose-claim match.
func (s *Service) VerifyFor(tokenString, purpose string) (int64, error) {
	return s.verify(tokenString, purpose)
}

func (s *Service) verify(tokenString, purpose string) (int64, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !tkn.Valid {
		return 0, ErrInvalidToken
	}

	got, _ := claims["purpose"].(string)
	if got != purpose {
		return 0, ErrInvalidToken
	}

	// JSON numbers decode as float64 in MapClaims.
	raw, ok := claims["user_id"].(float64)
	if !ok || raw <= 0 {
		return 0, ErrInvalidToken
	}
	return int64(raw), nil
}
