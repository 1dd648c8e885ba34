package utils // helpers for token creation, hashing and identifiers

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/campushq/seminar-registration/internal/model"
)

// AccessToken is a signed HS256 JWT together with its expiry.  Staff
// clients send it in the Authorization header; students never hold
// tokens (registration is a public flow).
type AccessToken struct {
	Token string    // serialized JWT
	Exp   time.Time // UTC expiration time
}

// NewAccessToken signs a JWT for a staff user.  Claims carry the
// user id (sub), the role and the college id so middleware can
// enforce both role and tenant without a database round trip.
func NewAccessToken(secret string, u *model.User, ttlMin int) (AccessToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub":        u.ID,
		"role":       u.Role,
		"college_id": u.CollegeID,
		"exp":        exp.Unix(),
		"iat":        time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}
