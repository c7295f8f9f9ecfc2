package utils

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"securewallet/internal/models"
)

// GenerateToken signs an access token for the given claims. Used by the seed
// command to mint development tokens; production issuance is external.
func GenerateToken(claims *models.UserClaims, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		Issuer:    "securewallet-api",
		Subject:   strconv.FormatUint(uint64(claims.UserID), 10),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
