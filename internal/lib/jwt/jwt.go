package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"authcore/internal/domain/models"
)

// NewToken generates a new HS256 session token for a logged-in account and
// returns the signed string.
func NewToken(account *models.Account, secret string, duration time.Duration) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["uid"] = account.ID
	claims["username"] = account.Username
	claims["exp"] = time.Now().Add(duration).Unix()

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}
