package utils

import (
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SignAccessToken issues the short-lived HS256 access token the JWT
// middleware verifies. TTL comes from ACCESS_TOKEN_EXP_MINUTES (default 15).
func SignAccessToken(userID int, username string, isSuperuser bool) (string, error) {
	minutes, err := strconv.Atoi(os.Getenv("ACCESS_TOKEN_EXP_MINUTES"))
	if err != nil || minutes <= 0 {
		minutes = 15
	}

	claims := jwt.MapClaims{
		"uid":  userID,
		"user": username,
		"su":   isSuperuser,
		"exp":  time.Now().Add(time.Duration(minutes) * time.Minute).Unix(),
		"iat":  time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		return "", ErrorHandler(err, "failed to sign access token")
	}
	return signed, nil
}
