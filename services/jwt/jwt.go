package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
)

// Claim keys carried by access tokens.
const (
	ClaimUserID    = "user_id"
	ClaimLevelName = "level_name"
)

// GenerateToken signs an HS256 access token for the given identity.
func GenerateToken(userID uint, levelName, secret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		ClaimUserID:    userID,
		ClaimLevelName: levelName,
		"iat":          time.Now().Unix(),
		"exp":          time.Now().Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func ValidateAndGetClaims(tokenString, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// Identity pulls the user id and level name out of validated claims.
func Identity(claims jwt.MapClaims) (uint, string, error) {
	var userID uint
	switch v := claims[ClaimUserID].(type) {
	case float64:
		userID = uint(v)
	default:
		return 0, "", fmt.Errorf("invalid user_id claim")
	}
	if userID == 0 {
		return 0, "", fmt.Errorf("invalid user_id claim")
	}
	levelName, _ := claims[ClaimLevelName].(string)
	return userID, levelName, nil
}
