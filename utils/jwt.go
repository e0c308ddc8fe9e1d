package utils

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt"

	"brightpath/models"
)

// Load the secret from an environment variable. Fallback to a default (not recommended in production).
var secretKey = []byte(getSecret())

func getSecret() string {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "brightpath-dev"
	}
	return secret
}

// GenerateToken creates a signed JWT carrying the principal's identity.
// The token expires after the specified duration.
func GenerateToken(p models.Principal, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":   p.ID,
		"name":  p.Name,
		"email": p.Email,
		"role":  p.Role,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey)
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey, nil
	})
}

// PrincipalFromToken resolves the identity embedded in a valid token.
func PrincipalFromToken(tokenString string) (*models.Principal, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, errors.New("token does not contain a valid 'sub' claim")
	}

	p := &models.Principal{ID: sub}
	if name, ok := claims["name"].(string); ok {
		p.Name = name
	}
	if email, ok := claims["email"].(string); ok {
		p.Email = email
	}
	if role, ok := claims["role"].(string); ok {
		p.Role = role
	}
	return p, nil
}
