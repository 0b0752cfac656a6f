package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

// DriveboxClaims represents custom JWT claims for Drivebox access tokens
type DriveboxClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
	Name   string `json:"name,omitempty"`
	jwt.RegisteredClaims
}
