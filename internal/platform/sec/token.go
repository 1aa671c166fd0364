// Copyright (c) 2026 Maktaba. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and session token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, Token Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via small interfaces.
package sec

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is the payload an authenticated login stores in Redis and carries
// through the request context.
//
// Nothing mutates it after login except logout (which deletes it wholesale).
type Session struct {
	// SID is the opaque session identifier (Redis key suffix).
	SID string `json:"sid"`

	UserID    string    `json:"id"`
	Email     string    `json:"email"`
	Role      UserRole  `json:"role"`
	Dashboard Dashboard `json:"dashboard"`

	// AuthorID is set only for author-dashboard sessions, after ownership
	// resolution. Empty means "no author record".
	AuthorID string `json:"author_id,omitempty"`
}

// sessionClaims is the JWT payload embedded in the session cookie.
//
// # Why only identifiers?
//
// The cookie binds a browser to a Redis session; the authoritative payload
// (role, dashboard, authorID) lives server-side so it can be revoked at
// logout. Claims are abbreviated to keep the cookie small.
type sessionClaims struct {
	jwt.RegisteredClaims

	SID    string `json:"sid"`
	UserID string `json:"uid"`
}

// TokenService signs and verifies session cookie tokens using HS256.
type TokenService struct {
	secret []byte
	issuer string
}

// NewTokenService creates a TokenService keyed by the session secret.
func NewTokenService(secret, issuer string) (*TokenService, error) {
	if len(secret) < 32 {
		return nil, fmt.Errorf("sec: session secret must be at least 32 bytes")
	}
	return &TokenService{secret: []byte(secret), issuer: issuer}, nil
}

// SignSessionToken creates a signed cookie token binding sid to userID.
func (service *TokenService) SignSessionToken(sid, userID string, timeToLive time.Duration) (string, error) {
	currentTime := time.Now()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		SID:    sid,
		UserID: userID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign session token: %w", err)
	}

	return signedToken, nil
}

// VerifySessionToken checks the signature and validity of a cookie token and
// returns the bound session ID and user ID.
func (service *TokenService) VerifySessionToken(tokenString string) (sid, userID string, err error) {
	token, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	})

	if err != nil {
		return "", "", fmt.Errorf("sec: invalid session token: %w", err)
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid {
		return "", "", fmt.Errorf("sec: invalid session token claims")
	}

	return claims.SID, claims.UserID, nil
}
