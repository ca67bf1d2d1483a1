package auth

import (
	"context"
	"errors"
	"time"

	"pinboard/internal/config"
	"pinboard/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token type claim values.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// ErrInvalidToken covers every verification failure: bad signature,
// wrong signing method, expired, malformed, wrong token type or a
// blacklisted refresh token. Callers treat all of them as 401.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the decoded token payload.
type Claims struct {
	UserID    uint
	Username  string
	TokenType string
	JTI       string
	ExpiresAt time.Time
}

// Payload returns the claims in the wire shape echoed back by
// authenticated endpoints.
func (c *Claims) Payload() map[string]interface{} {
	return map[string]interface{}{
		"user_id":    c.UserID,
		"username":   c.Username,
		"token_type": c.TokenType,
		"jti":        c.JTI,
		"exp":        c.ExpiresAt.Unix(),
	}
}

// TokenPair is the result of issuing credentials at login.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Blacklist records revoked refresh tokens by jti until they expire.
type Blacklist interface {
	Add(ctx context.Context, jti string, ttl time.Duration) error
	Contains(ctx context.Context, jti string) (bool, error)
}

// TokenService issues and verifies HS256-signed bearer tokens carrying
// the user_id identity claim. It is stateless apart from the optional
// refresh-token blacklist.
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	blacklist  Blacklist
}

// NewTokenService builds a TokenService from config. blacklist may be
// nil, in which case refresh tokens are only checked for signature and
// expiry.
func NewTokenService(cfg *config.Config, blacklist Blacklist) *TokenService {
	return &TokenService{
		secret:     []byte(cfg.JWTSecret),
		accessTTL:  time.Duration(cfg.AccessTTLMin) * time.Minute,
		refreshTTL: time.Duration(cfg.RefreshTTLMin) * time.Minute,
		blacklist:  blacklist,
	}
}

// Issue returns a fresh access/refresh token pair for the user.
func (s *TokenService) Issue(user *models.User) (TokenPair, error) {
	access, err := s.sign(user, TokenTypeAccess, s.accessTTL)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := s.sign(user, TokenTypeRefresh, s.refreshTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{Access: access, Refresh: refresh}, nil
}

func (s *TokenService) sign(user *models.User, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":    float64(user.ID),
		"username":   user.Username,
		"token_type": tokenType,
		"jti":        uuid.NewString(),
		"iat":        now.Unix(),
		"exp":        now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify checks signature and expiry and decodes the claims. It does
// not inspect the token type; use VerifyAccess or VerifyRefresh at the
// request boundary.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	userID, ok := mapClaims["user_id"].(float64)
	if !ok || userID <= 0 {
		return nil, ErrInvalidToken
	}

	claims := &Claims{UserID: uint(userID)}
	if v, ok := mapClaims["username"].(string); ok {
		claims.Username = v
	}
	if v, ok := mapClaims["token_type"].(string); ok {
		claims.TokenType = v
	}
	if v, ok := mapClaims["jti"].(string); ok {
		claims.JTI = v
	}
	if exp, expErr := mapClaims.GetExpirationTime(); expErr == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}
	return claims, nil
}

// VerifyAccess verifies an access token presented on a protected request.
func (s *TokenService) VerifyAccess(tokenString string) (*Claims, error) {
	claims, err := s.Verify(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != TokenTypeAccess {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// VerifyRefresh verifies a refresh token, rejecting blacklisted ones.
func (s *TokenService) VerifyRefresh(ctx context.Context, tokenString string) (*Claims, error) {
	claims, err := s.Verify(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != TokenTypeRefresh {
		return nil, ErrInvalidToken
	}
	if s.blacklist != nil && claims.JTI != "" {
		revoked, blErr := s.blacklist.Contains(ctx, claims.JTI)
		if blErr != nil {
			return nil, models.NewInternalError(blErr)
		}
		if revoked {
			return nil, ErrInvalidToken
		}
	}
	return claims, nil
}

// Revoke blacklists the given refresh token for its remaining lifetime.
func (s *TokenService) Revoke(ctx context.Context, tokenString string) error {
	claims, err := s.VerifyRefresh(ctx, tokenString)
	if err != nil {
		return err
	}
	if s.blacklist == nil {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	return s.blacklist.Add(ctx, claims.JTI, ttl)
}
