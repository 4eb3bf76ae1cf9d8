package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/websopen/web-valencio/internal/config"
	"golang.org/x/crypto/bcrypt"
)

// Common auth errors.
var (
	ErrInvalidToken     = errors.New("invalid hub token")
	ErrTokenExpired     = errors.New("hub token expired")
	ErrActivationFailed = errors.New("activation failed")
)

const (
	// CookieName is the session cookie issued to activated admins.
	CookieName = "valencio_admin"

	// RoleAdmin is the hub role granting admin access.
	RoleAdmin = "admin"

	// CookieValueAdmin is the only role value that authorizes the admin UI.
	CookieValueAdmin = "admin_active"
)

// HubClaims is the payload of a hub-issued activation token.
type HubClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// AssociationStore records whether this store already has its admin.
type AssociationStore interface {
	HasAdmin(ctx context.Context) (bool, error)
	MarkAdminAssociated(ctx context.Context) error
}

// AuthService handles hub token decoding, PIN activation and session
// cookie values.
type AuthService struct {
	cfg     *config.Config
	assoc   AssociationStore
	pinHash []byte
	log     zerolog.Logger
}

// NewAuthService creates an AuthService. The activation PIN is taken from
// ADMIN_PIN_HASH when set, otherwise ADMIN_PIN is bcrypt-hashed here so a
// plaintext PIN never lives past startup.
func NewAuthService(cfg *config.Config, assoc AssociationStore, log zerolog.Logger) (*AuthService, error) {
	pinHash := []byte(cfg.AdminPINHash)
	if len(pinHash) == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPIN), cfg.BcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash admin pin: %w", err)
		}
		pinHash = hash
	}

	return &AuthService{
		cfg:     cfg,
		assoc:   assoc,
		pinHash: pinHash,
		log:     log.With().Str("component", "auth_service").Logger(),
	}, nil
}

// DecodeHubToken parses a hub token into its claims.
//
// Without HUB_JWT_SECRET the signature is NOT verified: the hub sits on a
// trusted boundary and this service only checks structure, role and expiry.
// With the secret set, HS256 signatures are enforced.
func (s *AuthService) DecodeHubToken(tokenStr string) (*HubClaims, error) {
	claims := &HubClaims{}

	if s.cfg.HubJWTSecret != "" {
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(s.cfg.HubJWTSecret), nil
		})
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return nil, ErrTokenExpired
			}
			return nil, ErrInvalidToken
		}
		if !token.Valid {
			return nil, ErrInvalidToken
		}
		return claims, nil
	}

	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenStr, claims); err != nil {
		return nil, ErrInvalidToken
	}
	// ParseUnverified skips claims validation, so expiry is checked here.
	// A token without exp never expires by this check alone.
	if s.IsExpired(claims) {
		return nil, ErrTokenExpired
	}
	return claims, nil
}

// IsExpired reports whether the claims carry an exp in the past.
func (s *AuthService) IsExpired(claims *HubClaims) bool {
	return claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now())
}

// ValidateHubToken checks a hub token and reports whether the store
// already has an associated admin. Idempotent.
func (s *AuthService) ValidateHubToken(ctx context.Context, tokenStr string) (alreadyAssociated bool, err error) {
	claims, err := s.DecodeHubToken(tokenStr)
	if err != nil {
		return false, err
	}
	if claims.Role == "" {
		return false, ErrInvalidToken
	}

	has, err := s.assoc.HasAdmin(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("admin association check failed")
		return false, err
	}
	return has, nil
}

// Activate re-validates the token, checks the PIN and returns the role
// value to bake into the session cookie. Token and PIN failures collapse
// into ErrActivationFailed so callers cannot distinguish which factor
// was wrong.
func (s *AuthService) Activate(ctx context.Context, tokenStr, pin string) (roleValue string, err error) {
	claims, err := s.DecodeHubToken(tokenStr)
	if err != nil || claims.Role == "" {
		return "", ErrActivationFailed
	}

	if err := bcrypt.CompareHashAndPassword(s.pinHash, []byte(pin)); err != nil {
		s.log.Warn().Str("role", claims.Role).Msg("activation rejected: wrong pin")
		return "", ErrActivationFailed
	}

	roleValue = MapRole(claims.Role)
	if roleValue == CookieValueAdmin {
		if err := s.assoc.MarkAdminAssociated(ctx); err != nil {
			return "", err
		}
	}

	s.log.Info().Str("role", claims.Role).Msg("admin activated")
	return roleValue, nil
}

// MapRole converts a hub role to its session cookie value.
func MapRole(role string) string {
	if role == RoleAdmin {
		return CookieValueAdmin
	}
	return "role_" + role
}

// SignSessionValue produces the opaque cookie value for a role:
// base64url(roleValue "." hex(HMAC-SHA256(roleValue))).
func (s *AuthService) SignSessionValue(roleValue string) string {
	mac := s.mac(roleValue)
	return base64.RawURLEncoding.EncodeToString([]byte(roleValue + "." + mac))
}

// VerifySessionValue decodes a cookie value and checks its MAC.
// Cookies are verified, never trusted.
func (s *AuthService) VerifySessionValue(cookieValue string) (roleValue string, ok bool) {
	raw, err := base64.RawURLEncoding.DecodeString(cookieValue)
	if err != nil {
		return "", false
	}
	decoded := string(raw)
	i := strings.LastIndex(decoded, ".")
	if i < 0 {
		return "", false
	}
	roleValue, gotMAC := decoded[:i], decoded[i+1:]
	if !hmac.Equal([]byte(gotMAC), []byte(s.mac(roleValue))) {
		return "", false
	}
	return roleValue, true
}

// IsAdminSession reports whether a cookie value proves admin access.
func (s *AuthService) IsAdminSession(cookieValue string) bool {
	roleValue, ok := s.VerifySessionValue(cookieValue)
	return ok && roleValue == CookieValueAdmin
}

func (s *AuthService) mac(value string) string {
	h := hmac.New(sha256.New, []byte(s.cfg.CookieSecret))
	h.Write([]byte(value))
	return hex.EncodeToString(h.Sum(nil))
}
