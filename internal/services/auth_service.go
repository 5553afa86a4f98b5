package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"stylefeed/internal/apperr"
	"stylefeed/internal/models"
	"stylefeed/internal/repositories"
)

// OTPPublisher delivers a generated verification code to the SMS gateway.
// The RabbitMQ client implements it; tests use a stub.
type OTPPublisher interface {
	PublishOTP(phone, code string) error
}

// AuthService handles phone+OTP authentication and JWT session tokens.
// Sessions live 90 days, mirroring the mobile client's expectations; logout
// puts the token ID on a Redis denylist for its remaining validity.
type AuthService struct {
	users       repositories.UserRepository
	otpOut      OTPPublisher
	revocations *redis.Client // nil disables revocation (logout becomes client-side)
	jwtSecret   []byte
	tokenTTL    time.Duration
	otpTTL      time.Duration
}

// NewAuthService creates a new AuthService. otpOut and revocations may be
// nil in tests.
func NewAuthService(users repositories.UserRepository, otpOut OTPPublisher, revocations *redis.Client, jwtSecret string) *AuthService {
	return &AuthService{
		users:       users,
		otpOut:      otpOut,
		revocations: revocations,
		jwtSecret:   []byte(jwtSecret),
		tokenTTL:    90 * 24 * time.Hour,
		otpTTL:      5 * time.Minute,
	}
}

// generateOTP returns a 6-digit code from crypto/rand.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to generate OTP: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// RequestOTP finds or creates the user for a phone number, stores a bcrypt
// hash of a fresh 6-digit code, and hands the code to the SMS dispatcher.
// Reports whether the phone belonged to an existing user.
func (s *AuthService) RequestOTP(phone string) (existing bool, err error) {
	user, err := s.users.GetByPhone(phone)
	switch {
	case err == nil:
		existing = true
	case errors.Is(err, apperr.ErrNotFound):
		user = &models.User{
			Phone:    phone,
			Username: "user_" + phone,
		}
		if err := s.users.Create(user); err != nil {
			return false, err
		}
	default:
		return false, err
	}

	code, err := generateOTP()
	if err != nil {
		return existing, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return existing, fmt.Errorf("failed to hash OTP: %w", err)
	}
	now := time.Now()
	user.VerificationCode = string(hash)
	user.VerificationSentAt = &now
	if err := s.users.Save(user); err != nil {
		return existing, err
	}

	if s.otpOut != nil {
		if err := s.otpOut.PublishOTP(phone, code); err != nil {
			return existing, fmt.Errorf("failed to dispatch OTP: %w", err)
		}
	}
	log.Info().Str("phone", phone).Bool("existing", existing).Msg("OTP issued")
	return existing, nil
}

// VerifyOTP checks the code against the stored hash and its 5-minute
// validity window, marks the phone verified, clears the pending code and
// issues a session token.
func (s *AuthService) VerifyOTP(phone, code string) (string, *models.User, error) {
	user, err := s.users.GetByPhone(phone)
	if err != nil {
		return "", nil, err
	}
	if user.VerificationCode == "" || user.VerificationSentAt == nil {
		return "", nil, apperr.Unauthenticated("no pending verification for this phone")
	}
	if time.Since(*user.VerificationSentAt) > s.otpTTL {
		return "", nil, apperr.Unauthenticated("verification code expired")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.VerificationCode), []byte(code)) != nil {
		return "", nil, apperr.Unauthenticated("invalid verification code")
	}

	user.PhoneVerified = true
	user.VerificationCode = ""
	user.VerificationSentAt = nil
	if err := s.users.Save(user); err != nil {
		return "", nil, err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) issueToken(user *models.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"phone":   user.Phone,
		"jti":     uuid.New().String(),
		"exp":     now.Add(s.tokenTTL).Unix(),
		"iat":     now.Unix(),
	})
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and validates a session token and checks it against
// the revocation denylist, returning the claims if it is still good.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, apperr.Unauthenticated("invalid token: %v", err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, apperr.Unauthenticated("invalid token")
	}

	if s.revocations != nil {
		jti, _ := claims["jti"].(string)
		if jti != "" {
			n, err := s.revocations.Exists(context.Background(), revocationKey(jti)).Result()
			if err != nil {
				return nil, apperr.Store("check token revocation", err)
			}
			if n > 0 {
				return nil, apperr.Unauthenticated("session has been logged out")
			}
		}
	}
	return claims, nil
}

// RevokeToken invalidates a still-valid session token. The denylist entry
// expires when the token itself would have.
func (s *AuthService) RevokeToken(tokenString string) error {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return err
	}
	if s.revocations == nil {
		return nil
	}
	jti, _ := claims["jti"].(string)
	if jti == "" {
		return apperr.Unauthenticated("token has no ID, cannot revoke")
	}
	ttl := s.tokenTTL
	if exp, ok := claims["exp"].(float64); ok {
		if remaining := time.Until(time.Unix(int64(exp), 0)); remaining > 0 {
			ttl = remaining
		}
	}
	if err := s.revocations.Set(context.Background(), revocationKey(jti), 1, ttl).Err(); err != nil {
		return apperr.Store("revoke token", err)
	}
	return nil
}

func revocationKey(jti string) string {
	return "session:revoked:" + jti
}
