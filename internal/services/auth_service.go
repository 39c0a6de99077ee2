package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/nippo-app/nippo-backend/internal/config"
	"github.com/nippo-app/nippo-backend/internal/dto"
	"github.com/nippo-app/nippo-backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidEmail = errors.New("a valid email address is required")
	ErrInvalidCode  = errors.New("invalid or expired sign-in code")
	ErrInvalidToken = errors.New("invalid or expired refresh token")
	ErrUserNotFound = errors.New("user not found")
)

// CodeMailer delivers one-time sign-in codes. Satisfied by mailer.Mailer.
type CodeMailer interface {
	SendLoginCode(ctx context.Context, to, code string) error
}

type AuthService struct {
	db     *gorm.DB
	cfg    *config.Config
	mailer CodeMailer
}

func NewAuthService(db *gorm.DB, cfg *config.Config, mailer CodeMailer) *AuthService {
	return &AuthService{db: db, cfg: cfg, mailer: mailer}
}

// RequestCode generates a one-time passcode, stores its bcrypt hash and
// emails the plaintext. The caller replies with the same confirmation
// whether or not the address has signed in before.
func (s *AuthService) RequestCode(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}

	code, err := generateLoginCode()
	if err != nil {
		return fmt.Errorf("failed to generate sign-in code: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash sign-in code: %w", err)
	}

	record := models.LoginCode{
		ID:        uuid.New(),
		Email:     email,
		CodeHash:  string(hash),
		ExpiresAt: time.Now().Add(s.cfg.LoginCodeExpiry),
	}
	if err := s.db.Create(&record).Error; err != nil {
		return fmt.Errorf("failed to store sign-in code: %w", err)
	}

	if err := s.mailer.SendLoginCode(ctx, email, code); err != nil {
		return fmt.Errorf("failed to send sign-in code: %w", err)
	}
	return nil
}

// VerifyCode checks the newest unconsumed code for the email and, on
// match, signs the user in. First-time addresses get a user row here;
// there is no separate registration.
func (s *AuthService) VerifyCode(email, code string) (*dto.AuthResponse, error) {
	email = strings.TrimSpace(email)
	if email == "" || code == "" {
		return nil, ErrInvalidCode
	}

	var stored models.LoginCode
	err := s.db.Where("email = ? AND consumed = false AND expires_at > ?", email, time.Now()).
		Order("created_at DESC").
		First(&stored).Error
	if err != nil {
		return nil, ErrInvalidCode
	}

	if err := bcrypt.CompareHashAndPassword([]byte(stored.CodeHash), []byte(code)); err != nil {
		return nil, ErrInvalidCode
	}

	if err := s.db.Model(&stored).Update("consumed", true).Error; err != nil {
		return nil, fmt.Errorf("failed to consume sign-in code: %w", err)
	}

	var user models.User
	err = s.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{
			ID:    uuid.New(),
			Email: email,
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	return s.generateTokenPair(&user)
}

func (s *AuthService) Refresh(req *dto.RefreshRequest) (*dto.AuthResponse, error) {
	tokenHash := hashToken(req.RefreshToken)

	var stored models.RefreshToken
	if err := s.db.Where("token_hash = ? AND revoked = false", tokenHash).First(&stored).Error; err != nil {
		return nil, ErrInvalidToken
	}

	if time.Now().After(stored.ExpiresAt) {
		s.db.Model(&stored).Update("revoked", true)
		return nil, ErrInvalidToken
	}

	s.db.Model(&stored).Update("revoked", true)

	var user models.User
	if err := s.db.First(&user, "id = ?", stored.UserID).Error; err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	return s.generateTokenPair(&user)
}

// Logout revokes the refresh token, invalidating the session.
func (s *AuthService) Logout(req *dto.LogoutRequest) error {
	tokenHash := hashToken(req.RefreshToken)
	return s.db.Model(&models.RefreshToken{}).
		Where("token_hash = ?", tokenHash).
		Update("revoked", true).Error
}

// Session resolves the current identity for the session check.
func (s *AuthService) Session(userID uuid.UUID) (*dto.SessionResponse, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, ErrUserNotFound
	}
	return &dto.SessionResponse{ID: user.ID, Email: user.Email}, nil
}

func (s *AuthService) generateTokenPair(user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.generateRefreshToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: dto.SessionResponse{
			ID:    user.ID,
			Email: user.Email,
		},
	}, nil
}

func (s *AuthService) generateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(s.cfg.JWTAccessExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) generateRefreshToken(user *models.User) (string, error) {
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	rawToken := base64.URLEncoding.EncodeToString(rawBytes)
	tokenHash := hashToken(rawToken)

	record := models.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: tokenHash,
		ExpiresAt: time.Now().Add(s.cfg.JWTRefreshExpiry),
	}

	if err := s.db.Create(&record).Error; err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	return rawToken, nil
}

// generateLoginCode returns a zero-padded six-digit code.
func generateLoginCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}
