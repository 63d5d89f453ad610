package service

import (
	"errors"
	"fmt"
	"time"

	"reviewhub/internal/config"
	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/repository"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidCode  = errors.New("invalid confirmation code")
	ErrInvalidToken = errors.New("invalid token")
)

// Mailer delivers confirmation codes. Fire-and-forget: a nil return means
// the message was handed to the transport, not that it arrived.
type Mailer interface {
	SendConfirmationCode(to, code string) error
}

// Claims carried by an access token.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Signup(username, email string) (*models.User, error)
	IssueToken(username, confirmationCode string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type authService struct {
	userRepo       repository.UserRepository
	codes          *ConfirmationCodes
	mailer         Mailer
	jwtSecret      string
	accessTokenTTL time.Duration
}

func NewAuthService(
	userRepo repository.UserRepository,
	mailer Mailer,
	cfg *config.Config,
) AuthService {
	return &authService{
		userRepo:       userRepo,
		codes:          NewConfirmationCodes(cfg.ConfirmationSecret),
		mailer:         mailer,
		jwtSecret:      cfg.JWTSecret,
		accessTokenTTL: cfg.AccessTokenTTL,
	}
}

// Signup gets-or-creates an inactive account and mails it a confirmation
// code. Resubmitting the exact (email, username) pair is an idempotent
// resend; a partial match is a uniqueness conflict.
func (s *authService) Signup(username, email string) (*models.User, error) {
	fieldErrs := FieldErrors{}
	if msg := validateUsername(username); msg != "" {
		fieldErrs["username"] = msg
	}
	if msg := validateEmail(email); msg != "" {
		fieldErrs["email"] = msg
	}
	if len(fieldErrs) > 0 {
		return nil, fieldErrs
	}

	user, err := s.userRepo.FindByEmailAndUsername(email, username)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if user == nil {
		if _, err := s.userRepo.FindByEmail(email); err == nil {
			return nil, FieldErrors{"email": "email already in use"}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		if _, err := s.userRepo.FindByUsername(username); err == nil {
			return nil, FieldErrors{"username": "username already in use"}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		user = &models.User{
			Username: username,
			Email:    email,
			Role:     models.RoleUser,
		}
		if err := s.userRepo.Create(user); err != nil {
			return nil, err
		}
	}

	code := s.codes.Make(user)
	if err := s.mailer.SendConfirmationCode(user.Email, code); err != nil {
		return nil, fmt.Errorf("send confirmation code: %w", err)
	}

	return user, nil
}

// IssueToken exchanges a valid confirmation code for a signed access token,
// activating the account. A mismatched code leaves the account untouched.
func (s *authService) IssueToken(username, confirmationCode string) (string, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	if !s.codes.Check(user, confirmationCode) {
		return "", ErrInvalidCode
	}

	user.Active = true
	if err := s.userRepo.Save(user); err != nil {
		return "", err
	}

	return s.generateAccessToken(user)
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
