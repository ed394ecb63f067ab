// Package auth implements passwordless phone authentication: a short-lived
// one-time code is sent to the phone number, and verifying it yields a JWT.
package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/sparkmatch/sparkmatch-backend/internal/domain"
	"github.com/sparkmatch/sparkmatch-backend/internal/metrics"
	"github.com/sparkmatch/sparkmatch-backend/internal/repository"
)

const (
	// PurposeVerification is the only OTP purpose issued today.
	PurposeVerification = "PHONE_VERIFICATION"

	codeDigits = 6
)

// OTPStore keeps pending code hashes, one per phone number and purpose,
// expiring on its own.
type OTPStore interface {
	Save(ctx context.Context, purpose, phoneNumber, codeHash string) error
	Get(ctx context.Context, purpose, phoneNumber string) (string, error)
	Delete(ctx context.Context, purpose, phoneNumber string) error
}

// CodeSender delivers a one-time code to a phone number. Production wires
// an SMS gateway; development logs the code instead.
type CodeSender interface {
	Send(ctx context.Context, phoneNumber, code string) error
}

// AuthResult is what a successful verification yields.
type AuthResult struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      *domain.User `json:"user"`
	IsNewUser bool         `json:"isNewUser"`
}

type AuthUseCase struct {
	userRepo  repository.UserRepository
	otpStore  OTPStore
	sender    CodeSender
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewAuthUseCase(
	userRepo repository.UserRepository,
	otpStore OTPStore,
	sender CodeSender,
	jwtSecret string,
	tokenTTL time.Duration,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:  userRepo,
		otpStore:  otpStore,
		sender:    sender,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

// SendOTP issues a fresh code for the phone number, replacing any pending
// one. Only the bcrypt hash is stored.
func (uc *AuthUseCase) SendOTP(ctx context.Context, phoneNumber, purpose string) error {
	if purpose == "" {
		purpose = PurposeVerification
	}

	code, err := generateCode()
	if err != nil {
		return fmt.Errorf("generating code: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing code: %w", err)
	}

	if err := uc.otpStore.Save(ctx, purpose, phoneNumber, string(hash)); err != nil {
		return fmt.Errorf("storing code: %w", err)
	}

	if err := uc.sender.Send(ctx, phoneNumber, code); err != nil {
		return fmt.Errorf("sending code: %w", err)
	}

	metrics.OTPRequestsTotal.Inc()
	return nil
}

// VerifyOTP checks the code, consumes it, signs the user in and returns a
// bearer token. A first-time phone number gets a user created on the spot.
func (uc *AuthUseCase) VerifyOTP(ctx context.Context, phoneNumber, purpose, code string) (*AuthResult, error) {
	if purpose == "" {
		purpose = PurposeVerification
	}

	hash, err := uc.otpStore.Get(ctx, purpose, phoneNumber)
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) != nil {
		return nil, domain.ErrInvalidOTP
	}
	if err := uc.otpStore.Delete(ctx, purpose, phoneNumber); err != nil {
		return nil, fmt.Errorf("consuming code: %w", err)
	}

	user, isNew, err := uc.findOrCreateUser(ctx, phoneNumber)
	if err != nil {
		return nil, err
	}

	expiresAt := time.Now().Add(uc.tokenTTL)
	token, err := uc.issueToken(user.ID, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}

	return &AuthResult{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
		IsNewUser: isNew,
	}, nil
}

func (uc *AuthUseCase) findOrCreateUser(ctx context.Context, phoneNumber string) (*domain.User, bool, error) {
	user, err := uc.userRepo.GetByPhone(ctx, phoneNumber)
	if err == nil {
		if !user.IsVerified {
			user.IsVerified = true
			if err := uc.userRepo.Update(ctx, user); err != nil {
				return nil, false, fmt.Errorf("marking user verified: %w", err)
			}
		}
		return user, false, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, false, fmt.Errorf("looking up user: %w", err)
	}

	user = &domain.User{
		ID:          uuid.NewString(),
		PhoneNumber: phoneNumber,
		IsVerified:  true,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, false, fmt.Errorf("creating user: %w", err)
	}
	return user, true, nil
}

func (uc *AuthUseCase) issueToken(userID string, expiresAt time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(uc.jwtSecret)
}

// ParseToken validates a bearer token and returns the user ID it names.
func (uc *AuthUseCase) ParseToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return uc.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return "", domain.ErrUnauthorized
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", domain.ErrUnauthorized
	}
	return claims.Subject, nil
}

// Me returns the authenticated user and refreshes their last-seen time.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*domain.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := uc.userRepo.UpdateLastSeen(ctx, userID); err != nil {
		return nil, fmt.Errorf("updating last seen: %w", err)
	}
	return user, nil
}

func generateCode() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < codeDigits; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", codeDigits, n), nil
}

// LogSender writes codes to stdout. Development only.
type LogSender struct{}

func (LogSender) Send(_ context.Context, phoneNumber, code string) error {
	fmt.Printf("OTP for %s: %s\n", phoneNumber, code)
	return nil
}
