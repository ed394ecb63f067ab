package client

import (
	"context"
	"net/http"
	"time"

	"github.com/sparkmatch/sparkmatch-backend/internal/domain"
)

// AuthService wraps the phone-number OTP flow.
type AuthService struct {
	c *Client
}

type otpRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	Purpose     string `json:"purpose,omitempty"`
}

type verifyOTPRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	Code        string `json:"code"`
	Purpose     string `json:"purpose,omitempty"`
}

// AuthResponse is the verify-otp payload: the bearer token plus the user it
// belongs to.
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      *domain.User `json:"user"`
	IsNewUser bool         `json:"isNewUser"`
}

func (s *AuthService) SendOTP(ctx context.Context, phoneNumber string) error {
	return s.c.doPublic(ctx, http.MethodPost, "/auth/send-otp", otpRequest{
		PhoneNumber: phoneNumber,
		Purpose:     "PHONE_VERIFICATION",
	}, nil)
}

// VerifyOTP exchanges a code for a bearer token. On success the token is
// written to the client's token store so subsequent calls authenticate.
func (s *AuthService) VerifyOTP(ctx context.Context, phoneNumber, code string) (*AuthResponse, error) {
	var resp AuthResponse
	err := s.c.doPublic(ctx, http.MethodPost, "/auth/verify-otp", verifyOTPRequest{
		PhoneNumber: phoneNumber,
		Code:        code,
		Purpose:     "PHONE_VERIFICATION",
	}, &resp)
	if err != nil {
		return nil, err
	}

	if store, ok := s.c.tokens.(*MemoryTokenStore); ok && resp.Token != "" {
		store.Set(resp.Token)
	}
	return &resp, nil
}

func (s *AuthService) ResendOTP(ctx context.Context, phoneNumber string) error {
	return s.c.doPublic(ctx, http.MethodPost, "/auth/resend-otp", otpRequest{
		PhoneNumber: phoneNumber,
		Purpose:     "PHONE_VERIFICATION",
	}, nil)
}

func (s *AuthService) Me(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := s.c.do(ctx, http.MethodGet, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
