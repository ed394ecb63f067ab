package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sparkmatch/sparkmatch-backend/internal/domain"
)

type memoryOTPStore struct {
	hashes map[string]string
}

func newMemoryOTPStore() *memoryOTPStore {
	return &memoryOTPStore{hashes: make(map[string]string)}
}

func (m *memoryOTPStore) Save(_ context.Context, purpose, phone, hash string) error {
	m.hashes[purpose+":"+phone] = hash
	return nil
}

func (m *memoryOTPStore) Get(_ context.Context, purpose, phone string) (string, error) {
	hash, ok := m.hashes[purpose+":"+phone]
	if !ok {
		return "", domain.ErrOTPExpired
	}
	return hash, nil
}

func (m *memoryOTPStore) Delete(_ context.Context, purpose, phone string) error {
	delete(m.hashes, purpose+":"+phone)
	return nil
}

type capturingSender struct {
	lastCode string
}

func (c *capturingSender) Send(_ context.Context, _, code string) error {
	c.lastCode = code
	return nil
}

type memoryUserRepo struct {
	users map[string]*domain.User // by phone
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[string]*domain.User)}
}

func (m *memoryUserRepo) Create(_ context.Context, u *domain.User) error {
	m.users[u.PhoneNumber] = u
	return nil
}

func (m *memoryUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *memoryUserRepo) GetByPhone(_ context.Context, phone string) (*domain.User, error) {
	u, ok := m.users[phone]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (m *memoryUserRepo) Update(_ context.Context, u *domain.User) error {
	m.users[u.PhoneNumber] = u
	return nil
}

func (m *memoryUserRepo) UpdateLastSeen(_ context.Context, _ string) error { return nil }

func newTestAuth(t *testing.T) (*AuthUseCase, *capturingSender, *memoryUserRepo) {
	t.Helper()
	sender := &capturingSender{}
	users := newMemoryUserRepo()
	uc := NewAuthUseCase(users, newMemoryOTPStore(), sender, "test-secret", time.Hour)
	return uc, sender, users
}

func TestOTPRoundTrip_NewUser(t *testing.T) {
	uc, sender, _ := newTestAuth(t)
	ctx := context.Background()

	if err := uc.SendOTP(ctx, "+15550100", ""); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if len(sender.lastCode) != codeDigits {
		t.Fatalf("code %q, want %d digits", sender.lastCode, codeDigits)
	}

	result, err := uc.VerifyOTP(ctx, "+15550100", "", sender.lastCode)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if !result.IsNewUser {
		t.Error("first verification must create a new user")
	}
	if result.User == nil || !result.User.IsVerified {
		t.Error("verified user expected")
	}
	if result.Token == "" {
		t.Fatal("token expected")
	}

	userID, err := uc.ParseToken(result.Token)
	if err != nil {
		t.Fatalf("parsing issued token failed: %v", err)
	}
	if userID != result.User.ID {
		t.Errorf("token subject = %s, want %s", userID, result.User.ID)
	}
}

func TestVerifyOTP_WrongCode(t *testing.T) {
	uc, sender, _ := newTestAuth(t)
	ctx := context.Background()

	if err := uc.SendOTP(ctx, "+15550100", ""); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	wrong := "000000"
	if wrong == sender.lastCode {
		wrong = "000001"
	}
	if _, err := uc.VerifyOTP(ctx, "+15550100", "", wrong); !errors.Is(err, domain.ErrInvalidOTP) {
		t.Fatalf("got %v, want ErrInvalidOTP", err)
	}
}

func TestVerifyOTP_CodeConsumedOnSuccess(t *testing.T) {
	uc, sender, _ := newTestAuth(t)
	ctx := context.Background()

	if err := uc.SendOTP(ctx, "+15550100", ""); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if _, err := uc.VerifyOTP(ctx, "+15550100", "", sender.lastCode); err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if _, err := uc.VerifyOTP(ctx, "+15550100", "", sender.lastCode); !errors.Is(err, domain.ErrOTPExpired) {
		t.Fatalf("replayed code: got %v, want ErrOTPExpired", err)
	}
}

func TestVerifyOTP_ExistingUser(t *testing.T) {
	uc, sender, users := newTestAuth(t)
	ctx := context.Background()

	users.users["+15550100"] = &domain.User{ID: "u-existing", PhoneNumber: "+15550100", IsVerified: true}

	if err := uc.SendOTP(ctx, "+15550100", ""); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	result, err := uc.VerifyOTP(ctx, "+15550100", "", sender.lastCode)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if result.IsNewUser {
		t.Error("existing phone number must not report a new user")
	}
	if result.User.ID != "u-existing" {
		t.Errorf("user = %s, want u-existing", result.User.ID)
	}
}

func TestParseToken_Invalid(t *testing.T) {
	uc, _, _ := newTestAuth(t)

	if _, err := uc.ParseToken("not-a-token"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("got %v, want ErrUnauthorized", err)
	}

	other := NewAuthUseCase(newMemoryUserRepo(), newMemoryOTPStore(), &capturingSender{}, "other-secret", time.Hour)
	token, err := other.issueToken("mallory", time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("issuing token failed: %v", err)
	}
	if _, err := uc.ParseToken(token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("foreign-secret token: got %v, want ErrUnauthorized", err)
	}
}
