package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/sakif/todo-api/internal/apperror"
	"github.com/sakif/todo-api/internal/auth"
	"github.com/sakif/todo-api/internal/model"
	"github.com/sakif/todo-api/internal/repository"
)

// fakeUserRepo is an in-memory repository.UserRepository. It mirrors the real
// store's contract: unique emails map to apperror.Conflict, missing rows to
// apperror.ErrNotFound.
type fakeUserRepo struct {
	users  map[int64]*model.User
	nextID int64
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*model.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return apperror.Conflict("a user with this email already exists")
		}
	}
	f.nextID++
	user.ID = f.nextID
	user.CreatedAt = time.Now().UTC()
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperror.NotFound("user", 0)
}

func (f *fakeUserRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.users[id]; !ok {
		return apperror.NotFound("user", id)
	}
	delete(f.users, id)
	return nil
}

// newTestAuthService builds an AuthService backed by the fake repo, a real
// token service, and bcrypt at MinCost so the suite stays fast.
func newTestAuthService(t *testing.T) (*AuthService, *fakeUserRepo, *auth.TokenService) {
	t.Helper()

	repo := newFakeUserRepo()
	tokens, err := auth.NewTokenService("test-secret-that-is-long-enough")
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	passwords := auth.NewPasswordServiceWithCost(bcrypt.MinCost)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewAuthService(repo, tokens, passwords, logger), repo, tokens
}

func validRegisterRequest() model.RegisterRequest {
	return model.RegisterRequest{
		Email:           "alice@example.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
		FirstName:       "Alice",
		LastName:        "Smith",
	}
}

// ============================================================
// REGISTER
// ============================================================

func TestAuthService_Register(t *testing.T) {
	svc, _, tokens := newTestAuthService(t)

	result, err := svc.Register(context.Background(), validRegisterRequest())
	if err != nil {
		t.Fatalf("Register error = %v", err)
	}

	if result.Token == "" {
		t.Error("expected a token in the result")
	}
	if result.Email != "alice@example.com" {
		t.Errorf("Email = %q, want %q", result.Email, "alice@example.com")
	}

	// The token must round-trip to the new user's ID.
	userID, err := tokens.Validate(result.Token)
	if err != nil {
		t.Fatalf("issued token failed validation: %v", err)
	}
	if userID != 1 {
		t.Errorf("token subject = %d, want 1", userID)
	}

	// ExpiresAt is the instant embedded in the token — about a week out.
	until := time.Until(result.ExpiresAt)
	if until < auth.TokenTTL-time.Minute || until > auth.TokenTTL+time.Minute {
		t.Errorf("ExpiresAt is %v away, want ~%v", until, auth.TokenTTL)
	}
}

func TestAuthService_Register_NormalizesEmail(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)

	req := validRegisterRequest()
	req.Email = "  Alice@Example.COM "

	result, err := svc.Register(context.Background(), req)
	if err != nil {
		t.Fatalf("Register error = %v", err)
	}
	if result.Email != "alice@example.com" {
		t.Errorf("Email = %q, want normalized %q", result.Email, "alice@example.com")
	}
	if _, err := repo.GetByEmail(context.Background(), "alice@example.com"); err != nil {
		t.Errorf("stored email not normalized: %v", err)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, validRegisterRequest()); err != nil {
		t.Fatalf("first Register error = %v", err)
	}

	// Different casing, same account.
	req := validRegisterRequest()
	req.Email = "ALICE@example.com"
	_, err := svc.Register(ctx, req)
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("expected apperror.ErrConflict, got %v", err)
	}
}

func TestAuthService_Register_InvalidFields(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	req := validRegisterRequest()
	req.Email = "not-an-email"
	req.Password = "short"
	req.ConfirmPassword = "short"

	_, err := svc.Register(context.Background(), req)
	if !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("expected apperror.ErrValidation, got %v", err)
	}

	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperror.AppError, got %T", err)
	}
	if len(appErr.Fields["email"]) == 0 || len(appErr.Fields["password"]) == 0 {
		t.Errorf("expected field errors for email and password, got %v", appErr.Fields)
	}
}

// ============================================================
// LOGIN
// ============================================================

func TestAuthService_Login(t *testing.T) {
	svc, _, tokens := newTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, validRegisterRequest()); err != nil {
		t.Fatalf("Register error = %v", err)
	}

	result, err := svc.Login(ctx, model.LoginRequest{
		Email:    "alice@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Login error = %v", err)
	}
	if _, err := tokens.Validate(result.Token); err != nil {
		t.Errorf("login token failed validation: %v", err)
	}
}

func TestAuthService_Login_FailuresAreIndistinguishable(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, validRegisterRequest()); err != nil {
		t.Fatalf("Register error = %v", err)
	}

	// Wrong password on a real account vs. an account that doesn't exist:
	// same sentinel, same message. Anything else tells attackers which
	// emails are registered.
	_, wrongPass := svc.Login(ctx, model.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong-password",
	})
	_, noSuchUser := svc.Login(ctx, model.LoginRequest{
		Email:    "nobody@example.com",
		Password: "secret123",
	})

	if !errors.Is(wrongPass, apperror.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPass)
	}
	if !errors.Is(noSuchUser, apperror.ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", noSuchUser)
	}

	var a, b *apperror.AppError
	if !errors.As(wrongPass, &a) || !errors.As(noSuchUser, &b) {
		t.Fatal("expected *apperror.AppError from both failures")
	}
	if a.Message != b.Message {
		t.Errorf("messages differ: %q vs %q", a.Message, b.Message)
	}
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, validRegisterRequest()); err != nil {
		t.Fatalf("Register error = %v", err)
	}
	repo.users[1].IsActive = false

	_, err := svc.Login(ctx, model.LoginRequest{
		Email:    "alice@example.com",
		Password: "secret123",
	})
	if !errors.Is(err, apperror.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for inactive user, got %v", err)
	}
}

// ============================================================
// CURRENT USER
// ============================================================

func TestAuthService_GetUserByID(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, validRegisterRequest()); err != nil {
		t.Fatalf("Register error = %v", err)
	}

	user, err := svc.GetUserByID(ctx, 1)
	if err != nil {
		t.Fatalf("GetUserByID error = %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Errorf("Email = %q, want %q", user.Email, "alice@example.com")
	}
}

func TestAuthService_GetUserByID_Missing(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	_, err := svc.GetUserByID(context.Background(), 42)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("expected apperror.ErrNotFound, got %v", err)
	}
}
