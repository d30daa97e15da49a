package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kblucke1/jolene-therapy-app-adnmfw/internal/domain"
)

const testJWTSecret = "test-secret"

func newAuthFixture() (*fakeUserRepo, AuthService) {
	userRepo := newFakeUserRepo()
	return userRepo, NewAuthService(userRepo, testJWTSecret, time.Hour)
}

func TestRegisterAndLogin(t *testing.T) {
	_, svc := newAuthFixture()
	ctx := context.Background()

	user, err := svc.Register(ctx, "Jolene", "jolene@example.com", "secret123", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.PasswordHash != "" {
		t.Errorf("password hash leaked in registration response")
	}
	if user.Role != domain.RoleAdmin {
		t.Errorf("role = %q, want admin", user.Role)
	}

	token, loggedIn, err := svc.Login(ctx, "jolene@example.com", "secret123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" {
		t.Fatalf("empty token")
	}
	if loggedIn.ID != user.ID {
		t.Errorf("login returned a different user")
	}

	// The token carries the user ID and role claims the middleware reads.
	claims := &jwtClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(_ *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token failed to parse: %v", err)
	}
	if claims.UserID != user.ID.Hex() || claims.Role != domain.RoleAdmin {
		t.Errorf("claims = %+v", claims)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	_, svc := newAuthFixture()
	ctx := context.Background()

	if _, err := svc.Register(ctx, "A", "same@example.com", "pw123456", domain.RoleClient); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := svc.Register(ctx, "B", "same@example.com", "pw123456", domain.RoleClient); !errors.Is(err, ErrUserAlreadyExists) {
		t.Errorf("err = %v, want ErrUserAlreadyExists", err)
	}
}

func TestLoginFailures(t *testing.T) {
	_, svc := newAuthFixture()
	ctx := context.Background()

	if _, err := svc.Register(ctx, "Jolene", "jolene@example.com", "secret123", domain.RoleAdmin); err != nil {
		t.Fatalf("Register: %v", err)
	}

	// Unknown email and wrong password both collapse to the same error so a
	// caller cannot probe which emails exist.
	if _, _, err := svc.Login(ctx, "nobody@example.com", "secret123"); !errors.Is(err, ErrAuthenticationFailed) {
		t.Errorf("unknown email: err = %v, want ErrAuthenticationFailed", err)
	}
	if _, _, err := svc.Login(ctx, "jolene@example.com", "wrong"); !errors.Is(err, ErrAuthenticationFailed) {
		t.Errorf("wrong password: err = %v, want ErrAuthenticationFailed", err)
	}
}

func TestGetUserSessionRestore(t *testing.T) {
	_, svc := newAuthFixture()
	ctx := context.Background()

	user, err := svc.Register(ctx, "Jolene", "jolene@example.com", "secret123", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	restored, err := svc.GetUser(ctx, user.ID.Hex())
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if restored.Email != "jolene@example.com" || restored.PasswordHash != "" {
		t.Errorf("restored = %+v", restored)
	}

	if _, err := svc.GetUser(ctx, "not-a-hex-id"); err == nil {
		t.Errorf("malformed ID should error")
	}
	if _, err := svc.GetUser(ctx, primitive.NewObjectID().Hex()); err == nil {
		t.Errorf("unknown ID should error")
	}
}
