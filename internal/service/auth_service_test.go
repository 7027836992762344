package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"storespark/internal/core/auth"
	"storespark/internal/domain"
	"storespark/internal/repo"
)

func newAuthFixture(t *testing.T) (*AuthService, repo.Set) {
	t.Helper()
	repos := repo.NewMemorySet()
	if err := repo.Seed(repos); err != nil {
		t.Fatalf("seed: %v", err)
	}
	jwter := &auth.JWTer{Secret: []byte("test-secret"), Issuer: "test", TTL: time.Hour}
	svc := NewAuthService(repos.Users, jwter, nil, zap.NewNop())
	return svc, repos
}

func TestLoginAdminScenario(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	sess, err := svc.Login(ctx, "admin@example.com", "AdminPass1!")
	if err != nil {
		t.Fatalf("admin login failed: %v", err)
	}
	if sess.User.Role != domain.RoleAdmin {
		t.Fatalf("expected admin role, got %s", sess.User.Role)
	}
	if sess.Token == "" {
		t.Fatalf("expected a token")
	}
	if sess.HomePath != "/admin/dashboard" {
		t.Fatalf("unexpected home path %s", sess.HomePath)
	}
}

func TestLoginWrongPasswordIsGeneric(t *testing.T) {
	svc, _ := newAuthFixture(t)

	sess, err := svc.Login(context.Background(), "admin@example.com", "WrongPass1!")
	if sess != nil {
		t.Fatalf("expected nil session")
	}
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if err.Error() != "invalid email or password" {
		t.Fatalf("error must not reveal which field failed: %q", err.Error())
	}

	// 未知邮箱返回同一个错误
	if _, err := svc.Login(context.Background(), "nobody@example.com", "AdminPass1!"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestSignupAutoLoginAndDefaultRole(t *testing.T) {
	svc, _ := newAuthFixture(t)

	sess, err := svc.Signup(context.Background(), SignupInput{
		Name:     "Example Signup User WithLongName",
		Email:    "new@example.com",
		Password: "NewUserPass1!",
		Address:  "1 New Street, New Town",
	})
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if sess.User.Role != domain.RoleUser {
		t.Fatalf("signup must default to normal user, got %s", sess.User.Role)
	}
	if sess.Token == "" {
		t.Fatalf("signup must auto-login")
	}
}

func TestSignupDuplicateEmailLeavesUsersUnchanged(t *testing.T) {
	svc, repos := newAuthFixture(t)

	before, _ := repos.Users.Count()
	_, err := svc.Signup(context.Background(), SignupInput{
		Name:     "Another Person With A Long Name",
		Email:    "admin@example.com", // 已存在
		Password: "SomePass1!",
		Address:  "2 Other Street, Other Town",
	})
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
	after, _ := repos.Users.Count()
	if before != after {
		t.Fatalf("user count changed on duplicate signup: %d -> %d", before, after)
	}
}

func TestSignupValidatesFields(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Signup(context.Background(), SignupInput{
		Name:     "Too Short",
		Email:    "x@example.com",
		Password: "GoodPass1!",
		Address:  "3 Somewhere",
	})
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "name" {
		t.Fatalf("expected name validation error, got %v", err)
	}
}

func TestAddUserByAdmin(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	storeID := "store2"
	u, err := svc.AddUser(ctx, AddUserInput{
		Name:     "Newly Added Store Owner Person",
		Email:    "owner2@store.com",
		Password: "OwnerPass2!",
		Address:  "202 Side Avenue, Normal Town",
		Role:     domain.RoleOwner,
		StoreID:  &storeID,
	})
	if err != nil {
		t.Fatalf("add user: %v", err)
	}
	if u.Role != domain.RoleOwner || u.StoreID == nil || *u.StoreID != storeID {
		t.Fatalf("owner not created as requested: %+v", u)
	}

	// 重复邮箱
	if _, err := svc.AddUser(ctx, AddUserInput{
		Name:     "Duplicate Email Account Holder",
		Email:    "owner2@store.com",
		Password: "OwnerPass2!",
		Address:  "somewhere",
		Role:     domain.RoleUser,
	}); !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}

	// 非法角色
	if _, err := svc.AddUser(ctx, AddUserInput{
		Name:     "Bogus Role Account HolderName",
		Email:    "bogus@example.com",
		Password: "BogusPass1!",
		Address:  "somewhere",
		Role:     "superadmin",
	}); err == nil {
		t.Fatalf("invalid role accepted")
	}
}

func TestUpdatePasswordWrongOldLeavesHashUnchanged(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	err := svc.UpdatePassword(ctx, "user1", "NotTheOldOne1!", "FreshPass1!")
	if !errors.Is(err, ErrWrongOldPassword) {
		t.Fatalf("expected ErrWrongOldPassword, got %v", err)
	}
	// 旧密码仍可登录
	if _, err := svc.Login(ctx, "user@example.com", "UserPass1!"); err != nil {
		t.Fatalf("credential changed despite failed update: %v", err)
	}
}

func TestUpdatePasswordSuccess(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	if err := svc.UpdatePassword(ctx, "user1", "UserPass1!", "FreshPass1!"); err != nil {
		t.Fatalf("update password: %v", err)
	}
	if _, err := svc.Login(ctx, "user@example.com", "FreshPass1!"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
	if _, err := svc.Login(ctx, "user@example.com", "UserPass1!"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password still accepted")
	}
}

func TestUpdatePasswordValidatesNew(t *testing.T) {
	svc, _ := newAuthFixture(t)

	err := svc.UpdatePassword(context.Background(), "user1", "UserPass1!", "weak")
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "password" {
		t.Fatalf("expected password validation error, got %v", err)
	}
}
