package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"storespark/internal/core/auth"
	"storespark/internal/core/cache"
	"storespark/internal/domain"
	"storespark/internal/validate"
	"storespark/pkg/utils"
)

type AuthService struct {
	users domain.UserRepository
	jwter *auth.JWTer
	cache *cache.Cache
	log   *zap.Logger
}

func NewAuthService(users domain.UserRepository, jwter *auth.JWTer, c *cache.Cache, log *zap.Logger) *AuthService {
	return &AuthService{users: users, jwter: jwter, cache: c, log: log}
}

// Session 登录/注册成功后的返回：用户 + token + 角色落地页
type Session struct {
	User     domain.User `json:"user"`
	Token    string      `json:"token"`
	HomePath string      `json:"homePath"`
}

// Login 查不到用户和密码不对返回同一个错误，不暴露是哪个字段错了
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.users.FindByEmail(strings.TrimSpace(email))
	if err != nil {
		return nil, err
	}
	if u == nil || !utils.CheckPassword(password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return s.newSession(u)
}

type SignupInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Address  string `json:"address"`
}

// Signup 注册即登录；邮箱重复返回 domain.ErrDuplicateEmail
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*Session, error) {
	if err := validateUserFields(in.Name, in.Email, in.Password, in.Address); err != nil {
		return nil, err
	}
	u := &domain.User{
		ID:           utils.NewID(),
		Name:         strings.TrimSpace(in.Name),
		Email:        strings.TrimSpace(in.Email),
		Address:      in.Address,
		PasswordHash: utils.HashPassword(in.Password),
		Role:         domain.RoleUser, // 自助注册只能是普通用户
	}
	if err := s.users.Create(u); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, keyAdminStats)
	s.log.Info("user signed up", zap.String("uid", u.ID))
	return s.newSession(u)
}

type AddUserInput struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Address  string      `json:"address"`
	Role     domain.Role `json:"role"`
	StoreID  *string     `json:"storeId"`
}

// AddUser 管理员建号：角色任选，不影响调用者自己的会话
func (s *AuthService) AddUser(ctx context.Context, in AddUserInput) (*domain.User, error) {
	if err := validateUserFields(in.Name, in.Email, in.Password, in.Address); err != nil {
		return nil, err
	}
	if !in.Role.Valid() {
		return nil, invalid("role", "Invalid role.")
	}
	u := &domain.User{
		ID:           utils.NewID(),
		Name:         strings.TrimSpace(in.Name),
		Email:        strings.TrimSpace(in.Email),
		Address:      in.Address,
		PasswordHash: utils.HashPassword(in.Password),
		Role:         in.Role,
	}
	if in.Role == domain.RoleOwner {
		u.StoreID = in.StoreID
	}
	if err := s.users.Create(u); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, keyAdminStats)
	s.log.Info("user added by admin", zap.String("uid", u.ID), zap.String("role", string(u.Role)))
	return u, nil
}

// UpdatePassword 旧密码不符时不改库，返回 ErrWrongOldPassword
func (s *AuthService) UpdatePassword(ctx context.Context, userID, oldPw, newPw string) error {
	u, err := s.users.FindByID(userID)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrNotFound
	}
	if !utils.CheckPassword(oldPw, u.PasswordHash) {
		return ErrWrongOldPassword
	}
	if msg := validate.Password(newPw); msg != "" {
		return invalid("password", msg)
	}
	return s.users.UpdatePassword(userID, utils.HashPassword(newPw))
}

func (s *AuthService) GetUser(id string) (*domain.User, error) {
	u, err := s.users.FindByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return u, nil
}

func (s *AuthService) newSession(u *domain.User) (*Session, error) {
	tok, err := s.jwter.Issue(u.ID, u.Role)
	if err != nil {
		return nil, err
	}
	return &Session{User: *u, Token: tok, HomePath: u.Role.HomePath()}, nil
}

func validateUserFields(name, email, password, address string) error {
	if msg := validate.Name(name); msg != "" {
		return invalid("name", msg)
	}
	if msg := validate.Email(email); msg != "" {
		return invalid("email", msg)
	}
	if msg := validate.Password(password); msg != "" {
		return invalid("password", msg)
	}
	if msg := validate.Address(address); msg != "" {
		return invalid("address", msg)
	}
	return nil
}
