package user

import (
	"context"
	"regexp"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/bookmart/pkg/errors"
)

// Service 用户领域服务
// 封装注册/登录的业务规则（密码加密、凭证校验）
type Service interface {
	// Register 用户注册
	// 业务规则：姓名/邮箱/密码必填，邮箱格式合法，角色合法，邮箱唯一
	Register(ctx context.Context, name, email, password string, role Role) (*User, error)

	// Authenticate 凭证校验（登录）
	// 邮箱不存在与密码错误返回同一个错误，避免账号探测
	Authenticate(ctx context.Context, email, password string) (*User, error)
}

type service struct {
	repo Repository
}

// NewService 创建用户领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Register 用户注册
func (s *service) Register(ctx context.Context, name, email, password string, role Role) (*User, error) {
	if name == "" || email == "" || password == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "姓名、邮箱、密码不能为空")
	}
	if !isValidEmail(email) {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "邮箱格式不正确")
	}
	if role == "" {
		role = RoleBuyer
	}
	if !role.Valid() {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "角色只能是buyer或seller")
	}

	// bcrypt自动加盐，cost取默认值
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(err, "密码加密失败")
	}

	u := NewUser(name, email, string(hashed), role)
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err // Repository已转换为业务错误（如邮箱重复）
	}
	return u, nil
}

// Authenticate 凭证校验
func (s *service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		// 不区分"用户不存在"与"密码错误"
		return nil, apperrors.ErrBadPassword
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.ErrBadPassword
	}
	return u, nil
}

// isValidEmail 邮箱格式校验
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func isValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}
