package user

import (
	"context"

	"github.com/xiebiao/bookmart/internal/domain/user"
	"github.com/xiebiao/bookmart/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookmart/pkg/jwt"
)

// LoginUseCase 用户登录用例
type LoginUseCase struct {
	userService user.Service
	jwtManager  *jwt.Manager
}

// NewLoginUseCase 创建登录用例
func NewLoginUseCase(userService user.Service, jwtManager *jwt.Manager) *LoginUseCase {
	return &LoginUseCase{
		userService: userService,
		jwtManager:  jwtManager,
	}
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string
	Password string
}

// Execute 执行登录
func (uc *LoginUseCase) Execute(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	// 邮箱不存在与密码错误返回同一个错误，避免账号探测
	u, err := uc.userService.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	token, err := uc.jwtManager.GenerateToken(u.ID, u.Email, u.Name, string(u.Role))
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		Token: token,
		User:  toUserInfo(u),
	}, nil
}

// LogoutUseCase 用户登出用例
// Token是无状态的，登出通过黑名单让其立即失效
type LogoutUseCase struct {
	sessionStore *redis.SessionStore
	jwtManager   *jwt.Manager
}

// NewLogoutUseCase 创建登出用例
func NewLogoutUseCase(sessionStore *redis.SessionStore, jwtManager *jwt.Manager) *LogoutUseCase {
	return &LogoutUseCase{
		sessionStore: sessionStore,
		jwtManager:   jwtManager,
	}
}

// Execute 执行登出
// 黑名单TTL与Token有效期一致，Token自然过期后记录随之清理
func (uc *LogoutUseCase) Execute(ctx context.Context, token string) error {
	return uc.sessionStore.AddToBlacklist(ctx, token, uc.jwtManager.Expire())
}
