package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookmart/internal/domain/user"
	apperrors "github.com/xiebiao/bookmart/pkg/errors"
	"github.com/xiebiao/bookmart/pkg/jwt"
)

// fakeUserRepo 内存版用户仓储
type fakeUserRepo struct {
	users  map[string]*user.User // email → user
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*user.User), nextID: 1}
}

func (f *fakeUserRepo) Create(_ context.Context, u *user.User) error {
	if _, ok := f.users[u.Email]; ok {
		return apperrors.ErrEmailDuplicate
	}
	u.ID = f.nextID
	f.nextID++
	f.users[u.Email] = u
	return nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uint) (*user.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func newRegisterFixture() (*fakeUserRepo, *jwt.Manager, *RegisterUseCase) {
	repo := newFakeUserRepo()
	manager := jwt.NewManager("test-secret", time.Hour)
	return repo, manager, NewRegisterUseCase(user.NewService(repo), manager)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("注册卖家并签发Token", func(t *testing.T) {
		repo, manager, uc := newRegisterFixture()

		resp, err := uc.Execute(ctx, RegisterRequest{
			Name:     "卖家小王",
			Email:    "seller@test.com",
			Password: "Test12345",
			Role:     "seller",
		})
		require.NoError(t, err)
		assert.NotZero(t, resp.User.ID)
		assert.Equal(t, "seller", resp.User.Role, "请求中的角色字符串应落到领域角色")

		// Token载荷应携带同样的角色
		claims, err := manager.ParseToken(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, "seller", claims.Role)
		assert.Equal(t, resp.User.ID, claims.UserID)

		saved, _ := repo.FindByEmail(ctx, "seller@test.com")
		assert.Equal(t, user.RoleSeller, saved.Role)
	})

	t.Run("缺省角色为买家", func(t *testing.T) {
		_, _, uc := newRegisterFixture()

		resp, err := uc.Execute(ctx, RegisterRequest{
			Name:     "买家小李",
			Email:    "buyer@test.com",
			Password: "Test12345",
		})
		require.NoError(t, err)
		assert.Equal(t, "buyer", resp.User.Role)
	})

	t.Run("非法角色被拒", func(t *testing.T) {
		_, _, uc := newRegisterFixture()

		_, err := uc.Execute(ctx, RegisterRequest{
			Name:     "越权用户",
			Email:    "admin@test.com",
			Password: "Test12345",
			Role:     "admin",
		})
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeInvalidParams, apperrors.GetAppError(err).Code)
	})

	t.Run("重复邮箱", func(t *testing.T) {
		_, _, uc := newRegisterFixture()

		req := RegisterRequest{Name: "用户一", Email: "dup@test.com", Password: "Test12345"}
		_, err := uc.Execute(ctx, req)
		require.NoError(t, err)

		req.Name = "用户二"
		_, err = uc.Execute(ctx, req)
		assert.ErrorIs(t, err, apperrors.ErrEmailDuplicate)
	})
}
