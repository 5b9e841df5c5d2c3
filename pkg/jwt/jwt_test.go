package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/bookmart/pkg/errors"
)

// TestManager_RoundTrip 测试签发与解析
func TestManager_RoundTrip(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	token, err := m.GenerateToken(42, "seller@example.com", "老王书屋", "seller")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.ParseToken(token)
	require.NoError(t, err)

	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "seller@example.com", claims.Email)
	assert.Equal(t, "老王书屋", claims.Name)
	assert.Equal(t, "seller", claims.Role)
}

// TestManager_WrongSecret 测试密钥不匹配
func TestManager_WrongSecret(t *testing.T) {
	m1 := NewManager("secret-one", time.Hour)
	m2 := NewManager("secret-two", time.Hour)

	token, err := m1.GenerateToken(1, "buyer@example.com", "小明", "buyer")
	require.NoError(t, err)

	_, err = m2.ParseToken(token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

// TestManager_Expired 测试过期Token
func TestManager_Expired(t *testing.T) {
	m := NewManager("test-secret", -time.Minute) // 签发即过期

	token, err := m.GenerateToken(1, "buyer@example.com", "小明", "buyer")
	require.NoError(t, err)

	_, err = m.ParseToken(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

// TestManager_Garbage 测试非法Token串
func TestManager_Garbage(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	_, err := m.ParseToken("not.a.token")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}
