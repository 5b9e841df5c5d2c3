package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// 集成测试辅助工具
// 依赖已启动的服务（make run）与真实的MySQL/Redis，
// 服务未启动时整个测试文件自动跳过。

const (
	// BaseURL API基础URL
	BaseURL = "http://localhost:8080/api"
	// PingURL 健康检查URL
	PingURL = "http://localhost:8080/ping"
	// Timeout HTTP请求超时时间
	Timeout = 10 * time.Second
)

// emailSeq 保证同一秒内注册的测试邮箱也不重复
var emailSeq uint64

// RequireServer 检查服务是否可用，不可用时跳过测试
func RequireServer(t *testing.T) {
	t.Helper()

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(PingURL)
	if err != nil {
		t.Skipf("服务未启动，跳过集成测试: %v", err)
	}
	resp.Body.Close()
}

// Result HTTP响应结果
type Result struct {
	Status int
	Body   json.RawMessage
}

// Decode 将响应体解析到目标结构
func (r *Result) Decode(t *testing.T, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.Body, v), "解析响应失败: %s", string(r.Body))
}

// ErrorBody 错误响应结构
type ErrorBody struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// DecodeError 将响应体解析为错误结构
func (r *Result) DecodeError(t *testing.T) ErrorBody {
	t.Helper()
	var e ErrorBody
	r.Decode(t, &e)
	return e
}

// UserData 用户信息
type UserData struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// AuthData 注册/登录响应
type AuthData struct {
	Token string   `json:"token"`
	User  UserData `json:"user"`
}

// BookData 图书信息
type BookData struct {
	ID          uint   `json:"id"`
	SellerID    uint   `json:"seller_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Stock       int    `json:"stock"`
	ImageURL    string `json:"image_url"`
}

// ItemData 购物车条目
type ItemData struct {
	ID          uint   `json:"id"`
	BuyerID     uint   `json:"buyer_id"`
	BookID      uint   `json:"book_id"`
	Quantity    int    `json:"quantity"`
	Title       string `json:"title"`
	UnitPrice   int64  `json:"unit_price"`
	Subtotal    int64  `json:"subtotal"`
	BookMissing bool   `json:"book_missing"`
}

// OrderData 订单信息
type OrderData struct {
	ID         uint   `json:"id"`
	BuyerID    uint   `json:"buyer_id"`
	SellerID   uint   `json:"seller_id"`
	BookID     uint   `json:"book_id"`
	Quantity   int    `json:"quantity"`
	TotalPrice int64  `json:"total_price"`
	Status     string `json:"status"`
}

// DoJSON 发送HTTP请求并返回状态码与响应体
func DoJSON(t *testing.T, method, url string, data interface{}, token string) *Result {
	t.Helper()

	var body io.Reader
	if data != nil {
		jsonData, err := json.Marshal(data)
		require.NoError(t, err, "JSON序列化失败")
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err, "创建HTTP请求失败")

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败")
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")

	return &Result{Status: resp.StatusCode, Body: raw}
}

// PostJSON 发送POST请求
func PostJSON(t *testing.T, url string, data interface{}, token string) *Result {
	t.Helper()
	return DoJSON(t, http.MethodPost, url, data, token)
}

// GetJSON 发送GET请求
func GetJSON(t *testing.T, url string, token string) *Result {
	t.Helper()
	return DoJSON(t, http.MethodGet, url, nil, token)
}

// PatchJSON 发送PATCH请求
func PatchJSON(t *testing.T, url string, data interface{}, token string) *Result {
	t.Helper()
	return DoJSON(t, http.MethodPatch, url, data, token)
}

// DeleteJSON 发送DELETE请求
func DeleteJSON(t *testing.T, url string, token string) *Result {
	t.Helper()
	return DoJSON(t, http.MethodDelete, url, nil, token)
}

// GenerateTestEmail 生成唯一的测试邮箱
func GenerateTestEmail(prefix string) string {
	seq := atomic.AddUint64(&emailSeq, 1)
	return fmt.Sprintf("%s_%d_%d@test.com", prefix, time.Now().UnixNano(), seq)
}

// RegisterTestUser 注册测试用户并返回邮箱与Token
func RegisterTestUser(t *testing.T, name, role string) (email string, token string) {
	t.Helper()

	email = GenerateTestEmail(name)
	resp := PostJSON(t, BaseURL+"/auth/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": "Test12345",
		"role":     role,
	}, "")
	require.Equal(t, http.StatusCreated, resp.Status, "注册失败: %s", string(resp.Body))

	var auth AuthData
	resp.Decode(t, &auth)
	require.NotEmpty(t, auth.Token, "注册应返回Token")

	return email, auth.Token
}

// PublishTestBook 上架测试图书并返回图书ID
func PublishTestBook(t *testing.T, sellerToken, title string, price int64, stock int) uint {
	t.Helper()

	resp := PostJSON(t, BaseURL+"/books", map[string]interface{}{
		"title":       title,
		"description": "集成测试用图书",
		"price":       price,
		"stock":       stock,
	}, sellerToken)
	require.Equal(t, http.StatusCreated, resp.Status, "图书上架失败: %s", string(resp.Body))

	var data struct {
		Book BookData `json:"book"`
	}
	resp.Decode(t, &data)
	require.NotZero(t, data.Book.ID, "图书ID应大于0")

	return data.Book.ID
}

// AddCartItem 加入购物车并返回条目ID
func AddCartItem(t *testing.T, buyerToken string, bookID uint, quantity int) uint {
	t.Helper()

	resp := PostJSON(t, BaseURL+"/cart", map[string]interface{}{
		"book_id":  bookID,
		"quantity": quantity,
	}, buyerToken)
	require.Equal(t, http.StatusCreated, resp.Status, "加入购物车失败: %s", string(resp.Body))

	var data struct {
		Item ItemData `json:"item"`
	}
	resp.Decode(t, &data)
	require.NotZero(t, data.Item.ID, "条目ID应大于0")

	return data.Item.ID
}
