package book

import (
	"context"
	"time"

	"github.com/xiebiao/bookmart/internal/domain/book"
)

// PublishBookUseCase 发布图书用例
type PublishBookUseCase struct {
	bookService book.Service
}

// NewPublishBookUseCase 创建发布图书用例
func NewPublishBookUseCase(bookService book.Service) *PublishBookUseCase {
	return &PublishBookUseCase{bookService: bookService}
}

// PublishBookRequest 发布图书请求
type PublishBookRequest struct {
	SellerID    uint // 从JWT中提取，不信任请求体
	Title       string
	Description string
	Price       int64 // 单价（分）
	Stock       int
	ImageURL    string
}

// Execute 执行发布
func (uc *PublishBookUseCase) Execute(ctx context.Context, req PublishBookRequest) (*BookInfo, error) {
	b, err := uc.bookService.Publish(ctx, req.SellerID, req.Title, req.Description, req.Price, req.Stock, req.ImageURL)
	if err != nil {
		return nil, err
	}
	return toBookInfo(b), nil
}

// =========================================
// 应用层DTO
// =========================================

// BookInfo 图书信息
type BookInfo struct {
	ID          uint   `json:"id"`
	SellerID    uint   `json:"seller_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       int64  `json:"price"` // 单价（分）
	Stock       int    `json:"stock"`
	ImageURL    string `json:"image_url"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func toBookInfo(b *book.Book) *BookInfo {
	return &BookInfo{
		ID:          b.ID,
		SellerID:    b.SellerID,
		Title:       b.Title,
		Description: b.Description,
		Price:       b.Price,
		Stock:       b.Stock,
		ImageURL:    b.ImageURL,
		CreatedAt:   b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   b.UpdatedAt.Format(time.RFC3339),
	}
}

func toBookInfos(books []*book.Book) []*BookInfo {
	out := make([]*BookInfo, 0, len(books))
	for _, b := range books {
		out = append(out, toBookInfo(b))
	}
	return out
}
