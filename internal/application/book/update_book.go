package book

import (
	"context"

	"github.com/xiebiao/bookmart/internal/domain/book"
)

// UpdateBookUseCase 更新图书用例
type UpdateBookUseCase struct {
	bookService book.Service
}

// NewUpdateBookUseCase 创建更新图书用例
func NewUpdateBookUseCase(bookService book.Service) *UpdateBookUseCase {
	return &UpdateBookUseCase{bookService: bookService}
}

// UpdateBookRequest 更新图书请求
// 指针字段区分"未提供"与"置为零值"，实现部分更新
type UpdateBookRequest struct {
	BookID      uint
	SellerID    uint // 从JWT中提取
	Title       *string
	Description *string
	Price       *int64
	Stock       *int
	ImageURL    *string
}

// Execute 执行更新
func (uc *UpdateBookUseCase) Execute(ctx context.Context, req UpdateBookRequest) (*BookInfo, error) {
	patch := book.Patch{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
	}
	b, err := uc.bookService.Update(ctx, req.BookID, req.SellerID, patch)
	if err != nil {
		return nil, err
	}
	return toBookInfo(b), nil
}
