package book

import (
	"context"

	"github.com/xiebiao/bookmart/internal/domain/book"
)

// DeleteBookUseCase 删除图书用例
type DeleteBookUseCase struct {
	bookService book.Service
}

// NewDeleteBookUseCase 创建删除图书用例
func NewDeleteBookUseCase(bookService book.Service) *DeleteBookUseCase {
	return &DeleteBookUseCase{bookService: bookService}
}

// Execute 执行删除
// 不清理购物车/订单里对该书的引用，残留引用由结算流程报出
func (uc *DeleteBookUseCase) Execute(ctx context.Context, bookID, sellerID uint) error {
	return uc.bookService.Delete(ctx, bookID, sellerID)
}
