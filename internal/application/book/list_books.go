package book

import (
	"context"

	"github.com/xiebiao/bookmart/internal/domain/book"
)

// ListBooksUseCase 图书查询用例
// 公开列表、详情与卖家自己的列表共用一个用例，都是纯读路径
type ListBooksUseCase struct {
	bookService book.Service
}

// NewListBooksUseCase 创建图书查询用例
func NewListBooksUseCase(bookService book.Service) *ListBooksUseCase {
	return &ListBooksUseCase{bookService: bookService}
}

// ListAll 查询全部图书（无需登录）
func (uc *ListBooksUseCase) ListAll(ctx context.Context) ([]*BookInfo, error) {
	books, err := uc.bookService.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return toBookInfos(books), nil
}

// GetByID 查询单本图书详情（无需登录）
func (uc *ListBooksUseCase) GetByID(ctx context.Context, id uint) (*BookInfo, error) {
	b, err := uc.bookService.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toBookInfo(b), nil
}

// ListMine 查询当前卖家发布的图书
func (uc *ListBooksUseCase) ListMine(ctx context.Context, sellerID uint) ([]*BookInfo, error) {
	books, err := uc.bookService.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	return toBookInfos(books), nil
}
