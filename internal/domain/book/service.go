package book

import (
	"context"
)

// Service 图书领域服务接口
// 封装卖家归属校验与基本业务规则，读路径直接透传Repository
type Service interface {
	// Publish 发布图书（上架）
	// 业务规则：书名必填、价格>=0、库存>=0
	Publish(ctx context.Context, sellerID uint, title, description string, price int64, stock int, imageURL string) (*Book, error)

	// GetByID 获取图书详情（公开）
	GetByID(ctx context.Context, id uint) (*Book, error)

	// ListAll 查询全部图书（公开）
	ListAll(ctx context.Context) ([]*Book, error)

	// ListBySeller 查询某卖家的全部图书
	ListBySeller(ctx context.Context, sellerID uint) ([]*Book, error)

	// Update 部分更新图书
	// 业务规则：只有发布者本人可以修改
	Update(ctx context.Context, id, sellerID uint, patch Patch) (*Book, error)

	// Delete 删除图书
	// 业务规则：只有发布者本人可以删除；删除不级联清理购物车/订单引用
	Delete(ctx context.Context, id, sellerID uint) error
}

type service struct {
	repo Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Publish(ctx context.Context, sellerID uint, title, description string, price int64, stock int, imageURL string) (*Book, error) {
	if title == "" {
		return nil, ErrInvalidTitle
	}
	if price < 0 {
		return nil, ErrInvalidPrice
	}
	if stock < 0 {
		return nil, ErrInvalidStock
	}

	b := NewBook(sellerID, title, description, price, stock, imageURL)
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) ListAll(ctx context.Context) ([]*Book, error) {
	return s.repo.FindAll(ctx)
}

func (s *service) ListBySeller(ctx context.Context, sellerID uint) ([]*Book, error) {
	return s.repo.FindBySeller(ctx, sellerID)
}

func (s *service) Update(ctx context.Context, id, sellerID uint, patch Patch) (*Book, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !b.IsOwnedBy(sellerID) {
		return nil, ErrNotOwner
	}
	if err := b.ApplyPatch(patch); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) Delete(ctx context.Context, id, sellerID uint) error {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !b.IsOwnedBy(sellerID) {
		return ErrNotOwner
	}
	return s.repo.Delete(ctx, id)
}
