package cart

import (
	"context"
	"errors"
)

// Service 购物车领域服务接口
type Service interface {
	// AddItem 加入购物车
	// 同一买家重复加入同一本书时覆盖数量（最后一次写入生效）
	AddItem(ctx context.Context, buyerID, bookID uint, quantity int) (*Line, error)

	// List 查询买家购物车（含图书当前信息）
	List(ctx context.Context, buyerID uint) ([]*Detail, error)

	// UpdateQuantity 修改条目数量
	// 业务规则：只能改自己购物车里的条目
	UpdateQuantity(ctx context.Context, buyerID, lineID uint, quantity int) (*Line, error)

	// RemoveItem 移除条目
	// 业务规则：只能移除自己购物车里的条目；条目不存在视为成功
	RemoveItem(ctx context.Context, buyerID, lineID uint) error

	// Clear 清空买家购物车，空购物车清空视为成功
	Clear(ctx context.Context, buyerID uint) error
}

type service struct {
	repo Repository
}

// NewService 创建购物车领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) AddItem(ctx context.Context, buyerID, bookID uint, quantity int) (*Line, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	line := &Line{
		BuyerID:  buyerID,
		BookID:   bookID,
		Quantity: quantity,
	}
	if err := s.repo.Upsert(ctx, line); err != nil {
		return nil, err
	}
	return line, nil
}

func (s *service) List(ctx context.Context, buyerID uint) ([]*Detail, error) {
	return s.repo.FindByBuyer(ctx, buyerID)
}

func (s *service) UpdateQuantity(ctx context.Context, buyerID, lineID uint, quantity int) (*Line, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	line, err := s.repo.FindByID(ctx, lineID)
	if err != nil {
		return nil, err
	}
	// 越权访问按不存在处理，不泄露他人购物车信息
	if line.BuyerID != buyerID {
		return nil, ErrLineNotFound
	}
	return s.repo.UpdateQuantity(ctx, lineID, quantity)
}

func (s *service) RemoveItem(ctx context.Context, buyerID, lineID uint) error {
	line, err := s.repo.FindByID(ctx, lineID)
	if err != nil {
		// 删除不存在的条目是幂等操作
		if errors.Is(err, ErrLineNotFound) {
			return nil
		}
		return err
	}
	if line.BuyerID != buyerID {
		return ErrLineNotFound
	}
	return s.repo.Remove(ctx, lineID)
}

func (s *service) Clear(ctx context.Context, buyerID uint) error {
	return s.repo.Clear(ctx, buyerID)
}
