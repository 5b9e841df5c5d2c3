package book

import (
	"time"
)

// Book 图书实体（聚合根）
// 设计说明：
// 1. 价格使用int64存储"分"为单位（避免浮点数精度问题）
// 2. SellerID标识图书归属，所有写操作必须校验归属
// 3. 订单创建时seller_id从这里解析（卖家不冗余存储在购物车上）
type Book struct {
	ID          uint
	SellerID    uint   // 卖家用户ID
	Title       string // 书名
	Description string // 图书描述
	Price       int64  // 价格（单位：分）
	Stock       int    // 库存数量
	ImageURL    string // 封面图片URL
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewBook 创建新图书（工厂方法）
// 价格、库存的合法性由调用方（领域服务）先行校验
func NewBook(sellerID uint, title, description string, price int64, stock int, imageURL string) *Book {
	now := time.Now()
	return &Book{
		SellerID:    sellerID,
		Title:       title,
		Description: description,
		Price:       price,
		Stock:       stock,
		ImageURL:    imageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// ApplyPatch 应用部分更新
// PATCH语义：nil字段表示不修改
func (b *Book) ApplyPatch(p Patch) error {
	if p.Title != nil {
		if *p.Title == "" {
			return ErrInvalidTitle
		}
		b.Title = *p.Title
	}
	if p.Description != nil {
		b.Description = *p.Description
	}
	if p.Price != nil {
		if *p.Price < 0 {
			return ErrInvalidPrice
		}
		b.Price = *p.Price
	}
	if p.Stock != nil {
		if *p.Stock < 0 {
			return ErrInvalidStock
		}
		b.Stock = *p.Stock
	}
	if p.ImageURL != nil {
		b.ImageURL = *p.ImageURL
	}
	b.UpdatedAt = time.Now()
	return nil
}

// Patch 图书部分更新字段
type Patch struct {
	Title       *string
	Description *string
	Price       *int64
	Stock       *int
	ImageURL    *string
}

// IsOwnedBy 检查图书是否由指定卖家发布
func (b *Book) IsOwnedBy(sellerID uint) bool {
	return b.SellerID == sellerID
}
