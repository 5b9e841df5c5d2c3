package dto

// PublishBookRequest 发布图书请求
// Price以"分"为单位传入，避免浮点金额
type PublishBookRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description" binding:"max=5000"`
	Price       int64  `json:"price" binding:"gte=0"`
	Stock       int    `json:"stock" binding:"gte=0"`
	ImageURL    string `json:"image_url" binding:"omitempty,url"`
}

// UpdateBookRequest 更新图书请求
// 指针字段区分"未提供"与"置为零值"
type UpdateBookRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=200"`
	Description *string `json:"description" binding:"omitempty,max=5000"`
	Price       *int64  `json:"price" binding:"omitempty,gte=0"`
	Stock       *int    `json:"stock" binding:"omitempty,gte=0"`
	ImageURL    *string `json:"image_url" binding:"omitempty,url"`
}
