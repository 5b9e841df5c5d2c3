package dto

// UpdateOrderStatusRequest 更新订单状态请求
// 合法取值由domain层状态机校验
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
