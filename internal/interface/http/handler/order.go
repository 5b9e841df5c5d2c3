package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	apporder "github.com/xiebiao/bookmart/internal/application/order"
	"github.com/xiebiao/bookmart/internal/interface/http/dto"
	"github.com/xiebiao/bookmart/internal/interface/http/middleware"
	"github.com/xiebiao/bookmart/pkg/metrics"
	"github.com/xiebiao/bookmart/pkg/response"
)

// OrderHandler 订单HTTP处理器
type OrderHandler struct {
	checkoutUseCase *apporder.CheckoutUseCase
	listUseCase     *apporder.ListOrdersUseCase
	statusUseCase   *apporder.UpdateStatusUseCase
}

// NewOrderHandler 创建订单处理器
func NewOrderHandler(
	checkoutUseCase *apporder.CheckoutUseCase,
	listUseCase *apporder.ListOrdersUseCase,
	statusUseCase *apporder.UpdateStatusUseCase,
) *OrderHandler {
	return &OrderHandler{
		checkoutUseCase: checkoutUseCase,
		listUseCase:     listUseCase,
		statusUseCase:   statusUseCase,
	}
}

// Checkout 结算购物车
// @Summary      结算购物车
// @Description  购物车每个条目生成一个订单，成功后清空购物车
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Success      201 {object} map[string][]apporder.OrderInfo
// @Failure      400 {object} response.ErrorBody "购物车为空或含已下架图书"
// @Router       /api/orders [post]
func (h *OrderHandler) Checkout(c *gin.Context) {
	start := time.Now()

	orders, err := h.checkoutUseCase.Execute(c.Request.Context(), middleware.MustGetUserID(c))

	metrics.CheckoutDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.CheckoutsTotal.WithLabelValues("failure").Inc()
		response.Error(c, err)
		return
	}
	metrics.CheckoutsTotal.WithLabelValues("success").Inc()

	response.Created(c, gin.H{"orders": orders})
}

// ListMine 买家订单列表
// @Summary      查询我买到的订单
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} map[string][]apporder.OrderInfo
// @Router       /api/orders [get]
func (h *OrderHandler) ListMine(c *gin.Context) {
	orders, err := h.listUseCase.ListByBuyer(c.Request.Context(), middleware.MustGetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"orders": orders})
}

// ListSeller 卖家订单列表
// @Summary      查询我要发货的订单
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} map[string][]apporder.OrderInfo
// @Failure      403 {object} response.ErrorBody "仅限卖家"
// @Router       /api/orders/seller [get]
func (h *OrderHandler) ListSeller(c *gin.Context) {
	orders, err := h.listUseCase.ListBySeller(c.Request.Context(), middleware.MustGetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"orders": orders})
}

// UpdateStatus 更新订单状态
// @Summary      更新订单状态（仅订单的卖家）
// @Description  合法转换：pending→shipped/cancelled，shipped→delivered/cancelled
// @Tags         订单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Param        request body dto.UpdateOrderStatusRequest true "目标状态"
// @Success      200 {object} map[string]apporder.OrderInfo
// @Failure      400 {object} response.ErrorBody "状态机不允许此转换"
// @Router       /api/orders/{id} [patch]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	order, err := h.statusUseCase.Execute(c.Request.Context(), apporder.UpdateStatusRequest{
		OrderID:  id,
		SellerID: middleware.MustGetUserID(c),
		Status:   req.Status,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"order": order})
}
