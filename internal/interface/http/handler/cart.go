package handler

import (
	"github.com/gin-gonic/gin"

	appcart "github.com/xiebiao/bookmart/internal/application/cart"
	"github.com/xiebiao/bookmart/internal/interface/http/dto"
	"github.com/xiebiao/bookmart/internal/interface/http/middleware"
	"github.com/xiebiao/bookmart/pkg/response"
)

// CartHandler 购物车HTTP处理器
type CartHandler struct {
	addUseCase    *appcart.AddItemUseCase
	listUseCase   *appcart.ListCartUseCase
	updateUseCase *appcart.UpdateQuantityUseCase
	removeUseCase *appcart.RemoveItemUseCase
	clearUseCase  *appcart.ClearCartUseCase
}

// NewCartHandler 创建购物车处理器
func NewCartHandler(
	addUseCase *appcart.AddItemUseCase,
	listUseCase *appcart.ListCartUseCase,
	updateUseCase *appcart.UpdateQuantityUseCase,
	removeUseCase *appcart.RemoveItemUseCase,
	clearUseCase *appcart.ClearCartUseCase,
) *CartHandler {
	return &CartHandler{
		addUseCase:    addUseCase,
		listUseCase:   listUseCase,
		updateUseCase: updateUseCase,
		removeUseCase: removeUseCase,
		clearUseCase:  clearUseCase,
	}
}

// Add 加入购物车
// @Summary      加入购物车
// @Description  同一本书重复加入时覆盖数量
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.AddCartItemRequest true "图书与数量"
// @Success      201 {object} map[string]appcart.ItemInfo
// @Router       /api/cart [post]
func (h *CartHandler) Add(c *gin.Context) {
	var req dto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	item, err := h.addUseCase.Execute(c.Request.Context(), appcart.AddItemRequest{
		BuyerID:  middleware.MustGetUserID(c),
		BookID:   req.BookID,
		Quantity: req.Quantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"item": item})
}

// List 查询购物车
// @Summary      查询我的购物车
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} map[string][]appcart.ItemDetail
// @Router       /api/cart [get]
func (h *CartHandler) List(c *gin.Context) {
	items, err := h.listUseCase.Execute(c.Request.Context(), middleware.MustGetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"items": items})
}

// UpdateQuantity 修改数量
// @Summary      修改购物车条目数量
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "条目ID"
// @Param        request body dto.UpdateCartItemRequest true "新数量"
// @Success      200 {object} map[string]appcart.ItemInfo
// @Failure      404 {object} response.ErrorBody "条目不存在"
// @Router       /api/cart/{id} [patch]
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	item, err := h.updateUseCase.Execute(c.Request.Context(), appcart.UpdateQuantityRequest{
		BuyerID:  middleware.MustGetUserID(c),
		LineID:   id,
		Quantity: req.Quantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"item": item})
}

// Remove 移除条目
// @Summary      移除购物车条目
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "条目ID"
// @Success      200 {object} map[string]bool
// @Router       /api/cart/{id} [delete]
func (h *CartHandler) Remove(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.removeUseCase.Execute(c.Request.Context(), middleware.MustGetUserID(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"success": true})
}

// Clear 清空购物车
// @Summary      清空购物车
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} map[string]bool
// @Router       /api/cart [delete]
func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.clearUseCase.Execute(c.Request.Context(), middleware.MustGetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"success": true})
}
