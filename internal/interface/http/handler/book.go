package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/bookmart/internal/application/book"
	"github.com/xiebiao/bookmart/internal/interface/http/dto"
	"github.com/xiebiao/bookmart/internal/interface/http/middleware"
	"github.com/xiebiao/bookmart/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	publishUseCase *appbook.PublishBookUseCase
	listUseCase    *appbook.ListBooksUseCase
	updateUseCase  *appbook.UpdateBookUseCase
	deleteUseCase  *appbook.DeleteBookUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	publishUseCase *appbook.PublishBookUseCase,
	listUseCase *appbook.ListBooksUseCase,
	updateUseCase *appbook.UpdateBookUseCase,
	deleteUseCase *appbook.DeleteBookUseCase,
) *BookHandler {
	return &BookHandler{
		publishUseCase: publishUseCase,
		listUseCase:    listUseCase,
		updateUseCase:  updateUseCase,
		deleteUseCase:  deleteUseCase,
	}
}

// List 图书列表
// @Summary      查询全部图书
// @Tags         图书
// @Produce      json
// @Success      200 {object} map[string][]appbook.BookInfo
// @Router       /api/books [get]
func (h *BookHandler) List(c *gin.Context) {
	books, err := h.listUseCase.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"books": books})
}

// Get 图书详情
// @Summary      查询单本图书
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} map[string]appbook.BookInfo
// @Failure      404 {object} response.ErrorBody "图书不存在"
// @Router       /api/books/{id} [get]
func (h *BookHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	book, err := h.listUseCase.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"book": book})
}

// ListMine 当前卖家发布的图书
// @Summary      查询我发布的图书
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} map[string][]appbook.BookInfo
// @Router       /api/books/my [get]
func (h *BookHandler) ListMine(c *gin.Context) {
	books, err := h.listUseCase.ListMine(c.Request.Context(), middleware.MustGetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"books": books})
}

// Publish 发布图书
// @Summary      发布图书
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.PublishBookRequest true "图书信息"
// @Success      201 {object} map[string]appbook.BookInfo
// @Failure      403 {object} response.ErrorBody "仅限卖家"
// @Router       /api/books [post]
func (h *BookHandler) Publish(c *gin.Context) {
	var req dto.PublishBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	book, err := h.publishUseCase.Execute(c.Request.Context(), appbook.PublishBookRequest{
		SellerID:    middleware.MustGetUserID(c),
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"book": book})
}

// Update 更新图书
// @Summary      更新图书（仅发布者）
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Param        request body dto.UpdateBookRequest true "要修改的字段"
// @Success      200 {object} map[string]appbook.BookInfo
// @Failure      403 {object} response.ErrorBody "不是发布者"
// @Router       /api/books/{id} [patch]
func (h *BookHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	book, err := h.updateUseCase.Execute(c.Request.Context(), appbook.UpdateBookRequest{
		BookID:      id,
		SellerID:    middleware.MustGetUserID(c),
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"book": book})
}

// Delete 删除图书
// @Summary      删除图书（仅发布者）
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      200 {object} map[string]bool
// @Failure      403 {object} response.ErrorBody "不是发布者"
// @Router       /api/books/{id} [delete]
func (h *BookHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.deleteUseCase.Execute(c.Request.Context(), id, middleware.MustGetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"success": true})
}

// parseIDParam 解析路径中的:id参数，非法时直接写出400响应
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		response.BadRequest(c, "无效的ID")
		return 0, false
	}
	return uint(id), true
}
