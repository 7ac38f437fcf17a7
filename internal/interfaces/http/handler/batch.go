package handler

import (
	inventoryapp "github.com/facturacion/backend/internal/application/inventory"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BatchHandler handles purchase batch API endpoints
type BatchHandler struct {
	BaseHandler
	batchService *inventoryapp.BatchService
}

// NewBatchHandler creates a new BatchHandler
func NewBatchHandler(batchService *inventoryapp.BatchService) *BatchHandler {
	return &BatchHandler{
		batchService: batchService,
	}
}

// Create godoc
// @Summary      Register a purchase batch
// @Description  Registers a new batch. When its list price differs from the
// @Description  product's other batches the request fails with PRICE_VARIANCE
// @Description  unless force_price_update is set, which propagates the price.
// @Tags         batches
// @Accept       json
// @Produce      json
// @Param        request body inventoryapp.CreateBatchRequest true "Batch creation request"
// @Success      201 {object} dto.Response{data=inventoryapp.BatchResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /inventory/batches [post]
func (h *BatchHandler) Create(c *gin.Context) {
	var req inventoryapp.CreateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	batch, err := h.batchService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, batch)
}

// GetByID godoc
// @Summary      Get a batch
// @Tags         batches
// @Produce      json
// @Param        id path string true "Batch ID"
// @Success      200 {object} dto.Response{data=inventoryapp.BatchResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /inventory/batches/{id} [get]
func (h *BatchHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid batch ID")
		return
	}

	batch, err := h.batchService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, batch)
}

// Update godoc
// @Summary      Update a batch
// @Tags         batches
// @Accept       json
// @Produce      json
// @Param        id path string true "Batch ID"
// @Param        request body inventoryapp.UpdateBatchRequest true "Batch update request"
// @Success      200 {object} dto.Response{data=inventoryapp.BatchResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /inventory/batches/{id} [put]
func (h *BatchHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid batch ID")
		return
	}

	var req inventoryapp.UpdateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	batch, err := h.batchService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, batch)
}

// Delete godoc
// @Summary      Delete a batch
// @Description  Only batches with zero available quantity can be deleted.
// @Tags         batches
// @Param        id path string true "Batch ID"
// @Success      204 "No Content"
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /inventory/batches/{id} [delete]
func (h *BatchHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid batch ID")
		return
	}

	if err := h.batchService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// List godoc
// @Summary      List batches
// @Tags         batches
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} dto.Response{data=[]inventoryapp.BatchResponse}
// @Router       /inventory/batches [get]
func (h *BatchHandler) List(c *gin.Context) {
	var filter inventoryapp.BatchListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	batches, total, err := h.batchService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	h.SuccessWithMeta(c, batches, total, page, pageSize)
}

// ListByProduct godoc
// @Summary      List a product's batches
// @Tags         batches
// @Produce      json
// @Param        id path string true "Product ID"
// @Success      200 {object} dto.Response{data=[]inventoryapp.BatchResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /inventory/products/{id}/batches [get]
func (h *BatchHandler) ListByProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	batches, err := h.batchService.ListByProduct(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, batches)
}

// GetPrioritized godoc
// @Summary      Get the batch the next sale should consume
// @Description  First-expires-first-out over the product's batches with stock.
// @Tags         batches
// @Produce      json
// @Param        id path string true "Product ID"
// @Success      200 {object} dto.Response{data=inventoryapp.BatchResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /inventory/products/{id}/prioritized-batch [get]
func (h *BatchHandler) GetPrioritized(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	batch, err := h.batchService.GetPrioritized(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, batch)
}
