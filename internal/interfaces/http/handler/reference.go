package handler

import (
	catalogapp "github.com/facturacion/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
)

// ReferenceHandler serves the read-only category and VAT rate catalogs
type ReferenceHandler struct {
	BaseHandler
	referenceService *catalogapp.ReferenceService
}

// NewReferenceHandler creates a new ReferenceHandler
func NewReferenceHandler(referenceService *catalogapp.ReferenceService) *ReferenceHandler {
	return &ReferenceHandler{
		referenceService: referenceService,
	}
}

// ListCategories godoc
// @Summary      List product categories
// @Tags         reference
// @Produce      json
// @Success      200 {object} dto.Response{data=[]catalogapp.CategoryResponse}
// @Router       /catalog/categories [get]
func (h *ReferenceHandler) ListCategories(c *gin.Context) {
	categories, err := h.referenceService.ListCategories(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, categories)
}

// ListVATRates godoc
// @Summary      List VAT rates
// @Tags         reference
// @Produce      json
// @Success      200 {object} dto.Response{data=[]catalogapp.VATRateResponse}
// @Router       /catalog/vat-rates [get]
func (h *ReferenceHandler) ListVATRates(c *gin.Context) {
	rates, err := h.referenceService.ListVATRates(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rates)
}
