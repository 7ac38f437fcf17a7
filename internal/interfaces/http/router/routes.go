package router

import (
	"github.com/facturacion/backend/internal/interfaces/http/handler"
	"github.com/gin-gonic/gin"
)

// CatalogRoutes registers the product catalog endpoints
type CatalogRoutes struct {
	products  *handler.ProductHandler
	reference *handler.ReferenceHandler
}

// NewCatalogRoutes creates the catalog route registrar
func NewCatalogRoutes(products *handler.ProductHandler, reference *handler.ReferenceHandler) *CatalogRoutes {
	return &CatalogRoutes{products: products, reference: reference}
}

// RegisterRoutes registers catalog routes on the API group
func (r *CatalogRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	catalog := rg.Group("/catalog")

	products := catalog.Group("/products")
	products.POST("", r.products.Create)
	products.GET("", r.products.List)
	products.GET("/search", r.products.Search)
	products.GET("/code/:code", r.products.GetByCode)
	products.GET("/:id", r.products.GetByID)
	products.PUT("/:id", r.products.Update)
	products.DELETE("/:id", r.products.Deactivate)
	products.POST("/:id/reactivate", r.products.Reactivate)

	catalog.GET("/categories", r.reference.ListCategories)
	catalog.GET("/vat-rates", r.reference.ListVATRates)
}

// InventoryRoutes registers the batch endpoints
type InventoryRoutes struct {
	batches *handler.BatchHandler
}

// NewInventoryRoutes creates the inventory route registrar
func NewInventoryRoutes(batches *handler.BatchHandler) *InventoryRoutes {
	return &InventoryRoutes{batches: batches}
}

// RegisterRoutes registers inventory routes on the API group
func (r *InventoryRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	inventory := rg.Group("/inventory")

	batches := inventory.Group("/batches")
	batches.POST("", r.batches.Create)
	batches.GET("", r.batches.List)
	batches.GET("/:id", r.batches.GetByID)
	batches.PUT("/:id", r.batches.Update)
	batches.DELETE("/:id", r.batches.Delete)

	inventory.GET("/products/:id/batches", r.batches.ListByProduct)
	inventory.GET("/products/:id/prioritized-batch", r.batches.GetPrioritized)
}

// SystemRoutes registers the system endpoints
type SystemRoutes struct {
	system *handler.SystemHandler
}

// NewSystemRoutes creates the system route registrar
func NewSystemRoutes(system *handler.SystemHandler) *SystemRoutes {
	return &SystemRoutes{system: system}
}

// RegisterRoutes registers system routes on the API group
func (r *SystemRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	system := rg.Group("/system")
	system.GET("/ping", r.system.Ping)
	system.GET("/info", r.system.GetSystemInfo)
}
