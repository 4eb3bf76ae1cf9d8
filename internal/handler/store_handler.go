package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/websopen/web-valencio/internal/model"
	"github.com/websopen/web-valencio/internal/response"
	"github.com/websopen/web-valencio/internal/service"
	"github.com/websopen/web-valencio/internal/validator"
)

// StoreHandler serves the persisted store aggregate and the resolved catalog.
type StoreHandler struct {
	storeService *service.StoreService
}

// NewStoreHandler creates a new StoreHandler.
func NewStoreHandler(storeService *service.StoreService) *StoreHandler {
	return &StoreHandler{storeService: storeService}
}

// GetData godoc
// GET /api/store/data
// Returns the full aggregate; defaults fill anything missing. Never fails.
func (h *StoreHandler) GetData(c *gin.Context) {
	c.JSON(http.StatusOK, h.storeService.Load(c.Request.Context()))
}

// SaveSettings godoc
// POST /api/store/settings
// Admin-gated batch save: the posted partial aggregate replaces the
// persisted one in a single write.
func (h *StoreHandler) SaveSettings(c *gin.Context) {
	var patch model.StoreDataPatch
	if fields := validator.Bind(c, &patch); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.storeService.Save(c.Request.Context(), &patch); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrPersistence)
		return
	}

	c.JSON(http.StatusOK, model.SaveResponse{Success: true})
}

// GetCatalog godoc
// GET /api/store/catalog
// Returns the catalog with effective prices and in-stock-first ordering.
func (h *StoreHandler) GetCatalog(c *gin.Context) {
	catalog, err := h.storeService.Catalog(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	c.JSON(http.StatusOK, catalog)
}
