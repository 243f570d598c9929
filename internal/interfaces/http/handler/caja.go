package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/skubridge/backend/internal/application/catalog"
	"github.com/skubridge/backend/internal/domain/shared"
	"github.com/skubridge/backend/internal/interfaces/http/dto"
)

// CajaHandler handles caja code API endpoints
type CajaHandler struct {
	BaseHandler
	service *catalogapp.CajaService
}

// NewCajaHandler creates a new CajaHandler
func NewCajaHandler(service *catalogapp.CajaService) *CajaHandler {
	return &CajaHandler{service: service}
}

// cajaListRequest carries list query parameters for caja codes
type cajaListRequest struct {
	dto.ListRequest
	BaseSKU string `form:"base_sku"`
	Active  *bool  `form:"active"`
}

// updateDescriptionRequest updates a caja code's description
type updateDescriptionRequest struct {
	Description string `json:"description" binding:"required,max=200"`
}

// Create registers a new caja code
func (h *CajaHandler) Create(c *gin.Context) {
	var req catalogapp.CreateCajaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	code, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, code)
}

// List returns a paginated caja code listing
func (h *CajaHandler) List(c *gin.Context) {
	var req cajaListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.Normalize()

	filter := shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
		Search:   req.Search,
		Filters:  map[string]interface{}{},
	}
	if req.BaseSKU != "" {
		filter.Filters["base_sku"] = req.BaseSKU
	}
	if req.Active != nil {
		filter.Filters["active"] = *req.Active
	}

	page, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetByID returns a single caja code by ID
func (h *CajaHandler) GetByID(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid caja code ID")
		return
	}

	code, err := h.service.GetByID(c.Request.Context(), uuid.MustParse(req.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, code)
}

// UpdateDescription updates the description used by fuzzy matching
func (h *CajaHandler) UpdateDescription(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid caja code ID")
		return
	}

	var req updateDescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	code, err := h.service.UpdateDescription(c.Request.Context(), uuid.MustParse(idReq.ID), req.Description)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, code)
}

// Deactivate disables a caja code
func (h *CajaHandler) Deactivate(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid caja code ID")
		return
	}

	if err := h.service.Deactivate(c.Request.Context(), uuid.MustParse(req.ID)); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers caja code routes on the given group
func (h *CajaHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/catalog/caja-codes")
	group.POST("", h.Create)
	group.GET("", h.List)
	group.GET("/:id", h.GetByID)
	group.PUT("/:id/description", h.UpdateDescription)
	group.POST("/:id/deactivate", h.Deactivate)
}
