package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/skubridge/backend/internal/application/catalog"
	"github.com/skubridge/backend/internal/domain/shared"
	"github.com/skubridge/backend/internal/interfaces/http/dto"
)

// EquivalenceHandler handles equivalence mapping API endpoints
type EquivalenceHandler struct {
	BaseHandler
	service *catalogapp.EquivalenceService
}

// NewEquivalenceHandler creates a new EquivalenceHandler
func NewEquivalenceHandler(service *catalogapp.EquivalenceService) *EquivalenceHandler {
	return &EquivalenceHandler{service: service}
}

// equivalenceListRequest carries list query parameters for mappings
type equivalenceListRequest struct {
	dto.ListRequest
	Channel      string `form:"channel" binding:"omitempty,oneof=storefront marketplace billing"`
	CanonicalSKU string `form:"canonical_sku"`
	Active       *bool  `form:"active"`
}

// setPriorityRequest updates a mapping's priority
type setPriorityRequest struct {
	Priority int `json:"priority" binding:"min=0"`
}

// Create registers a new channel-SKU mapping. Duplicate active
// mappings are allowed and reported back as warnings.
func (h *EquivalenceHandler) Create(c *gin.Context) {
	var req catalogapp.CreateEquivalenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// List returns a paginated mapping listing
func (h *EquivalenceHandler) List(c *gin.Context) {
	var req equivalenceListRequest
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
	if req.Channel != "" {
		filter.Filters["channel"] = req.Channel
	}
	if req.CanonicalSKU != "" {
		filter.Filters["canonical_sku"] = req.CanonicalSKU
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

// GetByID returns a single mapping by ID
func (h *EquivalenceHandler) GetByID(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid mapping ID")
		return
	}

	mapping, err := h.service.GetByID(c.Request.Context(), uuid.MustParse(req.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, mapping)
}

// SetPriority updates a mapping's priority used for tie-breaking
func (h *EquivalenceHandler) SetPriority(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid mapping ID")
		return
	}

	var req setPriorityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	mapping, err := h.service.SetPriority(c.Request.Context(), uuid.MustParse(idReq.ID), req.Priority)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, mapping)
}

// Deactivate disables a mapping without deleting its history
func (h *EquivalenceHandler) Deactivate(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid mapping ID")
		return
	}

	if err := h.service.Deactivate(c.Request.Context(), uuid.MustParse(req.ID)); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers mapping routes on the given group
func (h *EquivalenceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/catalog/equivalences")
	group.POST("", h.Create)
	group.GET("", h.List)
	group.GET("/:id", h.GetByID)
	group.PUT("/:id/priority", h.SetPriority)
	group.POST("/:id/deactivate", h.Deactivate)
}
