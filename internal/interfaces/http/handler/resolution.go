package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	resolutionapp "github.com/skubridge/backend/internal/application/resolution"
)

// ResolutionHandler handles identity resolution API endpoints
type ResolutionHandler struct {
	BaseHandler
	service *resolutionapp.ResolutionService
}

// NewResolutionHandler creates a new ResolutionHandler
func NewResolutionHandler(service *resolutionapp.ResolutionService) *ResolutionHandler {
	return &ResolutionHandler{service: service}
}

// Resolve resolves a single channel record against the catalog
func (h *ResolutionHandler) Resolve(c *gin.Context) {
	var req resolutionapp.ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Resolve(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ResolveBatch resolves a batch of channel records and returns
// per-record results plus the aggregate coverage report
func (h *ResolutionHandler) ResolveBatch(c *gin.Context) {
	var req resolutionapp.BatchResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.ResolveBatch(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ReviewQueue returns recent results flagged for manual review
func (h *ResolutionHandler) ReviewQueue(c *gin.Context) {
	limit := 100
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			h.BadRequest(c, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	h.Success(c, h.service.ReviewQueueItems(limit))
}

// InvalidateReferenceData drops cached reference data so the next
// resolution call sees catalog changes
func (h *ResolutionHandler) InvalidateReferenceData(c *gin.Context) {
	if err := h.service.InvalidateReferenceData(c.Request.Context()); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers resolution routes on the given group
func (h *ResolutionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/resolution")
	group.POST("/resolve", h.Resolve)
	group.POST("/batch", h.ResolveBatch)
	group.GET("/review-queue", h.ReviewQueue)
	group.POST("/reference/invalidate", h.InvalidateReferenceData)
}
