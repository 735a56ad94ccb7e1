package blueprints

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"stackfast/internal/catalog"
	"stackfast/internal/shared/server/middleware"
	"stackfast/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the blueprints service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches catalog and blueprint routes to the router group. guard is
// applied to the blueprint routes only.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, guard ...gin.HandlerFunc) {
	rg.GET("/tools", h.listTools)
	bp := rg.Group("/blueprints", guard...)
	bp.POST("", h.createBlueprint)
	bp.POST("/enhanced", h.createEnhancedBlueprint)
}

func (h *Handler) listTools(c *gin.Context) {
	tools, err := h.Svc.ListTools(c.Request.Context(), c.Query("category"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	respond.OK(c, ToolListResponse{
		Items:      tools,
		Categories: catalog.Categories(tools),
		Total:      len(tools),
	})
}

func (h *Handler) createBlueprint(c *gin.Context) {
	req, ok := bindRequest(c)
	if !ok {
		return
	}
	out, err := h.Svc.Generate(c.Request.Context(), req.Input())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.Set(middleware.BlueprintModeKey, out.Mode)
	respond.OK(c, out)
}

func (h *Handler) createEnhancedBlueprint(c *gin.Context) {
	req, ok := bindRequest(c)
	if !ok {
		return
	}
	out, err := h.Svc.GenerateEnhanced(c.Request.Context(), req.Input())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.Set(middleware.BlueprintModeKey, out.Mode)
	respond.OK(c, out)
}

func bindRequest(c *gin.Context) (BlueprintRequest, bool) {
	var req BlueprintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeInvalidJSON, "request body must be valid JSON", nil)
		return BlueprintRequest{}, false
	}
	return req, true
}

func (h *Handler) writeError(c *gin.Context, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "invalid blueprint request", verr.Fields)
	case errors.Is(err, ErrCatalogUnavailable):
		respond.Error(c, http.StatusServiceUnavailable, ErrorCodeCatalogUnavailable, "tool catalog is unavailable", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "failed to generate blueprint", nil)
	}
}
