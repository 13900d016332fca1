package handlers

import (
	"net/http"

	"ifc-reuse-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// ReuseHandler records reuse decisions
type ReuseHandler struct {
	reuseService service.ReuseServiceInterface
}

// NewReuseHandler creates a new reuse handler
func NewReuseHandler(reuseService service.ReuseServiceInterface) *ReuseHandler {
	return &ReuseHandler{
		reuseService: reuseService,
	}
}

// MarkReusable handles POST /mark-reusable
// @Summary Mark components reusable
// @Description Set Pset_Reuse.Reusable on the selected elements of an uploaded file, write updated_<filename> and update the catalog.
// @Description The project is found by project_id, or else by the newest upload with the given filename.
// @Tags reuse
// @Accept json
// @Produce json
// @Param body body service.MarkReusableRequest true "Selection"
// @Success 200 {object} service.MarkReusableResponse "Flags written"
// @Failure 400 {object} ErrorResponse "No GUIDs selected or invalid request"
// @Failure 403 {object} ErrorResponse "Not the project owner"
// @Failure 404 {object} ErrorResponse "Project or source file not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /api/v1/mark-reusable [post]
func (h *ReuseHandler) MarkReusable(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req service.MarkReusableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := h.reuseService.MarkReusable(c.Request.Context(), actor, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
