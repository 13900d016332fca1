package handlers

import (
	"net/http"

	"ifc-reuse-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// UploadHandler accepts IFC uploads
type UploadHandler struct {
	ingestService service.IngestServiceInterface
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(ingestService service.IngestServiceInterface) *UploadHandler {
	return &UploadHandler{
		ingestService: ingestService,
	}
}

// Upload handles POST /api/v1/uploads
// @Summary Upload an IFC model
// @Description Store an IFC file, create a project and convert every wall, window, slab, beam, column, door and space to a mesh.
// @Description Elements whose conversion fails are listed in failed_components; the others are still catalogued.
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "IFC file"
// @Param projectName formData string true "Project name"
// @Param location formData string false "Project location"
// @Param description formData string false "Project description"
// @Success 201 {object} service.UploadResponse "Upload processed"
// @Failure 400 {object} ErrorResponse "Missing file, wrong extension or unreadable IFC"
// @Failure 401 {object} ErrorResponse "Authentication required"
// @Failure 413 {object} ErrorResponse "File too large"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /api/v1/uploads [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		if isBodyTooLarge(err) {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer file.Close()

	summary, err := h.ingestService.Upload(c.Request.Context(), actor, &service.UploadRequest{
		Filename:    fileHeader.Filename,
		ProjectName: c.PostForm("projectName"),
		Location:    c.PostForm("location"),
		Description: c.PostForm("description"),
		Size:        fileHeader.Size,
		Body:        file,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, service.UploadResponse{
		Message: "IFC file uploaded and processed",
		Data:    *summary,
	})
}
