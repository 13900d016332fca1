package handlers

import (
	"io"
	"mime"
	"net/http"
	"strconv"

	"ifc-reuse-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProjectHandler handles HTTP requests for project operations
type ProjectHandler struct {
	projectService service.ProjectServiceInterface
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projectService service.ProjectServiceInterface) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// ListProjects handles GET /projects
// @Summary List projects
// @Description List uploaded projects with their components. mine=true restricts the list to the caller's projects.
// @Tags projects
// @Produce json
// @Param mine query bool false "Only the caller's projects"
// @Success 200 {array} service.ProjectResponse "Projects"
// @Failure 400 {object} ErrorResponse "Invalid query"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /api/v1/projects [get]
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	mine := false
	if raw := c.Query("mine"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid mine parameter"})
			return
		}
		mine = parsed
	}

	projects, err := h.projectService.List(actor, mine)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, projects)
}

// GetProject handles GET /projects/:id
// @Summary Get project by ID
// @Description Get a project with its components
// @Tags projects
// @Produce json
// @Param id path string true "Project ID (UUID)"
// @Success 200 {object} service.ProjectResponse "Project"
// @Failure 400 {object} ErrorResponse "Invalid project ID"
// @Failure 404 {object} ErrorResponse "Project not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /api/v1/projects/{id} [get]
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid project ID"})
		return
	}

	project, err := h.projectService.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// DownloadFile handles GET /projects/:id/files/:name
// @Summary Download a project file
// @Description Stream the uploaded IFC file or its updated_ copy carrying the reuse flags. Only the owner or an admin may download.
// @Tags projects
// @Produce application/octet-stream
// @Param id path string true "Project ID (UUID)"
// @Param name path string true "File name, e.g. house.ifc or updated_house.ifc"
// @Success 200 {file} file "IFC file"
// @Failure 400 {object} ErrorResponse "Invalid project ID"
// @Failure 403 {object} ErrorResponse "Not the project owner"
// @Failure 404 {object} ErrorResponse "Project or file not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /api/v1/projects/{id}/files/{name} [get]
func (h *ProjectHandler) DownloadFile(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid project ID"})
		return
	}

	name := c.Param("name")
	rc, err := h.projectService.OpenFile(c.Request.Context(), actor, id, name)
	if err != nil {
		respondError(c, err)
		return
	}
	defer rc.Close()

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	c.Header("Content-Type", "application/x-step")
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, rc)
}

// DeleteProject handles DELETE /projects/:id
// @Summary Delete project
// @Description Delete a project, its components and stored files. Only the owner or an admin may delete.
// @Tags projects
// @Param id path string true "Project ID (UUID)"
// @Success 204 "Project deleted"
// @Failure 400 {object} ErrorResponse "Invalid project ID"
// @Failure 403 {object} ErrorResponse "Not the project owner"
// @Failure 404 {object} ErrorResponse "Project not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /api/v1/projects/{id} [delete]
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid project ID"})
		return
	}

	if err := h.projectService.Delete(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteAllProjects handles DELETE /projects
// @Summary Delete all projects
// @Description Delete every component, then every project, then all stored files. Admin only.
// @Tags projects
// @Produce json
// @Success 200 {object} service.DeleteAllResponse "Everything deleted"
// @Failure 401 {object} ErrorResponse "Authentication required"
// @Failure 403 {object} ErrorResponse "Administrator role required"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /api/v1/projects [delete]
func (h *ProjectHandler) DeleteAllProjects(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	resp, err := h.projectService.DeleteAll(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
