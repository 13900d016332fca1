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

// ComponentHandler serves the component catalog and component meshes
type ComponentHandler struct {
	catalogService service.CatalogServiceInterface
	meshService    service.MeshServiceInterface
}

// NewComponentHandler creates a new component handler
func NewComponentHandler(catalogService service.CatalogServiceInterface, meshService service.MeshServiceInterface) *ComponentHandler {
	return &ComponentHandler{
		catalogService: catalogService,
		meshService:    meshService,
	}
}

// ListComponents handles GET /components
// @Summary Search the component catalog
// @Description Filter components; every supplied filter must match. material and location match substrings.
// @Tags components
// @Produce json
// @Param category query string false "Category, e.g. Architectural"
// @Param subcategory query string false "Subcategory, e.g. Wall"
// @Param material query string false "Material substring"
// @Param location query string false "Location substring"
// @Param reusable query bool false "Reuse flag"
// @Param project_id query string false "Project ID (UUID)"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 100, max 500)"
// @Success 200 {object} service.ComponentListResponse "Components"
// @Failure 400 {object} ErrorResponse "Invalid query"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /api/v1/components [get]
func (h *ComponentHandler) ListComponents(c *gin.Context) {
	q := service.ComponentQuery{
		Category:    c.Query("category"),
		Subcategory: c.Query("subcategory"),
		Material:    c.Query("material"),
		Location:    c.Query("location"),
	}

	if raw := c.Query("reusable"); raw != "" {
		reusable, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid reusable parameter"})
			return
		}
		q.Reusable = &reusable
	}
	if raw := c.Query("project_id"); raw != "" {
		projectID, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid project_id parameter"})
			return
		}
		q.ProjectID = &projectID
	}

	var err error
	if q.Page, err = intQuery(c, "page"); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid page parameter"})
		return
	}
	if q.PageSize, err = intQuery(c, "page_size"); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid page_size parameter"})
		return
	}

	resp, err := h.catalogService.Search(&q)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetComponent handles GET /components/:id
// @Summary Get component by ID
// @Tags components
// @Produce json
// @Param id path string true "Component ID (UUID)"
// @Success 200 {object} service.ComponentResponse "Component"
// @Failure 400 {object} ErrorResponse "Invalid component ID"
// @Failure 404 {object} ErrorResponse "Component not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /api/v1/components/{id} [get]
func (h *ComponentHandler) GetComponent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid component ID"})
		return
	}

	component, err := h.catalogService.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, component)
}

// SetReusable handles PATCH /components/:id/reuse
// @Summary Set the reuse flag of a component
// @Description Updates only the catalog row; the stored IFC file is changed through mark-reusable
// @Tags components
// @Accept json
// @Produce json
// @Param id path string true "Component ID (UUID)"
// @Param body body service.SetReusableRequest true "Reuse flag"
// @Success 200 {object} service.ComponentResponse "Updated component"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 403 {object} ErrorResponse "Not the project owner"
// @Failure 404 {object} ErrorResponse "Component not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /api/v1/components/{id}/reuse [patch]
func (h *ComponentHandler) SetReusable(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid component ID"})
		return
	}

	var req service.SetReusableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	component, err := h.catalogService.SetReusable(actor, id, *req.Reusable)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, component)
}

// GetMesh handles GET /components/:id/mesh
// @Summary Download a component mesh
// @Description Stream the mesh of the newest component whose GlobalId starts with id
// @Tags components
// @Produce model/gltf-binary
// @Produce model/obj
// @Param id path string true "IFC GlobalId or GlobalId prefix"
// @Success 200 {file} file "Mesh"
// @Failure 400 {object} ErrorResponse "Invalid GlobalId"
// @Failure 404 {object} ErrorResponse "Mesh not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/components/{id}/mesh [get]
func (h *ComponentHandler) GetMesh(c *gin.Context) {
	mesh, err := h.meshService.Open(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	defer mesh.Reader.Close()

	c.Header("Content-Disposition", mime.FormatMediaType("inline", map[string]string{"filename": mesh.Name}))
	c.Header("Content-Type", mesh.ContentType)
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, mesh.Reader)
}

func intQuery(c *gin.Context, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
