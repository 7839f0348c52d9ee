package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"gearshare/internal/domain"
	"gearshare/internal/pkg/response"
	"gearshare/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes mounts the read-only catalog surface.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/equipment", h.ListEquipment)
	rg.GET("/equipment/:id", h.GetEquipment)
	rg.GET("/categories", h.ListCategories)
}

// RegisterProtectedRoutes mounts the owner operations behind auth.
func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/equipment", h.CreateEquipment)
	rg.DELETE("/equipment/:id", h.ArchiveEquipment)
}

// ListEquipment serves both search (?q=) and category filter (?category=).
// With both present, search wins; the client never combines them.
func (h *Handler) ListEquipment(c *gin.Context) {
	var (
		items []domain.Equipment
		err   error
	)

	if q := c.Query("q"); q != "" {
		items, err = h.service.Search(c.Request.Context(), q)
	} else {
		items, err = h.service.FilterByCategory(c.Request.Context(), c.Query("category"))
	}
	if err != nil {
		h.writeError(c, err)
		return
	}

	out := make([]*EquipmentResponse, 0, len(items))
	for i := range items {
		out = append(out, ToEquipmentResponse(&items[i]))
	}
	response.Success(c, http.StatusOK, gin.H{"equipment": out})
}

func (h *Handler) GetEquipment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid equipment id")
		return
	}

	e, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"equipment": ToEquipmentResponse(e)})
}

func (h *Handler) ListCategories(c *gin.Context) {
	type categoryOut struct {
		Key     string `json:"key"`
		Display string `json:"display"`
	}
	out := make([]categoryOut, 0, len(domain.Categories()))
	for _, cat := range domain.Categories() {
		out = append(out, categoryOut{Key: string(cat), Display: cat.DisplayName()})
	}
	response.Success(c, http.StatusOK, gin.H{"categories": out})
}

func (h *Handler) CreateEquipment(c *gin.Context) {
	var req CreateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid equipment fields", fields)
		return
	}

	e, err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"equipment": ToEquipmentResponse(e)})
}

func (h *Handler) ArchiveEquipment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid equipment id")
		return
	}

	if err := h.service.Archive(c.Request.Context(), c.GetInt64("user_id"), id); err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"archived": true})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Equipment not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You don't own this equipment")
	case errors.Is(err, ErrInvalidCategory):
		response.Error(c, http.StatusBadRequest, "INVALID_CATEGORY", "Unknown category")
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
