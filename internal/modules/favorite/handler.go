package favorite

import (
	"net/http"
	"strconv"

	"gearshare/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	favorites := rg.Group("/favorites")
	{
		favorites.GET("", h.GetFavorites)
		favorites.POST("/:equipmentId/toggle", h.ToggleFavorite)
		favorites.GET("/:equipmentId/check", h.CheckFavorite)
	}
}

func (h *Handler) GetFavorites(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))

	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	favorites, total, err := h.service.List(c.Request.Context(), c.GetInt64("user_id"), perPage, (page-1)*perPage)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get favorites")
		return
	}

	response.Success(c, http.StatusOK, ToFavoriteListResponse(favorites, total, page, perPage))
}

func (h *Handler) ToggleFavorite(c *gin.Context) {
	equipmentID, ok := equipmentParam(c)
	if !ok {
		return
	}

	isFavorite, err := h.service.Toggle(c.Request.Context(), c.GetInt64("user_id"), equipmentID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to toggle favorite")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"is_favorite": isFavorite})
}

func (h *Handler) CheckFavorite(c *gin.Context) {
	equipmentID, ok := equipmentParam(c)
	if !ok {
		return
	}

	isFavorite, err := h.service.IsFavorite(c.Request.Context(), c.GetInt64("user_id"), equipmentID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to check favorite")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"is_favorite": isFavorite})
}

func equipmentParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("equipmentId"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid equipment id")
		return 0, false
	}
	return id, true
}
