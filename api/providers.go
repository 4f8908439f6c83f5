package api

import (
	"net/http"

	"github.com/Domenick1991/servicehub/internal/service/providers"
	"github.com/gin-gonic/gin"
)

type ProviderHandler struct {
	service providers.ProviderUseCase
}

func NewProviderHandler(service providers.ProviderUseCase) *ProviderHandler {
	return &ProviderHandler{service: service}
}

func (h *ProviderHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/:id", h.get)
}

// RegisterAdmin mounts the routes that require an admin.
func (h *ProviderHandler) RegisterAdmin(router *gin.RouterGroup) {
	router.PUT("/:id/verify", h.verify)
}

func (h *ProviderHandler) list(c *gin.Context) {
	query, category := c.Query("q"), c.Query("category")
	if query == "" && category == "" {
		list, err := h.service.List(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
		return
	}

	list, err := h.service.Search(c.Request.Context(), query, category)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ProviderHandler) get(c *gin.Context) {
	provider, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, provider)
}

func (h *ProviderHandler) verify(c *gin.Context) {
	provider, err := h.service.Verify(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, provider)
}
