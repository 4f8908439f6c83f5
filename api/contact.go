package api

import (
	"net/http"

	"github.com/Domenick1991/servicehub/internal/service/contact"
	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	service contact.ContactUseCase
}

func NewContactHandler(service contact.ContactUseCase) *ContactHandler {
	return &ContactHandler{service: service}
}

func (h *ContactHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.submit)
}

func (h *ContactHandler) submit(c *gin.Context) {
	var req contact.ContactInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": msg.ID})
}
