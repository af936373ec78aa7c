package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/ferdie-assistant/internal/domain/constants"
	"github.com/yourusername/ferdie-assistant/internal/domain/entity"
	"github.com/yourusername/ferdie-assistant/internal/usecase"
	"github.com/yourusername/ferdie-assistant/pkg/logger"
)

// Handler HTTP handlers over the use cases
type Handler struct {
	chat    usecase.ChatUseCase
	catalog usecase.CatalogUseCase
}

// NewHandler constructor
func NewHandler(chat usecase.ChatUseCase, catalog usecase.CatalogUseCase) *Handler {
	return &Handler{chat: chat, catalog: catalog}
}

type assistantRequest struct {
	Message string                `json:"message" binding:"notblank"`
	History []entity.HistoryEntry `json:"history"`
}

type assistantResponse struct {
	Reply     string            `json:"reply"`
	Image     *string           `json:"image"`
	ProductID *string           `json:"productId"`
	Meta      *entity.ReplyMeta `json:"meta,omitempty"`
}

// Assistant POST /assistente
func (h *Handler) Assistant(c *gin.Context) {
	var req assistantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": constants.EmptyMessageText})
		return
	}

	reply, err := h.chat.ProcessMessage(c.Request.Context(), entity.ChatRequest{
		Message: req.Message,
		History: req.History,
	})
	switch {
	case errors.Is(err, entity.ErrEmptyMessage):
		c.JSON(http.StatusBadRequest, gin.H{"error": constants.EmptyMessageText})
		return
	case err != nil:
		logger.Error("❌ assistant turn failed", "request_id", c.GetString(requestIDKey), "error", err)
		text := constants.FallbackReply
		if reply != nil && reply.Text != "" {
			text = reply.Text
		}
		c.JSON(http.StatusInternalServerError, gin.H{"reply": text})
		return
	}

	c.JSON(http.StatusOK, assistantResponse{
		Reply:     reply.Text,
		Image:     reply.Image,
		ProductID: reply.ProductID,
		Meta:      &reply.Meta,
	})
}

// ListProducts GET /produtos
func (h *Handler) ListProducts(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.List())
}

// SearchProducts GET /produtos/buscar?q=
func (h *Handler) SearchProducts(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Search(c.Query("q")))
}
