package chatapi

import (
	"net/http"

	"github.com/DjordjeVuckovic/rag-bench/internal/apperr"
	"github.com/labstack/echo/v4"
)

type ChatRequest struct {
	Question string `json:"question"`
	Context  string `json:"context"`
}

type ChatResponse struct {
	Answer string `json:"answer"`
}

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) Bind(e *echo.Echo) {
	e.POST("/chat", h.handleChat)
}

func (h *Handler) handleChat(c echo.Context) error {
	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid chat request body", err)
	}
	if req.Question == "" {
		return apperr.NewValidation("question is required")
	}
	if req.Context == "" {
		return apperr.NewValidation("context is required")
	}

	return c.JSON(http.StatusOK, ChatResponse{Answer: Answer(req.Question, req.Context)})
}
