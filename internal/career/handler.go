package career

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"careerlaunch-backend/internal/prompts"
	"careerlaunch-backend/internal/shared/server/middleware"
	"careerlaunch-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches career routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/career-advice", h.advice)
	rg.GET("/test-career-interactions", h.sampleInteractions)
}

type adviceRequest struct {
	Query  string `json:"query" binding:"required"`
	UserID string `json:"user_id"`
}

func (h *Handler) advice(c *gin.Context) {
	c.Set(middleware.TaskKey, prompts.TaskCareerAdvice)

	var req adviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "query is required")
		return
	}
	userID := req.UserID
	if userID == "" {
		userID = middleware.UserIDFromContext(c)
	}

	advice, err := h.Svc.Advise(c.Request.Context(), req.Query, userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "query is required")
		default:
			respond.Error(c, http.StatusInternalServerError, "model_error", "Error processing career advice request: "+err.Error())
		}
		return
	}
	respond.OK(c, advice)
}

func (h *Handler) sampleInteractions(c *gin.Context) {
	interactions, err := h.Svc.Sample(c.Request.Context(), 1)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Error accessing career_interactions table: "+err.Error())
		return
	}
	respond.Success(c, "Career interactions table exists and is accessible", gin.H{"interactions": interactions})
}
