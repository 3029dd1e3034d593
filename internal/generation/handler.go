package generation

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"careerlaunch-backend/internal/document"
	"careerlaunch-backend/internal/prompts"
	"careerlaunch-backend/internal/shared/server/middleware"
	"careerlaunch-backend/internal/shared/server/respond"
)

// maxBodySize caps JSON request bodies on the generation routes.
const maxBodySize = 1 << 20

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches generation routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resume/generate-portfolio", h.portfolio)
	rg.POST("/resume/generate-ats", h.ats)
	rg.POST("/resume/generate-cover-letter", h.coverLetter)
}

func (h *Handler) portfolio(c *gin.Context) {
	c.Set(middleware.TaskKey, prompts.TaskPortfolio)

	limitBody(c)
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		if !writeTooLarge(c, err) {
			respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read request body")
		}
		return
	}
	resume, err := document.Parse(raw)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "resume data must be a JSON object")
		return
	}

	content, err := h.Svc.Portfolio(c.Request.Context(), resume)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, respond.Envelope{Status: "success", Data: content})
}

func (h *Handler) ats(c *gin.Context) {
	c.Set(middleware.TaskKey, prompts.TaskATS)

	var req tailorRequest
	if !bindTailorRequest(c, &req) {
		return
	}

	optimized, err := h.Svc.ATS(c.Request.Context(), req.ResumeData, string(req.JobDescription))
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, respond.Envelope{Status: "success", Data: optimized})
}

func (h *Handler) coverLetter(c *gin.Context) {
	c.Set(middleware.TaskKey, prompts.TaskCoverLetter)

	var req tailorRequest
	if !bindTailorRequest(c, &req) {
		return
	}

	letter, err := h.Svc.CoverLetter(c.Request.Context(), req.ResumeData, string(req.JobDescription))
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, respond.Envelope{Status: "success", Data: letter})
}

func limitBody(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodySize)
}

func bindTailorRequest(c *gin.Context, req *tailorRequest) bool {
	limitBody(c)
	if err := c.ShouldBindJSON(req); err != nil {
		if !writeTooLarge(c, err) {
			respond.Error(c, http.StatusBadRequest, "validation_error", "resume_data object and job_description are required")
		}
		return false
	}
	return true
}

func writeTooLarge(c *gin.Context, err error) bool {
	var maxErr *http.MaxBytesError
	if !errors.As(err, &maxErr) {
		return false
	}
	respond.Error(c, http.StatusRequestEntityTooLarge, "payload_too_large",
		fmt.Sprintf("Request body exceeds the %d byte limit", maxBodySize))
	return true
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error())
	default:
		respond.Error(c, http.StatusInternalServerError, "generation_failed", err.Error())
	}
}
