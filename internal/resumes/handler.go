package resumes

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"careerlaunch-backend/internal/document"
	"careerlaunch-backend/internal/extract"
	"careerlaunch-backend/internal/llm"
	"careerlaunch-backend/internal/prompts"
	"careerlaunch-backend/internal/shared/metrics"
	"careerlaunch-backend/internal/shared/server/middleware"
	"careerlaunch-backend/internal/shared/server/respond"
)

// MaxUploadSize is the largest resume file accepted.
const MaxUploadSize = 5 << 20

// multipartOverhead leaves room for form boundaries and headers around the file.
const multipartOverhead = 1 << 20

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches resume routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resume/process", h.process)
	rg.GET("/resume/latest", h.latest)
}

type processResponse struct {
	Status   string            `json:"status"`
	Message  string            `json:"message,omitempty"`
	Data     document.Document `json:"data"`
	ResumeID string            `json:"resume_id,omitempty"`
}

type latestResponse struct {
	FileName      string            `json:"file_name"`
	ExtractedData document.Document `json:"extracted_data"`
	CreatedAt     time.Time         `json:"created_at"`
}

func (h *Handler) process(c *gin.Context) {
	c.Set(middleware.TaskKey, prompts.TaskExtraction)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxUploadSize+multipartOverhead)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			rejectTooLarge(c)
			return
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required")
		return
	}
	if fileHeader.Size > MaxUploadSize {
		rejectTooLarge(c)
		return
	}
	if !extract.Supported(fileHeader.Filename) {
		metrics.IncUploadRejected()
		respond.Error(c, http.StatusUnsupportedMediaType, "unsupported_media_type", "Only PDF and DOCX files are supported")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, MaxUploadSize+1))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file")
		return
	}
	if len(content) > MaxUploadSize {
		rejectTooLarge(c)
		return
	}

	result, err := h.Svc.Process(c.Request.Context(), Upload{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Content:     content,
	})
	if err != nil {
		switch {
		case errors.Is(err, extract.ErrUnsupportedType):
			respond.Error(c, http.StatusUnsupportedMediaType, "unsupported_media_type", "Only PDF and DOCX files are supported")
		case errors.Is(err, llm.ErrModelUnavailable), errors.Is(err, llm.ErrMalformedModelOutput):
			respond.Error(c, http.StatusInternalServerError, "model_error", "Error processing resume: "+err.Error())
		default:
			respond.Error(c, http.StatusInternalServerError, "extraction_failed", "Error processing resume: "+err.Error())
		}
		return
	}

	if result.ResumeID == "" {
		respond.OK(c, processResponse{
			Status:  "partial_success",
			Message: "Resume processed but storage failed",
			Data:    result.Data,
		})
		return
	}

	c.Set(middleware.ResumeIDKey, result.ResumeID)
	respond.OK(c, processResponse{
		Status:   "success",
		Data:     result.Data,
		ResumeID: result.ResumeID,
	})
}

func (h *Handler) latest(c *gin.Context) {
	resume, err := h.Svc.Latest(c.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "No resumes found in the database")
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "Error fetching resume: "+err.Error())
		}
		return
	}

	c.Set(middleware.ResumeIDKey, resume.ID)
	respond.OK(c, respond.Envelope{
		Status: "success",
		Data: latestResponse{
			FileName:      resume.FileName,
			ExtractedData: resume.ExtractedData,
			CreatedAt:     resume.CreatedAt,
		},
	})
}

func rejectTooLarge(c *gin.Context) {
	metrics.IncUploadRejected()
	respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "File size exceeds the 5MB limit")
}
