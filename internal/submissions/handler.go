package submissions

import (
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"jobtrack-backend/internal/jobs"
	"jobtrack-backend/internal/shared/metrics"
	"jobtrack-backend/internal/shared/server/middleware"
	"jobtrack-backend/internal/shared/server/respond"
)

const (
	maxDocumentBytes  = 4 << 20 // pdf, docx
	maxPlainTextBytes = 2 << 20
)

// maxResumeBytes caps the allowed upload size per file extension.
var maxResumeBytes = map[string]int64{
	".pdf":  maxDocumentBytes,
	".docx": maxDocumentBytes,
	".txt":  maxPlainTextBytes,
}

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches submission routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/jobs/:slug/apply", h.apply)
	rg.GET("/jobs/:slug/applications", middleware.RequireRecruiter(), h.list)
	rg.PUT("/jobs/:slug/applications/:applicationId", middleware.RequireRecruiter(), h.updateStatus)
}

func (h *Handler) apply(c *gin.Context) {
	slug := c.Param("slug")
	c.Set("jobSlug", slug)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxDocumentBytes+1<<20)

	in := ApplyInput{
		Slug:        slug,
		ApplicantID: middleware.UserIDFromContext(c),
		Name:        c.PostForm("name"),
		Email:       c.PostForm("email"),
		Phone:       c.PostForm("phone"),
	}

	fileHeader, err := c.FormFile("resume")
	if err == nil {
		ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
		maxBytes, ok := maxResumeBytes[ext]
		if !ok {
			respond.Error(c, http.StatusBadRequest, "validation_error", "resume must be a pdf, docx, or txt file", nil)
			return
		}
		if fileHeader.Size > maxBytes {
			respond.Error(c, http.StatusBadRequest, "validation_error", "resume file is too large", nil)
			return
		}
		file, err := fileHeader.Open()
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read resume file", nil)
			return
		}
		defer file.Close()
		in.FileName = fileHeader.Filename
		in.File = file
	}

	sub, err := h.Svc.Apply(c.Request.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, jobs.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "job not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to submit application", nil)
		}
		return
	}

	metrics.IncSubmissionCreated()
	respond.JSON(c, http.StatusCreated, gin.H{
		"message": "application submitted",
		"application": gin.H{
			"id":          sub.ID,
			"status":      ExternalStatus(sub.Status),
			"submittedAt": sub.SubmittedAt,
		},
	})
}

func (h *Handler) list(c *gin.Context) {
	slug := c.Param("slug")
	c.Set("jobSlug", slug)

	q := ListQuery{Page: 1, Limit: 10, Status: c.Query("status")}
	if v := c.Query("page"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			q.Page = parsed
		}
	}
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			q.Limit = parsed
		}
	}

	start := metrics.NowMillis()
	apps, pagination, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c), slug, q)
	if err != nil {
		if errors.Is(err, jobs.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "job not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list applications", nil)
		return
	}
	metrics.ObserveListingDurationMs(metrics.NowMillis() - start)

	respond.JSON(c, http.StatusOK, gin.H{
		"applications": apps,
		"pagination":   pagination,
	})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) updateStatus(c *gin.Context) {
	slug := c.Param("slug")
	applicationID := c.Param("applicationId")
	c.Set("jobSlug", slug)
	c.Set("applicationId", applicationID)

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	c.Set("statusTransition", req.Status)

	app, err := h.Svc.UpdateStatus(c.Request.Context(), middleware.UserIDFromContext(c), slug, applicationID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidStatus):
			metrics.IncStatusUpdateRejected()
			respond.Error(c, http.StatusBadRequest, "invalid_status", "status must be one of pending, reviewed, shortlisted, rejected", nil)
		case errors.Is(err, jobs.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "job not found", nil)
		case errors.Is(err, ErrApplicationNotFound):
			respond.Error(c, http.StatusNotFound, "application_not_found", "application not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update application", nil)
		}
		return
	}

	metrics.IncStatusUpdate()
	respond.JSON(c, http.StatusOK, gin.H{
		"message":     "application updated",
		"application": app,
	})
}
