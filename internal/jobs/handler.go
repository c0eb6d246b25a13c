package jobs

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"jobtrack-backend/internal/shared/server/middleware"
	"jobtrack-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches job routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/jobs", middleware.RequireRecruiter(), h.create)
	rg.GET("/jobs", middleware.RequireRecruiter(), h.listOwn)
	rg.GET("/jobs/:slug", h.get)
}

type createRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Deadline    *time.Time `json:"deadline"`
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	job, err := h.Svc.Create(c.Request.Context(), middleware.UserIDFromContext(c), CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Deadline:    req.Deadline,
	})
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create job", nil)
		return
	}

	respond.JSON(c, http.StatusCreated, toResponse(job))
}

func (h *Handler) listOwn(c *gin.Context) {
	list, err := h.Svc.ListOwn(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list jobs", nil)
		return
	}

	resp := make([]gin.H, 0, len(list))
	for _, job := range list {
		resp = append(resp, toResponse(job))
	}
	respond.JSON(c, http.StatusOK, gin.H{"jobs": resp})
}

func (h *Handler) get(c *gin.Context) {
	slug := c.Param("slug")
	c.Set("jobSlug", slug)

	job, err := h.Svc.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "job not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load job", nil)
		return
	}

	respond.JSON(c, http.StatusOK, toResponse(job))
}

func toResponse(job Job) gin.H {
	out := gin.H{
		"id":        job.ID,
		"slug":      job.Slug,
		"title":     job.Title,
		"createdAt": job.CreatedAt,
	}
	if job.Description != "" {
		out["description"] = job.Description
	}
	if job.Deadline != nil {
		out["deadline"] = job.Deadline
	}
	return out
}
