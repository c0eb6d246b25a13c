package resumes

import (
	"errors"
	"net/http"

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

// RegisterRoutes attaches resume routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/resumes/me", middleware.RequireAuth(), h.me)
}

func (h *Handler) me(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	resume, err := h.Svc.Profile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "resume profile not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load resume profile", nil)
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"id":          resume.ID,
		"userId":      resume.UserID,
		"isAnonymous": resume.IsAnonymous,
		"versions":    resume.Versions,
		"updatedAt":   resume.UpdatedAt,
	})
}
