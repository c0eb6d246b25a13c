package uploads

import (
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"jobtrack-backend/internal/shared/server/middleware"
	"jobtrack-backend/internal/shared/server/respond"
	"jobtrack-backend/internal/shared/telemetry"
)

// fileEntry describes one stored file. fileId is the name up to the first
// dot, which strips the extension from the prefixed upload names.
type fileEntry struct {
	FileID     string    `json:"fileId"`
	FileName   string    `json:"fileName"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploadedAt"`
	ModifiedAt time.Time `json:"modifiedAt"`
}

// RegisterFileRoutes attaches the local uploads listing route.
func (h *Handler) RegisterFileRoutes(rg *gin.RouterGroup) {
	rg.GET("/files", middleware.RequireRecruiter(), h.listFiles)
}

// listFiles walks the local uploads directory and stats every file. A missing
// directory yields an empty list, not an error.
func (h *Handler) listFiles(c *gin.Context) {
	files := []fileEntry{}

	root := h.cfg.LocalStoreDir
	if _, err := os.Stat(root); err != nil {
		if os.IsNotExist(err) {
			respond.JSON(c, http.StatusOK, gin.H{"success": true, "files": files, "count": 0})
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to read uploads directory", nil)
		return
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		name := d.Name()
		fileID := name
		if idx := strings.Index(name, "."); idx >= 0 {
			fileID = name[:idx]
		}
		files = append(files, fileEntry{
			FileID:     fileID,
			FileName:   name,
			Size:       info.Size(),
			UploadedAt: info.ModTime(),
			ModifiedAt: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		telemetry.Error("uploads.list.failed", map[string]any{
			"dir": root,
			"err": err.Error(),
		})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to read uploads directory", nil)
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"success": true,
		"files":   files,
		"count":   len(files),
	})
}
