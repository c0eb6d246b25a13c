package uploads

import (
	"context"
	"errors"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"jobtrack-backend/internal/shared/config"
	"jobtrack-backend/internal/shared/server/middleware"
	"jobtrack-backend/internal/shared/server/respond"
	"jobtrack-backend/internal/shared/telemetry"
	"jobtrack-backend/internal/shared/util"
)

const (
	maxDocumentBytes  = 4 << 20
	maxPlainTextBytes = 2 << 20
	presignExpires    = 15 * time.Minute
	defaultRegion     = "us-east-1"
)

// maxBytesByContentType caps upload size per accepted resume content type.
var maxBytesByContentType = map[string]int64{
	"application/pdf": maxDocumentBytes,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": maxDocumentBytes,
	"text/plain": maxPlainTextBytes,
}

// Handler serves presigned resume uploads and the local uploads listing.
type Handler struct {
	cfg config.Config
}

func NewHandler(cfg config.Config) *Handler {
	return &Handler{cfg: cfg}
}

// RegisterRoutes attaches upload routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/uploads/presign", middleware.RequireAuth(), h.presign)
}

type presignRequest struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	SizeBytes   int64  `json:"sizeBytes"`
}

type presignResponse struct {
	UploadURL        string `json:"uploadUrl"`
	S3Key            string `json:"s3Key"`
	ExpiresInSeconds int64  `json:"expiresInSeconds"`
}

func (h *Handler) presign(c *gin.Context) {
	var req presignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	req.FileName = strings.TrimSpace(req.FileName)
	req.ContentType = strings.TrimSpace(req.ContentType)

	if req.FileName == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "fileName is required", nil)
		return
	}
	maxBytes, ok := maxBytesByContentType[req.ContentType]
	if !ok {
		respond.Error(c, http.StatusBadRequest, "validation_error", "contentType is not allowed", nil)
		return
	}
	if req.SizeBytes <= 0 || req.SizeBytes > maxBytes {
		respond.Error(c, http.StatusBadRequest, "validation_error", "sizeBytes exceeds limit", nil)
		return
	}

	presignClient, err := h.presignClient(c.Request.Context())
	if err != nil {
		if errors.Is(err, errNotConfigured) {
			respond.Error(c, http.StatusInternalServerError, "internal_error", "uploads not configured", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to initialize uploader", nil)
		return
	}

	sanitized, err := util.SanitizeFileName(req.FileName)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid fileName", nil)
		return
	}

	userID := middleware.UserIDFromContext(c)
	key := path.Join(strings.Trim(h.cfg.S3Prefix, "/"), userID, uuid.NewString()+"-"+sanitized)

	out, err := presignClient.PresignPutObject(c.Request.Context(), &s3.PutObjectInput{
		Bucket: aws.String(h.cfg.S3Bucket),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = presignExpires
	})
	if err != nil {
		telemetry.Error("uploads.presign.failed", map[string]any{
			"err":         err.Error(),
			"bucket":      h.cfg.S3Bucket,
			"key":         key,
			"contentType": req.ContentType,
			"sizeBytes":   req.SizeBytes,
			"request_id":  c.GetString("requestId"),
		})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to generate upload url", nil)
		return
	}

	respond.JSON(c, http.StatusOK, presignResponse{
		UploadURL:        out.URL,
		S3Key:            key,
		ExpiresInSeconds: int64(presignExpires.Seconds()),
	})
}

var errNotConfigured = errors.New("uploads not configured")

func (h *Handler) presignClient(ctx context.Context) (*s3.PresignClient, error) {
	if strings.TrimSpace(h.cfg.S3Bucket) == "" {
		return nil, errNotConfigured
	}
	region := strings.TrimSpace(h.cfg.AWSRegion)
	if region == "" {
		region = defaultRegion
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return s3.NewPresignClient(s3.NewFromConfig(awsCfg)), nil
}
