package controllers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var allowedImageContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// PresignedURLHandler hands out presigned URLs for direct image uploads
type PresignedURLHandler struct {
	presignService PresignServiceAPI
	timeout        time.Duration
}

func NewPresignedURLHandler(ps PresignServiceAPI) *PresignedURLHandler {
	return &PresignedURLHandler{
		presignService: ps,
		timeout:        DefaultContextTimeout,
	}
}

// GetPresignUpload returns a presigned PUT URL for an image upload keyed by SKU.
func (h *PresignedURLHandler) GetPresignUpload(c *gin.Context) {
	sku := strings.TrimSpace(c.Query("sku"))
	if sku == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "SKU query parameter is required"})
		return
	}

	filename := c.DefaultQuery("filename", "upload")
	contentType := c.DefaultQuery("content_type", "image/jpeg")
	if !allowedImageContentTypes[contentType] {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Invalid content type %q. Allowed: jpeg, jpg, png, webp, gif", contentType),
		})
		return
	}

	expires, err := strconv.ParseInt(c.DefaultQuery("expires", "900"), 10, 64)
	if err != nil || expires <= 0 {
		expires = 900
	}
	// Cap at 1 hour
	if expires > 3600 {
		expires = 3600
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	uploadURL, key, publicURL, err := h.presignService.GeneratePresignedUpload(ctx, sku, filename, contentType, expires)
	if err != nil {
		zap.L().Error("Failed to generate presigned upload", zap.Error(err), zap.String("sku", sku))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate presigned upload"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"upload_url": uploadURL,
		"method":     "PUT",
		"key":        key,
		"public_url": publicURL,
		"expires_in": expires,
	})
}
