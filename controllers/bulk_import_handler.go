package controllers

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const MaxWorkbookSize = 50 * 1024 * 1024 // 50MB

var allowedWorkbookExtensions = map[string]bool{
	".xlsx": true,
	".xlsm": true,
}

// BulkImportHandler handles the workbook upload that loads the whole catalog:
// metals, products, variants and their priced expansions in one request.
type BulkImportHandler struct {
	importService ImportServiceAPI
	cache         *CacheManager
	timeout       time.Duration
}

func NewBulkImportHandler(is ImportServiceAPI, cache *CacheManager) *BulkImportHandler {
	return &BulkImportHandler{
		importService: is,
		cache:         cache,
		// Imports touch every catalog collection; give them more room
		// than a regular request.
		timeout: 5 * time.Minute,
	}
}

// BulkUpload imports a multi-sheet workbook. Sheets are processed in
// dependency order but the run is not atomic: sheets already written stay
// written if a later sheet fails.
func (h *BulkImportHandler) BulkUpload(c *gin.Context) {
	file, err := h.getAndValidateFile(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fileHandle, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open file"})
		return
	}
	defer fileHandle.Close()

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	summary, err := h.importService.ProcessWorkbook(ctx, fileHandle)
	if err != nil {
		zap.L().Error("Bulk import failed", zap.Error(err), zap.String("filename", file.Filename))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// Imported rows change what the read endpoints serve.
	if h.cache != nil && summary.Results.TotalWritten() > 0 {
		if err := h.cache.Invalidate(ctx); err != nil {
			zap.L().Error("Failed to invalidate cache after bulk import", zap.Error(err))
		}
	}

	zap.L().Info("Bulk import finished",
		zap.String("filename", file.Filename),
		zap.String("duration", summary.Duration),
		zap.Int("created", summary.Results.TotalCreated()),
		zap.Int("issues", len(summary.Issues)))

	c.JSON(http.StatusOK, summary)
}

func (h *BulkImportHandler) getAndValidateFile(c *gin.Context) (*multipart.FileHeader, error) {
	file, err := c.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("file is required")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedWorkbookExtensions[ext] {
		return nil, fmt.Errorf("invalid file type. Only Excel workbooks are allowed")
	}

	if file.Size > MaxWorkbookSize {
		return nil, fmt.Errorf("file too large (max %dMB)", MaxWorkbookSize/(1024*1024))
	}

	return file, nil
}
