package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"jewelry-service/models"
)

type fakeImportService struct {
	called  int
	summary *models.ImportSummary
	err     error
}

func (f *fakeImportService) ProcessWorkbook(ctx context.Context, file io.Reader) (*models.ImportSummary, error) {
	f.called++
	if f.err != nil {
		return nil, f.err
	}
	return f.summary, nil
}

func workbookUploadRequest(t *testing.T, fieldName, filename string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(fieldName, filename)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write([]byte("workbook-bytes")); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/admin/products/bulk-upload", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func newBulkImportRouter(fake *fakeImportService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewBulkImportHandler(fake, nil)
	router := gin.New()
	router.POST("/api/admin/products/bulk-upload", handler.BulkUpload)
	return router
}

func TestBulkUploadRequiresFile(t *testing.T) {
	fake := &fakeImportService{}
	router := newBulkImportRouter(fake)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/products/bulk-upload", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, recorder.Code)
	}
	if fake.called != 0 {
		t.Fatalf("import must not run without a file")
	}
}

func TestBulkUploadRejectsWrongFileType(t *testing.T) {
	fake := &fakeImportService{}
	router := newBulkImportRouter(fake)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, workbookUploadRequest(t, "file", "catalog.csv"))

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, recorder.Code)
	}
	if fake.called != 0 {
		t.Fatalf("import must not run for a non-workbook upload")
	}
}

func TestBulkUploadReturnsSummary(t *testing.T) {
	fake := &fakeImportService{
		summary: &models.ImportSummary{
			Success:  true,
			Message:  "Import completed: 3 created, 5 written in total",
			Duration: "120ms",
			Results: models.ImportResults{
				Metals:   models.SheetResult{Processed: 2, Created: 1, Updated: 1},
				Products: models.SheetResult{Processed: 3, Created: 2, Updated: 1},
			},
			Issues: []models.RowIssue{{Sheet: "Metals", Row: 4, Reason: "missing metal_type"}},
		},
	}
	router := newBulkImportRouter(fake)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, workbookUploadRequest(t, "file", "catalog.xlsx"))

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, recorder.Code, recorder.Body.String())
	}
	if fake.called != 1 {
		t.Fatalf("expected one import run, got %d", fake.called)
	}

	var got models.ImportSummary
	if err := json.Unmarshal(recorder.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !got.Success {
		t.Fatalf("expected success=true")
	}
	if got.Results.Products.Created != 2 {
		t.Fatalf("expected 2 products created, got %d", got.Results.Products.Created)
	}
	if len(got.Issues) != 1 || got.Issues[0].Row != 4 {
		t.Fatalf("unexpected issues: %+v", got.Issues)
	}
}

func TestBulkUploadPropagatesImportFailure(t *testing.T) {
	fake := &fakeImportService{err: errors.New("failed to open workbook")}
	router := newBulkImportRouter(fake)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, workbookUploadRequest(t, "file", "catalog.xlsx"))

	if recorder.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, recorder.Code)
	}
}
