package handlers_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/KeshavMowar711/AI-Interview-App/internal/handlers"
	"github.com/KeshavMowar711/AI-Interview-App/internal/models"
	"github.com/KeshavMowar711/AI-Interview-App/internal/services"
)

type fakeResumeRepo struct {
	created   []*models.Resume
	createErr error
}

func (f *fakeResumeRepo) Create(resume *models.Resume) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, resume)
	return nil
}

func (f *fakeResumeRepo) FindLatestByUser(string) (*models.Resume, error) { return nil, nil }

type fakePDFParser struct {
	text string
	err  error
}

func (f *fakePDFParser) ExtractText(string) (string, error) { return f.text, f.err }

func newUploadApp(t *testing.T, repo *fakeResumeRepo, parser *fakePDFParser, maxFileSize int64) (*fiber.App, string) {
	t.Helper()

	uploadDir := t.TempDir()
	storage := services.NewStorageService(uploadDir)
	if err := storage.EnsureUploadDir(); err != nil {
		t.Fatalf("EnsureUploadDir err: %v", err)
	}

	app := fiber.New()
	h := handlers.NewUploadHandler(repo, storage, parser, maxFileSize)
	app.Post("/api/upload-resume", h.HandleUploadResume)
	return app, uploadDir
}

func uploadRequest(t *testing.T, userID, filename string, content []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if userID != "" {
		if err := w.WriteField("clerkUserId", userID); err != nil {
			t.Fatalf("WriteField err: %v", err)
		}
	}
	if filename != "" {
		part, err := w.CreateFormFile("resume", filename)
		if err != nil {
			t.Fatalf("CreateFormFile err: %v", err)
		}
		if _, err := part.Write(content); err != nil {
			t.Fatalf("write part err: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer err: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/upload-resume", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestUploadResumeStoresFileAndText(t *testing.T) {
	repo := &fakeResumeRepo{}
	app, uploadDir := newUploadApp(t, repo, &fakePDFParser{text: "Built Kafka pipelines"}, 1<<20)

	resp, err := app.Test(uploadRequest(t, "u1", "My Resume.pdf", []byte("%PDF-1.4 fake")), -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var body models.UploadResumeResponse
	decodeBody(t, resp, &body)
	if body.OriginalName != "My Resume.pdf" {
		t.Fatalf("unexpected original name: %q", body.OriginalName)
	}

	if len(repo.created) != 1 {
		t.Fatalf("expected 1 resume record, got %d", len(repo.created))
	}
	resume := repo.created[0]
	if resume.ClerkUserID != "u1" || resume.Text != "Built Kafka pipelines" {
		t.Fatalf("unexpected resume record: %+v", resume)
	}

	entries, err := os.ReadDir(uploadDir)
	if err != nil {
		t.Fatalf("ReadDir err: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 stored file, got %d", len(entries))
	}
	if entries[0].Name() != resume.Filename {
		t.Fatalf("stored file %q does not match record %q", entries[0].Name(), resume.Filename)
	}
}

func TestUploadResumeRejectsNonPDF(t *testing.T) {
	repo := &fakeResumeRepo{}
	app, uploadDir := newUploadApp(t, repo, &fakePDFParser{text: "ignored"}, 1<<20)

	resp, err := app.Test(uploadRequest(t, "u1", "resume.docx", []byte("not a pdf")), -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	if len(repo.created) != 0 {
		t.Fatal("no resume record should be created")
	}
	entries, err := os.ReadDir(uploadDir)
	if err != nil {
		t.Fatalf("ReadDir err: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no stored files, got %d", len(entries))
	}
}

func TestUploadResumeRejectsOversizedFile(t *testing.T) {
	repo := &fakeResumeRepo{}
	app, _ := newUploadApp(t, repo, &fakePDFParser{text: "ignored"}, 16)

	resp, err := app.Test(uploadRequest(t, "u1", "resume.pdf", bytes.Repeat([]byte("x"), 64)), -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if len(repo.created) != 0 {
		t.Fatal("no resume record should be created")
	}
}

func TestUploadResumeValidation(t *testing.T) {
	tests := []struct {
		name     string
		userID   string
		filename string
		want     string
	}{
		{"missing user", "", "resume.pdf", "clerkUserId is required"},
		{"missing file", "u1", "", "resume file is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := newUploadApp(t, &fakeResumeRepo{}, &fakePDFParser{}, 1<<20)

			resp, err := app.Test(uploadRequest(t, tt.userID, tt.filename, []byte("%PDF-1.4")), -1)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if resp.StatusCode != fiber.StatusBadRequest {
				t.Fatalf("expected 400, got %d", resp.StatusCode)
			}

			var body map[string]string
			decodeBody(t, resp, &body)
			if body["error"] != tt.want {
				t.Fatalf("expected error %q, got %q", tt.want, body["error"])
			}
		})
	}
}

func TestUploadResumeCleansUpOnParseFailure(t *testing.T) {
	repo := &fakeResumeRepo{}
	app, uploadDir := newUploadApp(t, repo, &fakePDFParser{err: os.ErrInvalid}, 1<<20)

	resp, err := app.Test(uploadRequest(t, "u1", "resume.pdf", []byte("corrupt")), -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	if len(repo.created) != 0 {
		t.Fatal("no resume record should be created")
	}
	entries, err := os.ReadDir(uploadDir)
	if err != nil {
		t.Fatalf("ReadDir err: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected saved file to be removed, found %d entries", len(entries))
	}
}
