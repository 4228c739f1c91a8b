package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/KeshavMowar711/AI-Interview-App/internal/handlers"
	"github.com/KeshavMowar711/AI-Interview-App/internal/models"
	"github.com/KeshavMowar711/AI-Interview-App/internal/repositories"
)

type fakeInterviewRepo struct {
	created    []*models.Interview
	interviews []models.Interview
	findErr    error
}

func (f *fakeInterviewRepo) Create(interview *models.Interview) error {
	f.created = append(f.created, interview)
	return nil
}

func (f *fakeInterviewRepo) FindByID(uuid.UUID) (*models.Interview, error) {
	return nil, repositories.ErrInterviewNotFound
}

func (f *fakeInterviewRepo) FindByUser(string) ([]models.Interview, error) {
	return f.interviews, f.findErr
}

func (f *fakeInterviewRepo) AppendQAPair(uuid.UUID, *models.QAPair) error { return nil }

func (f *fakeInterviewRepo) AllQuestions() ([]repositories.AskedQuestion, error) { return nil, nil }

type fakeInterviewer struct {
	question    string
	questionErr error
	grade       *models.GradeAnswerResponse
	gradeErr    error
}

func (f *fakeInterviewer) GenerateQuestion(context.Context, string, string) (string, error) {
	return f.question, f.questionErr
}

func (f *fakeInterviewer) GradeAnswer(context.Context, uuid.UUID, string, string) (*models.GradeAnswerResponse, error) {
	return f.grade, f.gradeErr
}

func newTestApp(repo *fakeInterviewRepo, interviewer *fakeInterviewer) *fiber.App {
	app := fiber.New()
	h := handlers.NewInterviewHandler(repo, interviewer)
	app.Post("/api/start-interview", h.HandleStartInterview)
	app.Post("/api/generate-question", h.HandleGenerateQuestion)
	app.Post("/api/grade-answer", h.HandleGradeAnswer)
	app.Get("/api/interviews", h.HandleListInterviews)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, target any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		t.Fatalf("decode body: %v", err)
	}
}

func TestStartInterviewCreatesSession(t *testing.T) {
	repo := &fakeInterviewRepo{}
	app := newTestApp(repo, &fakeInterviewer{})

	resp := postJSON(t, app, "/api/start-interview", models.StartInterviewRequest{
		JobRole:     "Backend Engineer",
		ClerkUserID: "user_123",
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var body models.StartInterviewResponse
	decodeBody(t, resp, &body)

	if _, err := uuid.Parse(body.InterviewID); err != nil {
		t.Fatalf("interviewId is not a uuid: %q", body.InterviewID)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected 1 created interview, got %d", len(repo.created))
	}
	if repo.created[0].JobRole != "Backend Engineer" || repo.created[0].ClerkUserID != "user_123" {
		t.Fatalf("unexpected interview: %+v", repo.created[0])
	}
}

func TestStartInterviewValidation(t *testing.T) {
	tests := []struct {
		name string
		req  models.StartInterviewRequest
		want string
	}{
		{"blank role", models.StartInterviewRequest{JobRole: "   ", ClerkUserID: "u1"}, "jobRole is required"},
		{"missing user", models.StartInterviewRequest{JobRole: "Backend Engineer"}, "clerkUserId is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeInterviewRepo{}
			app := newTestApp(repo, &fakeInterviewer{})

			resp := postJSON(t, app, "/api/start-interview", tt.req)
			if resp.StatusCode != fiber.StatusBadRequest {
				t.Fatalf("expected 400, got %d", resp.StatusCode)
			}

			var body map[string]string
			decodeBody(t, resp, &body)
			if body["error"] != tt.want {
				t.Fatalf("expected error %q, got %q", tt.want, body["error"])
			}
			if len(repo.created) != 0 {
				t.Fatal("no interview should be created")
			}
		})
	}
}

func TestGenerateQuestionReturnsQuestion(t *testing.T) {
	app := newTestApp(&fakeInterviewRepo{}, &fakeInterviewer{question: "Explain indexes."})

	resp := postJSON(t, app, "/api/generate-question", models.GenerateQuestionRequest{
		JobRole: "Backend Engineer",
	})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body models.GenerateQuestionResponse
	decodeBody(t, resp, &body)
	if body.Question != "Explain indexes." {
		t.Fatalf("unexpected question: %q", body.Question)
	}
}

func TestGenerateQuestionModelFailure(t *testing.T) {
	app := newTestApp(&fakeInterviewRepo{}, &fakeInterviewer{
		questionErr: errors.New("failed to generate question: model unavailable"),
	})

	resp := postJSON(t, app, "/api/generate-question", models.GenerateQuestionRequest{
		JobRole: "Backend Engineer",
	})
	if resp.StatusCode != fiber.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.StatusCode)
	}

	var body map[string]string
	decodeBody(t, resp, &body)
	if body["error"] != "failed to generate question: model unavailable" {
		t.Fatalf("error message was altered: %q", body["error"])
	}
}

func TestGradeAnswerReturnsResult(t *testing.T) {
	app := newTestApp(&fakeInterviewRepo{}, &fakeInterviewer{
		grade: &models.GradeAnswerResponse{Score: 7, Feedback: "Solid.", Improvement: "Mention locking."},
	})

	resp := postJSON(t, app, "/api/grade-answer", models.GradeAnswerRequest{
		InterviewID: uuid.NewString(),
		Question:    "Explain transactions.",
		UserAnswer:  "They group writes atomically.",
	})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body models.GradeAnswerResponse
	decodeBody(t, resp, &body)
	if body.Score != 7 || body.Feedback != "Solid." || body.Improvement != "Mention locking." {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestGradeAnswerValidation(t *testing.T) {
	tests := []struct {
		name string
		req  models.GradeAnswerRequest
		want string
	}{
		{
			"bad uuid",
			models.GradeAnswerRequest{InterviewID: "not-a-uuid", Question: "Q", UserAnswer: "A"},
			"Invalid interviewId format",
		},
		{
			"missing question",
			models.GradeAnswerRequest{InterviewID: uuid.NewString(), UserAnswer: "A"},
			"question is required",
		},
		{
			"whitespace answer",
			models.GradeAnswerRequest{InterviewID: uuid.NewString(), Question: "Q", UserAnswer: "   "},
			"userAnswer is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(&fakeInterviewRepo{}, &fakeInterviewer{})

			resp := postJSON(t, app, "/api/grade-answer", tt.req)
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

func TestGradeAnswerUnknownInterview(t *testing.T) {
	app := newTestApp(&fakeInterviewRepo{}, &fakeInterviewer{
		gradeErr: repositories.ErrInterviewNotFound,
	})

	resp := postJSON(t, app, "/api/grade-answer", models.GradeAnswerRequest{
		InterviewID: uuid.NewString(),
		Question:    "Q",
		UserAnswer:  "A",
	})
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}

	var body map[string]string
	decodeBody(t, resp, &body)
	if body["error"] != "Interview not found" {
		t.Fatalf("unexpected error: %q", body["error"])
	}
}

func TestListInterviewsRequiresUserID(t *testing.T) {
	app := newTestApp(&fakeInterviewRepo{}, &fakeInterviewer{})

	req := httptest.NewRequest(http.MethodGet, "/api/interviews", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestListInterviewsEmptyIsJSONArray(t *testing.T) {
	app := newTestApp(&fakeInterviewRepo{}, &fakeInterviewer{})

	req := httptest.NewRequest(http.MethodGet, "/api/interviews?userId=u1", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if string(bytes.TrimSpace(raw)) != "[]" {
		t.Fatalf("expected [], got %s", raw)
	}
}

func TestListInterviewsEmbedsQAPairs(t *testing.T) {
	interviewID := uuid.New()
	repo := &fakeInterviewRepo{
		interviews: []models.Interview{
			{
				ID:          interviewID,
				ClerkUserID: "u1",
				JobRole:     "Backend Engineer",
				CreatedAt:   time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
				QAPairs: []models.QAPair{
					{Question: "Q1", UserAnswer: "A1", AIFeedback: "F1", Score: 6},
				},
			},
			{
				ID:          uuid.New(),
				ClerkUserID: "u1",
				JobRole:     "Data Engineer",
				CreatedAt:   time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC),
			},
		},
	}
	app := newTestApp(repo, &fakeInterviewer{})

	req := httptest.NewRequest(http.MethodGet, "/api/interviews?userId=u1", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body []struct {
		ID      string          `json:"id"`
		JobRole string          `json:"jobRole"`
		QAPairs []models.QAPair `json:"qaPairs"`
	}
	decodeBody(t, resp, &body)

	if len(body) != 2 {
		t.Fatalf("expected 2 interviews, got %d", len(body))
	}
	if body[0].ID != interviewID.String() || body[0].JobRole != "Backend Engineer" {
		t.Fatalf("unexpected first interview: %+v", body[0])
	}
	if len(body[0].QAPairs) != 1 || body[0].QAPairs[0].Question != "Q1" || body[0].QAPairs[0].Score != 6 {
		t.Fatalf("unexpected qaPairs: %+v", body[0].QAPairs)
	}
	// An interview without rounds still serializes qaPairs as [].
	if body[1].QAPairs == nil || len(body[1].QAPairs) != 0 {
		t.Fatalf("expected empty qaPairs array, got %+v", body[1].QAPairs)
	}
}
