package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/evandrarf/tutorly-be/database"
	"github.com/evandrarf/tutorly-be/internal/config"
	"github.com/evandrarf/tutorly-be/internal/delivery/http/repository"
	"github.com/evandrarf/tutorly-be/internal/entity"
	"github.com/evandrarf/tutorly-be/internal/pkg/cache"
	"github.com/evandrarf/tutorly-be/internal/pkg/event"
	"github.com/evandrarf/tutorly-be/internal/pkg/llm"
	"github.com/evandrarf/tutorly-be/internal/pkg/validate"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const schoolPassword = "rahasia-sekolah"

type testApp struct {
	api     *fiber.App
	db      *gorm.DB
	cleanup func()
	llm     *llm.MockProvider
	events  *event.Recorder
	school  *entity.School
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	v := viper.New()
	v.Set("app.name", "tutorly-test")
	v.Set("database.driver", "sqlite")
	v.Set("database.path", ":memory:")

	log := logrus.New()
	log.SetOutput(io.Discard)

	db := database.New(v)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	hash, err := bcrypt.GenerateFromPassword([]byte(schoolPassword), bcrypt.MinCost)
	require.NoError(t, err)
	school := &entity.School{Name: "SMA Negeri 1", PasswordHash: string(hash)}
	require.NoError(t, repository.NewSchoolRepository(db).CreateSchool(nil, school))

	app := &testApp{
		db:     db,
		api:    config.NewAPI(v, log),
		llm:    llm.NewMockProvider(),
		events: event.NewRecorder(),
		school: school,
	}

	cleanup, err := config.Bootstrap(&config.BootstrapConfig{
		Api:       app.api,
		Config:    v,
		DB:        db,
		Log:       log,
		Validator: validate.NewValidator(),
		LLM:       app.llm,
		Cache:     cache.NewNoopAnalysisCache(),
		Events:    app.events,
	})
	require.NoError(t, err)
	app.cleanup = cleanup
	t.Cleanup(cleanup)

	return app
}

// do sends body (string or any JSON-able value) and decodes the envelope.
func (a *testApp) do(t *testing.T, method, path string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.api.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]any{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func data(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	d, ok := body["data"].(map[string]any)
	require.True(t, ok, "data is not an object: %v", body)
	return d
}

func (a *testApp) registerStudent(t *testing.T, email string) string {
	t.Helper()
	code, body := a.do(t, http.MethodPost, "/students", map[string]any{
		"school_id": a.school.ID,
		"name":      "Budi",
		"email":     email,
		"grade":     "10",
	})
	require.Equal(t, fiber.StatusCreated, code, body)
	return data(t, body)["id"].(string)
}

func (a *testApp) approve(t *testing.T, studentID string) {
	t.Helper()
	code, body := a.do(t, http.MethodPost, "/approvals", map[string]any{
		"action":         "approve",
		"schoolId":       a.school.ID,
		"schoolPassword": schoolPassword,
		"studentId":      studentID,
	})
	require.Equal(t, fiber.StatusOK, code, body)
}

func TestHealthAndMetrics(t *testing.T) {
	app := newTestApp(t)

	code, body := app.do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "ok", body["status"])

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp, err := app.api.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), "tutorly_")
}

func TestApprovalHandler(t *testing.T) {
	app := newTestApp(t)
	studentID := app.registerStudent(t, "approval@example.com")

	valid := map[string]any{
		"action":         "approve",
		"schoolId":       app.school.ID,
		"schoolPassword": schoolPassword,
		"studentId":      studentID,
	}
	with := func(key string, value any) map[string]any {
		out := map[string]any{}
		for k, v := range valid {
			out[k] = v
		}
		if value == nil {
			delete(out, key)
		} else {
			out[key] = value
		}
		return out
	}

	tests := []struct {
		name string
		body any
		want int
	}{
		{"wrong password", with("schoolPassword", "salah"), fiber.StatusUnauthorized},
		{"unknown school", with("schoolId", "missing"), fiber.StatusUnauthorized},
		{"unknown student", with("studentId", "missing"), fiber.StatusNotFound},
		{"bad action", with("action", "maybe"), fiber.StatusBadRequest},
		{"missing student", with("studentId", nil), fiber.StatusBadRequest},
		{"bad json", `{"action":`, fiber.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := app.do(t, http.MethodPost, "/approvals", tt.body)
			assert.Equal(t, tt.want, code)
			assert.Equal(t, false, body["success"])
			assert.NotEmpty(t, body["error"])
		})
	}

	// action is matched case-insensitively
	code, body := app.do(t, http.MethodPost, "/approvals", with("action", "Approve"))
	require.Equal(t, fiber.StatusOK, code, body)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, entity.ApprovalApproved, body["status"])
	assert.Equal(t, []string{event.StudentApproved}, app.events.Types())

	code, body = app.do(t, http.MethodPost, "/schools/students", map[string]any{
		"schoolId":       app.school.ID,
		"schoolPassword": schoolPassword,
	})
	require.Equal(t, fiber.StatusOK, code, body)
	assert.Len(t, body["data"], 1)
}

func TestStudentHandler(t *testing.T) {
	app := newTestApp(t)
	studentID := app.registerStudent(t, "student@example.com")

	code, body := app.do(t, http.MethodPost, "/students", map[string]any{
		"school_id": app.school.ID,
		"name":      "Budi",
		"email":     "STUDENT@example.com",
	})
	assert.Equal(t, fiber.StatusConflict, code)
	assert.Equal(t, false, body["success"])

	code, body = app.do(t, http.MethodPost, "/students", map[string]any{"school_id": app.school.ID, "name": "  ", "email": "not-an-email"})
	assert.Equal(t, fiber.StatusBadRequest, code)
	fields, ok := body["error"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "email")

	code, body = app.do(t, http.MethodGet, "/students/"+studentID, nil)
	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, entity.ApprovalPending, data(t, body)["approval_status"])

	code, body = app.do(t, http.MethodGet, "/students/"+studentID+"/report", nil)
	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, float64(0), data(t, body)["session_count"])

	code, _ = app.do(t, http.MethodGet, "/students/missing", nil)
	assert.Equal(t, fiber.StatusNotFound, code)
}

func TestTutorHandler_ChatAndEmptyQuiz(t *testing.T) {
	app := newTestApp(t)
	studentID := app.registerStudent(t, "chat@example.com")

	code, _ := app.do(t, http.MethodPost, "/sessions", map[string]any{"student_id": studentID, "subject": "history"})
	assert.Equal(t, fiber.StatusForbidden, code)

	app.approve(t, studentID)

	code, body := app.do(t, http.MethodPost, "/sessions", map[string]any{"student_id": studentID, "subject": "history"})
	require.Equal(t, fiber.StatusCreated, code, body)
	sessionID := data(t, body)["id"].(string)

	app.llm.AddResponse(llm.MockResponse{Content: json.RawMessage(`{"reply":"The war ended in 1945.","analysis":{"topics_covered":["ww2"],"current_understanding":"good"}}`)})
	code, body = app.do(t, http.MethodPost, "/sessions/"+sessionID+"/messages", map[string]any{"content": "When did WW2 end?"})
	require.Equal(t, fiber.StatusOK, code, body)
	turn := data(t, body)
	assert.Equal(t, true, turn["analysis_updated"])
	assert.Equal(t, "The war ended in 1945.", turn["reply"].(map[string]any)["content"])

	// nothing queued: provider unavailable
	code, body = app.do(t, http.MethodPost, "/sessions/"+sessionID+"/messages", map[string]any{"content": "And WW1?"})
	assert.Equal(t, fiber.StatusBadGateway, code)
	assert.Equal(t, false, body["success"])

	code, body = app.do(t, http.MethodGet, "/sessions/"+sessionID+"/messages", nil)
	require.Equal(t, fiber.StatusOK, code)
	assert.Len(t, body["data"], 2)

	code, body = app.do(t, http.MethodGet, "/sessions/"+sessionID+"/analysis", nil)
	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "good", data(t, body)["current_understanding"])

	// no quiz from the provider and an empty bank
	code, body = app.do(t, http.MethodPost, "/sessions/"+sessionID+"/end", nil)
	require.Equal(t, fiber.StatusOK, code, body)
	ended := data(t, body)
	assert.Equal(t, entity.SessionEnded, ended["status"])
	assert.NotContains(t, ended, "quiz")
	assert.NotContains(t, ended, "quiz_result")

	code, _ = app.do(t, http.MethodGet, "/sessions/"+sessionID+"/quiz", nil)
	assert.Equal(t, fiber.StatusConflict, code)

	code, _ = app.do(t, http.MethodPost, "/sessions/"+sessionID+"/messages", map[string]any{"content": "hello?"})
	assert.Equal(t, fiber.StatusConflict, code)

	code, body = app.do(t, http.MethodGet, "/students/"+studentID+"/sessions", nil)
	require.Equal(t, fiber.StatusOK, code)
	assert.Len(t, body["data"], 1)

	assert.Contains(t, app.events.Types(), event.SessionEnded)
}

func TestTutorHandler_QuizAnswers(t *testing.T) {
	app := newTestApp(t)
	studentID := app.registerStudent(t, "quiz@example.com")
	app.approve(t, studentID)

	code, body := app.do(t, http.MethodPost, "/sessions", map[string]any{"student_id": studentID, "subject": "math"})
	require.Equal(t, fiber.StatusCreated, code, body)
	sessionID := data(t, body)["id"].(string)

	app.llm.AddResponse(llm.MockResponse{Content: json.RawMessage(`{"questions":[
		{"type":"multiple_choice","question":"2+2?","options":["3","4"],"correct_answer":"4","explanation":"Two and two."},
		{"type":"true/false","question":"0 is even","correct_answer":"true"}
	]}`)})

	code, body = app.do(t, http.MethodPost, "/sessions/"+sessionID+"/end", nil)
	require.Equal(t, fiber.StatusOK, code, body)
	quizProgress := data(t, body)["quiz"].(map[string]any)
	assert.Equal(t, float64(2), quizProgress["total"])
	current := quizProgress["current_question"].(map[string]any)
	assert.NotContains(t, current, "correct_answer")

	code, _ = app.do(t, http.MethodPost, "/sessions/"+sessionID+"/quiz/answers", map[string]any{"answer": " "})
	assert.Equal(t, fiber.StatusBadRequest, code)

	code, body = app.do(t, http.MethodPost, "/sessions/"+sessionID+"/quiz/answers", map[string]any{"answer": "a"})
	require.Equal(t, fiber.StatusOK, code, body)
	first := data(t, body)
	assert.Equal(t, false, first["is_correct"])
	assert.NotContains(t, first, "quiz_result")

	code, body = app.do(t, http.MethodPost, "/sessions/"+sessionID+"/quiz/answers", map[string]any{"answer": "True"})
	require.Equal(t, fiber.StatusOK, code, body)
	result := data(t, body)["quiz_result"].(map[string]any)
	assert.Equal(t, float64(50), result["accuracy"])
	assert.Equal(t, "partial", result["understanding"])

	code, body = app.do(t, http.MethodGet, "/students/"+studentID+"/quiz-attempts", nil)
	require.Equal(t, fiber.StatusOK, code)
	assert.Len(t, body["data"], 1)

	code, _ = app.do(t, http.MethodGet, "/sessions/missing", nil)
	assert.Equal(t, fiber.StatusNotFound, code)

	// cleanup waits for the generated questions to land in the bank
	app.cleanup()
	count, err := repository.NewQuizRepository(app.db).CountQuestions(nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
