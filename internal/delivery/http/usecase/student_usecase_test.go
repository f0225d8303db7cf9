package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/evandrarf/tutorly-be/internal/analysis"
	httpEntity "github.com/evandrarf/tutorly-be/internal/delivery/http/entity"
	"github.com/evandrarf/tutorly-be/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStudentUsecase_Register(t *testing.T) {
	env := newTestEnv(t)
	uc := env.students()
	ctx := context.Background()

	res, err := uc.Register(ctx, httpEntity.RegisterStudentRequest{
		SchoolID: env.school.ID,
		Name:     " Siti ",
		Email:    "Siti@Example.com",
		Grade:    "11",
	})
	require.NoError(t, err)
	assert.Equal(t, "Siti", res.Name)
	assert.Equal(t, "siti@example.com", res.Email)
	assert.Equal(t, entity.ApprovalPending, res.ApprovalStatus)
	assert.False(t, res.Approved)

	_, err = uc.Register(ctx, httpEntity.RegisterStudentRequest{SchoolID: env.school.ID, Name: "Other", Email: "SITI@example.com"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = uc.Register(ctx, httpEntity.RegisterStudentRequest{SchoolID: "missing", Name: "Ghost", Email: "ghost@example.com"})
	assert.ErrorIs(t, err, ErrSchoolNotFound)

	got, err := uc.Get(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, res.ID, got.ID)

	_, err = uc.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrStudentNotFound)
}

func TestStudentUsecase_Report(t *testing.T) {
	env := newTestEnv(t)
	uc := env.students()
	ctx := context.Background()
	student := env.addStudent(t, "report@example.com", true)

	older := &entity.TutorSession{
		StudentID: student.ID,
		Subject:   "math",
		Status:    entity.SessionEnded,
		Analysis: analysis.Analysis{
			WeakAreas:            []string{"fractions"},
			TopicsCovered:        []string{"fractions"},
			CurrentUnderstanding: analysis.UnderstandingWeak,
		},
	}
	require.NoError(t, env.sessions.Create(nil, older))
	time.Sleep(5 * time.Millisecond)
	newer := &entity.TutorSession{
		StudentID: student.ID,
		Subject:   "math",
		Status:    entity.SessionActive,
		Analysis: analysis.Analysis{
			StrongAreas:          []string{"addition"},
			TopicsCovered:        []string{"addition"},
			CurrentUnderstanding: analysis.UnderstandingGood,
		},
	}
	require.NoError(t, env.sessions.Create(nil, newer))
	time.Sleep(5 * time.Millisecond)
	// a fresh session with no turns yet must not reset the understanding
	fresh := &entity.TutorSession{StudentID: student.ID, Subject: "math", Status: entity.SessionActive, Analysis: analysis.New()}
	require.NoError(t, env.sessions.Create(nil, fresh))

	for i, acc := range []int{60, 85} {
		attempt := &entity.QuizAttempt{
			SessionID:      []string{older.ID, newer.ID}[i],
			StudentID:      student.ID,
			CorrectCount:   acc / 20,
			TotalQuestions: 5,
			Accuracy:       acc,
			Understanding:  map[int]string{60: "partial", 85: "strong"}[acc],
		}
		require.NoError(t, env.quizzes.CreateAttempt(nil, attempt))
		time.Sleep(5 * time.Millisecond)
	}

	report, err := uc.Report(ctx, student.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, report.SessionCount)
	assert.Equal(t, 2, report.QuizAttemptCount)
	assert.Equal(t, 73, report.AverageAccuracy)
	assert.Equal(t, "strong", report.LatestUnderstanding)
	assert.Equal(t, []string{"fractions"}, report.Analysis.WeakAreas)
	assert.Equal(t, []string{"addition", "fractions"}, report.Analysis.TopicsCovered)
	assert.Equal(t, analysis.UnderstandingGood, report.Analysis.CurrentUnderstanding)
	require.Len(t, report.RecentAttempts, 2)
	assert.Equal(t, 85, report.RecentAttempts[0].Accuracy)

	summary, err := uc.Summary(ctx, student.ID)
	require.NoError(t, err)
	assert.Equal(t, report.ReportSummary, summary)

	_, err = uc.Report(ctx, "missing")
	assert.ErrorIs(t, err, ErrStudentNotFound)
}

func TestSummarize_NoAttempts(t *testing.T) {
	summary := summarize(3, nil)
	assert.Equal(t, httpEntity.ReportSummary{SessionCount: 3}, summary)
}
