package usecase

import (
	"io"
	"testing"

	"github.com/evandrarf/tutorly-be/database"
	"github.com/evandrarf/tutorly-be/internal/delivery/http/repository"
	"github.com/evandrarf/tutorly-be/internal/entity"
	"github.com/evandrarf/tutorly-be/internal/pkg/event"
	"github.com/evandrarf/tutorly-be/internal/pkg/llm"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testSchoolPassword = "rahasia-sekolah"

type testEnv struct {
	db       *gorm.DB
	log      *logrus.Logger
	config   *viper.Viper
	llm      *llm.MockProvider
	events   *event.Recorder
	schools  repository.SchoolRepository
	sessions repository.TutorSessionRepository
	quizzes  repository.QuizRepository
	school   *entity.School
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	config := viper.New()
	config.Set("database.driver", "sqlite")
	config.Set("database.path", ":memory:")
	config.Set("tutor.quiz_question_count", 5)

	db := database.New(config)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	log := logrus.New()
	log.SetOutput(io.Discard)

	env := &testEnv{
		db:       db,
		log:      log,
		config:   config,
		llm:      llm.NewMockProvider(),
		events:   event.NewRecorder(),
		schools:  repository.NewSchoolRepository(db),
		sessions: repository.NewTutorSessionRepository(db),
		quizzes:  repository.NewQuizRepository(db),
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(testSchoolPassword), bcrypt.MinCost)
	require.NoError(t, err)
	env.school = &entity.School{Name: "SMA Negeri 1", PasswordHash: string(hash)}
	require.NoError(t, env.schools.CreateSchool(nil, env.school))

	return env
}

func (e *testEnv) addStudent(t *testing.T, email string, approved bool) *entity.Student {
	t.Helper()
	student := &entity.Student{SchoolID: e.school.ID, Name: "Budi", Email: email, Grade: "10"}
	if approved {
		student.ApprovalStatus = entity.ApprovalApproved
		student.Approved = true
	}
	require.NoError(t, e.schools.CreateStudent(nil, student))
	return student
}

func (e *testEnv) tutor() *tutorUsecase {
	return NewTutorUsecase(TutorConfig{
		DB:       e.db,
		LLM:      e.llm,
		Sessions: e.sessions,
		Schools:  e.schools,
		Quizzes:  e.quizzes,
		Events:   e.events,
		Log:      e.log,
		Config:   e.config,
	}).(*tutorUsecase)
}

func (e *testEnv) students() StudentUsecase {
	return NewStudentUsecase(StudentConfig{
		DB:       e.db,
		Schools:  e.schools,
		Sessions: e.sessions,
		Quizzes:  e.quizzes,
		Log:      e.log,
	})
}

func (e *testEnv) approvals() ApprovalUsecase {
	return NewApprovalUsecase(ApprovalConfig{
		DB:       e.db,
		Schools:  e.schools,
		Students: e.students(),
		Events:   e.events,
		Log:      e.log,
	})
}
