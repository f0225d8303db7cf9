package repository

import (
	"strings"

	"github.com/evandrarf/tutorly-be/internal/entity"
	"gorm.io/gorm"
)

type (
	QuizRepository interface {
		// Question bank operations
		CreateQuestion(db *gorm.DB, question *entity.QuizQuestion) error
		CountQuestions(db *gorm.DB) (int64, error)
		FindBankQuestions(db *gorm.DB, subject string, topics []string, limit int) ([]entity.QuizQuestion, error)
		IncrementUsageCount(db *gorm.DB, ids []string) error

		// Attempt operations
		CreateAttempt(db *gorm.DB, attempt *entity.QuizAttempt) error
		FindAttemptsByStudentID(db *gorm.DB, studentID string) ([]entity.QuizAttempt, error)
	}

	quizRepository struct {
		db *gorm.DB
	}
)

func NewQuizRepository(db *gorm.DB) QuizRepository {
	return &quizRepository{db: db}
}

func (r *quizRepository) CreateQuestion(db *gorm.DB, question *entity.QuizQuestion) error {
	if db == nil {
		db = r.db
	}
	return db.Create(question).Error
}

func (r *quizRepository) CountQuestions(db *gorm.DB) (int64, error) {
	if db == nil {
		db = r.db
	}
	var count int64
	err := db.Model(&entity.QuizQuestion{}).Count(&count).Error
	return count, err
}

// FindBankQuestions picks questions for subject, preferring ones tagged with
// any of topics, least used first.
func (r *quizRepository) FindBankQuestions(db *gorm.DB, subject string, topics []string, limit int) ([]entity.QuizQuestion, error) {
	if db == nil {
		db = r.db
	}
	if limit <= 0 {
		return nil, nil
	}
	subject = strings.ToLower(strings.TrimSpace(subject))

	var questions []entity.QuizQuestion

	lowered := make([]string, 0, len(topics))
	for _, t := range topics {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			lowered = append(lowered, t)
		}
	}
	if len(lowered) > 0 {
		err := db.Where("LOWER(subject) = ? AND LOWER(topic) IN ?", subject, lowered).
			Order("usage_count ASC, created_at DESC").
			Limit(limit).
			Find(&questions).Error
		if err != nil {
			return nil, err
		}
	}

	if len(questions) >= limit {
		return questions, nil
	}

	query := db.Where("LOWER(subject) = ?", subject)
	if len(questions) > 0 {
		ids := make([]string, len(questions))
		for i, q := range questions {
			ids[i] = q.ID
		}
		query = query.Where("id NOT IN ?", ids)
	}
	var rest []entity.QuizQuestion
	err := query.Order("usage_count ASC, created_at DESC").Limit(limit - len(questions)).Find(&rest).Error
	if err != nil {
		return nil, err
	}
	return append(questions, rest...), nil
}

func (r *quizRepository) IncrementUsageCount(db *gorm.DB, ids []string) error {
	if db == nil {
		db = r.db
	}
	if len(ids) == 0 {
		return nil
	}
	return db.Model(&entity.QuizQuestion{}).
		Where("id IN ?", ids).
		UpdateColumn("usage_count", gorm.Expr("usage_count + ?", 1)).Error
}

func (r *quizRepository) CreateAttempt(db *gorm.DB, attempt *entity.QuizAttempt) error {
	if db == nil {
		db = r.db
	}
	return db.Create(attempt).Error
}

// FindAttemptsByStudentID returns newest attempts first.
func (r *quizRepository) FindAttemptsByStudentID(db *gorm.DB, studentID string) ([]entity.QuizAttempt, error) {
	if db == nil {
		db = r.db
	}
	var attempts []entity.QuizAttempt
	err := db.Where("student_id = ?", studentID).Order("created_at DESC").Find(&attempts).Error
	return attempts, err
}
