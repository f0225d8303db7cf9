package repository

import (
	"slices"

	"github.com/evandrarf/tutorly-be/internal/entity"
	"gorm.io/gorm"
)

type (
	TutorSessionRepository interface {
		// Session operations
		Create(db *gorm.DB, session *entity.TutorSession) error
		FindByID(db *gorm.DB, id string) (*entity.TutorSession, error)
		Save(db *gorm.DB, session *entity.TutorSession) error
		FindByStudentID(db *gorm.DB, studentID string) ([]entity.TutorSession, error)

		// Chat message operations
		CreateChatMessage(db *gorm.DB, message *entity.ChatMessage) error
		FindChatMessagesBySessionID(db *gorm.DB, sessionID string) ([]entity.ChatMessage, error)
		FindRecentChatMessages(db *gorm.DB, sessionID string, limit int) ([]entity.ChatMessage, error)
	}

	tutorSessionRepository struct {
		db *gorm.DB
	}
)

func NewTutorSessionRepository(db *gorm.DB) TutorSessionRepository {
	return &tutorSessionRepository{db: db}
}

func (r *tutorSessionRepository) Create(db *gorm.DB, session *entity.TutorSession) error {
	if db == nil {
		db = r.db
	}
	return db.Create(session).Error
}

func (r *tutorSessionRepository) FindByID(db *gorm.DB, id string) (*entity.TutorSession, error) {
	if db == nil {
		db = r.db
	}
	var session entity.TutorSession
	err := db.Where("id = ?", id).First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *tutorSessionRepository) Save(db *gorm.DB, session *entity.TutorSession) error {
	if db == nil {
		db = r.db
	}
	return db.Save(session).Error
}

// FindByStudentID returns newest sessions first.
func (r *tutorSessionRepository) FindByStudentID(db *gorm.DB, studentID string) ([]entity.TutorSession, error) {
	if db == nil {
		db = r.db
	}
	var sessions []entity.TutorSession
	err := db.Where("student_id = ?", studentID).Order("created_at DESC").Find(&sessions).Error
	return sessions, err
}

func (r *tutorSessionRepository) CreateChatMessage(db *gorm.DB, message *entity.ChatMessage) error {
	if db == nil {
		db = r.db
	}
	return db.Create(message).Error
}

func (r *tutorSessionRepository) FindChatMessagesBySessionID(db *gorm.DB, sessionID string) ([]entity.ChatMessage, error) {
	if db == nil {
		db = r.db
	}
	var messages []entity.ChatMessage
	err := db.Where("session_id = ?", sessionID).Order("created_at ASC").Find(&messages).Error
	return messages, err
}

// FindRecentChatMessages returns the last limit messages in chronological order.
func (r *tutorSessionRepository) FindRecentChatMessages(db *gorm.DB, sessionID string, limit int) ([]entity.ChatMessage, error) {
	if db == nil {
		db = r.db
	}
	if limit <= 0 {
		return r.FindChatMessagesBySessionID(db, sessionID)
	}
	var messages []entity.ChatMessage
	err := db.Where("session_id = ?", sessionID).Order("created_at DESC").Limit(limit).Find(&messages).Error
	if err != nil {
		return nil, err
	}
	slices.Reverse(messages)
	return messages, nil
}
