package database

import (
	"github.com/evandrarf/tutorly-be/internal/entity"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&entity.School{},
		&entity.Student{},
		&entity.TutorSession{},
		&entity.ChatMessage{},
		&entity.QuizQuestion{},
		&entity.QuizAttempt{},
	)
	return err
}
