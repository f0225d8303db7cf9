package repository

import (
	"github.com/evandrarf/tutorly-be/internal/entity"
	"gorm.io/gorm"
)

type (
	SchoolRepository interface {
		// School operations
		CreateSchool(db *gorm.DB, school *entity.School) error
		FindSchoolByID(db *gorm.DB, id string) (*entity.School, error)
		UpdateSchoolPassword(db *gorm.DB, id, passwordHash string) error

		// Student operations
		CreateStudent(db *gorm.DB, student *entity.Student) error
		FindStudentByID(db *gorm.DB, id string) (*entity.Student, error)
		FindStudentByEmail(db *gorm.DB, email string) (*entity.Student, error)
		FindStudentsBySchoolID(db *gorm.DB, schoolID, status string) ([]entity.Student, error)
		UpdateStudentApproval(db *gorm.DB, student *entity.Student) error
	}

	schoolRepository struct {
		db *gorm.DB
	}
)

func NewSchoolRepository(db *gorm.DB) SchoolRepository {
	return &schoolRepository{db: db}
}

func (r *schoolRepository) CreateSchool(db *gorm.DB, school *entity.School) error {
	if db == nil {
		db = r.db
	}
	return db.Create(school).Error
}

func (r *schoolRepository) FindSchoolByID(db *gorm.DB, id string) (*entity.School, error) {
	if db == nil {
		db = r.db
	}
	var school entity.School
	err := db.Where("id = ?", id).First(&school).Error
	if err != nil {
		return nil, err
	}
	return &school, nil
}

func (r *schoolRepository) UpdateSchoolPassword(db *gorm.DB, id, passwordHash string) error {
	if db == nil {
		db = r.db
	}
	result := db.Model(&entity.School{}).Where("id = ?", id).Update("password_hash", passwordHash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *schoolRepository) CreateStudent(db *gorm.DB, student *entity.Student) error {
	if db == nil {
		db = r.db
	}
	return db.Create(student).Error
}

func (r *schoolRepository) FindStudentByID(db *gorm.DB, id string) (*entity.Student, error) {
	if db == nil {
		db = r.db
	}
	var student entity.Student
	err := db.Where("id = ?", id).First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *schoolRepository) FindStudentByEmail(db *gorm.DB, email string) (*entity.Student, error) {
	if db == nil {
		db = r.db
	}
	var student entity.Student
	err := db.Where("LOWER(email) = LOWER(?)", email).First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// FindStudentsBySchoolID lists a school's students, optionally filtered by
// approval status.
func (r *schoolRepository) FindStudentsBySchoolID(db *gorm.DB, schoolID, status string) ([]entity.Student, error) {
	if db == nil {
		db = r.db
	}
	var students []entity.Student
	query := db.Where("school_id = ?", schoolID)
	if status != "" {
		query = query.Where("approval_status = ?", status)
	}
	err := query.Order("created_at ASC").Find(&students).Error
	return students, err
}

func (r *schoolRepository) UpdateStudentApproval(db *gorm.DB, student *entity.Student) error {
	if db == nil {
		db = r.db
	}
	return db.Model(student).
		Select("approval_status", "approved", "rejection_reason").
		Updates(student).Error
}
