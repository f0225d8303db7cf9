package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
)

// School - akun sekolah, password disimpan sebagai bcrypt hash
type School struct {
	ID           string         `gorm:"primaryKey;size:36" json:"id"`
	Name         string         `gorm:"size:150;not null" json:"name"`
	PasswordHash string         `gorm:"size:100;not null" json:"-"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (School) TableName() string {
	return "schools"
}

func (s *School) BeforeCreate(*gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

type Student struct {
	ID              string         `gorm:"primaryKey;size:36" json:"id"`
	SchoolID        string         `gorm:"size:36;not null;index" json:"school_id"`
	Name            string         `gorm:"size:150;not null" json:"name"`
	Email           string         `gorm:"size:150;not null;uniqueIndex" json:"email"`
	Grade           string         `gorm:"size:20" json:"grade"`
	ApprovalStatus  string         `gorm:"size:20;not null;default:pending;index" json:"approval_status"` // pending, approved, rejected
	Approved        bool           `gorm:"not null;default:false" json:"approved"`
	RejectionReason string         `gorm:"type:text" json:"rejection_reason"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Student) TableName() string {
	return "students"
}

func (s *Student) BeforeCreate(*gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.ApprovalStatus == "" {
		s.ApprovalStatus = ApprovalPending
	}
	return nil
}
