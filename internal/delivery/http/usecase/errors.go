package usecase

import "errors"

var (
	ErrSchoolNotFound     = errors.New("school not found")
	ErrStudentNotFound    = errors.New("student not found")
	ErrStudentNotApproved = errors.New("student is not approved yet")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid school credentials")
	ErrInvalidAction      = errors.New("action must be approve or reject")

	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionNotActive = errors.New("session is not accepting messages")
	ErrSessionEnded     = errors.New("session already ended")
	ErrNoActiveQuiz     = errors.New("session has no quiz in progress")
	ErrTutorUnavailable = errors.New("tutor is unavailable, please try again")
)
