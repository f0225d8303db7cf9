package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/evandrarf/tutorly-be/internal/delivery/http/repository"
	"github.com/evandrarf/tutorly-be/internal/entity"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 8

var errPasswordTooShort = fmt.Errorf("password must be at least %d characters", minPasswordLength)

func hashPassword(password string) (string, error) {
	if len(password) < minPasswordLength {
		return "", errPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func addSchool(db *gorm.DB, id, name, password string) (*entity.School, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("school name is required")
	}
	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	school := &entity.School{ID: strings.TrimSpace(id), Name: name, PasswordHash: hash}
	if err := repository.NewSchoolRepository(db).CreateSchool(nil, school); err != nil {
		return nil, fmt.Errorf("failed to create school: %w", err)
	}
	return school, nil
}

func resetSchoolPassword(db *gorm.DB, id, password string) error {
	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	err = repository.NewSchoolRepository(db).UpdateSchoolPassword(nil, id, hash)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("school %s not found", id)
	}
	return err
}
