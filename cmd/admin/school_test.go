package main

import (
	"bytes"
	"testing"

	"github.com/evandrarf/tutorly-be/database"
	"github.com/evandrarf/tutorly-be/internal/delivery/http/repository"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	config := viper.New()
	config.Set("database.driver", "sqlite")
	config.Set("database.path", ":memory:")
	db := database.New(config)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestAddSchoolAndResetPassword(t *testing.T) {
	db := newTestDB(t)

	school, err := addSchool(db, "sma-1", " SMA 1 ", "rahasia123")
	require.NoError(t, err)
	assert.Equal(t, "sma-1", school.ID)
	assert.Equal(t, "SMA 1", school.Name)

	require.NoError(t, resetSchoolPassword(db, "sma-1", "baru-12345"))

	stored, err := repository.NewSchoolRepository(db).FindSchoolByID(nil, "sma-1")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("baru-12345")))

	assert.Error(t, resetSchoolPassword(db, "missing", "baru-12345"))
}

func TestAddSchool_Validation(t *testing.T) {
	db := newTestDB(t)

	_, err := addSchool(db, "", "SMA", "short")
	assert.ErrorIs(t, err, errPasswordTooShort)

	_, err = addSchool(db, "", "  ", "long-enough")
	assert.Error(t, err)
}

func TestPromptPassword(t *testing.T) {
	orig := readPasswordFunc
	t.Cleanup(func() { readPasswordFunc = orig })
	readPasswordFunc = func(int) ([]byte, error) { return []byte("s3cret-pass"), nil }

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	pwd, err := promptPassword(cmd)
	require.NoError(t, err)
	assert.Equal(t, "s3cret-pass", pwd)
	assert.Contains(t, out.String(), "Enter password:")
}
