package database

import (
	"io"
	"testing"

	"github.com/evandrarf/tutorly-be/internal/entity"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestConfig() *viper.Viper {
	v := viper.New()
	v.Set("database.driver", "sqlite")
	v.Set("database.path", ":memory:")
	return v
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestMigrateAndSeed(t *testing.T) {
	config := newTestConfig()
	config.Set("seed.demo_school.id", "demo-school")
	config.Set("seed.demo_school.password", "secret123")

	db := New(config)
	require.NoError(t, Migrate(db))

	log := quietLogger()
	require.NoError(t, SeedQuestionBank(db, log))
	require.NoError(t, SeedQuestionBank(db, log), "seeding twice is a no-op")

	var count int64
	require.NoError(t, db.Model(&entity.QuizQuestion{}).Count(&count).Error)
	assert.Equal(t, int64(len(StarterQuestions)), count)

	require.NoError(t, SeedDemoSchool(db, config, log))
	require.NoError(t, SeedDemoSchool(db, config, log))

	var school entity.School
	require.NoError(t, db.First(&school, "id = ?", "demo-school").Error)
	assert.Equal(t, "Demo School", school.Name)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(school.PasswordHash), []byte("secret123")))
}

func TestSeedDemoSchool_SkippedWithoutConfig(t *testing.T) {
	config := newTestConfig()
	db := New(config)
	require.NoError(t, Migrate(db))

	require.NoError(t, SeedDemoSchool(db, config, quietLogger()))

	var count int64
	require.NoError(t, db.Model(&entity.School{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestNew_UnknownDriver(t *testing.T) {
	config := viper.New()
	config.Set("database.driver", "oracle")
	assert.Panics(t, func() { New(config) })
}

func TestPostgresDSN_Defaults(t *testing.T) {
	config := viper.New()
	config.Set("database.host", "localhost")
	config.Set("database.username", "tutor")
	config.Set("database.dbname", "tutorly")

	assert.Equal(t,
		"host=localhost user=tutor password= dbname=tutorly port=5432 sslmode=disable TimeZone=UTC",
		postgresDSN(config),
	)
}
