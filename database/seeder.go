package database

import (
	"errors"
	"fmt"

	"github.com/evandrarf/tutorly-be/internal/entity"
	"github.com/evandrarf/tutorly-be/internal/quiz"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// StarterQuestions - bank soal awal, dipakai saat LLM tidak bisa generate quiz
var StarterQuestions = []entity.QuizQuestion{
	// ==================== MATH ====================
	{Subject: "math", Topic: "fractions", Type: string(quiz.TypeMultipleChoice), Prompt: "Which fraction is equal to 1/2?", Options: []string{"2/3", "3/6", "1/3", "2/5"}, CorrectAnswer: "3/6", Explanation: "3/6 simplifies to 1/2 by dividing top and bottom by 3.", Difficulty: "easy"},
	{Subject: "math", Topic: "fractions", Type: string(quiz.TypeShortAnswer), Prompt: "What is 1/4 + 1/4? Give the simplest form.", CorrectAnswer: "1/2", Explanation: "Two quarters make two fourths, which is one half.", Difficulty: "easy"},
	{Subject: "math", Topic: "multiplication", Type: string(quiz.TypeFillBlank), Prompt: "7 x 8 = ___", CorrectAnswer: "56", Explanation: "Seven groups of eight is 56.", Difficulty: "easy"},
	{Subject: "math", Topic: "multiplication", Type: string(quiz.TypeTrueFalse), Prompt: "Any number multiplied by zero is zero.", Options: []string{"True", "False"}, CorrectAnswer: "True", Explanation: "Zero groups of anything is nothing.", Difficulty: "easy"},
	{Subject: "math", Topic: "linear equations", Type: string(quiz.TypeMultipleChoice), Prompt: "Solve for x: 2x + 3 = 11", Options: []string{"3", "4", "5", "7"}, CorrectAnswer: "4", Explanation: "Subtract 3 to get 2x = 8, then divide by 2.", Difficulty: "medium"},
	{Subject: "math", Topic: "linear equations", Type: string(quiz.TypeShortAnswer), Prompt: "If 3x = 21, what is x?", CorrectAnswer: "7", Explanation: "Divide both sides by 3.", Difficulty: "easy"},
	{Subject: "math", Topic: "geometry", Type: string(quiz.TypeMultipleChoice), Prompt: "What is the sum of the interior angles of a triangle?", Options: []string{"90 degrees", "180 degrees", "270 degrees", "360 degrees"}, CorrectAnswer: "180 degrees", Explanation: "The three angles of any triangle add up to 180 degrees.", Difficulty: "easy"},
	// ==================== SCIENCE ====================
	{Subject: "science", Topic: "photosynthesis", Type: string(quiz.TypeMultipleChoice), Prompt: "Which gas do plants take in for photosynthesis?", Options: []string{"Oxygen", "Nitrogen", "Carbon dioxide", "Hydrogen"}, CorrectAnswer: "Carbon dioxide", Explanation: "Plants use carbon dioxide and water to make glucose.", Difficulty: "easy"},
	{Subject: "science", Topic: "photosynthesis", Type: string(quiz.TypeFillBlank), Prompt: "Photosynthesis mainly happens in the ___ of plant cells.", CorrectAnswer: "chloroplasts", Explanation: "Chloroplasts contain chlorophyll which captures light.", Difficulty: "medium"},
	{Subject: "science", Topic: "states of matter", Type: string(quiz.TypeTrueFalse), Prompt: "Water boils at 100 degrees Celsius at sea level.", Options: []string{"True", "False"}, CorrectAnswer: "True", Explanation: "At standard pressure the boiling point of water is 100 C.", Difficulty: "easy"},
	{Subject: "science", Topic: "states of matter", Type: string(quiz.TypeShortAnswer), Prompt: "What is it called when a solid turns directly into a gas?", CorrectAnswer: "sublimation", Explanation: "Dry ice is a common example of sublimation.", Difficulty: "medium"},
	{Subject: "science", Topic: "forces", Type: string(quiz.TypeMultipleChoice), Prompt: "What force pulls objects toward the Earth?", Options: []string{"Friction", "Gravity", "Magnetism", "Tension"}, CorrectAnswer: "Gravity", Explanation: "Gravity attracts masses toward each other.", Difficulty: "easy"},
}

// SeedQuestionBank - isi bank soal kalau masih kosong
func SeedQuestionBank(db *gorm.DB, log *logrus.Logger) error {
	var count int64
	if err := db.Model(&entity.QuizQuestion{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count question bank: %w", err)
	}
	if count > 0 {
		log.Info("Question bank already seeded, skipping...")
		return nil
	}

	log.Info("Seeding question bank...")

	for i := range StarterQuestions {
		q := StarterQuestions[i]
		q.GeneratedBy = "seed"
		if err := db.Create(&q).Error; err != nil {
			return fmt.Errorf("failed to seed question %q: %w", q.Prompt, err)
		}
	}

	log.Infof("Successfully seeded %d questions", len(StarterQuestions))
	return nil
}

// SeedDemoSchool creates the school configured under seed.demo_school when
// both its id and password are set. Existing schools are left untouched.
func SeedDemoSchool(db *gorm.DB, config *viper.Viper, log *logrus.Logger) error {
	id := config.GetString("seed.demo_school.id")
	password := config.GetString("seed.demo_school.password")
	if id == "" || password == "" {
		return nil
	}

	var existing entity.School
	err := db.Where("id = ?", id).First(&existing).Error
	if err == nil {
		log.Info("Demo school already seeded, skipping...")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to look up demo school: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash demo school password: %w", err)
	}

	name := config.GetString("seed.demo_school.name")
	if name == "" {
		name = "Demo School"
	}

	school := entity.School{ID: id, Name: name, PasswordHash: string(hash)}
	if err := db.Create(&school).Error; err != nil {
		return fmt.Errorf("failed to seed demo school: %w", err)
	}

	log.Infof("Seeded demo school %s", id)
	return nil
}
