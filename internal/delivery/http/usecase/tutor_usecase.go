package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/evandrarf/tutorly-be/internal/analysis"
	httpEntity "github.com/evandrarf/tutorly-be/internal/delivery/http/entity"
	"github.com/evandrarf/tutorly-be/internal/delivery/http/repository"
	"github.com/evandrarf/tutorly-be/internal/entity"
	"github.com/evandrarf/tutorly-be/internal/pkg/cache"
	"github.com/evandrarf/tutorly-be/internal/pkg/event"
	"github.com/evandrarf/tutorly-be/internal/pkg/llm"
	"github.com/evandrarf/tutorly-be/internal/pkg/mapper"
	"github.com/evandrarf/tutorly-be/internal/pkg/metrics"
	"github.com/evandrarf/tutorly-be/internal/quiz"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

const (
	defaultHistoryLimit      = 20
	defaultQuizQuestionCount = 5
	defaultLLMTimeout        = 60 * time.Second
)

type TutorUsecase interface {
	StartSession(ctx context.Context, req httpEntity.StartSessionRequest) (*httpEntity.SessionResponse, error)
	GetSession(ctx context.Context, sessionID string) (*httpEntity.SessionResponse, error)
	ListSessions(ctx context.Context, studentID string) ([]httpEntity.SessionResponse, error)
	SendMessage(ctx context.Context, sessionID string, req httpEntity.SendMessageRequest) (*httpEntity.ChatTurnResponse, error)
	History(ctx context.Context, sessionID string) ([]httpEntity.ChatMessageResponse, error)
	GetAnalysis(ctx context.Context, sessionID string) (*analysis.Analysis, error)
	EndSession(ctx context.Context, sessionID string) (*httpEntity.EndSessionResponse, error)
	QuizProgress(ctx context.Context, sessionID string) (*httpEntity.QuizProgressResponse, error)
	SubmitQuizAnswer(ctx context.Context, sessionID string, req httpEntity.SubmitAnswerRequest) (*httpEntity.SubmitAnswerResponse, error)
	ListQuizAttempts(ctx context.Context, studentID string) ([]httpEntity.QuizAttemptResponse, error)
	Drain()
}

type TutorConfig struct {
	DB             *gorm.DB
	LLM            llm.Provider
	PromptTemplate string
	Sessions       repository.TutorSessionRepository
	Schools        repository.SchoolRepository
	Quizzes        repository.QuizRepository
	Cache          cache.AnalysisCache
	Events         event.Publisher
	Log            *logrus.Logger
	Config         *viper.Viper
}

type tutorUsecase struct {
	cfg           TutorConfig
	historyLimit  int
	questionCount int
	llmTimeout    time.Duration
	background    sync.WaitGroup
}

func NewTutorUsecase(cfg TutorConfig) TutorUsecase {
	if cfg.PromptTemplate == "" {
		cfg.PromptTemplate = defaultTutorPromptTemplate
	}
	if cfg.Cache == nil {
		cfg.Cache = cache.NewNoopAnalysisCache()
	}

	u := &tutorUsecase{
		cfg:           cfg,
		historyLimit:  defaultHistoryLimit,
		questionCount: defaultQuizQuestionCount,
		llmTimeout:    defaultLLMTimeout,
	}
	if cfg.Config != nil {
		if v := cfg.Config.GetInt("tutor.history_limit"); v > 0 {
			u.historyLimit = v
		}
		if v := cfg.Config.GetInt("tutor.quiz_question_count"); v > 0 {
			u.questionCount = v
		}
		if v := cfg.Config.GetDuration("llm.timeout"); v > 0 {
			u.llmTimeout = v
		}
	}
	return u
}

func (u *tutorUsecase) StartSession(ctx context.Context, req httpEntity.StartSessionRequest) (*httpEntity.SessionResponse, error) {
	student, err := u.cfg.Schools.FindStudentByID(u.cfg.DB.WithContext(ctx), req.StudentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to find student: %w", err)
	}
	if !student.Approved {
		return nil, ErrStudentNotApproved
	}

	session := &entity.TutorSession{
		StudentID: student.ID,
		Subject:   strings.TrimSpace(req.Subject),
		Status:    entity.SessionActive,
		Analysis:  analysis.New(),
	}
	if err := u.cfg.Sessions.Create(u.cfg.DB.WithContext(ctx), session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	metrics.ActiveSessions.Inc()

	u.cfg.Log.WithFields(logrus.Fields{
		"session_id": session.ID,
		"student_id": student.ID,
		"subject":    session.Subject,
	}).Info("Tutor session started")

	res := mapper.ToSessionResponse(session)
	return &res, nil
}

func (u *tutorUsecase) GetSession(ctx context.Context, sessionID string) (*httpEntity.SessionResponse, error) {
	session, err := u.findSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	res := mapper.ToSessionResponse(session)
	return &res, nil
}

func (u *tutorUsecase) ListSessions(ctx context.Context, studentID string) ([]httpEntity.SessionResponse, error) {
	if err := u.ensureStudent(ctx, studentID); err != nil {
		return nil, err
	}
	sessions, err := u.cfg.Sessions.FindByStudentID(u.cfg.DB.WithContext(ctx), studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return mapper.ToSessionResponses(sessions), nil
}

// SendMessage runs one chat turn. A reply that fails schema validation keeps
// whatever fields still decode; when even the reply is missing the raw text is
// delivered and the analysis is left untouched. A provider failure persists
// nothing.
func (u *tutorUsecase) SendMessage(ctx context.Context, sessionID string, req httpEntity.SendMessageRequest) (*httpEntity.ChatTurnResponse, error) {
	session, err := u.findSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != entity.SessionActive {
		return nil, ErrSessionNotActive
	}

	log := u.cfg.Log.WithField("session_id", session.ID)

	history, err := u.cfg.Sessions.FindRecentChatMessages(u.cfg.DB.WithContext(ctx), session.ID, u.historyLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load chat history: %w", err)
	}

	userMsg := &entity.ChatMessage{
		SessionID: session.ID,
		Role:      string(llm.RoleUser),
		Content:   strings.TrimSpace(req.Content),
		ImageURL:  strings.TrimSpace(req.ImageURL),
		CreatedAt: time.Now(),
	}

	messages := make([]llm.Message, 0, len(history)+1)
	for _, m := range history {
		messages = append(messages, llm.Message{Role: llm.Role(m.Role), Content: m.Content, ImageURL: m.ImageURL})
	}
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: userMsg.Content, ImageURL: userMsg.ImageURL})

	callCtx, cancel := context.WithTimeout(ctx, u.llmTimeout)
	defer cancel()

	resp, err := u.cfg.LLM.Generate(callCtx, llm.Request{
		System:      buildTutorPrompt(u.cfg.PromptTemplate, session.Subject, session.Analysis),
		Messages:    messages,
		Schema:      chatTurnSchema,
		MaxTokens:   1024,
		Temperature: 0.7,
	})

	var turn chatTurn
	degraded, analysisUpdated := false, false
	switch {
	case err == nil:
		if decoded, ok := decodeChatTurn(resp.Content); ok {
			turn, analysisUpdated = decoded, true
		} else {
			turn = chatTurn{Reply: strings.TrimSpace(string(resp.Content))}
			degraded = true
		}
	default:
		var invalid *llm.ErrInvalidResponse
		if !errors.As(err, &invalid) || strings.TrimSpace(string(invalid.Content)) == "" {
			metrics.ChatTurns.WithLabelValues("failure").Inc()
			log.WithError(err).Error("Tutor LLM call failed")
			return nil, fmt.Errorf("%w: %v", ErrTutorUnavailable, err)
		}
		degraded = true
		if decoded, ok := decodeChatTurn(invalid.Content); ok {
			log.WithError(err).Warn("Tutor reply failed validation, using decodable fields")
			turn, analysisUpdated = decoded, true
		} else {
			log.WithError(err).Warn("Tutor reply failed validation, using raw text")
			turn = chatTurn{Reply: strings.TrimSpace(string(invalid.Content))}
		}
	}

	if analysisUpdated {
		session.Analysis.Merge(turn.Analysis)
	}

	assistantMsg := &entity.ChatMessage{
		SessionID: session.ID,
		Role:      string(llm.RoleAssistant),
		Content:   turn.Reply,
		CreatedAt: time.Now(),
	}
	if !assistantMsg.CreatedAt.After(userMsg.CreatedAt) {
		assistantMsg.CreatedAt = userMsg.CreatedAt.Add(time.Microsecond)
	}

	err = u.cfg.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.cfg.Sessions.CreateChatMessage(tx, userMsg); err != nil {
			return err
		}
		if err := u.cfg.Sessions.CreateChatMessage(tx, assistantMsg); err != nil {
			return err
		}
		if analysisUpdated {
			return u.cfg.Sessions.Save(tx, session)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save chat turn: %w", err)
	}

	if degraded {
		metrics.ChatTurns.WithLabelValues("fallback").Inc()
	} else {
		metrics.ChatTurns.WithLabelValues("success").Inc()
	}
	if err := u.cfg.Cache.Set(ctx, session.ID, session.Analysis); err != nil {
		log.WithError(err).Warn("Failed to cache session analysis")
	}

	return &httpEntity.ChatTurnResponse{
		SessionID:       session.ID,
		Message:         mapper.ToChatMessageResponse(userMsg),
		Reply:           mapper.ToChatMessageResponse(assistantMsg),
		Analysis:        session.Analysis.Clone(),
		AnalysisUpdated: analysisUpdated,
	}, nil
}

// decodeChatTurn reads as much of a turn as decodes. Type mismatches in the
// analysis lists do not discard the reply or the other fields.
func decodeChatTurn(raw []byte) (chatTurn, bool) {
	var turn chatTurn
	if err := json.Unmarshal(raw, &turn); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return chatTurn{}, false
		}
	}
	turn.Reply = strings.TrimSpace(turn.Reply)
	if turn.Reply == "" {
		return chatTurn{}, false
	}
	return turn, true
}

func (u *tutorUsecase) History(ctx context.Context, sessionID string) ([]httpEntity.ChatMessageResponse, error) {
	if _, err := u.findSession(ctx, sessionID); err != nil {
		return nil, err
	}
	messages, err := u.cfg.Sessions.FindChatMessagesBySessionID(u.cfg.DB.WithContext(ctx), sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load chat history: %w", err)
	}
	return mapper.ToChatMessageResponses(messages), nil
}

func (u *tutorUsecase) GetAnalysis(ctx context.Context, sessionID string) (*analysis.Analysis, error) {
	log := u.cfg.Log.WithField("session_id", sessionID)

	cached, err := u.cfg.Cache.Get(ctx, sessionID)
	if err == nil {
		return &cached, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		log.WithError(err).Warn("Failed to read cached analysis")
	}

	session, err := u.findSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := u.cfg.Cache.Set(ctx, session.ID, session.Analysis); err != nil {
		log.WithError(err).Warn("Failed to cache session analysis")
	}
	a := session.Analysis.Clone()
	return &a, nil
}

// EndSession closes the conversation and starts the review quiz. Calling it
// again while the quiz runs returns the current progress.
func (u *tutorUsecase) EndSession(ctx context.Context, sessionID string) (*httpEntity.EndSessionResponse, error) {
	session, err := u.findSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	switch session.Status {
	case entity.SessionEnded:
		return nil, ErrSessionEnded
	case entity.SessionQuiz:
		if session.Quiz != nil {
			progress := mapper.ToQuizProgress(session.Quiz)
			return &httpEntity.EndSessionResponse{SessionID: session.ID, Status: session.Status, Quiz: &progress}, nil
		}
	}

	log := u.cfg.Log.WithField("session_id", session.ID)

	state, err := quiz.NewState(u.generateQuiz(ctx, session))
	if errors.Is(err, quiz.ErrEmptyQuiz) {
		now := time.Now()
		session.Status = entity.SessionEnded
		session.Quiz = nil
		session.EndedAt = &now
		if err := u.cfg.Sessions.Save(u.cfg.DB.WithContext(ctx), session); err != nil {
			return nil, fmt.Errorf("failed to end session: %w", err)
		}
		metrics.ActiveSessions.Dec()
		u.dropCachedAnalysis(ctx, session.ID)

		u.publish(ctx, event.SessionEnded, event.SessionEndedPayload{
			SessionID:     session.ID,
			StudentID:     session.StudentID,
			QuizGenerated: false,
		})
		log.Info("Session ended without a quiz")

		return &httpEntity.EndSessionResponse{SessionID: session.ID, Status: session.Status}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to build quiz: %w", err)
	}

	session.Status = entity.SessionQuiz
	session.Quiz = state
	if err := u.cfg.Sessions.Save(u.cfg.DB.WithContext(ctx), session); err != nil {
		return nil, fmt.Errorf("failed to start quiz: %w", err)
	}
	log.WithField("questions", state.Total()).Info("Session entered quiz mode")

	progress := mapper.ToQuizProgress(state)
	return &httpEntity.EndSessionResponse{SessionID: session.ID, Status: session.Status, Quiz: &progress}, nil
}

// generateQuiz asks the LLM first, then falls back to the question bank when
// the call fails or leaves no answerable question. An empty result means no
// quiz.
func (u *tutorUsecase) generateQuiz(ctx context.Context, session *entity.TutorSession) []quiz.Question {
	log := u.cfg.Log.WithField("session_id", session.ID)

	questions, err := u.generateQuizFromLLM(ctx, session)
	if err != nil {
		log.WithError(err).Warn("Quiz generation failed, using question bank")
	} else if len(questions) > 0 {
		u.saveToBank(session.Subject, questions)
		return questions
	} else {
		log.Warn("Generated quiz had no usable questions, using question bank")
	}

	topics := append(append([]string{}, session.Analysis.WeakAreas...), session.Analysis.TopicsCovered...)
	rows, err := u.cfg.Quizzes.FindBankQuestions(u.cfg.DB.WithContext(ctx), session.Subject, topics, u.questionCount)
	if err != nil {
		log.WithError(err).Warn("Failed to load question bank")
		return nil
	}

	questions = make([]quiz.Question, 0, len(rows))
	ids := make([]string, 0, len(rows))
	for i := range rows {
		questions = append(questions, mapper.ToQuizQuestion(&rows[i]))
		ids = append(ids, rows[i].ID)
	}
	u.bumpUsage(ids)
	return questions
}

func (u *tutorUsecase) generateQuizFromLLM(ctx context.Context, session *entity.TutorSession) ([]quiz.Question, error) {
	callCtx, cancel := context.WithTimeout(ctx, u.llmTimeout)
	defer cancel()

	resp, err := u.cfg.LLM.Generate(callCtx, llm.Request{
		System: quizSystemPrompt,
		Messages: []llm.Message{{
			Role:    llm.RoleUser,
			Content: buildQuizPrompt(session.Subject, session.Analysis, u.questionCount),
		}},
		Schema:      quizSchema,
		MaxTokens:   2048,
		Temperature: 0.4,
	})
	if err != nil {
		return nil, err
	}

	var payload struct {
		Questions []quiz.Question `json:"questions"`
	}
	if err := json.Unmarshal(resp.Content, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse quiz: %w", err)
	}

	questions := quiz.Sanitize(payload.Questions)
	if len(questions) > u.questionCount {
		questions = questions[:u.questionCount]
	}
	return questions, nil
}

func (u *tutorUsecase) saveToBank(subject string, questions []quiz.Question) {
	generatedBy := u.cfg.LLM.ModelID()
	rows := make([]entity.QuizQuestion, 0, len(questions))
	for _, q := range questions {
		rows = append(rows, mapper.ToBankQuestion(subject, generatedBy, q))
	}

	u.background.Add(1)
	go func() {
		defer u.background.Done()
		for i := range rows {
			if err := u.cfg.Quizzes.CreateQuestion(u.cfg.DB, &rows[i]); err != nil {
				u.cfg.Log.WithError(err).Warn("Failed to save generated question to bank")
			}
		}
	}()
}

func (u *tutorUsecase) bumpUsage(ids []string) {
	if len(ids) == 0 {
		return
	}
	u.background.Add(1)
	go func() {
		defer u.background.Done()
		if err := u.cfg.Quizzes.IncrementUsageCount(u.cfg.DB, ids); err != nil {
			u.cfg.Log.WithError(err).Warn("Failed to bump question usage count")
		}
	}()
}

func (u *tutorUsecase) QuizProgress(ctx context.Context, sessionID string) (*httpEntity.QuizProgressResponse, error) {
	session, err := u.findSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != entity.SessionQuiz || session.Quiz == nil {
		return nil, ErrNoActiveQuiz
	}
	progress := mapper.ToQuizProgress(session.Quiz)
	return &progress, nil
}

func (u *tutorUsecase) SubmitQuizAnswer(ctx context.Context, sessionID string, req httpEntity.SubmitAnswerRequest) (*httpEntity.SubmitAnswerResponse, error) {
	session, err := u.findSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != entity.SessionQuiz || session.Quiz == nil {
		return nil, ErrNoActiveQuiz
	}

	state := session.Quiz
	current, _ := state.Current()
	correct, err := state.Submit(req.Answer)
	if err != nil {
		return nil, err
	}

	res := &httpEntity.SubmitAnswerResponse{
		SessionID:  session.ID,
		QuestionID: current.ID,
		IsCorrect:  correct,
		Progress:   mapper.ToQuizProgress(state),
	}

	if !state.Done() {
		if err := u.cfg.Sessions.Save(u.cfg.DB.WithContext(ctx), session); err != nil {
			return nil, fmt.Errorf("failed to save answer: %w", err)
		}
		return res, nil
	}

	result, err := state.Result()
	if err != nil {
		return nil, err
	}

	attempt := &entity.QuizAttempt{
		SessionID:      session.ID,
		StudentID:      session.StudentID,
		CorrectCount:   result.CorrectCount,
		TotalQuestions: result.TotalQuestions,
		Accuracy:       result.Accuracy,
		Understanding:  string(result.Understanding),
		Answers:        result.Answers,
	}

	now := time.Now()
	session.Status = entity.SessionEnded
	session.EndedAt = &now

	err = u.cfg.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.cfg.Quizzes.CreateAttempt(tx, attempt); err != nil {
			return err
		}
		return u.cfg.Sessions.Save(tx, session)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save quiz result: %w", err)
	}

	metrics.QuizCompleted.WithLabelValues(attempt.Understanding).Inc()
	metrics.ActiveSessions.Dec()
	u.dropCachedAnalysis(ctx, session.ID)

	u.publish(ctx, event.QuizCompleted, event.QuizCompletedPayload{
		SessionID:      session.ID,
		StudentID:      session.StudentID,
		AttemptID:      attempt.ID,
		CorrectCount:   attempt.CorrectCount,
		TotalQuestions: attempt.TotalQuestions,
		Accuracy:       attempt.Accuracy,
		Understanding:  attempt.Understanding,
	})

	u.cfg.Log.WithFields(logrus.Fields{
		"session_id":    session.ID,
		"accuracy":      attempt.Accuracy,
		"understanding": attempt.Understanding,
	}).Info("Quiz completed")

	res.QuizResult = mapper.ToQuizResultResponse(attempt)
	return res, nil
}

func (u *tutorUsecase) ListQuizAttempts(ctx context.Context, studentID string) ([]httpEntity.QuizAttemptResponse, error) {
	if err := u.ensureStudent(ctx, studentID); err != nil {
		return nil, err
	}
	attempts, err := u.cfg.Quizzes.FindAttemptsByStudentID(u.cfg.DB.WithContext(ctx), studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list quiz attempts: %w", err)
	}
	return mapper.ToQuizAttemptResponses(attempts), nil
}

func (u *tutorUsecase) findSession(ctx context.Context, sessionID string) (*entity.TutorSession, error) {
	session, err := u.cfg.Sessions.FindByID(u.cfg.DB.WithContext(ctx), sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	return session, nil
}

func (u *tutorUsecase) ensureStudent(ctx context.Context, studentID string) error {
	_, err := u.cfg.Schools.FindStudentByID(u.cfg.DB.WithContext(ctx), studentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrStudentNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to find student: %w", err)
	}
	return nil
}

func (u *tutorUsecase) publish(ctx context.Context, eventType string, payload any) {
	if u.cfg.Events == nil {
		return
	}
	if err := u.cfg.Events.Publish(ctx, eventType, payload); err != nil {
		u.cfg.Log.WithError(err).WithField("event", eventType).Warn("Failed to publish event")
	}
}

// dropCachedAnalysis evicts an ended session's analysis; later reads reload it
// from the database.
func (u *tutorUsecase) dropCachedAnalysis(ctx context.Context, sessionID string) {
	if err := u.cfg.Cache.Delete(ctx, sessionID); err != nil {
		u.cfg.Log.WithError(err).WithField("session_id", sessionID).Warn("Failed to drop cached analysis")
	}
}

// Drain blocks until fire-and-forget bank writes finish.
func (u *tutorUsecase) Drain() {
	u.background.Wait()
}
