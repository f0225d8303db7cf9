package event

type SessionEndedPayload struct {
	SessionID     string `json:"session_id"`
	StudentID     string `json:"student_id"`
	QuizGenerated bool   `json:"quiz_generated"`
}

type QuizCompletedPayload struct {
	SessionID      string `json:"session_id"`
	StudentID      string `json:"student_id"`
	AttemptID      string `json:"attempt_id"`
	CorrectCount   int    `json:"correct_count"`
	TotalQuestions int    `json:"total_questions"`
	Accuracy       int    `json:"accuracy"`
	Understanding  string `json:"understanding"`
}

type StudentApprovalPayload struct {
	StudentID       string `json:"student_id"`
	SchoolID        string `json:"school_id"`
	Status          string `json:"status"`
	RejectionReason string `json:"rejection_reason,omitempty"`
}
