package models

type StartInterviewRequest struct {
	JobRole     string `json:"jobRole"`
	ClerkUserID string `json:"clerkUserId"`
}

type StartInterviewResponse struct {
	InterviewID string `json:"interviewId"`
}

type GenerateQuestionRequest struct {
	JobRole string `json:"jobRole"`
	// Optional. When present, the latest uploaded resume and the question
	// memory for this user season the prompt.
	ClerkUserID string `json:"clerkUserId,omitempty"`
}

type GenerateQuestionResponse struct {
	Question string `json:"question"`
}

type GradeAnswerRequest struct {
	InterviewID string `json:"interviewId"`
	Question    string `json:"question"`
	UserAnswer  string `json:"userAnswer"`
}

type GradeAnswerResponse struct {
	Score       int    `json:"score"`
	Feedback    string `json:"feedback"`
	Improvement string `json:"improvement"`
}

type UploadResumeResponse struct {
	ID           string `json:"id"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
}
