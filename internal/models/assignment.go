package models

import "time"

// Статусы сдачи задания. Порядок переходов не фиксируется жёстко:
// повторная сдача после проверки возвращает статус в "submitted",
// ранее выставленные баллы сохраняются до новой проверки.
const (
	SubmissionNotSubmitted = "not submitted"
	SubmissionSubmitted    = "submitted"
	SubmissionGraded       = "graded"
)

// Assignment — задание по теме дисциплины.
type Assignment struct {
	ID           int    `json:"id"`
	TopicID      int    `json:"topic_id"`
	DisciplineID int    `json:"discipline_id"`
	Title        string `json:"title"`
	Text         string `json:"text"`
	MaxPoints    int    `json:"max_points"`
}

// Submission — сдача задания студентом. На пару
// (student_id, assignment_id) существует не более одной записи.
type Submission struct {
	ID           int       `json:"id"`
	StudentID    int       `json:"student_id"`
	AssignmentID int       `json:"assignment_id"`
	AnswerText   string    `json:"answer_text"`
	Status       string    `json:"status"`
	Points       int       `json:"points"`
	MaxPoints    int       `json:"max_points"`
	UpdatedAt    time.Time `json:"-"`
}

// SubmitRequest — входные данные сдачи задания.
type SubmitRequest struct {
	AnswerText string `json:"answer_text"`
}

// GradeSubmissionRequest — входные данные проверки задания преподавателем.
type GradeSubmissionRequest struct {
	StudentID int `json:"student_id" validate:"required"`
	Points    int `json:"points"`
}
