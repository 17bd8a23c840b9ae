// Package services содержит бизнес-логику заданий и сдач.
//
// Чтение своей сдачи материализует запись: отсутствующая сдача
// создаётся в статусе "not submitted" с нулём баллов. Контракт
// "чтение может писать" отражён в сигнатуре MySubmission явно,
// двумя шагами — поиск, затем создание при отсутствии.
package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gritsuts/edu-platform/internal/events"
	"github.com/gritsuts/edu-platform/internal/lib/rabbitmq"
	"github.com/gritsuts/edu-platform/internal/lib/sl"
	"github.com/gritsuts/edu-platform/internal/models"
	"github.com/gritsuts/edu-platform/internal/storage/repository"
)

var (
	// ErrAssignmentNotFound — задание с таким ID отсутствует.
	ErrAssignmentNotFound = errors.New("assignment not found")
	// ErrSubmissionNotFound — сдача для пары (задание, студент) отсутствует.
	ErrSubmissionNotFound = errors.New("submission not found")
	// ErrStudentOnly — операция доступна только студентам с профилем.
	ErrStudentOnly = errors.New("student only")
	// ErrInvalidPoints — баллы вне границ [0, max_points] сдачи.
	ErrInvalidPoints = errors.New("invalid points")
)

// AssignmentRepository определяет методы хранилища, нужные заданиям.
type AssignmentRepository interface {
	ListAssignmentsByDiscipline(ctx context.Context, disciplineID int) ([]*models.Assignment, error)
	GetAssignment(ctx context.Context, id int) (*models.Assignment, error)
	GetStudentByUserID(ctx context.Context, userID int) (*models.Student, error)
	FindSubmission(ctx context.Context, studentID, assignmentID int) (*models.Submission, error)
	CreateSubmission(ctx context.Context, sub models.Submission) (*models.Submission, error)
	UpsertSubmissionAnswer(ctx context.Context, sub models.Submission) (*models.Submission, error)
	GradeSubmission(ctx context.Context, assignmentID, studentID, points int) (int, error)
}

// AssignmentService реализует операции над заданиями и сдачами.
type AssignmentService struct {
	repo      AssignmentRepository
	publisher events.Publisher
	log       *slog.Logger
}

// NewAssignmentService создает новый экземпляр AssignmentService.
func NewAssignmentService(repo AssignmentRepository, publisher events.Publisher, log *slog.Logger) *AssignmentService {
	return &AssignmentService{
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

// ListByDiscipline возвращает задания дисциплины.
func (s *AssignmentService) ListByDiscipline(ctx context.Context, disciplineID int) ([]*models.Assignment, error) {
	return s.repo.ListAssignmentsByDiscipline(ctx, disciplineID)
}

// Get возвращает задание по ID.
func (s *AssignmentService) Get(ctx context.Context, id int) (*models.Assignment, error) {
	a, err := s.repo.GetAssignment(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}
	return a, nil
}

// studentProfile возвращает профиль студента для пользователя с ролью student.
func (s *AssignmentService) studentProfile(ctx context.Context, user *models.User) (*models.Student, error) {
	if user.Role != models.RoleStudent {
		return nil, ErrStudentOnly
	}
	student, err := s.repo.GetStudentByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrStudentOnly
		}
		return nil, err
	}
	return student, nil
}

// MySubmission возвращает сдачу текущего студента по заданию.
// Отсутствующая сдача создаётся со статусом "not submitted" и нулём
// баллов; конкурентное первое чтение не создаёт дубликата.
func (s *AssignmentService) MySubmission(ctx context.Context, user *models.User, assignmentID int) (*models.Submission, error) {
	student, err := s.studentProfile(ctx, user)
	if err != nil {
		return nil, err
	}

	sub, err := s.repo.FindSubmission(ctx, student.ID, assignmentID)
	if err == nil {
		return sub, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	assignment, err := s.repo.GetAssignment(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}
	return s.repo.CreateSubmission(ctx, models.Submission{
		StudentID:    student.ID,
		AssignmentID: assignmentID,
		AnswerText:   "",
		Status:       models.SubmissionNotSubmitted,
		Points:       0,
		MaxPoints:    assignment.MaxPoints,
	})
}

// Submit сохраняет ответ студента и переводит сдачу в статус "submitted".
// Повторная сдача после проверки допускается: статус возвращается в
// "submitted", ранее выставленные баллы сохраняются до новой проверки.
func (s *AssignmentService) Submit(ctx context.Context, user *models.User, assignmentID int, answerText string) (*models.Submission, error) {
	student, err := s.studentProfile(ctx, user)
	if err != nil {
		return nil, err
	}

	assignment, err := s.repo.GetAssignment(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}
	return s.repo.UpsertSubmissionAnswer(ctx, models.Submission{
		StudentID:    student.ID,
		AssignmentID: assignmentID,
		AnswerText:   answerText,
		Status:       models.SubmissionSubmitted,
		Points:       0,
		MaxPoints:    assignment.MaxPoints,
	})
}

// GradeSubmission выставляет баллы за сдачу и переводит её в статус
// "graded". Баллы проверяются против max_points сдачи; при ошибке
// прежнее состояние записи не меняется.
func (s *AssignmentService) GradeSubmission(ctx context.Context, assignmentID, studentID, points int) error {
	sub, err := s.repo.FindSubmission(ctx, studentID, assignmentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSubmissionNotFound
		}
		return err
	}
	if points < 0 || points > sub.MaxPoints {
		return ErrInvalidPoints
	}

	updated, err := s.repo.GradeSubmission(ctx, assignmentID, studentID, points)
	if err != nil {
		return err
	}
	if updated == 0 {
		return ErrSubmissionNotFound
	}

	if err := s.publisher.Publish(rabbitmq.GradedQueue, events.SubmissionGraded{
		StudentID:    studentID,
		AssignmentID: assignmentID,
		Points:       points,
		MaxPoints:    sub.MaxPoints,
		OccurredAt:   time.Now().UTC(),
	}); err != nil {
		s.log.Warn("failed to publish graded event", sl.Err(err))
	}
	return nil
}
