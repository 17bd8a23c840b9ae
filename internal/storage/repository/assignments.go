package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gritsuts/edu-platform/internal/models"
)

// ListAssignmentsByDiscipline возвращает задания дисциплины, упорядоченные по ID.
func (s *Storage) ListAssignmentsByDiscipline(ctx context.Context, disciplineID int) ([]*models.Assignment, error) {
	const op = "storage.ListAssignmentsByDiscipline"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, topic_id, discipline_id, title, text, max_points
			  FROM assignments
			  WHERE discipline_id = $1
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query, disciplineID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Assignment
	for rows.Next() {
		var item models.Assignment
		if err = rows.Scan(&item.ID, &item.TopicID, &item.DisciplineID,
			&item.Title, &item.Text, &item.MaxPoints); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetAssignment возвращает задание по ID.
func (s *Storage) GetAssignment(ctx context.Context, id int) (*models.Assignment, error) {
	const op = "storage.GetAssignment"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, topic_id, discipline_id, title, text, max_points
			  FROM assignments
			  WHERE id = $1`
	a := &models.Assignment{}
	row := s.DB.QueryRowContext(ctx, query, id)
	if err := row.Scan(&a.ID, &a.TopicID, &a.DisciplineID,
		&a.Title, &a.Text, &a.MaxPoints); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return a, nil
}

// FindSubmission возвращает сдачу по паре (student_id, assignment_id)
// или ErrNotFound, если записи ещё нет.
func (s *Storage) FindSubmission(ctx context.Context, studentID, assignmentID int) (*models.Submission, error) {
	const op = "storage.FindSubmission"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, student_id, assignment_id, answer_text, status, points, max_points, updated_at
			  FROM assignment_submissions
			  WHERE student_id = $1 AND assignment_id = $2`
	sub := &models.Submission{}
	row := s.DB.QueryRowContext(ctx, query, studentID, assignmentID)
	if err := row.Scan(&sub.ID, &sub.StudentID, &sub.AssignmentID, &sub.AnswerText,
		&sub.Status, &sub.Points, &sub.MaxPoints, &sub.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return sub, nil
}

// CreateSubmission вставляет новую сдачу. Конкурентная вставка той же
// пары (student_id, assignment_id) не считается ошибкой: вставка
// выполняется с ON CONFLICT DO NOTHING, и при проигрыше гонки
// возвращается уже существующая запись.
func (s *Storage) CreateSubmission(ctx context.Context, sub models.Submission) (*models.Submission, error) {
	const op = "storage.CreateSubmission"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO assignment_submissions
			      (student_id, assignment_id, answer_text, status, points, max_points, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, now())
			  ON CONFLICT (student_id, assignment_id) DO NOTHING
			  RETURNING id, student_id, assignment_id, answer_text, status, points, max_points, updated_at`
	created := &models.Submission{}
	row := s.DB.QueryRowContext(ctx, query,
		sub.StudentID, sub.AssignmentID, sub.AnswerText, sub.Status, sub.Points, sub.MaxPoints)
	err := row.Scan(&created.ID, &created.StudentID, &created.AssignmentID, &created.AnswerText,
		&created.Status, &created.Points, &created.MaxPoints, &created.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return s.FindSubmission(ctx, sub.StudentID, sub.AssignmentID)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

// UpsertSubmissionAnswer атомарно сохраняет ответ студента и переводит
// сдачу в статус "submitted". Ранее выставленные баллы сохраняются:
// points не входит в SET при конфликте.
func (s *Storage) UpsertSubmissionAnswer(ctx context.Context, sub models.Submission) (*models.Submission, error) {
	const op = "storage.UpsertSubmissionAnswer"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO assignment_submissions
			      (student_id, assignment_id, answer_text, status, points, max_points, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, now())
			  ON CONFLICT (student_id, assignment_id)
			  DO UPDATE SET answer_text = EXCLUDED.answer_text, status = EXCLUDED.status, updated_at = now()
			  RETURNING id, student_id, assignment_id, answer_text, status, points, max_points, updated_at`
	saved := &models.Submission{}
	row := s.DB.QueryRowContext(ctx, query,
		sub.StudentID, sub.AssignmentID, sub.AnswerText, sub.Status, sub.Points, sub.MaxPoints)
	if err := row.Scan(&saved.ID, &saved.StudentID, &saved.AssignmentID, &saved.AnswerText,
		&saved.Status, &saved.Points, &saved.MaxPoints, &saved.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return saved, nil
}

// GradeSubmission выставляет баллы и переводит сдачу в статус "graded".
// Возвращает количество обновлённых строк.
func (s *Storage) GradeSubmission(ctx context.Context, assignmentID, studentID, points int) (int, error) {
	const op = "storage.GradeSubmission"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE assignment_submissions
			  SET points = $3, status = $4, updated_at = now()
			  WHERE assignment_id = $1 AND student_id = $2`
	result, err := s.DB.ExecContext(ctx, query, assignmentID, studentID, points, models.SubmissionGraded)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
