package repository

import (
	"context"
	"fmt"

	"github.com/gritsuts/edu-platform/internal/models"
)

// UpsertAttendance атомарно создаёт или обновляет запись посещаемости
// по ключу (student_id, discipline_id, day). Конкурентная вставка
// дубликата разрешается на уровне базы: проигравший INSERT превращается
// в UPDATE той же строки.
func (s *Storage) UpsertAttendance(ctx context.Context, rec models.AttendanceRecord) error {
	const op = "storage.UpsertAttendance"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO attendance_records (student_id, discipline_id, day, status, updated_at)
			  VALUES ($1, $2, $3, $4, now())
			  ON CONFLICT (student_id, discipline_id, day)
			  DO UPDATE SET status = EXCLUDED.status, updated_at = now()`
	if _, err := s.DB.ExecContext(ctx, query,
		rec.StudentID, rec.DisciplineID, rec.Day, rec.Status); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UpsertGrade атомарно создаёт или обновляет оценку по ключу
// (student_id, discipline_id, topic_id).
func (s *Storage) UpsertGrade(ctx context.Context, rec models.GradeRecord) error {
	const op = "storage.UpsertGrade"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO grade_records (student_id, discipline_id, topic_id, points, max_points, updated_at)
			  VALUES ($1, $2, $3, $4, $5, now())
			  ON CONFLICT (student_id, discipline_id, topic_id)
			  DO UPDATE SET points = EXCLUDED.points, max_points = EXCLUDED.max_points, updated_at = now()`
	if _, err := s.DB.ExecContext(ctx, query,
		rec.StudentID, rec.DisciplineID, rec.TopicID, rec.Points, rec.MaxPoints); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListAttendance возвращает все записи посещаемости студентов группы
// по дисциплине.
func (s *Storage) ListAttendance(ctx context.Context, groupID, disciplineID int) ([]*models.AttendanceRecord, error) {
	const op = "storage.ListAttendance"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT a.id, a.student_id, a.discipline_id, a.day, a.status
			  FROM attendance_records a
			  JOIN students st ON st.id = a.student_id
			  WHERE st.group_id = $1 AND a.discipline_id = $2
			  ORDER BY a.student_id, a.day`
	rows, err := s.DB.QueryContext(ctx, query, groupID, disciplineID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.AttendanceRecord
	for rows.Next() {
		var item models.AttendanceRecord
		if err = rows.Scan(&item.ID, &item.StudentID, &item.DisciplineID,
			&item.Day, &item.Status); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListGrades возвращает все оценки студентов группы по дисциплине.
func (s *Storage) ListGrades(ctx context.Context, groupID, disciplineID int) ([]*models.GradeRecord, error) {
	const op = "storage.ListGrades"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT g.id, g.student_id, g.discipline_id, g.topic_id, g.points, g.max_points
			  FROM grade_records g
			  JOIN students st ON st.id = g.student_id
			  WHERE st.group_id = $1 AND g.discipline_id = $2
			  ORDER BY g.student_id, g.topic_id`
	rows, err := s.DB.QueryContext(ctx, query, groupID, disciplineID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.GradeRecord
	for rows.Next() {
		var item models.GradeRecord
		if err = rows.Scan(&item.ID, &item.StudentID, &item.DisciplineID,
			&item.TopicID, &item.Points, &item.MaxPoints); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
