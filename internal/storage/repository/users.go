package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gritsuts/edu-platform/internal/models"
)

// GetUserByUsername возвращает пользователя по его username.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.GetUserByUsername"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, username, password_hash, role, full_name, is_active
			  FROM users
			  WHERE username = $1`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, username)
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role,
		&u.FullName, &u.IsActive); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetUser возвращает пользователя по его ID.
func (s *Storage) GetUser(ctx context.Context, id int) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, username, password_hash, role, full_name, is_active
			  FROM users
			  WHERE id = $1`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, id)
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role,
		&u.FullName, &u.IsActive); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetStudentByUserID возвращает профиль студента по ID учётной записи.
func (s *Storage) GetStudentByUserID(ctx context.Context, userID int) (*models.Student, error) {
	const op = "storage.GetStudentByUserID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_id, group_id FROM students WHERE user_id = $1`
	st := &models.Student{}
	row := s.DB.QueryRowContext(ctx, query, userID)
	if err := row.Scan(&st.ID, &st.UserID, &st.GroupID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return st, nil
}

// GetTeacherByUserID возвращает профиль преподавателя по ID учётной записи.
func (s *Storage) GetTeacherByUserID(ctx context.Context, userID int) (*models.Teacher, error) {
	const op = "storage.GetTeacherByUserID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_id FROM teachers WHERE user_id = $1`
	tc := &models.Teacher{}
	row := s.DB.QueryRowContext(ctx, query, userID)
	if err := row.Scan(&tc.ID, &tc.UserID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return tc, nil
}

// ListGroupStudents возвращает студентов группы с их полными именами,
// упорядоченных по ID.
func (s *Storage) ListGroupStudents(ctx context.Context, groupID int) ([]models.StudentShort, error) {
	const op = "storage.ListGroupStudents"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT st.id, u.full_name
			  FROM students st
			  JOIN users u ON u.id = st.user_id
			  WHERE st.group_id = $1
			  ORDER BY st.id`
	rows, err := s.DB.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.StudentShort
	for rows.Next() {
		var item models.StudentShort
		if err = rows.Scan(&item.ID, &item.FullName); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
