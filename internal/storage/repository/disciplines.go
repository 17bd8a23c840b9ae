package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gritsuts/edu-platform/internal/models"
)

// ListDisciplines возвращает все дисциплины с именами преподавателей.
func (s *Storage) ListDisciplines(ctx context.Context) ([]*models.Discipline, error) {
	const op = "storage.ListDisciplines"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT d.id, d.title, COALESCE(u.full_name, ''), d.max_points, d.hours_total
			  FROM disciplines d
			  LEFT JOIN teachers t ON t.id = d.teacher_id
			  LEFT JOIN users u ON u.id = t.user_id
			  ORDER BY d.id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Discipline
	for rows.Next() {
		var item models.Discipline
		if err = rows.Scan(&item.ID, &item.Title, &item.TeacherName,
			&item.MaxPoints, &item.HoursTotal); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListTopics возвращает темы дисциплины в порядке order_index.
func (s *Storage) ListTopics(ctx context.Context, disciplineID int) ([]*models.Topic, error) {
	const op = "storage.ListTopics"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, order_index
			  FROM topics
			  WHERE discipline_id = $1
			  ORDER BY order_index`
	rows, err := s.DB.QueryContext(ctx, query, disciplineID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Topic
	for rows.Next() {
		var item models.Topic
		if err = rows.Scan(&item.ID, &item.Title, &item.OrderIndex); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetTopic возвращает тему с содержимым и названием дисциплины.
func (s *Storage) GetTopic(ctx context.Context, topicID int) (*models.TopicDetail, error) {
	const op = "storage.GetTopic"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT t.id, t.discipline_id, COALESCE(d.title, ''), t.title, t.content, t.order_index
			  FROM topics t
			  LEFT JOIN disciplines d ON d.id = t.discipline_id
			  WHERE t.id = $1`
	topic := &models.TopicDetail{}
	row := s.DB.QueryRowContext(ctx, query, topicID)
	if err := row.Scan(&topic.ID, &topic.DisciplineID, &topic.DisciplineTitle,
		&topic.Title, &topic.Content, &topic.OrderIndex); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return topic, nil
}
