package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/gritsuts/edu-platform/internal/models"
)

// ListScheduleForDay возвращает занятия на день, упорядоченные по времени начала.
func (s *Storage) ListScheduleForDay(ctx context.Context, day time.Time) ([]*models.ScheduleItem, error) {
	const op = "storage.ListScheduleForDay"
	return s.listSchedule(ctx, op, `SELECT si.id, si.day, si.start_time, si.end_time, si.room,
			      COALESCE(d.title, ''), COALESCE(g.name, '')
			  FROM schedule_items si
			  LEFT JOIN disciplines d ON d.id = si.discipline_id
			  LEFT JOIN groups g ON g.id = si.group_id
			  WHERE si.day = $1
			  ORDER BY si.start_time`, day)
}

// ListScheduleForRange возвращает занятия в интервале дат включительно,
// упорядоченные по дню и времени начала.
func (s *Storage) ListScheduleForRange(ctx context.Context, start, end time.Time) ([]*models.ScheduleItem, error) {
	const op = "storage.ListScheduleForRange"
	return s.listSchedule(ctx, op, `SELECT si.id, si.day, si.start_time, si.end_time, si.room,
			      COALESCE(d.title, ''), COALESCE(g.name, '')
			  FROM schedule_items si
			  LEFT JOIN disciplines d ON d.id = si.discipline_id
			  LEFT JOIN groups g ON g.id = si.group_id
			  WHERE si.day >= $1 AND si.day <= $2
			  ORDER BY si.day, si.start_time`, start, end)
}

func (s *Storage) listSchedule(ctx context.Context, op, query string, args ...any) ([]*models.ScheduleItem, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.ScheduleItem
	for rows.Next() {
		var item models.ScheduleItem
		if err = rows.Scan(&item.ID, &item.Day, &item.StartTime, &item.EndTime,
			&item.Room, &item.DisciplineTitle, &item.GroupName); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
