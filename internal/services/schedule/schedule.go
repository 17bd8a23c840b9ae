// Package services содержит бизнес-логику расписания занятий.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gritsuts/edu-platform/internal/lib/sl"
	"github.com/gritsuts/edu-platform/internal/models"
)

// DayLayout и TimeLayout — форматы даты и времени в ответах расписания.
const (
	DayLayout  = "2006-01-02"
	TimeLayout = "15:04"
)

const scheduleCacheTTL = 2 * time.Minute

// ScheduleRepository определяет методы хранилища для расписания.
type ScheduleRepository interface {
	ListScheduleForDay(ctx context.Context, day time.Time) ([]*models.ScheduleItem, error)
	ListScheduleForRange(ctx context.Context, start, end time.Time) ([]*models.ScheduleItem, error)
}

// Cache описывает контракт кеша для читающих операций.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// ScheduleService реализует чтение расписания на день и на неделю.
type ScheduleService struct {
	repo  ScheduleRepository
	cache Cache
	log   *slog.Logger
}

// NewScheduleService создает новый экземпляр ScheduleService.
func NewScheduleService(repo ScheduleRepository, cache Cache, log *slog.Logger) *ScheduleService {
	return &ScheduleService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

func toView(items []*models.ScheduleItem) []models.ScheduleItemView {
	views := make([]models.ScheduleItemView, 0, len(items))
	for _, item := range items {
		views = append(views, models.ScheduleItemView{
			ID:              item.ID,
			Day:             item.Day.Format(DayLayout),
			StartTime:       item.StartTime.Format(TimeLayout),
			EndTime:         item.EndTime.Format(TimeLayout),
			Room:            item.Room,
			DisciplineTitle: item.DisciplineTitle,
			GroupName:       item.GroupName,
		})
	}
	return views
}

// Day возвращает занятия на конкретную дату, отсортированные по времени начала.
func (s *ScheduleService) Day(ctx context.Context, day time.Time) ([]models.ScheduleItemView, error) {
	key := fmt.Sprintf("schedule:day:%s", day.Format(DayLayout))

	var cached []models.ScheduleItemView
	found, err := s.cache.Get(key, &cached)
	if err != nil {
		s.log.Warn("failed to read day schedule from cache", sl.Err(err))
	}
	if found {
		return cached, nil
	}

	items, err := s.repo.ListScheduleForDay(ctx, day)
	if err != nil {
		return nil, err
	}
	views := toView(items)
	if err := s.cache.Set(key, views, scheduleCacheTTL); err != nil {
		s.log.Warn("failed to cache day schedule", sl.Err(err))
	}
	return views, nil
}

// Week возвращает занятия на интервал [start, end] включительно.
func (s *ScheduleService) Week(ctx context.Context, start, end time.Time) (*models.WeekSchedule, error) {
	key := fmt.Sprintf("schedule:week:%s:%s", start.Format(DayLayout), end.Format(DayLayout))

	var cached models.WeekSchedule
	found, err := s.cache.Get(key, &cached)
	if err != nil {
		s.log.Warn("failed to read week schedule from cache", sl.Err(err))
	}
	if found {
		return &cached, nil
	}

	items, err := s.repo.ListScheduleForRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	week := &models.WeekSchedule{
		Start: start.Format(DayLayout),
		End:   end.Format(DayLayout),
		Items: toView(items),
	}
	if err := s.cache.Set(key, week, scheduleCacheTTL); err != nil {
		s.log.Warn("failed to cache week schedule", sl.Err(err))
	}
	return week, nil
}
