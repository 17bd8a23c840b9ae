// Package services содержит бизнес-логику каталога дисциплин и тем.
package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gritsuts/edu-platform/internal/lib/sl"
	"github.com/gritsuts/edu-platform/internal/models"
	"github.com/gritsuts/edu-platform/internal/storage/repository"
)

const (
	disciplinesCacheKey = "disciplines"
	disciplinesCacheTTL = 5 * time.Minute
)

// ErrTopicNotFound — тема с таким ID отсутствует.
var ErrTopicNotFound = errors.New("topic not found")

// DisciplineRepository определяет методы хранилища для каталога.
type DisciplineRepository interface {
	ListDisciplines(ctx context.Context) ([]*models.Discipline, error)
	ListTopics(ctx context.Context, disciplineID int) ([]*models.Topic, error)
	GetTopic(ctx context.Context, id int) (*models.TopicDetail, error)
}

// Cache описывает контракт кеша для читающих операций.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// DisciplineService реализует операции каталога дисциплин.
type DisciplineService struct {
	repo  DisciplineRepository
	cache Cache
	log   *slog.Logger
}

// NewDisciplineService создает новый экземпляр DisciplineService.
func NewDisciplineService(repo DisciplineRepository, cache Cache, log *slog.Logger) *DisciplineService {
	return &DisciplineService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// List возвращает все дисциплины. Список меняется редко и кешируется;
// недоступный кеш не ломает чтение.
func (s *DisciplineService) List(ctx context.Context) ([]*models.Discipline, error) {
	var cached []*models.Discipline
	found, err := s.cache.Get(disciplinesCacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read disciplines from cache", sl.Err(err))
	}
	if found {
		return cached, nil
	}

	disciplines, err := s.repo.ListDisciplines(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(disciplinesCacheKey, disciplines, disciplinesCacheTTL); err != nil {
		s.log.Warn("failed to cache disciplines", sl.Err(err))
	}
	return disciplines, nil
}

// Topics возвращает темы дисциплины в порядке order_index.
func (s *DisciplineService) Topics(ctx context.Context, disciplineID int) ([]*models.Topic, error) {
	return s.repo.ListTopics(ctx, disciplineID)
}

// Topic возвращает тему с содержимым по ID.
func (s *DisciplineService) Topic(ctx context.Context, id int) (*models.TopicDetail, error) {
	topic, err := s.repo.GetTopic(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTopicNotFound
		}
		return nil, err
	}
	return topic, nil
}
