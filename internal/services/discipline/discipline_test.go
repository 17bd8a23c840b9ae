package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gritsuts/edu-platform/internal/models"
	"github.com/gritsuts/edu-platform/internal/storage/repository"
)

// MockDisciplineRepository реализует интерфейс DisciplineRepository
type MockDisciplineRepository struct {
	mock.Mock
}

func (m *MockDisciplineRepository) ListDisciplines(ctx context.Context) ([]*models.Discipline, error) {
	args := m.Called(ctx)
	disciplines, _ := args.Get(0).([]*models.Discipline)
	return disciplines, args.Error(1)
}

func (m *MockDisciplineRepository) ListTopics(ctx context.Context, disciplineID int) ([]*models.Topic, error) {
	args := m.Called(ctx, disciplineID)
	topics, _ := args.Get(0).([]*models.Topic)
	return topics, args.Error(1)
}

func (m *MockDisciplineRepository) GetTopic(ctx context.Context, id int) (*models.TopicDetail, error) {
	args := m.Called(ctx, id)
	topic, _ := args.Get(0).(*models.TopicDetail)
	return topic, args.Error(1)
}

// MockCache реализует интерфейс Cache
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	if fill, ok := args.Get(2).(func(any)); ok && fill != nil {
		fill(result)
	}
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) Set(key string, value any, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Invalidate(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestList_CacheMiss(t *testing.T) {
	disciplines := []*models.Discipline{
		{ID: 1, Title: "Базы данных", TeacherName: "Грицуц Н. С.", MaxPoints: 100, HoursTotal: 72},
	}

	repo := new(MockDisciplineRepository)
	repo.On("ListDisciplines", mock.Anything).Return(disciplines, nil)

	cache := new(MockCache)
	cache.On("Get", "disciplines", mock.Anything).Return(false, nil, nil)
	cache.On("Set", "disciplines", mock.Anything, mock.Anything).Return(nil)

	service := NewDisciplineService(repo, cache, newNoopLogger())

	got, err := service.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, disciplines, got)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestList_CacheHit(t *testing.T) {
	repo := new(MockDisciplineRepository)

	cache := new(MockCache)
	cache.On("Get", "disciplines", mock.Anything).Return(true, nil, func(result any) {
		ptr := result.(*[]*models.Discipline)
		*ptr = []*models.Discipline{{ID: 1, Title: "Базы данных"}}
	})

	service := NewDisciplineService(repo, cache, newNoopLogger())

	got, err := service.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Базы данных", got[0].Title)
	repo.AssertNotCalled(t, "ListDisciplines", mock.Anything)
}

func TestList_CacheErrorDoesNotBreakRead(t *testing.T) {
	disciplines := []*models.Discipline{{ID: 1, Title: "Базы данных"}}

	repo := new(MockDisciplineRepository)
	repo.On("ListDisciplines", mock.Anything).Return(disciplines, nil)

	cache := new(MockCache)
	cache.On("Get", "disciplines", mock.Anything).Return(false, errors.New("redis down"), nil)
	cache.On("Set", "disciplines", mock.Anything, mock.Anything).Return(errors.New("redis down"))

	service := NewDisciplineService(repo, cache, newNoopLogger())

	got, err := service.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, disciplines, got)
}

func TestTopic_NotFound(t *testing.T) {
	repo := new(MockDisciplineRepository)
	repo.On("GetTopic", mock.Anything, 999).Return(nil, repository.ErrNotFound)

	service := NewDisciplineService(repo, new(MockCache), newNoopLogger())

	_, err := service.Topic(context.Background(), 999)
	assert.ErrorIs(t, err, ErrTopicNotFound)
}
