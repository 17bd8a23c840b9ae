package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gritsuts/edu-platform/internal/events"
	"github.com/gritsuts/edu-platform/internal/models"
)

// MockJournalRepository реализует интерфейс JournalRepository
type MockJournalRepository struct {
	mock.Mock
}

func (m *MockJournalRepository) UpsertAttendance(ctx context.Context, rec models.AttendanceRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockJournalRepository) UpsertGrade(ctx context.Context, rec models.GradeRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockJournalRepository) ListGroupStudents(ctx context.Context, groupID int) ([]models.StudentShort, error) {
	args := m.Called(ctx, groupID)
	students, _ := args.Get(0).([]models.StudentShort)
	return students, args.Error(1)
}

func (m *MockJournalRepository) ListAttendance(ctx context.Context, groupID, disciplineID int) ([]*models.AttendanceRecord, error) {
	args := m.Called(ctx, groupID, disciplineID)
	records, _ := args.Get(0).([]*models.AttendanceRecord)
	return records, args.Error(1)
}

func (m *MockJournalRepository) ListGrades(ctx context.Context, groupID, disciplineID int) ([]*models.GradeRecord, error) {
	args := m.Called(ctx, groupID, disciplineID)
	records, _ := args.Get(0).([]*models.GradeRecord)
	return records, args.Error(1)
}

func (m *MockJournalRepository) ListTopics(ctx context.Context, disciplineID int) ([]*models.Topic, error) {
	args := m.Called(ctx, disciplineID)
	topics, _ := args.Get(0).([]*models.Topic)
	return topics, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestParseDays(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{name: "одна дата", input: "2026-02-02", want: 1},
		{name: "несколько дат с пробелами", input: "2026-02-02, 2026-02-09 ,2026-02-16", want: 3},
		{name: "пустые элементы пропускаются", input: "2026-02-02,,", want: 1},
		{name: "пустая строка", input: "", want: 0},
		{name: "некорректная дата", input: "02.02.2026", wantErr: true},
		{name: "некорректная дата в середине", input: "2026-02-02,bad,2026-02-16", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days, err := ParseDays(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDay)
				return
			}
			require.NoError(t, err)
			assert.Len(t, days, tt.want)
		})
	}
}

func TestUpsertGrade_Bounds(t *testing.T) {
	tests := []struct {
		name      string
		points    int
		maxPoints int
		wantErr   bool
	}{
		{name: "минимум баллов", points: 0, maxPoints: 5},
		{name: "максимум баллов", points: 5, maxPoints: 5},
		{name: "отрицательные баллы", points: -1, maxPoints: 5, wantErr: true},
		{name: "баллы выше максимума", points: 6, maxPoints: 5, wantErr: true},
		{name: "нулевой максимум", points: 0, maxPoints: 0, wantErr: true},
		{name: "отрицательный максимум", points: 0, maxPoints: -5, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockJournalRepository)
			if !tt.wantErr {
				repo.On("UpsertGrade", mock.Anything, mock.Anything).Return(nil)
			}
			service := NewJournalService(repo, events.Noop{}, newNoopLogger())

			err := service.UpsertGrade(context.Background(), models.GradeUpsertRequest{
				StudentID:    1,
				DisciplineID: 2,
				TopicID:      3,
				Points:       tt.points,
				MaxPoints:    tt.maxPoints,
			})

			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPoints)
				repo.AssertNotCalled(t, "UpsertGrade", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			repo.AssertExpectations(t)
		})
	}
}

func TestUpsertAttendance_InvalidDay(t *testing.T) {
	repo := new(MockJournalRepository)
	service := NewJournalService(repo, events.Noop{}, newNoopLogger())

	err := service.UpsertAttendance(context.Background(), models.AttendanceUpsertRequest{
		StudentID:    1,
		DisciplineID: 2,
		Day:          "02.02.2026",
		Status:       "present",
	})

	assert.ErrorIs(t, err, ErrInvalidDay)
	repo.AssertNotCalled(t, "UpsertAttendance", mock.Anything, mock.Anything)
}

func TestAttendanceJournal(t *testing.T) {
	day1 := time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC)

	repo := new(MockJournalRepository)
	repo.On("ListGroupStudents", mock.Anything, 1).Return([]models.StudentShort{
		{ID: 10, FullName: "Иванов Алексей"},
		{ID: 11, FullName: "Петрова Мария"},
	}, nil)
	repo.On("ListAttendance", mock.Anything, 1, 2).Return([]*models.AttendanceRecord{
		{StudentID: 10, DisciplineID: 2, Day: day1, Status: "present"},
	}, nil)
	service := NewJournalService(repo, events.Noop{}, newNoopLogger())

	journal, err := service.AttendanceJournal(context.Background(), 1, 2, []time.Time{day1, day2})
	require.NoError(t, err)

	assert.Equal(t, []string{"2026-02-02", "2026-02-09"}, journal.Days)
	require.Len(t, journal.Rows, 2)
	assert.Equal(t, "present", journal.Rows[0].Statuses["2026-02-02"])
	assert.Equal(t, models.StatusNotSet, journal.Rows[0].Statuses["2026-02-09"])
	assert.Equal(t, models.StatusNotSet, journal.Rows[1].Statuses["2026-02-02"])
	assert.Equal(t, models.StatusNotSet, journal.Rows[1].Statuses["2026-02-09"])
}

func TestGradesJournal(t *testing.T) {
	repo := new(MockJournalRepository)
	repo.On("ListTopics", mock.Anything, 2).Return([]*models.Topic{
		{ID: 100, Title: "Тема 1", OrderIndex: 1},
		{ID: 101, Title: "Тема 2", OrderIndex: 2},
	}, nil)
	repo.On("ListGroupStudents", mock.Anything, 1).Return([]models.StudentShort{
		{ID: 10, FullName: "Иванов Алексей"},
	}, nil)
	repo.On("ListGrades", mock.Anything, 1, 2).Return([]*models.GradeRecord{
		{StudentID: 10, DisciplineID: 2, TopicID: 100, Points: 4, MaxPoints: 5},
	}, nil)
	service := NewJournalService(repo, events.Noop{}, newNoopLogger())

	journal, err := service.GradesJournal(context.Background(), 1, 2)
	require.NoError(t, err)

	require.Len(t, journal.Topics, 2)
	assert.Equal(t, 5, journal.Topics[0].MaxPoints)
	require.Len(t, journal.Rows, 1)
	assert.Equal(t, "4/5", journal.Rows[0].Points["100"])
	assert.Equal(t, models.StatusNotSet, journal.Rows[0].Points["101"])
}
