package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gritsuts/edu-platform/internal/events"
	"github.com/gritsuts/edu-platform/internal/models"
	"github.com/gritsuts/edu-platform/internal/storage/repository"
)

// MockAssignmentRepository реализует интерфейс AssignmentRepository
type MockAssignmentRepository struct {
	mock.Mock
}

func (m *MockAssignmentRepository) ListAssignmentsByDiscipline(ctx context.Context, disciplineID int) ([]*models.Assignment, error) {
	args := m.Called(ctx, disciplineID)
	assignments, _ := args.Get(0).([]*models.Assignment)
	return assignments, args.Error(1)
}

func (m *MockAssignmentRepository) GetAssignment(ctx context.Context, id int) (*models.Assignment, error) {
	args := m.Called(ctx, id)
	assignment, _ := args.Get(0).(*models.Assignment)
	return assignment, args.Error(1)
}

func (m *MockAssignmentRepository) GetStudentByUserID(ctx context.Context, userID int) (*models.Student, error) {
	args := m.Called(ctx, userID)
	student, _ := args.Get(0).(*models.Student)
	return student, args.Error(1)
}

func (m *MockAssignmentRepository) FindSubmission(ctx context.Context, studentID, assignmentID int) (*models.Submission, error) {
	args := m.Called(ctx, studentID, assignmentID)
	sub, _ := args.Get(0).(*models.Submission)
	return sub, args.Error(1)
}

func (m *MockAssignmentRepository) CreateSubmission(ctx context.Context, sub models.Submission) (*models.Submission, error) {
	args := m.Called(ctx, sub)
	created, _ := args.Get(0).(*models.Submission)
	return created, args.Error(1)
}

func (m *MockAssignmentRepository) UpsertSubmissionAnswer(ctx context.Context, sub models.Submission) (*models.Submission, error) {
	args := m.Called(ctx, sub)
	updated, _ := args.Get(0).(*models.Submission)
	return updated, args.Error(1)
}

func (m *MockAssignmentRepository) GradeSubmission(ctx context.Context, assignmentID, studentID, points int) (int, error) {
	args := m.Called(ctx, assignmentID, studentID, points)
	return args.Int(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

var studentUser = &models.User{ID: 7, Username: "student1", Role: models.RoleStudent, IsActive: true}

func TestMySubmission_CreatesWhenMissing(t *testing.T) {
	repo := new(MockAssignmentRepository)
	repo.On("GetStudentByUserID", mock.Anything, 7).
		Return(&models.Student{ID: 3, UserID: 7, GroupID: 1}, nil)
	repo.On("FindSubmission", mock.Anything, 3, 50).
		Return(nil, repository.ErrNotFound)
	repo.On("GetAssignment", mock.Anything, 50).
		Return(&models.Assignment{ID: 50, MaxPoints: 10}, nil)
	repo.On("CreateSubmission", mock.Anything, models.Submission{
		StudentID:    3,
		AssignmentID: 50,
		Status:       models.SubmissionNotSubmitted,
		Points:       0,
		MaxPoints:    10,
	}).Return(&models.Submission{
		ID:           1,
		StudentID:    3,
		AssignmentID: 50,
		Status:       models.SubmissionNotSubmitted,
		MaxPoints:    10,
	}, nil)
	service := NewAssignmentService(repo, events.Noop{}, newNoopLogger())

	sub, err := service.MySubmission(context.Background(), studentUser, 50)
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionNotSubmitted, sub.Status)
	assert.Equal(t, 0, sub.Points)
	assert.Equal(t, 10, sub.MaxPoints)
	repo.AssertExpectations(t)
}

func TestMySubmission_ReturnsExisting(t *testing.T) {
	repo := new(MockAssignmentRepository)
	repo.On("GetStudentByUserID", mock.Anything, 7).
		Return(&models.Student{ID: 3, UserID: 7, GroupID: 1}, nil)
	repo.On("FindSubmission", mock.Anything, 3, 50).
		Return(&models.Submission{ID: 1, Status: models.SubmissionGraded, Points: 8, MaxPoints: 10}, nil)
	service := NewAssignmentService(repo, events.Noop{}, newNoopLogger())

	sub, err := service.MySubmission(context.Background(), studentUser, 50)
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionGraded, sub.Status)
	assert.Equal(t, 8, sub.Points)
	repo.AssertNotCalled(t, "CreateSubmission", mock.Anything, mock.Anything)
}

func TestMySubmission_TeacherForbidden(t *testing.T) {
	repo := new(MockAssignmentRepository)
	service := NewAssignmentService(repo, events.Noop{}, newNoopLogger())

	teacher := &models.User{ID: 2, Role: models.RoleTeacher}
	_, err := service.MySubmission(context.Background(), teacher, 50)
	assert.ErrorIs(t, err, ErrStudentOnly)
}

func TestMySubmission_AssignmentMissing(t *testing.T) {
	repo := new(MockAssignmentRepository)
	repo.On("GetStudentByUserID", mock.Anything, 7).
		Return(&models.Student{ID: 3, UserID: 7, GroupID: 1}, nil)
	repo.On("FindSubmission", mock.Anything, 3, 999).
		Return(nil, repository.ErrNotFound)
	repo.On("GetAssignment", mock.Anything, 999).
		Return(nil, repository.ErrNotFound)
	service := NewAssignmentService(repo, events.Noop{}, newNoopLogger())

	_, err := service.MySubmission(context.Background(), studentUser, 999)
	assert.ErrorIs(t, err, ErrAssignmentNotFound)
}

func TestSubmit(t *testing.T) {
	repo := new(MockAssignmentRepository)
	repo.On("GetStudentByUserID", mock.Anything, 7).
		Return(&models.Student{ID: 3, UserID: 7, GroupID: 1}, nil)
	repo.On("GetAssignment", mock.Anything, 50).
		Return(&models.Assignment{ID: 50, MaxPoints: 10}, nil)
	repo.On("UpsertSubmissionAnswer", mock.Anything, mock.MatchedBy(func(sub models.Submission) bool {
		return sub.Status == models.SubmissionSubmitted && sub.AnswerText == "мой ответ"
	})).Return(&models.Submission{
		ID:         1,
		AnswerText: "мой ответ",
		Status:     models.SubmissionSubmitted,
		MaxPoints:  10,
	}, nil)
	service := NewAssignmentService(repo, events.Noop{}, newNoopLogger())

	sub, err := service.Submit(context.Background(), studentUser, 50, "мой ответ")
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionSubmitted, sub.Status)
	repo.AssertExpectations(t)
}

func TestGradeSubmission(t *testing.T) {
	tests := []struct {
		name      string
		points    int
		setupMock func(*MockAssignmentRepository)
		wantErr   error
	}{
		{
			name:   "успешная проверка",
			points: 8,
			setupMock: func(m *MockAssignmentRepository) {
				m.On("FindSubmission", mock.Anything, 3, 50).
					Return(&models.Submission{ID: 1, MaxPoints: 10}, nil)
				m.On("GradeSubmission", mock.Anything, 50, 3, 8).Return(1, nil)
			},
		},
		{
			name:   "сдача не найдена",
			points: 8,
			setupMock: func(m *MockAssignmentRepository) {
				m.On("FindSubmission", mock.Anything, 3, 50).
					Return(nil, repository.ErrNotFound)
			},
			wantErr: ErrSubmissionNotFound,
		},
		{
			name:   "отрицательные баллы",
			points: -1,
			setupMock: func(m *MockAssignmentRepository) {
				m.On("FindSubmission", mock.Anything, 3, 50).
					Return(&models.Submission{ID: 1, MaxPoints: 10}, nil)
			},
			wantErr: ErrInvalidPoints,
		},
		{
			name:   "баллы выше максимума",
			points: 11,
			setupMock: func(m *MockAssignmentRepository) {
				m.On("FindSubmission", mock.Anything, 3, 50).
					Return(&models.Submission{ID: 1, MaxPoints: 10}, nil)
			},
			wantErr: ErrInvalidPoints,
		},
		{
			name:   "запись исчезла между чтением и обновлением",
			points: 8,
			setupMock: func(m *MockAssignmentRepository) {
				m.On("FindSubmission", mock.Anything, 3, 50).
					Return(&models.Submission{ID: 1, MaxPoints: 10}, nil)
				m.On("GradeSubmission", mock.Anything, 50, 3, 8).Return(0, nil)
			},
			wantErr: ErrSubmissionNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockAssignmentRepository)
			tt.setupMock(repo)
			service := NewAssignmentService(repo, events.Noop{}, newNoopLogger())

			err := service.GradeSubmission(context.Background(), 50, 3, tt.points)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			repo.AssertExpectations(t)
		})
	}
}
