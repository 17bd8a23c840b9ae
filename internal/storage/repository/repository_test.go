package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gritsuts/edu-platform/internal/models"
)

func TestUpsertAttendance_Idempotent(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	f := NewTestDataFactory(storage)
	groupID := f.CreateGroup(t, "ИС-21")
	studentID := f.CreateStudent(t, f.CreateUser(t, "student1", models.RoleStudent, "Иванов Алексей"), groupID)
	teacherID := f.CreateTeacher(t, f.CreateUser(t, "teacher1", models.RoleTeacher, "Грицуц Н. С."))
	disciplineID := f.CreateDiscipline(t, "Базы данных", teacherID)

	ctx := context.Background()
	day := time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)

	rec := models.AttendanceRecord{
		StudentID:    studentID,
		DisciplineID: disciplineID,
		Day:          day,
		Status:       "absent",
	}
	require.NoError(t, storage.UpsertAttendance(ctx, rec))

	rec.Status = "present"
	require.NoError(t, storage.UpsertAttendance(ctx, rec))

	records, err := storage.ListAttendance(ctx, groupID, disciplineID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "present", records[0].Status)
}

func TestUpsertGrade_Idempotent(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	f := NewTestDataFactory(storage)
	groupID := f.CreateGroup(t, "ИС-21")
	studentID := f.CreateStudent(t, f.CreateUser(t, "student1", models.RoleStudent, "Иванов Алексей"), groupID)
	teacherID := f.CreateTeacher(t, f.CreateUser(t, "teacher1", models.RoleTeacher, "Грицуц Н. С."))
	disciplineID := f.CreateDiscipline(t, "Базы данных", teacherID)
	topicID := f.CreateTopic(t, disciplineID, "Тема 1", 1)

	ctx := context.Background()

	rec := models.GradeRecord{
		StudentID:    studentID,
		DisciplineID: disciplineID,
		TopicID:      topicID,
		Points:       3,
		MaxPoints:    5,
	}
	require.NoError(t, storage.UpsertGrade(ctx, rec))

	rec.Points = 5
	require.NoError(t, storage.UpsertGrade(ctx, rec))

	records, err := storage.ListGrades(ctx, groupID, disciplineID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 5, records[0].Points)
	assert.Equal(t, 5, records[0].MaxPoints)
}

func TestSubmissionLifecycle(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	f := NewTestDataFactory(storage)
	groupID := f.CreateGroup(t, "ИС-21")
	studentID := f.CreateStudent(t, f.CreateUser(t, "student1", models.RoleStudent, "Иванов Алексей"), groupID)
	teacherID := f.CreateTeacher(t, f.CreateUser(t, "teacher1", models.RoleTeacher, "Грицуц Н. С."))
	disciplineID := f.CreateDiscipline(t, "Базы данных", teacherID)
	topicID := f.CreateTopic(t, disciplineID, "Тема 1", 1)
	assignmentID := f.CreateAssignment(t, topicID, disciplineID, 10)

	ctx := context.Background()

	_, err := storage.FindSubmission(ctx, studentID, assignmentID)
	assert.ErrorIs(t, err, ErrNotFound)

	created, err := storage.CreateSubmission(ctx, models.Submission{
		StudentID:    studentID,
		AssignmentID: assignmentID,
		Status:       models.SubmissionNotSubmitted,
		Points:       0,
		MaxPoints:    10,
	})
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionNotSubmitted, created.Status)

	// Повторная вставка той же пары возвращает существующую запись
	again, err := storage.CreateSubmission(ctx, models.Submission{
		StudentID:    studentID,
		AssignmentID: assignmentID,
		Status:       models.SubmissionNotSubmitted,
		Points:       0,
		MaxPoints:    10,
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)

	submitted, err := storage.UpsertSubmissionAnswer(ctx, models.Submission{
		StudentID:    studentID,
		AssignmentID: assignmentID,
		AnswerText:   "мой ответ",
		Status:       models.SubmissionSubmitted,
		Points:       0,
		MaxPoints:    10,
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, submitted.ID)
	assert.Equal(t, models.SubmissionSubmitted, submitted.Status)
	assert.Equal(t, "мой ответ", submitted.AnswerText)

	updated, err := storage.GradeSubmission(ctx, assignmentID, studentID, 8)
	require.NoError(t, err)
	assert.Equal(t, 1, updated)

	graded, err := storage.FindSubmission(ctx, studentID, assignmentID)
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionGraded, graded.Status)
	assert.Equal(t, 8, graded.Points)

	// Повторная сдача после проверки: статус возвращается, баллы сохраняются
	resubmitted, err := storage.UpsertSubmissionAnswer(ctx, models.Submission{
		StudentID:    studentID,
		AssignmentID: assignmentID,
		AnswerText:   "исправленный ответ",
		Status:       models.SubmissionSubmitted,
		Points:       0,
		MaxPoints:    10,
	})
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionSubmitted, resubmitted.Status)
	assert.Equal(t, 8, resubmitted.Points)

	// Проверка несуществующей сдачи не трогает базу
	updated, err = storage.GradeSubmission(ctx, assignmentID+1, studentID, 5)
	require.NoError(t, err)
	assert.Equal(t, 0, updated)
}

func TestListGroupStudents_Ordered(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	f := NewTestDataFactory(storage)
	groupID := f.CreateGroup(t, "ИС-21")
	otherGroupID := f.CreateGroup(t, "ИС-22")

	first := f.CreateStudent(t, f.CreateUser(t, "student1", models.RoleStudent, "Иванов Алексей"), groupID)
	second := f.CreateStudent(t, f.CreateUser(t, "student2", models.RoleStudent, "Петрова Мария"), groupID)
	f.CreateStudent(t, f.CreateUser(t, "student3", models.RoleStudent, "Сидоров Кирилл"), otherGroupID)

	students, err := storage.ListGroupStudents(context.Background(), groupID)
	require.NoError(t, err)
	require.Len(t, students, 2)
	assert.Equal(t, first, students[0].ID)
	assert.Equal(t, "Иванов Алексей", students[0].FullName)
	assert.Equal(t, second, students[1].ID)
}

func TestGetUserByUsername(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	f := NewTestDataFactory(storage)
	id := f.CreateUser(t, "teacher1", models.RoleTeacher, "Грицуц Н. С.")

	user, err := storage.GetUserByUsername(context.Background(), "teacher1")
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.Equal(t, models.RoleTeacher, user.Role)
	assert.True(t, user.IsActive)

	_, err = storage.GetUserByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}
