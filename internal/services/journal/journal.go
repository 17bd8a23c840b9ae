// Package services содержит бизнес-логику журнала посещаемости и оценок.
//
// Инвариант "одна запись на ключ" обеспечивается атомарными upsert-ами
// хранилища; сервис отвечает за проверку границ баллов, разбор дат и
// сборку представлений журнала.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/gritsuts/edu-platform/internal/events"
	"github.com/gritsuts/edu-platform/internal/lib/rabbitmq"
	"github.com/gritsuts/edu-platform/internal/lib/sl"
	"github.com/gritsuts/edu-platform/internal/models"
)

// DayLayout — формат дат журнала в API.
const DayLayout = "2006-01-02"

// Колонки журнала оценок объявляют максимум 5 баллов за тему.
const topicCellMaxPoints = 5

var (
	// ErrInvalidPoints — баллы вне границ [0, max_points] либо max_points <= 0.
	ErrInvalidPoints = errors.New("invalid points")
	// ErrInvalidDay — дата не в формате 2006-01-02.
	ErrInvalidDay = errors.New("invalid day")
)

// JournalRepository определяет методы хранилища, нужные журналу.
type JournalRepository interface {
	// UpsertAttendance атомарно создаёт или обновляет запись посещаемости.
	UpsertAttendance(ctx context.Context, rec models.AttendanceRecord) error
	// UpsertGrade атомарно создаёт или обновляет оценку.
	UpsertGrade(ctx context.Context, rec models.GradeRecord) error
	// ListGroupStudents возвращает студентов группы по порядку ID.
	ListGroupStudents(ctx context.Context, groupID int) ([]models.StudentShort, error)
	// ListAttendance возвращает записи посещаемости группы по дисциплине.
	ListAttendance(ctx context.Context, groupID, disciplineID int) ([]*models.AttendanceRecord, error)
	// ListGrades возвращает оценки группы по дисциплине.
	ListGrades(ctx context.Context, groupID, disciplineID int) ([]*models.GradeRecord, error)
	// ListTopics возвращает темы дисциплины в порядке order_index.
	ListTopics(ctx context.Context, disciplineID int) ([]*models.Topic, error)
}

// JournalService реализует операции журнала.
type JournalService struct {
	repo      JournalRepository
	publisher events.Publisher
	log       *slog.Logger
}

// NewJournalService создает новый экземпляр JournalService.
func NewJournalService(repo JournalRepository, publisher events.Publisher, log *slog.Logger) *JournalService {
	return &JournalService{
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

// ParseDays разбирает список дат вида "2026-02-02,2026-02-09".
// Пустые элементы пропускаются; некорректная дата — ErrInvalidDay.
func ParseDays(days string) ([]time.Time, error) {
	var result []time.Time
	for _, raw := range strings.Split(days, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		day, err := time.Parse(DayLayout, raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidDay, raw)
		}
		result = append(result, day)
	}
	return result, nil
}

// UpsertAttendance выставляет посещаемость. Статус сохраняется как есть.
// Повторный вызов с тем же ключом обновляет единственную запись.
func (s *JournalService) UpsertAttendance(ctx context.Context, req models.AttendanceUpsertRequest) error {
	day, err := time.Parse(DayLayout, req.Day)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidDay, req.Day)
	}

	rec := models.AttendanceRecord{
		StudentID:    req.StudentID,
		DisciplineID: req.DisciplineID,
		Day:          day,
		Status:       req.Status,
	}
	if err := s.repo.UpsertAttendance(ctx, rec); err != nil {
		return err
	}

	if err := s.publisher.Publish(rabbitmq.AttendanceQueue, events.AttendanceUpserted{
		StudentID:    req.StudentID,
		DisciplineID: req.DisciplineID,
		Day:          req.Day,
		Status:       req.Status,
		OccurredAt:   time.Now().UTC(),
	}); err != nil {
		s.log.Warn("failed to publish attendance event", sl.Err(err))
	}
	return nil
}

// UpsertGrade выставляет оценку по теме. Баллы проверяются до записи:
// points < 0, max_points <= 0 и points > max_points недопустимы.
func (s *JournalService) UpsertGrade(ctx context.Context, req models.GradeUpsertRequest) error {
	if req.Points < 0 || req.MaxPoints <= 0 || req.Points > req.MaxPoints {
		return ErrInvalidPoints
	}

	rec := models.GradeRecord{
		StudentID:    req.StudentID,
		DisciplineID: req.DisciplineID,
		TopicID:      req.TopicID,
		Points:       req.Points,
		MaxPoints:    req.MaxPoints,
	}
	if err := s.repo.UpsertGrade(ctx, rec); err != nil {
		return err
	}

	if err := s.publisher.Publish(rabbitmq.GradeQueue, events.GradeUpserted{
		StudentID:    req.StudentID,
		DisciplineID: req.DisciplineID,
		TopicID:      req.TopicID,
		Points:       req.Points,
		MaxPoints:    req.MaxPoints,
		OccurredAt:   time.Now().UTC(),
	}); err != nil {
		s.log.Warn("failed to publish grade event", sl.Err(err))
	}
	return nil
}

// AttendanceJournal собирает журнал посещаемости группы по дисциплине
// на заданные дни. Ячейки без записи получают значение "not set".
func (s *JournalService) AttendanceJournal(ctx context.Context, groupID, disciplineID int, days []time.Time) (*models.AttendanceJournal, error) {
	students, err := s.repo.ListGroupStudents(ctx, groupID)
	if err != nil {
		return nil, err
	}
	records, err := s.repo.ListAttendance(ctx, groupID, disciplineID)
	if err != nil {
		return nil, err
	}

	byStudent := make(map[int]map[string]string, len(students))
	for _, rec := range records {
		day := rec.Day.Format(DayLayout)
		if byStudent[rec.StudentID] == nil {
			byStudent[rec.StudentID] = make(map[string]string)
		}
		byStudent[rec.StudentID][day] = rec.Status
	}

	journal := &models.AttendanceJournal{
		Days: make([]string, 0, len(days)),
		Rows: make([]models.AttendanceRow, 0, len(students)),
	}
	for _, day := range days {
		journal.Days = append(journal.Days, day.Format(DayLayout))
	}
	for _, student := range students {
		statuses := make(map[string]string, len(days))
		for _, day := range days {
			key := day.Format(DayLayout)
			if status, ok := byStudent[student.ID][key]; ok {
				statuses[key] = status
			} else {
				statuses[key] = models.StatusNotSet
			}
		}
		journal.Rows = append(journal.Rows, models.AttendanceRow{
			Student:  student,
			Statuses: statuses,
		})
	}
	return journal, nil
}

// GradesJournal собирает журнал оценок группы по дисциплине: колонки —
// темы в порядке order_index, ячейки — "баллы/макс" либо "not set".
func (s *JournalService) GradesJournal(ctx context.Context, groupID, disciplineID int) (*models.GradesJournal, error) {
	topics, err := s.repo.ListTopics(ctx, disciplineID)
	if err != nil {
		return nil, err
	}
	students, err := s.repo.ListGroupStudents(ctx, groupID)
	if err != nil {
		return nil, err
	}
	records, err := s.repo.ListGrades(ctx, groupID, disciplineID)
	if err != nil {
		return nil, err
	}

	byStudent := make(map[int]map[int]*models.GradeRecord, len(students))
	for _, rec := range records {
		if byStudent[rec.StudentID] == nil {
			byStudent[rec.StudentID] = make(map[int]*models.GradeRecord)
		}
		byStudent[rec.StudentID][rec.TopicID] = rec
	}

	journal := &models.GradesJournal{
		Topics: make([]models.TopicColumn, 0, len(topics)),
		Rows:   make([]models.GradeRow, 0, len(students)),
	}
	for _, topic := range topics {
		journal.Topics = append(journal.Topics, models.TopicColumn{
			TopicID:   topic.ID,
			Title:     topic.Title,
			MaxPoints: topicCellMaxPoints,
		})
	}
	for _, student := range students {
		points := make(map[string]string, len(topics))
		for _, topic := range topics {
			key := strconv.Itoa(topic.ID)
			if rec, ok := byStudent[student.ID][topic.ID]; ok {
				points[key] = fmt.Sprintf("%d/%d", rec.Points, rec.MaxPoints)
			} else {
				points[key] = models.StatusNotSet
			}
		}
		journal.Rows = append(journal.Rows, models.GradeRow{
			Student: student,
			Points:  points,
		})
	}
	return journal, nil
}
