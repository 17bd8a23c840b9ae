package models

import "time"

// StatusNotSet — значение ячейки журнала, для которой запись ещё не создана.
const StatusNotSet = "not set"

// AttendanceRecord — запись посещаемости. На тройку
// (student_id, discipline_id, day) существует не более одной записи.
type AttendanceRecord struct {
	ID           int
	StudentID    int
	DisciplineID int
	Day          time.Time
	Status       string
}

// GradeRecord — оценка по теме. На тройку
// (student_id, discipline_id, topic_id) существует не более одной записи.
type GradeRecord struct {
	ID           int
	StudentID    int
	DisciplineID int
	TopicID      int
	Points       int
	MaxPoints    int
}

// AttendanceUpsertRequest — входные данные для выставления посещаемости.
// Дата приходит строкой в формате 2006-01-02 и парсится в сервисе.
type AttendanceUpsertRequest struct {
	StudentID    int    `json:"student_id" validate:"required"`
	DisciplineID int    `json:"discipline_id" validate:"required"`
	Day          string `json:"day" validate:"required"`
	Status       string `json:"status" validate:"required"`
}

// GradeUpsertRequest — входные данные для выставления оценки.
// Границы баллов проверяет сервис, здесь только обязательность ключей.
type GradeUpsertRequest struct {
	StudentID    int `json:"student_id" validate:"required"`
	DisciplineID int `json:"discipline_id" validate:"required"`
	TopicID      int `json:"topic_id" validate:"required"`
	Points       int `json:"points"`
	MaxPoints    int `json:"max_points"`
}

// AttendanceRow — строка журнала посещаемости: студент и статусы по дням.
type AttendanceRow struct {
	Student  StudentShort      `json:"student"`
	Statuses map[string]string `json:"statuses"`
}

// AttendanceJournal — журнал посещаемости группы по дисциплине.
type AttendanceJournal struct {
	Days []string        `json:"days"`
	Rows []AttendanceRow `json:"rows"`
}

// TopicColumn — колонка журнала оценок.
type TopicColumn struct {
	TopicID   int    `json:"topic_id"`
	Title     string `json:"title"`
	MaxPoints int    `json:"max_points"`
}

// GradeRow — строка журнала оценок: студент и значения "баллы/макс" по темам.
type GradeRow struct {
	Student StudentShort      `json:"student"`
	Points  map[string]string `json:"points"`
}

// GradesJournal — журнал оценок группы по дисциплине.
type GradesJournal struct {
	Topics []TopicColumn `json:"topics"`
	Rows   []GradeRow    `json:"rows"`
}
