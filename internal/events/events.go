// Package events описывает события журнала и публикацию их в RabbitMQ.
// Публикация выполняется по принципу best effort: сервисы логируют
// неудачу и продолжают работу, запись в хранилище первична.
package events

import (
	"time"

	"github.com/streadway/amqp"

	"github.com/gritsuts/edu-platform/internal/lib/rabbitmq"
)

// AttendanceUpserted — посещаемость выставлена или обновлена.
type AttendanceUpserted struct {
	StudentID    int       `json:"student_id"`
	DisciplineID int       `json:"discipline_id"`
	Day          string    `json:"day"`
	Status       string    `json:"status"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// GradeUpserted — оценка по теме выставлена или обновлена.
type GradeUpserted struct {
	StudentID    int       `json:"student_id"`
	DisciplineID int       `json:"discipline_id"`
	TopicID      int       `json:"topic_id"`
	Points       int       `json:"points"`
	MaxPoints    int       `json:"max_points"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// SubmissionGraded — сдача задания проверена преподавателем.
type SubmissionGraded struct {
	StudentID    int       `json:"student_id"`
	AssignmentID int       `json:"assignment_id"`
	Points       int       `json:"points"`
	MaxPoints    int       `json:"max_points"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// Publisher публикует событие с заданным ключом маршрутизации.
type Publisher interface {
	Publish(routingKey string, message any) error
}

// RabbitPublisher публикует события в exchange журнала.
type RabbitPublisher struct {
	ch *amqp.Channel
}

// NewRabbitPublisher создает publisher поверх открытого канала.
func NewRabbitPublisher(ch *amqp.Channel) *RabbitPublisher {
	return &RabbitPublisher{ch: ch}
}

// Publish публикует сообщение в exchange журнала.
func (p *RabbitPublisher) Publish(routingKey string, message any) error {
	return rabbitmq.PublishMessage(p.ch, rabbitmq.JournalExchange, routingKey, message)
}

// Noop — заглушка для окружений без RabbitMQ.
type Noop struct{}

// Publish ничего не делает.
func (Noop) Publish(_ string, _ any) error { return nil }
