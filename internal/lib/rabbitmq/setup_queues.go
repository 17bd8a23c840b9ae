package rabbitmq

import (
	"fmt"

	"github.com/streadway/amqp"
)

// Exchange и очереди событий журнала. Потребители (например, сервис
// уведомлений) живут в отдельных процессах и здесь не объявляются.
const (
	JournalExchange = "journal.events"

	AttendanceQueue = "journal.attendance"
	GradeQueue      = "journal.grade"
	GradedQueue     = "assignment.graded"
)

// SetupQueues объявляет exchange и очереди событий журнала и привязывает
// очереди по их ключам маршрутизации.
func SetupQueues(ch *amqp.Channel) error {
	const op = "rabbitmq.SetupQueues"

	if err := ch.ExchangeDeclare(JournalExchange, "direct", true, false, false, false, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	for _, queue := range []string{AttendanceQueue, GradeQueue, GradedQueue} {
		if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if err := ch.QueueBind(queue, queue, JournalExchange, false, nil); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	return nil
}
