// Package seed наполняет пустую базу демонстрационными данными портала:
// группы, преподаватели, студенты, дисциплины с темами и заданиями,
// расписание на неделю, история посещаемости и оценок.
//
// Запускается только при включенном seed_on_start и только один раз:
// если в базе уже есть пользователи, Run ничего не делает.
package seed

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/gritsuts/edu-platform/internal/lib/password"
	"github.com/gritsuts/edu-platform/internal/models"
	"github.com/gritsuts/edu-platform/internal/storage/repository"
)

var groupNames = []string{"ИС-21", "ИС-22", "ПО-21"}

var teacherNames = []string{
	"Грицуц Н. С.",
	"Смирнова О. В.",
	"Ковалев Д. А.",
	"Лебедева Т. И.",
	"Морозов П. Е.",
}

var studentNames = []string{
	"Иванов Алексей", "Петрова Мария", "Сидоров Кирилл", "Козлова Анна",
	"Новиков Дмитрий", "Федорова Елена", "Волков Никита", "Соколова Дарья",
	"Павлов Артем", "Семенова Ольга", "Богданов Егор", "Виноградова Алина",
	"Орлов Максим", "Киселева Вера", "Макаров Илья",
}

var disciplineTitles = []string{
	"Базы данных",
	"Операционные системы",
	"Компьютерные сети",
	"Программирование",
	"Математический анализ",
}

// Run наполняет базу демонстрационными данными, если она пуста.
func Run(ctx context.Context, storage *repository.Storage, log *slog.Logger) error {
	const op = "seed.Run"

	var usersCount int
	if err := storage.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM users").Scan(&usersCount); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if usersCount > 0 {
		log.Info("database already seeded, skipping")
		return nil
	}

	tx, err := storage.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = tx.Rollback() }()

	teacherHash, err := password.GetHash("teacher")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	studentHash, err := password.GetHash("student")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	groupIDs, err := seedGroups(ctx, tx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	teacherIDs, err := seedTeachers(ctx, tx, teacherHash)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	studentIDs, err := seedStudents(ctx, tx, studentHash, groupIDs)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	disciplineIDs, topicIDs, err := seedDisciplines(ctx, tx, teacherIDs)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	assignmentIDs, err := seedAssignments(ctx, tx, disciplineIDs, topicIDs)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := seedSchedule(ctx, tx, disciplineIDs, groupIDs); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := seedJournal(ctx, tx, studentIDs, disciplineIDs, topicIDs); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := seedSubmissions(ctx, tx, studentIDs, assignmentIDs); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("database seeded",
		slog.Int("groups", len(groupIDs)),
		slog.Int("teachers", len(teacherIDs)),
		slog.Int("students", len(studentIDs)),
		slog.Int("disciplines", len(disciplineIDs)),
	)
	return nil
}

func seedGroups(ctx context.Context, tx *sql.Tx) ([]int, error) {
	ids := make([]int, 0, len(groupNames))
	for _, name := range groupNames {
		var id int
		if err := tx.QueryRowContext(ctx,
			"INSERT INTO groups (name) VALUES ($1) RETURNING id", name).Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func seedTeachers(ctx context.Context, tx *sql.Tx, hash string) ([]int, error) {
	ids := make([]int, 0, len(teacherNames))
	for i, name := range teacherNames {
		var userID int
		if err := tx.QueryRowContext(ctx,
			`INSERT INTO users (username, password_hash, role, full_name, is_active)
			 VALUES ($1, $2, $3, $4, true) RETURNING id`,
			fmt.Sprintf("teacher%d", i+1), hash, models.RoleTeacher, name).Scan(&userID); err != nil {
			return nil, err
		}
		var teacherID int
		if err := tx.QueryRowContext(ctx,
			"INSERT INTO teachers (user_id) VALUES ($1) RETURNING id", userID).Scan(&teacherID); err != nil {
			return nil, err
		}
		ids = append(ids, teacherID)
	}
	return ids, nil
}

func seedStudents(ctx context.Context, tx *sql.Tx, hash string, groupIDs []int) ([]int, error) {
	ids := make([]int, 0, len(studentNames))
	for i, name := range studentNames {
		var userID int
		if err := tx.QueryRowContext(ctx,
			`INSERT INTO users (username, password_hash, role, full_name, is_active)
			 VALUES ($1, $2, $3, $4, true) RETURNING id`,
			fmt.Sprintf("student%d", i+1), hash, models.RoleStudent, name).Scan(&userID); err != nil {
			return nil, err
		}
		var studentID int
		if err := tx.QueryRowContext(ctx,
			"INSERT INTO students (user_id, group_id) VALUES ($1, $2) RETURNING id",
			userID, groupIDs[i%len(groupIDs)]).Scan(&studentID); err != nil {
			return nil, err
		}
		ids = append(ids, studentID)
	}
	return ids, nil
}

// seedDisciplines создает дисциплины и по три темы в каждой.
// Возвращает ID дисциплин и ID тем по дисциплинам.
func seedDisciplines(ctx context.Context, tx *sql.Tx, teacherIDs []int) ([]int, map[int][]int, error) {
	disciplineIDs := make([]int, 0, len(disciplineTitles))
	topicIDs := make(map[int][]int, len(disciplineTitles))
	for i, title := range disciplineTitles {
		var disciplineID int
		if err := tx.QueryRowContext(ctx,
			`INSERT INTO disciplines (title, teacher_id, max_points, hours_total)
			 VALUES ($1, $2, 100, 72) RETURNING id`,
			title, teacherIDs[i%len(teacherIDs)]).Scan(&disciplineID); err != nil {
			return nil, nil, err
		}
		disciplineIDs = append(disciplineIDs, disciplineID)

		for j := 1; j <= 3; j++ {
			var topicID int
			if err := tx.QueryRowContext(ctx,
				`INSERT INTO topics (discipline_id, title, content, order_index)
				 VALUES ($1, $2, $3, $4) RETURNING id`,
				disciplineID,
				fmt.Sprintf("%s. Тема %d", title, j),
				fmt.Sprintf("Учебный материал по теме %d дисциплины «%s».", j, title),
				j).Scan(&topicID); err != nil {
				return nil, nil, err
			}
			topicIDs[disciplineID] = append(topicIDs[disciplineID], topicID)
		}
	}
	return disciplineIDs, topicIDs, nil
}

// seedAssignments создает по заданию на первую тему каждой дисциплины.
func seedAssignments(ctx context.Context, tx *sql.Tx, disciplineIDs []int, topicIDs map[int][]int) ([]int, error) {
	ids := make([]int, 0, len(disciplineIDs))
	for _, disciplineID := range disciplineIDs {
		var id int
		if err := tx.QueryRowContext(ctx,
			`INSERT INTO assignments (topic_id, discipline_id, title, text, max_points)
			 VALUES ($1, $2, $3, $4, 10) RETURNING id`,
			topicIDs[disciplineID][0],
			disciplineID,
			"Практическая работа 1",
			"Выполните задание по материалам первой темы и прикрепите ответ.").Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// seedSchedule создает занятия на текущую неделю: каждой группе по одной
// паре в день, аудитория 1508, 11:50-13:20.
func seedSchedule(ctx context.Context, tx *sql.Tx, disciplineIDs, groupIDs []int) error {
	monday := weekStart(time.Now())
	start := time.Date(0, 1, 1, 11, 50, 0, 0, time.UTC)
	end := time.Date(0, 1, 1, 13, 20, 0, 0, time.UTC)

	for dayOffset := 0; dayOffset < 5; dayOffset++ {
		day := monday.AddDate(0, 0, dayOffset)
		for g, groupID := range groupIDs {
			disciplineID := disciplineIDs[(dayOffset+g)%len(disciplineIDs)]
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO schedule_items (discipline_id, group_id, day, start_time, end_time, room)
				 VALUES ($1, $2, $3, $4, $5, '1508')`,
				disciplineID, groupID, day, start, end); err != nil {
				return err
			}
		}
	}
	return nil
}

// seedJournal создает историю посещаемости за две прошедшие недели и
// оценки по первой теме каждой дисциплины. Значения детерминированы
// индексами, чтобы повторный прогон на чистой базе давал те же данные.
func seedJournal(ctx context.Context, tx *sql.Tx, studentIDs, disciplineIDs []int, topicIDs map[int][]int) error {
	statuses := []string{"present", "present", "absent", "present"}
	monday := weekStart(time.Now())

	for week := 1; week <= 2; week++ {
		day := monday.AddDate(0, 0, -7*week)
		for si, studentID := range studentIDs {
			for di, disciplineID := range disciplineIDs {
				status := statuses[(si+di+week)%len(statuses)]
				if _, err := tx.ExecContext(ctx,
					`INSERT INTO attendance_records (student_id, discipline_id, day, status)
					 VALUES ($1, $2, $3, $4)`,
					studentID, disciplineID, day, status); err != nil {
					return err
				}
			}
		}
	}

	for si, studentID := range studentIDs {
		for di, disciplineID := range disciplineIDs {
			points := (si + di) % 6
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO grade_records (student_id, discipline_id, topic_id, points, max_points)
				 VALUES ($1, $2, $3, $4, 5)`,
				studentID, disciplineID, topicIDs[disciplineID][0], points); err != nil {
				return err
			}
		}
	}
	return nil
}

// seedSubmissions создает сдачи первого задания для каждого третьего студента.
func seedSubmissions(ctx context.Context, tx *sql.Tx, studentIDs, assignmentIDs []int) error {
	for si, studentID := range studentIDs {
		if si%3 != 0 {
			continue
		}
		for _, assignmentID := range assignmentIDs {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO assignment_submissions
				 (student_id, assignment_id, answer_text, status, points, max_points)
				 VALUES ($1, $2, $3, $4, 0, 10)`,
				studentID, assignmentID,
				"Ответ на практическую работу.",
				models.SubmissionSubmitted); err != nil {
				return err
			}
		}
	}
	return nil
}

func weekStart(day time.Time) time.Time {
	offset := (int(day.Weekday()) + 6) % 7
	day = day.AddDate(0, 0, -offset)
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
}
