package models

// Discipline — дисциплина с закреплённым преподавателем.
type Discipline struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	TeacherName string `json:"teacher_name"`
	MaxPoints   int    `json:"max_points"`
	HoursTotal  int    `json:"hours_total"`
}

// Topic — тема дисциплины в списке тем.
type Topic struct {
	ID         int    `json:"id"`
	Title      string `json:"title"`
	OrderIndex int    `json:"order_index"`
}

// TopicDetail — тема с содержимым для страницы темы.
type TopicDetail struct {
	ID              int    `json:"id"`
	DisciplineID    int    `json:"discipline_id"`
	DisciplineTitle string `json:"discipline_title"`
	Title           string `json:"title"`
	Content         string `json:"content"`
	OrderIndex      int    `json:"order_index"`
}
