// Package models содержит доменные структуры учебного портала:
// пользователей, дисциплины, темы, задания, расписание и записи журнала.
package models

// Роли пользователей системы.
const (
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

// User представляет учётную запись пользователя системы.
type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
	FullName     string `json:"full_name"`
	IsActive     bool   `json:"is_active"`
}

// LoginRequest — входные данные для входа в систему.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse — ответ успешного входа.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Profile — ответ /auth/me: учётная запись плюс идентификаторы
// профиля студента или преподавателя, если они есть.
type Profile struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	FullName  string `json:"full_name"`
	StudentID *int   `json:"student_id,omitempty"`
	GroupID   *int   `json:"group_id,omitempty"`
	TeacherID *int   `json:"teacher_id,omitempty"`
}

// Student — профиль студента, привязанный к учётной записи и группе.
type Student struct {
	ID      int
	UserID  int
	GroupID int
}

// Teacher — профиль преподавателя.
type Teacher struct {
	ID     int
	UserID int
}

// StudentShort — краткие данные студента для строк журнала.
type StudentShort struct {
	ID       int    `json:"id"`
	FullName string `json:"full_name"`
}
