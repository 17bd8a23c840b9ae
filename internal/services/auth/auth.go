// Package services содержит логику бизнес-уровня для аутентификации
// и авторизации пользователей портала.
package services

import (
	"context"
	"errors"
	"strconv"

	"github.com/gritsuts/edu-platform/internal/lib/jwt"
	"github.com/gritsuts/edu-platform/internal/lib/password"
	"github.com/gritsuts/edu-platform/internal/models"
	"github.com/gritsuts/edu-platform/internal/storage/repository"
)

var (
	// ErrInvalidCredentials — неверная пара логин/пароль или отключённый аккаунт.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthenticated — токен не прошёл проверку или пользователь недоступен.
	ErrUnauthenticated = errors.New("unauthenticated")
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// GetUserByUsername возвращает пользователя по имени или repository.ErrNotFound.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUser возвращает пользователя по ID или repository.ErrNotFound.
	GetUser(ctx context.Context, id int) (*models.User, error)

	// GetStudentByUserID возвращает профиль студента, если он есть.
	GetStudentByUserID(ctx context.Context, userID int) (*models.Student, error)

	// GetTeacherByUserID возвращает профиль преподавателя, если он есть.
	GetTeacherByUserID(ctx context.Context, userID int) (*models.Teacher, error)
}

// AuthService отвечает за вход, проверку токена и профиль текущего пользователя.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Login проверяет пароль пользователя и выпускает токен доступа,
// subject которого — ID пользователя в виде строки.
//
// Неизвестный логин, неверный пароль и отключённый аккаунт дают одну
// и ту же ошибку ErrInvalidCredentials, чтобы не раскрывать, какие
// логины существуют.
func (s *AuthService) Login(ctx context.Context, username, rawPassword string) (string, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", ErrInvalidCredentials
	}
	if !user.IsActive {
		return "", ErrInvalidCredentials
	}
	return s.jwtMaker.GenerateToken(strconv.Itoa(user.ID))
}

// Authenticate проверяет токен и поднимает по subject запись пользователя.
// Любой дефект токена, отсутствующий или неактивный пользователь дают
// ErrUnauthenticated.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	id, err := strconv.Atoi(claims.Subject)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	user, err := s.users.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrUnauthenticated
	}
	return user, nil
}

// Profile собирает ответ /auth/me: учётная запись плюс идентификаторы
// профилей студента и преподавателя, если они заведены.
func (s *AuthService) Profile(ctx context.Context, user *models.User) (*models.Profile, error) {
	profile := &models.Profile{
		ID:       user.ID,
		Username: user.Username,
		Role:     user.Role,
		FullName: user.FullName,
	}

	student, err := s.users.GetStudentByUserID(ctx, user.ID)
	switch {
	case err == nil:
		profile.StudentID = &student.ID
		profile.GroupID = &student.GroupID
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}

	teacher, err := s.users.GetTeacherByUserID(ctx, user.ID)
	switch {
	case err == nil:
		profile.TeacherID = &teacher.ID
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}

	return profile, nil
}
