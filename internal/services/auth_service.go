package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"shift-planner/internal/apperror"
	"shift-planner/internal/models"
	"shift-planner/internal/repositories"
)

// TokenIssuer выдает JWT для сотрудника (нужен также сервису приглашений,
// чтобы регистрация сразу возвращала рабочий токен)
type TokenIssuer interface {
	IssueToken(employee *models.Employee) (string, error)
}

// AuthServiceInterface определяет методы сервиса аутентификации
type AuthServiceInterface interface {
	Login(email, password string) (string, *models.Employee, error)
	IssueToken(employee *models.Employee) (string, error)
	Me(employeeID int) (*models.Employee, error)
	UpdateProfile(employeeID int, name, phone string) (*models.Employee, error)
	ChangePassword(employeeID int, current, next string) error
	SetupAdmin(name, email, password string) (*models.Employee, error)
}

// AuthService предоставляет методы для аутентификации сотрудников
type AuthService struct {
	employeeRepo   repositories.EmployeeRepositoryInterface
	jwtSecret      string
	tokenTTL       time.Duration
	defaultBalance float64
}

// NewAuthService создает новый экземпляр AuthService
func NewAuthService(employeeRepo repositories.EmployeeRepositoryInterface, jwtSecret string, tokenTTL time.Duration, defaultBalance float64) *AuthService {
	return &AuthService{
		employeeRepo:   employeeRepo,
		jwtSecret:      jwtSecret,
		tokenTTL:       tokenTTL,
		defaultBalance: defaultBalance,
	}
}

// Login проверяет учетные данные и возвращает JWT токен
func (s *AuthService) Login(email, password string) (string, *models.Employee, error) {
	employee, err := s.employeeRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrEmployeeNotFound) {
			return "", nil, apperror.New(apperror.CodeUnauthenticated, "Неверный email или пароль")
		}
		return "", nil, fmt.Errorf("ошибка поиска сотрудника: %w", err)
	}
	if !employee.Active {
		return "", nil, apperror.New(apperror.CodeUnauthenticated, "Неверный email или пароль")
	}

	if err = bcrypt.CompareHashAndPassword([]byte(employee.Password), []byte(password)); err != nil {
		return "", nil, apperror.New(apperror.CodeUnauthenticated, "Неверный email или пароль")
	}

	token, err := s.IssueToken(employee)
	if err != nil {
		return "", nil, err
	}

	employee.Password = ""
	return token, employee, nil
}

// IssueToken генерирует JWT с идентичностью и ролью сотрудника
func (s *AuthService) IssueToken(employee *models.Employee) (string, error) {
	claims := jwt.MapClaims{
		"user_id": employee.ID,
		"email":   employee.Email,
		"role":    employee.Role,
		"exp":     time.Now().Add(s.tokenTTL).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("ошибка генерации токена: %w", err)
	}
	return tokenString, nil
}

// Me возвращает данные текущего сотрудника
func (s *AuthService) Me(employeeID int) (*models.Employee, error) {
	employee, err := s.employeeRepo.FindByID(employeeID)
	if err != nil {
		if errors.Is(err, repositories.ErrEmployeeNotFound) {
			return nil, apperror.New(apperror.CodeNotFound, "Сотрудник не найден")
		}
		return nil, fmt.Errorf("ошибка получения сотрудника: %w", err)
	}
	employee.Password = ""
	return employee, nil
}

// UpdateProfile обновляет имя и телефон текущего сотрудника
func (s *AuthService) UpdateProfile(employeeID int, name, phone string) (*models.Employee, error) {
	if name == "" {
		return nil, apperror.New(apperror.CodeValidation, "Имя не может быть пустым")
	}
	if err := s.employeeRepo.UpdateProfile(employeeID, name, phone); err != nil {
		return nil, fmt.Errorf("ошибка обновления профиля: %w", err)
	}
	return s.Me(employeeID)
}

// ChangePassword меняет пароль после проверки текущего
func (s *AuthService) ChangePassword(employeeID int, current, next string) error {
	if len(next) < 8 {
		return apperror.New(apperror.CodeValidation, "Пароль должен содержать минимум 8 символов")
	}

	employee, err := s.employeeRepo.FindByID(employeeID)
	if err != nil {
		if errors.Is(err, repositories.ErrEmployeeNotFound) {
			return apperror.New(apperror.CodeNotFound, "Сотрудник не найден")
		}
		return fmt.Errorf("ошибка получения сотрудника: %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(employee.Password), []byte(current)); err != nil {
		return apperror.New(apperror.CodeValidation, "Текущий пароль указан неверно")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("ошибка хеширования пароля: %w", err)
	}
	return s.employeeRepo.UpdatePassword(employeeID, string(hash))
}

// SetupAdmin создает первую учетную запись менеджера.
// Работает только пока таблица сотрудников пуста.
func (s *AuthService) SetupAdmin(name, email, password string) (*models.Employee, error) {
	count, err := s.employeeRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("ошибка проверки существующих учетных записей: %w", err)
	}
	if count > 0 {
		return nil, apperror.New(apperror.CodeConflict, "Учетная запись администратора уже существует")
	}
	if len(password) < 8 {
		return nil, apperror.New(apperror.CodeValidation, "Пароль должен содержать минимум 8 символов")
	}

	admin := &models.Employee{
		Name:            name,
		Email:           email,
		Password:        password,
		Role:            models.RoleManager,
		Department:      "Management",
		VacationBalance: s.defaultBalance,
	}
	if err := s.employeeRepo.Create(admin); err != nil {
		return nil, fmt.Errorf("ошибка создания администратора: %w", err)
	}
	return admin, nil
}
