package services

import (
	"errors"
	"fmt"

	"shift-planner/internal/apperror"
	"shift-planner/internal/models"
	"shift-planner/internal/repositories"
)

// EmployeeServiceInterface определяет методы сервиса сотрудников
type EmployeeServiceInterface interface {
	Directory() ([]models.EmployeeDirectoryItem, error)
	GetAll() ([]models.Employee, error)
	GetByID(id int) (*models.Employee, error)
	Create(employee *models.Employee) error
	Update(employee *models.Employee) error
	Deactivate(id int) error
}

// EmployeeService реализует операции над учетными записями сотрудников
type EmployeeService struct {
	employeeRepo   repositories.EmployeeRepositoryInterface
	defaultBalance float64
}

// NewEmployeeService создает новый экземпляр EmployeeService
func NewEmployeeService(employeeRepo repositories.EmployeeRepositoryInterface, defaultBalance float64) *EmployeeService {
	return &EmployeeService{
		employeeRepo:   employeeRepo,
		defaultBalance: defaultBalance,
	}
}

// Directory возвращает справочник активных сотрудников для любых
// аутентифицированных пользователей
func (s *EmployeeService) Directory() ([]models.EmployeeDirectoryItem, error) {
	return s.employeeRepo.GetActiveDirectory()
}

// GetAll возвращает полный список сотрудников (только для менеджеров)
func (s *EmployeeService) GetAll() ([]models.Employee, error) {
	employees, err := s.employeeRepo.GetAll()
	if err != nil {
		return nil, err
	}
	for i := range employees {
		employees[i].Password = ""
	}
	return employees, nil
}

// GetByID возвращает сотрудника по ID
func (s *EmployeeService) GetByID(id int) (*models.Employee, error) {
	employee, err := s.employeeRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrEmployeeNotFound) {
			return nil, apperror.New(apperror.CodeNotFound, "Сотрудник не найден")
		}
		return nil, err
	}
	employee.Password = ""
	return employee, nil
}

// Create создает сотрудника от имени менеджера
func (s *EmployeeService) Create(employee *models.Employee) error {
	if employee.Name == "" || employee.Email == "" || employee.Password == "" {
		return apperror.New(apperror.CodeValidation, "Имя, email и пароль обязательны")
	}
	if employee.Role == "" {
		employee.Role = models.RoleStaff
	}
	if employee.Role != models.RoleStaff && employee.Role != models.RoleManager {
		return apperror.New(apperror.CodeValidation, "Неизвестная роль: "+employee.Role)
	}
	if employee.VacationBalance == 0 {
		employee.VacationBalance = s.defaultBalance
	}

	if _, err := s.employeeRepo.FindByEmail(employee.Email); err == nil {
		return apperror.New(apperror.CodeConflict, "Email уже используется")
	} else if !errors.Is(err, repositories.ErrEmployeeNotFound) {
		return fmt.Errorf("ошибка проверки email: %w", err)
	}

	return s.employeeRepo.Create(employee)
}

// Update обновляет данные сотрудника, включая баланс отпуска.
// Ручное изменение баланса менеджером - единственный путь пополнения:
// автоматического начисления в системе нет.
func (s *EmployeeService) Update(employee *models.Employee) error {
	if _, err := s.employeeRepo.FindByID(employee.ID); err != nil {
		if errors.Is(err, repositories.ErrEmployeeNotFound) {
			return apperror.New(apperror.CodeNotFound, "Сотрудник не найден")
		}
		return err
	}
	if employee.Role != models.RoleStaff && employee.Role != models.RoleManager {
		return apperror.New(apperror.CodeValidation, "Неизвестная роль: "+employee.Role)
	}
	return s.employeeRepo.Update(employee)
}

// Deactivate выполняет мягкое удаление учетной записи
func (s *EmployeeService) Deactivate(id int) error {
	if _, err := s.employeeRepo.FindByID(id); err != nil {
		if errors.Is(err, repositories.ErrEmployeeNotFound) {
			return apperror.New(apperror.CodeNotFound, "Сотрудник не найден")
		}
		return err
	}
	return s.employeeRepo.Deactivate(id)
}
