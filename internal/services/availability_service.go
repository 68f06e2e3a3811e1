package services

import (
	"time"

	"shift-planner/internal/apperror"
	"shift-planner/internal/models"
	"shift-planner/internal/repositories"
)

// AvailabilityServiceInterface определяет методы сервиса доступности
type AvailabilityServiceInterface interface {
	Get(callerID int, isManager bool, employeeID int) ([]models.Availability, error)
	Set(callerID int, entry *models.Availability) error
}

// AvailabilityService реализует ведение доступности сотрудников по дням
// недели: одна запись на сочетание (сотрудник, день, тип), повторное
// сохранение заменяет существующую.
type AvailabilityService struct {
	availabilityRepo repositories.AvailabilityRepositoryInterface
}

// NewAvailabilityService создает новый экземпляр AvailabilityService
func NewAvailabilityService(availabilityRepo repositories.AvailabilityRepositoryInterface) *AvailabilityService {
	return &AvailabilityService{availabilityRepo: availabilityRepo}
}

// Get возвращает доступность сотрудника. Рядовой сотрудник видит только свою.
func (s *AvailabilityService) Get(callerID int, isManager bool, employeeID int) ([]models.Availability, error) {
	if employeeID == 0 {
		employeeID = callerID
	}
	if !isManager && employeeID != callerID {
		return nil, apperror.New(apperror.CodeForbidden, "Доступность других сотрудников видна только менеджеру")
	}
	return s.availabilityRepo.ListForEmployee(employeeID)
}

// Set сохраняет запись доступности вызывающего на день недели
func (s *AvailabilityService) Set(callerID int, entry *models.Availability) error {
	entry.EmployeeID = callerID

	if entry.Weekday < 0 || entry.Weekday > 6 {
		return apperror.New(apperror.CodeValidation, "День недели должен быть в диапазоне 0-6")
	}
	if entry.Kind == "" {
		entry.Kind = models.AvailabilityRecurring
	}
	if entry.Kind != models.AvailabilityRecurring && entry.Kind != models.AvailabilityException {
		return apperror.New(apperror.CodeValidation, "Неизвестный тип записи доступности: "+entry.Kind)
	}
	if entry.Kind == models.AvailabilityException {
		if entry.Date == nil || *entry.Date == "" {
			return apperror.New(apperror.CodeValidation, "Для исключения требуется дата")
		}
		if _, err := models.ParseDate(*entry.Date); err != nil {
			return apperror.New(apperror.CodeValidation, err.Error())
		}
	}
	if entry.Available {
		if _, err := time.Parse(models.TimeLayout, entry.From); err != nil {
			return apperror.New(apperror.CodeValidation, "Некорректное время начала доступности: "+entry.From)
		}
		if _, err := time.Parse(models.TimeLayout, entry.Until); err != nil {
			return apperror.New(apperror.CodeValidation, "Некорректное время окончания доступности: "+entry.Until)
		}
	}

	return s.availabilityRepo.Replace(entry)
}
