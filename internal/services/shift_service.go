package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"shift-planner/internal/apperror"
	"shift-planner/internal/models"
	"shift-planner/internal/repositories"
)

// ShiftServiceInterface определяет методы сервиса смен
type ShiftServiceInterface interface {
	List(callerID int, isManager bool, from, to string, employeeID *int) ([]models.Shift, error)
	Create(shift *models.Shift) error
	Update(shift *models.Shift) error
	Delete(id int) error
	Publish(from, to string) (int, error)
}

// ShiftService реализует планирование смен. Смены создаются черновиками,
// становятся видимыми всем только после публикации.
type ShiftService struct {
	shiftRepo        repositories.ShiftRepositoryInterface
	employeeRepo     repositories.EmployeeRepositoryInterface
	notificationRepo repositories.NotificationRepositoryInterface
}

// NewShiftService создает новый экземпляр ShiftService
func NewShiftService(
	shiftRepo repositories.ShiftRepositoryInterface,
	employeeRepo repositories.EmployeeRepositoryInterface,
	notificationRepo repositories.NotificationRepositoryInterface,
) *ShiftService {
	return &ShiftService{
		shiftRepo:        shiftRepo,
		employeeRepo:     employeeRepo,
		notificationRepo: notificationRepo,
	}
}

// List возвращает смены: менеджер видит все (с опциональным фильтром по
// сотруднику), рядовой сотрудник - опубликованные плюс собственные черновики
func (s *ShiftService) List(callerID int, isManager bool, from, to string, employeeID *int) ([]models.Shift, error) {
	filter := repositories.ShiftFilter{From: from, To: to}
	if isManager {
		filter.EmployeeID = employeeID
	} else {
		filter.VisibleFor = &callerID
	}
	return s.shiftRepo.List(filter)
}

func validateShift(shift *models.Shift) error {
	if _, err := models.ParseDate(shift.Date); err != nil {
		return apperror.New(apperror.CodeValidation, err.Error())
	}
	start, err := time.Parse(models.TimeLayout, shift.StartTime)
	if err != nil {
		return apperror.New(apperror.CodeValidation, "Некорректное время начала: "+shift.StartTime)
	}
	end, err := time.Parse(models.TimeLayout, shift.EndTime)
	if err != nil {
		return apperror.New(apperror.CodeValidation, "Некорректное время окончания: "+shift.EndTime)
	}
	if !end.After(start) {
		return apperror.New(apperror.CodeValidation, "Время окончания должно быть позже времени начала")
	}
	if shift.BreakMin < 0 {
		return apperror.New(apperror.CodeValidation, "Перерыв не может быть отрицательным")
	}
	return nil
}

// Create создает новую смену в статусе draft
func (s *ShiftService) Create(shift *models.Shift) error {
	if err := validateShift(shift); err != nil {
		return err
	}

	employee, err := s.employeeRepo.FindByID(shift.EmployeeID)
	if err != nil {
		if errors.Is(err, repositories.ErrEmployeeNotFound) {
			return apperror.New(apperror.CodeNotFound, "Сотрудник не найден")
		}
		return err
	}
	if !employee.Active {
		return apperror.New(apperror.CodeValidation, "Нельзя назначить смену деактивированному сотруднику")
	}

	if shift.Department == "" {
		shift.Department = employee.Department
	}
	shift.Status = models.ShiftDraft
	return s.shiftRepo.Create(shift)
}

// Update обновляет смену. Статус смены меняется только через Publish,
// поэтому входной статус валидируется по известному перечню.
func (s *ShiftService) Update(shift *models.Shift) error {
	if err := validateShift(shift); err != nil {
		return err
	}
	switch shift.Status {
	case models.ShiftDraft, models.ShiftPublished, models.ShiftCompleted:
	default:
		return apperror.New(apperror.CodeValidation, "Неизвестный статус смены: "+shift.Status)
	}

	if err := s.shiftRepo.Update(shift); err != nil {
		if errors.Is(err, repositories.ErrShiftNotFound) {
			return apperror.New(apperror.CodeNotFound, "Смена не найдена")
		}
		return err
	}
	return nil
}

// Delete удаляет смену
func (s *ShiftService) Delete(id int) error {
	if err := s.shiftRepo.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrShiftNotFound) {
			return apperror.New(apperror.CodeNotFound, "Смена не найдена")
		}
		return err
	}
	return nil
}

// Publish переводит черновики диапазона в published и уведомляет каждого
// сотрудника, у которого в диапазоне есть смены. Возвращает число уведомленных.
func (s *ShiftService) Publish(from, to string) (int, error) {
	startDate, err := models.ParseDate(from)
	if err != nil {
		return 0, apperror.New(apperror.CodeValidation, err.Error())
	}
	endDate, err := models.ParseDate(to)
	if err != nil {
		return 0, apperror.New(apperror.CodeValidation, err.Error())
	}
	if endDate.Before(startDate) {
		return 0, apperror.New(apperror.CodeValidation, "Дата окончания раньше даты начала")
	}

	employeeIDs, err := s.shiftRepo.PublishRange(from, to)
	if err != nil {
		return 0, err
	}
	log.Printf("[ShiftService] Published schedule %s..%s, %d employees affected", from, to, len(employeeIDs))

	for _, id := range employeeIDs {
		notifyErr := s.notificationRepo.Create(&models.Notification{
			RecipientID: id,
			Type:        "schedule",
			Title:       "Опубликовано новое расписание",
			Body:        fmt.Sprintf("Расписание на период %s - %s опубликовано.", from, to),
			Link:        "/schedule",
		})
		if notifyErr != nil {
			log.Printf("[ShiftService] Failed to notify employee %d about schedule: %v", id, notifyErr)
		}
	}
	return len(employeeIDs), nil
}
