package services

import (
	"errors"
	"time"

	"shift-planner/internal/apperror"
	"shift-planner/internal/models"
	"shift-planner/internal/repositories"
)

// TimeServiceInterface определяет методы учета рабочего времени
type TimeServiceInterface interface {
	List(callerID int, isManager bool, from, to string, employeeID *int) ([]models.TimeEntry, error)
	CheckIn(employeeID int, notes string) (*models.TimeEntry, error)
	CheckOut(employeeID int) (*models.TimeEntry, error)
	Create(callerID int, isManager bool, entry *models.TimeEntry) error
	Update(callerID int, isManager bool, entry *models.TimeEntry) error
	Delete(callerID int, isManager bool, id int) error
}

// TimeService реализует табель: чек-ин/чек-аут по текущему времени сервера
// и ручные корректировки. Флаг approved выставляет только менеджер.
type TimeService struct {
	timeRepo repositories.TimeRepositoryInterface

	// now подменяется в тестах
	now func() time.Time
}

// NewTimeService создает новый экземпляр TimeService
func NewTimeService(timeRepo repositories.TimeRepositoryInterface) *TimeService {
	return &TimeService{
		timeRepo: timeRepo,
		now:      time.Now,
	}
}

// List возвращает записи табеля: менеджер - любые, рядовой сотрудник - только свои
func (s *TimeService) List(callerID int, isManager bool, from, to string, employeeID *int) ([]models.TimeEntry, error) {
	filter := repositories.TimeEntryFilter{From: from, To: to}
	if isManager {
		filter.EmployeeID = employeeID
	} else {
		filter.EmployeeID = &callerID
	}
	return s.timeRepo.List(filter)
}

// CheckIn открывает запись табеля на текущий момент. Повторный чек-ин при
// незакрытой записи отклоняется. Запись привязывается к смене сотрудника
// на сегодня, если такая есть.
func (s *TimeService) CheckIn(employeeID int, notes string) (*models.TimeEntry, error) {
	today := s.now().Format(models.DateLayout)

	if _, err := s.timeRepo.GetOpenEntry(employeeID, today); err == nil {
		return nil, apperror.New(apperror.CodeInvalidState, "У вас уже есть незакрытая запись на сегодня")
	} else if !errors.Is(err, repositories.ErrTimeEntryNotFound) {
		return nil, err
	}

	shiftID, err := s.timeRepo.FindShiftID(employeeID, today)
	if err != nil {
		return nil, err
	}

	entry := &models.TimeEntry{
		EmployeeID: employeeID,
		ShiftID:    shiftID,
		Date:       today,
		ClockIn:    s.now().Format(models.TimeLayout),
		Notes:      notes,
	}
	if err := s.timeRepo.Create(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// CheckOut закрывает открытую запись текущим временем. Без открытой записи
// операция невозможна.
func (s *TimeService) CheckOut(employeeID int) (*models.TimeEntry, error) {
	today := s.now().Format(models.DateLayout)

	entry, err := s.timeRepo.GetOpenEntry(employeeID, today)
	if err != nil {
		if errors.Is(err, repositories.ErrTimeEntryNotFound) {
			return nil, apperror.New(apperror.CodeInvalidState, "Нет открытой записи для чек-аута")
		}
		return nil, err
	}

	entry.ClockOut = s.now().Format(models.TimeLayout)
	if err := s.timeRepo.SetClockOut(entry.ID, entry.ClockOut); err != nil {
		return nil, err
	}
	return entry, nil
}

func validateTimeEntry(entry *models.TimeEntry) error {
	if _, err := models.ParseDate(entry.Date); err != nil {
		return apperror.New(apperror.CodeValidation, err.Error())
	}
	if _, err := time.Parse(models.TimeLayout, entry.ClockIn); err != nil {
		return apperror.New(apperror.CodeValidation, "Некорректное время прихода: "+entry.ClockIn)
	}
	if entry.ClockOut != "" {
		if _, err := time.Parse(models.TimeLayout, entry.ClockOut); err != nil {
			return apperror.New(apperror.CodeValidation, "Некорректное время ухода: "+entry.ClockOut)
		}
	}
	return nil
}

// Create добавляет запись табеля вручную. Рядовой сотрудник создает записи
// только на себя, менеджер - на кого угодно.
func (s *TimeService) Create(callerID int, isManager bool, entry *models.TimeEntry) error {
	if !isManager {
		entry.EmployeeID = callerID
		entry.Approved = false
	}
	if err := validateTimeEntry(entry); err != nil {
		return err
	}

	if entry.ShiftID == nil {
		shiftID, err := s.timeRepo.FindShiftID(entry.EmployeeID, entry.Date)
		if err != nil {
			return err
		}
		entry.ShiftID = shiftID
	}
	return s.timeRepo.Create(entry)
}

// Update редактирует запись табеля. Владелец или менеджер; флаг approved
// рядовому сотруднику сбрасывается до значения в БД.
func (s *TimeService) Update(callerID int, isManager bool, entry *models.TimeEntry) error {
	existing, err := s.timeRepo.GetByID(entry.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrTimeEntryNotFound) {
			return apperror.New(apperror.CodeNotFound, "Запись табеля не найдена")
		}
		return err
	}

	if !isManager {
		if existing.EmployeeID != callerID {
			return apperror.New(apperror.CodeForbidden, "Можно редактировать только собственные записи")
		}
		entry.Approved = existing.Approved
	}
	if err := validateTimeEntry(entry); err != nil {
		return err
	}
	return s.timeRepo.Update(entry)
}

// Delete удаляет запись табеля. Владелец или менеджер.
func (s *TimeService) Delete(callerID int, isManager bool, id int) error {
	existing, err := s.timeRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrTimeEntryNotFound) {
			return apperror.New(apperror.CodeNotFound, "Запись табеля не найдена")
		}
		return err
	}
	if !isManager && existing.EmployeeID != callerID {
		return apperror.New(apperror.CodeForbidden, "Можно удалять только собственные записи")
	}
	return s.timeRepo.Delete(id)
}
