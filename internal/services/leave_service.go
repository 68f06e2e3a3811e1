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

// LeaveServiceInterface определяет методы workflow заявок на отпуск
type LeaveServiceInterface interface {
	Submit(employeeID int, startDate, endDate, leaveType, note string) (*models.LeaveRequest, error)
	List(callerID int, isManager bool, employeeID *int, status string) ([]models.LeaveRequest, error)
	Process(managerID, requestID int, decision, comment string) (*models.LeaveRequest, error)
	Cancel(callerID, requestID int) error
}

// LeaveService реализует жизненный цикл заявок на отпуск и ведет баланс
// отпускных дней: баланс списывается только при утверждении заявки типа
// vacation и только один раз.
type LeaveService struct {
	leaveRepo        repositories.LeaveRepositoryInterface
	employeeRepo     repositories.EmployeeRepositoryInterface
	notificationRepo repositories.NotificationRepositoryInterface
}

// NewLeaveService создает новый экземпляр LeaveService
func NewLeaveService(
	leaveRepo repositories.LeaveRepositoryInterface,
	employeeRepo repositories.EmployeeRepositoryInterface,
	notificationRepo repositories.NotificationRepositoryInterface,
) *LeaveService {
	return &LeaveService{
		leaveRepo:        leaveRepo,
		employeeRepo:     employeeRepo,
		notificationRepo: notificationRepo,
	}
}

// CountWorkdays считает будние дни (пн-пт) во включительном диапазоне дат.
// Выходные исключаются всегда, независимо от типа отпуска.
func CountWorkdays(startDate, endDate string) (float64, error) {
	start, err := models.ParseDate(startDate)
	if err != nil {
		return 0, apperror.New(apperror.CodeValidation, err.Error())
	}
	end, err := models.ParseDate(endDate)
	if err != nil {
		return 0, apperror.New(apperror.CodeValidation, err.Error())
	}
	if end.Before(start) {
		return 0, apperror.New(apperror.CodeValidation, "Дата окончания раньше даты начала")
	}

	var days float64
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			days++
		}
	}
	return days, nil
}

// Submit создает заявку на отпуск. Для типа vacation проверяется текущий
// баланс сотрудника: заявка, превышающая баланс, отклоняется до записи в БД.
// Все активные менеджеры получают уведомление.
func (s *LeaveService) Submit(employeeID int, startDate, endDate, leaveType, note string) (*models.LeaveRequest, error) {
	if !models.ValidLeaveType(leaveType) {
		return nil, apperror.New(apperror.CodeValidation, "Неизвестный тип отпуска: "+leaveType)
	}

	days, err := CountWorkdays(startDate, endDate)
	if err != nil {
		return nil, err
	}

	if leaveType == models.LeaveVacation {
		employee, err := s.employeeRepo.FindByID(employeeID)
		if err != nil {
			if errors.Is(err, repositories.ErrEmployeeNotFound) {
				return nil, apperror.New(apperror.CodeNotFound, "Сотрудник не найден")
			}
			return nil, fmt.Errorf("ошибка получения сотрудника для проверки баланса: %w", err)
		}
		if days > employee.VacationBalance {
			return nil, apperror.New(apperror.CodeInsufficientBalance,
				fmt.Sprintf("Недостаточно отпускных дней: доступно %.1f, запрошено %.1f", employee.VacationBalance, days))
		}
	}

	request := &models.LeaveRequest{
		EmployeeID: employeeID,
		StartDate:  startDate,
		EndDate:    endDate,
		Type:       leaveType,
		Status:     models.LeavePending,
		DayCount:   days,
		Note:       note,
	}
	if err := s.leaveRepo.Create(request); err != nil {
		return nil, err
	}

	s.notifyManagers(leaveType)
	return request, nil
}

// List возвращает заявки: менеджер видит все (с опциональным фильтром по
// сотруднику), рядовой сотрудник - только свои
func (s *LeaveService) List(callerID int, isManager bool, employeeID *int, status string) ([]models.LeaveRequest, error) {
	filter := repositories.LeaveFilter{Status: status}
	if isManager {
		filter.EmployeeID = employeeID
	} else {
		filter.EmployeeID = &callerID
	}
	return s.leaveRepo.List(filter)
}

// Process применяет решение менеджера по заявке. Допустимы только переходы
// из pending; повторная обработка возвращает invalid_state и не трогает
// баланс повторно.
func (s *LeaveService) Process(managerID, requestID int, decision, comment string) (*models.LeaveRequest, error) {
	if decision != models.LeaveApproved && decision != models.LeaveRejected {
		return nil, apperror.New(apperror.CodeValidation, "Решение должно быть approved или rejected")
	}

	request, err := s.leaveRepo.ProcessDecision(requestID, managerID, decision, comment)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrLeaveNotFound):
			return nil, apperror.New(apperror.CodeNotFound, "Заявка не найдена")
		case errors.Is(err, repositories.ErrLeaveNotPending):
			return nil, apperror.New(apperror.CodeInvalidState, "Заявка уже обработана")
		default:
			return nil, err
		}
	}

	title := "Заявка на отпуск отклонена"
	if decision == models.LeaveApproved {
		title = "Заявка на отпуск утверждена"
	}
	s.notify(request.EmployeeID, "leave", title,
		fmt.Sprintf("Ваша заявка на %s - %s обработана.", request.StartDate, request.EndDate), "/leave")

	return request, nil
}

// Cancel отменяет заявку. Разрешено только автору и только из pending.
func (s *LeaveService) Cancel(callerID, requestID int) error {
	request, err := s.leaveRepo.GetByID(requestID)
	if err != nil {
		if errors.Is(err, repositories.ErrLeaveNotFound) {
			return apperror.New(apperror.CodeNotFound, "Заявка не найдена")
		}
		return err
	}

	if request.EmployeeID != callerID {
		return apperror.New(apperror.CodeForbidden, "Отменить заявку может только ее автор")
	}
	if request.Status != models.LeavePending {
		return apperror.New(apperror.CodeInvalidState, "Можно отменить только заявку на рассмотрении")
	}

	cancelled, err := s.leaveRepo.CancelPending(requestID)
	if err != nil {
		return err
	}
	if !cancelled {
		// Статус сменился между проверкой и отменой
		return apperror.New(apperror.CodeConflict, "Заявка уже обработана")
	}
	return nil
}

func (s *LeaveService) notifyManagers(leaveType string) {
	managerIDs, err := s.employeeRepo.GetActiveManagerIDs()
	if err != nil {
		log.Printf("[LeaveService] Failed to load managers for notification: %v", err)
		return
	}
	for _, id := range managerIDs {
		s.notify(id, "leave", "Новая заявка на отпуск",
			fmt.Sprintf("Получена новая заявка типа %s.", leaveType), "/leave/manage")
	}
}

func (s *LeaveService) notify(recipientID int, kind, title, body, link string) {
	err := s.notificationRepo.Create(&models.Notification{
		RecipientID: recipientID,
		Type:        kind,
		Title:       title,
		Body:        body,
		Link:        link,
	})
	if err != nil {
		// Уведомление не критично для workflow, не роняем операцию
		log.Printf("[LeaveService] Failed to notify employee %d: %v", recipientID, err)
	}
}
