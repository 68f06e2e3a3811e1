package services

import (
	"errors"
	"fmt"
	"log"

	"shift-planner/internal/apperror"
	"shift-planner/internal/models"
	"shift-planner/internal/repositories"
)

// Действия участников обмена
const (
	SwapActionAccept  = "accept"
	SwapActionDecline = "decline"
	SwapActionApprove = "approve"
	SwapActionReject  = "reject"
)

// SwapServiceInterface определяет методы workflow обмена сменами
type SwapServiceInterface interface {
	Create(requesterID, shiftID, recipientID int, recipientShiftID *int, note string) (*models.ShiftSwap, error)
	List(callerID int, isManager bool) ([]models.ShiftSwap, error)
	Respond(recipientID, swapID int, action string) (*models.ShiftSwap, error)
	Approve(managerID, swapID int, action string) (*models.ShiftSwap, error)
}

// SwapService реализует двухфазный workflow обмена сменами:
// sent -> {accepted, declined} решает получатель,
// accepted -> {approved, rejected} решает менеджер.
// Владелец смены меняется только на шаге утверждения.
type SwapService struct {
	swapRepo         repositories.SwapRepositoryInterface
	shiftRepo        repositories.ShiftRepositoryInterface
	employeeRepo     repositories.EmployeeRepositoryInterface
	notificationRepo repositories.NotificationRepositoryInterface
}

// NewSwapService создает новый экземпляр SwapService
func NewSwapService(
	swapRepo repositories.SwapRepositoryInterface,
	shiftRepo repositories.ShiftRepositoryInterface,
	employeeRepo repositories.EmployeeRepositoryInterface,
	notificationRepo repositories.NotificationRepositoryInterface,
) *SwapService {
	return &SwapService{
		swapRepo:         swapRepo,
		shiftRepo:        shiftRepo,
		employeeRepo:     employeeRepo,
		notificationRepo: notificationRepo,
	}
}

// Create создает запрос на обмен. Инициатор обязан владеть предлагаемой
// сменой; совпадение графиков сторон намеренно не проверяется - это
// оставлено на усмотрение людей.
func (s *SwapService) Create(requesterID, shiftID, recipientID int, recipientShiftID *int, note string) (*models.ShiftSwap, error) {
	shift, err := s.shiftRepo.GetByID(shiftID)
	if err != nil {
		if errors.Is(err, repositories.ErrShiftNotFound) {
			return nil, apperror.New(apperror.CodeNotFound, "Смена не найдена")
		}
		return nil, err
	}
	if shift.EmployeeID != requesterID {
		return nil, apperror.New(apperror.CodeForbidden, "Можно предлагать к обмену только собственную смену")
	}

	recipient, err := s.employeeRepo.FindByID(recipientID)
	if err != nil {
		if errors.Is(err, repositories.ErrEmployeeNotFound) {
			return nil, apperror.New(apperror.CodeNotFound, "Получатель не найден")
		}
		return nil, err
	}
	if !recipient.Active {
		return nil, apperror.New(apperror.CodeValidation, "Получатель деактивирован")
	}
	if recipientID == requesterID {
		return nil, apperror.New(apperror.CodeValidation, "Нельзя обмениваться сменами с самим собой")
	}

	if recipientShiftID != nil {
		counterShift, err := s.shiftRepo.GetByID(*recipientShiftID)
		if err != nil {
			if errors.Is(err, repositories.ErrShiftNotFound) {
				return nil, apperror.New(apperror.CodeNotFound, "Встречная смена не найдена")
			}
			return nil, err
		}
		if counterShift.EmployeeID != recipientID {
			return nil, apperror.New(apperror.CodeValidation, "Встречная смена должна принадлежать получателю")
		}
	}

	swap := &models.ShiftSwap{
		RequesterID:      requesterID,
		RecipientID:      recipientID,
		RequesterShiftID: shiftID,
		RecipientShiftID: recipientShiftID,
		Status:           models.SwapSent,
		Note:             note,
	}
	if err := s.swapRepo.Create(swap); err != nil {
		return nil, err
	}

	s.notify(recipientID, "Новый запрос на обмен сменой", "Вам предложили обмен сменой.")
	return swap, nil
}

// List возвращает запросы на обмен: менеджер видит все, рядовой сотрудник -
// только те, где он участвует
func (s *SwapService) List(callerID int, isManager bool) ([]models.ShiftSwap, error) {
	var participant *int
	if !isManager {
		participant = &callerID
	}

	swaps, err := s.swapRepo.List(participant)
	if err != nil {
		return nil, err
	}

	// Подтягиваем детали смен для отображения
	for i := range swaps {
		if shift, err := s.shiftRepo.GetByID(swaps[i].RequesterShiftID); err == nil {
			swaps[i].RequesterShift = shift
		}
		if swaps[i].RecipientShiftID != nil {
			if shift, err := s.shiftRepo.GetByID(*swaps[i].RecipientShiftID); err == nil {
				swaps[i].RecipientShift = shift
			}
		}
	}
	return swaps, nil
}

// Respond - решение получателя. Разрешено только названному получателю и
// только пока запрос в статусе sent.
func (s *SwapService) Respond(recipientID, swapID int, action string) (*models.ShiftSwap, error) {
	if action != SwapActionAccept && action != SwapActionDecline {
		return nil, apperror.New(apperror.CodeValidation, "Действие должно быть accept или decline")
	}

	swap, err := s.swapRepo.GetByID(swapID)
	if err != nil {
		if errors.Is(err, repositories.ErrSwapNotFound) {
			return nil, apperror.New(apperror.CodeNotFound, "Запрос на обмен не найден")
		}
		return nil, err
	}

	if swap.RecipientID != recipientID {
		return nil, apperror.New(apperror.CodeForbidden, "Ответить на запрос может только его получатель")
	}
	if swap.Status != models.SwapSent {
		return nil, apperror.New(apperror.CodeInvalidState, "Запрос уже обработан")
	}

	next := models.SwapDeclined
	if action == SwapActionAccept {
		next = models.SwapAccepted
	}

	moved, err := s.swapRepo.UpdateStatusFrom(swapID, models.SwapSent, next)
	if err != nil {
		return nil, err
	}
	if !moved {
		// Второй ответ в гонке проигрывает
		return nil, apperror.New(apperror.CodeConflict, "Запрос уже обработан")
	}
	swap.Status = next

	title := "Запрос на обмен отклонен"
	if next == models.SwapAccepted {
		title = "Запрос на обмен принят"
	}
	s.notify(swap.RequesterID, title, "Получатель ответил на ваш запрос на обмен сменой.")

	return swap, nil
}

// Approve - решение менеджера. Достижимо только из accepted: попытка
// утвердить запрос в статусе sent возвращает invalid_state. При утверждении
// смена инициатора переходит получателю; встречная смена (если указана) -
// инициатору. Односторонний обмен допустим.
func (s *SwapService) Approve(managerID, swapID int, action string) (*models.ShiftSwap, error) {
	if action != SwapActionApprove && action != SwapActionReject {
		return nil, apperror.New(apperror.CodeValidation, "Действие должно быть approve или reject")
	}

	var swap *models.ShiftSwap
	var err error

	if action == SwapActionApprove {
		swap, err = s.swapRepo.ApproveAndReassign(swapID)
		if err != nil {
			switch {
			case errors.Is(err, repositories.ErrSwapNotFound):
				return nil, apperror.New(apperror.CodeNotFound, "Запрос на обмен не найден")
			case errors.Is(err, repositories.ErrSwapInvalidState):
				return nil, apperror.New(apperror.CodeInvalidState, "Утвердить можно только принятый запрос")
			default:
				return nil, err
			}
		}
		log.Printf("[SwapService] Swap %d approved by manager %d", swapID, managerID)
	} else {
		swap, err = s.swapRepo.GetByID(swapID)
		if err != nil {
			if errors.Is(err, repositories.ErrSwapNotFound) {
				return nil, apperror.New(apperror.CodeNotFound, "Запрос на обмен не найден")
			}
			return nil, err
		}
		if swap.Status != models.SwapAccepted {
			return nil, apperror.New(apperror.CodeInvalidState, "Отклонить можно только принятый запрос")
		}
		moved, err := s.swapRepo.UpdateStatusFrom(swapID, models.SwapAccepted, models.SwapRejected)
		if err != nil {
			return nil, err
		}
		if !moved {
			return nil, apperror.New(apperror.CodeConflict, "Запрос уже обработан")
		}
		swap.Status = models.SwapRejected
	}

	title := fmt.Sprintf("Обмен сменами %s", swap.Status)
	body := "Менеджер обработал запрос на обмен сменами."
	s.notify(swap.RequesterID, title, body)
	s.notify(swap.RecipientID, title, body)

	return swap, nil
}

func (s *SwapService) notify(recipientID int, title, body string) {
	err := s.notificationRepo.Create(&models.Notification{
		RecipientID: recipientID,
		Type:        "swap",
		Title:       title,
		Body:        body,
		Link:        "/swaps",
	})
	if err != nil {
		log.Printf("[SwapService] Failed to notify employee %d: %v", recipientID, err)
	}
}
