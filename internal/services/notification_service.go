package services

import (
	"shift-planner/internal/apperror"
	"shift-planner/internal/models"
	"shift-planner/internal/repositories"
)

// Сколько уведомлений отдается за один запрос
const notificationLimit = 50

// NotificationServiceInterface определяет методы сервиса уведомлений
type NotificationServiceInterface interface {
	List(recipientID int) ([]models.Notification, error)
	MarkRead(recipientID, id int) error
	MarkAllRead(recipientID int) error
}

// NotificationService отдает ящик уведомлений пользователя.
// Доставка опросом: клиент периодически запрашивает список.
type NotificationService struct {
	notificationRepo repositories.NotificationRepositoryInterface
}

// NewNotificationService создает новый экземпляр NotificationService
func NewNotificationService(notificationRepo repositories.NotificationRepositoryInterface) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

// List возвращает последние уведомления пользователя
func (s *NotificationService) List(recipientID int) ([]models.Notification, error) {
	return s.notificationRepo.ListForRecipient(recipientID, notificationLimit)
}

// MarkRead помечает уведомление прочитанным. Чужое уведомление для
// вызывающего неотличимо от несуществующего.
func (s *NotificationService) MarkRead(recipientID, id int) error {
	updated, err := s.notificationRepo.MarkRead(id, recipientID)
	if err != nil {
		return err
	}
	if !updated {
		return apperror.New(apperror.CodeNotFound, "Уведомление не найдено")
	}
	return nil
}

// MarkAllRead помечает все уведомления пользователя прочитанными
func (s *NotificationService) MarkAllRead(recipientID int) error {
	return s.notificationRepo.MarkAllRead(recipientID)
}
