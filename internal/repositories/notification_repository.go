package repositories

import (
	"database/sql"
	"fmt"

	"shift-planner/internal/models"
)

// NotificationRepositoryInterface определяет методы для работы с уведомлениями
type NotificationRepositoryInterface interface {
	Create(notification *models.Notification) error
	ListForRecipient(recipientID, limit int) ([]models.Notification, error)
	MarkRead(id, recipientID int) (bool, error)
	MarkAllRead(recipientID int) error
}

// NotificationRepository предоставляет методы для работы с уведомлениями в БД.
// Хранилище append-only: после вставки меняется только флаг прочтения.
type NotificationRepository struct {
	db *sql.DB
}

// NewNotificationRepository создает новый экземпляр NotificationRepository
func NewNotificationRepository(db *sql.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create добавляет уведомление в ящик получателя
func (r *NotificationRepository) Create(notification *models.Notification) error {
	query := `
		INSERT INTO notifications (recipient_id, type, title, body, link)
		VALUES (?, ?, ?, ?, ?)`

	result, err := r.db.Exec(query,
		notification.RecipientID, notification.Type, notification.Title,
		notification.Body, notification.Link,
	)
	if err != nil {
		return fmt.Errorf("ошибка создания уведомления: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("ошибка получения ID созданного уведомления: %w", err)
	}
	notification.ID = int(id)
	return nil
}

// ListForRecipient возвращает уведомления пользователя, новые первыми
func (r *NotificationRepository) ListForRecipient(recipientID, limit int) ([]models.Notification, error) {
	query := `
		SELECT id, recipient_id, type, title, body, link, read_flag, created_at
		FROM notifications WHERE recipient_id = ? ORDER BY created_at DESC LIMIT ?`

	rows, err := r.db.Query(query, recipientID, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения уведомлений: %w", err)
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var n models.Notification
		var body sql.NullString
		if err := rows.Scan(&n.ID, &n.RecipientID, &n.Type, &n.Title, &body, &n.Link, &n.Read, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования уведомления: %w", err)
		}
		n.Body = body.String
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// MarkRead помечает уведомление прочитанным, только если оно принадлежит
// вызывающему. Возвращает false, если такого уведомления у пользователя нет.
func (r *NotificationRepository) MarkRead(id, recipientID int) (bool, error) {
	result, err := r.db.Exec(
		`UPDATE notifications SET read_flag = 1 WHERE id = ? AND recipient_id = ?`,
		id, recipientID,
	)
	if err != nil {
		return false, fmt.Errorf("ошибка пометки уведомления %d прочитанным: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("ошибка проверки пометки уведомления %d: %w", id, err)
	}
	return affected > 0, nil
}

// MarkAllRead помечает все уведомления пользователя прочитанными
func (r *NotificationRepository) MarkAllRead(recipientID int) error {
	if _, err := r.db.Exec(`UPDATE notifications SET read_flag = 1 WHERE recipient_id = ?`, recipientID); err != nil {
		return fmt.Errorf("ошибка пометки всех уведомлений пользователя %d: %w", recipientID, err)
	}
	return nil
}
