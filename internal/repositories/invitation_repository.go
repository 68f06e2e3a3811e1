package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"shift-planner/internal/models"
)

// ErrInvitationNotFound возвращается, когда приглашение не найдено или уже использовано
var ErrInvitationNotFound = errors.New("приглашение не найдено или уже использовано")

// InvitationRepositoryInterface определяет методы для работы с приглашениями
type InvitationRepositoryInterface interface {
	Create(invitation *models.Invitation) error
	GetUnusedByToken(token string) (*models.Invitation, error)
	HasUnusedForEmail(email string) (bool, error)
	List() ([]models.Invitation, error)
	Delete(id int) error
	MarkUsed(id int) error
}

// InvitationRepository предоставляет методы для работы с приглашениями в БД
type InvitationRepository struct {
	db *sql.DB
}

// NewInvitationRepository создает новый экземпляр InvitationRepository
func NewInvitationRepository(db *sql.DB) *InvitationRepository {
	return &InvitationRepository{db: db}
}

// Create сохраняет новое приглашение
func (r *InvitationRepository) Create(invitation *models.Invitation) error {
	query := `
		INSERT INTO invitations (email, name, token, role, department, expires_at, created_by)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.Exec(query,
		invitation.Email, invitation.Name, invitation.Token, invitation.Role,
		invitation.Department, invitation.ExpiresAt, invitation.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("ошибка создания приглашения: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("ошибка получения ID созданного приглашения: %w", err)
	}
	invitation.ID = int(id)
	return nil
}

// GetUnusedByToken находит неиспользованное приглашение по токену
func (r *InvitationRepository) GetUnusedByToken(token string) (*models.Invitation, error) {
	query := `
		SELECT id, email, name, token, role, department, used, expires_at, created_by, created_at
		FROM invitations WHERE token = ? AND used = 0`

	inv := &models.Invitation{}
	err := r.db.QueryRow(query, token).Scan(
		&inv.ID, &inv.Email, &inv.Name, &inv.Token, &inv.Role, &inv.Department,
		&inv.Used, &inv.ExpiresAt, &inv.CreatedBy, &inv.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvitationNotFound
		}
		return nil, fmt.Errorf("ошибка поиска приглашения по токену: %w", err)
	}
	return inv, nil
}

// HasUnusedForEmail проверяет, есть ли действующее приглашение на этот email
func (r *InvitationRepository) HasUnusedForEmail(email string) (bool, error) {
	var id int
	err := r.db.QueryRow(`SELECT id FROM invitations WHERE email = ? AND used = 0`, email).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("ошибка проверки приглашений для email: %w", err)
	}
	return true, nil
}

// List возвращает все приглашения с именем создателя, новые первыми
func (r *InvitationRepository) List() ([]models.Invitation, error) {
	query := `
		SELECT i.id, i.email, i.name, i.token, i.role, i.department, i.used, i.expires_at,
			i.created_by, u.name, i.created_at
		FROM invitations i
		JOIN employees u ON i.created_by = u.id
		ORDER BY i.created_at DESC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка приглашений: %w", err)
	}
	defer rows.Close()

	var invitations []models.Invitation
	for rows.Next() {
		var inv models.Invitation
		if err := rows.Scan(
			&inv.ID, &inv.Email, &inv.Name, &inv.Token, &inv.Role, &inv.Department,
			&inv.Used, &inv.ExpiresAt, &inv.CreatedBy, &inv.CreatedByName, &inv.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования приглашения: %w", err)
		}
		invitations = append(invitations, inv)
	}
	return invitations, rows.Err()
}

// Delete удаляет приглашение
func (r *InvitationRepository) Delete(id int) error {
	result, err := r.db.Exec(`DELETE FROM invitations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления приглашения %d: %w", id, err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrInvitationNotFound
	}
	return nil
}

// MarkUsed помечает приглашение использованным
func (r *InvitationRepository) MarkUsed(id int) error {
	if _, err := r.db.Exec(`UPDATE invitations SET used = 1 WHERE id = ?`, id); err != nil {
		return fmt.Errorf("ошибка пометки приглашения %d использованным: %w", id, err)
	}
	return nil
}
