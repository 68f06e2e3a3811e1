package repositories

import (
	"database/sql"
	"fmt"
	"log"

	"shift-planner/internal/models"
)

// AvailabilityRepositoryInterface определяет методы для работы с доступностью
type AvailabilityRepositoryInterface interface {
	ListForEmployee(employeeID int) ([]models.Availability, error)
	Replace(entry *models.Availability) error
}

// AvailabilityRepository предоставляет методы для работы с доступностью в БД
type AvailabilityRepository struct {
	db *sql.DB
}

// NewAvailabilityRepository создает новый экземпляр AvailabilityRepository
func NewAvailabilityRepository(db *sql.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

// ListForEmployee возвращает записи доступности сотрудника по дням недели
func (r *AvailabilityRepository) ListForEmployee(employeeID int) ([]models.Availability, error) {
	query := `
		SELECT id, employee_id, weekday, from_time, until_time, available, kind, date, created_at
		FROM availability WHERE employee_id = ? ORDER BY weekday`

	rows, err := r.db.Query(query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения доступности сотрудника %d: %w", employeeID, err)
	}
	defer rows.Close()

	var entries []models.Availability
	for rows.Next() {
		var a models.Availability
		if err := rows.Scan(
			&a.ID, &a.EmployeeID, &a.Weekday, &a.From, &a.Until,
			&a.Available, &a.Kind, &a.Date, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования записи доступности: %w", err)
		}
		entries = append(entries, a)
	}
	return entries, rows.Err()
}

// Replace заменяет запись доступности на день недели (удалить старую + вставить
// новую в одной транзакции)
func (r *AvailabilityRepository) Replace(entry *models.Availability) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}

	var txErr error
	defer func() {
		if txErr != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Printf("[Availability Replace] Rollback error: %v", rbErr)
			}
		}
	}()

	if _, txErr = tx.Exec(
		`DELETE FROM availability WHERE employee_id = ? AND weekday = ? AND kind = ?`,
		entry.EmployeeID, entry.Weekday, entry.Kind,
	); txErr != nil {
		return fmt.Errorf("ошибка замены записи доступности: %w", txErr)
	}

	result, errExec := tx.Exec(
		`INSERT INTO availability (employee_id, weekday, from_time, until_time, available, kind, date)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.EmployeeID, entry.Weekday, entry.From, entry.Until, entry.Available, entry.Kind, entry.Date,
	)
	if errExec != nil {
		txErr = fmt.Errorf("ошибка сохранения записи доступности: %w", errExec)
		return txErr
	}

	if txErr = tx.Commit(); txErr != nil {
		return fmt.Errorf("ошибка коммита записи доступности: %w", txErr)
	}

	if id, err := result.LastInsertId(); err == nil {
		entry.ID = int(id)
	}
	return nil
}
