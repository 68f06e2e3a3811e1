package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"shift-planner/internal/models"
)

// ErrTimeEntryNotFound возвращается, когда запись табеля не найдена
var ErrTimeEntryNotFound = errors.New("запись учета времени не найдена")

// TimeEntryFilter - параметры выборки записей табеля
type TimeEntryFilter struct {
	From       string
	To         string
	EmployeeID *int
}

// TimeRepositoryInterface определяет методы для работы с учетом рабочего времени
type TimeRepositoryInterface interface {
	GetByID(id int) (*models.TimeEntry, error)
	List(filter TimeEntryFilter) ([]models.TimeEntry, error)
	GetOpenEntry(employeeID int, date string) (*models.TimeEntry, error)
	FindShiftID(employeeID int, date string) (*int, error)
	Create(entry *models.TimeEntry) error
	SetClockOut(id int, clockOut string) error
	Update(entry *models.TimeEntry) error
	Delete(id int) error
}

// TimeRepository предоставляет методы для работы с табелем в БД
type TimeRepository struct {
	db *sql.DB
}

// NewTimeRepository создает новый экземпляр TimeRepository
func NewTimeRepository(db *sql.DB) *TimeRepository {
	return &TimeRepository{db: db}
}

const timeEntryColumns = `t.id, t.employee_id, u.name, t.shift_id, t.date, t.clock_in, t.clock_out,
	t.break_min, t.approved, t.notes, COALESCE(s.start_time, ''), COALESCE(s.end_time, ''), t.created_at`

func scanTimeEntry(row interface{ Scan(...interface{}) error }) (*models.TimeEntry, error) {
	e := &models.TimeEntry{}
	var notes sql.NullString
	err := row.Scan(
		&e.ID, &e.EmployeeID, &e.EmployeeName, &e.ShiftID, &e.Date, &e.ClockIn, &e.ClockOut,
		&e.BreakMin, &e.Approved, &notes, &e.PlannedStart, &e.PlannedEnd, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.Notes = notes.String
	return e, nil
}

// GetByID находит запись табеля по ID
func (r *TimeRepository) GetByID(id int) (*models.TimeEntry, error) {
	query := `SELECT ` + timeEntryColumns + ` FROM time_entries t
		JOIN employees u ON t.employee_id = u.id
		LEFT JOIN shifts s ON t.shift_id = s.id
		WHERE t.id = ?`

	entry, err := scanTimeEntry(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTimeEntryNotFound
		}
		return nil, fmt.Errorf("ошибка получения записи табеля из БД: %w", err)
	}
	return entry, nil
}

// List возвращает записи табеля по фильтру, свежие первыми
func (r *TimeRepository) List(filter TimeEntryFilter) ([]models.TimeEntry, error) {
	query := `SELECT ` + timeEntryColumns + ` FROM time_entries t
		JOIN employees u ON t.employee_id = u.id
		LEFT JOIN shifts s ON t.shift_id = s.id
		WHERE 1=1`
	var args []interface{}

	if filter.EmployeeID != nil {
		query += ` AND t.employee_id = ?`
		args = append(args, *filter.EmployeeID)
	}
	if filter.From != "" {
		query += ` AND t.date >= ?`
		args = append(args, filter.From)
	}
	if filter.To != "" {
		query += ` AND t.date <= ?`
		args = append(args, filter.To)
	}
	query += ` ORDER BY t.date DESC, t.clock_in DESC`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения записей табеля: %w", err)
	}
	defer rows.Close()

	var entries []models.TimeEntry
	for rows.Next() {
		e, err := scanTimeEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования записи табеля: %w", err)
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// GetOpenEntry находит незакрытую запись сотрудника на дату (чек-ин без чек-аута)
func (r *TimeRepository) GetOpenEntry(employeeID int, date string) (*models.TimeEntry, error) {
	query := `SELECT ` + timeEntryColumns + ` FROM time_entries t
		JOIN employees u ON t.employee_id = u.id
		LEFT JOIN shifts s ON t.shift_id = s.id
		WHERE t.employee_id = ? AND t.date = ? AND t.clock_out = ''`

	entry, err := scanTimeEntry(r.db.QueryRow(query, employeeID, date))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTimeEntryNotFound
		}
		return nil, fmt.Errorf("ошибка поиска открытой записи табеля: %w", err)
	}
	return entry, nil
}

// FindShiftID находит смену сотрудника на дату для привязки записи табеля
func (r *TimeRepository) FindShiftID(employeeID int, date string) (*int, error) {
	var id int
	err := r.db.QueryRow(
		`SELECT id FROM shifts WHERE employee_id = ? AND date = ? LIMIT 1`,
		employeeID, date,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка поиска смены для записи табеля: %w", err)
	}
	return &id, nil
}

// Create добавляет запись табеля
func (r *TimeRepository) Create(entry *models.TimeEntry) error {
	query := `
		INSERT INTO time_entries (employee_id, shift_id, date, clock_in, clock_out, break_min, approved, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.Exec(query,
		entry.EmployeeID, entry.ShiftID, entry.Date, entry.ClockIn, entry.ClockOut,
		entry.BreakMin, entry.Approved, entry.Notes,
	)
	if err != nil {
		return fmt.Errorf("ошибка создания записи табеля: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("ошибка получения ID созданной записи табеля: %w", err)
	}
	entry.ID = int(id)
	return nil
}

// SetClockOut закрывает запись чек-аутом
func (r *TimeRepository) SetClockOut(id int, clockOut string) error {
	if _, err := r.db.Exec(`UPDATE time_entries SET clock_out = ? WHERE id = ?`, clockOut, id); err != nil {
		return fmt.Errorf("ошибка чек-аута записи %d: %w", id, err)
	}
	return nil
}

// Update обновляет редактируемые поля записи табеля
func (r *TimeRepository) Update(entry *models.TimeEntry) error {
	query := `
		UPDATE time_entries SET clock_in = ?, clock_out = ?, break_min = ?, approved = ?, notes = ?
		WHERE id = ?`

	if _, err := r.db.Exec(query,
		entry.ClockIn, entry.ClockOut, entry.BreakMin, entry.Approved, entry.Notes, entry.ID,
	); err != nil {
		return fmt.Errorf("ошибка обновления записи табеля %d: %w", entry.ID, err)
	}
	return nil
}

// Delete удаляет запись табеля
func (r *TimeRepository) Delete(id int) error {
	result, err := r.db.Exec(`DELETE FROM time_entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления записи табеля %d: %w", id, err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrTimeEntryNotFound
	}
	return nil
}
