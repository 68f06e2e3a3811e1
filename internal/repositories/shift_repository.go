package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"shift-planner/internal/models"
)

// ErrShiftNotFound возвращается, когда смена не найдена в БД
var ErrShiftNotFound = errors.New("смена не найдена")

// ShiftFilter - параметры выборки смен
type ShiftFilter struct {
	From       string // включительно, YYYY-MM-DD
	To         string // включительно
	EmployeeID *int

	// VisibleFor ограничивает выборку для рядового сотрудника:
	// опубликованные смены плюс его собственные в любом статусе.
	VisibleFor *int
}

// ShiftRepositoryInterface определяет методы для работы со сменами
type ShiftRepositoryInterface interface {
	GetByID(id int) (*models.Shift, error)
	List(filter ShiftFilter) ([]models.Shift, error)
	Create(shift *models.Shift) error
	Update(shift *models.Shift) error
	Delete(id int) error
	PublishRange(from, to string) ([]int, error)
	CountPublishedOn(date string) (int, int, error)
	SumPublishedMinutes(from, to string) (float64, error)
	HoursReport(from, to string) ([]models.HoursReportRow, error)
	ListForEmployee(employeeID int, from, to string, limit int) ([]models.Shift, error)
}

// ShiftRepository предоставляет методы для работы со сменами в БД
type ShiftRepository struct {
	db *sql.DB
}

// NewShiftRepository создает новый экземпляр ShiftRepository
func NewShiftRepository(db *sql.DB) *ShiftRepository {
	return &ShiftRepository{db: db}
}

const shiftColumns = `s.id, s.employee_id, u.name, s.date, s.start_time, s.end_time,
	s.break_min, s.department, s.status, s.notes, s.created_at, s.updated_at`

func scanShift(row interface{ Scan(...interface{}) error }) (*models.Shift, error) {
	s := &models.Shift{}
	var notes sql.NullString
	err := row.Scan(
		&s.ID, &s.EmployeeID, &s.EmployeeName, &s.Date, &s.StartTime, &s.EndTime,
		&s.BreakMin, &s.Department, &s.Status, &notes, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.Notes = notes.String
	return s, nil
}

// GetByID находит смену по ID
func (r *ShiftRepository) GetByID(id int) (*models.Shift, error) {
	query := `SELECT ` + shiftColumns + ` FROM shifts s JOIN employees u ON s.employee_id = u.id WHERE s.id = ?`

	shift, err := scanShift(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrShiftNotFound
		}
		return nil, fmt.Errorf("ошибка получения смены из БД: %w", err)
	}
	return shift, nil
}

// List возвращает смены по фильтру
func (r *ShiftRepository) List(filter ShiftFilter) ([]models.Shift, error) {
	query := `SELECT ` + shiftColumns + ` FROM shifts s JOIN employees u ON s.employee_id = u.id WHERE 1=1`
	var args []interface{}

	if filter.From != "" {
		query += ` AND s.date >= ?`
		args = append(args, filter.From)
	}
	if filter.To != "" {
		query += ` AND s.date <= ?`
		args = append(args, filter.To)
	}
	if filter.EmployeeID != nil {
		query += ` AND s.employee_id = ?`
		args = append(args, *filter.EmployeeID)
	}
	if filter.VisibleFor != nil {
		query += ` AND (s.status = ? OR s.employee_id = ?)`
		args = append(args, models.ShiftPublished, *filter.VisibleFor)
	}

	query += ` ORDER BY s.date, s.start_time`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка смен: %w", err)
	}
	defer rows.Close()

	var shifts []models.Shift
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования смены: %w", err)
		}
		shifts = append(shifts, *s)
	}
	return shifts, rows.Err()
}

// Create создает новую смену
func (r *ShiftRepository) Create(shift *models.Shift) error {
	if shift.Status == "" {
		shift.Status = models.ShiftDraft
	}
	query := `
		INSERT INTO shifts (employee_id, date, start_time, end_time, break_min, department, status, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.Exec(query,
		shift.EmployeeID, shift.Date, shift.StartTime, shift.EndTime,
		shift.BreakMin, shift.Department, shift.Status, shift.Notes,
	)
	if err != nil {
		return fmt.Errorf("ошибка создания смены: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("ошибка получения ID созданной смены: %w", err)
	}
	shift.ID = int(id)
	return nil
}

// Update обновляет смену целиком
func (r *ShiftRepository) Update(shift *models.Shift) error {
	query := `
		UPDATE shifts SET employee_id = ?, date = ?, start_time = ?, end_time = ?,
			break_min = ?, department = ?, status = ?, notes = ?
		WHERE id = ?`

	result, err := r.db.Exec(query,
		shift.EmployeeID, shift.Date, shift.StartTime, shift.EndTime,
		shift.BreakMin, shift.Department, shift.Status, shift.Notes, shift.ID,
	)
	if err != nil {
		return fmt.Errorf("ошибка обновления смены %d: %w", shift.ID, err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		// Либо смены нет, либо данные не изменились; различаем отдельным запросом
		var exists int
		if errCheck := r.db.QueryRow(`SELECT 1 FROM shifts WHERE id = ?`, shift.ID).Scan(&exists); errors.Is(errCheck, sql.ErrNoRows) {
			return ErrShiftNotFound
		}
	}
	return nil
}

// Delete удаляет смену
func (r *ShiftRepository) Delete(id int) error {
	result, err := r.db.Exec(`DELETE FROM shifts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления смены %d: %w", id, err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrShiftNotFound
	}
	return nil
}

// PublishRange переводит черновики диапазона в опубликованные и возвращает
// ID сотрудников, у которых есть смены в этом диапазоне (для уведомлений)
func (r *ShiftRepository) PublishRange(from, to string) ([]int, error) {
	query := `UPDATE shifts SET status = ? WHERE date >= ? AND date <= ? AND status = ?`
	if _, err := r.db.Exec(query, models.ShiftPublished, from, to, models.ShiftDraft); err != nil {
		return nil, fmt.Errorf("ошибка публикации расписания: %w", err)
	}

	rows, err := r.db.Query(`SELECT DISTINCT employee_id FROM shifts WHERE date >= ? AND date <= ?`, from, to)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки сотрудников опубликованного расписания: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("ошибка сканирования ID сотрудника: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// CountPublishedOn возвращает число опубликованных смен и число занятых
// сотрудников на указанную дату
func (r *ShiftRepository) CountPublishedOn(date string) (int, int, error) {
	var shifts, employees int
	err := r.db.QueryRow(
		`SELECT COUNT(*), COUNT(DISTINCT employee_id) FROM shifts WHERE date = ? AND status = ?`,
		date, models.ShiftPublished,
	).Scan(&shifts, &employees)
	if err != nil {
		return 0, 0, fmt.Errorf("ошибка подсчета смен на дату %s: %w", date, err)
	}
	return shifts, employees, nil
}

// SumPublishedMinutes суммирует чистые минуты (без перерывов) опубликованных
// смен диапазона. Время хранится строками HH:MM, считаем прямо в SQL.
func (r *ShiftRepository) SumPublishedMinutes(from, to string) (float64, error) {
	query := `
		SELECT COALESCE(SUM(
			(CAST(SUBSTRING(end_time, 1, 2) AS SIGNED) * 60 + CAST(SUBSTRING(end_time, 4, 2) AS SIGNED)) -
			(CAST(SUBSTRING(start_time, 1, 2) AS SIGNED) * 60 + CAST(SUBSTRING(start_time, 4, 2) AS SIGNED)) -
			break_min
		), 0)
		FROM shifts WHERE date >= ? AND date <= ? AND status = ?`

	var minutes float64
	if err := r.db.QueryRow(query, from, to, models.ShiftPublished).Scan(&minutes); err != nil {
		return 0, fmt.Errorf("ошибка подсчета часов за период: %w", err)
	}
	return minutes, nil
}

// HoursReport агрегирует опубликованные смены периода по активным сотрудникам:
// число смен и чистые часы (за вычетом перерывов)
func (r *ShiftRepository) HoursReport(from, to string) ([]models.HoursReportRow, error) {
	query := `
		SELECT u.id, u.name, u.department,
			COUNT(s.id),
			COALESCE(SUM(
				(CAST(SUBSTRING(s.end_time, 1, 2) AS SIGNED) * 60 + CAST(SUBSTRING(s.end_time, 4, 2) AS SIGNED)) -
				(CAST(SUBSTRING(s.start_time, 1, 2) AS SIGNED) * 60 + CAST(SUBSTRING(s.start_time, 4, 2) AS SIGNED)) -
				s.break_min
			), 0) / 60.0
		FROM employees u
		LEFT JOIN shifts s ON s.employee_id = u.id
			AND s.date >= ? AND s.date <= ? AND s.status = ?
		WHERE u.active = 1
		GROUP BY u.id, u.name, u.department
		ORDER BY u.name`

	rows, err := r.db.Query(query, from, to, models.ShiftPublished)
	if err != nil {
		return nil, fmt.Errorf("ошибка построения отчета по часам: %w", err)
	}
	defer rows.Close()

	var report []models.HoursReportRow
	for rows.Next() {
		var row models.HoursReportRow
		if err := rows.Scan(&row.EmployeeID, &row.Name, &row.Department, &row.ShiftCount, &row.TotalHours); err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки отчета по часам: %w", err)
		}
		report = append(report, row)
	}
	return report, rows.Err()
}

// ListForEmployee возвращает смены сотрудника в диапазоне дат.
// Пустой to означает "без верхней границы", limit <= 0 - без ограничения.
func (r *ShiftRepository) ListForEmployee(employeeID int, from, to string, limit int) ([]models.Shift, error) {
	query := `SELECT ` + shiftColumns + ` FROM shifts s JOIN employees u ON s.employee_id = u.id
		WHERE s.employee_id = ? AND s.date >= ?`
	args := []interface{}{employeeID, from}

	if to != "" {
		query += ` AND s.date <= ?`
		args = append(args, to)
	}
	query += ` ORDER BY s.date, s.start_time`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения смен сотрудника %d: %w", employeeID, err)
	}
	defer rows.Close()

	var shifts []models.Shift
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования смены: %w", err)
		}
		shifts = append(shifts, *s)
	}
	return shifts, rows.Err()
}
