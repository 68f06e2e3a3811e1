package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	"shift-planner/internal/models"
)

// Ошибки жизненного цикла заявок на отпуск
var (
	ErrLeaveNotFound   = errors.New("заявка на отпуск не найдена")
	ErrLeaveNotPending = errors.New("заявка уже обработана")
)

// LeaveFilter - параметры выборки заявок
type LeaveFilter struct {
	EmployeeID *int
	Status     string
}

// LeaveRepositoryInterface определяет методы для работы с заявками на отпуск
type LeaveRepositoryInterface interface {
	GetByID(id int) (*models.LeaveRequest, error)
	List(filter LeaveFilter) ([]models.LeaveRequest, error)
	Create(request *models.LeaveRequest) error
	ProcessDecision(requestID, reviewerID int, decision, comment string) (*models.LeaveRequest, error)
	CancelPending(requestID int) (bool, error)
	CountPending() (int, error)
	LeaveReport(year int) ([]models.LeaveReportRow, error)
}

// LeaveRepository предоставляет методы для работы с заявками на отпуск в БД
type LeaveRepository struct {
	db *sql.DB
}

// NewLeaveRepository создает новый экземпляр LeaveRepository
func NewLeaveRepository(db *sql.DB) *LeaveRepository {
	return &LeaveRepository{db: db}
}

const leaveColumns = `l.id, l.employee_id, u.name, l.start_date, l.end_date, l.type, l.status,
	l.day_count, l.note, l.reviewer_id, l.review_note, l.created_at, l.updated_at`

func scanLeave(row interface{ Scan(...interface{}) error }) (*models.LeaveRequest, error) {
	l := &models.LeaveRequest{}
	var note, reviewNote sql.NullString
	err := row.Scan(
		&l.ID, &l.EmployeeID, &l.EmployeeName, &l.StartDate, &l.EndDate, &l.Type, &l.Status,
		&l.DayCount, &note, &l.ReviewerID, &reviewNote, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	l.Note = note.String
	l.ReviewNote = reviewNote.String
	return l, nil
}

// GetByID находит заявку по ID
func (r *LeaveRepository) GetByID(id int) (*models.LeaveRequest, error) {
	query := `SELECT ` + leaveColumns + ` FROM leave_requests l JOIN employees u ON l.employee_id = u.id WHERE l.id = ?`

	request, err := scanLeave(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLeaveNotFound
		}
		return nil, fmt.Errorf("ошибка получения заявки из БД: %w", err)
	}
	return request, nil
}

// List возвращает заявки по фильтру, новые первыми
func (r *LeaveRepository) List(filter LeaveFilter) ([]models.LeaveRequest, error) {
	query := `SELECT ` + leaveColumns + ` FROM leave_requests l JOIN employees u ON l.employee_id = u.id WHERE 1=1`
	var args []interface{}

	if filter.EmployeeID != nil {
		query += ` AND l.employee_id = ?`
		args = append(args, *filter.EmployeeID)
	}
	if filter.Status != "" {
		query += ` AND l.status = ?`
		args = append(args, filter.Status)
	}
	query += ` ORDER BY l.created_at DESC`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка заявок: %w", err)
	}
	defer rows.Close()

	var requests []models.LeaveRequest
	for rows.Next() {
		l, err := scanLeave(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования заявки: %w", err)
		}
		requests = append(requests, *l)
	}
	return requests, rows.Err()
}

// Create сохраняет новую заявку в статусе pending
func (r *LeaveRepository) Create(request *models.LeaveRequest) error {
	if request.Status == "" {
		request.Status = models.LeavePending
	}
	query := `
		INSERT INTO leave_requests (employee_id, start_date, end_date, type, status, day_count, note)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.Exec(query,
		request.EmployeeID, request.StartDate, request.EndDate, request.Type,
		request.Status, request.DayCount, request.Note,
	)
	if err != nil {
		return fmt.Errorf("ошибка сохранения заявки: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("ошибка получения ID созданной заявки: %w", err)
	}
	request.ID = int(id)
	return nil
}

// ProcessDecision применяет решение менеджера в одной транзакции.
// Переход разрешен только из pending; проверка и обновление выполняются как
// compare-and-set, поэтому из двух гонящихся решений выигрывает ровно одно,
// второе получает ErrLeaveNotPending. При утверждении заявки типа vacation
// в той же транзакции списывается баланс сотрудника - перерасход баланса
// двойным утверждением исключен.
func (r *LeaveRepository) ProcessDecision(requestID, reviewerID int, decision, comment string) (*models.LeaveRequest, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("ошибка начала транзакции: %w", err)
	}

	var txErr error
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if txErr != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Printf("[ProcessDecision] Rollback error: %v", rbErr)
			}
		}
	}()

	// Блокируем строку заявки на время транзакции
	request, errScan := scanLeave(tx.QueryRow(
		`SELECT `+leaveColumns+` FROM leave_requests l JOIN employees u ON l.employee_id = u.id
		 WHERE l.id = ? FOR UPDATE`, requestID))
	if errScan != nil {
		if errors.Is(errScan, sql.ErrNoRows) {
			txErr = ErrLeaveNotFound
		} else {
			txErr = fmt.Errorf("ошибка получения заявки %d: %w", requestID, errScan)
		}
		return nil, txErr
	}

	if request.Status != models.LeavePending {
		txErr = ErrLeaveNotPending
		return nil, txErr
	}

	result, errExec := tx.Exec(
		`UPDATE leave_requests SET status = ?, reviewer_id = ?, review_note = ? WHERE id = ? AND status = ?`,
		decision, reviewerID, comment, requestID, models.LeavePending,
	)
	if errExec != nil {
		txErr = fmt.Errorf("ошибка обновления статуса заявки %d: %w", requestID, errExec)
		return nil, txErr
	}
	if affected, errAff := result.RowsAffected(); errAff == nil && affected == 0 {
		txErr = ErrLeaveNotPending
		return nil, txErr
	}

	// Списание баланса: только при утверждении отпуска типа vacation.
	// Повторная валидация против текущего баланса не выполняется - заявка
	// была проверена при подаче, фиксированный day_count просто списывается.
	if decision == models.LeaveApproved && request.Type == models.LeaveVacation {
		if _, errExec := tx.Exec(
			`UPDATE employees SET vacation_balance = vacation_balance - ? WHERE id = ?`,
			request.DayCount, request.EmployeeID,
		); errExec != nil {
			txErr = fmt.Errorf("ошибка списания %v дней с баланса сотрудника %d: %w",
				request.DayCount, request.EmployeeID, errExec)
			return nil, txErr
		}
		log.Printf("[ProcessDecision] Debited %.1f days from employee %d (request %d)",
			request.DayCount, request.EmployeeID, requestID)
	}

	if txErr = tx.Commit(); txErr != nil {
		return nil, fmt.Errorf("ошибка коммита решения по заявке %d: %w", requestID, txErr)
	}

	request.Status = decision
	request.ReviewerID = &reviewerID
	request.ReviewNote = comment
	return request, nil
}

// CancelPending переводит заявку из pending в cancelled.
// Возвращает false, если заявка уже не в статусе pending.
func (r *LeaveRepository) CancelPending(requestID int) (bool, error) {
	result, err := r.db.Exec(
		`UPDATE leave_requests SET status = ? WHERE id = ? AND status = ?`,
		models.LeaveCancelled, requestID, models.LeavePending,
	)
	if err != nil {
		return false, fmt.Errorf("ошибка отмены заявки %d: %w", requestID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("ошибка проверки результата отмены заявки %d: %w", requestID, err)
	}
	return affected > 0, nil
}

// CountPending возвращает число заявок на рассмотрении (для дашборда)
func (r *LeaveRepository) CountPending() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM leave_requests WHERE status = ?`, models.LeavePending).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("ошибка подсчета заявок на рассмотрении: %w", err)
	}
	return count, nil
}

// LeaveReport строит годовой отчет по отпускам активных сотрудников
func (r *LeaveRepository) LeaveReport(year int) ([]models.LeaveReportRow, error) {
	startDate := fmt.Sprintf("%d-01-01", year)
	endDate := fmt.Sprintf("%d-12-31", year)

	query := `
		SELECT u.id, u.name, u.vacation_balance,
			COALESCE(SUM(CASE WHEN l.status = 'approved' THEN l.day_count ELSE 0 END), 0) AS approved_days,
			COALESCE(SUM(CASE WHEN l.status = 'pending' THEN l.day_count ELSE 0 END), 0) AS pending_days
		FROM employees u
		LEFT JOIN leave_requests l ON u.id = l.employee_id
			AND l.start_date >= ? AND l.end_date <= ?
			AND l.type = ?
		WHERE u.active = 1
		GROUP BY u.id, u.name, u.vacation_balance
		ORDER BY u.name`

	rows, err := r.db.Query(query, startDate, endDate, models.LeaveVacation)
	if err != nil {
		return nil, fmt.Errorf("ошибка построения отчета по отпускам: %w", err)
	}
	defer rows.Close()

	var report []models.LeaveReportRow
	for rows.Next() {
		var row models.LeaveReportRow
		if err := rows.Scan(&row.EmployeeID, &row.Name, &row.Balance, &row.Approved, &row.Pending); err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки отчета: %w", err)
		}
		report = append(report, row)
	}
	return report, rows.Err()
}
