package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	"shift-planner/internal/models"
)

// Ошибки жизненного цикла обмена сменами
var (
	ErrSwapNotFound     = errors.New("запрос на обмен не найден")
	ErrSwapInvalidState = errors.New("запрос на обмен уже обработан")
)

// SwapRepositoryInterface определяет методы для работы с обменами смен
type SwapRepositoryInterface interface {
	GetByID(id int) (*models.ShiftSwap, error)
	List(participantID *int) ([]models.ShiftSwap, error)
	Create(swap *models.ShiftSwap) error
	UpdateStatusFrom(id int, from, to string) (bool, error)
	ApproveAndReassign(id int) (*models.ShiftSwap, error)
}

// SwapRepository предоставляет методы для работы с обменами смен в БД
type SwapRepository struct {
	db *sql.DB
}

// NewSwapRepository создает новый экземпляр SwapRepository
func NewSwapRepository(db *sql.DB) *SwapRepository {
	return &SwapRepository{db: db}
}

const swapColumns = `sw.id, sw.requester_id, a.name, sw.recipient_id, o.name,
	sw.requester_shift_id, sw.recipient_shift_id, sw.status, sw.note, sw.created_at, sw.updated_at`

func scanSwap(row interface{ Scan(...interface{}) error }) (*models.ShiftSwap, error) {
	s := &models.ShiftSwap{}
	var note sql.NullString
	err := row.Scan(
		&s.ID, &s.RequesterID, &s.RequesterName, &s.RecipientID, &s.RecipientName,
		&s.RequesterShiftID, &s.RecipientShiftID, &s.Status, &note, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.Note = note.String
	return s, nil
}

// GetByID находит запрос на обмен по ID
func (r *SwapRepository) GetByID(id int) (*models.ShiftSwap, error) {
	query := `SELECT ` + swapColumns + ` FROM shift_swaps sw
		JOIN employees a ON sw.requester_id = a.id
		JOIN employees o ON sw.recipient_id = o.id
		WHERE sw.id = ?`

	swap, err := scanSwap(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSwapNotFound
		}
		return nil, fmt.Errorf("ошибка получения запроса на обмен из БД: %w", err)
	}
	return swap, nil
}

// List возвращает запросы на обмен, новые первыми.
// participantID != nil ограничивает выборку запросами, где пользователь
// является инициатором или получателем (для рядовых сотрудников).
func (r *SwapRepository) List(participantID *int) ([]models.ShiftSwap, error) {
	query := `SELECT ` + swapColumns + ` FROM shift_swaps sw
		JOIN employees a ON sw.requester_id = a.id
		JOIN employees o ON sw.recipient_id = o.id
		WHERE 1=1`
	var args []interface{}

	if participantID != nil {
		query += ` AND (sw.requester_id = ? OR sw.recipient_id = ?)`
		args = append(args, *participantID, *participantID)
	}
	query += ` ORDER BY sw.created_at DESC`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка обменов: %w", err)
	}
	defer rows.Close()

	var swaps []models.ShiftSwap
	for rows.Next() {
		s, err := scanSwap(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования запроса на обмен: %w", err)
		}
		swaps = append(swaps, *s)
	}
	return swaps, rows.Err()
}

// Create сохраняет новый запрос на обмен в статусе sent
func (r *SwapRepository) Create(swap *models.ShiftSwap) error {
	if swap.Status == "" {
		swap.Status = models.SwapSent
	}
	query := `
		INSERT INTO shift_swaps (requester_id, recipient_id, requester_shift_id, recipient_shift_id, status, note)
		VALUES (?, ?, ?, ?, ?, ?)`

	result, err := r.db.Exec(query,
		swap.RequesterID, swap.RecipientID, swap.RequesterShiftID, swap.RecipientShiftID,
		swap.Status, swap.Note,
	)
	if err != nil {
		return fmt.Errorf("ошибка создания запроса на обмен: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("ошибка получения ID созданного запроса: %w", err)
	}
	swap.ID = int(id)
	return nil
}

// UpdateStatusFrom выполняет compare-and-set перехода статуса.
// Возвращает false, если запрос уже не в статусе from (второй участник гонки).
func (r *SwapRepository) UpdateStatusFrom(id int, from, to string) (bool, error) {
	result, err := r.db.Exec(
		`UPDATE shift_swaps SET status = ? WHERE id = ? AND status = ?`,
		to, id, from,
	)
	if err != nil {
		return false, fmt.Errorf("ошибка перехода статуса обмена %d (%s -> %s): %w", id, from, to, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("ошибка проверки перехода статуса обмена %d: %w", id, err)
	}
	return affected > 0, nil
}

// ApproveAndReassign утверждает обмен и переписывает владельцев смен в одной
// транзакции. Переход выполняется как compare-and-set из accepted, поэтому
// повторное утверждение не приведет к повторному переназначению смен.
// Если получатель не указал встречную смену, обмен односторонний: получатель
// просто забирает смену инициатора.
func (r *SwapRepository) ApproveAndReassign(id int) (*models.ShiftSwap, error) {
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
				log.Printf("[ApproveAndReassign] Rollback error: %v", rbErr)
			}
		}
	}()

	swap, errScan := scanSwap(tx.QueryRow(
		`SELECT `+swapColumns+` FROM shift_swaps sw
		 JOIN employees a ON sw.requester_id = a.id
		 JOIN employees o ON sw.recipient_id = o.id
		 WHERE sw.id = ? FOR UPDATE`, id))
	if errScan != nil {
		if errors.Is(errScan, sql.ErrNoRows) {
			txErr = ErrSwapNotFound
		} else {
			txErr = fmt.Errorf("ошибка получения запроса на обмен %d: %w", id, errScan)
		}
		return nil, txErr
	}

	if swap.Status != models.SwapAccepted {
		txErr = ErrSwapInvalidState
		return nil, txErr
	}

	result, errExec := tx.Exec(
		`UPDATE shift_swaps SET status = ? WHERE id = ? AND status = ?`,
		models.SwapApproved, id, models.SwapAccepted,
	)
	if errExec != nil {
		txErr = fmt.Errorf("ошибка утверждения обмена %d: %w", id, errExec)
		return nil, txErr
	}
	if affected, errAff := result.RowsAffected(); errAff == nil && affected == 0 {
		txErr = ErrSwapInvalidState
		return nil, txErr
	}

	// Смена инициатора уходит получателю
	if _, errExec := tx.Exec(
		`UPDATE shifts SET employee_id = ? WHERE id = ?`,
		swap.RecipientID, swap.RequesterShiftID,
	); errExec != nil {
		txErr = fmt.Errorf("ошибка переназначения смены %d: %w", swap.RequesterShiftID, errExec)
		return nil, txErr
	}

	// Встречная смена (если была указана) уходит инициатору
	if swap.RecipientShiftID != nil {
		if _, errExec := tx.Exec(
			`UPDATE shifts SET employee_id = ? WHERE id = ?`,
			swap.RequesterID, *swap.RecipientShiftID,
		); errExec != nil {
			txErr = fmt.Errorf("ошибка переназначения встречной смены %d: %w", *swap.RecipientShiftID, errExec)
			return nil, txErr
		}
	}

	if txErr = tx.Commit(); txErr != nil {
		return nil, fmt.Errorf("ошибка коммита утверждения обмена %d: %w", id, txErr)
	}

	swap.Status = models.SwapApproved
	return swap, nil
}
