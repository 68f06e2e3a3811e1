package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"shift-planner/internal/models"
)

// ErrEmployeeNotFound возвращается, когда сотрудник не найден в БД
var ErrEmployeeNotFound = errors.New("сотрудник не найден")

// EmployeeRepositoryInterface определяет методы для работы с данными сотрудников
type EmployeeRepositoryInterface interface {
	FindByID(id int) (*models.Employee, error)
	FindByEmail(email string) (*models.Employee, error)
	GetAll() ([]models.Employee, error)
	GetActiveDirectory() ([]models.EmployeeDirectoryItem, error)
	GetActiveManagerIDs() ([]int, error)
	Count() (int, error)
	Create(employee *models.Employee) error
	Update(employee *models.Employee) error
	UpdateProfile(id int, name, phone string) error
	UpdatePassword(id int, passwordHash string) error
	Deactivate(id int) error
}

// EmployeeRepository предоставляет методы для работы с сотрудниками в БД
type EmployeeRepository struct {
	db *sql.DB
}

// NewEmployeeRepository создает новый экземпляр EmployeeRepository
func NewEmployeeRepository(db *sql.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

const employeeColumns = `id, name, email, password_hash, role, department, phone, hired_on,
	contract_hours, hourly_wage, vacation_balance, active, created_at, updated_at`

func scanEmployee(row interface{ Scan(...interface{}) error }) (*models.Employee, error) {
	e := &models.Employee{}
	err := row.Scan(
		&e.ID, &e.Name, &e.Email, &e.Password, &e.Role, &e.Department, &e.Phone, &e.HiredOn,
		&e.ContractHours, &e.HourlyWage, &e.VacationBalance, &e.Active, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// FindByID находит сотрудника по ID
func (r *EmployeeRepository) FindByID(id int) (*models.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = ?`

	employee, err := scanEmployee(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("ошибка получения сотрудника из БД: %w", err)
	}
	return employee, nil
}

// FindByEmail находит сотрудника по email
func (r *EmployeeRepository) FindByEmail(email string) (*models.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE email = ?`

	employee, err := scanEmployee(r.db.QueryRow(query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("ошибка поиска сотрудника по email: %w", err)
	}
	return employee, nil
}

// GetAll возвращает всех сотрудников, включая деактивированных
func (r *EmployeeRepository) GetAll() ([]models.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees ORDER BY name`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка сотрудников: %w", err)
	}
	defer rows.Close()

	var employees []models.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования сотрудника: %w", err)
		}
		employees = append(employees, *e)
	}
	return employees, rows.Err()
}

// GetActiveDirectory возвращает справочник активных сотрудников (без зарплатных полей)
func (r *EmployeeRepository) GetActiveDirectory() ([]models.EmployeeDirectoryItem, error) {
	query := `SELECT id, name, email, department, role FROM employees WHERE active = 1 ORDER BY name`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения справочника сотрудников: %w", err)
	}
	defer rows.Close()

	var items []models.EmployeeDirectoryItem
	for rows.Next() {
		var item models.EmployeeDirectoryItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Email, &item.Department, &item.Role); err != nil {
			return nil, fmt.Errorf("ошибка сканирования справочника: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// GetActiveManagerIDs возвращает ID всех активных менеджеров (для уведомлений)
func (r *EmployeeRepository) GetActiveManagerIDs() ([]int, error) {
	query := `SELECT id FROM employees WHERE role = ? AND active = 1`

	rows, err := r.db.Query(query, models.RoleManager)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка менеджеров: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("ошибка сканирования ID менеджера: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Count возвращает общее число учетных записей (для bootstrap-проверки)
func (r *EmployeeRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM employees`).Scan(&count); err != nil {
		return 0, fmt.Errorf("ошибка подсчета сотрудников: %w", err)
	}
	return count, nil
}

// Create создает нового сотрудника. Пароль хешируется здесь.
func (r *EmployeeRepository) Create(employee *models.Employee) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(employee.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("ошибка хеширования пароля: %w", err)
	}

	query := `
		INSERT INTO employees (name, email, password_hash, role, department, phone, hired_on,
			contract_hours, hourly_wage, vacation_balance, active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1)`

	result, err := r.db.Exec(query,
		employee.Name, employee.Email, string(hash), employee.Role, employee.Department,
		employee.Phone, employee.HiredOn, employee.ContractHours, employee.HourlyWage,
		employee.VacationBalance,
	)
	if err != nil {
		return fmt.Errorf("ошибка создания сотрудника: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("ошибка получения ID созданного сотрудника: %w", err)
	}
	employee.ID = int(id)
	employee.Active = true
	employee.Password = ""
	return nil
}

// Update обновляет данные сотрудника. Пустой Password означает "пароль не менять".
func (r *EmployeeRepository) Update(employee *models.Employee) error {
	query := `
		UPDATE employees SET name = ?, email = ?, role = ?, department = ?, phone = ?,
			hired_on = ?, contract_hours = ?, hourly_wage = ?, vacation_balance = ?, active = ?
		WHERE id = ?`
	args := []interface{}{
		employee.Name, employee.Email, employee.Role, employee.Department, employee.Phone,
		employee.HiredOn, employee.ContractHours, employee.HourlyWage, employee.VacationBalance,
		employee.Active, employee.ID,
	}

	if employee.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(employee.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("ошибка хеширования пароля: %w", err)
		}
		query = `
			UPDATE employees SET name = ?, email = ?, password_hash = ?, role = ?, department = ?,
				phone = ?, hired_on = ?, contract_hours = ?, hourly_wage = ?, vacation_balance = ?, active = ?
			WHERE id = ?`
		args = []interface{}{
			employee.Name, employee.Email, string(hash), employee.Role, employee.Department,
			employee.Phone, employee.HiredOn, employee.ContractHours, employee.HourlyWage,
			employee.VacationBalance, employee.Active, employee.ID,
		}
	}

	if _, err := r.db.Exec(query, args...); err != nil {
		return fmt.Errorf("ошибка обновления сотрудника %d: %w", employee.ID, err)
	}
	employee.Password = ""
	return nil
}

// UpdateProfile обновляет поля, доступные самому сотруднику
func (r *EmployeeRepository) UpdateProfile(id int, name, phone string) error {
	query := `UPDATE employees SET name = ?, phone = ? WHERE id = ?`
	if _, err := r.db.Exec(query, name, phone, id); err != nil {
		return fmt.Errorf("ошибка обновления профиля сотрудника %d: %w", id, err)
	}
	return nil
}

// UpdatePassword сохраняет новый хеш пароля
func (r *EmployeeRepository) UpdatePassword(id int, passwordHash string) error {
	query := `UPDATE employees SET password_hash = ? WHERE id = ?`
	if _, err := r.db.Exec(query, passwordHash, id); err != nil {
		return fmt.Errorf("ошибка обновления пароля сотрудника %d: %w", id, err)
	}
	return nil
}

// Deactivate выполняет мягкое удаление: учетная запись остается для истории
func (r *EmployeeRepository) Deactivate(id int) error {
	query := `UPDATE employees SET active = 0 WHERE id = ?`
	if _, err := r.db.Exec(query, id); err != nil {
		return fmt.Errorf("ошибка деактивации сотрудника %d: %w", id, err)
	}
	return nil
}
