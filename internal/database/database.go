package database

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql" // Драйвер MySQL

	"shift-planner/internal/config"
)

// NewConnection создает и возвращает новое подключение к базе данных
func NewConnection(cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("mysql", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия соединения с БД: %w", err)
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ошибка проверки соединения с БД: %w", err)
	}

	log.Println("[Database] Connected")

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

// Migrate создает таблицы, если их еще нет
func Migrate(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS employees (
			id INT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(200) NOT NULL,
			email VARCHAR(200) NOT NULL UNIQUE,
			password_hash VARCHAR(200) NOT NULL,
			role VARCHAR(20) NOT NULL DEFAULT 'staff',
			department VARCHAR(100) NOT NULL DEFAULT '',
			phone VARCHAR(50) NOT NULL DEFAULT '',
			hired_on VARCHAR(10) NOT NULL DEFAULT '',
			contract_hours DOUBLE NOT NULL DEFAULT 0,
			hourly_wage DOUBLE NOT NULL DEFAULT 0,
			vacation_balance DOUBLE NOT NULL DEFAULT 25,
			active TINYINT(1) NOT NULL DEFAULT 1,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS shifts (
			id INT AUTO_INCREMENT PRIMARY KEY,
			employee_id INT NOT NULL,
			date VARCHAR(10) NOT NULL,
			start_time VARCHAR(5) NOT NULL,
			end_time VARCHAR(5) NOT NULL,
			break_min INT NOT NULL DEFAULT 0,
			department VARCHAR(100) NOT NULL DEFAULT '',
			status VARCHAR(20) NOT NULL DEFAULT 'draft',
			notes TEXT,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			INDEX idx_shifts_date (date),
			INDEX idx_shifts_employee (employee_id),
			FOREIGN KEY (employee_id) REFERENCES employees(id)
		)`,
		`CREATE TABLE IF NOT EXISTS time_entries (
			id INT AUTO_INCREMENT PRIMARY KEY,
			employee_id INT NOT NULL,
			shift_id INT NULL,
			date VARCHAR(10) NOT NULL,
			clock_in VARCHAR(5) NOT NULL DEFAULT '',
			clock_out VARCHAR(5) NOT NULL DEFAULT '',
			break_min INT NOT NULL DEFAULT 0,
			approved TINYINT(1) NOT NULL DEFAULT 0,
			notes TEXT,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			INDEX idx_time_entries_employee (employee_id),
			FOREIGN KEY (employee_id) REFERENCES employees(id),
			FOREIGN KEY (shift_id) REFERENCES shifts(id)
		)`,
		`CREATE TABLE IF NOT EXISTS leave_requests (
			id INT AUTO_INCREMENT PRIMARY KEY,
			employee_id INT NOT NULL,
			start_date VARCHAR(10) NOT NULL,
			end_date VARCHAR(10) NOT NULL,
			type VARCHAR(20) NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			day_count DOUBLE NOT NULL DEFAULT 0,
			note TEXT,
			reviewer_id INT NULL,
			review_note TEXT,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			INDEX idx_leave_employee (employee_id),
			FOREIGN KEY (employee_id) REFERENCES employees(id),
			FOREIGN KEY (reviewer_id) REFERENCES employees(id)
		)`,
		`CREATE TABLE IF NOT EXISTS availability (
			id INT AUTO_INCREMENT PRIMARY KEY,
			employee_id INT NOT NULL,
			weekday INT NOT NULL,
			from_time VARCHAR(5) NOT NULL DEFAULT '',
			until_time VARCHAR(5) NOT NULL DEFAULT '',
			available TINYINT(1) NOT NULL DEFAULT 1,
			kind VARCHAR(20) NOT NULL DEFAULT 'recurring',
			date VARCHAR(10) NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (employee_id) REFERENCES employees(id)
		)`,
		`CREATE TABLE IF NOT EXISTS shift_swaps (
			id INT AUTO_INCREMENT PRIMARY KEY,
			requester_id INT NOT NULL,
			recipient_id INT NOT NULL,
			requester_shift_id INT NOT NULL,
			recipient_shift_id INT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'sent',
			note TEXT,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			FOREIGN KEY (requester_id) REFERENCES employees(id),
			FOREIGN KEY (recipient_id) REFERENCES employees(id),
			FOREIGN KEY (requester_shift_id) REFERENCES shifts(id),
			FOREIGN KEY (recipient_shift_id) REFERENCES shifts(id)
		)`,
		`CREATE TABLE IF NOT EXISTS notifications (
			id INT AUTO_INCREMENT PRIMARY KEY,
			recipient_id INT NOT NULL,
			type VARCHAR(50) NOT NULL,
			title VARCHAR(200) NOT NULL,
			body TEXT,
			link VARCHAR(200) NOT NULL DEFAULT '',
			read_flag TINYINT(1) NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			INDEX idx_notifications_recipient (recipient_id),
			FOREIGN KEY (recipient_id) REFERENCES employees(id)
		)`,
		`CREATE TABLE IF NOT EXISTS invitations (
			id INT AUTO_INCREMENT PRIMARY KEY,
			email VARCHAR(200) NOT NULL,
			name VARCHAR(200) NOT NULL,
			token VARCHAR(64) NOT NULL UNIQUE,
			role VARCHAR(20) NOT NULL DEFAULT 'staff',
			department VARCHAR(100) NOT NULL DEFAULT '',
			used TINYINT(1) NOT NULL DEFAULT 0,
			expires_at TIMESTAMP NOT NULL,
			created_by INT NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (created_by) REFERENCES employees(id)
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("ошибка миграции схемы: %w", err)
		}
	}

	return nil
}
