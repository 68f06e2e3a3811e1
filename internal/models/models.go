package models

import (
	"fmt"
	"time"
)

// --- Роли сотрудников ---
const (
	RoleStaff   = "staff"
	RoleManager = "manager"
)

// --- Статусы смен ---
const (
	ShiftDraft     = "draft"
	ShiftPublished = "published"
	ShiftCompleted = "completed"
)

// --- Типы отпусков/отсутствий ---
const (
	LeaveVacation = "vacation"
	LeaveCare     = "care"
	LeaveSpecial  = "special"
	LeaveUnpaid   = "unpaid"
	LeaveSick     = "sick"
)

// --- Статусы заявок на отпуск ---
const (
	LeavePending   = "pending"
	LeaveApproved  = "approved"
	LeaveRejected  = "rejected"
	LeaveCancelled = "cancelled"
)

// --- Статусы обмена сменами ---
const (
	SwapSent     = "sent"
	SwapAccepted = "accepted"
	SwapDeclined = "declined"
	SwapApproved = "approved"
	SwapRejected = "rejected"
)

// --- Типы записей доступности ---
const (
	AvailabilityRecurring = "recurring"
	AvailabilityException = "exception"
)

// DateLayout - формат дат в API и в БД (колонки типа DATE хранятся строкой)
const DateLayout = "2006-01-02"

// TimeLayout - формат времени смен (часы:минуты)
const TimeLayout = "15:04"

// ParseDate разбирает дату в формате YYYY-MM-DD
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("некорректная дата %q: %w", s, err)
	}
	return t, nil
}

// ValidLeaveType проверяет, что тип отпуска известен системе
func ValidLeaveType(t string) bool {
	switch t {
	case LeaveVacation, LeaveCare, LeaveSpecial, LeaveUnpaid, LeaveSick:
		return true
	}
	return false
}

// Employee - модель сотрудника
type Employee struct {
	ID              int     `json:"id" db:"id"`
	Name            string  `json:"name" db:"name"`
	Email           string  `json:"email" db:"email"`
	Password        string  `json:"-" db:"password_hash"`
	Role            string  `json:"role" db:"role"`
	Department      string  `json:"department" db:"department"`
	Phone           string  `json:"phone" db:"phone"`
	HiredOn         string  `json:"hired_on" db:"hired_on"`
	ContractHours   float64 `json:"contract_hours" db:"contract_hours"`
	HourlyWage      float64 `json:"hourly_wage" db:"hourly_wage"`
	VacationBalance float64 `json:"vacation_balance" db:"vacation_balance"`
	Active          bool    `json:"active" db:"active"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// EmployeeDirectoryItem - сокращенное представление сотрудника для общего справочника.
// Зарплатные и балансовые поля не выдаются рядовым сотрудникам.
type EmployeeDirectoryItem struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	Role       string `json:"role"`
}

// Shift - модель смены. Владелец (EmployeeID) изменяемый: именно это поле
// переписывает workflow обмена сменами.
type Shift struct {
	ID           int    `json:"id" db:"id"`
	EmployeeID   int    `json:"employee_id" db:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty" db:"-"`
	Date         string `json:"date" db:"date"`
	StartTime    string `json:"start_time" db:"start_time"`
	EndTime      string `json:"end_time" db:"end_time"`
	BreakMin     int    `json:"break_min" db:"break_min"`
	Department   string `json:"department" db:"department"`
	Status       string `json:"status" db:"status"`
	Notes        string `json:"notes" db:"notes"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// TimeEntry - запись учета рабочего времени (табель)
type TimeEntry struct {
	ID           int    `json:"id" db:"id"`
	EmployeeID   int    `json:"employee_id" db:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty" db:"-"`
	ShiftID      *int   `json:"shift_id" db:"shift_id"`
	Date         string `json:"date" db:"date"`
	ClockIn      string `json:"clock_in" db:"clock_in"`
	ClockOut     string `json:"clock_out" db:"clock_out"`
	BreakMin     int    `json:"break_min" db:"break_min"`
	Approved     bool   `json:"approved" db:"approved"`
	Notes        string `json:"notes" db:"notes"`

	PlannedStart string `json:"planned_start,omitempty" db:"-"`
	PlannedEnd   string `json:"planned_end,omitempty" db:"-"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// LeaveRequest - заявка на отпуск/отсутствие.
// DayCount фиксируется при создании и никогда не пересчитывается.
type LeaveRequest struct {
	ID           int     `json:"id" db:"id"`
	EmployeeID   int     `json:"employee_id" db:"employee_id"`
	EmployeeName string  `json:"employee_name,omitempty" db:"-"`
	StartDate    string  `json:"start_date" db:"start_date"`
	EndDate      string  `json:"end_date" db:"end_date"`
	Type         string  `json:"type" db:"type"`
	Status       string  `json:"status" db:"status"`
	DayCount     float64 `json:"day_count" db:"day_count"`
	Note         string  `json:"note" db:"note"`
	ReviewerID   *int    `json:"reviewer_id" db:"reviewer_id"`
	ReviewNote   string  `json:"review_note" db:"review_note"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Availability - доступность сотрудника по дням недели (0 = воскресенье)
type Availability struct {
	ID         int     `json:"id" db:"id"`
	EmployeeID int     `json:"employee_id" db:"employee_id"`
	Weekday    int     `json:"weekday" db:"weekday"`
	From       string  `json:"from" db:"from_time"`
	Until      string  `json:"until" db:"until_time"`
	Available  bool    `json:"available" db:"available"`
	Kind       string  `json:"kind" db:"kind"`
	Date       *string `json:"date" db:"date"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ShiftSwap - запрос на обмен сменами между двумя сотрудниками.
// RecipientShiftID может остаться NULL: тогда обмен односторонний,
// получатель просто забирает смену инициатора.
type ShiftSwap struct {
	ID               int    `json:"id" db:"id"`
	RequesterID      int    `json:"requester_id" db:"requester_id"`
	RequesterName    string `json:"requester_name,omitempty" db:"-"`
	RecipientID      int    `json:"recipient_id" db:"recipient_id"`
	RecipientName    string `json:"recipient_name,omitempty" db:"-"`
	RequesterShiftID int    `json:"requester_shift_id" db:"requester_shift_id"`
	RecipientShiftID *int   `json:"recipient_shift_id" db:"recipient_shift_id"`
	Status           string `json:"status" db:"status"`
	Note             string `json:"note" db:"note"`

	RequesterShift *Shift `json:"requester_shift,omitempty" db:"-"`
	RecipientShift *Shift `json:"recipient_shift,omitempty" db:"-"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Notification - уведомление в почтовом ящике пользователя.
// Append-only: после создания меняется только флаг Read.
type Notification struct {
	ID          int    `json:"id" db:"id"`
	RecipientID int    `json:"recipient_id" db:"recipient_id"`
	Type        string `json:"type" db:"type"`
	Title       string `json:"title" db:"title"`
	Body        string `json:"body" db:"body"`
	Link        string `json:"link" db:"link"`
	Read        bool   `json:"read" db:"read_flag"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Invitation - приглашение для регистрации нового сотрудника
type Invitation struct {
	ID            int    `json:"id" db:"id"`
	Email         string `json:"email" db:"email"`
	Name          string `json:"name" db:"name"`
	Token         string `json:"token" db:"token"`
	Role          string `json:"role" db:"role"`
	Department    string `json:"department" db:"department"`
	Used          bool   `json:"used" db:"used"`
	ExpiresAt     time.Time `json:"expires_at" db:"expires_at"`
	CreatedBy     int    `json:"created_by" db:"created_by"`
	CreatedByName string `json:"created_by_name,omitempty" db:"-"`
	Link          string `json:"link,omitempty" db:"-"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// HoursReportRow - строка отчета по отработанным часам
type HoursReportRow struct {
	EmployeeID int     `json:"employee_id"`
	Name       string  `json:"name"`
	Department string  `json:"department"`
	ShiftCount int     `json:"shift_count"`
	TotalHours float64 `json:"total_hours"`
}

// LeaveReportRow - строка годового отчета по отпускам
type LeaveReportRow struct {
	EmployeeID int     `json:"employee_id"`
	Name       string  `json:"name"`
	Balance    float64 `json:"balance"`
	Approved   float64 `json:"approved_days"`
	Pending    float64 `json:"pending_days"`
}

// DashboardStats - сводка для главной страницы
type DashboardStats struct {
	ShiftsToday     int     `json:"shifts_today"`
	EmployeesToday  int     `json:"employees_today"`
	PendingLeave    int     `json:"pending_leave"`
	HoursThisWeek   float64 `json:"hours_this_week,omitempty"`
	MyShifts        []Shift `json:"my_shifts"`
	UpcomingShifts  []Shift `json:"upcoming_shifts"`
}
