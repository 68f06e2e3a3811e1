package services

import (
	"time"

	"shift-planner/internal/apperror"
	"shift-planner/internal/models"
	"shift-planner/internal/repositories"
)

// ReportServiceInterface определяет методы отчетов и сводки дашборда
type ReportServiceInterface interface {
	HoursReport(from, to string) ([]models.HoursReportRow, error)
	LeaveReport(year int) ([]models.LeaveReportRow, error)
	DashboardStats(callerID int, isManager bool) (*models.DashboardStats, error)
}

// ReportService строит агрегированные отчеты для менеджеров и сводку
// дашборда для всех сотрудников
type ReportService struct {
	shiftRepo repositories.ShiftRepositoryInterface
	leaveRepo repositories.LeaveRepositoryInterface

	// now подменяется в тестах
	now func() time.Time
}

// NewReportService создает новый экземпляр ReportService
func NewReportService(
	shiftRepo repositories.ShiftRepositoryInterface,
	leaveRepo repositories.LeaveRepositoryInterface,
) *ReportService {
	return &ReportService{
		shiftRepo: shiftRepo,
		leaveRepo: leaveRepo,
		now:       time.Now,
	}
}

// HoursReport возвращает число смен и чистые часы по каждому активному
// сотруднику за период (только опубликованные смены)
func (s *ReportService) HoursReport(from, to string) ([]models.HoursReportRow, error) {
	startDate, err := models.ParseDate(from)
	if err != nil {
		return nil, apperror.New(apperror.CodeValidation, err.Error())
	}
	endDate, err := models.ParseDate(to)
	if err != nil {
		return nil, apperror.New(apperror.CodeValidation, err.Error())
	}
	if endDate.Before(startDate) {
		return nil, apperror.New(apperror.CodeValidation, "Дата окончания раньше даты начала")
	}
	return s.shiftRepo.HoursReport(from, to)
}

// LeaveReport возвращает годовой отчет по отпускам активных сотрудников
func (s *ReportService) LeaveReport(year int) ([]models.LeaveReportRow, error) {
	if year < 2000 || year > 2100 {
		return nil, apperror.New(apperror.CodeValidation, "Некорректный год отчета")
	}
	return s.leaveRepo.LeaveReport(year)
}

// weekBounds возвращает границы недели (понедельник-воскресенье) для даты
func weekBounds(t time.Time) (string, string) {
	offset := int(t.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7 // воскресенье относится к уходящей неделе
	}
	monday := t.AddDate(0, 0, -offset)
	sunday := monday.AddDate(0, 0, 6)
	return monday.Format(models.DateLayout), sunday.Format(models.DateLayout)
}

// DashboardStats собирает сводку главной страницы: занятость на сегодня,
// заявки на рассмотрении, смены вызывающего на эту неделю и ближайшие пять.
// Суммарные плановые часы недели видят только менеджеры.
func (s *ReportService) DashboardStats(callerID int, isManager bool) (*models.DashboardStats, error) {
	now := s.now()
	today := now.Format(models.DateLayout)
	weekFrom, weekTo := weekBounds(now)

	stats := &models.DashboardStats{}

	var err error
	stats.ShiftsToday, stats.EmployeesToday, err = s.shiftRepo.CountPublishedOn(today)
	if err != nil {
		return nil, err
	}

	stats.PendingLeave, err = s.leaveRepo.CountPending()
	if err != nil {
		return nil, err
	}

	stats.MyShifts, err = s.shiftRepo.ListForEmployee(callerID, weekFrom, weekTo, 0)
	if err != nil {
		return nil, err
	}

	stats.UpcomingShifts, err = s.shiftRepo.ListForEmployee(callerID, today, "", 5)
	if err != nil {
		return nil, err
	}

	if isManager {
		minutes, err := s.shiftRepo.SumPublishedMinutes(weekFrom, weekTo)
		if err != nil {
			return nil, err
		}
		stats.HoursThisWeek = minutes / 60
	}

	return stats, nil
}
