package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shift-planner/internal/apperror"
	"shift-planner/internal/models"
)

func TestWeekBounds(t *testing.T) {
	tests := []struct {
		name string
		date string
		from string
		to   string
	}{
		{"среда", "2026-03-04", "2026-03-02", "2026-03-08"},
		{"понедельник", "2026-03-02", "2026-03-02", "2026-03-08"},
		{"воскресенье относится к уходящей неделе", "2026-03-08", "2026-03-02", "2026-03-08"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day, err := models.ParseDate(tt.date)
			require.NoError(t, err)
			from, to := weekBounds(day)
			assert.Equal(t, tt.from, from)
			assert.Equal(t, tt.to, to)
		})
	}
}

func TestDashboardStatsManagerSeesWeekHours(t *testing.T) {
	shiftRepo := &stubShiftRepo{
		countPublishedOn: func(date string) (int, int, error) { return 4, 3, nil },
		sumPublishedMinutes: func(from, to string) (float64, error) {
			return 2400, nil // 40 часов
		},
	}
	service := NewReportService(shiftRepo, &stubLeaveRepo{})
	service.now = fixedClock("2026-03-04 10:00")

	stats, err := service.DashboardStats(7, true)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.ShiftsToday)
	assert.Equal(t, 3, stats.EmployeesToday)
	assert.Equal(t, 40.0, stats.HoursThisWeek)
}

func TestDashboardStatsStaffGetsNoWeekHours(t *testing.T) {
	called := false
	shiftRepo := &stubShiftRepo{
		sumPublishedMinutes: func(from, to string) (float64, error) {
			called = true
			return 2400, nil
		},
	}
	service := NewReportService(shiftRepo, &stubLeaveRepo{})
	service.now = fixedClock("2026-03-04 10:00")

	stats, err := service.DashboardStats(3, false)
	require.NoError(t, err)
	assert.Zero(t, stats.HoursThisWeek)
	assert.False(t, called, "плановые часы недели считаются только для менеджера")
}

func TestDashboardStatsUpcomingLimitedToFive(t *testing.T) {
	var gotLimit int
	shiftRepo := &stubShiftRepo{
		listForEmployee: func(employeeID int, from, to string, limit int) ([]models.Shift, error) {
			if to == "" {
				gotLimit = limit
			}
			return nil, nil
		},
	}
	service := NewReportService(shiftRepo, &stubLeaveRepo{})
	service.now = fixedClock("2026-03-04 10:00")

	_, err := service.DashboardStats(3, false)
	require.NoError(t, err)
	assert.Equal(t, 5, gotLimit)
}

func TestHoursReportValidatesRange(t *testing.T) {
	service := NewReportService(&stubShiftRepo{}, &stubLeaveRepo{})

	_, err := service.HoursReport("2026-03-31", "2026-03-01")
	require.Error(t, err)
	assert.Equal(t, apperror.CodeValidation, apperror.GetCode(err))
}

func TestLeaveReportValidatesYear(t *testing.T) {
	service := NewReportService(&stubShiftRepo{}, &stubLeaveRepo{})

	_, err := service.LeaveReport(199)
	require.Error(t, err)
	assert.Equal(t, apperror.CodeValidation, apperror.GetCode(err))
}
