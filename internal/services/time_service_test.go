package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shift-planner/internal/apperror"
	"shift-planner/internal/models"
)

func fixedClock(value string) func() time.Time {
	t, _ := time.Parse("2006-01-02 15:04", value)
	return func() time.Time { return t }
}

func TestCheckInLinksShift(t *testing.T) {
	shiftID := 42
	service := NewTimeService(&stubTimeRepo{
		findShiftID: func(employeeID int, date string) (*int, error) {
			assert.Equal(t, "2026-03-04", date)
			return &shiftID, nil
		},
	})
	service.now = fixedClock("2026-03-04 09:01")

	entry, err := service.CheckIn(1, "")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-04", entry.Date)
	assert.Equal(t, "09:01", entry.ClockIn)
	require.NotNil(t, entry.ShiftID)
	assert.Equal(t, 42, *entry.ShiftID)
}

func TestCheckInTwiceRejected(t *testing.T) {
	service := NewTimeService(&stubTimeRepo{
		getOpenEntry: func(employeeID int, date string) (*models.TimeEntry, error) {
			return &models.TimeEntry{ID: 1, EmployeeID: employeeID, Date: date, ClockIn: "09:00"}, nil
		},
	})
	service.now = fixedClock("2026-03-04 12:00")

	_, err := service.CheckIn(1, "")
	require.Error(t, err)
	assert.Equal(t, apperror.CodeInvalidState, apperror.GetCode(err))
}

func TestCheckOutRequiresOpenEntry(t *testing.T) {
	service := NewTimeService(&stubTimeRepo{})
	service.now = fixedClock("2026-03-04 17:00")

	_, err := service.CheckOut(1)
	require.Error(t, err)
	assert.Equal(t, apperror.CodeInvalidState, apperror.GetCode(err))
}

func TestCheckOutClosesEntry(t *testing.T) {
	var closedID int
	var closedAt string
	service := NewTimeService(&stubTimeRepo{
		getOpenEntry: func(employeeID int, date string) (*models.TimeEntry, error) {
			return &models.TimeEntry{ID: 5, EmployeeID: employeeID, Date: date, ClockIn: "09:00"}, nil
		},
		setClockOut: func(id int, clockOut string) error {
			closedID = id
			closedAt = clockOut
			return nil
		},
	})
	service.now = fixedClock("2026-03-04 17:30")

	entry, err := service.CheckOut(1)
	require.NoError(t, err)
	assert.Equal(t, 5, closedID)
	assert.Equal(t, "17:30", closedAt)
	assert.Equal(t, "17:30", entry.ClockOut)
}

func TestManualCreateStaffCannotApprove(t *testing.T) {
	var saved *models.TimeEntry
	service := NewTimeService(&stubTimeRepo{
		create: func(entry *models.TimeEntry) error {
			saved = entry
			return nil
		},
	})

	entry := &models.TimeEntry{EmployeeID: 9, Date: "2026-03-04", ClockIn: "09:00", ClockOut: "17:00", Approved: true}
	err := service.Create(1, false, entry)
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, 1, saved.EmployeeID, "staff создает записи только на себя")
	assert.False(t, saved.Approved, "staff не может утверждать записи")
}

func TestUpdateForeignEntryForbidden(t *testing.T) {
	service := NewTimeService(&stubTimeRepo{
		getByID: func(id int) (*models.TimeEntry, error) {
			return &models.TimeEntry{ID: id, EmployeeID: 2, Date: "2026-03-04", ClockIn: "09:00"}, nil
		},
	})

	entry := &models.TimeEntry{ID: 1, Date: "2026-03-04", ClockIn: "08:00"}
	err := service.Update(1, false, entry)
	require.Error(t, err)
	assert.Equal(t, apperror.CodeForbidden, apperror.GetCode(err))
}

func TestDeleteForeignEntryForbidden(t *testing.T) {
	service := NewTimeService(&stubTimeRepo{
		getByID: func(id int) (*models.TimeEntry, error) {
			return &models.TimeEntry{ID: id, EmployeeID: 2}, nil
		},
	})

	err := service.Delete(1, false, 5)
	require.Error(t, err)
	assert.Equal(t, apperror.CodeForbidden, apperror.GetCode(err))

	// Менеджеру можно
	err = service.Delete(1, true, 5)
	require.NoError(t, err)
}
