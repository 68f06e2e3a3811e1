package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shift-planner/internal/apperror"
	"shift-planner/internal/models"
	"shift-planner/internal/repositories"
)

func TestShiftCreateValidatesTimes(t *testing.T) {
	service := NewShiftService(&stubShiftRepo{}, &stubEmployeeRepo{}, &stubNotificationRepo{})

	shift := &models.Shift{EmployeeID: 1, Date: "2026-03-04", StartTime: "17:00", EndTime: "09:00"}
	err := service.Create(shift)
	require.Error(t, err)
	assert.Equal(t, apperror.CodeValidation, apperror.GetCode(err))
}

func TestShiftCreateStartsAsDraft(t *testing.T) {
	service := NewShiftService(
		&stubShiftRepo{},
		&stubEmployeeRepo{findByID: func(id int) (*models.Employee, error) {
			return &models.Employee{ID: id, Active: true, Department: "Kitchen"}, nil
		}},
		&stubNotificationRepo{},
	)

	shift := &models.Shift{EmployeeID: 1, Date: "2026-03-04", StartTime: "09:00", EndTime: "17:00", Status: models.ShiftPublished}
	err := service.Create(shift)
	require.NoError(t, err)
	assert.Equal(t, models.ShiftDraft, shift.Status, "новая смена всегда черновик")
	assert.Equal(t, "Kitchen", shift.Department, "отдел наследуется от сотрудника")
}

func TestShiftCreateRejectsInactiveEmployee(t *testing.T) {
	service := NewShiftService(
		&stubShiftRepo{},
		&stubEmployeeRepo{findByID: func(id int) (*models.Employee, error) {
			return &models.Employee{ID: id, Active: false}, nil
		}},
		&stubNotificationRepo{},
	)

	shift := &models.Shift{EmployeeID: 1, Date: "2026-03-04", StartTime: "09:00", EndTime: "17:00"}
	err := service.Create(shift)
	require.Error(t, err)
	assert.Equal(t, apperror.CodeValidation, apperror.GetCode(err))
}

func TestShiftListStaffVisibility(t *testing.T) {
	var gotFilter repositories.ShiftFilter
	service := NewShiftService(
		&stubShiftRepo{list: func(filter repositories.ShiftFilter) ([]models.Shift, error) {
			gotFilter = filter
			return nil, nil
		}},
		&stubEmployeeRepo{}, &stubNotificationRepo{},
	)

	other := 9
	_, err := service.List(3, false, "", "", &other)
	require.NoError(t, err)
	assert.Nil(t, gotFilter.EmployeeID, "staff не фильтрует по чужим сотрудникам")
	require.NotNil(t, gotFilter.VisibleFor)
	assert.Equal(t, 3, *gotFilter.VisibleFor)
}

func TestPublishNotifiesAffectedEmployees(t *testing.T) {
	notifications := &stubNotificationRepo{}
	service := NewShiftService(
		&stubShiftRepo{publishRange: func(from, to string) ([]int, error) {
			return []int{1, 2, 3}, nil
		}},
		&stubEmployeeRepo{},
		notifications,
	)

	notified, err := service.Publish("2026-03-02", "2026-03-08")
	require.NoError(t, err)
	assert.Equal(t, 3, notified)
	require.Len(t, notifications.created, 3)
	assert.Equal(t, "schedule", notifications.created[0].Type)
}

func TestPublishValidatesRange(t *testing.T) {
	service := NewShiftService(&stubShiftRepo{}, &stubEmployeeRepo{}, &stubNotificationRepo{})

	_, err := service.Publish("2026-03-08", "2026-03-02")
	require.Error(t, err)
	assert.Equal(t, apperror.CodeValidation, apperror.GetCode(err))
}
