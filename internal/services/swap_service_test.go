package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shift-planner/internal/apperror"
	"shift-planner/internal/models"
	"shift-planner/internal/repositories"
)

func TestSwapCreateRequiresOwnShift(t *testing.T) {
	service := NewSwapService(
		&stubSwapRepo{},
		&stubShiftRepo{getByID: func(id int) (*models.Shift, error) {
			return &models.Shift{ID: id, EmployeeID: 2}, nil
		}},
		&stubEmployeeRepo{},
		&stubNotificationRepo{},
	)

	_, err := service.Create(1, 10, 3, nil, "")
	require.Error(t, err)
	assert.Equal(t, apperror.CodeForbidden, apperror.GetCode(err))
}

func TestSwapCreateRejectsInactiveRecipient(t *testing.T) {
	service := NewSwapService(
		&stubSwapRepo{},
		&stubShiftRepo{getByID: func(id int) (*models.Shift, error) {
			return &models.Shift{ID: id, EmployeeID: 1}, nil
		}},
		&stubEmployeeRepo{findByID: func(id int) (*models.Employee, error) {
			return &models.Employee{ID: id, Active: false}, nil
		}},
		&stubNotificationRepo{},
	)

	_, err := service.Create(1, 10, 3, nil, "")
	require.Error(t, err)
	assert.Equal(t, apperror.CodeValidation, apperror.GetCode(err))
}

func TestSwapCreateNotifiesRecipient(t *testing.T) {
	notifications := &stubNotificationRepo{}
	service := NewSwapService(
		&stubSwapRepo{},
		&stubShiftRepo{getByID: func(id int) (*models.Shift, error) {
			return &models.Shift{ID: id, EmployeeID: 1}, nil
		}},
		&stubEmployeeRepo{findByID: func(id int) (*models.Employee, error) {
			return &models.Employee{ID: id, Active: true}, nil
		}},
		notifications,
	)

	swap, err := service.Create(1, 10, 3, nil, "поменяемся?")
	require.NoError(t, err)
	assert.Equal(t, models.SwapSent, swap.Status)
	require.Len(t, notifications.created, 1)
	assert.Equal(t, 3, notifications.created[0].RecipientID)
}

func TestSwapRespondOnlyNamedRecipient(t *testing.T) {
	service := NewSwapService(
		&stubSwapRepo{getByID: func(id int) (*models.ShiftSwap, error) {
			return &models.ShiftSwap{ID: id, RequesterID: 1, RecipientID: 3, Status: models.SwapSent}, nil
		}},
		&stubShiftRepo{}, &stubEmployeeRepo{}, &stubNotificationRepo{},
	)

	_, err := service.Respond(5, 1, SwapActionAccept)
	require.Error(t, err)
	assert.Equal(t, apperror.CodeForbidden, apperror.GetCode(err))
}

func TestSwapRespondOnlyFromSent(t *testing.T) {
	service := NewSwapService(
		&stubSwapRepo{getByID: func(id int) (*models.ShiftSwap, error) {
			return &models.ShiftSwap{ID: id, RequesterID: 1, RecipientID: 3, Status: models.SwapAccepted}, nil
		}},
		&stubShiftRepo{}, &stubEmployeeRepo{}, &stubNotificationRepo{},
	)

	_, err := service.Respond(3, 1, SwapActionDecline)
	require.Error(t, err)
	assert.Equal(t, apperror.CodeInvalidState, apperror.GetCode(err))
}

func TestSwapRespondAcceptNotifiesRequester(t *testing.T) {
	notifications := &stubNotificationRepo{}
	service := NewSwapService(
		&stubSwapRepo{
			getByID: func(id int) (*models.ShiftSwap, error) {
				return &models.ShiftSwap{ID: id, RequesterID: 1, RecipientID: 3, Status: models.SwapSent}, nil
			},
			updateStatusFrom: func(id int, from, to string) (bool, error) {
				assert.Equal(t, models.SwapSent, from)
				assert.Equal(t, models.SwapAccepted, to)
				return true, nil
			},
		},
		&stubShiftRepo{}, &stubEmployeeRepo{}, notifications,
	)

	swap, err := service.Respond(3, 1, SwapActionAccept)
	require.NoError(t, err)
	assert.Equal(t, models.SwapAccepted, swap.Status)
	require.Len(t, notifications.created, 1)
	assert.Equal(t, 1, notifications.created[0].RecipientID)
}

func TestSwapApproveOnlyFromAccepted(t *testing.T) {
	// Репозиторий отказывает в CAS-переходе: запрос еще в статусе sent
	service := NewSwapService(
		&stubSwapRepo{approveAndReassign: func(id int) (*models.ShiftSwap, error) {
			return nil, repositories.ErrSwapInvalidState
		}},
		&stubShiftRepo{}, &stubEmployeeRepo{}, &stubNotificationRepo{},
	)

	_, err := service.Approve(7, 1, SwapActionApprove)
	require.Error(t, err)
	assert.Equal(t, apperror.CodeInvalidState, apperror.GetCode(err))
}

func TestSwapApproveNotifiesBothParties(t *testing.T) {
	notifications := &stubNotificationRepo{}
	service := NewSwapService(
		&stubSwapRepo{approveAndReassign: func(id int) (*models.ShiftSwap, error) {
			return &models.ShiftSwap{ID: id, RequesterID: 1, RecipientID: 3, Status: models.SwapApproved}, nil
		}},
		&stubShiftRepo{}, &stubEmployeeRepo{}, notifications,
	)

	swap, err := service.Approve(7, 1, SwapActionApprove)
	require.NoError(t, err)
	assert.Equal(t, models.SwapApproved, swap.Status)
	require.Len(t, notifications.created, 2)
	assert.Equal(t, 1, notifications.created[0].RecipientID)
	assert.Equal(t, 3, notifications.created[1].RecipientID)
}

func TestSwapRejectLeavesOwnershipUntouched(t *testing.T) {
	reassigned := false
	service := NewSwapService(
		&stubSwapRepo{
			getByID: func(id int) (*models.ShiftSwap, error) {
				return &models.ShiftSwap{ID: id, RequesterID: 1, RecipientID: 3, Status: models.SwapAccepted}, nil
			},
			approveAndReassign: func(id int) (*models.ShiftSwap, error) {
				reassigned = true
				return nil, nil
			},
		},
		&stubShiftRepo{}, &stubEmployeeRepo{}, &stubNotificationRepo{},
	)

	swap, err := service.Approve(7, 1, SwapActionReject)
	require.NoError(t, err)
	assert.Equal(t, models.SwapRejected, swap.Status)
	assert.False(t, reassigned, "отклонение не должно переназначать смены")
}

func TestSwapListScopesToParticipant(t *testing.T) {
	var gotParticipant *int
	service := NewSwapService(
		&stubSwapRepo{list: func(participantID *int) ([]models.ShiftSwap, error) {
			gotParticipant = participantID
			return nil, nil
		}},
		&stubShiftRepo{}, &stubEmployeeRepo{}, &stubNotificationRepo{},
	)

	_, err := service.List(3, false)
	require.NoError(t, err)
	require.NotNil(t, gotParticipant)
	assert.Equal(t, 3, *gotParticipant)

	_, err = service.List(7, true)
	require.NoError(t, err)
	assert.Nil(t, gotParticipant, "менеджер видит все запросы")
}
