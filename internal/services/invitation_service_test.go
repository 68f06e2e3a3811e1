package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shift-planner/internal/apperror"
	"shift-planner/internal/models"
)

type stubTokenIssuer struct {
	token string
	err   error
}

func (s *stubTokenIssuer) IssueToken(*models.Employee) (string, error) {
	return s.token, s.err
}

func newInvitationService(invRepo *stubInvitationRepo, empRepo *stubEmployeeRepo) *InvitationService {
	return NewInvitationService(
		invRepo, empRepo, &stubTokenIssuer{token: "jwt-token"},
		"http://localhost:3000", 7*24*time.Hour, 25,
	)
}

func TestInvitationCreateRejectsExistingEmployee(t *testing.T) {
	service := newInvitationService(
		&stubInvitationRepo{},
		&stubEmployeeRepo{findByEmail: func(email string) (*models.Employee, error) {
			return &models.Employee{ID: 1, Email: email}, nil
		}},
	)

	_, err := service.Create(7, "jan@example.com", "Jan", "", "")
	require.Error(t, err)
	assert.Equal(t, apperror.CodeConflict, apperror.GetCode(err))
}

func TestInvitationCreateRejectsDuplicateInvite(t *testing.T) {
	service := newInvitationService(
		&stubInvitationRepo{hasUnusedForEmail: func(string) (bool, error) { return true, nil }},
		&stubEmployeeRepo{},
	)

	_, err := service.Create(7, "jan@example.com", "Jan", "", "")
	require.Error(t, err)
	assert.Equal(t, apperror.CodeConflict, apperror.GetCode(err))
}

func TestInvitationCreateBuildsLink(t *testing.T) {
	service := newInvitationService(&stubInvitationRepo{}, &stubEmployeeRepo{})

	invitation, err := service.Create(7, "jan@example.com", "Jan", "", "Kitchen")
	require.NoError(t, err)
	assert.Equal(t, models.RoleStaff, invitation.Role, "роль по умолчанию - staff")
	assert.NotEmpty(t, invitation.Token)
	assert.Equal(t, "http://localhost:3000/register?token="+invitation.Token, invitation.Link)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), invitation.ExpiresAt, time.Minute)
}

func TestVerifyExpiredInvitation(t *testing.T) {
	service := newInvitationService(
		&stubInvitationRepo{getUnusedByToken: func(token string) (*models.Invitation, error) {
			return &models.Invitation{ID: 1, Token: token, ExpiresAt: time.Now().Add(-time.Hour)}, nil
		}},
		&stubEmployeeRepo{},
	)

	_, err := service.Verify("old-token")
	require.Error(t, err)
	assert.Equal(t, apperror.CodeInvalidState, apperror.GetCode(err))
}

func TestVerifyUsedInvitation(t *testing.T) {
	// Использованные токены репозиторий не возвращает вовсе
	service := newInvitationService(&stubInvitationRepo{}, &stubEmployeeRepo{})

	_, err := service.Verify("used-token")
	require.Error(t, err)
	assert.Equal(t, apperror.CodeNotFound, apperror.GetCode(err))
}

func TestRegisterShortPassword(t *testing.T) {
	service := newInvitationService(&stubInvitationRepo{}, &stubEmployeeRepo{})

	_, _, err := service.Register("token", "short")
	require.Error(t, err)
	assert.Equal(t, apperror.CodeValidation, apperror.GetCode(err))
}

func TestRegisterCreatesEmployeeAndMarksUsed(t *testing.T) {
	var created *models.Employee
	markedUsed := 0
	service := newInvitationService(
		&stubInvitationRepo{
			getUnusedByToken: func(token string) (*models.Invitation, error) {
				return &models.Invitation{
					ID: 9, Token: token, Email: "jan@example.com", Name: "Jan",
					Role: models.RoleStaff, Department: "Kitchen",
					ExpiresAt: time.Now().Add(time.Hour),
				}, nil
			},
			markUsed: func(id int) error {
				markedUsed = id
				return nil
			},
		},
		&stubEmployeeRepo{create: func(employee *models.Employee) error {
			employee.ID = 11
			created = employee
			return nil
		}},
	)

	token, employee, err := service.Register("token", "password123")
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", token)
	assert.Equal(t, 11, employee.ID)
	assert.Empty(t, employee.Password)
	require.NotNil(t, created)
	assert.Equal(t, 25.0, created.VacationBalance, "новый сотрудник получает баланс по умолчанию")
	assert.Equal(t, 9, markedUsed)
}
