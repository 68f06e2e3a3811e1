package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"shift-planner/internal/apperror"
	"shift-planner/internal/models"
)

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestLoginWrongPassword(t *testing.T) {
	service := NewAuthService(
		&stubEmployeeRepo{findByEmail: func(email string) (*models.Employee, error) {
			return &models.Employee{ID: 1, Email: email, Password: hashPassword(t, "correct"), Active: true}, nil
		}},
		"secret", 8*time.Hour, 25,
	)

	_, _, err := service.Login("jan@example.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, apperror.CodeUnauthenticated, apperror.GetCode(err))
}

func TestLoginInactiveEmployee(t *testing.T) {
	service := NewAuthService(
		&stubEmployeeRepo{findByEmail: func(email string) (*models.Employee, error) {
			return &models.Employee{ID: 1, Email: email, Password: hashPassword(t, "correct"), Active: false}, nil
		}},
		"secret", 8*time.Hour, 25,
	)

	_, _, err := service.Login("jan@example.com", "correct")
	require.Error(t, err)
	assert.Equal(t, apperror.CodeUnauthenticated, apperror.GetCode(err))
}

func TestLoginIssuesTokenWithClaims(t *testing.T) {
	service := NewAuthService(
		&stubEmployeeRepo{findByEmail: func(email string) (*models.Employee, error) {
			return &models.Employee{
				ID: 5, Email: email, Password: hashPassword(t, "correct"),
				Role: models.RoleManager, Active: true,
			}, nil
		}},
		"secret", 8*time.Hour, 25,
	)

	tokenString, employee, err := service.Login("jan@example.com", "correct")
	require.NoError(t, err)
	assert.Empty(t, employee.Password)

	token, err := jwt.Parse(tokenString, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(5), claims["user_id"])
	assert.Equal(t, models.RoleManager, claims["role"])
	assert.Equal(t, "jan@example.com", claims["email"])

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(8*time.Hour), exp.Time, time.Minute)
}

func TestChangePasswordChecksCurrent(t *testing.T) {
	service := NewAuthService(
		&stubEmployeeRepo{findByID: func(id int) (*models.Employee, error) {
			return &models.Employee{ID: id, Password: hashPassword(t, "correct"), Active: true}, nil
		}},
		"secret", 8*time.Hour, 25,
	)

	err := service.ChangePassword(1, "wrong", "newpassword")
	require.Error(t, err)
	assert.Equal(t, apperror.CodeValidation, apperror.GetCode(err))
}

func TestChangePasswordMinLength(t *testing.T) {
	service := NewAuthService(&stubEmployeeRepo{}, "secret", 8*time.Hour, 25)

	err := service.ChangePassword(1, "correct", "1234567")
	require.Error(t, err)
	assert.Equal(t, apperror.CodeValidation, apperror.GetCode(err))
}

func TestSetupAdminOnlyOnEmptyDatabase(t *testing.T) {
	service := NewAuthService(
		&stubEmployeeRepo{count: func() (int, error) { return 3, nil }},
		"secret", 8*time.Hour, 25,
	)

	_, err := service.SetupAdmin("Admin", "admin@example.com", "password123")
	require.Error(t, err)
	assert.Equal(t, apperror.CodeConflict, apperror.GetCode(err))
}

func TestSetupAdminCreatesManager(t *testing.T) {
	var created *models.Employee
	service := NewAuthService(
		&stubEmployeeRepo{
			count: func() (int, error) { return 0, nil },
			create: func(employee *models.Employee) error {
				employee.ID = 1
				created = employee
				return nil
			},
		},
		"secret", 8*time.Hour, 25,
	)

	admin, err := service.SetupAdmin("Admin", "admin@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, models.RoleManager, admin.Role)
	require.NotNil(t, created)
	assert.Equal(t, 25.0, created.VacationBalance)
}
