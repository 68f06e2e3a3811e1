package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"shift-planner/internal/apperror"
	"shift-planner/internal/middleware"
	"shift-planner/internal/models"
)

type stubLeaveService struct {
	submit  func(employeeID int, startDate, endDate, leaveType, note string) (*models.LeaveRequest, error)
	process func(managerID, requestID int, decision, comment string) (*models.LeaveRequest, error)
	cancel  func(callerID, requestID int) error
}

func (s *stubLeaveService) Submit(employeeID int, startDate, endDate, leaveType, note string) (*models.LeaveRequest, error) {
	return s.submit(employeeID, startDate, endDate, leaveType, note)
}

func (s *stubLeaveService) List(callerID int, isManager bool, employeeID *int, status string) ([]models.LeaveRequest, error) {
	return nil, nil
}

func (s *stubLeaveService) Process(managerID, requestID int, decision, comment string) (*models.LeaveRequest, error) {
	return s.process(managerID, requestID, decision, comment)
}

func (s *stubLeaveService) Cancel(callerID, requestID int) error {
	return s.cancel(callerID, requestID)
}

func newLeaveRouter(service *stubLeaveService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	// Подменяем аутентификацию: кладем identity прямо в контекст
	router.Use(func(c *gin.Context) {
		c.Set(middleware.CtxUserID, 3)
		c.Set(middleware.CtxRole, models.RoleStaff)
	})

	h := &AppHandler{leaveService: service}
	router.POST("/api/leave-requests", h.CreateLeaveRequest)
	router.POST("/api/leave-requests/:id/process", h.ProcessLeaveRequest)
	router.DELETE("/api/leave-requests/:id", h.CancelLeaveRequest)
	return router
}

func postJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateLeaveRequestInsufficientBalance(t *testing.T) {
	router := newLeaveRouter(&stubLeaveService{
		submit: func(_ int, _, _, _, _ string) (*models.LeaveRequest, error) {
			return nil, apperror.New(apperror.CodeInsufficientBalance, "Недостаточно отпускных дней")
		},
	})

	w := postJSON(router, http.MethodPost, "/api/leave-requests",
		`{"start_date":"2026-03-02","end_date":"2026-03-06","type":"vacation"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "insufficient_balance")
}

func TestCreateLeaveRequestCreated(t *testing.T) {
	router := newLeaveRouter(&stubLeaveService{
		submit: func(employeeID int, startDate, endDate, leaveType, note string) (*models.LeaveRequest, error) {
			assert.Equal(t, 3, employeeID, "заявка подается от имени вызывающего")
			return &models.LeaveRequest{ID: 1, EmployeeID: employeeID, Status: models.LeavePending, DayCount: 5}, nil
		},
	})

	w := postJSON(router, http.MethodPost, "/api/leave-requests",
		`{"start_date":"2026-03-02","end_date":"2026-03-06","type":"vacation"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"pending"`)
}

func TestCreateLeaveRequestMissingFields(t *testing.T) {
	router := newLeaveRouter(&stubLeaveService{})

	w := postJSON(router, http.MethodPost, "/api/leave-requests", `{"type":"vacation"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProcessLeaveRequestAlreadyDecided(t *testing.T) {
	router := newLeaveRouter(&stubLeaveService{
		process: func(_, _ int, _, _ string) (*models.LeaveRequest, error) {
			return nil, apperror.New(apperror.CodeInvalidState, "Заявка уже обработана")
		},
	})

	w := postJSON(router, http.MethodPost, "/api/leave-requests/1/process", `{"decision":"approved"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_state")
}

func TestCancelLeaveRequestForbidden(t *testing.T) {
	router := newLeaveRouter(&stubLeaveService{
		cancel: func(callerID, requestID int) error {
			return apperror.New(apperror.CodeForbidden, "Отменить заявку может только ее автор")
		},
	})

	w := postJSON(router, http.MethodDelete, "/api/leave-requests/1", "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCancelLeaveRequestBadID(t *testing.T) {
	router := newLeaveRouter(&stubLeaveService{})

	w := postJSON(router, http.MethodDelete, "/api/leave-requests/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
