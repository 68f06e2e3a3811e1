package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"shift-planner/internal/apperror"
	"shift-planner/internal/middleware"
	"shift-planner/internal/models"
	"shift-planner/internal/services"
)

// GetIntQueryParam читает опциональный целочисленный query-параметр
func GetIntQueryParam(c *gin.Context, paramName string) *int {
	valStr := c.Query(paramName)
	if valStr == "" {
		return nil
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("Некорректное значение для параметра '%s': %v", paramName, err)
		return nil
	}
	return &val
}

func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный ID", "code": apperror.CodeValidation})
		return 0, false
	}
	return id, true
}

// respondError отображает ошибку сервиса в HTTP-ответ по коду из таксономии.
// Внутренние ошибки не раскрываются клиенту, только логируются.
func respondError(c *gin.Context, err error) {
	code := apperror.GetCode(err)
	status := apperror.HTTPStatus(code)
	if status == http.StatusInternalServerError {
		log.Printf("[Handler] %s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(status, gin.H{"error": "Внутренняя ошибка сервера", "code": code})
		return
	}
	c.JSON(status, gin.H{"error": err.Error(), "code": code})
}

// AppHandler объединяет обработчики для разных частей приложения
type AppHandler struct {
	authService         services.AuthServiceInterface
	employeeService     services.EmployeeServiceInterface
	shiftService        services.ShiftServiceInterface
	timeService         services.TimeServiceInterface
	leaveService        services.LeaveServiceInterface
	swapService         services.SwapServiceInterface
	availabilityService services.AvailabilityServiceInterface
	notificationService services.NotificationServiceInterface
	invitationService   services.InvitationServiceInterface
	reportService       services.ReportServiceInterface
}

// NewAppHandler создает новый экземпляр AppHandler
func NewAppHandler(
	as services.AuthServiceInterface,
	es services.EmployeeServiceInterface,
	ss services.ShiftServiceInterface,
	ts services.TimeServiceInterface,
	ls services.LeaveServiceInterface,
	sws services.SwapServiceInterface,
	avs services.AvailabilityServiceInterface,
	ns services.NotificationServiceInterface,
	is services.InvitationServiceInterface,
	rs services.ReportServiceInterface,
) *AppHandler {
	return &AppHandler{
		authService:         as,
		employeeService:     es,
		shiftService:        ss,
		timeService:         ts,
		leaveService:        ls,
		swapService:         sws,
		availabilityService: avs,
		notificationService: ns,
		invitationService:   is,
		reportService:       rs,
	}
}

// --- Сотрудники ---

// GetEmployeeDirectory возвращает справочник активных сотрудников
func (h *AppHandler) GetEmployeeDirectory(c *gin.Context) {
	directory, err := h.employeeService.Directory()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, directory)
}

// GetUsers возвращает полный список учетных записей (менеджер)
func (h *AppHandler) GetUsers(c *gin.Context) {
	employees, err := h.employeeService.GetAll()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, employees)
}

// CreateUser создает учетную запись сотрудника (менеджер).
// Пароль принимается отдельным полем: json:"-" на модели не пропускает его
// через обычную привязку.
func (h *AppHandler) CreateUser(c *gin.Context) {
	var input struct {
		models.Employee
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректные данные: " + err.Error(), "code": apperror.CodeValidation})
		return
	}

	employee := input.Employee
	employee.Password = input.Password

	if err := h.employeeService.Create(&employee); err != nil {
		respondError(c, err)
		return
	}
	employee.Password = ""
	c.JSON(http.StatusCreated, employee)
}

// UpdateUser обновляет учетную запись сотрудника (менеджер)
func (h *AppHandler) UpdateUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var employee models.Employee
	if err := c.ShouldBindJSON(&employee); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректные данные: " + err.Error(), "code": apperror.CodeValidation})
		return
	}
	employee.ID = id

	if err := h.employeeService.Update(&employee); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Данные сотрудника обновлены"})
}

// DeleteUser деактивирует учетную запись (мягкое удаление, менеджер)
func (h *AppHandler) DeleteUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.employeeService.Deactivate(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Учетная запись деактивирована"})
}

// --- Смены ---

// GetShifts возвращает смены с учетом видимости роли
func (h *AppHandler) GetShifts(c *gin.Context) {
	shifts, err := h.shiftService.List(
		middleware.CallerID(c), middleware.IsManager(c),
		c.Query("from"), c.Query("to"), GetIntQueryParam(c, "employee_id"),
	)
	if err != nil {
		respondError(c, err)
		return
	}
	if shifts == nil {
		shifts = []models.Shift{}
	}
	c.JSON(http.StatusOK, shifts)
}

// CreateShift создает черновик смены (менеджер)
func (h *AppHandler) CreateShift(c *gin.Context) {
	var shift models.Shift
	if err := c.ShouldBindJSON(&shift); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректные данные: " + err.Error(), "code": apperror.CodeValidation})
		return
	}
	if err := h.shiftService.Create(&shift); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, shift)
}

// UpdateShift обновляет смену (менеджер)
func (h *AppHandler) UpdateShift(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var shift models.Shift
	if err := c.ShouldBindJSON(&shift); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректные данные: " + err.Error(), "code": apperror.CodeValidation})
		return
	}
	shift.ID = id

	if err := h.shiftService.Update(&shift); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, shift)
}

// DeleteShift удаляет смену (менеджер)
func (h *AppHandler) DeleteShift(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.shiftService.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Смена удалена"})
}

// PublishShifts публикует расписание диапазона дат (менеджер)
func (h *AppHandler) PublishShifts(c *gin.Context) {
	var input struct {
		From string `json:"from" binding:"required"`
		To   string `json:"to" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректные данные: " + err.Error(), "code": apperror.CodeValidation})
		return
	}

	notified, err := h.shiftService.Publish(input.From, input.To)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Расписание опубликовано", "employees_notified": notified})
}

// --- Доступность ---

// GetAvailability возвращает доступность сотрудника
func (h *AppHandler) GetAvailability(c *gin.Context) {
	employeeID := 0
	if p := GetIntQueryParam(c, "employee_id"); p != nil {
		employeeID = *p
	}

	entries, err := h.availabilityService.Get(middleware.CallerID(c), middleware.IsManager(c), employeeID)
	if err != nil {
		respondError(c, err)
		return
	}
	if entries == nil {
		entries = []models.Availability{}
	}
	c.JSON(http.StatusOK, entries)
}

// SetAvailability сохраняет запись доступности вызывающего
func (h *AppHandler) SetAvailability(c *gin.Context) {
	var entry models.Availability
	if err := c.ShouldBindJSON(&entry); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректные данные: " + err.Error(), "code": apperror.CodeValidation})
		return
	}
	if err := h.availabilityService.Set(middleware.CallerID(c), &entry); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// --- Служебные ---

// Health - проверка живости сервиса
func (h *AppHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
