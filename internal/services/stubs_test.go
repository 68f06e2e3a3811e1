package services

import (
	"shift-planner/internal/models"
	"shift-planner/internal/repositories"
)

// Стабы репозиториев с подменяемыми функциями. Невыставленная функция
// возвращает нулевые значения - тест задает только то, что проверяет.

type stubEmployeeRepo struct {
	findByID            func(id int) (*models.Employee, error)
	findByEmail         func(email string) (*models.Employee, error)
	getActiveManagerIDs func() ([]int, error)
	count               func() (int, error)
	create              func(employee *models.Employee) error
}

func (s *stubEmployeeRepo) FindByID(id int) (*models.Employee, error) {
	if s.findByID == nil {
		return nil, repositories.ErrEmployeeNotFound
	}
	return s.findByID(id)
}

func (s *stubEmployeeRepo) FindByEmail(email string) (*models.Employee, error) {
	if s.findByEmail == nil {
		return nil, repositories.ErrEmployeeNotFound
	}
	return s.findByEmail(email)
}

func (s *stubEmployeeRepo) GetAll() ([]models.Employee, error) { return nil, nil }

func (s *stubEmployeeRepo) GetActiveDirectory() ([]models.EmployeeDirectoryItem, error) {
	return nil, nil
}

func (s *stubEmployeeRepo) GetActiveManagerIDs() ([]int, error) {
	if s.getActiveManagerIDs == nil {
		return nil, nil
	}
	return s.getActiveManagerIDs()
}

func (s *stubEmployeeRepo) Count() (int, error) {
	if s.count == nil {
		return 0, nil
	}
	return s.count()
}

func (s *stubEmployeeRepo) Create(employee *models.Employee) error {
	if s.create == nil {
		return nil
	}
	return s.create(employee)
}

func (s *stubEmployeeRepo) Update(employee *models.Employee) error     { return nil }
func (s *stubEmployeeRepo) UpdateProfile(id int, name, _ string) error { return nil }
func (s *stubEmployeeRepo) UpdatePassword(id int, hash string) error   { return nil }
func (s *stubEmployeeRepo) Deactivate(id int) error                    { return nil }

type stubLeaveRepo struct {
	getByID         func(id int) (*models.LeaveRequest, error)
	list            func(filter repositories.LeaveFilter) ([]models.LeaveRequest, error)
	create          func(request *models.LeaveRequest) error
	processDecision func(requestID, reviewerID int, decision, comment string) (*models.LeaveRequest, error)
	cancelPending   func(requestID int) (bool, error)
}

func (s *stubLeaveRepo) GetByID(id int) (*models.LeaveRequest, error) {
	if s.getByID == nil {
		return nil, repositories.ErrLeaveNotFound
	}
	return s.getByID(id)
}

func (s *stubLeaveRepo) List(filter repositories.LeaveFilter) ([]models.LeaveRequest, error) {
	if s.list == nil {
		return nil, nil
	}
	return s.list(filter)
}

func (s *stubLeaveRepo) Create(request *models.LeaveRequest) error {
	if s.create == nil {
		return nil
	}
	return s.create(request)
}

func (s *stubLeaveRepo) ProcessDecision(requestID, reviewerID int, decision, comment string) (*models.LeaveRequest, error) {
	return s.processDecision(requestID, reviewerID, decision, comment)
}

func (s *stubLeaveRepo) CancelPending(requestID int) (bool, error) {
	if s.cancelPending == nil {
		return true, nil
	}
	return s.cancelPending(requestID)
}

func (s *stubLeaveRepo) CountPending() (int, error) { return 0, nil }

func (s *stubLeaveRepo) LeaveReport(year int) ([]models.LeaveReportRow, error) { return nil, nil }

type stubShiftRepo struct {
	getByID             func(id int) (*models.Shift, error)
	list                func(filter repositories.ShiftFilter) ([]models.Shift, error)
	create              func(shift *models.Shift) error
	update              func(shift *models.Shift) error
	publishRange        func(from, to string) ([]int, error)
	countPublishedOn    func(date string) (int, int, error)
	sumPublishedMinutes func(from, to string) (float64, error)
	listForEmployee     func(employeeID int, from, to string, limit int) ([]models.Shift, error)
}

func (s *stubShiftRepo) GetByID(id int) (*models.Shift, error) {
	if s.getByID == nil {
		return nil, repositories.ErrShiftNotFound
	}
	return s.getByID(id)
}

func (s *stubShiftRepo) List(filter repositories.ShiftFilter) ([]models.Shift, error) {
	if s.list == nil {
		return nil, nil
	}
	return s.list(filter)
}

func (s *stubShiftRepo) Create(shift *models.Shift) error {
	if s.create == nil {
		return nil
	}
	return s.create(shift)
}

func (s *stubShiftRepo) Update(shift *models.Shift) error {
	if s.update == nil {
		return nil
	}
	return s.update(shift)
}

func (s *stubShiftRepo) Delete(id int) error { return nil }

func (s *stubShiftRepo) PublishRange(from, to string) ([]int, error) {
	if s.publishRange == nil {
		return nil, nil
	}
	return s.publishRange(from, to)
}

func (s *stubShiftRepo) CountPublishedOn(date string) (int, int, error) {
	if s.countPublishedOn == nil {
		return 0, 0, nil
	}
	return s.countPublishedOn(date)
}

func (s *stubShiftRepo) SumPublishedMinutes(from, to string) (float64, error) {
	if s.sumPublishedMinutes == nil {
		return 0, nil
	}
	return s.sumPublishedMinutes(from, to)
}

func (s *stubShiftRepo) HoursReport(from, to string) ([]models.HoursReportRow, error) {
	return nil, nil
}

func (s *stubShiftRepo) ListForEmployee(employeeID int, from, to string, limit int) ([]models.Shift, error) {
	if s.listForEmployee == nil {
		return nil, nil
	}
	return s.listForEmployee(employeeID, from, to, limit)
}

type stubSwapRepo struct {
	getByID            func(id int) (*models.ShiftSwap, error)
	list               func(participantID *int) ([]models.ShiftSwap, error)
	create             func(swap *models.ShiftSwap) error
	updateStatusFrom   func(id int, from, to string) (bool, error)
	approveAndReassign func(id int) (*models.ShiftSwap, error)
}

func (s *stubSwapRepo) GetByID(id int) (*models.ShiftSwap, error) {
	if s.getByID == nil {
		return nil, repositories.ErrSwapNotFound
	}
	return s.getByID(id)
}

func (s *stubSwapRepo) List(participantID *int) ([]models.ShiftSwap, error) {
	if s.list == nil {
		return nil, nil
	}
	return s.list(participantID)
}

func (s *stubSwapRepo) Create(swap *models.ShiftSwap) error {
	if s.create == nil {
		return nil
	}
	return s.create(swap)
}

func (s *stubSwapRepo) UpdateStatusFrom(id int, from, to string) (bool, error) {
	if s.updateStatusFrom == nil {
		return true, nil
	}
	return s.updateStatusFrom(id, from, to)
}

func (s *stubSwapRepo) ApproveAndReassign(id int) (*models.ShiftSwap, error) {
	return s.approveAndReassign(id)
}

type stubNotificationRepo struct {
	created []models.Notification
	err     error
}

func (s *stubNotificationRepo) Create(notification *models.Notification) error {
	if s.err != nil {
		return s.err
	}
	s.created = append(s.created, *notification)
	return nil
}

func (s *stubNotificationRepo) ListForRecipient(recipientID, limit int) ([]models.Notification, error) {
	return nil, nil
}

func (s *stubNotificationRepo) MarkRead(id, recipientID int) (bool, error) { return true, nil }

func (s *stubNotificationRepo) MarkAllRead(recipientID int) error { return nil }

type stubTimeRepo struct {
	getByID      func(id int) (*models.TimeEntry, error)
	getOpenEntry func(employeeID int, date string) (*models.TimeEntry, error)
	findShiftID  func(employeeID int, date string) (*int, error)
	create       func(entry *models.TimeEntry) error
	setClockOut  func(id int, clockOut string) error
	update       func(entry *models.TimeEntry) error
	deleteFn     func(id int) error
}

func (s *stubTimeRepo) GetByID(id int) (*models.TimeEntry, error) {
	if s.getByID == nil {
		return nil, repositories.ErrTimeEntryNotFound
	}
	return s.getByID(id)
}

func (s *stubTimeRepo) List(filter repositories.TimeEntryFilter) ([]models.TimeEntry, error) {
	return nil, nil
}

func (s *stubTimeRepo) GetOpenEntry(employeeID int, date string) (*models.TimeEntry, error) {
	if s.getOpenEntry == nil {
		return nil, repositories.ErrTimeEntryNotFound
	}
	return s.getOpenEntry(employeeID, date)
}

func (s *stubTimeRepo) FindShiftID(employeeID int, date string) (*int, error) {
	if s.findShiftID == nil {
		return nil, nil
	}
	return s.findShiftID(employeeID, date)
}

func (s *stubTimeRepo) Create(entry *models.TimeEntry) error {
	if s.create == nil {
		return nil
	}
	return s.create(entry)
}

func (s *stubTimeRepo) SetClockOut(id int, clockOut string) error {
	if s.setClockOut == nil {
		return nil
	}
	return s.setClockOut(id, clockOut)
}

func (s *stubTimeRepo) Update(entry *models.TimeEntry) error {
	if s.update == nil {
		return nil
	}
	return s.update(entry)
}

func (s *stubTimeRepo) Delete(id int) error {
	if s.deleteFn == nil {
		return nil
	}
	return s.deleteFn(id)
}

type stubInvitationRepo struct {
	create            func(invitation *models.Invitation) error
	getUnusedByToken  func(token string) (*models.Invitation, error)
	hasUnusedForEmail func(email string) (bool, error)
	markUsed          func(id int) error
}

func (s *stubInvitationRepo) Create(invitation *models.Invitation) error {
	if s.create == nil {
		return nil
	}
	return s.create(invitation)
}

func (s *stubInvitationRepo) GetUnusedByToken(token string) (*models.Invitation, error) {
	if s.getUnusedByToken == nil {
		return nil, repositories.ErrInvitationNotFound
	}
	return s.getUnusedByToken(token)
}

func (s *stubInvitationRepo) HasUnusedForEmail(email string) (bool, error) {
	if s.hasUnusedForEmail == nil {
		return false, nil
	}
	return s.hasUnusedForEmail(email)
}

func (s *stubInvitationRepo) List() ([]models.Invitation, error) { return nil, nil }

func (s *stubInvitationRepo) Delete(id int) error { return nil }

func (s *stubInvitationRepo) MarkUsed(id int) error {
	if s.markUsed == nil {
		return nil
	}
	return s.markUsed(id)
}
