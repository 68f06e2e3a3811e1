package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"shift-planner/internal/apperror"
	"shift-planner/internal/models"
	"shift-planner/internal/repositories"
)

// InvitationServiceInterface определяет методы сервиса приглашений
type InvitationServiceInterface interface {
	Create(creatorID int, email, name, role, department string) (*models.Invitation, error)
	List() ([]models.Invitation, error)
	Delete(id int) error
	Verify(token string) (*models.Invitation, error)
	Register(token, password string) (string, *models.Employee, error)
}

// InvitationService реализует регистрацию по приглашениям: менеджер создает
// приглашение с uuid-токеном, приглашенный по ссылке задает пароль и сразу
// получает рабочий JWT.
type InvitationService struct {
	invitationRepo repositories.InvitationRepositoryInterface
	employeeRepo   repositories.EmployeeRepositoryInterface
	tokenIssuer    TokenIssuer
	frontendURL    string
	ttl            time.Duration
	defaultBalance float64
}

// NewInvitationService создает новый экземпляр InvitationService
func NewInvitationService(
	invitationRepo repositories.InvitationRepositoryInterface,
	employeeRepo repositories.EmployeeRepositoryInterface,
	tokenIssuer TokenIssuer,
	frontendURL string,
	ttl time.Duration,
	defaultBalance float64,
) *InvitationService {
	return &InvitationService{
		invitationRepo: invitationRepo,
		employeeRepo:   employeeRepo,
		tokenIssuer:    tokenIssuer,
		frontendURL:    frontendURL,
		ttl:            ttl,
		defaultBalance: defaultBalance,
	}
}

// Create создает приглашение. Email не должен принадлежать существующему
// сотруднику и не должен иметь действующего приглашения.
func (s *InvitationService) Create(creatorID int, email, name, role, department string) (*models.Invitation, error) {
	if email == "" || name == "" {
		return nil, apperror.New(apperror.CodeValidation, "Email и имя обязательны")
	}
	if role == "" {
		role = models.RoleStaff
	}
	if role != models.RoleStaff && role != models.RoleManager {
		return nil, apperror.New(apperror.CodeValidation, "Неизвестная роль: "+role)
	}

	if _, err := s.employeeRepo.FindByEmail(email); err == nil {
		return nil, apperror.New(apperror.CodeConflict, "Сотрудник с таким email уже существует")
	} else if !errors.Is(err, repositories.ErrEmployeeNotFound) {
		return nil, fmt.Errorf("ошибка проверки email: %w", err)
	}

	pending, err := s.invitationRepo.HasUnusedForEmail(email)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, apperror.New(apperror.CodeConflict, "На этот email уже есть действующее приглашение")
	}

	invitation := &models.Invitation{
		Email:      email,
		Name:       name,
		Token:      uuid.NewString(),
		Role:       role,
		Department: department,
		ExpiresAt:  time.Now().Add(s.ttl),
		CreatedBy:  creatorID,
	}
	if err := s.invitationRepo.Create(invitation); err != nil {
		return nil, err
	}

	invitation.Link = s.inviteLink(invitation.Token)
	log.Printf("[InvitationService] Invitation %d created for %s by manager %d", invitation.ID, email, creatorID)
	return invitation, nil
}

// List возвращает все приглашения со ссылками для регистрации
func (s *InvitationService) List() ([]models.Invitation, error) {
	invitations, err := s.invitationRepo.List()
	if err != nil {
		return nil, err
	}
	for i := range invitations {
		if !invitations[i].Used {
			invitations[i].Link = s.inviteLink(invitations[i].Token)
		}
	}
	return invitations, nil
}

// Delete отзывает приглашение
func (s *InvitationService) Delete(id int) error {
	if err := s.invitationRepo.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrInvitationNotFound) {
			return apperror.New(apperror.CodeNotFound, "Приглашение не найдено")
		}
		return err
	}
	return nil
}

// Verify проверяет токен приглашения перед показом формы регистрации
func (s *InvitationService) Verify(token string) (*models.Invitation, error) {
	invitation, err := s.invitationRepo.GetUnusedByToken(token)
	if err != nil {
		if errors.Is(err, repositories.ErrInvitationNotFound) {
			return nil, apperror.New(apperror.CodeNotFound, "Приглашение не найдено или уже использовано")
		}
		return nil, err
	}
	if time.Now().After(invitation.ExpiresAt) {
		return nil, apperror.New(apperror.CodeInvalidState, "Срок действия приглашения истек")
	}
	return invitation, nil
}

// Register создает учетную запись по приглашению, помечает токен
// использованным и возвращает JWT для немедленного входа
func (s *InvitationService) Register(token, password string) (string, *models.Employee, error) {
	if len(password) < 8 {
		return "", nil, apperror.New(apperror.CodeValidation, "Пароль должен содержать минимум 8 символов")
	}

	invitation, err := s.Verify(token)
	if err != nil {
		return "", nil, err
	}

	employee := &models.Employee{
		Name:            invitation.Name,
		Email:           invitation.Email,
		Password:        password,
		Role:            invitation.Role,
		Department:      invitation.Department,
		VacationBalance: s.defaultBalance,
	}
	if err := s.employeeRepo.Create(employee); err != nil {
		return "", nil, fmt.Errorf("ошибка создания сотрудника по приглашению: %w", err)
	}

	if err := s.invitationRepo.MarkUsed(invitation.ID); err != nil {
		// Учетная запись уже создана, не откатываем регистрацию
		log.Printf("[InvitationService] Failed to mark invitation %d used: %v", invitation.ID, err)
	}

	jwtToken, err := s.tokenIssuer.IssueToken(employee)
	if err != nil {
		return "", nil, err
	}

	employee.Password = ""
	log.Printf("[InvitationService] Employee %d registered via invitation %d", employee.ID, invitation.ID)
	return jwtToken, employee, nil
}

func (s *InvitationService) inviteLink(token string) string {
	return fmt.Sprintf("%s/register?token=%s", s.frontendURL, token)
}
