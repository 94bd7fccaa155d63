package service

import (
	"errors"
	"strings"

	"volunteerhub/config"
	"volunteerhub/internal/auth"
	"volunteerhub/internal/domain"
	"volunteerhub/internal/models"
	"volunteerhub/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailExists  = errors.New("email already registered")
	ErrInvalidCreds = errors.New("invalid email or password")
	ErrInvalidRole  = errors.New("role must be volunteer or ngo")
)

type AuthService struct {
	cfg      *config.Config
	userRepo *repository.UserRepository
}

func NewAuthService(cfg *config.Config, userRepo *repository.UserRepository) *AuthService {
	return &AuthService{cfg: cfg, userRepo: userRepo}
}

// RegisterInput carries the signup form. Organization fields are only
// persisted for NGO accounts.
type RegisterInput struct {
	Email                   string
	Password                string
	Name                    string
	Role                    string
	Skills                  []string
	Location                string
	Bio                     string
	OrganizationName        string
	OrganizationDescription string
	WebsiteURL              string
}

func (s *AuthService) Register(in RegisterInput) (*models.User, string, string, error) {
	if !domain.ValidRole(in.Role) {
		return nil, "", "", ErrInvalidRole
	}
	_, err := s.userRepo.GetByEmail(in.Email)
	if err == nil {
		return nil, "", "", ErrEmailExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", "", err
	}
	u := &models.User{
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         in.Name,
		Role:         in.Role,
		Skills:       models.StringList(in.Skills),
		Location:     in.Location,
		Bio:          in.Bio,
	}
	if u.IsNGO() {
		u.OrganizationName = in.OrganizationName
		u.OrganizationDescription = in.OrganizationDescription
		u.WebsiteURL = in.WebsiteURL
	}
	if err := s.userRepo.Create(u); err != nil {
		return nil, "", "", err
	}
	access, err := auth.GenerateAccessToken(&s.cfg.JWT, u.ID, u.Email, u.Role)
	if err != nil {
		return u, "", "", err
	}
	refresh, err := auth.GenerateRefreshToken(&s.cfg.JWT, u.ID)
	if err != nil {
		return u, access, "", err
	}
	return u, access, refresh, nil
}

func (s *AuthService) Login(email, password string) (*models.User, string, string, error) {
	u, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", "", ErrInvalidCreds
		}
		return nil, "", "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", "", ErrInvalidCreds
	}
	access, _ := auth.GenerateAccessToken(&s.cfg.JWT, u.ID, u.Email, u.Role)
	refresh, _ := auth.GenerateRefreshToken(&s.cfg.JWT, u.ID)
	return u, access, refresh, nil
}

// LoginWithGoogle finds or creates a user by Google ID and returns user +
// tokens + isNew flag. role applies only to brand-new accounts; an empty or
// invalid role defaults to volunteer. Role is immutable afterwards.
func (s *AuthService) LoginWithGoogle(googleID, email, name, role string) (*models.User, string, string, bool, error) {
	u, err := s.userRepo.GetByGoogleID(googleID)
	if err == nil {
		access, _ := auth.GenerateAccessToken(&s.cfg.JWT, u.ID, u.Email, u.Role)
		refresh, _ := auth.GenerateRefreshToken(&s.cfg.JWT, u.ID)
		return u, access, refresh, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", "", false, err
	}
	// Link Google to an existing email account.
	existing, _ := s.userRepo.GetByEmail(email)
	if existing != nil {
		gid := googleID
		existing.GoogleID = &gid
		if err := s.userRepo.Update(existing); err != nil {
			return nil, "", "", false, err
		}
		access, _ := auth.GenerateAccessToken(&s.cfg.JWT, existing.ID, existing.Email, existing.Role)
		refresh, _ := auth.GenerateRefreshToken(&s.cfg.JWT, existing.ID)
		return existing, access, refresh, false, nil
	}
	if !domain.ValidRole(role) {
		role = domain.RoleVolunteer
	}
	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}
	gid := googleID
	u = &models.User{
		Email:    email,
		Name:     name,
		GoogleID: &gid,
		Role:     role,
	}
	if err := s.userRepo.Create(u); err != nil {
		return nil, "", "", false, err
	}
	access, _ := auth.GenerateAccessToken(&s.cfg.JWT, u.ID, u.Email, u.Role)
	refresh, _ := auth.GenerateRefreshToken(&s.cfg.JWT, u.ID)
	return u, access, refresh, true, nil
}

// ChangePassword updates the user's password after verifying the current one.
func (s *AuthService) ChangePassword(userID uint, currentPassword, newPassword string) error {
	u, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrInvalidCreds
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return s.userRepo.Update(u)
}

// RefreshToken exchanges a valid refresh token for a new token pair.
func (s *AuthService) RefreshToken(refreshToken string) (string, string, error) {
	userID, err := auth.ParseRefreshToken(&s.cfg.JWT, refreshToken)
	if err != nil {
		return "", "", err
	}
	u, err := s.userRepo.GetByID(userID)
	if err != nil {
		return "", "", auth.ErrInvalidToken
	}
	access, err := auth.GenerateAccessToken(&s.cfg.JWT, u.ID, u.Email, u.Role)
	if err != nil {
		return "", "", err
	}
	refresh, err := auth.GenerateRefreshToken(&s.cfg.JWT, u.ID)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}
