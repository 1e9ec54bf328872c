package auth

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/ObraStock-api/internal/application/dto"
	"github.com/jhoicas/ObraStock-api/internal/domain"
	"github.com/jhoicas/ObraStock-api/internal/domain/entity"
	"github.com/jhoicas/ObraStock-api/internal/domain/repository"
	pkgjwt "github.com/jhoicas/ObraStock-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	userRepo       repository.UserRepository
	contractorRepo repository.ContractorRepository
	jwtCfg         JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, contractorRepo repository.ContractorRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, contractorRepo: contractorRepo, jwtCfg: jwtCfg}
}

// RegisterUser crea un usuario: hashea password con bcrypt y persiste.
// El rol contractor exige un contratista existente; los demás roles no llevan.
func (uc *AuthUseCase) RegisterUser(in dto.RegisterRequest) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || len(in.Password) < 8 {
		return nil, domain.ErrInvalidInput
	}
	if existing, _ := uc.userRepo.FindByEmail(email); existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	role := in.Role
	if role == "" {
		role = entity.RoleContractor
	}
	switch role {
	case entity.RoleManager, entity.RoleAuditor:
		if in.ContractorID != "" {
			return nil, domain.ErrInvalidInput
		}
	case entity.RoleContractor:
		if in.ContractorID == "" {
			return nil, domain.ErrInvalidInput
		}
		if _, err := uc.contractorRepo.GetByID(in.ContractorID); err != nil {
			return nil, err
		}
	default:
		return nil, domain.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := in.Name
	if name == "" {
		name = email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		ContractorID: in.ContractorID,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByEmail(strings.ToLower(strings.TrimSpace(in.Email)))
	if err == domain.ErrNotFound {
		return nil, domain.ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}
	token, err := pkgjwt.Generate(uc.jwtCfg.Secret, user.ID, user.ContractorID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		Role:         u.Role,
		ContractorID: u.ContractorID,
		Status:       u.Status,
		CreatedAt:    u.CreatedAt,
	}
}
