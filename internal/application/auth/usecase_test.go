package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ObraStock-api/internal/application/auth"
	"github.com/jhoicas/ObraStock-api/internal/application/dto"
	"github.com/jhoicas/ObraStock-api/internal/domain"
	"github.com/jhoicas/ObraStock-api/internal/domain/entity"
	"github.com/jhoicas/ObraStock-api/internal/testutil/memrepo"
	pkgjwt "github.com/jhoicas/ObraStock-api/pkg/jwt"
)

var jwtCfg = auth.JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "obrastock-test"}

func newAuthUseCase(s *memrepo.Store) *auth.AuthUseCase {
	return auth.NewAuthUseCase(&memrepo.UserRepo{S: s}, &memrepo.ContractorRepo{S: s}, jwtCfg)
}

// TestAuth_RegistroYLogin alta de manager y login con claims en el token.
func TestAuth_RegistroYLogin(t *testing.T) {
	s := memrepo.NewStore()
	uc := newAuthUseCase(s)

	user, err := uc.RegisterUser(dto.RegisterRequest{
		Email: "Gerente@obra.co", Password: "secreto-123", Name: "Gerente", Role: entity.RoleManager,
	})
	require.NoError(t, err)
	assert.Equal(t, "gerente@obra.co", user.Email, "el email se normaliza")

	resp, err := uc.Login(dto.LoginRequest{Email: "gerente@obra.co", Password: "secreto-123"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	claims, err := pkgjwt.Parse(jwtCfg.Secret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, entity.RoleManager, claims.Role)
	assert.Empty(t, claims.ContractorID)
}

// TestAuth_ContractorLlevaSuContratista el rol contractor exige contratista
// existente y el claim viaja en el token.
func TestAuth_ContractorLlevaSuContratista(t *testing.T) {
	s := memrepo.NewStore()
	s.Contractors["ct-1"] = &entity.Contractor{ID: "ct-1", Name: "Construcciones Díaz", IsActive: true}
	uc := newAuthUseCase(s)

	_, err := uc.RegisterUser(dto.RegisterRequest{
		Email: "obrero@obra.co", Password: "secreto-123", Role: entity.RoleContractor,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "contractor sin contratista se rechaza")

	_, err = uc.RegisterUser(dto.RegisterRequest{
		Email: "obrero@obra.co", Password: "secreto-123", Role: entity.RoleContractor, ContractorID: "ct-9",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	user, err := uc.RegisterUser(dto.RegisterRequest{
		Email: "obrero@obra.co", Password: "secreto-123", Role: entity.RoleContractor, ContractorID: "ct-1",
	})
	require.NoError(t, err)

	resp, err := uc.Login(dto.LoginRequest{Email: "obrero@obra.co", Password: "secreto-123"})
	require.NoError(t, err)
	claims, err := pkgjwt.Parse(jwtCfg.Secret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "ct-1", claims.ContractorID)
	assert.Equal(t, user.ID, claims.UserID)
}

// TestAuth_CredencialesInvalidas password errado y email inexistente devuelven
// el mismo error opaco.
func TestAuth_CredencialesInvalidas(t *testing.T) {
	s := memrepo.NewStore()
	uc := newAuthUseCase(s)
	_, err := uc.RegisterUser(dto.RegisterRequest{
		Email: "a@b.co", Password: "secreto-123", Role: entity.RoleAuditor,
	})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "a@b.co", Password: "otra-cosa"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(dto.LoginRequest{Email: "nadie@b.co", Password: "secreto-123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// TestAuth_EmailDuplicado el segundo registro con el mismo email falla.
func TestAuth_EmailDuplicado(t *testing.T) {
	uc := newAuthUseCase(memrepo.NewStore())
	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "a@b.co", Password: "secreto-123", Role: entity.RoleManager})
	require.NoError(t, err)
	_, err = uc.RegisterUser(dto.RegisterRequest{Email: "a@b.co", Password: "secreto-123", Role: entity.RoleManager})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}
