package auth

import (
	"github.com/jcastano/control-inventario/internal/application/dto"
	"github.com/jcastano/control-inventario/internal/domain"
	"github.com/jcastano/control-inventario/internal/domain/entity"
	"github.com/jcastano/control-inventario/internal/domain/repository"
	"github.com/jcastano/control-inventario/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de sesión: login, logout y cambio de contraseña.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Login verifica username/password, emite un token firmado y lo persiste como
// credencial de sesión vigente. El token emitido reemplaza al anterior: un
// login nuevo invalida la sesión previa del mismo usuario.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByUsername(in.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.IsSuperadmin, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	if err := uc.userRepo.UpdateToken(user.ID, &token); err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

// Logout borra la credencial de sesión: el token deja de resolver a un usuario
// aunque su firma siga siendo válida.
func (uc *AuthUseCase) Logout(user *entity.User) error {
	if user == nil {
		return domain.ErrUnauthorized
	}
	return uc.userRepo.UpdateToken(user.ID, nil)
}

// ChangePassword cambia la contraseña del propio usuario verificando la
// anterior, y cierra la sesión vigente para forzar un login nuevo.
func (uc *AuthUseCase) ChangePassword(user *entity.User, in dto.ChangePasswordRequest) error {
	if user == nil {
		return domain.ErrUnauthorized
	}
	if in.NewPassword == "" {
		return domain.ErrInvalidInput
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.OldPassword)); err != nil {
		return domain.ErrUnauthorized
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := uc.userRepo.UpdatePassword(user.ID, string(hash)); err != nil {
		return err
	}
	return uc.userRepo.UpdateToken(user.ID, nil)
}

// ResetPassword fija la contraseña de otro usuario (operación de superadmin,
// el guard HTTP lo garantiza) y cierra su sesión vigente.
func (uc *AuthUseCase) ResetPassword(userID int64, in dto.ResetPasswordRequest) error {
	if in.NewPassword == "" {
		return domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := uc.userRepo.UpdatePassword(user.ID, string(hash)); err != nil {
		return err
	}
	return uc.userRepo.UpdateToken(user.ID, nil)
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:           u.ID,
		Username:     u.Username,
		IsSuperadmin: u.IsSuperadmin,
	}
}
