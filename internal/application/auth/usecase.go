package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/pkg/token"
)

// TokenConfig configuración para emisión de tokens de acceso.
type TokenConfig struct {
	Secret     string
	ExpMinutes int // <= 0: sin vencimiento, solo revoca el logout
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: login, logout y perfil propio.
type AuthUseCase struct {
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository
	tokenCfg  TokenConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, tokenRepo repository.TokenRepository, tokenCfg TokenConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, tokenRepo: tokenRepo, tokenCfg: tokenCfg}
}

// Login verifica email/password, registra un token de acceso y actualiza last_login.
// Usuario inexistente y password incorrecto devuelven el mismo ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != 1 {
		return nil, domain.ErrForbidden
	}

	now := time.Now()
	at := &entity.AuthToken{
		ID:       uuid.New().String(),
		UserID:   user.ID,
		IssuedAt: now,
	}
	if err := uc.tokenRepo.Create(ctx, at); err != nil {
		return nil, err
	}
	signed, err := token.Generate(uc.tokenCfg.Secret, at.ID, user.ID, user.Role, uc.tokenCfg.Issuer, uc.tokenCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}

	user.LastLogin = &now
	user.UpdatedAt = now
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Message: "Login successful",
		User:    *toUserResponse(user),
		Token:   signed,
	}, nil
}

// Logout revoca todos los tokens del usuario: cualquier token emitido deja de resolver.
func (uc *AuthUseCase) Logout(ctx context.Context, userID string) error {
	return uc.tokenRepo.DeleteByUser(ctx, userID)
}

// Profile devuelve el usuario autenticado.
func (uc *AuthUseCase) Profile(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

// UpdateProfile edita nombre/email del usuario autenticado. La unicidad de email excluye
// su propia fila; password vacío deja la contraseña intacta, si viene se rehashea.
func (uc *AuthUseCase) UpdateProfile(ctx context.Context, userID string, in dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Email != user.Email {
		other, err := uc.userRepo.GetByEmail(ctx, in.Email)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != user.ID {
			return nil, domain.ErrEmailAlreadyExists
		}
	}
	user.Name = in.Name
	user.Email = in.Email
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		Image:     u.Image,
		Status:    u.Status,
		LastLogin: u.LastLogin,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
