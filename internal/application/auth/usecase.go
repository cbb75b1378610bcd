package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Peminjaman-api/internal/application/dto"
	"github.com/jhoicas/Peminjaman-api/internal/domain"
	"github.com/jhoicas/Peminjaman-api/internal/domain/entity"
	"github.com/jhoicas/Peminjaman-api/internal/domain/repository"
	"github.com/jhoicas/Peminjaman-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// TokenRevoker lista de tokens revocados (por jti) hasta su expiración.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// AuthUseCase casos de uso de autenticación: login, logout, verificación y alta de usuarios.
type AuthUseCase struct {
	userRepo repository.UserRepository
	revoker  TokenRevoker
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, revoker TokenRevoker, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, revoker: revoker, jwtCfg: jwtCfg}
}

// Login verifica username/password, genera JWT y retorna token + usuario.
// ErrUserNotFound si el usuario no existe; ErrUnauthorized si la contraseña no coincide.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, domain.Invalid("username", "usuario y contraseña son obligatorios")
	}
	user, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, claims, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Username, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		User:      dto.UserResponse{ID: user.ID, Username: user.Username},
		ExpiresAt: claims.Expiry(),
	}, nil
}

// Authenticate valida el token y comprueba que no esté revocado.
// Los errores de expiración se pueden distinguir con errors.Is(err, jwt.ErrTokenExpired).
func (uc *AuthUseCase) Authenticate(ctx context.Context, token string) (*jwt.Claims, error) {
	claims, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return nil, err
	}
	if uc.revoker != nil && claims.ID != "" {
		revoked, err := uc.revoker.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("check revocation: %w: %w", domain.ErrStorage, err)
		}
		if revoked {
			return nil, fmt.Errorf("%w: token revocado", domain.ErrUnauthorized)
		}
	}
	return claims, nil
}

// Logout revoca el token presentado hasta su expiración. Un token inválido o ya vencido
// no necesita revocarse y no es un error.
func (uc *AuthUseCase) Logout(ctx context.Context, token string) error {
	if token == "" || uc.revoker == nil {
		return nil
	}
	claims, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil || claims.ID == "" {
		return nil
	}
	ttl := time.Until(claims.Expiry())
	if ttl <= 0 {
		return nil
	}
	if err := uc.revoker.Revoke(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("revoke token: %w: %w", domain.ErrStorage, err)
	}
	return nil
}

// Status devuelve el usuario autenticado. ErrUnauthorized si ya no existe.
func (uc *AuthUseCase) Status(ctx context.Context, userID int64) (*dto.AuthStatusResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	return &dto.AuthStatusResponse{
		Authenticated: true,
		User:          dto.UserResponse{ID: user.ID, Username: user.Username},
	}, nil
}

// CreateUser hashea la contraseña con bcrypt y persiste el usuario.
// ErrDuplicate si el username ya existe.
func (uc *AuthUseCase) CreateUser(ctx context.Context, username, password string) (*dto.UserResponse, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, domain.Invalid("username", "es obligatorio")
	}
	if len(password) < 6 {
		return nil, domain.Invalid("password", "debe tener al menos 6 caracteres")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{Username: username, PasswordHash: string(hash), CreatedAt: time.Now()}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return &dto.UserResponse{ID: user.ID, Username: user.Username}, nil
}

// IsCredentialError indica si err proviene de credenciales incorrectas.
func IsCredentialError(err error) bool {
	return errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrUnauthorized)
}
