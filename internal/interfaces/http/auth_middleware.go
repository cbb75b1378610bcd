package http

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Peminjaman-api/internal/application/dto"
	"github.com/jhoicas/Peminjaman-api/internal/application/loan"
	"github.com/jhoicas/Peminjaman-api/internal/domain"
	"github.com/jhoicas/Peminjaman-api/pkg/jwt"
)

// Locals keys para UserID y Username en Fiber.
const (
	LocalUserID   = "user_id"
	LocalUsername = "username"
)

// AuthCookie nombre de la cookie httpOnly que transporta el token.
const AuthCookie = "authToken"

// TokenAuthenticator valida un token y devuelve sus claims (incluye la lista de revocados).
type TokenAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*jwt.Claims, error)
}

// AuthMiddleware acepta el token desde la cookie authToken o, si no existe, desde el header
// Authorization: Bearer. Carga UserID y Username en c.Locals.
func AuthMiddleware(auth TokenAuthenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := tokenFromRequest(c)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.NewError("MISSING_TOKEN", "token de acceso requerido"))
		}
		claims, err := auth.Authenticate(c.Context(), tokenString)
		if err != nil {
			switch {
			case errors.Is(err, jwt.ErrTokenExpired):
				return c.Status(fiber.StatusUnauthorized).JSON(dto.NewError("TOKEN_EXPIRED", "el token expiró, inicie sesión de nuevo"))
			case errors.Is(err, domain.ErrStorage):
				return c.Status(fiber.StatusInternalServerError).JSON(dto.NewError("INTERNAL", "no se pudo verificar el token"))
			default:
				return c.Status(fiber.StatusForbidden).JSON(dto.NewError("INVALID_TOKEN", "token inválido"))
			}
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalUsername, claims.Username)
		return c.Next()
	}
}

// tokenFromRequest prioriza la cookie sobre el header.
func tokenFromRequest(c *fiber.Ctx) string {
	if tok := strings.TrimSpace(c.Cookies(AuthCookie)); tok != "" {
		return tok
	}
	parts := strings.SplitN(c.Get(fiber.HeaderAuthorization), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) int64 {
	id, _ := c.Locals(LocalUserID).(int64)
	return id
}

// GetUsername devuelve el Username del contexto (después del middleware de auth).
func GetUsername(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUsername).(string)
	return s
}

func actorFrom(c *fiber.Ctx) loan.Actor {
	return loan.Actor{UserID: GetUserID(c), Username: GetUsername(c)}
}
