package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Peminjaman-api/internal/application/auth"
	"github.com/jhoicas/Peminjaman-api/internal/application/inventory"
	"github.com/jhoicas/Peminjaman-api/internal/application/loan"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	KomoditasUC  *inventory.KomoditasUseCase
	LoanUC       *loan.LoanUseCase
	ReceiptUC    *loan.ReceiptUseCase
	CookieSecure bool
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.CookieSecure)
	api.Post("/login", authHandler.Login)
	api.Post("/logout", authHandler.Logout)

	// Rutas protegidas (cookie authToken o Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.AuthUC))
	protected.Get("/auth/status", authHandler.Status)

	// Catálogo
	komoditasHandler := NewKomoditasHandler(deps.KomoditasUC)
	protected.Post("/komoditas", komoditasHandler.Create)
	protected.Get("/komoditas", komoditasHandler.List)

	// Préstamos
	peminjamanHandler := NewPeminjamanHandler(deps.LoanUC, deps.ReceiptUC)
	protected.Post("/peminjaman", peminjamanHandler.Create)
	protected.Get("/peminjaman", peminjamanHandler.List)
	protected.Get("/peminjaman/:id", peminjamanHandler.GetByID)
	protected.Get("/peminjaman/:id/receipt", peminjamanHandler.Receipt)
	protected.Patch("/peminjaman/:id/return", peminjamanHandler.Return)
}
