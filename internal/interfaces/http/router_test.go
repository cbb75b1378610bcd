package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Peminjaman-api/internal/application/auth"
	"github.com/jhoicas/Peminjaman-api/internal/application/dto"
	"github.com/jhoicas/Peminjaman-api/internal/application/inventory"
	"github.com/jhoicas/Peminjaman-api/internal/application/loan"
	"github.com/jhoicas/Peminjaman-api/internal/infrastructure/cache"
	"github.com/jhoicas/Peminjaman-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Peminjaman-api/internal/infrastructure/sqlite"
	apphttp "github.com/jhoicas/Peminjaman-api/internal/interfaces/http"
)

// newAPI levanta el router completo sobre SQLite en memoria con un usuario admin.
func newAPI(t *testing.T) *fiber.App {
	t.Helper()
	ctx := context.Background()
	db, err := sqlite.Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqlite.Migrate(ctx, db))

	store := cache.NewMemoryStore()
	txRunner := sqlite.NewTxRunner(db)
	loans := sqlite.NewPeminjamanRepository(db)

	authUC := auth.NewAuthUseCase(sqlite.NewUserRepository(db), store, auth.JWTConfig{
		Secret: testJWTSecret, ExpMinutes: 120, Issuer: testIssuer,
	})
	_, err = authUC.CreateUser(ctx, "admin", "admin123")
	require.NoError(t, err)

	app := fiber.New()
	app.Use(apphttp.RequestLogger(zerolog.Nop()))
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:      authUC,
		KomoditasUC: inventory.NewKomoditasUseCase(txRunner, sqlite.NewKomoditasRepository(db)),
		LoanUC:      loan.NewLoanUseCase(txRunner, loans, inventory.NewReconciler(), store, time.Hour, nil, zerolog.Nop()),
		ReceiptUC:   loan.NewReceiptUseCase(loans, pdf.NewReceiptGenerator("Peminjaman")),
	})
	return app
}

type client struct {
	t     *testing.T
	app   *fiber.App
	token string
}

func (c *client) do(method, path string, body any, headers ...string) (*http.Response, []byte) {
	c.t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := c.app.Test(req, -1)
	require.NoError(c.t, err)
	raw, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, raw
}

func login(t *testing.T, app *fiber.App) *client {
	t.Helper()
	c := &client{t: t, app: app}
	resp, raw := c.do(http.MethodPost, "/api/login", dto.LoginRequest{Username: "admin", Password: "admin123"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	var out dto.LoginResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	require.NotEmpty(t, out.Token)

	var cookie *http.Cookie
	for _, ck := range resp.Cookies() {
		if ck.Name == apphttp.AuthCookie {
			cookie = ck
		}
	}
	require.NotNil(t, cookie, "el login fija la cookie authToken")
	assert.True(t, cookie.HttpOnly)

	c.token = out.Token
	return c
}

func TestAPI_LoginIncorrecto(t *testing.T) {
	app := newAPI(t)
	c := &client{t: t, app: app}
	resp, raw := c.do(http.MethodPost, "/api/login", dto.LoginRequest{Username: "admin", Password: "nope"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, string(raw), `"error"`)

	resp, _ = c.do(http.MethodGet, "/api/peminjaman", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAPI_CicloCompletoDePrestamo(t *testing.T) {
	app := newAPI(t)
	c := login(t, app)

	// Catálogo: crear y reponer.
	resp, raw := c.do(http.MethodPost, "/api/komoditas", dto.CreateKomoditasRequest{DeviceCategory: "Laptop", DeviceName: "Dell", Quantity: 3})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	resp, raw = c.do(http.MethodPost, "/api/komoditas", dto.CreateKomoditasRequest{DeviceCategory: "laptop", DeviceName: "DELL", Quantity: 2})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var restock dto.KomoditasMutationResponse
	require.NoError(t, json.Unmarshal(raw, &restock))
	require.NotNil(t, restock.NewTotal)
	assert.Equal(t, 5, *restock.NewTotal)

	// Préstamo que excede el stock: 400 con detalle de la línea.
	over := dto.CreatePeminjamanRequest{
		NamaPeminjam: "Budi", TanggalPeminjaman: "2026-10-01", NamaProgram: "Workshop",
		RencanaPengembalian: "2026-10-03",
		AlatYangDipinjam:    []dto.LoanLineDTO{{Category: "Laptop", Name: "Dell", Quantity: 9}},
	}
	resp, raw = c.do(http.MethodPost, "/api/peminjaman", over)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode, string(raw))
	var errResp struct {
		Code    string              `json:"code"`
		Details dto.LineErrorDetail `json:"details"`
	}
	require.NoError(t, json.Unmarshal(raw, &errResp))
	assert.Equal(t, "INSUFFICIENT_QUANTITY", errResp.Code)
	require.NotNil(t, errResp.Details.Available)
	assert.Equal(t, 5, *errResp.Details.Available)

	// Préstamo válido.
	over.AlatYangDipinjam[0].Quantity = 3
	resp, raw = c.do(http.MethodPost, "/api/peminjaman", over, apphttp.HeaderIdempotencyKey, "k-1")
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var created dto.CreatePeminjamanResponse
	require.NoError(t, json.Unmarshal(raw, &created))

	resp, _ = c.do(http.MethodPost, "/api/peminjaman", over, apphttp.HeaderIdempotencyKey, "k-1")
	assert.Equal(t, http.StatusConflict, resp.StatusCode, "reintento con la misma clave")

	// Devolución parcial y luego total.
	path := "/api/peminjaman/" + itoa(created.ID)
	resp, raw = c.do(http.MethodPatch, path+"/return", dto.ReturnPeminjamanRequest{
		ReturnedDevices: []dto.ReturnLineDTO{{Category: "Laptop", Name: "Dell", ReturnedCount: 1}},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var partial dto.ReturnPeminjamanResponse
	require.NoError(t, json.Unmarshal(raw, &partial))
	assert.Equal(t, "partial_return", partial.Status)

	resp, raw = c.do(http.MethodPatch, path+"/return", dto.ReturnPeminjamanRequest{
		ReturnedDevices: []dto.ReturnLineDTO{{Category: "Laptop", Name: "Dell", ReturnedCount: 5}},
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode, string(raw))
	assert.Contains(t, string(raw), "INVALID_RETURN")

	resp, raw = c.do(http.MethodPatch, path+"/return", dto.ReturnPeminjamanRequest{
		ReturnedDevices: []dto.ReturnLineDTO{{Category: "Laptop", Name: "Dell", ReturnedCount: 2}},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	// Lectura.
	resp, raw = c.do(http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got dto.PeminjamanResponse
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "returned", got.Status)
	assert.Len(t, got.ReturnDetails, 2)
	assert.Equal(t, "admin", got.NamaOperator)

	resp, raw = c.do(http.MethodGet, "/api/komoditas?name=del", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var items []dto.KomoditasResponse
	require.NoError(t, json.Unmarshal(raw, &items))
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].AvailableQuantity)
	assert.Equal(t, 0, items[0].LoanedQuantity)

	resp, raw = c.do(http.MethodGet, "/api/peminjaman?status=returned", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []dto.PeminjamanResponse
	require.NoError(t, json.Unmarshal(raw, &list))
	assert.Len(t, list, 1)

	resp, raw = c.do(http.MethodGet, path+"/receipt", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))

	resp, raw = c.do(http.MethodGet, "/api/peminjaman/999", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	var notFound dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &notFound))
	assert.Equal(t, "NOT_FOUND", notFound.Code)
	assert.Equal(t, "préstamo 999 no encontrado", notFound.Message)
	resp, _ = c.do(http.MethodGet, "/api/peminjaman/abc", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_LogoutRevocaElToken(t *testing.T) {
	app := newAPI(t)
	c := login(t, app)

	resp, raw := c.do(http.MethodGet, "/api/auth/status", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var st dto.AuthStatusResponse
	require.NoError(t, json.Unmarshal(raw, &st))
	assert.True(t, st.Authenticated)
	assert.Equal(t, "admin", st.User.Username)

	resp, _ = c.do(http.MethodPost, "/api/logout", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, raw = c.do(http.MethodGet, "/api/auth/status", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, string(raw), "INVALID_TOKEN")
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
