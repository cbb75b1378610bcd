package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Peminjaman-api/internal/application/dto"
	"github.com/jhoicas/Peminjaman-api/internal/application/inventory"
)

// KomoditasHandler maneja el catálogo de equipos (protegido).
type KomoditasHandler struct {
	uc *inventory.KomoditasUseCase
}

// NewKomoditasHandler construye el handler.
func NewKomoditasHandler(uc *inventory.KomoditasUseCase) *KomoditasHandler {
	return &KomoditasHandler{uc: uc}
}

// Create godoc
// @Summary      Crear o reponer komoditas
// @Description  Si ya existe un ítem con la misma categoría y nombre (sin distinguir mayúsculas)
//
//	se suma la cantidad a total y disponible; si no, se crea con prestado = 0.
//
// @Tags         komoditas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateKomoditasRequest  true  "device_category, device_name, quantity"
// @Success      200   {object}  dto.KomoditasMutationResponse  "repuesto"
// @Success      201   {object}  dto.KomoditasMutationResponse  "creado"
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/komoditas [post]
func (h *KomoditasHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateKomoditasRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("INVALID_BODY", "cuerpo inválido"))
	}
	out, err := h.uc.CreateOrRestock(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	status := fiber.StatusOK
	if out.Created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(out)
}

// List godoc
// @Summary      Listar komoditas
// @Tags         komoditas
// @Security     Bearer
// @Produce      json
// @Param        category  query  string  false  "subcadena de la categoría"
// @Param        name      query  string  false  "subcadena del nombre"
// @Success      200  {array}   dto.KomoditasResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/komoditas [get]
func (h *KomoditasHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context(), c.Query("category"), c.Query("name"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}
