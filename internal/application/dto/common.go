package dto

// ErrorResponse cuerpo de error HTTP.
// Error repite Message para la capa de presentación, que lee ese campo.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// NewError construye un ErrorResponse con Error = Message.
func NewError(code, message string) ErrorResponse {
	return ErrorResponse{Code: code, Message: message, Error: message}
}

// LineErrorDetail detalle de la línea que provocó el fallo de un préstamo o devolución.
type LineErrorDetail struct {
	Reason      string `json:"reason"`
	Category    string `json:"kategoriAlat"`
	Name        string `json:"namaAlat"`
	Requested   int    `json:"requested"`
	Available   *int   `json:"available,omitempty"`
	Loaned      *int   `json:"loaned,omitempty"`
	Outstanding *int   `json:"outstanding,omitempty"`
}

// FieldErrorDetail detalle de un campo inválido.
type FieldErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
