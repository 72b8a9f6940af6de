package dto

// Valores de Envelope.Status.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"omitempty,min=1,max=100"`
	Offset int `query:"offset" validate:"omitempty,min=0"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total,omitempty"`
}

// Envelope es el cuerpo de toda respuesta HTTP.
// Detail solo se llena en desarrollo; Fields con errores de validación.
type Envelope struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Code    string            `json:"code,omitempty"`
	Data    interface{}       `json:"data,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
	Detail  string            `json:"detail,omitempty"`
}
