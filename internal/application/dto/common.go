package dto

import "time"

// RangoFechas convierte filtros "YYYY-MM-DD" en límites de rango. El límite
// superior es inclusivo: cubre el día completo. Cadenas vacías devuelven nil.
func RangoFechas(desde, hasta string) (*time.Time, *time.Time, error) {
	var d, h *time.Time
	if desde != "" {
		t, err := time.Parse("2006-01-02", desde)
		if err != nil {
			return nil, nil, err
		}
		d = &t
	}
	if hasta != "" {
		t, err := time.Parse("2006-01-02", hasta)
		if err != nil {
			return nil, nil, err
		}
		fin := t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		h = &fin
	}
	return d, h, nil
}

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

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
