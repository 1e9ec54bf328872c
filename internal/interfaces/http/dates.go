package http

import "time"

const dateLayout = "2006-01-02"

// parseDate convierte una fecha de negocio "YYYY-MM-DD". Vacío devuelve el
// cero de time.Time: los casos de uso lo interpretan como "hoy".
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, s)
}
