package domain

import "errors"

// Errores de dominio (sin dependencias externas). Los casos de uso los envuelven
// con contexto vía fmt.Errorf("%w: ...") y los handlers los mapean a HTTP.
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrInvalidState      = errors.New("estado inválido para la operación")
	ErrInsufficientStock = errors.New("stock insuficiente")
	// ErrNoConversionDefined no existe conversión directa ni inversa entre las
	// unidades pedidas; la mutación que la necesita debe abortar completa, nunca
	// asumir factor 1:1.
	ErrNoConversionDefined = errors.New("conversión de unidades no definida")
	// ErrCalculation falla en la derivación del inventario esperado. Se propaga
	// siempre: cero solo es válido como saldo de apertura genuino, nunca como
	// sustituto de un valor que no se pudo calcular.
	ErrCalculation = errors.New("error de cálculo de inventario esperado")
	// ErrIncompleteCheck envío de un conteo con líneas sin cantidad física.
	ErrIncompleteCheck    = errors.New("conteo incompleto")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
)
