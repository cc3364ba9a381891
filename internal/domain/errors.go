package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound       = errors.New("recurso no encontrado")
	ErrInvalidInput   = errors.New("entrada inválida")
	ErrUnauthorized   = errors.New("no autorizado")
	ErrMissingColumn  = errors.New("columna requerida ausente")
	ErrDuplicateKey   = errors.New("clave compuesta duplicada en el snapshot")
	ErrUpstreamStatus = errors.New("respuesta no exitosa de la API de Shopify")
)
