package diagnosis

import (
	"context"
	"errors"
)

var (
	// ErrEmptyResponse: el modelo respondió sin texto utilizable.
	ErrEmptyResponse = errors.New("diagnosis: empty response")
	ErrUpstream      = errors.New("diagnosis: upstream error")
)

// Request es un pedido de diagnóstico: prompt de texto y, opcional, una imagen.
type Request struct {
	Prompt        string
	Image         []byte
	ImageMIMEType string
}

// Assistant es el modelo generativo externo.
// Diagnose devuelve texto con secciones "Thai:" / "English:".
type Assistant interface {
	Translate(ctx context.Context, prompt string) (string, error)
	Diagnose(ctx context.Context, req Request) (string, error)
}
