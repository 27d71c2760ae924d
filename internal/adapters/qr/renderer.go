// Package qr renders QR code payloads as PNG images.
package qr

import (
	"encoding/base64"
	"errors"

	qrcode "github.com/skip2/go-qrcode"
)

// Image size bounds in pixels.
const (
	MinSize     = 128
	MaxSize     = 1024
	DefaultSize = 256
)

// ErrEmptyPayload is returned when there is nothing to encode.
var ErrEmptyPayload = errors.New("qr payload cannot be empty")

// Renderer encodes payloads with medium error recovery.
type Renderer struct {
	level qrcode.RecoveryLevel
}

// NewRenderer returns a Renderer using medium (15%) error recovery.
func NewRenderer() *Renderer {
	return &Renderer{level: qrcode.Medium}
}

// ClampSize maps a requested size into [MinSize, MaxSize]; 0 means DefaultSize.
func ClampSize(size int) int {
	switch {
	case size == 0:
		return DefaultSize
	case size < MinSize:
		return MinSize
	case size > MaxSize:
		return MaxSize
	}
	return size
}

// PNG renders payload as a square PNG of the clamped size.
// PRE: payload is non-empty
// POST: returns PNG bytes
func (r *Renderer) PNG(payload string, size int) ([]byte, error) {
	if payload == "" {
		return nil, ErrEmptyPayload
	}
	return qrcode.Encode(payload, r.level, ClampSize(size))
}

// DataURL renders payload and wraps it as a data:image/png;base64 URL for inline display.
func (r *Renderer) DataURL(payload string, size int) (string, error) {
	png, err := r.PNG(payload, size)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
