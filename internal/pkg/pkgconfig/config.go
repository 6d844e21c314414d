package pkgconfig

import (
	"io"
	"time"
)

// Config reads typed configuration values by dotted key.
// Missing keys return the zero value of the requested type.
type Config interface {
	io.Closer

	GetInt(key string) int64
	GetBool(key string) bool
	GetFloat(key string) float64
	GetString(key string) string
	GetBinary(key string) []byte
	GetArray(key string) []string
	GetMap(key string) map[string]string
	GetDuration(key string) time.Duration
}
