package audit

import (
	"time"

	"github.com/google/uuid"
)

// LoadRecord is one successful configuration load. It carries key names
// only; values never leave the process.
type LoadRecord struct {
	ID           uuid.UUID `json:"id"`
	Environment  string    `json:"environment"`
	Keys         []string  `json:"keys"`
	EnvFile      string    `json:"envFile"`
	EnvFileFound bool      `json:"envFileFound"`
	LoadedAt     time.Time `json:"loadedAt"`
}
