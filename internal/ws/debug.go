package ws

import (
	"log"

	"github.com/supplysight/sync-agent/internal/config"
)

func debugLog(cfg *config.Config, format string, args ...interface{}) {
	if cfg.Debug {
		log.Printf("[DEBUG] "+format, args...)
	}
}
