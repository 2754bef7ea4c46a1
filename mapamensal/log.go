package mapamensal

import (
	"go.uber.org/zap"

	"github.com/corregedoria/procedimentos-api/logging"
)

// logger is resolved on use so it follows the global set by config.New
func logger() *zap.SugaredLogger {
	return logging.New("mapamensal")
}
