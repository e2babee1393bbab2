package notify

import (
	"github.com/sm8ta/station_control_console/internal/core/domain"
	"github.com/sm8ta/station_control_console/internal/core/ports"
)

// LogNotifier records notifications in the application log.
type LogNotifier struct {
	logger ports.LoggerPort
}

func NewLogNotifier(logger ports.LoggerPort) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (l *LogNotifier) Notify(n domain.Notification) {
	fields := map[string]interface{}{
		"title":   n.Title,
		"message": n.Message,
		"color":   n.Color,
	}
	if n.Color == domain.Red {
		l.logger.Warn("Notification shown", fields)
		return
	}
	l.logger.Info("Notification shown", fields)
}
