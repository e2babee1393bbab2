package notify

import (
	"github.com/sm8ta/station_control_console/internal/core/domain"
	"github.com/sm8ta/station_control_console/internal/core/ports"
)

// Fanout delivers every notification to each of its notifiers in order.
type Fanout []ports.Notifier

func (f Fanout) Notify(n domain.Notification) {
	for _, target := range f {
		if target != nil {
			target.Notify(n)
		}
	}
}
