package ports

import "github.com/sm8ta/station_control_console/internal/core/domain"

// Notifier shows a transient message to the user. Delivery is fire and
// forget.
type Notifier interface {
	Notify(n domain.Notification)
}

// Inbox is a Notifier whose messages are collected for later pickup.
type Inbox interface {
	Notifier
	Drain() []domain.Notification
}
