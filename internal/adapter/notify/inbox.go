package notify

import (
	"sync"

	"github.com/sm8ta/station_control_console/internal/core/domain"
	"github.com/sm8ta/station_control_console/internal/core/ports"
)

// DefaultInboxSize bounds the number of undelivered notifications kept per
// session. The oldest are dropped first.
const DefaultInboxSize = 50

type Inbox struct {
	mu    sync.Mutex
	items []domain.Notification
	limit int
}

func NewInbox(limit int) *Inbox {
	if limit <= 0 {
		limit = DefaultInboxSize
	}
	return &Inbox{limit: limit}
}

func (i *Inbox) Notify(n domain.Notification) {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.items = append(i.items, n)
	if over := len(i.items) - i.limit; over > 0 {
		i.items = append([]domain.Notification(nil), i.items[over:]...)
	}
}

// Drain returns pending notifications oldest first and empties the inbox.
func (i *Inbox) Drain() []domain.Notification {
	i.mu.Lock()
	defer i.mu.Unlock()

	items := i.items
	i.items = nil
	if items == nil {
		return []domain.Notification{}
	}
	return items
}

var _ ports.Inbox = (*Inbox)(nil)
