package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sm8ta/station_control_console/internal/core/ports"
)

type session struct {
	form     *Form
	lastSeen time.Time
}

// FormRegistry keeps the live form sessions. Sessions left idle longer than
// the TTL are discarded together with their drafts.
type FormRegistry struct {
	deps     FormDeps
	newInbox func() ports.Inbox
	ttl      time.Duration
	now      Clock

	mu    sync.Mutex
	forms map[uuid.UUID]*session
}

func NewFormRegistry(deps FormDeps, newInbox func() ports.Inbox, ttl time.Duration, now Clock) *FormRegistry {
	if now == nil {
		now = time.Now
	}
	return &FormRegistry{
		deps:     deps,
		newInbox: newInbox,
		ttl:      ttl,
		now:      now,
		forms:    make(map[uuid.UUID]*session),
	}
}

// Open starts a new form session and loads its country list. A country
// failure does not prevent the session from opening.
func (r *FormRegistry) Open(ctx context.Context) *Form {
	form := NewForm(uuid.New(), r.deps, r.newInbox())

	r.mu.Lock()
	r.forms[form.id] = &session{form: form, lastSeen: r.now()}
	r.mu.Unlock()

	r.deps.Logger.Info("Form session opened", map[string]interface{}{
		"form_id": form.ID(),
	})

	_, _ = form.LoadCountries(ctx)
	return form
}

func (r *FormRegistry) Get(id string) (*Form, error) {
	formID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrSessionNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.forms[formID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	s.lastSeen = r.now()
	return s.form, nil
}

// Discard drops a session and its draft.
func (r *FormRegistry) Discard(id string) error {
	formID, err := uuid.Parse(id)
	if err != nil {
		return ErrSessionNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.forms[formID]; !ok {
		return ErrSessionNotFound
	}
	delete(r.forms, formID)
	return nil
}

func (r *FormRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.forms)
}

// Sweep removes idle sessions and returns how many were dropped. Sessions
// with a submission in flight are kept.
func (r *FormRegistry) Sweep() int {
	cutoff := r.now().Add(-r.ttl)

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, s := range r.forms {
		if s.lastSeen.Before(cutoff) && !s.form.Loading() {
			delete(r.forms, id)
			removed++
		}
	}
	return removed
}

// Run sweeps periodically until ctx is done.
func (r *FormRegistry) Run(ctx context.Context) {
	interval := r.ttl / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				r.deps.Logger.Debug("Expired form sessions", map[string]interface{}{
					"removed": n,
				})
			}
		}
	}
}
