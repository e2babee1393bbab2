package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/sm8ta/station_control_console/internal/core/domain"
	"github.com/sm8ta/station_control_console/internal/core/ports"
)

type FormState string

const (
	StateIdle       FormState = "idle"
	StateValidating FormState = "validating"
	StateSubmitting FormState = "submitting"
)

const (
	titleNewEmployee = "Novo Funcionário"
	titleCountries   = "Paises"
	titlePhoto       = "Foto de Perfil"

	msgCountriesFailed = "Não foi possível carregar os paises."
	msgSubmitFailed    = "Não foi possível salvar os dados do funcionário."
)

// FormDeps are the collaborators shared by every form session.
type FormDeps struct {
	Validator *DraftValidator
	Countries ports.CountryProvider
	API       ports.EmployeeAPI
	// Notifier receives a copy of every notification. Optional.
	Notifier ports.Notifier
	Logger   ports.LoggerPort
	Metrics  ports.MetricsPort
}

// Form is one live employee registration form. It owns its draft.
type Form struct {
	id   uuid.UUID
	deps FormDeps

	inbox ports.Inbox

	// loadMu serialises country loads so a session fetches once.
	loadMu sync.Mutex

	mu              sync.Mutex
	draft           domain.EmployeeDraft
	countries       []domain.Country
	countriesLoaded bool
	state           FormState

	loading atomic.Bool
}

// FormView is a read-only snapshot of a form.
type FormView struct {
	ID           string               `json:"id"`
	Draft        domain.EmployeeDraft `json:"draft"`
	Countries    []domain.Country     `json:"countries"`
	Loading      bool                 `json:"loading"`
	State        FormState            `json:"state"`
	PhotoName    string               `json:"photoName,omitempty"`
	PhotoPreview string               `json:"photoPreview,omitempty"`
}

func NewForm(id uuid.UUID, deps FormDeps, inbox ports.Inbox) *Form {
	return &Form{
		id:    id,
		deps:  deps,
		inbox: inbox,
		draft: domain.NewEmployeeDraft(),
		state: StateIdle,
	}
}

func (f *Form) ID() string {
	return f.id.String()
}

// Loading reports whether a submission is in flight.
func (f *Form) Loading() bool {
	return f.loading.Load()
}

func (f *Form) State() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Notifications drains the messages shown since the last call.
func (f *Form) Notifications() []domain.Notification {
	return f.inbox.Drain()
}

// LoadCountries fetches the country list once per session. A failure is
// shown to the user and leaves the list empty; the form stays usable.
func (f *Form) LoadCountries(ctx context.Context) ([]domain.Country, error) {
	f.loadMu.Lock()
	defer f.loadMu.Unlock()

	f.mu.Lock()
	if f.countriesLoaded {
		countries := append([]domain.Country(nil), f.countries...)
		f.mu.Unlock()
		return countries, nil
	}
	f.mu.Unlock()

	countries, err := f.deps.Countries.FindAll(ctx, domain.CountryFilter{})
	if err != nil {
		f.deps.Logger.Warn("Failed to load countries for form", map[string]interface{}{
			"form_id": f.ID(),
			"error":   err.Error(),
		})
		f.notify(domain.Notification{
			Title:   titleCountries,
			Message: userMessage(err, msgCountriesFailed),
			Color:   domain.Red,
		})
		return nil, err
	}

	f.mu.Lock()
	f.countries = countries
	f.countriesLoaded = true
	f.mu.Unlock()

	return append([]domain.Country(nil), countries...), nil
}

// Dispatch applies field updates. Either all of them land or none do.
func (f *Form) Dispatch(updates ...domain.FieldUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	draft := f.draft
	for _, u := range updates {
		if err := draft.Apply(u); err != nil {
			return err
		}
	}
	f.draft = draft
	return nil
}

// SelectPhoto handles a dropped or picked selection. A rejected selection
// is announced and leaves the draft as it was.
func (f *Form) SelectPhoto(files []PhotoUpload) error {
	photo, err := AcceptPhoto(files)
	if err != nil {
		f.deps.Logger.Info("Profile photo rejected", map[string]interface{}{
			"form_id": f.ID(),
			"files":   len(files),
			"error":   err.Error(),
		})
		f.notify(domain.Notification{
			Title:   titlePhoto,
			Message: PhotoMessage(err),
			Color:   domain.Red,
		})
		return err
	}

	f.mu.Lock()
	f.draft.ProfilePhoto = photo
	f.mu.Unlock()
	return nil
}

func (f *Form) ClearPhoto() {
	f.mu.Lock()
	f.draft.ProfilePhoto = nil
	f.mu.Unlock()
}

// Validate checks the current draft without side effects.
func (f *Form) Validate() domain.ValidationResult {
	draft, countries := f.snapshot()
	return f.deps.Validator.Validate(draft, countries)
}

// Submit validates the draft and, when valid, sends it to the station API.
// Every violated field is also announced as a notification. On success the
// draft is reset; on failure it is kept for correction. Once sent, the
// request is not cancelled with ctx; only its values are kept.
func (f *Form) Submit(ctx context.Context) (*domain.Employee, domain.ValidationResult, error) {
	const op = "Form.Submit"

	if !f.loading.CompareAndSwap(false, true) {
		return nil, domain.ValidationResult{}, ErrSubmitInProgress
	}
	defer func() {
		f.setState(StateIdle)
		f.loading.Store(false)
	}()

	f.setState(StateValidating)
	draft, countries := f.snapshot()
	result := f.deps.Validator.Validate(draft, countries)
	if !result.Valid() {
		for _, fe := range result.Errors {
			f.notify(domain.Notification{
				Title:   titleNewEmployee,
				Message: fe.Message,
				Color:   domain.Red,
			})
		}
		f.deps.Metrics.IncrementCounter(ports.MetricSubmissions, map[string]string{"outcome": "invalid"})
		return nil, result, ErrInvalidDraft
	}

	f.setState(StateSubmitting)
	payload, err := BuildPayload(draft)
	if err != nil {
		f.fail(err)
		return nil, result, fmt.Errorf("%s: %w", op, err)
	}

	f.deps.Logger.Debug("Submitting employee", map[string]interface{}{
		"form_id":    f.ID(),
		"country_id": draft.CountryID,
		"with_photo": draft.ProfilePhoto != nil,
	})

	employee, err := f.deps.API.CreateEmployee(context.WithoutCancel(ctx), draft.CountryID, payload)
	if err != nil {
		f.fail(err)
		return nil, result, fmt.Errorf("%s: %w", op, err)
	}

	f.mu.Lock()
	f.draft = domain.NewEmployeeDraft()
	f.mu.Unlock()

	if employee.Name == "" {
		employee.Name = draft.Name
	}
	f.deps.Logger.Info("Employee created", map[string]interface{}{
		"form_id":     f.ID(),
		"employee_id": employee.ID,
	})
	f.deps.Metrics.IncrementCounter(ports.MetricSubmissions, map[string]string{"outcome": "success"})
	f.notify(domain.Notification{
		Title:   titleNewEmployee,
		Message: fmt.Sprintf("Os dados do funcionário %s foram salvos com sucesso!!!", employee.Name),
		Color:   domain.Green,
	})

	return employee, result, nil
}

// View returns a snapshot for rendering.
func (f *Form) View() FormView {
	f.mu.Lock()
	defer f.mu.Unlock()

	view := FormView{
		ID:        f.ID(),
		Draft:     f.draft,
		Countries: append([]domain.Country(nil), f.countries...),
		Loading:   f.loading.Load(),
		State:     f.state,
	}
	if p := f.draft.ProfilePhoto; p != nil {
		view.PhotoName = p.FileName
		view.PhotoPreview = p.PreviewURL()
	}
	return view
}

func (f *Form) fail(err error) {
	f.deps.Logger.Error("Failed to create employee", map[string]interface{}{
		"form_id": f.ID(),
		"error":   err.Error(),
	})
	f.deps.Metrics.IncrementCounter(ports.MetricSubmissions, map[string]string{"outcome": "failure"})
	f.notify(domain.Notification{
		Title:   titleNewEmployee,
		Message: userMessage(err, msgSubmitFailed),
		Color:   domain.Red,
	})
}

func (f *Form) snapshot() (domain.EmployeeDraft, []domain.Country) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft, append([]domain.Country(nil), f.countries...)
}

func (f *Form) setState(s FormState) {
	f.mu.Lock()
	f.state = s
	f.mu.Unlock()
}

func (f *Form) notify(n domain.Notification) {
	f.inbox.Notify(n)
	if f.deps.Notifier != nil {
		f.deps.Notifier.Notify(n)
	}
}
