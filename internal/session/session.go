// Package session keeps one loaded project consistent across the many
// independent field-level saves the details view issues. It owns the only
// mutable copy of the project aggregate: edits are validated here before
// any network call, server snapshots replace the aggregate wholesale after
// normalization, and once a project is finished everything but the name
// refuses to change.
//
// All methods run on the UI event loop; the session is not safe for
// concurrent use and does not need to be.
package session

import (
	"errors"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/homereno/renoterm/internal/contractor"
	"github.com/homereno/renoterm/internal/model"
	"github.com/homereno/renoterm/internal/schedule"
)

// Field identifies one independently-saved project field.
type Field string

const (
	FieldName       Field = "name"
	FieldAddress    Field = "address"
	FieldBudget     Field = "budget"
	FieldWorkers    Field = "workers"
	FieldProgress   Field = "progress"
	FieldEta        Field = "eta"
	FieldContractor Field = "contractor"
	FieldFinished   Field = "finished"
)

// SaveState is the lifecycle of a single field's save.
type SaveState int

const (
	SaveIdle SaveState = iota
	SaveInFlight
	SaveFailed
)

// FieldState holds the save status of one field. Each field carries its
// own state so one save completing never clears another field's spinner.
type FieldState struct {
	State SaveState
	Err   string
}

var (
	// ErrNotLoaded is returned for edits before a project is loaded.
	ErrNotLoaded = errors.New("no project loaded")

	// ErrFieldLocked is returned for edits to a finished project.
	ErrFieldLocked = errors.New("project is finished; only the name can change")

	// ErrNameRequired is returned when the name edit is blank.
	ErrNameRequired = errors.New("project name must not be empty")

	// ErrTasksIncomplete is returned by Finish before enough tasks are
	// done.
	ErrTasksIncomplete = errors.New("project tasks are not complete yet")
)

// LaborCapError reports an edit blocked by the labor budget cap.
type LaborCapError struct {
	Workers         int
	ContractorPrice float64
	Budget          float64
}

func (e *LaborCapError) Error() string {
	return schedule.LaborCapMessage(e.Workers, e.ContractorPrice, e.Budget)
}

// IsLaborCapError reports whether err is (or wraps) a labor cap rejection.
func IsLaborCapError(err error) bool {
	var capErr *LaborCapError
	return errors.As(err, &capErr)
}

// ProjectSession reconciles a single loaded project aggregate against the
// server. Edit methods validate a proposed value and mark the field
// in-flight; the caller performs the actual save and feeds the result back
// through ApplySave or ApplySaveError. The aggregate only ever changes
// when the server confirms, so a failed save leaves the last known-good
// state untouched.
type ProjectSession struct {
	resolver *contractor.Resolver

	project model.Project
	roster  []model.Contractor
	tasks   []model.Task
	fields  map[Field]*FieldState

	baseEtaWeeks float64
	baseCaptured bool

	geocodeToken string

	loaded bool
}

// New creates a session. A nil resolver gets the default id heuristic.
func New(resolver *contractor.Resolver) *ProjectSession {
	if resolver == nil {
		resolver = contractor.NewResolver(nil)
	}
	return &ProjectSession{
		resolver: resolver,
		fields:   make(map[Field]*FieldState),
	}
}

// Load installs a freshly fetched project, resetting all per-field save
// state and re-capturing the baseline ETA. Loading is the only path that
// re-captures the baseline besides an explicit ETA save.
func (s *ProjectSession) Load(p model.Project) {
	s.project = p.Normalize()
	s.fields = make(map[Field]*FieldState)
	s.baseEtaWeeks = s.project.EtaWeeks
	s.baseCaptured = true
	s.geocodeToken = ""
	s.tasks = nil
	s.loaded = true
}

// Loaded reports whether a project is loaded.
func (s *ProjectSession) Loaded() bool { return s.loaded }

// Project returns the last server-confirmed aggregate.
func (s *ProjectSession) Project() model.Project { return s.project }

// BaseEtaWeeks returns the baseline estimate captured at load or at the
// last explicit ETA save. Server echoes from unrelated saves never touch
// it.
func (s *ProjectSession) BaseEtaWeeks() float64 { return s.baseEtaWeeks }

// SetRoster installs the contractor roster used for lookups.
func (s *ProjectSession) SetRoster(roster []model.Contractor) {
	s.roster = roster
}

// Roster returns the installed contractor roster.
func (s *ProjectSession) Roster() []model.Contractor { return s.roster }

// SetTasks installs the project's task list, insertion-ordered.
func (s *ProjectSession) SetTasks(tasks []model.Task) {
	s.tasks = tasks
}

// Tasks returns the project's task list.
func (s *ProjectSession) Tasks() []model.Task { return s.tasks }

// FieldStatus returns the save status of a field.
func (s *ProjectSession) FieldStatus(f Field) FieldState {
	if st, ok := s.fields[f]; ok {
		return *st
	}
	return FieldState{}
}

// Saving reports whether the given field has a save in flight.
func (s *ProjectSession) Saving(f Field) bool {
	return s.FieldStatus(f).State == SaveInFlight
}

// EditName validates a proposed name and marks the field in-flight.
// Renaming is the one edit still allowed on a finished project.
func (s *ProjectSession) EditName(name string) (string, error) {
	if !s.loaded {
		return "", ErrNotLoaded
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrNameRequired
	}
	s.markSaving(FieldName)
	return name, nil
}

// EditAddress validates a proposed address and marks the field in-flight.
func (s *ProjectSession) EditAddress(address string) (string, error) {
	if err := s.editable(); err != nil {
		return "", err
	}
	s.markSaving(FieldAddress)
	return strings.TrimSpace(address), nil
}

// EditBudget validates a proposed budget against the labor cap and marks
// the field in-flight. The cap must hold for the proposed state, with the
// current workers and contractor, before the save goes out.
func (s *ProjectSession) EditBudget(budget float64) (float64, error) {
	if err := s.editable(); err != nil {
		return 0, err
	}
	if budget < 0 || math.IsNaN(budget) || math.IsInf(budget, 0) {
		budget = 0
	}
	price := s.resolver.ResolvePrice(s.project.Contractor, s.roster)
	if schedule.ViolatesLaborCap(s.project.Workers, price, budget) {
		return 0, &LaborCapError{Workers: s.project.Workers, ContractorPrice: price, Budget: budget}
	}
	s.markSaving(FieldBudget)
	return budget, nil
}

// EditWorkers validates a proposed headcount against the labor cap and
// marks the field in-flight.
func (s *ProjectSession) EditWorkers(workers int) (int, error) {
	if err := s.editable(); err != nil {
		return 0, err
	}
	if workers < 0 {
		workers = 0
	}
	price := s.resolver.ResolvePrice(s.project.Contractor, s.roster)
	if schedule.ViolatesLaborCap(workers, price, s.project.Budget) {
		return 0, &LaborCapError{Workers: workers, ContractorPrice: price, Budget: s.project.Budget}
	}
	s.markSaving(FieldWorkers)
	return workers, nil
}

// EditProgress clamps a proposed progress value into the 0-99 range open
// to unfinished projects and marks the field in-flight.
func (s *ProjectSession) EditProgress(progress int) (int, error) {
	if err := s.editable(); err != nil {
		return 0, err
	}
	s.markSaving(FieldProgress)
	return model.ClampProgress(progress), nil
}

// EditEta validates a proposed baseline estimate, in whole weeks, and
// marks the field in-flight. The baseline itself only moves once the
// server confirms this save.
func (s *ProjectSession) EditEta(weeks float64) (float64, error) {
	if err := s.editable(); err != nil {
		return 0, err
	}
	if weeks < 0 || math.IsNaN(weeks) || math.IsInf(weeks, 0) {
		weeks = 0
	}
	s.markSaving(FieldEta)
	return math.Round(weeks), nil
}

// AssignContractor validates assigning the contractor with the given id
// against the labor cap and marks the contractor field in-flight.
func (s *ProjectSession) AssignContractor(id string) error {
	if err := s.editable(); err != nil {
		return err
	}
	price := s.resolver.ResolvePrice(model.ContractorRef{ID: id}, s.roster)
	if schedule.ViolatesLaborCap(s.project.Workers, price, s.project.Budget) {
		return &LaborCapError{Workers: s.project.Workers, ContractorPrice: price, Budget: s.project.Budget}
	}
	s.markSaving(FieldContractor)
	return nil
}

// RemoveContractor marks the contractor field in-flight for an unassign.
func (s *ProjectSession) RemoveContractor() error {
	if err := s.editable(); err != nil {
		return err
	}
	s.markSaving(FieldContractor)
	return nil
}

// Finish validates the finished transition. It is only offered once the
// task-derived completion percentage clears the threshold; the manual
// progress field has no say.
func (s *ProjectSession) Finish() error {
	if !s.loaded {
		return ErrNotLoaded
	}
	if s.project.IsFinished() {
		return ErrFieldLocked
	}
	if !s.CanFinish() {
		return ErrTasksIncomplete
	}
	s.markSaving(FieldFinished)
	return nil
}

// ApplySave installs the server's confirmed snapshot after a successful
// save of the given field. The whole aggregate is replaced and
// re-normalized so the displayed state never drifts from the server. The
// baseline ETA is only re-captured when the ETA field itself was saved.
func (s *ProjectSession) ApplySave(f Field, snapshot model.Project) {
	s.project = snapshot.Normalize()
	if f == FieldEta {
		s.baseEtaWeeks = s.project.EtaWeeks
	}
	s.fields[f] = &FieldState{State: SaveIdle}
}

// ApplySaveError records a failed save for the given field. The aggregate
// keeps its last known-good state; only this field's status changes.
func (s *ProjectSession) ApplySaveError(f Field, err error) {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	s.fields[f] = &FieldState{State: SaveFailed, Err: msg}
}

// EtaDays returns the estimated remaining days for the loaded project.
// Finished projects have no estimate; they report through their finished
// state instead.
func (s *ProjectSession) EtaDays() (int, bool) {
	if !s.loaded || s.project.IsFinished() {
		return 0, false
	}
	expertise, _ := s.resolver.ResolveExpertise(s.project.Contractor, s.roster)
	return schedule.EtaDays(
		s.baseEtaWeeks,
		float64(s.project.Workers),
		float64(s.project.Progress),
		expertise,
	)
}

// ContractorName resolves the display name of the assigned contractor.
func (s *ProjectSession) ContractorName() (string, bool) {
	return s.resolver.ResolveName(s.project.Contractor, s.roster)
}

// DisplayProgress is the progress percentage to render: clamped to 0-99
// while the project is open, pinned to exactly 100 once finished.
func (s *ProjectSession) DisplayProgress() int {
	if s.project.IsFinished() {
		return 100
	}
	return model.ClampProgress(s.project.Progress)
}

// CompletionPercent is the task-derived completion percentage: the share
// of tasks in FINISHED state, rounded, or 0 with no tasks.
func (s *ProjectSession) CompletionPercent() int {
	if len(s.tasks) == 0 {
		return 0
	}
	finished := 0
	for _, t := range s.tasks {
		if t.Status == model.TaskFinished {
			finished++
		}
	}
	return int(math.Round(100 * float64(finished) / float64(len(s.tasks))))
}

// finishThreshold is the task completion percentage required before the
// finished transition is offered.
const finishThreshold = 99

// CanFinish reports whether the finish transition may be offered.
func (s *ProjectSession) CanFinish() bool {
	return s.loaded && !s.project.IsFinished() && s.CompletionPercent() >= finishThreshold
}

// BeginGeocode issues a token for a new address lookup. Only the most
// recently issued token is accepted back, so a slow lookup superseded by
// a newer keystroke can never clobber fresher coordinates.
func (s *ProjectSession) BeginGeocode() string {
	s.geocodeToken = uuid.NewString()
	return s.geocodeToken
}

// AcceptGeocode reports whether a completed lookup with the given token is
// still the latest one and may update displayed coordinates.
func (s *ProjectSession) AcceptGeocode(token string) bool {
	return token != "" && token == s.geocodeToken
}

// editable gates every edit except the name.
func (s *ProjectSession) editable() error {
	if !s.loaded {
		return ErrNotLoaded
	}
	if s.project.IsFinished() {
		return ErrFieldLocked
	}
	return nil
}

func (s *ProjectSession) markSaving(f Field) {
	s.fields[f] = &FieldState{State: SaveInFlight}
}
