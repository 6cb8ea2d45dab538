package model

import "math"

// Expertise is the skill tier of a contractor.
type Expertise string

const (
	ExpertiseJunior     Expertise = "JUNIOR"
	ExpertiseApprentice Expertise = "APPRENTICE"
	ExpertiseSenior     Expertise = "SENIOR"
)

// ContractorRef is a normalized reference to a contractor as carried on a
// project record. The backend may send a canonical id, a legacy hex id, an
// embedded contractor object, or (oldest records) a bare display name; the
// api layer folds all of those into this pair. A zero Ref means "no
// contractor assigned" and is deliberately distinct from an unresolved
// lookup, which is signalled by the resolver, not by the ref itself.
type ContractorRef struct {
	// ID is the contractor identifier, when one is known.
	ID string `json:"id,omitempty" db:"contractor_id"`

	// Name is the contractor display name, when one is known.
	Name string `json:"name,omitempty" db:"contractor_name"`
}

// IsZero reports whether the ref carries no contractor at all.
func (r ContractorRef) IsZero() bool {
	return r.ID == "" && r.Name == ""
}

// Project is a single renovation project as last confirmed by the server.
type Project struct {
	// ID is the opaque server-assigned identity.
	ID string `json:"id" db:"id"`

	// Name is the project display name.
	Name string `json:"name" db:"name"`

	// Address is the free-text site address.
	Address string `json:"address" db:"address"`

	// Budget is the total project budget, non-negative.
	Budget float64 `json:"budget" db:"budget"`

	// Workers is the assigned worker headcount. It is derived from the
	// budget at creation time and only directly editable afterwards.
	Workers int `json:"workers" db:"workers"`

	// Contractor references the assigned contractor, if any.
	Contractor ContractorRef `json:"contractor"`

	// Progress is the manual completion percentage, 0-100. 100 is
	// reserved for finished projects; see ClampProgress.
	Progress int `json:"progress" db:"progress"`

	// EtaWeeks is the estimated duration in weeks as stored server-side.
	EtaWeeks float64 `json:"eta" db:"eta"`

	// Finished marks the project terminal. Every field except the name
	// is frozen once this is set.
	Finished bool `json:"finished" db:"finished"`

	// Latitude and Longitude are the geocoded site coordinates. They are
	// only meaningful when both are present.
	Latitude  *float64 `json:"latitude,omitempty" db:"latitude"`
	Longitude *float64 `json:"longitude,omitempty" db:"longitude"`

	// TaskIDs is the canonical task membership list, insertion-ordered.
	TaskIDs []string `json:"taskIds,omitempty"`
}

// IsFinished reports whether the project is in its terminal state. The
// backend signals this two ways (the explicit flag and progress reaching
// 100); every call site goes through here so the two never drift.
func (p Project) IsFinished() bool {
	return p.Finished || p.Progress >= 100
}

// HasCoordinates reports whether the project carries a usable geocoded
// position.
func (p Project) HasCoordinates() bool {
	return p.Latitude != nil && p.Longitude != nil
}

// Normalize clamps the mutable numeric fields into their legal ranges and
// reconciles the finished flag with progress. It is applied to every
// snapshot coming back from the server before the snapshot replaces the
// in-memory aggregate.
func (p Project) Normalize() Project {
	if p.Budget < 0 {
		p.Budget = 0
	}
	if p.Workers < 0 {
		p.Workers = 0
	}
	if p.EtaWeeks < 0 {
		p.EtaWeeks = 0
	}
	p.Progress = clampInt(p.Progress, 0, 100)
	if p.IsFinished() {
		p.Finished = true
		p.Progress = 100
	}
	// Coordinates are all-or-nothing, and only finite values count.
	if p.Latitude == nil || p.Longitude == nil ||
		!isFinite(*p.Latitude) || !isFinite(*p.Longitude) {
		p.Latitude = nil
		p.Longitude = nil
	}
	return p
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ClampProgress restricts a progress value to the range allowed for a
// not-yet-finished project. 100 is reserved for the finished transition.
func ClampProgress(progress int) int {
	return clampInt(progress, 0, 99)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
