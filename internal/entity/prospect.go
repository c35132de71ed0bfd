package entity

import (
	"context"
	"errors"
	"time"
)

var ErrProspectNotFound = errors.New("prospect not found")

// Prospect is an in-progress registration, upserted by email on every
// step submission. Never deleted by the flow; cleanup is an admin concern.
type Prospect struct {
	ID               string     `json:"id"`
	Email            string     `json:"email"`
	FullName         string     `json:"full_name,omitempty"`
	Phone            string     `json:"phone,omitempty"`
	IsMuslim         bool       `json:"is_muslim"`
	FaithConfirmText string     `json:"faith_confirm_text,omitempty"`
	Program          string     `json:"program,omitempty"`
	TechTrack        bool       `json:"tech_track"`
	TechSkill        string     `json:"tech_skill,omitempty"`
	AcademicLevel    string     `json:"academic_level,omitempty"`
	Interests        []string   `json:"interests,omitempty"`
	CurrentStep      int        `json:"current_step"`
	Completed        bool       `json:"completed"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

type ProspectRepositoryInterface interface {
	// Upsert writes a full snapshot keyed by email. Last write wins on
	// populated fields; empty incoming fields keep the stored value and the
	// step index never moves backwards.
	Upsert(ctx context.Context, p *Prospect) error

	// FindByEmail returns the non-completed prospect for the email, or
	// ErrProspectNotFound.
	FindByEmail(ctx context.Context, email string) (*Prospect, error)

	// MarkCompleted flips the completion flag. Monotonic: false -> true only.
	MarkCompleted(ctx context.Context, email string) error
}
