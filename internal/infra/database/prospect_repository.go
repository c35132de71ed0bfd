package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/mjacademy/registration-service/internal/entity"
)

type ProspectRepository struct {
	DB *sql.DB
}

func NewProspectRepository(db *sql.DB) *ProspectRepository {
	return &ProspectRepository{DB: db}
}

// Upsert is the auto-save write: one full snapshot per step submission,
// keyed by email. Populated incoming fields win, empty ones keep whatever
// was saved before, and the step pointer only moves forward so a stale
// hydrate can never drag a user back.
func (r *ProspectRepository) Upsert(ctx context.Context, p *entity.Prospect) error {
	query := `
		INSERT INTO prospects (
			id, email, full_name, phone, is_muslim, faith_confirm_text,
			program, tech_track, tech_skill, academic_level, interests,
			current_step, completed, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, false, NOW(), NOW())
		ON CONFLICT (email)
		DO UPDATE SET
			full_name          = COALESCE(NULLIF(EXCLUDED.full_name, ''), prospects.full_name),
			phone              = COALESCE(NULLIF(EXCLUDED.phone, ''), prospects.phone),
			is_muslim          = prospects.is_muslim OR EXCLUDED.is_muslim,
			faith_confirm_text = COALESCE(NULLIF(EXCLUDED.faith_confirm_text, ''), prospects.faith_confirm_text),
			program            = COALESCE(NULLIF(EXCLUDED.program, ''), prospects.program),
			tech_track         = EXCLUDED.tech_track,
			tech_skill         = COALESCE(NULLIF(EXCLUDED.tech_skill, ''), prospects.tech_skill),
			academic_level     = COALESCE(NULLIF(EXCLUDED.academic_level, ''), prospects.academic_level),
			interests          = COALESCE(NULLIF(EXCLUDED.interests, '{}'), prospects.interests),
			current_step       = GREATEST(prospects.current_step, EXCLUDED.current_step),
			updated_at         = NOW()
		RETURNING id, current_step, completed, created_at, updated_at
	`

	interests := p.Interests
	if interests == nil {
		interests = []string{}
	}

	return r.DB.QueryRowContext(
		ctx,
		query,
		p.ID,
		p.Email,
		p.FullName,
		p.Phone,
		p.IsMuslim,
		p.FaithConfirmText,
		p.Program,
		p.TechTrack,
		p.TechSkill,
		p.AcademicLevel,
		pq.Array(interests),
		p.CurrentStep,
	).Scan(
		&p.ID,
		&p.CurrentStep,
		&p.Completed,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
}

func (r *ProspectRepository) FindByEmail(ctx context.Context, email string) (*entity.Prospect, error) {
	query := `
		SELECT
			id, email, full_name, phone, is_muslim, faith_confirm_text,
			program, tech_track, tech_skill, academic_level, interests,
			current_step, completed, completed_at, created_at, updated_at
		FROM prospects
		WHERE email = $1
	`

	var p entity.Prospect
	var interests pq.StringArray

	err := r.DB.QueryRowContext(ctx, query, email).Scan(
		&p.ID,
		&p.Email,
		&p.FullName,
		&p.Phone,
		&p.IsMuslim,
		&p.FaithConfirmText,
		&p.Program,
		&p.TechTrack,
		&p.TechSkill,
		&p.AcademicLevel,
		&interests,
		&p.CurrentStep,
		&p.Completed,
		&p.CompletedAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrProspectNotFound
		}
		return nil, err
	}

	p.Interests = interests
	return &p, nil
}

// MarkCompleted is monotonic: the WHERE clause makes true -> false impossible.
func (r *ProspectRepository) MarkCompleted(ctx context.Context, email string) error {
	query := `
		UPDATE prospects
		SET completed = true, completed_at = NOW(), updated_at = NOW()
		WHERE email = $1 AND NOT completed
	`

	res, err := r.DB.ExecContext(ctx, query, email)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		// Already completed or never saved. Either way the flag holds, so
		// a completion replay treats this as done.
		var completed bool
		err := r.DB.QueryRowContext(ctx, `SELECT completed FROM prospects WHERE email = $1`, email).Scan(&completed)
		if errors.Is(err, sql.ErrNoRows) {
			return entity.ErrProspectNotFound
		}
		return err
	}

	return nil
}
