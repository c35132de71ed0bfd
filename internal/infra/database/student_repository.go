package database

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"strings"

	"github.com/lib/pq"
	"github.com/mjacademy/registration-service/internal/entity"
)

type StudentRepository struct {
	DB *sql.DB
}

func NewStudentRepository(db *sql.DB) *StudentRepository {
	return &StudentRepository{DB: db}
}

const studentColumns = `
	id, email, full_name, phone, program, tech_track, tech_skill,
	academic_level, interests, payment_status, payment_reference,
	registration_fee, monthly_fee, duration_months, created_at, updated_at
`

func (r *StudentRepository) Create(ctx context.Context, s *entity.Student) error {
	query := `
		INSERT INTO students (` + studentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	interests := s.Interests
	if interests == nil {
		interests = []string{}
	}

	_, err := r.DB.ExecContext(ctx, query,
		s.ID,
		s.Email,
		s.FullName,
		s.Phone,
		s.Program,
		s.TechTrack,
		s.TechSkill,
		s.AcademicLevel,
		pq.Array(interests),
		s.PaymentStatus,
		s.PaymentReference,
		s.RegistrationFee,
		s.MonthlyFee,
		s.DurationMonths,
		s.CreatedAt,
		s.UpdatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			if strings.Contains(pqErr.Constraint, "payment_reference") {
				return entity.ErrStudentAlreadyExists
			}
			return entity.ErrEmailAlreadyExists
		}

		log.Printf("❌ students insert failed: %v", err)
		return err
	}

	return nil
}

func (r *StudentRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM students WHERE id = $1`, id)
	return err
}

func (r *StudentRepository) FindByEmail(ctx context.Context, email string) (*entity.Student, error) {
	return r.findOne(ctx, `SELECT `+studentColumns+` FROM students WHERE email = $1`, email)
}

func (r *StudentRepository) FindByPaymentReference(ctx context.Context, reference string) (*entity.Student, error) {
	return r.findOne(ctx, `SELECT `+studentColumns+` FROM students WHERE payment_reference = $1`, reference)
}

func (r *StudentRepository) FindAll(ctx context.Context) ([]*entity.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*entity.Student
	for rows.Next() {
		s, err := scanStudent(rows.Scan)
		if err != nil {
			return nil, err
		}
		students = append(students, s)
	}

	return students, rows.Err()
}

func (r *StudentRepository) UpdatePaymentStatus(ctx context.Context, email, reference, status string) error {
	query := `
		UPDATE students
		SET payment_status = $1, updated_at = NOW()
		WHERE email = $2 AND payment_reference = $3
	`
	_, err := r.DB.ExecContext(ctx, query, status, email, reference)
	return err
}

func (r *StudentRepository) findOne(ctx context.Context, query string, arg any) (*entity.Student, error) {
	row := r.DB.QueryRowContext(ctx, query, arg)

	s, err := scanStudent(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrStudentNotFound
		}
		return nil, err
	}

	return s, nil
}

func scanStudent(scan func(dest ...any) error) (*entity.Student, error) {
	var s entity.Student
	var interests pq.StringArray

	err := scan(
		&s.ID,
		&s.Email,
		&s.FullName,
		&s.Phone,
		&s.Program,
		&s.TechTrack,
		&s.TechSkill,
		&s.AcademicLevel,
		&interests,
		&s.PaymentStatus,
		&s.PaymentReference,
		&s.RegistrationFee,
		&s.MonthlyFee,
		&s.DurationMonths,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.Interests = interests
	return &s, nil
}
