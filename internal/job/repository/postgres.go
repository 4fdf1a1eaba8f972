package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fekuna/omnipos-directory-service/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

const jobColumns = `id, job_name, title, salary, qualification, description, mode, skills,
	application_link, store_id, location, logo, phone_number, created_at, updated_at`

func (r *PGRepository) Create(ctx context.Context, job *model.Job) error {
	query := `
        INSERT INTO jobs (
            id, job_name, title, salary, qualification, description, mode, skills,
            application_link, store_id, location, logo, phone_number, created_at, updated_at
        )
        VALUES (
            :id, :job_name, :title, :salary, :qualification, :description, :mode, :skills,
            :application_link, :store_id, :location, :logo, :phone_number, :created_at, :updated_at
        )
    `
	if job.Skills == nil {
		job.Skills = pq.StringArray{}
	}
	if _, err := r.DB.NamedExecContext(ctx, query, job); err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Job, error) {
	var job model.Job
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &job, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &job, nil
}

func (r *PGRepository) FindAll(ctx context.Context) ([]model.Job, error) {
	jobs := []model.Job{}
	query := `SELECT ` + jobColumns + ` FROM jobs ORDER BY created_at DESC`
	if err := r.DB.SelectContext(ctx, &jobs, query); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *PGRepository) Update(ctx context.Context, job *model.Job) error {
	query := `
        UPDATE jobs
        SET job_name = :job_name,
            title = :title,
            salary = :salary,
            qualification = :qualification,
            description = :description,
            mode = :mode,
            skills = :skills,
            application_link = :application_link,
            store_id = :store_id,
            location = :location,
            logo = :logo,
            phone_number = :phone_number,
            updated_at = :updated_at
        WHERE id = :id
    `
	if job.Skills == nil {
		job.Skills = pq.StringArray{}
	}
	if _, err := r.DB.NamedExecContext(ctx, query, job); err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	return nil
}

func (r *PGRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM jobs WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
