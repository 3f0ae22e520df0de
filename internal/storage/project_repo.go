package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"ariadne/internal/models"
)

type ProjectRepo struct {
	db *DB
}

func NewProjectRepo(db *DB) *ProjectRepo {
	return &ProjectRepo{db: db}
}

const projectColumns = `project_id, title, central_question, COALESCE(description,''), status,
       started_at, estimated_weeks, min_texts_required, COALESCE(search_terms,'[]'::jsonb),
       texts_read, argument_maturity, last_discovery_at, created_at, updated_at`

func (r *ProjectRepo) CreateProject(ctx context.Context, p models.Project) error {
	terms, _ := json.Marshal(p.SearchTerms)
	_, err := r.db.Pool.Exec(ctx, `
INSERT INTO projects (project_id, title, central_question, description, status, estimated_weeks, min_texts_required, search_terms)
VALUES ($1, $2, $3, NULLIF($4,''), $5, $6, $7, $8::jsonb)`,
		p.ProjectID, p.Title, p.CentralQuestion, p.Description, p.Status, p.EstimatedWeeks, p.MinTextsRequired, string(terms),
	)
	if err != nil {
		return fmt.Errorf("create project: %w", err)
	}
	return nil
}

func (r *ProjectRepo) GetProject(ctx context.Context, projectID string) (models.Project, error) {
	var p models.Project
	err := r.db.Pool.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE project_id=$1`, projectID).
		Scan(&p.ProjectID, &p.Title, &p.CentralQuestion, &p.Description, &p.Status,
			&p.StartedAt, &p.EstimatedWeeks, &p.MinTextsRequired, &p.SearchTerms,
			&p.TextsRead, &p.ArgumentMaturity, &p.LastDiscoveryAt, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return models.Project{}, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

func (r *ProjectRepo) ListProjects(ctx context.Context) ([]models.Project, error) {
	return r.listWhere(ctx, ``)
}

func (r *ProjectRepo) ListActiveProjects(ctx context.Context) ([]models.Project, error) {
	return r.listWhere(ctx, `WHERE status='active'`)
}

func (r *ProjectRepo) listWhere(ctx context.Context, where string) ([]models.Project, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT `+projectColumns+` FROM projects `+where+` ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()
	out := make([]models.Project, 0)
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(&p.ProjectID, &p.Title, &p.CentralQuestion, &p.Description, &p.Status,
			&p.StartedAt, &p.EstimatedWeeks, &p.MinTextsRequired, &p.SearchTerms,
			&p.TextsRead, &p.ArgumentMaturity, &p.LastDiscoveryAt, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// UpdateFraming stores the generated title and description for a project that
// was created from a bare question.
func (r *ProjectRepo) UpdateFraming(ctx context.Context, projectID, title, description string) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE projects SET title=$2, description=NULLIF($3,''), updated_at=NOW() WHERE project_id=$1`,
		projectID, title, description)
	if err != nil {
		return fmt.Errorf("update framing: %w", err)
	}
	return nil
}

func (r *ProjectRepo) UpdateSearchTerms(ctx context.Context, projectID string, terms []string) error {
	encoded, _ := json.Marshal(terms)
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE projects SET search_terms=$2::jsonb, updated_at=NOW() WHERE project_id=$1`,
		projectID, string(encoded))
	if err != nil {
		return fmt.Errorf("update search terms: %w", err)
	}
	return nil
}

// RecordReadingProgress bumps the texts-read counter and the coarse
// argument-maturity accumulator in one statement.
func (r *ProjectRepo) RecordReadingProgress(ctx context.Context, projectID string, textsReadDelta int, maturityDelta float64) error {
	_, err := r.db.Pool.Exec(ctx, `
UPDATE projects
SET texts_read = texts_read + $2,
    argument_maturity = argument_maturity + $3,
    updated_at = NOW()
WHERE project_id=$1`, projectID, textsReadDelta, maturityDelta)
	if err != nil {
		return fmt.Errorf("record reading progress: %w", err)
	}
	return nil
}

func (r *ProjectRepo) TouchDiscovery(ctx context.Context, projectID string) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE projects SET last_discovery_at=NOW(), updated_at=NOW() WHERE project_id=$1`, projectID)
	if err != nil {
		return fmt.Errorf("touch discovery: %w", err)
	}
	return nil
}

// MarkCompleted is a one-way transition and a no-op on completed projects.
func (r *ProjectRepo) MarkCompleted(ctx context.Context, projectID string) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE projects SET status='completed', updated_at=NOW() WHERE project_id=$1 AND status='active'`, projectID)
	if err != nil {
		return fmt.Errorf("mark completed: %w", err)
	}
	return nil
}
