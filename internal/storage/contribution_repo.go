package storage

import (
	"context"
	"fmt"

	"ariadne/internal/models"
)

type ContributionRepo struct {
	db *DB
}

func NewContributionRepo(db *DB) *ContributionRepo {
	return &ContributionRepo{db: db}
}

const contributionColumns = `contribution_id, project_id, COALESCE(item_id::text,''), contributor, content, incorporated, created_at`

func (r *ContributionRepo) Insert(ctx context.Context, c models.Contribution) error {
	_, err := r.db.Pool.Exec(ctx, `
INSERT INTO contributions (contribution_id, project_id, item_id, contributor, content)
VALUES ($1, $2, NULLIF($3,'')::uuid, $4, $5)`,
		c.ContributionID, c.ProjectID, c.ItemID, c.Contributor, c.Content)
	if err != nil {
		return fmt.Errorf("insert contribution: %w", err)
	}
	return nil
}

func (r *ContributionRepo) ListByProject(ctx context.Context, projectID string) ([]models.Contribution, error) {
	return r.listWhere(ctx, `WHERE project_id=$1`, projectID)
}

func (r *ContributionRepo) ListUnincorporated(ctx context.Context, projectID string) ([]models.Contribution, error) {
	return r.listWhere(ctx, `WHERE project_id=$1 AND NOT incorporated`, projectID)
}

func (r *ContributionRepo) listWhere(ctx context.Context, where string, args ...any) ([]models.Contribution, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT `+contributionColumns+` FROM contributions `+where+` ORDER BY created_at`, args...)
	if err != nil {
		return nil, fmt.Errorf("list contributions: %w", err)
	}
	defer rows.Close()
	out := make([]models.Contribution, 0)
	for rows.Next() {
		var c models.Contribution
		if err := rows.Scan(&c.ContributionID, &c.ProjectID, &c.ItemID,
			&c.Contributor, &c.Content, &c.Incorporated, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan contribution: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *ContributionRepo) MarkIncorporated(ctx context.Context, contributionID string) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE contributions SET incorporated=true WHERE contribution_id=$1`, contributionID)
	if err != nil {
		return fmt.Errorf("mark contribution incorporated: %w", err)
	}
	return nil
}
