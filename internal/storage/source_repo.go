package storage

import (
	"context"
	"fmt"

	"ariadne/internal/models"
)

type SourceRepo struct {
	db *DB
}

func NewSourceRepo(db *DB) *SourceRepo {
	return &SourceRepo{db: db}
}

const sourceColumns = `source_id, project_id, title, COALESCE(author,''), url, search_term,
       relevance, credibility, novelty, depth, accessibility, overall, recommendation, promoted, created_at`

func (r *SourceRepo) RecordSource(ctx context.Context, s models.DiscoveredSource) error {
	_, err := r.db.Pool.Exec(ctx, `
INSERT INTO discovered_sources (source_id, project_id, title, author, url, search_term, relevance, credibility, novelty, depth, accessibility, overall, recommendation, promoted)
VALUES ($1, $2, $3, NULLIF($4,''), $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		s.SourceID, s.ProjectID, s.Title, s.Author, s.URL, s.SearchTerm,
		s.Relevance, s.Credibility, s.Novelty, s.Depth, s.Accessibility,
		s.Overall, s.Recommendation, s.Promoted)
	if err != nil {
		return fmt.Errorf("record discovered source: %w", err)
	}
	return nil
}

func (r *SourceRepo) MarkPromoted(ctx context.Context, sourceID string) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE discovered_sources SET promoted=true WHERE source_id=$1`, sourceID)
	if err != nil {
		return fmt.Errorf("mark source promoted: %w", err)
	}
	return nil
}

func (r *SourceRepo) ListSources(ctx context.Context, projectID string) ([]models.DiscoveredSource, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT `+sourceColumns+` FROM discovered_sources WHERE project_id=$1 ORDER BY overall DESC, created_at`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list discovered sources: %w", err)
	}
	defer rows.Close()
	out := make([]models.DiscoveredSource, 0)
	for rows.Next() {
		var s models.DiscoveredSource
		if err := rows.Scan(&s.SourceID, &s.ProjectID, &s.Title, &s.Author, &s.URL, &s.SearchTerm,
			&s.Relevance, &s.Credibility, &s.Novelty, &s.Depth, &s.Accessibility,
			&s.Overall, &s.Recommendation, &s.Promoted, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan discovered source: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
