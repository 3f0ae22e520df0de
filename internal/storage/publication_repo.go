package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ariadne/internal/models"
)

type PublicationRepo struct {
	db *DB
}

func NewPublicationRepo(db *DB) *PublicationRepo {
	return &PublicationRepo{db: db}
}

const publicationColumns = `publication_id, COALESCE(project_id::text,''), type, title, content,
       trigger_reason, COALESCE(community_mentions,'[]'::jsonb), COALESCE(external_url,''), sent_at, created_at`

func (r *PublicationRepo) Insert(ctx context.Context, p models.Publication) error {
	mentions, _ := json.Marshal(p.CommunityMentions)
	_, err := r.db.Pool.Exec(ctx, `
INSERT INTO publications (publication_id, project_id, type, title, content, trigger_reason, community_mentions, external_url)
VALUES ($1, NULLIF($2,'')::uuid, $3, $4, $5, $6, $7::jsonb, NULLIF($8,''))`,
		p.PublicationID, p.ProjectID, p.Type, p.Title, p.Content,
		p.TriggerReason, string(mentions), p.ExternalURL)
	if err != nil {
		return fmt.Errorf("insert publication: %w", err)
	}
	return nil
}

func (r *PublicationRepo) ListByProject(ctx context.Context, projectID string) ([]models.Publication, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT `+publicationColumns+` FROM publications WHERE project_id=$1 ORDER BY sent_at DESC`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list publications: %w", err)
	}
	defer rows.Close()
	out := make([]models.Publication, 0)
	for rows.Next() {
		var p models.Publication
		if err := rows.Scan(&p.PublicationID, &p.ProjectID, &p.Type, &p.Title, &p.Content,
			&p.TriggerReason, &p.CommunityMentions, &p.ExternalURL, &p.SentAt, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan publication: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// CountSentSince backs the global rate limit.
func (r *PublicationRepo) CountSentSince(ctx context.Context, since time.Time) (int, error) {
	var n int
	err := r.db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM publications WHERE sent_at >= $1`, since).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count publications since: %w", err)
	}
	return n, nil
}

// ExistsForTrigger reports whether a publication has already gone out for the
// exact trigger reason, which carries the triggering row's identity.
func (r *PublicationRepo) ExistsForTrigger(ctx context.Context, projectID, triggerReason string) (bool, error) {
	var exists bool
	err := r.db.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM publications WHERE project_id=$1 AND trigger_reason=$2)`,
		projectID, triggerReason).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check trigger reason: %w", err)
	}
	return exists, nil
}
