package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"ariadne/internal/models"

	"github.com/jackc/pgx/v5"
)

type ReadingRepo struct {
	db *DB
}

func NewReadingRepo(db *DB) *ReadingRepo {
	return &ReadingRepo{db: db}
}

const itemColumns = `item_id, project_id, title, COALESCE(author,''), COALESCE(source_url,''),
       priority, status, suggested_by, created_at, updated_at`

func (r *ReadingRepo) AddItem(ctx context.Context, item models.ReadingListItem) error {
	_, err := r.db.Pool.Exec(ctx, `
INSERT INTO reading_list (item_id, project_id, title, author, source_url, priority, status, suggested_by)
VALUES ($1, $2, $3, NULLIF($4,''), NULLIF($5,''), $6, $7, $8)`,
		item.ItemID, item.ProjectID, item.Title, item.Author, item.SourceURL, item.Priority, item.Status, item.SuggestedBy)
	if err != nil {
		return fmt.Errorf("add reading list item: %w", err)
	}
	return nil
}

func (r *ReadingRepo) GetItem(ctx context.Context, itemID string) (models.ReadingListItem, error) {
	var item models.ReadingListItem
	err := r.db.Pool.QueryRow(ctx, `SELECT `+itemColumns+` FROM reading_list WHERE item_id=$1`, itemID).
		Scan(&item.ItemID, &item.ProjectID, &item.Title, &item.Author, &item.SourceURL,
			&item.Priority, &item.Status, &item.SuggestedBy, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return models.ReadingListItem{}, fmt.Errorf("get reading list item: %w", err)
	}
	return item, nil
}

func (r *ReadingRepo) ListItems(ctx context.Context, projectID string) ([]models.ReadingListItem, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT `+itemColumns+` FROM reading_list WHERE project_id=$1 ORDER BY created_at`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list reading list: %w", err)
	}
	defer rows.Close()
	out := make([]models.ReadingListItem, 0)
	for rows.Next() {
		var item models.ReadingListItem
		if err := rows.Scan(&item.ItemID, &item.ProjectID, &item.Title, &item.Author, &item.SourceURL,
			&item.Priority, &item.Status, &item.SuggestedBy, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan reading list item: %w", err)
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *ReadingRepo) ListItemTitles(ctx context.Context, projectID string) ([]string, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT title FROM reading_list WHERE project_id=$1`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list item titles: %w", err)
	}
	defer rows.Close()
	out := make([]string, 0)
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scan title: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// NextSeekingItem returns the highest-priority item still waiting for a
// reading session, or ok=false when the list is exhausted.
func (r *ReadingRepo) NextSeekingItem(ctx context.Context, projectID string) (models.ReadingListItem, bool, error) {
	var item models.ReadingListItem
	err := r.db.Pool.QueryRow(ctx, `
SELECT `+itemColumns+`
FROM reading_list
WHERE project_id=$1 AND status IN ('seeking','found')
ORDER BY CASE priority WHEN 'high' THEN 0 WHEN 'medium' THEN 1 ELSE 2 END, created_at
LIMIT 1`, projectID).
		Scan(&item.ItemID, &item.ProjectID, &item.Title, &item.Author, &item.SourceURL,
			&item.Priority, &item.Status, &item.SuggestedBy, &item.CreatedAt, &item.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.ReadingListItem{}, false, nil
	}
	if err != nil {
		return models.ReadingListItem{}, false, fmt.Errorf("next seeking item: %w", err)
	}
	return item, true, nil
}

// SetItemSource records where a sought text was located.
func (r *ReadingRepo) SetItemSource(ctx context.Context, itemID, sourceURL, status string) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE reading_list SET source_url=NULLIF($2,''), status=$3, updated_at=NOW() WHERE item_id=$1`,
		itemID, sourceURL, status)
	if err != nil {
		return fmt.Errorf("set item source: %w", err)
	}
	return nil
}

func (r *ReadingRepo) UpdateItemStatus(ctx context.Context, itemID, status string) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE reading_list SET status=$2, updated_at=NOW() WHERE item_id=$1`, itemID, status)
	if err != nil {
		return fmt.Errorf("update item status: %w", err)
	}
	return nil
}

const sessionColumns = `session_id, project_id, item_id, phase, content,
       COALESCE(insights,'[]'::jsonb), COALESCE(questions,'[]'::jsonb), COALESCE(connections,'[]'::jsonb),
       depth_score, community_input, publication_candidate, created_at`

// AppendSession writes a new immutable session row.
func (r *ReadingRepo) AppendSession(ctx context.Context, s models.ReadingSession) error {
	insights, _ := json.Marshal(s.Insights)
	questions, _ := json.Marshal(s.Questions)
	connections, _ := json.Marshal(s.Connections)
	_, err := r.db.Pool.Exec(ctx, `
INSERT INTO reading_sessions (session_id, project_id, item_id, phase, content, insights, questions, connections, depth_score, community_input, publication_candidate)
VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7::jsonb, $8::jsonb, $9, $10, $11)`,
		s.SessionID, s.ProjectID, s.ItemID, s.Phase, s.Content,
		string(insights), string(questions), string(connections),
		s.DepthScore, s.CommunityInput, s.PublicationCandidate)
	if err != nil {
		return fmt.Errorf("append reading session: %w", err)
	}
	return nil
}

func (r *ReadingRepo) ListSessions(ctx context.Context, projectID string) ([]models.ReadingSession, error) {
	return r.listSessionsWhere(ctx, `WHERE project_id=$1`, projectID)
}

func (r *ReadingRepo) ListSessionsForItem(ctx context.Context, projectID, itemID string) ([]models.ReadingSession, error) {
	return r.listSessionsWhere(ctx, `WHERE project_id=$1 AND item_id=$2`, projectID, itemID)
}

func (r *ReadingRepo) listSessionsWhere(ctx context.Context, where string, args ...any) ([]models.ReadingSession, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT `+sessionColumns+` FROM reading_sessions `+where+` ORDER BY created_at`, args...)
	if err != nil {
		return nil, fmt.Errorf("list reading sessions: %w", err)
	}
	defer rows.Close()
	out := make([]models.ReadingSession, 0)
	for rows.Next() {
		var s models.ReadingSession
		if err := rows.Scan(&s.SessionID, &s.ProjectID, &s.ItemID, &s.Phase, &s.Content,
			&s.Insights, &s.Questions, &s.Connections,
			&s.DepthScore, &s.CommunityInput, &s.PublicationCandidate, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan reading session: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *ReadingRepo) CountSessions(ctx context.Context, projectID string) (int, error) {
	var n int
	err := r.db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM reading_sessions WHERE project_id=$1`, projectID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count reading sessions: %w", err)
	}
	return n, nil
}

// ListCandidateSessions returns publication-candidate sessions for a project.
func (r *ReadingRepo) ListCandidateSessions(ctx context.Context, projectID string) ([]models.ReadingSession, error) {
	return r.listSessionsWhere(ctx, `WHERE project_id=$1 AND publication_candidate`, projectID)
}
