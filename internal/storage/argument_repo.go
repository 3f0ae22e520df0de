package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ariadne/internal/models"
)

type ArgumentRepo struct {
	db *DB
}

func NewArgumentRepo(db *DB) *ArgumentRepo {
	return &ArgumentRepo{db: db}
}

const argumentColumns = `argument_id, project_id, title, initial_intuition,
       COALESCE(evidence,'[]'::jsonb), COALESCE(counter_arguments,'[]'::jsonb),
       confidence, evidence_strength, COALESCE(citations,'[]'::jsonb),
       community_weight, last_validation_score, last_validated_at, created_at, updated_at`

func (r *ArgumentRepo) Create(ctx context.Context, a models.Argument) error {
	evidence, _ := json.Marshal(a.Evidence)
	counters, _ := json.Marshal(a.CounterArguments)
	citations, _ := json.Marshal(a.Citations)
	_, err := r.db.Pool.Exec(ctx, `
INSERT INTO arguments (argument_id, project_id, title, initial_intuition, evidence, counter_arguments, confidence, evidence_strength, citations, community_weight)
VALUES ($1, $2, $3, $4, $5::jsonb, $6::jsonb, $7, $8, $9::jsonb, $10)`,
		a.ArgumentID, a.ProjectID, a.Title, a.InitialIntuition,
		string(evidence), string(counters), a.Confidence, a.EvidenceStrength,
		string(citations), a.CommunityWeight)
	if err != nil {
		return fmt.Errorf("create argument: %w", err)
	}
	return nil
}

func (r *ArgumentRepo) Get(ctx context.Context, argumentID string) (models.Argument, error) {
	var a models.Argument
	err := r.db.Pool.QueryRow(ctx, `SELECT `+argumentColumns+` FROM arguments WHERE argument_id=$1`, argumentID).
		Scan(&a.ArgumentID, &a.ProjectID, &a.Title, &a.InitialIntuition,
			&a.Evidence, &a.CounterArguments, &a.Confidence, &a.EvidenceStrength,
			&a.Citations, &a.CommunityWeight, &a.LastValidationScore, &a.LastValidatedAt,
			&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return models.Argument{}, fmt.Errorf("get argument: %w", err)
	}
	return a, nil
}

func (r *ArgumentRepo) List(ctx context.Context, projectID string) ([]models.Argument, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT `+argumentColumns+` FROM arguments WHERE project_id=$1 ORDER BY created_at`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list arguments: %w", err)
	}
	defer rows.Close()
	out := make([]models.Argument, 0)
	for rows.Next() {
		var a models.Argument
		if err := rows.Scan(&a.ArgumentID, &a.ProjectID, &a.Title, &a.InitialIntuition,
			&a.Evidence, &a.CounterArguments, &a.Confidence, &a.EvidenceStrength,
			&a.Citations, &a.CommunityWeight, &a.LastValidationScore, &a.LastValidatedAt,
			&a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan argument: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// AppendEvidence adds one evidence entry to the jsonb array in place.
func (r *ArgumentRepo) AppendEvidence(ctx context.Context, argumentID, evidence string) error {
	encoded, _ := json.Marshal(evidence)
	_, err := r.db.Pool.Exec(ctx, `
UPDATE arguments
SET evidence = COALESCE(evidence,'[]'::jsonb) || $2::jsonb, updated_at=NOW()
WHERE argument_id=$1`, argumentID, string(encoded))
	if err != nil {
		return fmt.Errorf("append evidence: %w", err)
	}
	return nil
}

func (r *ArgumentRepo) AppendCounter(ctx context.Context, argumentID string, c models.CounterArgument) error {
	if c.At.IsZero() {
		c.At = time.Now().UTC()
	}
	encoded, _ := json.Marshal(c)
	_, err := r.db.Pool.Exec(ctx, `
UPDATE arguments
SET counter_arguments = COALESCE(counter_arguments,'[]'::jsonb) || $2::jsonb, updated_at=NOW()
WHERE argument_id=$1`, argumentID, string(encoded))
	if err != nil {
		return fmt.Errorf("append counter argument: %w", err)
	}
	return nil
}

func (r *ArgumentRepo) AppendCitation(ctx context.Context, argumentID, citation string) error {
	encoded, _ := json.Marshal(citation)
	_, err := r.db.Pool.Exec(ctx, `
UPDATE arguments
SET citations = COALESCE(citations,'[]'::jsonb) || $2::jsonb, updated_at=NOW()
WHERE argument_id=$1`, argumentID, string(encoded))
	if err != nil {
		return fmt.Errorf("append citation: %w", err)
	}
	return nil
}

// SetValidation records a validation run without touching confidence.
func (r *ArgumentRepo) SetValidation(ctx context.Context, argumentID string, score, evidenceStrength float64) error {
	_, err := r.db.Pool.Exec(ctx, `
UPDATE arguments
SET last_validation_score=$2, evidence_strength=$3, last_validated_at=NOW(), updated_at=NOW()
WHERE argument_id=$1`, argumentID, score, evidenceStrength)
	if err != nil {
		return fmt.Errorf("set validation: %w", err)
	}
	return nil
}

// AdjustConfidence applies bounded deltas; the clamps happen in SQL so
// concurrent adjustments cannot push either value outside [0,1].
func (r *ArgumentRepo) AdjustConfidence(ctx context.Context, argumentID string, delta, communityWeightDelta float64) error {
	_, err := r.db.Pool.Exec(ctx, `
UPDATE arguments
SET confidence = GREATEST(0, LEAST(1, confidence + $2)),
    community_weight = GREATEST(0, LEAST(1, community_weight + $3)),
    updated_at = NOW()
WHERE argument_id=$1`, argumentID, delta, communityWeightDelta)
	if err != nil {
		return fmt.Errorf("adjust confidence: %w", err)
	}
	return nil
}

func (r *ArgumentRepo) CountValidated(ctx context.Context, projectID string) (int, error) {
	var n int
	err := r.db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM arguments WHERE project_id=$1 AND last_validation_score IS NOT NULL`, projectID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count validated arguments: %w", err)
	}
	return n, nil
}
