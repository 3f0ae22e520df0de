package storage

import (
	"context"
	"fmt"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS projects (
	project_id        uuid PRIMARY KEY,
	title             text NOT NULL,
	central_question  text NOT NULL,
	description       text,
	status            text NOT NULL DEFAULT 'active',
	started_at        timestamptz NOT NULL DEFAULT NOW(),
	estimated_weeks   int NOT NULL DEFAULT 4,
	min_texts_required int NOT NULL DEFAULT 3,
	search_terms      jsonb NOT NULL DEFAULT '[]'::jsonb,
	texts_read        int NOT NULL DEFAULT 0,
	argument_maturity double precision NOT NULL DEFAULT 0,
	last_discovery_at timestamptz,
	created_at        timestamptz NOT NULL DEFAULT NOW(),
	updated_at        timestamptz NOT NULL DEFAULT NOW()
)`,
	`CREATE TABLE IF NOT EXISTS reading_list (
	item_id      uuid PRIMARY KEY,
	project_id   uuid NOT NULL REFERENCES projects(project_id),
	title        text NOT NULL,
	author       text,
	source_url   text,
	priority     text NOT NULL DEFAULT 'medium',
	status       text NOT NULL DEFAULT 'seeking',
	suggested_by text NOT NULL DEFAULT 'autonomous_discovery',
	created_at   timestamptz NOT NULL DEFAULT NOW(),
	updated_at   timestamptz NOT NULL DEFAULT NOW()
)`,
	`CREATE TABLE IF NOT EXISTS reading_sessions (
	session_id            uuid PRIMARY KEY,
	project_id            uuid NOT NULL REFERENCES projects(project_id),
	item_id               uuid NOT NULL REFERENCES reading_list(item_id),
	phase                 text NOT NULL,
	content               text NOT NULL,
	insights              jsonb NOT NULL DEFAULT '[]'::jsonb,
	questions             jsonb NOT NULL DEFAULT '[]'::jsonb,
	connections           jsonb NOT NULL DEFAULT '[]'::jsonb,
	depth_score           double precision NOT NULL DEFAULT 0,
	community_input       boolean NOT NULL DEFAULT false,
	publication_candidate boolean NOT NULL DEFAULT false,
	created_at            timestamptz NOT NULL DEFAULT NOW()
)`,
	`CREATE TABLE IF NOT EXISTS arguments (
	argument_id           uuid PRIMARY KEY,
	project_id            uuid NOT NULL REFERENCES projects(project_id),
	title                 text NOT NULL,
	initial_intuition     text NOT NULL,
	evidence              jsonb NOT NULL DEFAULT '[]'::jsonb,
	counter_arguments     jsonb NOT NULL DEFAULT '[]'::jsonb,
	confidence            double precision NOT NULL DEFAULT 0.3,
	evidence_strength     double precision NOT NULL DEFAULT 0,
	citations             jsonb NOT NULL DEFAULT '[]'::jsonb,
	community_weight      double precision NOT NULL DEFAULT 0,
	last_validation_score double precision,
	last_validated_at     timestamptz,
	created_at            timestamptz NOT NULL DEFAULT NOW(),
	updated_at            timestamptz NOT NULL DEFAULT NOW()
)`,
	`CREATE TABLE IF NOT EXISTS discovered_sources (
	source_id      uuid PRIMARY KEY,
	project_id     uuid NOT NULL REFERENCES projects(project_id),
	title          text NOT NULL,
	author         text,
	url            text NOT NULL,
	search_term    text NOT NULL,
	relevance      double precision NOT NULL,
	credibility    double precision NOT NULL,
	novelty        double precision NOT NULL,
	depth          double precision NOT NULL,
	accessibility  double precision NOT NULL,
	overall        double precision NOT NULL,
	recommendation text NOT NULL,
	promoted       boolean NOT NULL DEFAULT false,
	created_at     timestamptz NOT NULL DEFAULT NOW()
)`,
	`CREATE TABLE IF NOT EXISTS publications (
	publication_id     uuid PRIMARY KEY,
	project_id         uuid REFERENCES projects(project_id),
	type               text NOT NULL,
	title              text NOT NULL,
	content            text NOT NULL,
	trigger_reason     text NOT NULL,
	community_mentions jsonb NOT NULL DEFAULT '[]'::jsonb,
	external_url       text,
	sent_at            timestamptz NOT NULL DEFAULT NOW(),
	created_at         timestamptz NOT NULL DEFAULT NOW()
)`,
	`CREATE TABLE IF NOT EXISTS contributions (
	contribution_id uuid PRIMARY KEY,
	project_id      uuid NOT NULL REFERENCES projects(project_id),
	item_id         uuid REFERENCES reading_list(item_id),
	contributor     text NOT NULL,
	content         text NOT NULL,
	incorporated    boolean NOT NULL DEFAULT false,
	created_at      timestamptz NOT NULL DEFAULT NOW()
)`,
	`CREATE INDEX IF NOT EXISTS idx_reading_list_project ON reading_list(project_id, status)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_project ON reading_sessions(project_id, item_id, created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_sources_project ON discovered_sources(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_publications_sent ON publications(sent_at)`,
}

// EnsureSchema creates missing tables and indexes. Safe to run on every boot.
func EnsureSchema(ctx context.Context, db *DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
