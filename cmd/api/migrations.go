package main

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Schema statements are idempotent so the server can apply them on every
// start without a separate migration tool.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
        id            TEXT PRIMARY KEY,
        email         TEXT NOT NULL UNIQUE,
        password_hash TEXT NOT NULL,
        display_name  TEXT NOT NULL,
        role          TEXT NOT NULL CHECK (role IN ('volunteer', 'organization', 'admin')),
        created_at    TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
        updated_at    TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
    )`,

	`CREATE TABLE IF NOT EXISTS volunteer_profiles (
        user_id                TEXT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
        latitude               DOUBLE PRECISION,
        longitude              DOUBLE PRECISION,
        max_travel_distance_km DOUBLE PRECISION NOT NULL DEFAULT 0,
        waste_type_preferences TEXT[] NOT NULL DEFAULT '{}',
        skills                 TEXT[] NOT NULL DEFAULT '{}',
        experience_level       TEXT NOT NULL DEFAULT 'beginner',
        availability           JSONB,
        location               TEXT NOT NULL DEFAULT '',
        created_at             TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
        updated_at             TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
    )`,

	`CREATE TABLE IF NOT EXISTS opportunities (
        id                        TEXT PRIMARY KEY,
        organization_id           TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
        title                     TEXT NOT NULL,
        description               TEXT NOT NULL DEFAULT '',
        latitude                  DOUBLE PRECISION,
        longitude                 DOUBLE PRECISION,
        location                  TEXT NOT NULL DEFAULT '',
        waste_types               TEXT[] NOT NULL DEFAULT '{}',
        required_skills           TEXT[] NOT NULL DEFAULT '{}',
        required_experience_level TEXT NOT NULL DEFAULT 'beginner',
        time_of_day               TEXT NOT NULL DEFAULT 'flexible',
        event_date                TIMESTAMPTZ NOT NULL,
        status                    TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'completed', 'cancelled')),
        photo_url                 TEXT,
        created_at                TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
        updated_at                TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
    )`,

	`CREATE INDEX IF NOT EXISTS idx_opportunities_status_date ON opportunities (status, event_date)`,

	`CREATE TABLE IF NOT EXISTS applications (
        id             TEXT PRIMARY KEY,
        opportunity_id TEXT NOT NULL REFERENCES opportunities(id) ON DELETE CASCADE,
        volunteer_id   TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
        status         TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'accepted', 'rejected', 'withdrawn')),
        message        TEXT,
        responded_at   TIMESTAMPTZ,
        created_at     TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
        updated_at     TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
        UNIQUE (opportunity_id, volunteer_id)
    )`,

	`CREATE INDEX IF NOT EXISTS idx_applications_volunteer ON applications (volunteer_id, status)`,
	`CREATE INDEX IF NOT EXISTS idx_applications_opportunity ON applications (opportunity_id, status)`,

	`CREATE TABLE IF NOT EXISTS notifications (
        id         TEXT PRIMARY KEY,
        user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
        kind       TEXT NOT NULL,
        title      TEXT NOT NULL,
        body       TEXT NOT NULL DEFAULT '',
        read       BOOLEAN NOT NULL DEFAULT FALSE,
        created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
    )`,

	`CREATE INDEX IF NOT EXISTS idx_notifications_user ON notifications (user_id, read, created_at DESC)`,
}

func runMigrations(db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("applying schema: %w", err)
		}
	}
	return nil
}
