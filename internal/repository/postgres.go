package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"placefinder/internal/model"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// PostgresRepository stores conversation memory and the ask log
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(dsn string, maxConn, maxIdleConn int) (*PostgresRepository, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	return &PostgresRepository{db: db}, nil
}

// NewPostgresRepositoryFromDB wraps an existing connection
func NewPostgresRepositoryFromDB(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

// Ping checks the database connection
func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Append stores one conversation message for a user
func (r *PostgresRepository) Append(ctx context.Context, userID, role, content string) error {
	query := `
		INSERT INTO chat_messages (user_id, role, content)
		VALUES ($1, $2, $3)
	`
	if _, err := r.db.ExecContext(ctx, query, userID, role, content); err != nil {
		return fmt.Errorf("failed to append message: %w", err)
	}
	return nil
}

// Recent returns the user's latest messages, oldest first
func (r *PostgresRepository) Recent(ctx context.Context, userID string, limit int) ([]model.Message, error) {
	query := `
		SELECT role, content, created_at FROM (
			SELECT id, role, content, created_at
			FROM chat_messages
			WHERE user_id = $1
			ORDER BY created_at DESC, id DESC
			LIMIT $2
		) recent
		ORDER BY created_at ASC, id ASC
	`
	messages := []model.Message{}
	if err := r.db.SelectContext(ctx, &messages, query, userID, limit); err != nil {
		return nil, fmt.Errorf("failed to load recent messages: %w", err)
	}
	return messages, nil
}

// LogAsk records one answered ask
func (r *PostgresRepository) LogAsk(ctx context.Context, entry *model.AskLog) error {
	intentJSON, err := json.Marshal(entry.Intent)
	if err != nil {
		return fmt.Errorf("failed to marshal intent: %w", err)
	}

	query := `
		INSERT INTO ask_logs (request_id, user_id, session_id, query, effective_query, route, intent, card_count, response_time_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = r.db.ExecContext(ctx, query,
		entry.RequestID,
		entry.UserID,
		entry.SessionID,
		entry.Query,
		entry.EffectiveQuery,
		entry.Route,
		intentJSON,
		entry.CardCount,
		entry.ResponseTimeMs,
	)
	if err != nil {
		return fmt.Errorf("failed to log ask: %w", err)
	}
	return nil
}
