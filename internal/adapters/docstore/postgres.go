package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/siegestats/backend/internal/domain"
	"github.com/siegestats/backend/internal/logging"
	"github.com/siegestats/backend/internal/reporting"
	"github.com/siegestats/backend/internal/strutils"
)

type PostgresStore struct {
	db     *sqlx.DB
	schema string
}

func NewPostgresStore(db *sqlx.DB, schema string) *PostgresStore {
	return &PostgresStore{db: db, schema: schema}
}

func (s *PostgresStore) IsOnline(ctx context.Context) bool {
	pingCtx, cancel := context.WithTimeout(ctx, 1*time.Second)
	defer cancel()

	if err := s.db.PingContext(pingCtx); err != nil {
		logging.FromContext(ctx).Warn("document store is offline", "error", err.Error())
		return false
	}
	return true
}

func (s *PostgresStore) Get(ctx context.Context, category domain.Category, profileID string) (json.RawMessage, bool, error) {
	if !strutils.ProfileIDIsNormalized(profileID) {
		err := fmt.Errorf("profile id is not normalized")
		reporting.Report(ctx, err, map[string]string{"profileID": profileID})
		return nil, false, err
	}

	var document []byte
	err := s.db.QueryRowxContext(
		ctx,
		fmt.Sprintf(
			"SELECT document FROM %s.stats_documents WHERE category = $1 AND profile_id = $2",
			pq.QuoteIdentifier(s.schema),
		),
		category,
		profileID,
	).Scan(&document)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		err := fmt.Errorf("failed to get document: %w", err)
		reporting.Report(ctx, err, map[string]string{
			"category":  string(category),
			"profileID": profileID,
		})
		return nil, false, err
	}

	return json.RawMessage(document), true, nil
}

func (s *PostgresStore) Insert(ctx context.Context, category domain.Category, profileID string, document json.RawMessage) error {
	if !strutils.ProfileIDIsNormalized(profileID) {
		err := fmt.Errorf("profile id is not normalized")
		reporting.Report(ctx, err, map[string]string{"profileID": profileID})
		return err
	}

	_, err := s.db.ExecContext(
		ctx,
		fmt.Sprintf(
			"INSERT INTO %s.stats_documents (category, profile_id, document) VALUES ($1, $2, $3)",
			pq.QuoteIdentifier(s.schema),
		),
		category,
		profileID,
		[]byte(document),
	)
	if err != nil {
		err := fmt.Errorf("failed to insert document: %w", err)
		reporting.Report(ctx, err, map[string]string{
			"category":  string(category),
			"profileID": profileID,
		})
		return err
	}

	return nil
}

func (s *PostgresStore) Update(ctx context.Context, category domain.Category, profileID string, document json.RawMessage) error {
	if !strutils.ProfileIDIsNormalized(profileID) {
		err := fmt.Errorf("profile id is not normalized")
		reporting.Report(ctx, err, map[string]string{"profileID": profileID})
		return err
	}

	_, err := s.db.ExecContext(
		ctx,
		fmt.Sprintf(
			"UPDATE %s.stats_documents SET document = $3, updated_at = now() WHERE category = $1 AND profile_id = $2",
			pq.QuoteIdentifier(s.schema),
		),
		category,
		profileID,
		[]byte(document),
	)
	if err != nil {
		err := fmt.Errorf("failed to update document: %w", err)
		reporting.Report(ctx, err, map[string]string{
			"category":  string(category),
			"profileID": profileID,
		})
		return err
	}

	return nil
}

var _ Store = (*PostgresStore)(nil)
