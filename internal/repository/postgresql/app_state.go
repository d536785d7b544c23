package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/lovelys-studio/backoffice/internal/domain/studio"
	"github.com/lovelys-studio/backoffice/internal/pkg/database"
)

// DefaultKeepRevisions is how many previous documents are kept per id.
const DefaultKeepRevisions = 20

type appStateRepositoryImpl struct {
	db            *database.DB
	documentID    string
	keepRevisions int
}

// NewAppStateRepository stores the whole studio as one JSONB row keyed by documentID.
func NewAppStateRepository(db *database.DB, documentID string, keepRevisions int) studio.StateRepository {
	return &appStateRepositoryImpl{db: db, documentID: documentID, keepRevisions: keepRevisions}
}

func (r *appStateRepositoryImpl) Load(ctx context.Context) (studio.State, error) {
	q := GetQuerier(ctx, r.db)

	var data []byte
	err := q.QueryRow(ctx, `SELECT data FROM app_state WHERE id = $1`, r.documentID).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return studio.State{}, studio.ErrStateNotFound
		}
		return studio.State{}, fmt.Errorf("failed to load app state: %w", err)
	}

	var state studio.State
	if err := json.Unmarshal(data, &state); err != nil {
		return studio.State{}, fmt.Errorf("failed to decode app state: %w", err)
	}
	return state, nil
}

// Save replaces the document and records the new version as a revision, pruning old ones.
func (r *appStateRepositoryImpl) Save(ctx context.Context, state studio.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode app state: %w", err)
	}

	return WithTransaction(ctx, r.db, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, func(ctx context.Context, tx pgx.Tx) error {
		if err := lockDocument(ctx, tx, r.documentID); err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, `
			INSERT INTO app_state (id, data, updated_at)
			VALUES ($1, $2, NOW())
			ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()
		`, r.documentID, data); err != nil {
			return fmt.Errorf("failed to upsert app state: %w", err)
		}

		if r.keepRevisions <= 0 {
			return nil
		}

		if _, err := tx.Exec(ctx, `
			INSERT INTO app_state_revisions (document_id, data) VALUES ($1, $2)
		`, r.documentID, data); err != nil {
			return fmt.Errorf("failed to record app state revision: %w", err)
		}

		if _, err := tx.Exec(ctx, `
			DELETE FROM app_state_revisions
			WHERE document_id = $1 AND id NOT IN (
				SELECT id FROM app_state_revisions
				WHERE document_id = $1
				ORDER BY id DESC
				LIMIT $2
			)
		`, r.documentID, r.keepRevisions); err != nil {
			return fmt.Errorf("failed to prune app state revisions: %w", err)
		}
		return nil
	})
}
