package filestore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/lovelys-studio/backoffice/internal/domain/studio"
	"github.com/lovelys-studio/backoffice/internal/pkg/storage"
)

type appStateRepositoryImpl struct {
	fs   storage.FileStorage
	path string
}

// NewAppStateRepository keeps the studio document as state/<documentID>.json in fs.
func NewAppStateRepository(fs storage.FileStorage, documentID string) studio.StateRepository {
	return &appStateRepositoryImpl{fs: fs, path: "state/" + documentID + ".json"}
}

func (r *appStateRepositoryImpl) Load(ctx context.Context) (studio.State, error) {
	exists, err := r.fs.Exists(ctx, r.path)
	if err != nil {
		return studio.State{}, fmt.Errorf("failed to check state file: %w", err)
	}
	if !exists {
		return studio.State{}, studio.ErrStateNotFound
	}

	rc, err := r.fs.Download(ctx, r.path)
	if err != nil {
		return studio.State{}, fmt.Errorf("failed to open state file: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return studio.State{}, fmt.Errorf("failed to read state file: %w", err)
	}

	var state studio.State
	if err := json.Unmarshal(data, &state); err != nil {
		return studio.State{}, fmt.Errorf("failed to decode state file: %w", err)
	}
	return state, nil
}

func (r *appStateRepositoryImpl) Save(ctx context.Context, state studio.State) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	if _, err := r.fs.Upload(ctx, bytes.NewReader(data), r.path, "application/json"); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	return nil
}
