package state

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lovelys-studio/backoffice/internal/domain/studio"
	"golang.org/x/crypto/bcrypt"
)

// Load reads the persisted document. A missing document or a read failure falls
// back to defaults so the studio always boots with a usable state.
func Load(ctx context.Context, repo studio.StateRepository, defaults func() studio.State) studio.State {
	loaded, err := repo.Load(ctx)
	switch {
	case errors.Is(err, studio.ErrStateNotFound):
		slog.Info("No persisted state found, seeding defaults")
		return defaults()
	case err != nil:
		slog.Error("Failed to load persisted state, using defaults", "error", err)
		return defaults()
	}
	return Normalize(loaded)
}

// Normalize fills fields that older documents may lack: a missing room kind
// becomes model and null collections become empty ones.
func Normalize(s studio.State) studio.State {
	rooms := make([]studio.Room, len(s.Rooms))
	for i, r := range s.Rooms {
		if r.Kind == "" {
			r.Kind = studio.RoomKindModel
		}
		r.Platforms = orEmpty(r.Platforms)
		r.Logs = orEmpty(r.Logs)
		r.Advances = orEmpty(r.Advances)
		r.SexShopItems = orEmpty(r.SexShopItems)
		r.SexShopPayments = orEmpty(r.SexShopPayments)
		r.SnackConsumptions = orEmpty(r.SnackConsumptions)
		r.MonitorShifts = orEmpty(r.MonitorShifts)
		rooms[i] = r
	}
	s.Rooms = rooms

	s.Rules.Platforms = orEmpty(s.Rules.Platforms)
	s.Rules.Accounts = orEmpty(s.Rules.Accounts)
	s.Rules.SnackCatalog = orEmpty(s.Rules.SnackCatalog)
	s.Rules.SexShopCatalog = orEmpty(s.Rules.SexShopCatalog)
	s.Rules.Expenses = orEmpty(s.Rules.Expenses)
	s.Rules.IncomeRecords = orEmpty(s.Rules.IncomeRecords)
	return s
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// HashLegacyPasswords replaces plaintext account passwords with bcrypt hashes.
// It returns the number of accounts migrated.
func HashLegacyPasswords(s studio.State) (studio.State, int, error) {
	migrated := 0
	accounts := make([]studio.Account, len(s.Rules.Accounts))
	for i, acc := range s.Rules.Accounts {
		if acc.Password != "" {
			if acc.PasswordHash == "" {
				hash, err := bcrypt.GenerateFromPassword([]byte(acc.Password), bcrypt.DefaultCost)
				if err != nil {
					return s, 0, fmt.Errorf("failed to hash password for %s: %w", acc.Username, err)
				}
				acc.PasswordHash = string(hash)
			}
			acc.Password = ""
			migrated++
		}
		accounts[i] = acc
	}
	s.Rules.Accounts = accounts
	return s, migrated, nil
}
