package room

import "github.com/lovelys-studio/backoffice/internal/domain/studio"

// Outcome records whether a mutator changed the room or refused for lack of privilege.
type Outcome string

const (
	OutcomeApplied Outcome = "applied"
	OutcomeDenied  Outcome = "denied"
)

type MutationResult struct {
	Outcome Outcome     `json:"outcome"`
	Room    studio.Room `json:"room"`
}

func Applied(r studio.Room) MutationResult {
	return MutationResult{Outcome: OutcomeApplied, Room: r}
}

func Denied(r studio.Room) MutationResult {
	return MutationResult{Outcome: OutcomeDenied, Room: r}
}

type RoomSummary struct {
	ID        int             `json:"id"`
	Name      string          `json:"name"`
	Kind      studio.RoomKind `json:"kind"`
	Platforms []string        `json:"platforms"`
	LogCount  int             `json:"log_count"`
}

// Allowed commission percentages for model rooms.
var ModelPercentages = []int{60, 65, 70, 75, 80}
