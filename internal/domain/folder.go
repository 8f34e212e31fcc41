package domain

import (
	"fmt"
	"time"
)

// Folder groups games, typically one per season. When
// HasCumulativeTracker is set, exactly one aggregate game with ID
// CumulativeGameID(folder.ID) mirrors the pins of every member game.
type Folder struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	HasCumulativeTracker bool      `json:"hasCumulativeTracker"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// AggregateNotes is the descriptive notes line carried by a folder's
// aggregate game. RenameFolder rewrites it so the rollup always names its
// owning folder.
func AggregateNotes(folderName string) string {
	return fmt.Sprintf("Aggregated pins from: %s", folderName)
}
