// Package models defines the data structures (models) that map to database tables.
// GORM uses these structs to generate SQL queries and map database rows back to Go values.
// The struct field tags (the backtick strings like `gorm:"..."`) tell GORM how to handle
// each field: its column type, constraints, default values, and relationships.
//
// The data model represents a single-day golf competition:
//   - A Competition has a type (medal, 4BBB, alliance, stableford), a handicap allowance
//     and an 18-hole card
//   - Players are placed into Groups (tee times); the group is also the team unit for
//     4BBB pairs and alliance teams
//   - Scores hold one gross score per player per hole
//
// Nets, points and team totals are never stored on these rows. They are derived on every
// read by the scoring package. The one exception is TeamSnapshot, a periodically saved
// copy of each team's total that is compared against the live number.
package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/trentd187/golf-scoring/internal/scoring"
)

// CompetitionStatus tracks the lifecycle of a competition.
type CompetitionStatus string

const (
	CompetitionStatusUpcoming  CompetitionStatus = "upcoming"  // Created, no scores yet
	CompetitionStatusActive    CompetitionStatus = "active"    // Scores are being entered
	CompetitionStatusCompleted CompetitionStatus = "completed" // Results are final
)

// Competition is the top-level container: one day of golf under one format.
type Competition struct {
	ID                uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name              string            `gorm:"not null"`
	Type              scoring.Format    `gorm:"type:competition_type;not null"`
	Status            CompetitionStatus `gorm:"type:competition_status;not null;default:'upcoming'"`
	HandicapAllowance *float64          `gorm:"type:decimal(5,2)"` // Percent; nil means the type's default
	PlayDate          *time.Time        // Optional; pointer = nullable
	CreatedAt         time.Time
	UpdatedAt         time.Time
	Holes             []Hole  `gorm:"foreignKey:CompetitionID"` // Empty means the built-in course card is used
	Groups            []Group `gorm:"foreignKey:CompetitionID"`
}

// Allowance returns the handicap allowance percentage that applies to this competition.
func (c *Competition) Allowance() float64 {
	if c.HandicapAllowance != nil && *c.HandicapAllowance >= 0 {
		return *c.HandicapAllowance
	}
	return c.Type.DefaultAllowance()
}

// Hole stores par and stroke index for one hole of the competition's card.
// The unique index (idx_competition_hole) allows one row per hole number.
type Hole struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompetitionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_competition_hole"`
	HoleNumber    int       `gorm:"not null;uniqueIndex:idx_competition_hole"` // 1–18
	Par           int       `gorm:"not null"`                                  // Usually 3, 4 or 5
	StrokeIndex   int       `gorm:"not null"`                                  // 1 = hardest, gets the first handicap stroke
	Yardage       *int      // Optional, informational only
}

// Group is a tee-time group. For 4BBB the group holds two pairs (positions 0–1 and 2–3);
// for alliance the whole group is one team.
type Group struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompetitionID uuid.UUID  `gorm:"type:uuid;not null"`
	GroupNumber   int        `gorm:"not null"` // Display order: group 1 tees off first
	TeeTime       *time.Time // Optional scheduled start
	StartingHole  int        `gorm:"not null;default:1"` // Shotgun starts begin on different holes
	CreatedAt     time.Time
	Players       []Player `gorm:"foreignKey:GroupID"`
}

// Player is one competitor in a group. Position is significant: 4BBB pairs are formed
// from it.
type Player struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompetitionID  uuid.UUID `gorm:"type:uuid;not null;index"`
	GroupID        uuid.UUID `gorm:"type:uuid;not null"`
	Name           string    `gorm:"not null"`
	Position       int       `gorm:"not null;default:0"`
	CourseHandicap float64   `gorm:"type:decimal(4,1);not null;default:0"` // Entered directly; may change mid-round
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Scores         []Score `gorm:"foreignKey:PlayerID"`
}

// Score is the gross strokes a player took on one hole. A hole with no row has not been
// played. The composite unique index is what makes writes last-write-wins per cell.
type Score struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PlayerID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_player_hole"`
	HoleNumber int       `gorm:"not null;uniqueIndex:idx_player_hole"` // 1–18
	GrossScore int       `gorm:"not null"`
	EnteredAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

// TeamSnapshot is the persisted aggregate for one team: the "backend" team points.
// It goes stale as soon as a score changes and is refreshed by the snapshot job.
type TeamSnapshot struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompetitionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_snapshot_team"`
	GroupID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_snapshot_team"`
	Slot          int       `gorm:"not null;uniqueIndex:idx_snapshot_team"` // Team index within the group
	Total         int       `gorm:"not null"`
	ComputedAt    time.Time `gorm:"not null"`
}
