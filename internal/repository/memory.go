package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/trentd187/golf-scoring/internal/models"
)

type snapshotKey struct {
	groupID uuid.UUID
	slot    int
}

// MemoryRepository keeps everything in process memory. It is used when no database is
// configured and as the store behind handler and service tests. Reads return copies, so
// callers can never mutate stored state.
type MemoryRepository struct {
	mu           sync.RWMutex
	competitions map[uuid.UUID]models.Competition // Holes included, Groups not
	order        []uuid.UUID                      // Creation order
	groups       map[uuid.UUID][]models.Group     // By competition, Players not included
	players      map[uuid.UUID]models.Player      // Scores not included
	scores       map[uuid.UUID]map[int]models.Score
	snapshots    map[uuid.UUID]map[snapshotKey]models.TeamSnapshot
}

// NewMemory returns an empty MemoryRepository.
func NewMemory() *MemoryRepository {
	return &MemoryRepository{
		competitions: make(map[uuid.UUID]models.Competition),
		groups:       make(map[uuid.UUID][]models.Group),
		players:      make(map[uuid.UUID]models.Player),
		scores:       make(map[uuid.UUID]map[int]models.Score),
		snapshots:    make(map[uuid.UUID]map[snapshotKey]models.TeamSnapshot),
	}
}

func (r *MemoryRepository) ListCompetitions(ctx context.Context) ([]models.Competition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Competition, 0, len(r.order))
	for i := len(r.order) - 1; i >= 0; i-- {
		c := r.competitions[r.order[i]]
		c.Holes = nil
		out = append(out, c)
	}
	return out, nil
}

func (r *MemoryRepository) CreateCompetition(ctx context.Context, c *models.Competition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Status == "" {
		c.Status = models.CompetitionStatusUpcoming
	}
	c.CreatedAt, c.UpdatedAt = now, now
	for i := range c.Holes {
		c.Holes[i].ID = uuid.New()
		c.Holes[i].CompetitionID = c.ID
	}

	stored := *c
	stored.Holes = append([]models.Hole(nil), c.Holes...)
	stored.Groups = nil
	r.competitions[c.ID] = stored
	r.order = append(r.order, c.ID)
	return nil
}

func (r *MemoryRepository) GetCompetition(ctx context.Context, id uuid.UUID) (*models.Competition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.competitions[id]
	if !ok {
		return nil, fmt.Errorf("get competition %s: %w", id, ErrNotFound)
	}
	c.Holes = append([]models.Hole(nil), c.Holes...)
	sort.Slice(c.Holes, func(i, j int) bool { return c.Holes[i].HoleNumber < c.Holes[j].HoleNumber })

	groups := r.groups[id]
	c.Groups = make([]models.Group, len(groups))
	for i, g := range groups {
		g.Players = r.playersOf(g.ID)
		c.Groups[i] = g
	}
	return &c, nil
}

// playersOf must be called with the read lock held.
func (r *MemoryRepository) playersOf(groupID uuid.UUID) []models.Player {
	var out []models.Player
	for _, p := range r.players {
		if p.GroupID == groupID {
			p.Scores = r.scoresOf(p.ID)
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

// scoresOf must be called with the read lock held.
func (r *MemoryRepository) scoresOf(playerID uuid.UUID) []models.Score {
	cells := r.scores[playerID]
	out := make([]models.Score, 0, len(cells))
	for _, s := range cells {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].HoleNumber < out[j].HoleNumber })
	return out
}

func (r *MemoryRepository) ListCompetitionIDsByStatus(ctx context.Context, status models.CompetitionStatus) ([]uuid.UUID, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var ids []uuid.UUID
	for _, id := range r.order {
		if r.competitions[id].Status == status {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (r *MemoryRepository) SetCompetitionStatus(ctx context.Context, id uuid.UUID, status models.CompetitionStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.competitions[id]
	if !ok {
		return fmt.Errorf("set competition status %s: %w", id, ErrNotFound)
	}
	c.Status = status
	c.UpdatedAt = time.Now()
	r.competitions[id] = c
	return nil
}

func (r *MemoryRepository) ReplaceHoles(ctx context.Context, competitionID uuid.UUID, holes []models.Hole) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.competitions[competitionID]
	if !ok {
		return fmt.Errorf("replace holes %s: %w", competitionID, ErrNotFound)
	}
	c.Holes = make([]models.Hole, len(holes))
	for i, h := range holes {
		h.ID = uuid.New()
		h.CompetitionID = competitionID
		c.Holes[i] = h
	}
	r.competitions[competitionID] = c
	return nil
}

func (r *MemoryRepository) CreateGroup(ctx context.Context, g *models.Group) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.competitions[g.CompetitionID]; !ok {
		return fmt.Errorf("create group: %w", ErrNotFound)
	}

	now := time.Now()
	g.ID = uuid.New()
	g.GroupNumber = len(r.groups[g.CompetitionID]) + 1
	g.CreatedAt = now
	if g.StartingHole == 0 {
		g.StartingHole = 1
	}
	for i := range g.Players {
		p := &g.Players[i]
		p.ID = uuid.New()
		p.CompetitionID = g.CompetitionID
		p.GroupID = g.ID
		p.Position = i
		p.CreatedAt, p.UpdatedAt = now, now
		stored := *p
		stored.Scores = nil
		r.players[p.ID] = stored
	}

	stored := *g
	stored.Players = nil
	r.groups[g.CompetitionID] = append(r.groups[g.CompetitionID], stored)
	return nil
}

func (r *MemoryRepository) GetPlayer(ctx context.Context, competitionID, playerID uuid.UUID) (*models.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.players[playerID]
	if !ok || p.CompetitionID != competitionID {
		return nil, fmt.Errorf("get player %s: %w", playerID, ErrNotFound)
	}
	p.Scores = r.scoresOf(p.ID)
	return &p, nil
}

func (r *MemoryRepository) UpdateCourseHandicap(ctx context.Context, playerID uuid.UUID, courseHandicap float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.players[playerID]
	if !ok {
		return fmt.Errorf("update course handicap %s: %w", playerID, ErrNotFound)
	}
	p.CourseHandicap = courseHandicap
	p.UpdatedAt = time.Now()
	r.players[playerID] = p
	return nil
}

func (r *MemoryRepository) UpsertScore(ctx context.Context, playerID uuid.UUID, hole, gross int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.players[playerID]; !ok {
		return fmt.Errorf("upsert score: %w", ErrNotFound)
	}
	cells := r.scores[playerID]
	if cells == nil {
		cells = make(map[int]models.Score)
		r.scores[playerID] = cells
	}

	now := time.Now()
	s, ok := cells[hole]
	if !ok {
		s = models.Score{ID: uuid.New(), PlayerID: playerID, HoleNumber: hole, EnteredAt: now}
	}
	s.GrossScore = gross
	s.UpdatedAt = now
	cells[hole] = s
	return nil
}

func (r *MemoryRepository) DeleteScore(ctx context.Context, playerID uuid.UUID, hole int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.scores[playerID], hole)
	return nil
}

func (r *MemoryRepository) ListTeamSnapshots(ctx context.Context, competitionID uuid.UUID) ([]models.TeamSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.TeamSnapshot, 0, len(r.snapshots[competitionID]))
	for _, s := range r.snapshots[competitionID] {
		out = append(out, s)
	}
	return out, nil
}

func (r *MemoryRepository) SaveTeamSnapshots(ctx context.Context, snapshots []models.TeamSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range snapshots {
		byTeam := r.snapshots[s.CompetitionID]
		if byTeam == nil {
			byTeam = make(map[snapshotKey]models.TeamSnapshot)
			r.snapshots[s.CompetitionID] = byTeam
		}
		key := snapshotKey{groupID: s.GroupID, slot: s.Slot}
		if existing, ok := byTeam[key]; ok {
			s.ID = existing.ID
		} else if s.ID == uuid.Nil {
			s.ID = uuid.New()
		}
		byTeam[key] = s
	}
	return nil
}
