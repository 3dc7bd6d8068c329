package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/trentd187/golf-scoring/internal/models"
)

// GormRepository is the Postgres-backed Repository.
type GormRepository struct {
	db *gorm.DB
}

// NewGorm wraps an open *gorm.DB.
func NewGorm(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (r *GormRepository) ListCompetitions(ctx context.Context) ([]models.Competition, error) {
	var out []models.Competition
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list competitions: %w", err)
	}
	return out, nil
}

func (r *GormRepository) CreateCompetition(ctx context.Context, c *models.Competition) error {
	// Create also inserts c.Holes through the has-many association.
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("create competition: %w", err)
	}
	return nil
}

func (r *GormRepository) GetCompetition(ctx context.Context, id uuid.UUID) (*models.Competition, error) {
	var c models.Competition
	err := r.db.WithContext(ctx).
		Preload("Holes", func(db *gorm.DB) *gorm.DB { return db.Order("hole_number") }).
		Preload("Groups", func(db *gorm.DB) *gorm.DB { return db.Order("group_number") }).
		Preload("Groups.Players", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Groups.Players.Scores").
		First(&c, "id = ?", id).Error
	if err != nil {
		return nil, fmt.Errorf("get competition %s: %w", id, notFound(err))
	}
	return &c, nil
}

func (r *GormRepository) ListCompetitionIDsByStatus(ctx context.Context, status models.CompetitionStatus) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&models.Competition{}).
		Where("status = ?", status).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("list %s competitions: %w", status, err)
	}
	return ids, nil
}

func (r *GormRepository) SetCompetitionStatus(ctx context.Context, id uuid.UUID, status models.CompetitionStatus) error {
	res := r.db.WithContext(ctx).Model(&models.Competition{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("set competition status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("set competition status %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *GormRepository) ReplaceHoles(ctx context.Context, competitionID uuid.UUID, holes []models.Hole) error {
	// Delete and re-insert in one transaction so readers never see half a card.
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("competition_id = ?", competitionID).Delete(&models.Hole{}).Error; err != nil {
			return fmt.Errorf("delete holes: %w", err)
		}
		if len(holes) == 0 {
			return nil
		}
		for i := range holes {
			holes[i].CompetitionID = competitionID
		}
		if err := tx.Create(&holes).Error; err != nil {
			return fmt.Errorf("insert holes: %w", err)
		}
		return nil
	})
}

func (r *GormRepository) CreateGroup(ctx context.Context, g *models.Group) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var exists int64
		if err := tx.Model(&models.Competition{}).Where("id = ?", g.CompetitionID).Count(&exists).Error; err != nil {
			return fmt.Errorf("check competition: %w", err)
		}
		if exists == 0 {
			return fmt.Errorf("create group: %w", ErrNotFound)
		}

		var maxNumber int
		if err := tx.Model(&models.Group{}).
			Where("competition_id = ?", g.CompetitionID).
			Select("COALESCE(MAX(group_number), 0)").
			Scan(&maxNumber).Error; err != nil {
			return fmt.Errorf("next group number: %w", err)
		}
		g.GroupNumber = maxNumber + 1
		for i := range g.Players {
			g.Players[i].CompetitionID = g.CompetitionID
			g.Players[i].Position = i
		}

		if err := tx.Create(g).Error; err != nil {
			return fmt.Errorf("create group: %w", err)
		}
		return nil
	})
}

func (r *GormRepository) GetPlayer(ctx context.Context, competitionID, playerID uuid.UUID) (*models.Player, error) {
	var p models.Player
	err := r.db.WithContext(ctx).
		Preload("Scores").
		Where("competition_id = ?", competitionID).
		First(&p, "id = ?", playerID).Error
	if err != nil {
		return nil, fmt.Errorf("get player %s: %w", playerID, notFound(err))
	}
	return &p, nil
}

func (r *GormRepository) UpdateCourseHandicap(ctx context.Context, playerID uuid.UUID, courseHandicap float64) error {
	res := r.db.WithContext(ctx).Model(&models.Player{}).Where("id = ?", playerID).Update("course_handicap", courseHandicap)
	if res.Error != nil {
		return fmt.Errorf("update course handicap: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("update course handicap %s: %w", playerID, ErrNotFound)
	}
	return nil
}

func (r *GormRepository) UpsertScore(ctx context.Context, playerID uuid.UUID, hole, gross int) error {
	score := models.Score{PlayerID: playerID, HoleNumber: hole, GrossScore: gross}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "player_id"}, {Name: "hole_number"}},
		DoUpdates: clause.AssignmentColumns([]string{"gross_score", "updated_at"}),
	}).Create(&score).Error
	if err != nil {
		return fmt.Errorf("upsert score: %w", err)
	}
	return nil
}

func (r *GormRepository) DeleteScore(ctx context.Context, playerID uuid.UUID, hole int) error {
	err := r.db.WithContext(ctx).
		Where("player_id = ? AND hole_number = ?", playerID, hole).
		Delete(&models.Score{}).Error
	if err != nil {
		return fmt.Errorf("delete score: %w", err)
	}
	return nil
}

func (r *GormRepository) ListTeamSnapshots(ctx context.Context, competitionID uuid.UUID) ([]models.TeamSnapshot, error) {
	var out []models.TeamSnapshot
	if err := r.db.WithContext(ctx).Where("competition_id = ?", competitionID).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list team snapshots: %w", err)
	}
	return out, nil
}

func (r *GormRepository) SaveTeamSnapshots(ctx context.Context, snapshots []models.TeamSnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "competition_id"}, {Name: "group_id"}, {Name: "slot"}},
		DoUpdates: clause.AssignmentColumns([]string{"total", "computed_at"}),
	}).Create(&snapshots).Error
	if err != nil {
		return fmt.Errorf("save team snapshots: %w", err)
	}
	return nil
}
