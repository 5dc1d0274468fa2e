package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"showcase/contexts/showcase/voting-service/domain/entities"
	domainerrors "showcase/contexts/showcase/voting-service/domain/errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// VotableDirectory consults the projects table owned by the project
// context; a project takes votes only while approved.
type VotableDirectory struct {
	db *gorm.DB
}

func NewVotableDirectory(db *gorm.DB) *VotableDirectory {
	return &VotableDirectory{db: db}
}

func (d *VotableDirectory) ProjectVotable(ctx context.Context, projectID string) (bool, error) {
	var count int64
	err := d.db.WithContext(ctx).
		Table("projects").
		Where("project_id = ? AND status = ?", strings.TrimSpace(projectID), "approved").
		Count(&count).
		Error
	return count > 0, err
}

func (r *Repository) GetVote(ctx context.Context, voterIP string) (entities.Vote, error) {
	var row voteModel
	err := r.db.WithContext(ctx).
		Where("voter_ip = ?", strings.TrimSpace(voterIP)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Vote{}, domainerrors.ErrVoteNotFound
		}
		return entities.Vote{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) UpsertVote(ctx context.Context, vote entities.Vote) error {
	row := voteModelFromEntity(vote)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "voter_ip"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"project_id",
				"vote_change_count",
				"last_voted_at",
			}),
		}).
		Create(&row).
		Error
}

func (r *Repository) CountVotes(ctx context.Context, projectIDs []string) (map[string]int, error) {
	counts := map[string]int{}
	if len(projectIDs) == 0 {
		return counts, nil
	}
	type tally struct {
		ProjectID string `gorm:"column:project_id"`
		Total     int    `gorm:"column:total"`
	}
	var rows []tally
	err := r.db.WithContext(ctx).
		Model(&voteModel{}).
		Select("project_id, COUNT(*) AS total").
		Where("project_id IN ?", projectIDs).
		Group("project_id").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.ProjectID] = row.Total
	}
	return counts, nil
}

func (r *Repository) TotalVotes(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&voteModel{}).Count(&total).Error
	return total, err
}

func (r *Repository) TotalVoteChanges(ctx context.Context) (int64, error) {
	var total *int64
	err := r.db.WithContext(ctx).
		Model(&voteModel{}).
		Select("SUM(vote_change_count)").
		Scan(&total).
		Error
	if err != nil || total == nil {
		return 0, err
	}
	return *total, nil
}

type voteModel struct {
	VoterIP         string    `gorm:"column:voter_ip;primaryKey"`
	ProjectID       string    `gorm:"column:project_id"`
	VoteChangeCount int       `gorm:"column:vote_change_count"`
	FirstVotedAt    time.Time `gorm:"column:first_voted_at"`
	LastVotedAt     time.Time `gorm:"column:last_voted_at"`
}

func (voteModel) TableName() string {
	return "project_votes"
}

func voteModelFromEntity(item entities.Vote) voteModel {
	return voteModel{
		VoterIP:         strings.TrimSpace(item.VoterIP),
		ProjectID:       strings.TrimSpace(item.ProjectID),
		VoteChangeCount: item.VoteChangeCount,
		FirstVotedAt:    item.FirstVotedAt.UTC(),
		LastVotedAt:     item.LastVotedAt.UTC(),
	}
}

func (m voteModel) toEntity() entities.Vote {
	return entities.Vote{
		VoterIP:         m.VoterIP,
		ProjectID:       m.ProjectID,
		VoteChangeCount: m.VoteChangeCount,
		FirstVotedAt:    m.FirstVotedAt.UTC(),
		LastVotedAt:     m.LastVotedAt.UTC(),
	}
}
