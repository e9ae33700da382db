package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aurenz-max/LiftTrack/internal/calc"
	"github.com/aurenz-max/LiftTrack/internal/domain"
	"github.com/aurenz-max/LiftTrack/internal/repository"
	"github.com/aurenz-max/LiftTrack/internal/storage"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrExportNotFound  = errors.New("export not found")
	ErrNothingToExport = errors.New("no workouts to export")
)

const exportContentType = "application/json"

// WeeklyStats is the dashboard line: the trailing seven days plus the total
// number of sessions inspected.
type WeeklyStats struct {
	Volume   float64
	Sessions int
	Total    int
}

// Progress is one exercise's recent performance.
type Progress struct {
	ExerciseID    string
	Entries       []domain.ExerciseHistoryEntry
	BestOneRepMax float64
}

// HistoryOptions bound the history reads.
type HistoryOptions struct {
	Limit          int // default list size and exercise history entries
	Window         int // sessions scanned for exercise history and weekly stats
	LinkExpiration time.Duration
}

type HistoryService interface {
	List(ctx context.Context, userID primitive.ObjectID, limit int) ([]domain.WorkoutSession, error)
	// Get returns found=false, not an error, when the session does not exist.
	Get(ctx context.Context, userID, id primitive.ObjectID) (*domain.WorkoutSession, bool, error)
	ListByType(ctx context.Context, userID primitive.ObjectID, split domain.SplitType, limit int) ([]domain.WorkoutSession, error)
	LastByType(ctx context.Context, userID primitive.ObjectID, split domain.SplitType) (*domain.WorkoutSession, bool, error)
	ExerciseHistory(ctx context.Context, userID primitive.ObjectID, exerciseID string) (*Progress, error)
	Delete(ctx context.Context, userID, id primitive.ObjectID) error
	Weekly(ctx context.Context, userID primitive.ObjectID) (WeeklyStats, error)

	// Export uploads a JSON archive of every session and returns its metadata
	// with a time-limited download link.
	Export(ctx context.Context, userID primitive.ObjectID) (*domain.Export, error)
	ListExports(ctx context.Context, userID primitive.ObjectID) ([]domain.Export, error)
	DeleteExport(ctx context.Context, userID, id primitive.ObjectID) error
}

type historyService struct {
	sessions repository.SessionRepository
	exports  repository.ExportRepository
	storage  storage.FileStorage
	opts     HistoryOptions
	now      func() time.Time
}

func NewHistoryService(sessions repository.SessionRepository, exports repository.ExportRepository, fileStorage storage.FileStorage, opts HistoryOptions) HistoryService {
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Window <= 0 {
		opts.Window = 100
	}
	if opts.LinkExpiration <= 0 {
		opts.LinkExpiration = storage.DefaultPresignedURLExpiry
	}
	return &historyService{
		sessions: sessions,
		exports:  exports,
		storage:  fileStorage,
		opts:     opts,
		now:      time.Now,
	}
}

func (s *historyService) List(ctx context.Context, userID primitive.ObjectID, limit int) ([]domain.WorkoutSession, error) {
	if limit <= 0 {
		limit = s.opts.Limit
	}
	return s.sessions.ListByUser(ctx, userID, limit)
}

func (s *historyService) Get(ctx context.Context, userID, id primitive.ObjectID) (*domain.WorkoutSession, bool, error) {
	session, err := s.sessions.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return session, true, nil
}

func (s *historyService) ListByType(ctx context.Context, userID primitive.ObjectID, split domain.SplitType, limit int) ([]domain.WorkoutSession, error) {
	if !split.Valid() {
		return nil, fmt.Errorf("%w: unknown split type %q", ErrValidationFailed, split)
	}
	if limit <= 0 {
		limit = s.opts.Limit
	}
	return s.sessions.ListByType(ctx, userID, split, limit)
}

func (s *historyService) LastByType(ctx context.Context, userID primitive.ObjectID, split domain.SplitType) (*domain.WorkoutSession, bool, error) {
	sessions, err := s.ListByType(ctx, userID, split, 1)
	if err != nil {
		return nil, false, err
	}
	if len(sessions) == 0 {
		return nil, false, nil
	}
	return &sessions[0], true, nil
}

func (s *historyService) ExerciseHistory(ctx context.Context, userID primitive.ObjectID, exerciseID string) (*Progress, error) {
	entries, err := s.sessions.ExerciseHistory(ctx, userID, exerciseID, s.opts.Limit, s.opts.Window)
	if err != nil {
		return nil, fmt.Errorf("load history of %s: %w", exerciseID, err)
	}
	return &Progress{
		ExerciseID:    exerciseID,
		Entries:       entries,
		BestOneRepMax: calc.BestOneRepMax(entries),
	}, nil
}

func (s *historyService) Delete(ctx context.Context, userID, id primitive.ObjectID) error {
	err := s.sessions.Delete(ctx, userID, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrSessionNotFound
	}
	return err
}

func (s *historyService) Weekly(ctx context.Context, userID primitive.ObjectID) (WeeklyStats, error) {
	sessions, err := s.sessions.ListByUser(ctx, userID, s.opts.Window)
	if err != nil {
		return WeeklyStats{}, err
	}
	now := s.now()
	return WeeklyStats{
		Volume:   calc.WeeklyVolume(sessions, now),
		Sessions: calc.WeeklySessionCount(sessions, now),
		Total:    len(sessions),
	}, nil
}

// exportArchive is the document written to object storage.
type exportArchive struct {
	Version    int                     `json:"version"`
	UserID     string                  `json:"userId"`
	ExportedAt time.Time               `json:"exportedAt"`
	Sessions   []domain.WorkoutSession `json:"sessions"`
}

func (s *historyService) Export(ctx context.Context, userID primitive.ObjectID) (*domain.Export, error) {
	sessions, err := s.sessions.ListByUser(ctx, userID, 0)
	if err != nil {
		return nil, fmt.Errorf("list sessions for export: %w", err)
	}
	if len(sessions) == 0 {
		return nil, ErrNothingToExport
	}

	now := s.now().UTC()
	body, err := json.MarshalIndent(exportArchive{
		Version:    1,
		UserID:     userID.Hex(),
		ExportedAt: now,
		Sessions:   sessions,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode export archive: %w", err)
	}

	fileName := fmt.Sprintf("lifttrack-%s.json", now.Format("20060102-150405"))
	objectKey := fmt.Sprintf("exports/%s/%s.json", userID.Hex(), uuid.NewString())
	if err := s.storage.PutObject(ctx, objectKey, exportContentType, body); err != nil {
		return nil, fmt.Errorf("upload export archive: %w", err)
	}

	export := &domain.Export{
		UserID:       userID,
		ObjectKey:    objectKey,
		FileName:     fileName,
		ContentType:  exportContentType,
		Size:         int64(len(body)),
		SessionCount: len(sessions),
	}
	if _, err := s.exports.Create(ctx, export); err != nil {
		// don't leave an orphaned archive behind
		if derr := s.storage.DeleteObject(ctx, objectKey); derr != nil {
			log.Warnf("removing orphaned export %s: %s", objectKey, derr)
		}
		return nil, fmt.Errorf("record export: %w", err)
	}

	export.DownloadURL, err = s.storage.GeneratePresignedDownloadURL(ctx, objectKey, s.opts.LinkExpiration)
	if err != nil {
		return nil, fmt.Errorf("generate download link: %w", err)
	}
	log.Infof("exported %d sessions to %s", len(sessions), objectKey)
	return export, nil
}

// ListExports returns the user's exports with fresh download links. A link
// that cannot be generated is left empty.
func (s *historyService) ListExports(ctx context.Context, userID primitive.ObjectID) ([]domain.Export, error) {
	exports, err := s.exports.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range exports {
		url, err := s.storage.GeneratePresignedDownloadURL(ctx, exports[i].ObjectKey, s.opts.LinkExpiration)
		if err != nil {
			log.Warnf("download link for export %s: %s", exports[i].ID.Hex(), err)
			continue
		}
		exports[i].DownloadURL = url
	}
	return exports, nil
}

func (s *historyService) DeleteExport(ctx context.Context, userID, id primitive.ObjectID) error {
	export, err := s.exports.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrExportNotFound
		}
		return err
	}

	if err := s.storage.DeleteObject(ctx, export.ObjectKey); err != nil {
		return fmt.Errorf("delete export archive: %w", err)
	}
	if err := s.exports.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrExportNotFound
		}
		return err
	}
	return nil
}
