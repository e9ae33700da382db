// internal/service/session_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aurenz-max/LiftTrack/internal/calc"
	"github.com/aurenz-max/LiftTrack/internal/domain"
	"github.com/aurenz-max/LiftTrack/internal/repository"
	"github.com/aurenz-max/LiftTrack/internal/workout"
	"github.com/cenkalti/backoff/v4"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrNoActiveWorkout  = errors.New("no workout in progress")
	ErrSaveFailed       = errors.New("failed to save workout session")
	ErrNoPendingSession = errors.New("no session is waiting to be saved")
)

// PendingStore keeps a frozen session on the device until the remote save confirms.
type PendingStore interface {
	SavePending(ctx context.Context, p domain.PendingSession) error
	LoadPending(ctx context.Context) (domain.PendingSession, bool, error)
	ClearPending(ctx context.Context) error
}

// Summary is what the user sees after a workout is saved.
type Summary struct {
	SessionID     primitive.ObjectID
	Name          string
	SplitType     domain.SplitType
	Duration      int64 // seconds
	TotalVolume   float64
	CompletedSets int
	TotalSets     int
	PRCount       int
	Exercises     []ExerciseSummary
}

type ExerciseSummary struct {
	ExerciseName  string
	CompletedSets int
	VolumeTotal   float64
	HasPR         bool
}

// SaveOptions bound the remote save of a finished session.
type SaveOptions struct {
	MaxAttempts     int
	Timeout         time.Duration // whole save, all attempts included
	InitialInterval time.Duration
}

func (o SaveOptions) withDefaults() SaveOptions {
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = 4
	}
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	if o.InitialInterval <= 0 {
		o.InitialInterval = 500 * time.Millisecond
	}
	return o
}

type SessionService interface {
	// Finish saves the active workout and, only once the store confirms,
	// ends it. On failure the workout stays active and the frozen session
	// stays on the device, so Finish or RetryPending can be called again.
	Finish(ctx context.Context, userID primitive.ObjectID, notes string) (*Summary, error)
	// RetryPending re-sends a session frozen by an earlier failed Finish.
	RetryPending(ctx context.Context, userID primitive.ObjectID) (*Summary, error)
	Pending(ctx context.Context) (domain.PendingSession, bool, error)
}

type sessionService struct {
	engine  workout.Engine
	repo    repository.SessionRepository
	pending PendingStore
	opts    SaveOptions
	now     func() time.Time
}

func NewSessionService(engine workout.Engine, repo repository.SessionRepository, pending PendingStore, opts SaveOptions) SessionService {
	return &sessionService{
		engine:  engine,
		repo:    repo,
		pending: pending,
		opts:    opts.withDefaults(),
		now:     time.Now,
	}
}

func (s *sessionService) Finish(ctx context.Context, userID primitive.ObjectID, notes string) (*Summary, error) {
	w, ok := s.engine.Active()
	if !ok {
		return nil, ErrNoActiveWorkout
	}

	stored, found, err := s.pending.LoadPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: read pending session: %v", ErrSaveFailed, err)
	}
	// A leftover from another workout goes out first so it is never overwritten.
	if found && stored.Session.WorkoutID != w.ID {
		log.Warnf("flushing pending session of workout %s before finishing %s", stored.Session.WorkoutID, w.ID)
		if _, err := s.push(ctx, stored); err != nil {
			return nil, err
		}
		if err := s.pending.ClearPending(ctx); err != nil {
			log.Errorf("clear flushed pending session: %s", err)
		}
		found = false
	}

	// Phase 1: freeze locally. An unchanged workout reuses the earlier freeze,
	// keeping its duration stable across retries.
	var p domain.PendingSession
	if found && stored.Revision == w.Revision && stored.Session.Notes == notes {
		p = stored
	} else {
		now := s.now()
		p = domain.PendingSession{
			Session:  Assemble(w, userID, now),
			Revision: w.Revision,
			FrozenAt: now,
		}
		p.Session.Notes = notes
		if found {
			p.Attempts = stored.Attempts
		}
	}
	if err := s.pending.SavePending(ctx, p); err != nil {
		return nil, fmt.Errorf("%w: store session locally: %v", ErrSaveFailed, err)
	}

	// Phase 2: remote save.
	session, err := s.push(ctx, p)
	if err != nil {
		return nil, err
	}

	if current, ok := s.engine.Active(); ok && current.Revision != p.Revision {
		log.Warnf("workout %s changed while it was being saved; later edits are not in the session", w.ID)
	}
	s.engine.End()
	if err := s.pending.ClearPending(context.WithoutCancel(ctx)); err != nil {
		// harmless: a later push of the same workout overwrites this session
		log.Errorf("clear pending session: %s", err)
	}

	summary := Summarize(session)
	return &summary, nil
}

func (s *sessionService) RetryPending(ctx context.Context, userID primitive.ObjectID) (*Summary, error) {
	p, found, err := s.pending.LoadPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("read pending session: %w", err)
	}
	if !found || p.Session.UserID != userID {
		return nil, ErrNoPendingSession
	}

	session, err := s.push(ctx, p)
	if err != nil {
		return nil, err
	}

	if w, ok := s.engine.Active(); ok && w.ID == p.Session.WorkoutID {
		s.engine.End()
	}
	if err := s.pending.ClearPending(context.WithoutCancel(ctx)); err != nil {
		log.Errorf("clear pending session: %s", err)
	}

	summary := Summarize(session)
	return &summary, nil
}

func (s *sessionService) Pending(ctx context.Context) (domain.PendingSession, bool, error) {
	return s.pending.LoadPending(ctx)
}

// push sends p to the store with bounded exponential backoff. The save runs
// on a context detached from ctx's cancellation, so closing the view does not
// abort it; only the save timeout does. Failed attempts are recorded on the
// pending copy.
func (s *sessionService) push(ctx context.Context, p domain.PendingSession) (domain.WorkoutSession, error) {
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opts.Timeout)
	defer cancel()

	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = s.opts.InitialInterval
	eb.MaxElapsedTime = 0 // bounded by attempts and saveCtx
	policy := backoff.WithContext(backoff.WithMaxRetries(eb, uint64(s.opts.MaxAttempts-1)), saveCtx)

	var saved domain.WorkoutSession
	operation := func() error {
		attempt := p.Session
		attempt.Exercises = domain.CloneExercises(p.Session.Exercises)
		p.Attempts++

		id, err := s.repo.Create(saveCtx, &attempt)
		if err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return backoff.Permanent(err)
			}
			return err
		}
		attempt.ID = id
		saved = attempt
		return nil
	}
	notify := func(err error, wait time.Duration) {
		log.Warnf("saving workout %s failed (attempt %d), retrying in %s: %s", p.Session.WorkoutID, p.Attempts, wait, err)
	}

	if err := backoff.RetryNotify(operation, policy, notify); err != nil {
		p.LastError = err.Error()
		if perr := s.pending.SavePending(context.WithoutCancel(ctx), p); perr != nil {
			log.Errorf("record failed save attempt: %s", perr)
		}
		log.Errorf("giving up on saving workout %s after %d attempts: %s", p.Session.WorkoutID, p.Attempts, err)
		return domain.WorkoutSession{}, fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}

	log.Infof("saved workout %s as session %s", p.Session.WorkoutID, saved.ID.Hex())
	return saved, nil
}

// Assemble freezes an active workout into a session record completed at now.
// CompletedAt itself is left for the store to stamp.
func Assemble(w domain.ActiveWorkout, userID primitive.ObjectID, now time.Time) domain.WorkoutSession {
	exercises := domain.CloneExercises(w.Exercises)
	if exercises == nil {
		exercises = []domain.WorkoutExercise{}
	}
	return domain.WorkoutSession{
		UserID:      userID,
		WorkoutID:   w.ID,
		SplitType:   w.SplitType,
		Name:        w.Name,
		StartedAt:   w.StartedAt,
		Duration:    calc.WorkoutDuration(w.StartedAt, now),
		TotalVolume: calc.WorkoutVolume(exercises),
		Exercises:   exercises,
	}
}

func Summarize(session domain.WorkoutSession) Summary {
	summary := Summary{
		SessionID:     session.ID,
		Name:          session.Name,
		SplitType:     session.SplitType,
		Duration:      session.Duration,
		TotalVolume:   calc.WorkoutVolume(session.Exercises),
		CompletedSets: calc.CompletedSetCount(session.Exercises),
		TotalSets:     calc.TotalSetCount(session.Exercises),
		PRCount:       calc.PRCount(session.Exercises),
		Exercises:     make([]ExerciseSummary, 0, len(session.Exercises)),
	}
	for _, ex := range session.Exercises {
		one := []domain.WorkoutExercise{ex}
		summary.Exercises = append(summary.Exercises, ExerciseSummary{
			ExerciseName:  ex.ExerciseName,
			CompletedSets: calc.CompletedSetCount(one),
			VolumeTotal:   ex.VolumeTotal,
			HasPR:         calc.PRCount(one) > 0,
		})
	}
	return summary
}
