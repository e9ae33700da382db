package cmd

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/aurenz-max/LiftTrack/internal/domain"
	mongorepo "github.com/aurenz-max/LiftTrack/internal/repository/mongo"
	"github.com/aurenz-max/LiftTrack/internal/resttimer"
	"github.com/aurenz-max/LiftTrack/internal/service"
	"github.com/aurenz-max/LiftTrack/internal/snapshot"
	"github.com/aurenz-max/LiftTrack/internal/storage"
	"github.com/aurenz-max/LiftTrack/internal/workout"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Keys kept next to the workout snapshot.
const (
	tokenKey  = "session-token"
	secretKey = "jwt-secret"
	unitsKey  = "units"
)

var errNotLoggedIn = errors.New("not logged in, run `lifttrack login` first")

// app is the composition root shared by every command.
type app struct {
	store   *snapshot.Store
	timer   *resttimer.Timer
	machine *workout.Machine
	client  *mongo.Client
	db      *mongo.Database

	auth      service.AuthService
	exercises service.ExerciseService
	workouts  service.WorkoutService
	sessions  service.SessionService
	history   service.HistoryService

	unsubscribe func()
}

func openApp(ctx context.Context) (*app, error) {
	// --- Local store ---
	store, err := snapshot.Open(cfg.Local.DataDir, cfg.Local.SnapshotKey)
	if err != nil {
		return nil, err
	}
	a := &app{store: store, timer: resttimer.New()}
	a.machine = workout.NewMachine(workout.WithRestTimer(a.timer))

	// --- Database Connection ---
	// The client connects on first use, so local-only commands work offline.
	a.client, err = mongorepo.NewClient(cfg.Database.URI, cfg.Database.ConnectTimeout)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("configure database client: %w", err)
	}
	a.db = a.client.Database(cfg.Database.Name)

	// --- Initialize Storage ---
	var fileStorage storage.FileStorage = storage.Disabled{}
	if cfg.S3.Enabled() {
		fileStorage, err = storage.NewS3Storage(ctx, cfg.S3)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("initialize export storage: %w", err)
		}
	}

	// --- Initialize Repositories ---
	userRepo := mongorepo.NewMongoUserRepository(a.db)
	sessionRepo := mongorepo.NewMongoSessionRepository(a.db)
	customRepo := mongorepo.NewMongoCustomExerciseRepository(a.db)
	exportRepo := mongorepo.NewMongoExportRepository(a.db)

	// --- Initialize Services ---
	secret, err := a.jwtSecret(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.auth, err = service.NewAuthService(userRepo, secret, cfg.JWT.Expiration)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.exercises = service.NewExerciseService(customRepo)
	a.workouts = service.NewWorkoutService(a.machine, sessionRepo, a.auth, a.exercises, store, a.timer, service.WorkoutOptions{
		DefaultRestSeconds: cfg.Workout.DefaultRestSeconds,
		HistoryLimit:       cfg.History.Limit,
		HistoryWindow:      cfg.History.Window,
	})
	a.sessions = service.NewSessionService(a.machine, sessionRepo, store, service.SaveOptions{
		MaxAttempts: cfg.Workout.SaveAttempts,
		Timeout:     cfg.Workout.SaveTimeout,
	})
	a.history = service.NewHistoryService(sessionRepo, exportRepo, fileStorage, service.HistoryOptions{
		Limit:          cfg.History.Limit,
		Window:         cfg.History.Window,
		LinkExpiration: cfg.S3.LinkExpiration,
	})

	// --- Workout state ---
	a.unsubscribe = a.machine.Subscribe(store.Listener())
	if _, _, err := a.workouts.Restore(ctx); err != nil {
		log.Warnf("could not restore the workout in progress: %s", err)
	}
	return a, nil
}

func (a *app) Close() {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
	a.timer.Stop()
	if a.client != nil {
		if err := mongorepo.DisconnectDB(a.client); err != nil {
			log.Debugf("disconnect database: %s", err)
		}
	}
	if err := a.store.Close(); err != nil {
		log.Errorf("close local store: %s", err)
	}
}

// withApp opens the app around a command.
func withApp(fn func(cmd *cobra.Command, args []string, a *app) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()
		return fn(cmd, args, a)
	}
}

// jwtSecret returns the configured secret, or one generated for this device.
func (a *app) jwtSecret(ctx context.Context) (string, error) {
	if cfg.JWT.Secret != "" {
		return cfg.JWT.Secret, nil
	}
	secret, ok, err := a.store.Get(ctx, secretKey)
	if err != nil {
		return "", err
	}
	if ok {
		return secret, nil
	}
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate token secret: %w", err)
	}
	secret = hex.EncodeToString(raw)
	if err := a.store.Put(ctx, secretKey, secret); err != nil {
		return "", err
	}
	return secret, nil
}

// userID reads the signed-in user from the stored token. No network needed.
func (a *app) userID(ctx context.Context) (primitive.ObjectID, error) {
	token, ok, err := a.store.Get(ctx, tokenKey)
	if err != nil {
		return primitive.NilObjectID, err
	}
	if !ok {
		return primitive.NilObjectID, errNotLoggedIn
	}
	id, err := a.auth.ParseToken(token)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("session expired: %w", errNotLoggedIn)
	}
	return id, nil
}

func (a *app) signIn(ctx context.Context, token string, user *domain.User) error {
	if err := a.store.Put(ctx, tokenKey, token); err != nil {
		return err
	}
	return a.rememberUnits(ctx, user.Profile.Units)
}

func (a *app) rememberUnits(ctx context.Context, unit domain.Unit) error {
	return a.store.Put(ctx, unitsKey, string(unit))
}

// units is the display unit cached at login, so offline commands can label weights.
func (a *app) units(ctx context.Context) domain.Unit {
	raw, ok, err := a.store.Get(ctx, unitsKey)
	if err != nil || !ok || !domain.Unit(raw).Valid() {
		return domain.DefaultUnits
	}
	return domain.Unit(raw)
}

// online fails fast when the database cannot be reached.
func (a *app) online() error {
	if err := mongorepo.Ping(a.client, cfg.Database.ConnectTimeout); err != nil {
		return fmt.Errorf("cannot reach the database at %s: %w", cfg.Database.URI, err)
	}
	return nil
}

// ensureIndexes runs on the commands that first touch a database.
func (a *app) ensureIndexes(ctx context.Context) {
	mongorepo.EnsureIndexes(ctx, a.db)
}

// confirm asks a yes/no question unless --yes was given.
func confirm(cmd *cobra.Command, message string) (bool, error) {
	if yes, _ := cmd.Flags().GetBool("yes"); yes {
		return true, nil
	}
	var ok bool
	prompt := &survey.Confirm{
		Message: message,
		Default: false,
	}
	if err := survey.AskOne(prompt, &ok); err != nil {
		return false, err
	}
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
	}
	return ok, nil
}
