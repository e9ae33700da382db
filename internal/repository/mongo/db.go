package mongo

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Default connection timeout
const defaultTimeout = 10 * time.Second

// NewClient configures a MongoDB client without contacting the server. The
// driver connects on the first operation, so commands that never touch the
// database never need it to be reachable.
func NewClient(uri string, timeout time.Duration) (*mongo.Client, error) {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	clientOptions := options.Client().ApplyURI(uri).SetServerSelectionTimeout(timeout)
	return mongo.Connect(context.Background(), clientOptions)
}

// Ping checks that the primary is reachable. NewClient succeeds lazily, so
// this is what proves the server is there.
func Ping(client *mongo.Client, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return client.Ping(ctx, readpref.Primary())
}

// DisconnectDB gracefully disconnects the MongoDB client.
func DisconnectDB(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	return client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes of every collection. Failures are logged
// and do not stop the caller; queries still work, only slower or without the
// uniqueness guarantees.
func EnsureIndexes(ctx context.Context, db *mongo.Database) {
	ensure := map[string]func(context.Context, *mongo.Collection) error{
		sessionCollectionName:        EnsureSessionIndexes,
		customExerciseCollectionName: EnsureCustomExerciseIndexes,
		userCollectionName:           EnsureUserIndexes,
		exportCollectionName:         EnsureExportIndexes,
	}
	for name, fn := range ensure {
		if err := fn(ctx, db.Collection(name)); err != nil {
			log.Warnf("failed to create indexes for collection %s: %s", name, err)
		}
	}
}
