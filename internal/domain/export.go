package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Export stores metadata about a history archive uploaded to object storage.
// The archive itself resides in S3.
type Export struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID `bson:"userId" json:"userId"`
	ObjectKey    string             `bson:"objectKey" json:"-"` // key in the bucket, internal use
	FileName     string             `bson:"fileName" json:"fileName"`
	ContentType  string             `bson:"contentType" json:"contentType"`
	Size         int64              `bson:"size" json:"size"` // bytes
	SessionCount int                `bson:"sessionCount" json:"sessionCount"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	DownloadURL  string             `bson:"-" json:"downloadUrl,omitempty"` // presigned on read, never stored
}
