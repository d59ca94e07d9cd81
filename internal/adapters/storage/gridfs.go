package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"

	"imgbus/internal/core/domain"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type GridFSConfig struct {
	Host     string
	Port     int
	DBName   string
	Username string
	Password string
	PoolSize int
}

// fileBucket is the subset of *gridfs.Bucket the provider uses.
type fileBucket interface {
	UploadFromStream(filename string, source io.Reader, opts ...*options.UploadOptions) (primitive.ObjectID, error)
	DownloadToStreamByName(filename string, stream io.Writer, opts ...*options.NameOptions) (int64, error)
	Find(filter interface{}, opts ...*options.GridFSFindOptions) (*mongo.Cursor, error)
	Delete(fileID interface{}) error
}

// GridFS stores images in a MongoDB GridFS bucket. The locator path is
// the stored filename; writing replaces any previous file of that name.
type GridFS struct {
	client *mongo.Client
	bucket fileBucket
}

func NewGridFS(ctx context.Context, config GridFSConfig) (*GridFS, error) {
	opts := options.Client().
		ApplyURI(fmt.Sprintf("mongodb://%s:%d", config.Host, config.Port)).
		SetMaxPoolSize(uint64(config.PoolSize))

	if config.Username != "" {
		opts.SetAuth(options.Credential{
			AuthSource: config.DBName,
			Username:   config.Username,
			Password:   config.Password,
		})
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("error connecting to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("error pinging mongodb: %w", err)
	}

	bucket, err := gridfs.NewBucket(client.Database(config.DBName))
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("error opening gridfs bucket: %w", err)
	}

	return &GridFS{client: client, bucket: bucket}, nil
}

func (g *GridFS) Read(_ context.Context, path string) (*domain.ImageFile, error) {
	var buf bytes.Buffer
	if _, err := g.bucket.DownloadToStreamByName(path, &buf); err != nil {
		return nil, fmt.Errorf("error downloading %s from gridfs: %w", path, err)
	}

	return &domain.ImageFile{
		Data:        buf.Bytes(),
		Filename:    filepath.Base(path),
		ContentType: mime.TypeByExtension(filepath.Ext(path)),
	}, nil
}

// Write replaces the file stored under path: previous revisions are
// deleted before the upload so repeated writes to one locator never
// accumulate orphans.
func (g *GridFS) Write(_ context.Context, path string, file *domain.ImageFile) (string, error) {
	if err := g.deleteRevisions(path); err != nil {
		return "", err
	}

	id, err := g.bucket.UploadFromStream(path, bytes.NewReader(file.Data))
	if err != nil {
		return "", fmt.Errorf("error uploading %s to gridfs: %w", path, err)
	}

	log.Debug().Str("path", path).Str("fileId", id.Hex()).Msg("uploaded file to gridfs")

	return "gridfs://" + path, nil
}

func (g *GridFS) deleteRevisions(path string) error {
	cursor, err := g.bucket.Find(bson.M{"filename": path})
	if err != nil {
		return fmt.Errorf("error finding revisions of %s in gridfs: %w", path, err)
	}
	defer cursor.Close(context.Background())

	for cursor.Next(context.Background()) {
		var revision struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cursor.Decode(&revision); err != nil {
			return fmt.Errorf("error decoding revision of %s: %w", path, err)
		}

		if err := g.bucket.Delete(revision.ID); err != nil && !errors.Is(err, gridfs.ErrFileNotFound) {
			return fmt.Errorf("error deleting revision %s of %s: %w", revision.ID.Hex(), path, err)
		}

		log.Debug().Str("path", path).Str("fileId", revision.ID.Hex()).
			Msg("deleted previous gridfs revision")
	}

	return cursor.Err()
}

func (g *GridFS) Close() {
	if err := g.client.Disconnect(context.Background()); err != nil {
		log.Warn().Err(err).Msg("error disconnecting from mongodb")
	}
}
