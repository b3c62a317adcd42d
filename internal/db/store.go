package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Atharvasurya/punjab-alumni-sih/internal/app/models"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/config"
)

// ErrNoSnapshot is returned by Store.Load when nothing has been persisted yet.
var ErrNoSnapshot = errors.New("no snapshot persisted")

// Store durably holds the whole DatabaseData aggregate. Every Save replaces
// the previous snapshot.
type Store interface {
	Load(ctx context.Context) (*models.DatabaseData, error)
	Save(ctx context.Context, data *models.DatabaseData) error
	Close() error
}

// NewStore opens the backend named by the store driver setting.
func NewStore(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.Store.Driver {
	case "file":
		return NewFileStore(cfg.Store.Path), nil
	case "sqlite":
		return NewSQLiteStore(ctx, cfg.Store.Path)
	case "postgres":
		return NewPostgresStore(ctx, cfg.Store.DSN)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

// bucket names shared by the table-backed stores, one per collection
var buckets = []string{"users", "opportunities", "events", "messages", "auditLogs"}

func encodeBuckets(data *models.DatabaseData) (map[string][]byte, error) {
	out := make(map[string][]byte, len(buckets))
	for _, bucket := range buckets {
		var (
			payload []byte
			err     error
		)
		switch bucket {
		case "users":
			payload, err = json.Marshal(data.Users)
		case "opportunities":
			payload, err = json.Marshal(data.Opportunities)
		case "events":
			payload, err = json.Marshal(data.Events)
		case "messages":
			payload, err = json.Marshal(data.Messages)
		case "auditLogs":
			payload, err = json.Marshal(data.AuditLogs)
		}
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", bucket, err)
		}
		out[bucket] = payload
	}
	return out, nil
}

func decodeBucket(data *models.DatabaseData, bucket string, payload []byte) error {
	var target any
	switch bucket {
	case "users":
		target = &data.Users
	case "opportunities":
		target = &data.Opportunities
	case "events":
		target = &data.Events
	case "messages":
		target = &data.Messages
	case "auditLogs":
		target = &data.AuditLogs
	default:
		// unknown buckets are left for newer versions
		return nil
	}
	if err := json.Unmarshal(payload, target); err != nil {
		return fmt.Errorf("decode %s: %w", bucket, err)
	}
	return nil
}
