package db

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Atharvasurya/punjab-alumni-sih/internal/app/models"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/pkg/apperrors"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/pkg/metrics"
)

// Seeder produces the first-run content when the store holds no snapshot.
type Seeder func() (*models.DatabaseData, error)

// Options configures Open.
type Options struct {
	// Driver labels metrics and log lines
	Driver string
	Seeder Seeder
	// FailOpen continues with an empty aggregate when loading or seeding
	// fails instead of returning the error.
	FailOpen bool
	Logger   zerolog.Logger
}

// Database is the in-memory mirror of the persisted aggregate. All reads go
// through View and all writes through Update, which persists the new state
// before it becomes visible.
type Database struct {
	mu     sync.RWMutex
	data   *models.DatabaseData
	store  Store
	driver string
	logger zerolog.Logger
}

// Open loads the aggregate from store, seeding it on first run.
func Open(ctx context.Context, store Store, opts Options) (*Database, error) {
	d := &Database{
		store:  store,
		driver: opts.Driver,
		logger: opts.Logger.With().Str("component", "database").Logger(),
	}
	if d.driver == "" {
		d.driver = "unknown"
	}

	data, err := d.initialize(ctx, opts.Seeder)
	if err != nil {
		if !opts.FailOpen {
			return nil, fmt.Errorf("initialize database: %w", err)
		}
		d.logger.Error().Err(err).Str("driver", d.driver).Msg("Failed to initialize database, continuing with empty data")
		data = models.NewDatabaseData()
	}
	data.Normalize()
	d.data = data
	return d, nil
}

func (d *Database) initialize(ctx context.Context, seeder Seeder) (*models.DatabaseData, error) {
	data, err := d.store.Load(ctx)
	if err == nil {
		d.logger.Info().
			Int("users", len(data.Users)).
			Int("opportunities", len(data.Opportunities)).
			Int("events", len(data.Events)).
			Msg("Loaded snapshot")
		return data, nil
	}
	if !errors.Is(err, ErrNoSnapshot) {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	data = models.NewDatabaseData()
	if seeder != nil {
		seeded, err := seeder()
		if err != nil {
			return nil, fmt.Errorf("seed: %w", err)
		}
		if seeded != nil {
			data = seeded
		}
	}
	data.Normalize()

	if err := d.save(ctx, data); err != nil {
		return nil, fmt.Errorf("write seed snapshot: %w", err)
	}
	d.logger.Info().Int("users", len(data.Users)).Msg("Seeded new database")
	return data, nil
}

// View runs fn with read access to the current aggregate. fn must not retain
// or modify anything it is given.
func (d *Database) View(fn func(data *models.DatabaseData)) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	fn(d.data)
}

// Update applies fn to a copy of the aggregate, persists the copy and then
// makes it current. If fn fails nothing changes. If persisting fails the
// previous state stays current and an ErrPersistence error is returned.
func (d *Database) Update(ctx context.Context, fn func(data *models.DatabaseData) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	next := d.data.Clone()
	if err := fn(next); err != nil {
		return err
	}
	if err := d.save(ctx, next); err != nil {
		metrics.StoreSaveFailures.WithLabelValues(d.driver).Inc()
		d.logger.Error().Err(err).Str("driver", d.driver).Msg("Failed to persist database")
		return fmt.Errorf("%w: %w", apperrors.ErrPersistence, err)
	}
	d.data = next
	return nil
}

// Snapshot returns a deep copy of the current aggregate.
func (d *Database) Snapshot() *models.DatabaseData {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.data.Clone()
}

// Close releases the backing store.
func (d *Database) Close() error {
	return d.store.Close()
}

func (d *Database) save(ctx context.Context, data *models.DatabaseData) error {
	start := time.Now()
	err := d.store.Save(ctx, data)
	metrics.StoreSaveDuration.WithLabelValues(d.driver).Observe(time.Since(start).Seconds())
	return err
}
