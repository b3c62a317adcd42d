// Package seed loads the first-run dataset.
package seed

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/Atharvasurya/punjab-alumni-sih/internal/app/models"
)

// document is the on-disk seed layout. Every collection is optional.
type document struct {
	Users         []*models.User        `json:"users"`
	Opportunities []*models.Opportunity `json:"opportunities"`
	Events        []*models.Event       `json:"events"`
	Messages      []*models.Message     `json:"messages"`
	AuditLogs     []*models.AuditLog    `json:"auditLogs"`
}

// Load reads the seed document at path and projects it into a
// DatabaseData with missing collections replaced by empty lists.
func Load(path string) (*models.DatabaseData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse projects a raw seed document.
func Parse(raw []byte) (*models.DatabaseData, error) {
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	data := &models.DatabaseData{
		Users:         doc.Users,
		Opportunities: doc.Opportunities,
		Events:        doc.Events,
		Messages:      doc.Messages,
		AuditLogs:     doc.AuditLogs,
	}
	data.Normalize()
	return data, nil
}

// FromFile returns a seeder reading path. An empty path seeds nothing.
func FromFile(path string, lgr zerolog.Logger) func() (*models.DatabaseData, error) {
	return func() (*models.DatabaseData, error) {
		if path == "" {
			lgr.Info().Msg("No seed document configured, starting empty")
			return models.NewDatabaseData(), nil
		}
		lgr.Info().Str("path", path).Msg("Seeding database from seed document")
		return Load(path)
	}
}
