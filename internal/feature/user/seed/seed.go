// Package seed loads the bundled fake users and resets the users table.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"health_backend/internal/feature/user/adapters"
	"health_backend/internal/feature/user/usecase"
)

//go:embed users.json
var bundledUsers []byte

// LoadUsers reads seed records from path, or the bundled set when path is empty.
func LoadUsers(path string) ([]map[string]any, error) {
	data := bundledUsers
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
		data = b
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var users []map[string]any
	if err := dec.Decode(&users); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	return users, nil
}

// Import recreates the users table and inserts users through the same
// validation and normalization as the API.
func Import(ctx context.Context, db *gorm.DB, users []map[string]any, log logrus.FieldLogger) (int, error) {
	if err := adapters.DropTables(db); err != nil {
		return 0, fmt.Errorf("drop tables: %w", err)
	}
	if err := adapters.AutoMigrate(db); err != nil {
		return 0, fmt.Errorf("migrate: %w", err)
	}
	log.Info("schema synced")

	uc := usecase.NewUserUsecase(adapters.NewUserRepository(db))
	n, err := uc.BulkCreate(ctx, users)
	if err != nil {
		return 0, fmt.Errorf("import users: %w", err)
	}
	log.WithField("users", n).Info("imported data")
	return n, nil
}

// Delete drops the users table.
func Delete(db *gorm.DB, log logrus.FieldLogger) error {
	if err := adapters.DropTables(db); err != nil {
		return fmt.Errorf("drop tables: %w", err)
	}
	log.Info("deleted data")
	return nil
}
