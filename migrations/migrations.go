// Package migrations embeds the database schema and applies it in order.
package migrations

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed *.sql
var FS embed.FS

// Apply runs every *.up.sql file in lexical order. Statements are
// expected to be idempotent (CREATE TABLE IF NOT EXISTS and friends),
// so reapplying on startup is safe.
func Apply(ctx context.Context, exec func(ctx context.Context, sql string) error) error {
	var migrationFiles []string

	err := fs.WalkDir(FS, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".up.sql") {
			migrationFiles = append(migrationFiles, path)
		}

		return nil
	})
	if err != nil {
		return err
	}

	sort.Slice(migrationFiles, func(i, j int) bool {
		return filepath.Base(migrationFiles[i]) < filepath.Base(migrationFiles[j])
	})

	for _, file := range migrationFiles {
		content, err := FS.ReadFile(file)
		if err != nil {
			return err
		}

		if err := exec(ctx, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", file, err)
		}
	}

	return nil
}
