package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"salesdash/internal/config"
	applog "salesdash/internal/log"
	"salesdash/internal/storage"
)

// Env carries what every command needs.
type Env struct {
	Config *config.Config
	Logger *applog.Logger
}

// AddPersistentFlags binds flags shared by all commands to env.
func AddPersistentFlags(rootCmd *cobra.Command, env *Env) {
	rootCmd.PersistentFlags().StringVar(&env.Config.SQLiteDBPath, "db", env.Config.SQLiteDBPath, "Path to the SQLite database")
}

func (e *Env) openRepository() (*storage.SQLiteRepository, error) {
	repo, err := storage.NewSQLiteRepository(e.Config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", e.Config.SQLiteDBPath, err)
	}
	return repo, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
