package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmehl/goblog/internal/config"
	"github.com/jmehl/goblog/internal/database"
)

// NewInitDBCommand creates the init-db command.
func NewInitDBCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init-db",
		Short: "Clear the existing data and create new tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			db, err := database.New(cfg.DatabasePath)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer db.Close()

			if err := database.Init(db); err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}

			cmd.Println("Initialized the database.")
			return nil
		},
	}
}
