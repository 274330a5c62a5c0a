package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/cobra"
)

var (
	migrationsPath string
	migrateDown    bool
	migrateSteps   int
)

var migrateCmd = &cobra.Command{
	Use:   "db:migrate",
	Short: "Apply SQL migrations to the MySQL database",
	Run: func(cmd *cobra.Command, args []string) {
		dsn := os.Getenv("MYSQL_DSN")
		if dsn == "" {
			user := os.Getenv("MYSQL_USER")
			pass := os.Getenv("MYSQL_PASS")
			host := os.Getenv("MYSQL_HOST")
			port := os.Getenv("MYSQL_PORT")
			db := os.Getenv("MYSQL_DB")
			if port == "" {
				port = "3306"
			}
			dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s", user, pass, host, port, db)
		}

		m, err := migrate.New("file://"+migrationsPath, "mysql://"+dsn)
		if err != nil {
			fmt.Printf("Migrate init failed: %v\n", err)
			os.Exit(1)
		}
		defer m.Close()

		switch {
		case migrateDown && migrateSteps > 0:
			err = m.Steps(-migrateSteps)
		case migrateDown:
			err = m.Down()
		case migrateSteps > 0:
			err = m.Steps(migrateSteps)
		default:
			err = m.Up()
		}
		if errors.Is(err, migrate.ErrNoChange) {
			fmt.Println("Database is up to date.")
			return
		}
		if err != nil {
			fmt.Printf("Migration failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Migrations applied.")
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrationsPath, "path", "migrations", "Directory with .sql migration files")
	migrateCmd.Flags().BoolVar(&migrateDown, "down", false, "Roll back instead of applying")
	migrateCmd.Flags().IntVar(&migrateSteps, "steps", 0, "Limit to N migrations (0 = all)")
	rootCmd.AddCommand(migrateCmd)
}
