package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/radieske/betting-admin-dashboard/internal/shared/config"
	"github.com/radieske/betting-admin-dashboard/internal/shared/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Gerencia o schema do Ledger Store",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Aplica todas as migrations pendentes",
	Args:  cobra.NoArgs,
	RunE:  runMigrateUp,
}

var migrateDownCmd = &cobra.Command{
	Use:   "down [steps]",
	Short: "Desfaz as últimas N migrations (padrão 1)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runMigrateDown,
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Mostra a versão atual do schema",
	Args:  cobra.NoArgs,
	RunE:  runMigrateStatus,
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateStatusCmd)
}

func runMigrateUp(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	version, err := db.MigrateUp(cfg.PostgresDSN)
	if err != nil {
		return err
	}
	cmd.Printf("schema at version %d\n", version)
	return nil
}

func runMigrateDown(cmd *cobra.Command, args []string) error {
	steps := 1
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return fmt.Errorf("steps must be a positive integer, got %q", args[0])
		}
		steps = n
	}

	cfg := config.Load()
	if err := db.MigrateDown(cfg.PostgresDSN, steps); err != nil {
		return err
	}
	cmd.Printf("rolled back %d migration(s)\n", steps)
	return nil
}

func runMigrateStatus(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	st, err := db.Status(cfg.PostgresDSN)
	if err != nil {
		return err
	}
	if !st.Applied {
		cmd.Println("no migrations applied")
		return nil
	}
	cmd.Printf("version %d (dirty=%t)\n", st.Version, st.Dirty)
	return nil
}
