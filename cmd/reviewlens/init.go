package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hyperengineering/reviewlens/internal/config"
	"github.com/hyperengineering/reviewlens/internal/store"
)

var initDataPath string

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an empty review log",
	Long:  "Create a fresh review log with the header row at the configured data path. Refuses to overwrite an existing log.",
	RunE:  runInit,
}

func init() {
	initCmd.Flags().StringVar(&initDataPath, "data", "",
		"Review log path (overrides config and REVIEWLENS_DATA_PATH)")
}

func runInit(cmd *cobra.Command, args []string) error {
	path := initDataPath
	if path == "" {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		path = cfg.Data.Path
	}

	if err := store.CreateCSV(path); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created review log at %s\n", path)
	return nil
}
