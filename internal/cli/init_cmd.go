package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/markx3/todoboard/internal/config"
)

var initName string

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize project configuration",
	Args:  cobra.NoArgs,
	RunE:  runInit,
}

func init() {
	initCmd.Flags().StringVar(&initName, "name", "", "project name (defaults to the directory name)")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	name := initName
	if name == "" {
		if wd, err := os.Getwd(); err == nil {
			name = filepath.Base(wd)
		}
	}

	path, created, err := config.WriteDefaultProject(name)
	if err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	out := cmd.OutOrStdout()
	if !created {
		fmt.Fprintf(out, "%s already exists, skipping\n", path)
		return nil
	}

	// Keep the database, log and secrets out of version control.
	gitignorePath := filepath.Join(config.Dir, ".gitignore")
	if err := os.WriteFile(gitignorePath, []byte("*.db\n*.log\n.env\n"), 0o644); err != nil {
		return fmt.Errorf("writing gitignore: %w", err)
	}

	fmt.Fprintf(out, "Initialized todoboard in %s/\n", config.Dir)
	return nil
}
