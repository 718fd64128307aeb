package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/markx3/todoboard/internal/plainlist"
)

var plainFile string

var plainCmd = &cobra.Command{
	Use:   "plain",
	Short: "Work with a plain text task file",
	Long:  "Manage a flat text file with one task per line. Completed tasks are kept and written with a [x] prefix.",
}

var plainListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show numbered tasks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := plainlist.Load(plainFile)
		if err != nil {
			return err
		}
		l.Render(cmd.OutOrStdout())
		return nil
	},
}

var plainAddCmd = &cobra.Command{
	Use:   "add <task>",
	Short: "Append a task",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args, " ")
		return editPlain(func(l *plainlist.List) (string, error) {
			if err := l.Add(text); err != nil {
				return "", err
			}
			return fmt.Sprintf("Added: %s", strings.TrimSpace(text)), nil
		}, cmd)
	},
}

var plainDoneCmd = &cobra.Command{
	Use:   "done <number>",
	Short: "Mark a task complete",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := parseNumber(args[0])
		if err != nil {
			return err
		}
		return editPlain(func(l *plainlist.List) (string, error) {
			it, err := l.Complete(n)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Completed: %s", it.Text), nil
		}, cmd)
	},
}

var plainRmCmd = &cobra.Command{
	Use:   "rm <number>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := parseNumber(args[0])
		if err != nil {
			return err
		}
		return editPlain(func(l *plainlist.List) (string, error) {
			it, err := l.Delete(n)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Deleted: %s", it.Text), nil
		}, cmd)
	},
}

func init() {
	plainCmd.PersistentFlags().StringVar(&plainFile, "file", plainlist.DefaultFile, "task file")
	plainCmd.AddCommand(plainListCmd, plainAddCmd, plainDoneCmd, plainRmCmd)
	rootCmd.AddCommand(plainCmd)
}

// editPlain loads the file, applies fn and saves only when fn succeeds.
func editPlain(fn func(*plainlist.List) (string, error), cmd *cobra.Command) error {
	l, err := plainlist.Load(plainFile)
	if err != nil {
		return err
	}
	msg, err := fn(l)
	if err != nil {
		return err
	}
	if err := l.Save(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), msg)
	return nil
}

func parseNumber(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid task number %q", s)
	}
	return n, nil
}
