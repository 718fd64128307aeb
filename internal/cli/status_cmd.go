package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/markx3/todoboard/internal/db"
)

var statusJSON bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show task summary",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer ws.close()

	stats, err := ws.svc.Stats(context.Background())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if statusJSON {
		return json.NewEncoder(out).Encode(stats)
	}

	fmt.Fprintf(out, "Todoboard Status\n")
	fmt.Fprintf(out, "────────────────\n")
	fmt.Fprintf(out, "Pending:    %d\n", stats.Pending)
	fmt.Fprintf(out, "Complete:   %d\n", stats.Completed)
	fmt.Fprintf(out, "────────────────\n")
	fmt.Fprintf(out, "Total:      %d\n", stats.Total)

	if stats.Total == 0 {
		return nil
	}
	fmt.Fprintf(out, "\nBy priority:\n")
	for _, p := range db.Priorities {
		fmt.Fprintf(out, "  %-10s %d\n", p, stats.ByPriority[p])
	}
	fmt.Fprintf(out, "\nBy category:\n")
	for _, c := range db.Categories {
		fmt.Fprintf(out, "  %-10s %d\n", c, stats.ByCategory[c])
	}
	return nil
}
