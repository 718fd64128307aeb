package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [path]",
	Short: "Export all tasks to .csv, .json or .pdf",
	Long:  "Export all tasks. The format follows the file extension; without a path the configured export path is used.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "Import tasks from .csv or .json",
	Long:  "Import tasks as new rows with fresh ids. Any invalid row aborts the whole import.",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	rootCmd.AddCommand(exportCmd, importCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer ws.close()

	path := ws.cfg.ExportPath
	if len(args) == 1 {
		path = args[0]
	}
	n, err := ws.svc.Export(context.Background(), path)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d task(s) to %s\n", n, path)
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer ws.close()

	n, err := ws.svc.Import(context.Background(), args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d task(s) from %s\n", n, args[0])
	return nil
}
