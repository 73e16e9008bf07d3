package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect answer history",
}

var historyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show per-question statistics",
	RunE:  runHistoryShow,
}

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the full history as JSON",
	RunE:  runHistoryExport,
}

func init() {
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyExportCmd)

	historyExportCmd.Flags().StringP("out", "o", "", `Output file (default quiz_results-<timestamp>.json, "-" for stdout)`)
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context(), os.Stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	stats := a.quiz.Stats()
	out := cmd.OutOrStdout()
	if len(stats) == 0 {
		fmt.Fprintln(out, "No answers recorded yet.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tANSWERED\tCORRECT\tLAST\tMASTERY")
	for _, s := range stats {
		last := "wrong"
		if s.LatestCorrect {
			last = "right"
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s %s\t%d%%\n",
			s.QuestionID, s.TimesAnswered, s.TimesCorrect,
			last, s.LastAnswered.Local().Format("2006-01-02 15:04"), s.Mastery)
	}
	return tw.Flush()
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	out, _ := cmd.Flags().GetString("out")

	a, err := openApp(cmd.Context(), os.Stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	export, err := a.quiz.Export()
	if err != nil {
		return err
	}

	if out == "-" {
		_, err := cmd.OutOrStdout().Write(append(export.Data, '\n'))
		return err
	}
	if out == "" {
		out = export.Filename
	}
	if err := os.WriteFile(out, export.Data, 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported history to %s\n", out)
	return nil
}
