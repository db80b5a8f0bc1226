// Package report handles the report command
package report

import (
	"fmt"

	"fjacquet/expense-report/cmd/root"
	"fjacquet/expense-report/internal/fileutils"
	"fjacquet/expense-report/internal/models"
	reportgen "fjacquet/expense-report/internal/report"

	"github.com/spf13/cobra"
)

var (
	user   string
	start  string
	end    string
	format string
	output string
)

// Cmd represents the report command
var Cmd = &cobra.Command{
	Use:   "report",
	Short: "Report a user's spending per category",
	Long: `Fetch the transactions of a user between optional DD/MM/YYYY dates, classify
them and print the total amount spent per category.`,
	RunE: reportFunc,
}

func init() {
	Cmd.Flags().StringVarP(&user, "user", "u", "", "User whose transactions are reported")
	Cmd.Flags().StringVarP(&start, "start", "s", "", "Start date, inclusive (DD/MM/YYYY)")
	Cmd.Flags().StringVarP(&end, "end", "e", "", "End date, inclusive (DD/MM/YYYY)")
	Cmd.Flags().StringVarP(&format, "format", "f", models.FormatJSON, "Output format (json, yaml or csv)")
	Cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	_ = Cmd.MarkFlagRequired("user")
}

func reportFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}

	totals, err := c.GetGenerator().GenerateReport(cmd.Context(), user, start, end)
	if err != nil {
		return err
	}

	out, err := reportgen.Render(totals, format)
	if err != nil {
		return err
	}

	if output == "" {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return err
	}
	if err := fileutils.WriteFile(output, out, models.PermissionConfigFile); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	root.Log.WithField("file", output).Info("Report written")
	return nil
}
