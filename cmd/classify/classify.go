// Package classify handles the classify command
package classify

import (
	"fmt"

	"fjacquet/expense-report/cmd/root"
	"fjacquet/expense-report/internal/models"

	"github.com/spf13/cobra"
)

// Cmd represents the classify command
var Cmd = &cobra.Command{
	Use:   "classify <description>",
	Short: "Classify a single transaction description",
	Long:  `Ask the configured classification backend for the category of a transaction description.`,
	Args:  cobra.ExactArgs(1),
	RunE:  classifyFunc,
}

func classifyFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}

	label, err := c.GetClient().Classify(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("error classifying transaction: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), models.LabelOrNone(label))
	return err
}
