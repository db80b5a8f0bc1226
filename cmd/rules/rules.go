// Package rules handles the keyword rule commands
package rules

import (
	"fmt"
	"strings"

	"fjacquet/expense-report/cmd/root"
	"fjacquet/expense-report/internal/fileutils"
	"fjacquet/expense-report/internal/logging"
	"fjacquet/expense-report/internal/store"

	"github.com/spf13/cobra"
)

var force bool

// Cmd represents the rules command
var Cmd = &cobra.Command{
	Use:   "rules",
	Short: "Manage the keyword rules of the keyword backend",
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter rules file",
	Long:  `Write a starter rule set covering every known category to classification.rules_file.`,
	Args:  cobra.NoArgs,
	RunE:  initFunc,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the configured keyword rules",
	Args:  cobra.NoArgs,
	RunE:  listFunc,
}

func init() {
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing rules file")
	Cmd.AddCommand(initCmd, listCmd)
}

func ruleStore() (*store.RuleStore, error) {
	if root.AppConfig == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}
	return store.NewRuleStore(root.AppConfig.Classification.RulesFile, logging.NewLogrusAdapterFromLogger(root.Log)), nil
}

func initFunc(cmd *cobra.Command, args []string) error {
	s, err := ruleStore()
	if err != nil {
		return err
	}
	if fileutils.FileExists(s.RulesFile) && !force {
		return fmt.Errorf("rules file %s already exists (use --force to overwrite)", s.RulesFile)
	}
	if err := s.SaveCategories(store.DefaultRules()); err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", s.RulesFile)
	return err
}

func listFunc(cmd *cobra.Command, args []string) error {
	s, err := ruleStore()
	if err != nil {
		return err
	}
	rules, err := s.LoadCategories()
	if err != nil {
		return err
	}
	for _, rule := range rules {
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", rule.Name, strings.Join(rule.Keywords, ", ")); err != nil {
			return err
		}
	}
	return nil
}
