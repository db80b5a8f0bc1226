// Package store loads the keyword rules used by the bundled classification service.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"fjacquet/expense-report/internal/fileutils"
	"fjacquet/expense-report/internal/logging"
	"fjacquet/expense-report/internal/models"

	"gopkg.in/yaml.v3"
)

// DefaultRulesFile is looked up when no rules file is configured.
const DefaultRulesFile = "categories.yaml"

// RuleStore loads category keyword rules from a YAML file
type RuleStore struct {
	RulesFile string
	logger    logging.Logger
}

// NewRuleStore creates a new store reading rules from rulesFile
func NewRuleStore(rulesFile string, logger logging.Logger) *RuleStore {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &RuleStore{
		RulesFile: rulesFile,
		logger:    logger,
	}
}

// FindConfigFile looks for a configuration file in standard locations
func (s *RuleStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if fileutils.FileExists(filename) {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
		filepath.Join("database", filename),
	}

	for _, location := range locations {
		if fileutils.FileExists(location) {
			return location, nil
		}
	}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".config", "expense-report", filename)
		if fileutils.FileExists(configPath) {
			return configPath, nil
		}
	}

	return "", os.ErrNotExist
}

// LoadCategories loads categories from the YAML file. A missing file yields
// an empty rule set, not an error.
func (s *RuleStore) LoadCategories() ([]models.CategoryConfig, error) {
	filename := s.RulesFile
	if filename == "" {
		filename = DefaultRulesFile
	}

	filePath, err := s.FindConfigFile(filename)
	if err != nil {
		s.logger.Warn("Rules file not found", logging.Field{Key: logging.FieldFile, Value: filename})
		return []models.CategoryConfig{}, nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading rules file: %w", err)
	}

	// "categories: [...]" first, then a bare list
	var categoriesConfig models.CategoriesConfig
	if err := yaml.Unmarshal(data, &categoriesConfig); err == nil && len(categoriesConfig.Categories) > 0 {
		s.logger.Debug("Loaded rules",
			logging.Field{Key: logging.FieldFile, Value: filePath},
			logging.Field{Key: logging.FieldCount, Value: len(categoriesConfig.Categories)})
		return categoriesConfig.Categories, nil
	}

	var categories []models.CategoryConfig
	if err := yaml.Unmarshal(data, &categories); err != nil {
		return nil, fmt.Errorf("error parsing rules file %s: %w", filePath, err)
	}
	s.logger.Debug("Loaded rules",
		logging.Field{Key: logging.FieldFile, Value: filePath},
		logging.Field{Key: logging.FieldCount, Value: len(categories)})
	return categories, nil
}

// SaveCategories writes the rule set back to the configured file.
func (s *RuleStore) SaveCategories(categories []models.CategoryConfig) error {
	filename := s.RulesFile
	if filename == "" {
		filename = DefaultRulesFile
	}
	data, err := yaml.Marshal(models.CategoriesConfig{Categories: categories})
	if err != nil {
		return fmt.Errorf("error marshaling rules: %w", err)
	}
	if err := fileutils.WriteFile(filename, data, models.PermissionConfigFile); err != nil {
		return fmt.Errorf("error writing rules file: %w", err)
	}
	return nil
}
