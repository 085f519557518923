package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Input    Input    `yaml:"input"`
	Analysis Analysis `yaml:"analysis"`
	Export   Export   `yaml:"export"`

	cutoff time.Time
}

type Input struct {
	ReportCSV string `yaml:"report_csv"`
}

// Analysis carries the incident-specific constants. The retired phone list
// and the cutoff date are tied to one incident, so they live here rather
// than in code.
type Analysis struct {
	ExcludedPhone    int64   `yaml:"excluded_phone"`
	CutoffDate       string  `yaml:"cutoff_date"`
	RetiredPhones    []int64 `yaml:"retired_phones"`
	RetiredGroupName string  `yaml:"retired_group_name"`
	ActiveGroupName  string  `yaml:"active_group_name"`
}

type Export struct {
	OutputDir string `yaml:"output_dir"`
	Workbook  string `yaml:"workbook"`
	Postgres  string `yaml:"postgres"`
}

func LoadConfig(path string) (*Config, error) {
	config := &Config{}

	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	err = yaml.Unmarshal(file, config)
	if err != nil {
		return nil, err
	}

	if config.Input.ReportCSV == "" {
		return nil, fmt.Errorf("%s: input.report_csv is required", path)
	}
	config.cutoff, err = time.Parse("2006-01-02", config.Analysis.CutoffDate)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid analysis.cutoff_date %q", path, config.Analysis.CutoffDate)
	}
	config.cutoff = config.cutoff.UTC()

	return config, nil
}

// Cutoff is the parsed pre/post boundary date, UTC midnight.
func (c *Config) Cutoff() time.Time {
	return c.cutoff
}
