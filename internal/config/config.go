package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/campushub/timetabler/internal/scheduler"
	"github.com/campushub/timetabler/pkg/model"
)

// Config is everything one run needs: engine knobs plus boundary paths.
// Values come from an optional config file, the environment (TIMETABLER_
// prefix) and built-in defaults, in that order of precedence.
type Config struct {
	CoursesFile    string `mapstructure:"courses_file"`
	ClassroomsFile string `mapstructure:"classrooms_file"`
	ProfessorsFile string `mapstructure:"professors_file"`
	ExportFile     string `mapstructure:"export_file"`
	ReportDir      string `mapstructure:"report_dir"`

	Days            int `mapstructure:"days"`
	PeriodsPerDay   int `mapstructure:"periods_per_day"`
	BreakPeriod     int `mapstructure:"break_period"`
	LabBlockPeriods int `mapstructure:"lab_block_periods"`

	MaxNodes     int           `mapstructure:"max_nodes"`
	TimeLimit    time.Duration `mapstructure:"time_limit"`
	Trials       int           `mapstructure:"trials"`
	Seed         int64         `mapstructure:"seed"`
	MaxProfHours int           `mapstructure:"max_prof_hours_per_day"`

	ProfessorPreferenceWeight float64 `mapstructure:"professor_preference_weight"`
	SpreadWeight              float64 `mapstructure:"spread_weight"`
	GapWeight                 float64 `mapstructure:"gap_weight"`
	LabSlotWeight             float64 `mapstructure:"lab_slot_weight"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// Load reads configuration from the given file (optional, "" skips it), a
// .env file when present, and TIMETABLER_* environment variables.
func Load(path string) (*Config, error) {
	// A missing .env is the normal case.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("TIMETABLER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	defaults := scheduler.DefaultConfig()
	v.SetDefault("courses_file", "data/courses.csv")
	v.SetDefault("classrooms_file", "data/classrooms.csv")
	v.SetDefault("professors_file", "data/professors.csv")
	v.SetDefault("export_file", "data/output/timetable.csv")
	v.SetDefault("report_dir", "data/output")
	v.SetDefault("days", defaults.Grid.Days)
	v.SetDefault("periods_per_day", defaults.Grid.PeriodsPerDay)
	v.SetDefault("break_period", defaults.Grid.BreakPeriod)
	v.SetDefault("lab_block_periods", defaults.Grid.LabBlockPeriods)
	v.SetDefault("max_nodes", defaults.MaxNodes)
	v.SetDefault("time_limit", time.Duration(0))
	v.SetDefault("trials", defaults.Trials)
	v.SetDefault("seed", defaults.Seed)
	v.SetDefault("max_prof_hours_per_day", defaults.DefaultMaxProfHoursPerDay)
	v.SetDefault("professor_preference_weight", defaults.Weights.ProfessorPreference)
	v.SetDefault("spread_weight", defaults.Weights.Spread)
	v.SetDefault("gap_weight", defaults.Weights.Gap)
	v.SetDefault("lab_slot_weight", defaults.Weights.LabSlot)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
}

// Engine translates the flat file/env view into the engine's Config.
func (c *Config) Engine() scheduler.Config {
	return scheduler.Config{
		Grid: model.Grid{
			Days:            c.Days,
			PeriodsPerDay:   c.PeriodsPerDay,
			BreakPeriod:     c.BreakPeriod,
			LabBlockPeriods: c.LabBlockPeriods,
		},
		MaxNodes:                  c.MaxNodes,
		TimeLimit:                 c.TimeLimit,
		Trials:                    c.Trials,
		Seed:                      c.Seed,
		DefaultMaxProfHoursPerDay: c.MaxProfHours,
		Weights: scheduler.Weights{
			ProfessorPreference: c.ProfessorPreferenceWeight,
			Spread:              c.SpreadWeight,
			Gap:                 c.GapWeight,
			LabSlot:             c.LabSlotWeight,
		},
	}
}
