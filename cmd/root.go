package cmd

import (
	"errors"
	"io/fs"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/job-ranker/internal/scoring"
)

const (
	app       = "job-ranker"
	envPrefix = "JOB_RANKER"
)

type Config struct {
	Profile     *ProfileConfig  `mapstructure:"profile" validate:"required"`
	Data        *DataConfig     `mapstructure:"data" validate:"required"`
	Output      *OutputConfig   `mapstructure:"output" validate:"required"`
	MinScore    float64         `mapstructure:"min-score" validate:"gte=0,lte=10"`
	ExcludeFile string          `mapstructure:"exclude-file"`
	Exclude     *ExcludeConfig  `mapstructure:"exclude"`
	Scoring     scoring.Options `mapstructure:"scoring"`
}

type ProfileConfig struct {
	Preferences string `mapstructure:"preferences" validate:"required"`
	Resume      string `mapstructure:"resume" validate:"required"`
}

type DataConfig struct {
	Jobs         string `mapstructure:"jobs" validate:"required"`
	Applications string `mapstructure:"applications" validate:"required"`
	TrackerDB    string `mapstructure:"tracker-db"`
}

type OutputConfig struct {
	Shortlist string `mapstructure:"shortlist" validate:"required"`
	All       string `mapstructure:"all" validate:"required"`
}

type ExcludeConfig struct {
	Companies []string `mapstructure:"companies"`
}

var (
	// Used for flags.
	cfgFile string

	validate = validator.New()

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "job-ranker scores scraped job postings against your profile and keeps a shortlist",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is job-ranker.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	setDefaults(viper.GetViper())
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("profile.preferences", "profile/preferences.md")
	v.SetDefault("profile.resume", "profile/resume.md")
	v.SetDefault("data.jobs", "data/raw-jobs.json")
	v.SetDefault("data.applications", "data/applications.json")
	v.SetDefault("data.tracker-db", "")
	v.SetDefault("output.shortlist", "data/scored-jobs.json")
	v.SetDefault("output.all", "data/all-scored-jobs.json")
	v.SetDefault("min-score", 7.0)
	v.SetDefault("exclude-file", "")

	defaults := scoring.DefaultOptions()
	v.SetDefault("scoring.remote-markers", defaults.RemoteMarkers)
	v.SetDefault("scoring.home-country-markers", defaults.HomeCountryMarkers)
}

// needsConfig reports whether the invoked command reads the configuration.
func needsConfig() bool {
	return rankCmd.CalledAs() != "" || reviewCmd.CalledAs() != ""
}

func initConfig() {
	// Config is needed only for rank and review. Other commands skip initialization.
	if !needsConfig() {
		return
	}

	// A missing .env is fine, the environment may already be set.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("loading .env: %v", err)
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		// Defaults are enough to run without a config file unless one was asked for explicitly.
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig(v *viper.Viper) (*Config, error) {
	var config *Config
	if err := v.Unmarshal(&config); err != nil {
		return config, err
	}

	if err := validate.Struct(config); err != nil {
		return config, err
	}

	return config, nil
}
