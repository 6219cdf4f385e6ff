package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/job-ranker/internal/filtering"
	"github.com/spigell/job-ranker/internal/inputs"
	"github.com/spigell/job-ranker/internal/jobs"
	"github.com/spigell/job-ranker/internal/ledger"
	"github.com/spigell/job-ranker/internal/logger"
	"github.com/spigell/job-ranker/internal/profile"
	"github.com/spigell/job-ranker/internal/ranking"
	"github.com/spigell/job-ranker/internal/scoring"
)

const topInSummary = 10

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Score the scraped jobs and write the ranked list and the shortlist",
	Run: func(cmd *cobra.Command, _ []string) {
		rank(cmd)
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().Float64("min-score", ranking.DefaultMinScore, "minimum score for the shortlist")
	rankCmd.Flags().BoolP("do-not-exclude-applied", "f", false, "do not exclude jobs if already applied")
	rankCmd.Flags().StringP("exclude-file", "e", "", "special file with jobs to exclude. Default is unset.")

	viper.BindPFlag("min-score", rankCmd.Flags().Lookup("min-score"))
	viper.BindPFlag("exclude-file", rankCmd.Flags().Lookup("exclude-file"))
}

// rank is the main command for the cli.
func rank(cmd *cobra.Command) {
	ctx := context.Background()

	base, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer base.Sync()

	lg := logger.WithRunID(base, uuid.NewString())

	config, err := getConfig(viper.GetViper())
	if err != nil {
		lg.Fatal("getting a config", zap.Error(err))
	}

	lg.Info("starting the job-ranker", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	lg.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	ignoreApplied := false
	if flag := cmd.Flag("do-not-exclude-applied"); flag != nil && strings.EqualFold(flag.Value.String(), "true") {
		ignoreApplied = true
	}

	res, err := runRank(ctx, lg, config, ignoreApplied)
	if err != nil {
		lg.Fatal("ranking failed", zap.Error(err))
	}

	lg.Info("ranking finished",
		zap.Int("scored", res.All.Len()),
		zap.Int("shortlisted", res.Shortlist.Len()),
		zap.Int("already_applied", len(res.Excluded)),
		zap.Float64("min_score", config.MinScore),
		zap.String("shortlist", config.Output.Shortlist),
		zap.String("all", config.Output.All),
	)

	for i, job := range res.Top(topInSummary) {
		lg.Info(fmt.Sprintf("top %d", i+1),
			append(logger.JobFields(job.URL, job.Company),
				zap.Float64("score", job.Score),
				zap.String("title", job.Title),
			)...,
		)
	}
}

// runRank loads every input, ranks the jobs and persists both outputs.
// Nothing is written unless every input loaded.
func runRank(ctx context.Context, lg *zap.Logger, config *Config, ignoreApplied bool) (*ranking.Result, error) {
	p, err := loadProfile(config.Profile)
	if err != nil {
		return nil, err
	}

	lg.Info("loaded profile",
		zap.Int("resume_skills", p.ResumeSkills.Len()),
		zap.Strings("target_roles", p.Preferences.TargetRoles),
		zap.Float64("min_salary_annual", p.Preferences.MinSalaryAnnual),
	)

	postings, err := jobs.LoadFile(config.Data.Jobs)
	if err != nil {
		return nil, fmt.Errorf("raw job list %q: %w", config.Data.Jobs, err)
	}

	lg.Info("loaded jobs", zap.Int("count", postings.Len()))
	for _, reason := range postings.Degraded {
		lg.Warn("job record decoded partially", zap.String("reason", reason))
	}

	applied := ledger.URLSet{}
	if ignoreApplied {
		lg.Info("application ledger ignored", zap.String("reason", "do-not-exclude-applied is set"))
	} else {
		applied, err = loadApplied(ctx, lg, config.Data)
		if err != nil {
			return nil, err
		}
	}

	filtersCfg, steps := prepareFilters(config)

	filtered, err := filtering.Run(ctx, filtersCfg, filtering.Deps{Logger: lg}, steps, postings)
	if err != nil {
		return nil, fmt.Errorf("filtering failed: %w", err)
	}

	for _, status := range filtering.Describe(steps) {
		lg.Debug("filter status",
			zap.String("name", status.Name),
			zap.Bool("enabled", status.Enabled),
			zap.String("reason", status.Reason),
			zap.Any("details", status.Details),
		)
	}

	res := ranking.Rank(filtered.Items, applied, p, config.MinScore, scoring.New(config.Scoring))

	for _, url := range res.Excluded {
		lg.Debug("skipping already applied job", logger.JobFields(url, "")...)
	}

	if err := res.Save(config.Output.Shortlist, config.Output.All); err != nil {
		return nil, fmt.Errorf("saving results: %w", err)
	}

	return res, nil
}

// prepareFilters builds the optional exclusion steps. Steps with nothing
// configured stay in the list disabled so their status is still reported.
func prepareFilters(config *Config) (*filtering.Config, []filtering.Filter) {
	cfg := &filtering.Config{ExcludeFile: strings.TrimSpace(config.ExcludeFile)}
	if config.Exclude != nil {
		cfg.Companies = config.Exclude.Companies
	}

	steps := []filtering.Filter{
		filtering.NewExcludeFile(),
		filtering.NewCompanies(),
	}

	if cfg.ExcludeFile == "" {
		filtering.DisableByName(steps, "exclude_file", "exclude-file is not configured")
	}

	if len(cfg.Companies) == 0 {
		filtering.DisableByName(steps, "companies", "exclude.companies is empty")
	}

	return cfg, steps
}

func loadProfile(cfg *ProfileConfig) (*profile.Profile, error) {
	prefs, err := inputs.Load(inputs.Source{Name: "preferences document", File: cfg.Preferences})
	if err != nil {
		return nil, err
	}

	resume, err := inputs.Load(inputs.Source{Name: "resume", File: cfg.Resume})
	if err != nil {
		return nil, err
	}

	return profile.New(prefs, resume), nil
}

func loadApplied(ctx context.Context, lg *zap.Logger, cfg *DataConfig) (ledger.URLSet, error) {
	apps, err := ledger.LoadFile(cfg.Applications)
	if err != nil {
		return nil, fmt.Errorf("application ledger %q: %w", cfg.Applications, err)
	}

	applied := apps.URLs()
	lg.Info("loaded application ledger", zap.Int("records", len(apps)), zap.Int("urls", len(applied)))

	if cfg.TrackerDB == "" {
		return applied, nil
	}

	tracked, err := ledger.LoadTrackerURLs(ctx, cfg.TrackerDB)
	if err != nil {
		return nil, fmt.Errorf("tracker database %q: %w", cfg.TrackerDB, err)
	}

	lg.Info("loaded tracker database", zap.Int("urls", len(tracked)))
	applied.Add(tracked)

	return applied, nil
}
