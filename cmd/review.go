package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/job-ranker/internal/jobs"
	"github.com/spigell/job-ranker/internal/logger"
	"github.com/spigell/job-ranker/internal/utils"
)

const (
	PromptExit                = "Exit"
	PromptBack                = "back"
	PromptReportByCompanies   = "Report by companies"
	PromptBrowse              = "Browse jobs"
	PromptAppendToExcludeFile = "Append all jobs to exclude file"
	PromptJobsToFile          = "Dump jobs to file"

	descriptionLogLength = 600
)

var errExit = errors.New("exit requested")

var reviewPrompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptBrowse, PromptReportByCompanies, PromptJobsToFile, PromptExit},
}

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Browse the saved shortlist",
	Run: func(_ *cobra.Command, _ []string) {
		review()
	},
}

func init() {
	rootCmd.AddCommand(reviewCmd)
}

func review() {
	lg, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer lg.Sync()

	config, err := getConfig(viper.GetViper())
	if err != nil {
		lg.Fatal("getting a config", zap.Error(err))
	}

	shortlist, err := jobs.LoadScoredFromFile(config.Output.Shortlist)
	if err != nil {
		lg.Fatal("loading the shortlist", zap.Error(err), zap.String("hint", "run the rank command first"))
	}

	if shortlist.Len() == 0 {
		lg.Info("exiting", zap.String("reason", "shortlist is empty"))
		return
	}

	for {
		_, action, err := reviewPrompt.Run()
		if err != nil {
			lg.Fatal("exiting", zap.Error(err))
		}

		lg.Info("current list of jobs", zap.Int("count", shortlist.Len()))

		if err := handleAction(action, lg, config, shortlist); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			lg.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(action string, lg *zap.Logger, config *Config, shortlist *jobs.ScoredJobs) error {
	switch action {
	case PromptExit:
		lg.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	case PromptBrowse:
		return browse(lg, config, shortlist)
	case PromptReportByCompanies:
		pretty, _ := json.MarshalIndent(shortlist.ReportByCompany(), "", "  ")
		lg.Info(string(pretty), zap.Int("jobs count", shortlist.Len()))
		return nil
	case PromptJobsToFile:
		filename, err := shortlist.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		lg.Info("dumping result to file", zap.String("filename", filename))
		return nil
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func browse(lg *zap.Logger, config *Config, shortlist *jobs.ScoredJobs) error {
	for {
		items := make([]string, 0, shortlist.Len()+2)
		for _, job := range shortlist.Items {
			items = append(items, jobLabel(job))
		}

		if config.ExcludeFile != "" && shortlist.Len() != 0 {
			items = append(items, PromptAppendToExcludeFile)
		}

		jobPrompt := promptui.Select{
			Label: "Choose a job and press ENTER",
			Items: append(items, PromptBack),
			Size:  10,
		}

		idx, selected, err := jobPrompt.Run()
		if err != nil {
			return err
		}

		switch selected {
		case PromptBack:
			return nil
		case PromptAppendToExcludeFile:
			if err := appendToExcludeFile(config.ExcludeFile, shortlist); err != nil {
				return err
			}

			lg.Info("appended to exclude file", zap.String("filename", config.ExcludeFile))
			shortlist.Items = nil
		default:
			if idx < 0 || idx >= shortlist.Len() {
				return fmt.Errorf("there is no such job %s", selected)
			}
			logBreakdown(lg, shortlist.Items[idx])
		}
	}
}

func jobLabel(job *jobs.ScoredJob) string {
	return fmt.Sprintf("%.1f %s / %s / %s",
		job.Score, utils.SingleLine(job.Title), utils.SingleLine(job.Company), job.URL,
	)
}

func logBreakdown(lg *zap.Logger, job *jobs.ScoredJob) {
	b := job.ScoreBreakdown
	fields := append(logger.JobFields(job.URL, job.Company),
		zap.String("title", job.Title),
		zap.String("location", job.Location),
		zap.String("salary", job.Salary),
		zap.Float64("score", job.Score),
		zap.Float64("skills_match", b.Skills.Score),
		zap.Strings("matched_skills", b.Skills.Matched),
		zap.Strings("job_requires", b.Skills.JobRequires),
		zap.Float64("title_match", b.Title),
		zap.Float64("location_match", b.Location),
		zap.Float64("salary_match", b.Salary),
		zap.Float64("industry_match", b.Industry),
		zap.Strings("penalties", b.Penalties),
		zap.String("description", utils.TruncateForLog(jobs.PlainText(job.Description), descriptionLogLength)),
	)
	if b.Skills.Note != "" {
		fields = append(fields, zap.String("skills_note", b.Skills.Note))
	}

	lg.Info("job breakdown", fields...)
}

// appendToExcludeFile adds every job of the list to the exclude file, creating it when needed.
func appendToExcludeFile(path string, shortlist *jobs.ScoredJobs) error {
	excluded, err := jobs.GetExcludedJobsFromFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		excluded = &jobs.ExcludedJobs{}
	}

	excluded.Append(shortlist.Postings().ToExcluded())

	return excluded.ToFile(path)
}
