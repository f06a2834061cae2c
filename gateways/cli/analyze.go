package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/eduvox/backend/services/fluency/analysis"
	"github.com/eduvox/backend/services/fluency/consts"
	"github.com/eduvox/backend/services/fluency/entity"
	"github.com/eduvox/backend/services/fluency/render"
)

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"

	defaultReportName = "speech_analysis_report"
)

type analyzeOptions struct {
	duration  float64
	threshold float64
	format    string
	output    string
	noSave    bool
}

func (a *app) newAnalyzeCommand() *cobra.Command {
	opts := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze <transcript.json>",
		Short: "Analyse a single transcript",
		Long: `Analyse a Whisper-style transcript (text, segments with optional word
timestamps, optional duration) and print the fluency report.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAnalyze(cmd, args[0], opts)
		},
	}

	cmd.Flags().Float64Var(&opts.duration, "duration", 0, "recording duration in seconds (overrides the transcript)")
	cmd.Flags().Float64Var(&opts.threshold, "threshold", consts.DefaultPauseThreshold, "minimum silence in seconds counted as a pause")
	cmd.Flags().StringVarP(&opts.format, "format", "f", FormatText, "output format: text, json, yaml")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "report path (default: speech_analysis_report.<ext>)")
	cmd.Flags().BoolVar(&opts.noSave, "no-save", false, "print the report without saving it")

	return cmd
}

func (a *app) runAnalyze(cmd *cobra.Command, path string, opts *analyzeOptions) error {
	if err := validateFormat(opts.format); err != nil {
		return err
	}
	if opts.threshold <= 0 {
		return fmt.Errorf("threshold must be positive, got %v", opts.threshold)
	}

	report, err := analyzeFile(path, opts.duration, opts.threshold)
	if err != nil {
		return err
	}
	a.log.Debug("transcript analysed",
		"path", path,
		"score", report.FluencyScore,
		"warnings", len(report.Warnings))

	out, err := formatReport(report, opts.format)
	if err != nil {
		return err
	}

	if !a.quiet {
		fmt.Fprint(cmd.OutOrStdout(), out)
	}

	if opts.noSave {
		return nil
	}

	target := opts.output
	if target == "" {
		target = defaultReportName + extension(opts.format)
	}
	if err := os.WriteFile(target, []byte(out), 0o644); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	a.log.Info("report saved", "path", target)

	return nil
}

// LoadTranscription reads a Whisper-style JSON transcript.
func LoadTranscription(path string) (entity.Transcription, error) {
	var tr entity.Transcription

	data, err := os.ReadFile(path)
	if err != nil {
		return tr, fmt.Errorf("failed to read transcript: %w", err)
	}
	if err := json.Unmarshal(data, &tr); err != nil {
		return tr, fmt.Errorf("failed to parse transcript %s: %w", filepath.Base(path), err)
	}

	return tr, nil
}

func analyzeFile(path string, duration, threshold float64) (*entity.FluencyReport, error) {
	tr, err := LoadTranscription(path)
	if err != nil {
		return nil, err
	}
	if duration > 0 {
		tr.Duration = duration
	}

	report, err := analysis.Analyze(tr, analysis.Options{PauseThreshold: threshold})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return report, nil
}

func formatReport(report *entity.FluencyReport, format string) (string, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to encode report: %w", err)
		}
		return string(data) + "\n", nil
	case FormatYAML:
		data, err := yaml.Marshal(report)
		if err != nil {
			return "", fmt.Errorf("failed to encode report: %w", err)
		}
		return string(data), nil
	default:
		return render.Render(report), nil
	}
}

func validateFormat(format string) error {
	switch format {
	case FormatText, FormatJSON, FormatYAML:
		return nil
	default:
		return fmt.Errorf("unsupported format %q (want text, json or yaml)", format)
	}
}

func extension(format string) string {
	switch format {
	case FormatJSON:
		return ".json"
	case FormatYAML:
		return ".yaml"
	default:
		return ".txt"
	}
}
