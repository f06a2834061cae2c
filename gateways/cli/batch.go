package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/eduvox/backend/services/fluency/consts"
	"github.com/eduvox/backend/services/fluency/entity"
)

type batchResult struct {
	report *entity.FluencyReport
	err    error
}

func (a *app) newBatchCommand() *cobra.Command {
	var (
		threshold     float64
		maxConcurrent int
	)

	cmd := &cobra.Command{
		Use:   "batch <transcript.json>...",
		Short: "Analyse many transcripts concurrently",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if maxConcurrent < 1 {
				return fmt.Errorf("max-concurrent must be at least 1, got %d", maxConcurrent)
			}
			if threshold <= 0 {
				return fmt.Errorf("threshold must be positive, got %v", threshold)
			}

			results := a.runBatch(args, threshold, maxConcurrent)

			var errs []error
			out := cmd.OutOrStdout()
			for i, res := range results {
				if res.err != nil {
					fmt.Fprintf(out, "%s: error: %v\n", args[i], res.err)
					errs = append(errs, res.err)
					continue
				}
				fmt.Fprintf(out, "%s: score=%d wpm=%.1f rate=%s pauses=%d repetitions=%d fillers=%d\n",
					args[i],
					res.report.FluencyScore,
					res.report.WordsPerMinute,
					res.report.RateCategory,
					res.report.PauseCount,
					res.report.RepetitionCount,
					res.report.FillerCount)
			}

			if len(errs) > 0 {
				return fmt.Errorf("%d of %d transcripts failed: %w", len(errs), len(args), errors.Join(errs...))
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&threshold, "threshold", consts.DefaultPauseThreshold, "minimum silence in seconds counted as a pause")
	cmd.Flags().IntVarP(&maxConcurrent, "max-concurrent", "j", 4, "max transcripts analysed at once")

	return cmd
}

// runBatch analyses every path with bounded parallelism. A failing file does
// not stop the others; results keep the input order.
func (a *app) runBatch(paths []string, threshold float64, maxConcurrent int) []batchResult {
	results := make([]batchResult, len(paths))

	var g errgroup.Group
	g.SetLimit(maxConcurrent)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			report, err := analyzeFile(path, 0, threshold)
			results[i] = batchResult{report: report, err: err}
			if err != nil {
				a.log.Warn("transcript failed", "path", path, "error", err)
			}
			return nil
		})
	}
	_ = g.Wait()

	return results
}
