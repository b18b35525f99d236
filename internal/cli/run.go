package cli

import (
	"context"
	stderrors "errors"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/AndreyAkinshin/westcheck/internal/errors"
	"github.com/AndreyAkinshin/westcheck/internal/output"
	"github.com/AndreyAkinshin/westcheck/internal/project"
	"github.com/AndreyAkinshin/westcheck/internal/suite"
)

type runOptions struct {
	checks   []string
	tests    string
	manifest string
	failFast bool
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	ro := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the regression checks of a suite",
		Long: `Run every check of the suite manifest over its test directories.

Each case prints the max diff of every compared observable, whether it
passes or not. The exit code is 0 when all cases pass, 1 when a tolerance
is exceeded, 2 for configuration errors and 3 for missing or malformed
artifacts; with several kinds of failure the highest code wins.`,
		Example: `  westcheck run
  westcheck run --check pdep_eigen --check bse_eigen
  westcheck run --tests 'test02?' --fail-fast`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSuite(cmd, rootOpts, ro)
		},
	}

	cmd.Flags().StringArrayVarP(&ro.checks, "check", "c", nil, "run only this check (repeatable)")
	cmd.Flags().StringVarP(&ro.tests, "tests", "t", "", "run only test directories matching this glob")
	cmd.Flags().StringVarP(&ro.manifest, "manifest", "m", "", "suite manifest (default: <root>/suite.yaml or the built-in lists)")
	cmd.Flags().BoolVar(&ro.failFast, "fail-fast", false, "stop after the first case that does not pass")

	return cmd
}

func runSuite(cmd *cobra.Command, opts *RootOptions, ro *runOptions) error {
	out := newWriter(cmd, opts)
	log := newLogger(cmd, opts)

	root, err := resolveRoot(opts)
	if err != nil {
		return err
	}
	p, err := project.LoadProjectFrom(root, project.Options{
		ParamsPath:   opts.Params,
		ManifestPath: ro.manifest,
	})
	if err != nil {
		return err
	}
	for _, w := range p.Warnings {
		out.Warning("%s", w)
	}

	runner := suite.NewRunner(p.Root, p.Parameters, p.Manifest, out, log)
	summary, err := runner.Run(cmd.Context(), suite.RunOptions{
		Filter:   suite.Filter{Checks: ro.checks, Tests: ro.tests},
		FailFast: ro.failFast,
	})
	if err != nil {
		if summary == nil || !stderrors.Is(err, context.Canceled) {
			return err
		}
		if summary.Total() > 0 {
			printSummary(out, summary)
		}
		out.ErrorPrefix("interrupted after %d cases", summary.Total())
		return &exitError{code: max(summary.ExitCode(), errors.ExitFailure)}
	}

	printSummary(out, summary)
	if code := summary.ExitCode(); code != 0 {
		return &exitError{code: code}
	}
	return nil
}

func printSummary(out *output.Writer, s *suite.Summary) {
	if s.Total() == 0 {
		out.Warning("no cases selected")
		return
	}

	out.SummaryHeader("Summary")
	out.SummaryPassed("Passed", strconv.Itoa(s.Passed))
	out.SummaryFailed("Failed", strconv.Itoa(s.Failed))
	out.SummaryFailed("Errored", strconv.Itoa(s.Errored))
	for _, c := range s.Cases {
		if c.Err != nil {
			out.SummaryCase(c.Name(), false, c.Err.Error())
		}
	}

	if s.OK() {
		out.FinalSuccess("All %d cases passed.", s.Total())
	} else {
		out.FinalFailure("%d of %d cases did not pass.", s.Failed+s.Errored, s.Total())
	}
}
