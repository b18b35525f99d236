package cli

import (
	stderrors "errors"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/AndreyAkinshin/westcheck/internal/compare"
	"github.com/AndreyAkinshin/westcheck/internal/config"
	"github.com/AndreyAkinshin/westcheck/internal/errors"
	"github.com/AndreyAkinshin/westcheck/internal/suite"
)

// NewCompareCommand creates the compare command.
func NewCompareCommand(rootOpts *RootOptions) *cobra.Command {
	var tolerance float64

	cmd := &cobra.Command{
		Use:   "compare <check> <candidate> <reference>",
		Short: "Compare one candidate artifact with its reference",
		Long: `Compare a single pair of artifacts with the comparison of a check.

The tolerance is taken from --tolerance, or else from the check's entry in
parameters.json.`,
		Example: `  westcheck compare total_energy test001/test.save/data-file-schema.xml test001/ref/pw.xml
  westcheck compare tddft_forces new/wbse.json ref/wbse.json --tolerance 1e-6`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			var tol *float64
			if cmd.Flags().Changed("tolerance") {
				tol = &tolerance
			}
			return runCompare(cmd, rootOpts, args[0], args[1], args[2], tol)
		},
	}

	cmd.Flags().Float64Var(&tolerance, "tolerance", 0, "absolute tolerance (default: from parameters.json)")

	return cmd
}

func runCompare(cmd *cobra.Command, opts *RootOptions, name, candidate, reference string, tolFlag *float64) error {
	out := newWriter(cmd, opts)
	log := newLogger(cmd, opts)

	check, ok := suite.Lookup(name)
	if !ok {
		return errors.Configf("%v", config.ValidateCheckName(name))
	}

	var tol float64
	if tolFlag != nil {
		if err := config.ValidateTolerance("--tolerance", *tolFlag); err != nil {
			return errors.Configf("%v", err)
		}
		tol = *tolFlag
	} else {
		paramsPath := opts.Params
		if paramsPath == "" {
			root, err := resolveRoot(opts)
			if err != nil {
				return err
			}
			paramsPath = filepath.Join(root, config.DefaultParametersFile)
		}
		params, warnings, err := config.LoadParameters(paramsPath)
		if err != nil {
			return err
		}
		for _, w := range warnings {
			out.Warning("%s", w)
		}
		if tol, err = params.Tolerance(check.Tolerance); err != nil {
			return err
		}
	}

	res, err := check.Compare(compare.New(out, log), candidate, reference, tol)
	if err != nil {
		var we *errors.Error
		if stderrors.As(err, &we) {
			return we.WithCheck(check.Name)
		}
		return err
	}

	out.Info("%s passed (max diff %v, tolerance %v)", check.Name, res.MaxDiff, tol)
	return nil
}
