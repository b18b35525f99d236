package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/AndreyAkinshin/westcheck/internal/errors"
	"github.com/AndreyAkinshin/westcheck/internal/project"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Quiet   bool
	Verbose bool
	Root    string // Suite root; found from the working directory when empty
	Params  string // parameters.json path; <root>/parameters.json when empty
}

// NewRootCommand creates the root command for the westcheck CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "westcheck",
		Short: "Regression checks for WEST simulation outputs",
		Long: `westcheck compares the artifacts written by the pw, wstat, wfreq and wbse
stages of each test directory against stored references, within the
absolute tolerances of parameters.json.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetVersionTemplate("westcheck {{.Version}}\n")

	cmd.PersistentFlags().BoolVarP(&opts.Quiet, "quiet", "q", false, "only print max diffs, failures and the verdict")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log debug diagnostics to stderr")
	cmd.PersistentFlags().StringVar(&opts.Root, "root", "", "suite root directory (default: nearest parent with parameters.json)")
	cmd.PersistentFlags().StringVar(&opts.Params, "params", "", "parameters file (default: <root>/parameters.json)")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewCompareCommand(opts))
	cmd.AddCommand(NewChecksCommand(opts))
	cmd.AddCommand(NewVersionCommand(opts))

	return cmd
}

// resolveRoot returns the suite root: --root if given, otherwise the
// nearest parent holding parameters.json. With --params and no suite
// found, the working directory is used.
func resolveRoot(opts *RootOptions) (string, error) {
	if opts.Root != "" {
		root, err := filepath.Abs(opts.Root)
		if err != nil {
			return "", errors.Configf("invalid --root %q: %v", opts.Root, err)
		}
		fi, err := os.Stat(root)
		if err != nil || !fi.IsDir() {
			return "", errors.Configf("suite root %q is not a directory", opts.Root)
		}
		return root, nil
	}

	root, err := project.FindRoot()
	if err == nil {
		return root, nil
	}
	if opts.Params != "" {
		return os.Getwd()
	}
	return "", err
}
