// Package main provides the numgo command line tool.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/born-ml/numgo/backend/cpu"
	"github.com/born-ml/numgo/internal/coverage"
	"github.com/born-ml/numgo/internal/monitoring"
	"github.com/born-ml/numgo/numpy"
)

const version = "v0.1.0-dev"

type options struct {
	configPath string
	verbose    bool
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "numgo",
		Short:         "NumPy compatible array tools",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return opts.setup(stderr)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "backend tuning file (.json)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log backend diagnostics to stderr")

	root.AddCommand(
		newVersionCmd(),
		newPackbitsCmd(),
		newUnpackbitsCmd(),
		newCoverageCmd(),
	)
	return root
}

// setup installs the logger and the backend every subcommand runs on.
func (o *options) setup(stderr io.Writer) error {
	if o.verbose {
		monitoring.SetLogger(log.New(stderr, "numgo: ", log.LstdFlags).Printf)
	} else {
		monitoring.SetLogger(nil)
	}

	if o.configPath == "" {
		numpy.SetBackend(cpu.New())
		return nil
	}
	b, err := cpu.NewFromFile(o.configPath)
	if err != nil {
		return err
	}
	numpy.SetBackend(b)
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "numgo %s\n", version)
		},
	}
}

func newCoverageCmd() *cobra.Command {
	var native bool
	cmd := &cobra.Command{
		Use:   "coverage [name...]",
		Short: "Show which NumPy functions run natively",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := args
			if len(names) == 0 {
				names = coverage.Names()
				if native {
					names = coverage.NativeNames()
				}
			}
			for _, name := range names {
				e, ok := numpy.Lookup(name)
				if !ok {
					return fmt.Errorf("unknown function %q", name)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-20s %-8s %s\n", e.Name, e.Status, e.Note)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&native, "native", false, "list native functions only")
	return cmd
}
