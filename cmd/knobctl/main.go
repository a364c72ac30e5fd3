// Command knobctl validates, reads, writes and diffs a declared kernel
// tunable configuration against the live system.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"knobctl/internal/codec"
	"knobctl/internal/logging"
	"knobctl/internal/meta"
	"knobctl/internal/registry"
	"knobctl/internal/report"
	"knobctl/internal/sysinfo"
)

var version = "0.1.0"

// errFailed signals a non-zero exit after the command has already printed
// its own error block.
var errFailed = errors.New("operation failed")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code. It is separated
// from main() to enable testing.
func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintln(stderr, "Error:", err)
		}
		return 1
	}
	return 0
}

// app carries the flags and lazily constructed collaborators shared by all
// subcommands.
type app struct {
	stdout io.Writer
	stderr io.Writer
	log    *zap.Logger

	logLevel      string
	jsonOut       bool
	sysfsRoot     string
	kernelRelease string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:           "knobctl",
		Short:         "Declarative configuration of Linux kernel tunables",
		Long:          "knobctl checks a YAML description of kernel tunables against a built-in\nschema, compares it with the live system and applies it through sysfs.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log, err := logging.New(a.logLevel)
			if err != nil {
				return err
			}
			a.log = log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.BoolVar(&a.jsonOut, "json", false, "emit machine-readable JSON results")
	pf.StringVar(&a.sysfsRoot, "sysfs-root", "/", "filesystem prefix for sysfs paths")
	pf.StringVar(&a.kernelRelease, "kernel-release", "", "override detected kernel release")
	_ = pf.MarkHidden("sysfs-root")
	_ = pf.MarkHidden("kernel-release")

	root.AddCommand(a.infoCmd())
	root.AddCommand(a.typecheckCmd())
	root.AddCommand(a.obtainCmd())
	root.AddCommand(a.applyCmd())
	root.AddCommand(a.verifyCmd())
	return root
}

// model builds the metamodel for the current system facts.
func (a *app) model() (*meta.Model, error) {
	release := a.kernelRelease
	if release == "" {
		r, err := sysinfo.KernelRelease()
		if err != nil {
			return nil, fmt.Errorf("cannot discover kernel release: %w", err)
		}
		release = r
	}

	kernel, err := registry.ParseVersion(release)
	if err != nil {
		return nil, fmt.Errorf("cannot parse kernel release %q: %w", release, err)
	}
	a.log.Debug("building schema", zap.String("release", release), zap.String("sysfs_root", a.sysfsRoot))

	rel := release
	return registry.Build(registry.Facts{
		Kernel:  kernel,
		Release: func() (string, error) { return rel, nil },
		Root:    a.sysfsRoot,
	}), nil
}

// emit prints a report in the selected output mode and converts a failing
// report into a non-zero exit.
func (a *app) emit(r report.Report, successLine string) error {
	if a.jsonOut {
		out, err := r.FormatJSON()
		if err != nil {
			return err
		}
		fmt.Fprintln(a.stdout, out)
		if !r.OK {
			return errFailed
		}
		return nil
	}

	if r.OK {
		fmt.Fprintln(a.stdout, successLine)
		return nil
	}
	fmt.Fprint(a.stderr, r.FormatCLI())
	return errFailed
}

func (a *app) infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print the tunable schema tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.model()
			if err != nil {
				return err
			}
			fmt.Fprint(a.stdout, m.Tree())
			return nil
		},
	}
}

func (a *app) typecheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "typecheck <file>",
		Short: "Check a configuration file against the schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.model()
			if err != nil {
				return err
			}
			value, err := codec.LoadFile(args[0])
			if err != nil {
				return err
			}
			errs := m.TypeCheck(value)
			return a.emit(report.New("typecheck", "schema violations", errs), "✓ configuration is valid")
		},
	}
}

func (a *app) obtainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "obtain <file>",
		Short: "Read the live system state into a configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.model()
			if err != nil {
				return err
			}
			value, err := m.ReadSystem()
			if err != nil {
				return err
			}
			if err := codec.WriteFile(args[0], value); err != nil {
				return err
			}
			a.log.Info("system state written", zap.String("file", args[0]))
			fmt.Fprintf(a.stdout, "✓ system state written to %s\n", args[0])
			return nil
		},
	}
}

func (a *app) applyCmd() *cobra.Command {
	var always bool
	cmd := &cobra.Command{
		Use:   "apply <file>",
		Short: "Write a configuration file to the live system",
		Long:  "Type-checks the file and writes every applyable tunable through its adapter.\nBy default a tunable is only written when its live value differs; --always\ndisables that check. Non-applyable tunables are compared, never written.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.model()
			if err != nil {
				return err
			}
			value, err := codec.LoadFile(args[0])
			if err != nil {
				return err
			}
			tv, errs := m.Wrap(value)
			if len(errs) > 0 {
				return a.emit(report.New("apply", "schema violations", errs), "")
			}
			a.log.Debug("applying configuration", zap.Bool("always", always))
			errs = m.Apply(tv, always)
			return a.emit(report.New("apply", "apply errors", errs), "✓ configuration applied")
		},
	}
	cmd.Flags().BoolVar(&always, "always", false, "write applyable tunables even when the live value already matches")
	return cmd
}

func (a *app) verifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <file>",
		Short: "Compare a configuration file with the live system",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.model()
			if err != nil {
				return err
			}
			value, err := codec.LoadFile(args[0])
			if err != nil {
				return err
			}
			want, errs := m.Wrap(value)
			if len(errs) > 0 {
				return a.emit(report.New("verify", "schema violations", errs), "")
			}

			system, err := m.ReadSystem()
			if err != nil {
				return err
			}
			live, errs := m.Wrap(system)
			if len(errs) > 0 {
				return a.emit(report.New("verify", "live system state violates schema", errs), "")
			}

			diffs := m.Diff(want, live, "file", "system")
			return a.emit(report.New("verify", "differences", diffs), "✓ system matches configuration")
		},
	}
}
