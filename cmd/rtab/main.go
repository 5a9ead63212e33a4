package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"pkt.systems/psi"
	"pkt.systems/pslog"

	apppkg "github.com/kk-code-lab/rtab/internal/app"
	"github.com/kk-code-lab/rtab/internal/config"
	"github.com/kk-code-lab/rtab/internal/logx"
	"github.com/kk-code-lab/rtab/internal/shellsetup"
)

func main() {
	psi.Run(submain)
}

func submain(ctx context.Context) int {
	// Only used before the terminal is taken over and after it is released.
	logger := pslog.LoggerFromEnv(
		pslog.WithEnvWriter(os.Stderr),
		pslog.WithEnvOptions(pslog.Options{Mode: pslog.ModeConsole}),
	)
	ctx = pslog.ContextWithLogger(ctx, logger)

	root := newRootCmd()
	root.SetArgs(os.Args[1:])
	if err := root.ExecuteContext(ctx); err != nil {
		pslog.Ctx(ctx).With("err", err).Error("rtab failed")
		return 1
	}
	return 0
}

// setupAuto is the --setup value used when no shell is named.
const setupAuto = "auto"

type rootOptions struct {
	configPath string
	setupShell string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "rtab [DIR]",
		Short: "Terminal file browser with parent, current and child panes",
		Long: `rtab browses directories in three panes. Add the snippet printed by
"rtab --setup" to your shell profile so quitting rtab changes the shell's
working directory.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("setup") {
				shell := opts.setupShell
				if shell == setupAuto {
					shell = ""
				}
				return shellsetup.Write(cmd.OutOrStdout(), shellsetup.Options{Shell: shell})
			}
			return runBrowser(cmd.Context(), opts.configPath, args)
		},
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (default "+config.DefaultPath()+")")
	root.Flags().StringVarP(&opts.setupShell, "setup", "s", "", "print shell integration snippet, optionally for SHELL")
	root.Flags().Lookup("setup").NoOptDefVal = setupAuto

	root.AddCommand(newConfigCmd(opts))
	return root
}

func runBrowser(ctx context.Context, configPath string, args []string) error {
	startDir, err := resolveStartDir(args)
	if err != nil {
		return err
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, closer, err := logx.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()
	ctx = pslog.ContextWithLogger(ctx, logger)

	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)
	app, err := apppkg.NewApplication(ctx, cfg, startDir)
	if err != nil {
		return errors.Wrap(err, "couldn't start browser")
	}
	app.Run()
	path := app.CurrentPath()
	_ = app.Close()

	logger.Info("exiting", "cwd", path)
	return writeResult(os.TempDir(), os.Getpid(), path)
}

// resolveStartDir returns the absolute directory to open: the argument when
// given, the working directory otherwise.
func resolveStartDir(args []string) (string, error) {
	dir := ""
	if len(args) > 0 {
		dir = args[0]
	}
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", errors.Wrap(err, "couldn't determine working directory")
		}
		dir = wd
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrapf(err, "couldn't resolve %s", dir)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", errors.Wrapf(err, "couldn't open %s", dir)
	}
	if !info.IsDir() {
		return "", errors.Errorf("%s is not a directory", dir)
	}
	return abs, nil
}

// writeResult leaves the final directory for the shell function. The file is
// keyed by pid so concurrent instances don't collide, and readable only by
// the owner.
func writeResult(tempDir string, pid int, path string) error {
	if path == "" {
		return nil
	}
	resultFile := filepath.Join(tempDir, shellsetup.ResultFile(pid))
	if err := os.WriteFile(resultFile, []byte(path), 0o600); err != nil {
		return errors.Wrap(err, "couldn't write result file")
	}
	return nil
}

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the rtab configuration file",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.configPath
			if path == "" {
				path = config.DefaultPath()
			}
			if err := config.WriteDefault(path); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return err
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			data, err := config.Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	})
	return cmd
}
