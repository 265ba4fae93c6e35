package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/devpractices/practices/internal/adapters/outbound/config"
	"github.com/devpractices/practices/internal/adapters/outbound/detector"
	"github.com/devpractices/practices/internal/adapters/outbound/filecheck"
	"github.com/devpractices/practices/internal/adapters/outbound/gitinfo"
	"github.com/devpractices/practices/internal/application"
	"github.com/devpractices/practices/internal/domain"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	path        string
	configPath  string
	noHierarchy bool
	noDetect    bool
	verbose     bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "practices",
		Short: "Resolve and validate development-practice configuration",
		Long: "practices detects a project's technology, merges built-in defaults with team, " +
			"project and user configuration files, and validates the result.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging(cmd.ErrOrStderr(), opts.verbose)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.path, "path", "p", "", "Project root (defaults to the discovered project root)")
	flags.StringVarP(&opts.configPath, "config", "c", "", "Load exactly this configuration file (skips defaults and hierarchy)")
	flags.BoolVar(&opts.noHierarchy, "no-hierarchy", false, "Ignore team and user configuration files")
	flags.BoolVar(&opts.noDetect, "no-detect", false, "Skip project type detection and use python defaults")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log resolution details to stderr")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newDetectCmd(opts))
	cmd.AddCommand(newShowCmd(opts))
	cmd.AddCommand(newValidateCmd(opts))
	cmd.AddCommand(newInitCmd(opts))
	cmd.AddCommand(newSetCmd(opts))
	cmd.AddCommand(newMCPCmd(opts))
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	err := newRootCmd().Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

func configureLogging(w io.Writer, verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

func newConfigService() *application.ConfigService {
	return application.NewConfigService(detector.New(), config.New(), filecheck.New(), nil)
}

// projectRoot resolves the optional [path] argument, then --path. Without
// either the root is discovered from the working directory.
func (o *rootOptions) projectRoot(args []string) (string, error) {
	path := o.path
	if len(args) > 0 {
		path = args[0]
	}
	if path != "" {
		abs, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("resolving path: %w", err)
		}
		return abs, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}
	return application.FindProjectRoot(afero.NewOsFs(), cwd, gitinfo.New()), nil
}

func (o *rootOptions) resolveOptions(root string) domain.ResolveOptions {
	return domain.ResolveOptions{
		ProjectRoot: root,
		ConfigPath:  o.configPath,
		NoHierarchy: o.noHierarchy,
		NoDetect:    o.noDetect,
	}
}
