// Package cli implements the journal command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/journal/internal/auth"
	"github.com/mesh-intelligence/journal/internal/paths"
	"github.com/mesh-intelligence/journal/internal/secrets"
	"github.com/mesh-intelligence/journal/internal/sqlite"
	"github.com/mesh-intelligence/journal/internal/theme"
	"github.com/mesh-intelligence/journal/pkg/journal"
	"github.com/mesh-intelligence/journal/pkg/types"
)

// Command annotations.
const (
	// annotationLocked marks commands that need the PIN when one is set.
	annotationLocked = "journal/locked"
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
	verbose   bool
	pin       string
}

// app is the state shared by one invocation of the root command.
type app struct {
	flags     rootFlags
	v         *viper.Viper
	configDir string
	logger    *slog.Logger
	session   *auth.Session
	palette   palette
}

// NewRootCmd creates the top-level "journal" command with global flags and
// all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "journal",
		Short: "A private, local journal",
		Long: "Journal records one dated entry per day with moods, tags and rich text,\n" +
			"exports entries to PDF, and can be locked behind a PIN.",
		Version:       journal.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	pf.StringVar(&a.flags.dataDir, "data-dir", "", "data directory holding journal.db (default: platform data dir)")
	pf.BoolVar(&a.flags.jsonMode, "json", false, "output as JSON")
	pf.BoolVarP(&a.flags.verbose, "verbose", "v", false, "enable debug logging")
	pf.StringVar(&a.flags.pin, "pin", "", "PIN used to unlock the journal (or set "+envPIN+")")

	root.AddCommand(
		a.newInitCmd(),
		a.newWriteCmd(),
		a.newShowCmd(),
		a.newListCmd(),
		a.newEditCmd(),
		a.newDeleteCmd(),
		a.newPurgeCmd(),
		a.newExportCmd(),
		a.newBackupCmd(),
		a.newRestoreCmd(),
		a.newPinCmd(),
		a.newThemeCmd(),
		a.newVersionCmd(),
	)
	return root
}

// Execute runs the root command and exits with the code for the error.
func Execute() {
	os.Exit(Run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// Run executes the CLI with args and returns the process exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return exitSuccess
	}
	code := exitCode(err)
	newPalette(theme.Light, stderr).errorf(stderr, "journal: %s\n", err)
	return code
}

// setup resolves directories, loads config.yaml and installs the logger.
func (a *app) setup(cmd *cobra.Command) error {
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	if err := loadEnvFile(configDir); err != nil {
		return sysError(err)
	}
	v, err := loadConfig(configDir)
	if err != nil {
		return sysError(err)
	}
	if err := v.BindPFlag(cfgKeyPIN, cmd.Root().PersistentFlags().Lookup("pin")); err != nil {
		return sysError(err)
	}
	a.v = v
	a.configDir = configDir

	a.logger = newLogger(cmd.ErrOrStderr(), v.GetString(cfgKeyLogLevel), a.flags.verbose)
	slog.SetDefault(a.logger)

	mode, err := theme.ParseMode(v.GetString(cfgKeyTheme))
	if err != nil {
		a.logger.Warn("ignoring theme from config", "error", err)
		mode = theme.Light
	}
	a.palette = newPalette(mode, cmd.OutOrStdout())
	a.session = auth.NewSession(secrets.NewFileStore(configDir))

	if cmd.Annotations[annotationLocked] == "true" {
		return a.unlock()
	}
	return nil
}

// unlock verifies the PIN from --pin or JOURNAL_PIN when a PIN is set.
func (a *app) unlock() error {
	set, err := a.session.IsSet()
	if err != nil {
		return sysError(err)
	}
	if !set {
		return nil
	}
	pin := a.v.GetString(cfgKeyPIN)
	if pin == "" {
		return userError(fmt.Errorf("%w: pass --pin or set %s", errLocked, envPIN))
	}
	ok, err := a.session.Verify(pin)
	if err != nil {
		return sysError(err)
	}
	if !ok {
		return userError(errWrongPIN)
	}
	return nil
}

// dataDir resolves the data directory: flag > config.yaml > env > default.
func (a *app) dataDir() (string, error) {
	return paths.ResolveDataDir(a.flags.dataDir, a.v.GetString(cfgKeyDataDir))
}

// storeConfig builds the store configuration from flags and config.yaml.
func (a *app) storeConfig() (types.Config, error) {
	dataDir, err := a.dataDir()
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve data dir: %w", err)
	}
	cfg := types.DefaultConfig(dataDir)
	cfg.UniqueDates = a.v.GetBool(cfgKeyUniqueDates)
	return cfg, nil
}

// openStore opens the journal store. The caller must Close it.
func (a *app) openStore(ctx context.Context) (*sqlite.Store, error) {
	cfg, err := a.storeConfig()
	if err != nil {
		return nil, sysError(err)
	}
	store, err := sqlite.Open(ctx, cfg)
	if err != nil {
		return nil, sysError(fmt.Errorf("open journal: %w", err))
	}
	return store, nil
}

// locked marks cmd as requiring the PIN and returns it.
func locked(cmd *cobra.Command) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[annotationLocked] = "true"
	return cmd
}
