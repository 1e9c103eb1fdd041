// Package cli implements the yarn-why command line.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/albertocavalcante/go-yarnwhy"
	"github.com/albertocavalcante/go-yarnwhy/lockfile"
	"github.com/albertocavalcante/go-yarnwhy/tree"
)

// Version is stamped at build time with -ldflags "-X .../internal/cli.Version=...".
var Version = "dev"

const (
	envPrefix  = "YARN_WHY"
	configName = ".yarn-why"
)

// errUsage signals that usage was already printed and only the exit code
// remains.
var errUsage = errors.New("usage")

// Flag names double as viper keys, config file keys and, upper-cased with
// '-' replaced by '_', YARN_WHY_* environment variable suffixes.
const (
	flagFile        = "file"
	flagFilter      = "filter"
	flagMaxDepth    = "max-depth"
	flagNoDedup     = "no-dedup"
	flagJSON        = "json"
	flagDOT         = "dot"
	flagVisitCap    = "visit-cap"
	flagConcurrency = "concurrency"
	flagNoColor     = "no-color"
	flagVerbose     = "verbose"
	flagList        = "list"
	flagStats       = "stats"
)

// NewRootCmd creates the yarn-why command bound to env.
func NewRootCmd(env Environment) *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "yarn-why [flags] <package[@range]>",
		Short: "Explain why a package is in yarn.lock",
		Long: `yarn-why prints every chain of dependents that pulls a package into a
yarn lockfile, merged into a tree.

The lockfile is read from --file, from standard input when it is not a
terminal, or from ./yarn.lock. Both classic (v1) and berry (v2+) lockfiles
are supported.

Every flag can also be set with a YARN_WHY_* environment variable
(YARN_WHY_MAX_DEPTH=0) or in a .yarn-why.yaml file.`,
		Example: `  yarn-why node-gyp
  yarn-why chalk@^4.1.0 --json
  yarn-why chalk --filter '>=4' --max-depth 0
  cat yarn.lock | yarn-why lodash`,
		Args:          cobra.MaximumNArgs(1),
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return loadConfig(v, cmd, env)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, v, env, args)
		},
	}

	cmd.SetIn(env.In)
	cmd.SetOut(env.Out)
	cmd.SetErr(env.Err)
	cmd.SetVersionTemplate("yarn-why {{.Version}}\n")

	flags := cmd.Flags()
	flags.StringP(flagFile, "f", "", "lockfile to read (default: stdin if piped, else ./yarn.lock)")
	flags.StringP(flagFilter, "F", "", "only consider versions of the package matching this semver range")
	flags.IntP(flagMaxDepth, "d", yarnwhy.DefaultMaxDepth, "keep this many descriptors nearest the package in each path (0 = no limit)")
	flags.Bool(flagNoDedup, false, "expand repeated subtrees")
	flags.Bool(flagJSON, false, "print the tree as JSON")
	flags.Bool(flagDOT, false, "print the tree as a Graphviz digraph")
	flags.Int(flagVisitCap, yarnwhy.DefaultVisitCap, "how often one walk may enter the same descriptor")
	flags.Int(flagConcurrency, yarnwhy.DefaultConcurrency, "descriptors walked in parallel")
	flags.Bool(flagNoColor, false, "disable colored output")
	flags.BoolP(flagVerbose, "v", false, "log diagnostics to stderr")
	flags.Bool(flagList, false, "print every lockfile record as a JSON line and exit")
	flags.Bool(flagStats, false, "print graph statistics to stderr")
	flags.BoolP("version", "V", false, "print the version and exit")

	return cmd
}

// Execute runs the command with args and returns the process exit code.
func Execute(env Environment, args []string) int {
	cmd := NewRootCmd(env)
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(env.Err, "yarn-why: %v\n", err)
		}
		return 1
	}
	return 0
}

// loadConfig layers flags over YARN_WHY_* variables over .yarn-why.yaml.
func loadConfig(v *viper.Viper, cmd *cobra.Command, env Environment) error {
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	v.AddConfigPath(env.Dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("%w: reading %s.yaml: %v", yarnwhy.ErrInvalidArgument, configName, err)
		}
	}
	return nil
}

func run(cmd *cobra.Command, v *viper.Viper, env Environment, args []string) error {
	if v.GetBool(flagList) {
		lf, err := readLockfile(v, env)
		if err != nil {
			return err
		}
		return writeRecords(env, lf)
	}

	if len(args) == 0 {
		fmt.Fprint(env.Out, cmd.UsageString())
		return errUsage
	}
	if v.GetBool(flagJSON) && v.GetBool(flagDOT) {
		return fmt.Errorf("%w: --json and --dot are mutually exclusive", yarnwhy.ErrInvalidArgument)
	}

	// Options are validated before any input is read.
	opts := []yarnwhy.Option{
		yarnwhy.WithVersionFilter(v.GetString(flagFilter)),
		yarnwhy.WithMaxDepth(v.GetInt(flagMaxDepth)),
		yarnwhy.WithDedup(!v.GetBool(flagNoDedup)),
		yarnwhy.WithVisitCap(v.GetInt(flagVisitCap)),
		yarnwhy.WithConcurrency(v.GetInt(flagConcurrency)),
	}
	if v.GetBool(flagVerbose) {
		logger := slog.New(slog.NewTextHandler(env.Err, &slog.HandlerOptions{Level: slog.LevelDebug}))
		opts = append(opts, yarnwhy.WithLogger(logger))
	}
	if err := yarnwhy.ValidateOptions(opts...); err != nil {
		return err
	}

	lf, err := readLockfile(v, env)
	if err != nil {
		return err
	}

	result, err := yarnwhy.Why(lf, args[0], opts...)
	if err != nil {
		return err
	}

	if err := render(env, v, result.Forest); err != nil {
		return err
	}

	if v.GetBool(flagStats) {
		s := result.Stats
		fmt.Fprintf(env.Err, "entries=%d descriptors=%d edges=%d roots=%d paths=%d\n",
			s.Entries, s.Descriptors, s.Edges, s.Roots, len(result.Paths))
	}
	return nil
}

func readLockfile(v *viper.Viper, env Environment) (*lockfile.Lockfile, error) {
	if path := v.GetString(flagFile); path != "" {
		return lockfile.ReadFile(path)
	}
	if !env.InTerminal && env.In != nil {
		return lockfile.Read(env.In)
	}
	path := lockfile.DefaultPath(env.Dir)
	if !lockfile.Exists(path) {
		dir := env.Dir
		if dir == "" {
			dir = "."
		}
		return nil, fmt.Errorf("no %s in %s; pass --file or pipe a lockfile on stdin", lockfile.DefaultName, dir)
	}
	return lockfile.ReadFile(path)
}

func render(env Environment, v *viper.Viper, forest tree.Forest) error {
	switch {
	case v.GetBool(flagJSON):
		data, err := forest.ToJSON()
		if err != nil {
			return err
		}
		_, err = env.Out.Write(data)
		return err
	case v.GetBool(flagDOT):
		_, err := fmt.Fprint(env.Out, forest.ToDOT())
		return err
	default:
		return forest.WriteText(env.Out, palette(env, v))
	}
}

// palette colors text only on an interactive terminal without NO_COLOR or
// --no-color.
func palette(env Environment, v *viper.Viper) tree.Palette {
	if !env.OutTerminal || v.GetBool(flagNoColor) {
		return tree.Palette{}
	}
	if _, ok := env.lookupEnv("NO_COLOR"); ok {
		return tree.Palette{}
	}
	return tree.NewPalette(lipgloss.NewRenderer(env.Out))
}

func writeRecords(env Environment, lf *lockfile.Lockfile) error {
	enc := json.NewEncoder(env.Out)
	enc.SetEscapeHTML(false)
	for _, r := range lf.Records() {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}
