package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/excotide/moodify/internal/analysis"
	cfgpkg "github.com/excotide/moodify/internal/config"
	"github.com/excotide/moodify/internal/logging"
	"github.com/excotide/moodify/internal/mood"
	"github.com/excotide/moodify/internal/store"
	"github.com/excotide/moodify/internal/tracker"
	"github.com/excotide/moodify/internal/utils"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	cfgFile string
	debug   bool
	// Per-run overrides; never written back to the config file
	flagUser   string
	flagPolicy string
	flagStore  string

	// Loaded configuration
	cfg    *cfgpkg.Global
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "moodify",
	Short: "Moodify: record your mood and see how your week went",
	Long: `Moodify records mood observations (Kacau, Buruk, Netral, Bagus, Sangat bagus) and summarizes
the current 7-day window: daily averages, positive and negative days, the dominant mood and a rolling graph.
Data lives in a local file, a Supabase table or a Postgres database.`,
	SilenceUsage: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.moodify/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&flagUser, "user", "", "user id to record and query as (overrides config; login stamps apply only to the configured user)")
	rootCmd.PersistentFlags().StringVar(&flagPolicy, "policy", "", "anchor policy: "+strings.Join(analysis.PolicyNames(), ", ")+" (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagStore, "store", "", "storage backend: "+strings.Join(store.Names(), ", ")+" (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: commands that need config call ensureConfig
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c

	level := cfg.LogLevel
	if debug {
		level = "debug"
	}
	l, err := logging.New(level, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to build logger: %v\n", err)
		return
	}
	logger = l
}

func ensureConfig() error {
	if cfg != nil {
		return nil
	}
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		return err
	}
	cfg = c
	return nil
}

func currentOwner() string {
	if flagUser != "" {
		return flagUser
	}
	return cfg.UserID
}

func currentPolicy() (analysis.AnchorPolicy, error) {
	name := cfg.AnchorPolicy
	if flagPolicy != "" {
		name = flagPolicy
	}
	name = strings.ToLower(strings.TrimSpace(name))
	p, ok := analysis.PolicyByName(name)
	if !ok {
		return nil, fmt.Errorf("unknown anchor policy %q (available: %s)", name, strings.Join(analysis.PolicyNames(), ", "))
	}
	return p, nil
}

func openStore() (store.Store, error) {
	name := cfg.Store
	if flagStore != "" {
		name = flagStore
	}
	dataFile, err := utils.ExpandHome(cfg.DataFile)
	if err != nil {
		return nil, err
	}
	return store.Open(name, store.Config{
		DataFile:    dataFile,
		SupabaseURL: cfg.SupabaseURL,
		SupabaseKey: cfg.SupabaseKey,
		DatabaseURL: cfg.DatabaseURL,
		HTTPTimeout: time.Duration(cfg.HTTPTimeoutSec) * time.Second,
		Logger:      logger,
	})
}

// newTracker wires the configured store, policy and profile signals.
func newTracker() (*tracker.Tracker, error) {
	if err := ensureConfig(); err != nil {
		return nil, err
	}
	st, err := openStore()
	if err != nil {
		return nil, err
	}
	pol, err := currentPolicy()
	if err != nil {
		return nil, err
	}
	profile, err := currentProfile()
	if err != nil {
		return nil, err
	}
	return tracker.New(tracker.Config{
		Store:   st,
		Policy:  pol,
		Profile: profile,
		Owner:   currentOwner(),
		Logger:  logger,
	})
}

// currentProfile returns the configured login and creation stamps. They
// belong to the configured user only; another --user gets no signals and
// is anchored on its stored data.
func currentProfile() (tracker.StaticProfile, error) {
	if flagUser != "" && flagUser != cfg.UserID {
		return tracker.StaticProfile{}, nil
	}
	created, err := cfg.CreatedAt()
	if err != nil {
		return tracker.StaticProfile{}, err
	}
	lastLogin, err := cfg.LastLoginAt()
	if err != nil {
		return tracker.StaticProfile{}, err
	}
	return tracker.StaticProfile{AccountCreatedAt: created, LastLoginAt: lastLogin}, nil
}

// saveFailed adds a hint to store write failures.
func saveFailed(err error) error {
	if errors.Is(err, mood.ErrStoreUnavailable) {
		return fmt.Errorf("%w (check your connection or file permissions and try again)", err)
	}
	return err
}
