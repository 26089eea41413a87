package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/cyberguard/internal/clock"
	"github.com/abhisek/cyberguard/internal/config"
	"github.com/abhisek/cyberguard/internal/identity"
	"github.com/abhisek/cyberguard/internal/logger"
	"github.com/abhisek/cyberguard/internal/simulation"
	"github.com/abhisek/cyberguard/internal/store"
	"github.com/abhisek/cyberguard/internal/tracker"
)

var rootCmd = &cobra.Command{
	Use:   "cyberguard",
	Short: "Cybersecurity awareness trainer",
	Long:  "CyberGuard: a terminal trainer that teaches you to spot phishing, unsafe Wi-Fi, social engineering and weak passwords through interactive simulations.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides CYBERGUARD_DB and config)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default: config.yaml in the data or working directory)")
	rootCmd.Flags().Bool("no-splash", false, "Skip the welcome animation")

	rootCmd.AddCommand(signupCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(simulationsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(sectionCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// services bundles everything a command needs. Close releases the store
// and flushes the logger.
type services struct {
	cfg      *config.Config
	log      *logger.Logger
	store    *store.Store
	catalog  *simulation.Catalog
	identity *identity.LocalProvider
	tracker  *tracker.Tracker
	clock    clock.Clock
}

func (s *services) Close() {
	s.store.Close()
	s.log.Sync()
}

// loadConfig resolves configuration; the --db flag wins over every other
// source.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(config.Options{ConfigFile: cfgPath})
	if err != nil {
		return nil, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DB = p
	}
	return cfg, nil
}

// openServices loads config, opens the store and restores the persisted
// session, if any.
func openServices(cmd *cobra.Command) (*services, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.LogMode, cfg.LogFile)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	// fail logs and flushes before an early return; later failures go
	// through svc.Close.
	fail := func(err error) (*services, error) {
		log.Error("startup failed", "db", cfg.DB, "error", err)
		log.Sync()
		return nil, err
	}

	if err := store.EnsureDir(cfg.DB); err != nil {
		return fail(fmt.Errorf("resolve DB path: %w", err))
	}
	st, err := store.Open(cfg.DB)
	if err != nil {
		return fail(fmt.Errorf("open store: %w", err))
	}

	catalog := simulation.Builtin()
	if cfg.Catalog != "" {
		catalog, err = simulation.LoadCatalogFile(cfg.Catalog)
		if err != nil {
			st.Close()
			return fail(fmt.Errorf("load catalog: %w", err))
		}
	}

	clk := clock.System{}
	svc := &services{
		cfg:     cfg,
		log:     log,
		store:   st,
		catalog: catalog,
		clock:   clk,
		identity: identity.NewLocalProvider(st.Users(), st.KV(), identity.LocalOptions{
			Clock:      clk,
			Logger:     log,
			BcryptCost: cfg.BcryptCost,
		}),
		tracker: tracker.New(st.KV(), st.Attempts(), tracker.Options{
			Clock:    clk,
			Location: loc,
			Logger:   log,
		}),
	}

	ctx := cmdContext(cmd)
	user, err := svc.identity.CurrentUser(ctx)
	if err != nil {
		svc.Close()
		return nil, fmt.Errorf("restore session: %w", err)
	}
	if user != nil {
		if err := svc.tracker.SignIn(ctx, user); err != nil {
			svc.Close()
			return nil, fmt.Errorf("load progress: %w", err)
		}
	}
	log.Debug("services ready", "db", cfg.DB, "simulations", catalog.Len(), "signed_in", user != nil)
	return svc, nil
}

// requireUser returns the signed-in identity or a hint to log in.
func (s *services) requireUser() (*identity.User, error) {
	if u := s.tracker.User(); u != nil {
		return u, nil
	}
	return nil, fmt.Errorf("not signed in: run `cyberguard login` or `cyberguard signup` first")
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
