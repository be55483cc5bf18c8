package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/excotide/moodify/internal/analysis"
	cfgpkg "github.com/excotide/moodify/internal/config"
	"github.com/excotide/moodify/internal/parser"
	"github.com/excotide/moodify/internal/store"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set Moodify configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if cfg == nil {
			fmt.Fprintln(out, "No config loaded")
			return nil
		}
		fmt.Fprintf(out, "store: %s\n", cfg.Store)
		fmt.Fprintf(out, "data_file: %s\n", cfg.DataFile)
		if cfg.SupabaseURL != "" {
			fmt.Fprintf(out, "supabase_url: %s\n", cfg.SupabaseURL)
		}
		if cfg.SupabaseKey != "" {
			fmt.Fprintf(out, "supabase_key: %s\n", mask(cfg.SupabaseKey))
		}
		if cfg.DatabaseURL != "" {
			fmt.Fprintf(out, "database_url: %s\n", mask(cfg.DatabaseURL))
		}
		if cfg.UserID != "" {
			fmt.Fprintf(out, "user_id: %s\n", cfg.UserID)
		}
		if cfg.AccountCreatedAt != "" {
			fmt.Fprintf(out, "account_created_at: %s\n", cfg.AccountCreatedAt)
		}
		if cfg.LastLogin != "" {
			fmt.Fprintf(out, "last_login: %s\n", cfg.LastLogin)
		}
		fmt.Fprintf(out, "anchor_policy: %s\n", cfg.AnchorPolicy)
		fmt.Fprintf(out, "incomplete_week: %s\n", cfg.IncompleteWeek)
		fmt.Fprintf(out, "http_timeout_sec: %d\n", cfg.HTTPTimeoutSec)
		fmt.Fprintf(out, "log_level: %s\n", cfg.LogLevel)
		fmt.Fprintf(out, "log_format: %s\n", cfg.LogFormat)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if err := ensureConfig(); err != nil {
			return err
		}
		switch key {
		case "store":
			v := strings.ToLower(val)
			if !contains(store.Names(), v) {
				return fmt.Errorf("invalid store: %s (use %s)", val, strings.Join(store.Names(), ", "))
			}
			cfg.Store = v
		case "data_file":
			cfg.DataFile = val
		case "supabase_url":
			cfg.SupabaseURL = val
		case "supabase_key":
			cfg.SupabaseKey = val
		case "database_url":
			cfg.DatabaseURL = val
		case "user_id":
			cfg.UserID = val
		case "account_created_at", "last_login":
			if val != "" {
				if _, err := parser.NormalizeTimestamp(val, time.Local); err != nil {
					return fmt.Errorf("invalid timestamp for %s: %w", key, err)
				}
			}
			if key == "last_login" {
				cfg.LastLogin = val
			} else {
				cfg.AccountCreatedAt = val
			}
		case "anchor_policy":
			v := strings.ToLower(val)
			if _, ok := analysis.PolicyByName(v); !ok {
				return fmt.Errorf("invalid anchor_policy: %s (use %s)", val, strings.Join(analysis.PolicyNames(), ", "))
			}
			cfg.AnchorPolicy = v
		case "incomplete_week":
			p, err := analysis.ParseIncompletePolicy(val)
			if err != nil {
				return err
			}
			cfg.IncompleteWeek = string(p)
		case "http_timeout_sec":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid int for http_timeout_sec: %v", val)
			}
			cfg.HTTPTimeoutSec = i
		case "log_level":
			switch val {
			case "debug", "info", "warn", "error":
				cfg.LogLevel = val
			default:
				return fmt.Errorf("invalid log_level: %s (use debug, info, warn or error)", val)
			}
		case "log_format":
			switch val {
			case "console", "json":
				cfg.LogFormat = val
			default:
				return fmt.Errorf("invalid log_format: %s (use console or json)", val)
			}
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 6 {
		return "******"
	}
	return s[:3] + "****" + s[len(s)-3:]
}
