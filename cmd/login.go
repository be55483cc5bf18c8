package cmd

import (
	"fmt"
	"time"

	cfgpkg "github.com/excotide/moodify/internal/config"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Start a session: stamp the login time that anchors the weekly window",
	Long: `Login records the current time as last_login. On first use it also records
account_created_at and generates a user_id unless --user is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ensureConfig(); err != nil {
			return err
		}
		now := time.Now().Format(time.RFC3339)
		if flagUser != "" {
			cfg.UserID = flagUser
		}
		if cfg.UserID == "" {
			cfg.UserID = uuid.NewString()
		}
		if cfg.AccountCreatedAt == "" {
			cfg.AccountCreatedAt = now
		}
		cfg.LastLogin = now
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		logger.Info("login stamped", zap.String("user_id", cfg.UserID), zap.String("last_login", now))
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Logged in as %s\n", cfg.UserID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
}
