package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/openskills/skillsync/internal/config"
	"github.com/openskills/skillsync/pkg/logging"
	"github.com/openskills/skillsync/pkg/sync"
)

func newSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Run a full catalog synchronization and publish the framework",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			result, err := sync.Run(cmd.Context(), sync.Options{
				SourceDomain:    cfg.SourceDomain,
				Connection:      cfg.Connection(),
				DefaultLanguage: cfg.DefaultLanguage,
				RatePerSecond:   cfg.RatePerSecond,
				MaxPages:        cfg.MaxPages,
				DryRun:          cfg.DryRun,
			})
			if err != nil {
				return err
			}

			logging.Info().Str("summary", result.Summary()).Msg("Synchronization completed")
			return nil
		},
	}

	flags := cmd.Flags()
	flags.String("registry-env", "sandbox", "registry environment: sandbox or production")
	flags.String("org-ctid", "", "organization CTID (ce-<uuid>)")
	flags.String("api-key", "", "organization Credential Registry API key")
	flags.String("language", "en-us", "default language tag for CTDL properties")
	flags.Bool("dry-run", false, "assemble and log the graph without publishing")

	_ = viper.BindPFlag("registry-env", flags.Lookup("registry-env"))
	_ = viper.BindPFlag("org-ctid", flags.Lookup("org-ctid"))
	_ = viper.BindPFlag("api-key", flags.Lookup("api-key"))
	_ = viper.BindPFlag("language", flags.Lookup("language"))
	_ = viper.BindPFlag("dry-run", flags.Lookup("dry-run"))

	return cmd
}
