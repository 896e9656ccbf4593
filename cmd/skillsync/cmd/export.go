package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/openskills/skillsync/internal/config"
	"github.com/openskills/skillsync/internal/persist"
	"github.com/openskills/skillsync/pkg/errors"
	"github.com/openskills/skillsync/pkg/logging"
	"github.com/openskills/skillsync/pkg/osmt"
	"github.com/openskills/skillsync/pkg/store"
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Fetch and enrich the OSMT catalog, then write it to a YAML file",
		Long: `export pulls the full skill catalog from an OSMT instance, fetches every
skill's detail record, and writes the enriched catalog to a YAML file for
inspection. No registry credentials are needed and nothing is published.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.SourceDomain == "" {
				return &errors.ValidationError{
					Field:   "domain",
					Message: "the OSMT instance domain is required (e.g. osmt.example.com)",
				}
			}
			out := cfg.ExportPath
			if out == "" {
				out = "skills.yaml"
			}

			st := store.New()
			source := osmt.NewClient(st,
				osmt.WithMaxPages(cfg.MaxPages),
				osmt.WithRatePerSecond(cfg.RatePerSecond))

			if err := source.FetchSkills(cmd.Context(), cfg.SourceDomain); err != nil {
				return err
			}

			entries := st.Skills()
			skills := make([]osmt.Skill, 0, len(entries))
			for _, entry := range entries {
				skills = append(skills, entry.Skill)
			}
			if err := source.EnrichAll(cmd.Context(), st.Domain(), skills); err != nil {
				return err
			}

			if err := persist.ExportCatalog(out, st); err != nil {
				return err
			}
			logging.Info().
				Str("path", out).
				Int("skills", st.SkillCount()).
				Msg("Catalog exported")
			return nil
		},
	}

	cmd.Flags().String("out", "skills.yaml", "output file path")
	_ = viper.BindPFlag("out", cmd.Flags().Lookup("out"))

	return cmd
}
