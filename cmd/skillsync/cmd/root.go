// Package cmd implements the skillsync command tree.
package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// buildInfo carries version metadata from main.
type buildInfo struct {
	version string
	commit  string
	date    string
}

func newRootCmd(info buildInfo) *cobra.Command {
	root := &cobra.Command{
		Use:   "skillsync",
		Short: "Publish an OSMT skills library to the Credential Registry",
		Long: `skillsync pulls the full skill catalog from an OSMT instance, maps each
skill into the Credential Registry's CTDL competency schema, reconciles
identities against previously published competencies, and publishes the
consolidated framework graph.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "config file (default .skillsync.yaml)")
	flags.String("domain", "", "domain of the OSMT instance (e.g. osmt.example.com)")
	flags.Int("max-pages", 10000, "catalog pagination ceiling")
	flags.Int("rate", 20, "approximate detail requests per second")

	_ = viper.BindPFlag("config", flags.Lookup("config"))
	_ = viper.BindPFlag("domain", flags.Lookup("domain"))
	_ = viper.BindPFlag("max-pages", flags.Lookup("max-pages"))
	_ = viper.BindPFlag("rate", flags.Lookup("rate"))

	root.AddCommand(newSyncCmd())
	root.AddCommand(newExportCmd())
	root.AddCommand(newVersionCmd(info))

	return root
}

// Execute runs the command tree with the given context.
func Execute(ctx context.Context, version, commit, date string) error {
	root := newRootCmd(buildInfo{version: version, commit: commit, date: date})
	return root.ExecuteContext(ctx)
}
