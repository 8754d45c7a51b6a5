package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bibfusion",
		Short: "VDEh catalogue enrichment via DNB/LoC record fusion",
		Long: `Bibfusion cross-references VDEh library records against the Deutsche
Nationalbibliothek and the Library of Congress and fuses the candidate
matches into a single best record with a per-field provenance trail.

Candidate selection uses an LLM arbitration step guarded by independent
numeric validation; trusted source fields are never overwritten, only
confirmed or supplemented.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	cmd.AddCommand(newFuseCmd())
	cmd.AddCommand(newInspectCmd())
	cmd.AddCommand(newReportCmd())

	return cmd
}
