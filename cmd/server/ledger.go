package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	sqliteadapter "github.com/academlist/seller-portal/internal/adapters/sqlite"
	"github.com/academlist/seller-portal/internal/config"
)

var errNoLedger = errors.New("no ledger configured: set --db_path or ACADEMLIST_DB_PATH")

// newLedgerCmd lists recorded submissions, newest first, without starting
// the server.
func newLedgerCmd(v *viper.Viper) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "List recorded submissions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			if !cfg.Persistent() {
				return errNoLedger
			}
			repo, err := sqliteadapter.New(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer repo.Close()

			subs, err := repo.ListSubmissions(cmd.Context())
			if err != nil {
				return fmt.Errorf("read ledger: %w", err)
			}
			if limit > 0 && len(subs) > limit {
				subs = subs[:limit]
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tCREATED\tSELLER\tEMAIL\tTITLE\tFILE\tBYTES")
			for _, s := range subs {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%d\n",
					s.ID, s.CreatedAt.Format("2006-01-02 15:04"),
					s.Fields.Name, s.Fields.Email, s.Fields.Title,
					s.File.Name, s.File.Size)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "show at most this many rows; 0 shows all")
	return cmd
}
