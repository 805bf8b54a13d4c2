package cli

import "github.com/spf13/cobra"

func (a *app) catalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Count catalog rows by quality class",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, closeFn, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			out, err := svc.Catalog(scoped(cmd.Context(), ""))
			if err != nil {
				return err
			}
			if a.json {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			printCatalog(cmd.OutOrStdout(), out)
			return nil
		},
	}
}
