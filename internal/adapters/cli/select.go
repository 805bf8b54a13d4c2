package cli

import (
	"refstar/internal/core/selector"
	"refstar/internal/services/api/refstar/domain"

	"github.com/spf13/cobra"
)

func (a *app) selectCmd() *cobra.Command {
	var (
		in     domain.SelectInput
		strict bool
	)
	cmd := &cobra.Command{
		Use:   "select",
		Short: "Select a reference star for a target over a window",
		Long: `Checks the target against the solar angle constraint, then takes candidates
class by class and prints the first whose pitch tracks the target within the
tolerance. Constraint outcomes exit 0 unless --strict is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, closeFn, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			out, err := svc.Select(scoped(cmd.Context(), in.Target), in)
			if err != nil {
				return err
			}
			if a.json {
				if err := writeJSON(cmd.OutOrStdout(), out); err != nil {
					return err
				}
			} else {
				printSelect(cmd.OutOrStdout(), out)
			}
			if strict && out.Status != string(selector.StatusFound) {
				return &ExitError{Code: ExitStrict, Msg: out.Message}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Target, "target", "", "target star name")
	_ = cmd.MarkFlagRequired("target")
	windowFlags(cmd, &in.Start, &in.Duration, &in.Samples)
	cmd.Flags().BoolVar(&strict, "strict", false, "exit 2 when no reference star is selected")
	return cmd
}
