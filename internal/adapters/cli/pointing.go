package cli

import (
	"refstar/internal/services/api/refstar/domain"

	"github.com/spf13/cobra"
)

func (a *app) pointingCmd() *cobra.Command {
	var in domain.PointingInput
	cmd := &cobra.Command{
		Use:   "pointing",
		Short: "Print sun angle, pitch and yaw of one star across a window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, closeFn, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			out, err := svc.Pointing(scoped(cmd.Context(), in.Star), in)
			if err != nil {
				return err
			}
			if a.json {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			printPointing(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Star, "star", "", "star name")
	_ = cmd.MarkFlagRequired("star")
	windowFlags(cmd, &in.Start, &in.Duration, &in.Samples)
	return cmd
}
