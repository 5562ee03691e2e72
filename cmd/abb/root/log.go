package root

import (
	"github.com/spf13/cobra"

	"github.com/walexbarnes/accountabillabuddy/internal/store"
	"github.com/walexbarnes/accountabillabuddy/internal/tui"
)

func newLogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log [date]",
		Short: "Open the interactive day-entry form",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openService()
			if err != nil {
				return err
			}

			date := store.Today()
			if len(args) == 1 {
				date, err = store.NormalizeDate(args[0])
				if err != nil {
					return err
				}
			}

			return tui.RunForm(svc, date, cmd.OutOrStdout())
		},
	}

	return cmd
}
