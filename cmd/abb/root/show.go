package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/walexbarnes/accountabillabuddy/internal/schema"
	"github.com/walexbarnes/accountabillabuddy/internal/store"
	"github.com/walexbarnes/accountabillabuddy/internal/ui"
)

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [date]",
		Short: "Show the stored record for a day",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openService()
			if err != nil {
				return err
			}

			date := store.Today()
			if len(args) == 1 {
				date = args[0]
			}
			rec, exists, err := svc.Record(date)
			if err != nil {
				return err
			}

			heading := ui.Heading(ui.IconCalendar, "Data for "+rec.Date)
			if exists {
				heading += "  " + ui.BadgeExists
			}
			fmt.Fprintln(cmd.OutOrStdout(), heading)

			for _, f := range svc.Schema() {
				v := rec.Value(f.Name)
				if !v.IsSet() {
					fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue(f.Name, ui.Muted.Render("—")))
					continue
				}
				switch f.Kind {
				case schema.KindTristate:
					fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue(f.Name, ui.LevelText(v.Text())))
				case schema.KindDuration:
					fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue(f.Name, fmt.Sprintf("%d %s", v.Int(), f.Unit)))
				default:
					fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue(f.Name, v.Int()))
				}
			}
			return nil
		},
	}

	return cmd
}
