package root

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/walexbarnes/accountabillabuddy/internal/ui"
)

func newRecentCmd() *cobra.Command {
	var n int

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List the most recent days, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openService()
			if err != nil {
				return err
			}

			recs := svc.Recent(n)
			if len(recs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No recent activity data available."))
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconScroll, "Recent Activity"))
			header := append([]string{"Date"}, svc.Schema().Columns()...)
			fmt.Fprintln(cmd.OutOrStdout(), ui.Key.Render(strings.Join(header, "  ")))
			for _, rec := range recs {
				cells := []string{rec.Date}
				for _, f := range svc.Schema() {
					cell := f.Format(rec.Value(f.Name))
					if cell == "" {
						cell = "—"
					}
					cells = append(cells, cell)
				}
				fmt.Fprintln(cmd.OutOrStdout(), strings.Join(cells, "  "))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&n, "count", "n", 5, "How many days to show")

	return cmd
}
