package root

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/walexbarnes/accountabillabuddy/internal/schema"
	"github.com/walexbarnes/accountabillabuddy/internal/store"
	"github.com/walexbarnes/accountabillabuddy/internal/ui"
)

func newSetCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "set Field=value [Field=value ...]",
		Short: "Record field values for a day without the form",
		Long: `Record one or more field values for a day.

Durations take whole minutes, tristate fields take bad|neutral|good, and
scale fields take a number inside their range. Fields you do not name are
left exactly as stored.

Example:
  abb set --date 2024-01-01 Meditation=10 Vibe=7 THC=good`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openService()
			if err != nil {
				return err
			}

			if date == "" {
				date = store.Today()
			}

			submitted := map[string]schema.Value{}
			for _, arg := range args {
				name, raw, ok := strings.Cut(arg, "=")
				if !ok {
					return fmt.Errorf("expected Field=value, got %q", arg)
				}
				f, found := svc.Schema().Field(name)
				if !found {
					return fmt.Errorf("unknown field %q (have: %s)", name, strings.Join(svc.Schema().Columns(), ", "))
				}
				if f.Kind == schema.KindTristate {
					submitted[name] = schema.Level(strings.ToLower(strings.TrimSpace(raw)))
					continue
				}
				n, err := strconv.Atoi(strings.TrimSpace(raw))
				if err != nil {
					return fmt.Errorf("field %s: %q is not a whole number", name, raw)
				}
				submitted[name] = schema.Number(n)
			}

			out, err := svc.Submit(date, submitted)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconSave+" "+out.Message()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&date, "date", "d", "", "Day to record (YYYY-MM-DD, default today)")

	return cmd
}
