package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/journal/internal/theme"
)

func (a *app) newThemeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show or change the color theme",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the current theme",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				mode, err := theme.ParseMode(a.v.GetString(cfgKeyTheme))
				if err != nil {
					return userError(err)
				}
				if a.flags.jsonMode {
					return printJSON(cmd.OutOrStdout(), map[string]string{"theme": mode.String()})
				}
				fmt.Fprintln(cmd.OutOrStdout(), mode)
				return nil
			},
		},
		&cobra.Command{
			Use:   "toggle",
			Short: "Switch between light and dark",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.changeTheme(cmd, func(c *theme.Controller) { c.Toggle() })
			},
		},
		&cobra.Command{
			Use:   "set <light|dark>",
			Short: "Choose a theme",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				mode, err := theme.ParseMode(args[0])
				if err != nil {
					return userError(err)
				}
				return a.changeTheme(cmd, func(c *theme.Controller) { c.Set(mode) })
			},
		},
	)
	return cmd
}

// changeTheme applies change to the configured theme. A subscriber persists
// each published change to config.yaml and recolors output.
func (a *app) changeTheme(cmd *cobra.Command, change func(*theme.Controller)) error {
	current, err := theme.ParseMode(a.v.GetString(cfgKeyTheme))
	if err != nil {
		a.logger.Warn("resetting unknown theme", "error", err)
		current = theme.Light
	}

	notifier := theme.NewNotifier(a.logger)
	defer notifier.Close()
	changes, _ := notifier.Subscribe(cmd.Context())

	ctrl := theme.NewController(current, notifier)
	change(ctrl)

	out := cmd.OutOrStdout()
	select {
	case c := <-changes:
		if err := setConfigValue(a.configDir, cfgKeyTheme, c.To.String()); err != nil {
			return sysError(fmt.Errorf("save theme: %w", err))
		}
		a.v.Set(cfgKeyTheme, c.To.String())
		a.palette = newPalette(c.To, out)
		a.logger.Debug("theme changed", "from", c.From, "to", c.To)
	default:
		// Unchanged.
	}

	if a.flags.jsonMode {
		return printJSON(out, map[string]string{"theme": ctrl.Current().String()})
	}
	a.palette.successf(out, "Theme: %s\n", ctrl.Current())
	return nil
}
