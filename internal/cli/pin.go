package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func (a *app) newPinCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pin",
		Short: "Manage the PIN that locks the journal",
	}
	cmd.AddCommand(a.newPinSetCmd(), a.newPinClearCmd(), a.newPinStatusCmd(), a.newPinVerifyCmd())
	return cmd
}

func (a *app) newPinSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set [<new-pin>]",
		Short: "Set or change the PIN",
		Long: "Set the PIN. Without an argument the new PIN is read from stdin.\n" +
			"Changing an existing PIN requires the current one via --pin or " + envPIN + ".",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.unlock(); err != nil {
				return err
			}
			pin, err := pinArg(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			if pin == "" {
				return userError(errEmptyPIN)
			}
			if err := a.session.Set(pin); err != nil {
				return classify(err)
			}
			a.logger.Info("pin set")
			a.palette.successf(cmd.OutOrStdout(), "PIN set\n")
			return nil
		},
	}
}

func (a *app) newPinClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove the PIN",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.unlock(); err != nil {
				return err
			}
			if err := a.session.Set(""); err != nil {
				return classify(err)
			}
			a.logger.Info("pin cleared")
			a.palette.successf(cmd.OutOrStdout(), "PIN removed\n")
			return nil
		},
	}
}

func (a *app) newPinStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report whether a PIN is set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := a.session.IsSet()
			if err != nil {
				return sysError(err)
			}
			out := cmd.OutOrStdout()
			if a.flags.jsonMode {
				return printJSON(out, map[string]bool{"pin_set": set})
			}
			if set {
				fmt.Fprintln(out, "PIN is set")
			} else {
				fmt.Fprintln(out, "No PIN set")
			}
			return nil
		},
	}
}

func (a *app) newPinVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify [<pin>]",
		Short: "Check a PIN without changing anything",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pin, err := pinArg(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			ok, err := a.session.Verify(pin)
			if err != nil {
				return sysError(err)
			}
			if !ok {
				return userError(errWrongPIN)
			}
			a.palette.successf(cmd.OutOrStdout(), "PIN accepted\n")
			return nil
		},
	}
}

// pinArg returns the PIN from args, or the first line of stdin.
func pinArg(args []string, stdin io.Reader) (string, error) {
	if len(args) == 1 {
		return strings.TrimSpace(args[0]), nil
	}
	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", sysError(fmt.Errorf("read PIN: %w", err))
	}
	return strings.TrimSpace(line), nil
}
