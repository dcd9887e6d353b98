package main

import (
	"errors"

	"github.com/spf13/cobra"
)

func newNotifyCmd(opts *options) *cobra.Command {
	notifyCmd := &cobra.Command{
		Use:   "notify",
		Short: "Get emailed when a spot opens up in a space",
	}

	toggle := func(on bool) *cobra.Command {
		use, short := "off SPACE", "Stop notifications for a space"
		if on {
			use, short = "on SPACE", "Ask to be notified when a spot opens"
		}
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0], "space id")
				if err != nil {
					return err
				}
				if opts.user == "" || (on && opts.email == "") {
					return errors.New("--user and --email are required")
				}
				ctx, cancel := opts.context()
				defer cancel()
				return opts.report(opts.details(id).ToggleNotify(ctx, on))
			},
		}
	}

	notifyCmd.AddCommand(toggle(true), toggle(false))
	return notifyCmd
}
