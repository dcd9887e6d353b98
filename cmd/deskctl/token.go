package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"sharedesk/utils"
)

// newTokenCmd mints an owner token for local development, signed with the
// same key the server reads from JWT_SIGNING_KEY.
func newTokenCmd(opts *options) *cobra.Command {
	var key string
	var ttl time.Duration
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an access token for --user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := strconv.Atoi(opts.user)
			if err != nil || userID <= 0 {
				return errors.New("--user must be a numeric user id")
			}
			m, err := utils.NewManager(key)
			if err != nil {
				return err
			}
			token, err := m.NewJWT(userID, opts.email, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(opts.out, token)
			return nil
		},
	}
	cmd.Flags().StringVar(&key, "key", os.Getenv("JWT_SIGNING_KEY"), "Signing key")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "Token lifetime")
	return cmd
}
