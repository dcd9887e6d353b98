package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"sharedesk/internal/client"
)

type options struct {
	api     string
	token   string
	user    string
	email   string
	timeout time.Duration
	out     io.Writer
}

func (o *options) client() *client.Client {
	c := client.New(o.api)
	c.Token = o.token
	return c
}

func (o *options) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), o.timeout)
}

func (o *options) details(spaceID int) *client.Details {
	return &client.Details{Client: o.client(), SpaceID: spaceID, UserID: o.user, Email: o.email}
}

// report prints a flash. Failed actions become a non-zero exit; severity alone
// is not enough since "Notification disabled" is shown as an error.
func (o *options) report(f client.Flash) error {
	if strings.HasPrefix(f.Message, "Failed") {
		return errors.New(f.Message)
	}
	fmt.Fprintln(o.out, f.Message)
	return nil
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &options{out: out}

	rootCmd := &cobra.Command{
		Use:           "deskctl",
		Short:         "Command line client for the SharedDesk API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(out)

	rootCmd.PersistentFlags().StringVar(&opts.api, "api", envOr("SHAREDESK_API", "http://localhost:5100"), "API base URL")
	rootCmd.PersistentFlags().StringVar(&opts.token, "token", os.Getenv("SHAREDESK_TOKEN"), "Bearer token for owner actions")
	rootCmd.PersistentFlags().StringVar(&opts.user, "user", os.Getenv("SHAREDESK_USER"), "User id of the viewer")
	rootCmd.PersistentFlags().StringVar(&opts.email, "email", os.Getenv("SHAREDESK_EMAIL"), "Email of the viewer")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "Request timeout")

	rootCmd.AddCommand(newSpacesCmd(opts))
	rootCmd.AddCommand(newNotifyCmd(opts))
	rootCmd.AddCommand(newRentalsCmd(opts))
	rootCmd.AddCommand(newTokenCmd(opts))
	return rootCmd
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseID(arg, what string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", what, arg)
	}
	return id, nil
}
