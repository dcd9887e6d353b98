package main

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"sharedesk/internal/browse"
	"sharedesk/internal/models"
)

func newSpacesCmd(opts *options) *cobra.Command {
	spacesCmd := &cobra.Command{
		Use:   "spaces",
		Short: "Browse and manage coworking spaces",
	}

	var q browse.Query
	var sortKey string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List spaces, optionally searched, sorted and paged",
		Long: `List spaces one page at a time.

Sort keys: ` + strings.Join(sortKeyNames(), ", "),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context()
			defer cancel()
			q.Sort = browse.SortKey(sortKey)
			page, err := opts.client().BrowseSpaces(ctx, q)
			if err != nil {
				return err
			}
			printSpaces(opts, page.Spaces)
			fmt.Fprintf(opts.out, "page %d of %d (%d spaces)\n", page.Page, page.TotalPages, page.Total)
			return nil
		},
	}
	listCmd.Flags().StringVar(&q.Search, "search", "", "Match name or city")
	listCmd.Flags().StringVar(&sortKey, "sort", "", "Sort key")
	listCmd.Flags().IntVar(&q.Page, "page", 1, "Page number")
	listCmd.Flags().IntVar(&q.PageSize, "page-size", browse.DefaultPageSize, "Spaces per page")

	showCmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show one space",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "space id")
			if err != nil {
				return err
			}
			ctx, cancel := opts.context()
			defer cancel()
			space, err := opts.client().GetSpace(ctx, id)
			if err != nil {
				return err
			}
			printSpace(opts, space)
			if opts.user != "" {
				on, err := opts.client().GetNotify(ctx, id, opts.user)
				if err != nil {
					return err
				}
				fmt.Fprintf(opts.out, "notify:\t%t\n", on)
			}
			return nil
		},
	}

	capacityCmd := &cobra.Command{
		Use:   "capacity ID N",
		Short: "Set the available capacity of a space and notify subscribers",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "space id")
			if err != nil {
				return err
			}
			n, err := parseCount(args[1])
			if err != nil {
				return err
			}
			ctx, cancel := opts.context()
			defer cancel()
			res, err := opts.client().UpdateAvailability(ctx, id, n)
			if err != nil {
				return err
			}
			fmt.Fprintln(opts.out, res.Message)
			if res.Notified > 0 || res.Failed > 0 {
				fmt.Fprintf(opts.out, "notified %d, failed %d\n", res.Notified, res.Failed)
			}
			return nil
		},
	}

	spacesCmd.AddCommand(listCmd, showCmd, capacityCmd)
	return spacesCmd
}

func sortKeyNames() []string {
	names := make([]string, len(browse.SortKeys))
	for i, k := range browse.SortKeys {
		names[i] = string(k)
	}
	return names
}

func parseCount(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid capacity %q", arg)
	}
	return n, nil
}

func printSpaces(opts *options, spaces []models.Space) {
	tw := tabwriter.NewWriter(opts.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCITY\tPRICE\tAVAILABLE")
	for _, s := range spaces {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.2f\t%d/%d\n", s.ID, s.Name, s.City, s.Price, s.AvailableCapacity, s.MaxCapacity)
	}
	tw.Flush()
}

func printSpace(opts *options, s models.Space) {
	tw := tabwriter.NewWriter(opts.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "name:\t%s\n", s.Name)
	fmt.Fprintf(tw, "city:\t%s\n", s.City)
	fmt.Fprintf(tw, "address:\t%s\n", s.Address)
	fmt.Fprintf(tw, "price:\t%.2f\n", s.Price)
	fmt.Fprintf(tw, "capacity:\t%d/%d\n", s.AvailableCapacity, s.MaxCapacity)
	fmt.Fprintf(tw, "contact:\t%s\n", s.ContactNumber)
	if benefits := s.BenefitList(); len(benefits) > 0 {
		fmt.Fprintf(tw, "benefits:\t%s\n", strings.Join(benefits, ", "))
	}
	if s.Description != "" {
		fmt.Fprintf(tw, "description:\t%s\n", s.Description)
	}
	tw.Flush()
}
