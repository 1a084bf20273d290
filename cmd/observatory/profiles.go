package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tucker-bin/noctua-forest-sub005/profile"
)

func newProfilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List the supported language profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CODE\tNAME\tSCRIPT\tRHYME RULE\tDICTIONARY")
			for _, code := range profile.Codes() {
				p := profile.Lookup(code)
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%t\n", p.Code, p.Name, p.Script, p.RhymeRule, p.Dictionary)
			}
			return tw.Flush()
		},
	}
}
