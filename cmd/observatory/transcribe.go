package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tucker-bin/noctua-forest-sub005/phonetic"
	"github.com/tucker-bin/noctua-forest-sub005/profile"
)

func newTranscribeCmd() *cobra.Command {
	var (
		lang   string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "transcribe WORD...",
		Short: "Print the phonetic transcription of words",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := profile.Lookup(lang)
			trs := make([]phonetic.Transcription, 0, len(args))
			for _, w := range args {
				trs = append(trs, phonetic.Transcribe(w, p))
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), trs, false)
			}
			return writeTranscriptions(cmd.OutOrStdout(), trs)
		},
	}
	cmd.Flags().StringVarP(&lang, "lang", "l", "en", "language code of the words")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func writeTranscriptions(w io.Writer, trs []phonetic.Transcription) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "WORD\tFORM\tSTRESS\tSYLLABLES\tRHYME")
	for _, tr := range trs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", tr.Word, tr.Form, tr.Stress, tr.Syllables, tr.RhymeKey)
	}
	return tw.Flush()
}
