package main

import (
	"fmt"

	"github.com/couchcryptid/city-news-etl/internal/adapter/gazetteer"
	"github.com/spf13/cobra"
)

func newGazetteerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gazetteer",
		Short: "Inspect gazetteer datasets",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "check [path]",
		Short: "Validate a gazetteer file",
		Long: `Loads a gazetteer (.json or .yaml) the way the service does, prints the
size of each index and every entry that would be skipped. Exits non-zero if
the file cannot be read or any entry is malformed. Without a path the
built-in Paris dataset is checked.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runGazetteerCheck,
	})
	return cmd
}

func runGazetteerCheck(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) == 1 {
		path = args[0]
	}
	name := path
	if name == "" {
		name = "(built-in)"
	}

	g, problems, err := gazetteer.ReadFile(path)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s\n", name)
	fmt.Fprintf(w, "  %s: %d\n", gazetteer.IndexDistricts, g.DistrictCount())
	fmt.Fprintf(w, "  %s: %d\n", gazetteer.IndexLandmarks, g.LandmarkCount())

	if len(problems) == 0 {
		fmt.Fprintln(w, "ok")
		return nil
	}
	for _, p := range problems {
		fmt.Fprintf(w, "  skipped %s\n", p)
	}
	return fmt.Errorf("%s: %d malformed entries", name, len(problems))
}
