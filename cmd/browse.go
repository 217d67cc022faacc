package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/brogergvhs/komikd/internal/providers"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var (
	flagPage int
	flagPick bool
)

func init() {
	popularCmd := &cobra.Command{
		Use:   "popular",
		Short: "List popular manga",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runListing(cmd.Context(), func(ctx context.Context, s providers.Source) (providers.MangasPage, error) {
				return s.Popular(ctx, flagPage)
			})
		},
	}

	latestCmd := &cobra.Command{
		Use:   "latest",
		Short: "List recently updated manga",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runListing(cmd.Context(), func(ctx context.Context, s providers.Source) (providers.MangasPage, error) {
				return s.Latest(ctx, flagPage)
			})
		},
	}

	searchCmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the catalog",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			return runListing(cmd.Context(), func(ctx context.Context, s providers.Source) (providers.MangasPage, error) {
				return s.Search(ctx, flagPage, query)
			})
		},
	}
	searchCmd.Flags().BoolVar(&flagPick, "pick", false, "choose a result interactively and show its chapters")

	for _, c := range []*cobra.Command{popularCmd, latestCmd, searchCmd} {
		c.Flags().IntVar(&flagPage, "page", 1, "result page")
		rootCmd.AddCommand(c)
	}
}

func runListing(ctx context.Context, fetch func(context.Context, providers.Source) (providers.MangasPage, error)) error {
	if flagPage < 1 {
		return fmt.Errorf("--page must be 1 or greater")
	}

	sess, err := openSession(baseOptions())
	if err != nil {
		return err
	}

	page, err := fetch(ctx, sess.src)
	if err != nil {
		return err
	}
	if len(page.Mangas) == 0 {
		fmt.Println("No results.")
		return nil
	}

	if flagPick {
		return pickManga(ctx, sess, page.Mangas)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(w, "#\tTITLE\tURL")
	for i, m := range page.Mangas {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\n", i+1, m.Title, m.URL)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if page.HasNextPage {
		fmt.Printf("\nMore results: --page %d\n", flagPage+1)
	}

	return nil
}

func pickManga(ctx context.Context, sess *session, list []providers.Manga) error {
	items := make([]string, len(list))
	for i, m := range list {
		items[i] = m.Title
	}

	prompt := promptui.Select{
		Label: "Select manga",
		Items: items,
		Size:  10,
	}

	idx, _, err := prompt.Run()
	if err != nil {
		return fmt.Errorf("selection cancelled")
	}

	if err := printDetails(ctx, sess, list[idx].URL); err != nil {
		return err
	}
	fmt.Println()

	return printChapters(ctx, sess, list[idx].URL)
}
