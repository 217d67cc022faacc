package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func init() {
	infoCmd := &cobra.Command{
		Use:   "info <manga-url>",
		Short: "Show manga details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(baseOptions())
			if err != nil {
				return err
			}
			return printDetails(cmd.Context(), sess, args[0])
		},
	}

	chaptersCmd := &cobra.Command{
		Use:   "chapters <manga-url>",
		Short: "List chapters with their number and upload date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(baseOptions())
			if err != nil {
				return err
			}
			return printChapters(cmd.Context(), sess, args[0])
		},
	}

	pagesCmd := &cobra.Command{
		Use:   "pages <chapter-url>",
		Short: "List the page image URLs of a chapter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(baseOptions())
			if err != nil {
				return err
			}

			pages, err := sess.src.Pages(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for _, p := range pages {
				fmt.Printf("%3d  %s\n", p.Index, p.ImageURL)
			}
			return nil
		},
	}

	rootCmd.AddCommand(infoCmd, chaptersCmd, pagesCmd)
}

func printDetails(ctx context.Context, sess *session, mangaURL string) error {
	m, err := sess.src.MangaDetails(ctx, mangaURL)
	if err != nil {
		return err
	}

	fmt.Printf("Title:    %s\n", m.Title)
	fmt.Printf("URL:      %s\n", m.URL)
	fmt.Printf("Author:   %s\n", m.Author)
	fmt.Printf("Status:   %s\n", m.Status)
	fmt.Printf("Genre:    %s\n", strings.Join(m.Genre, ", "))
	if m.ThumbnailURL != "" {
		fmt.Printf("Cover:    %s\n", m.ThumbnailURL)
	}
	if m.Description != "" {
		fmt.Printf("\n%s\n", m.Description)
	}

	return nil
}

func printChapters(ctx context.Context, sess *session, mangaURL string) error {
	list, err := sess.src.Chapters(ctx, mangaURL)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(w, "NUMBER\tNAME\tUPLOADED\tURL")
	for _, c := range list {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", formatNumber(c), c.Name, formatDate(c.DateUpload), c.URL)
	}

	return w.Flush()
}
