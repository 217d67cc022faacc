package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/brogergvhs/komikd/internal/chapters"
	"github.com/brogergvhs/komikd/internal/downloader"
	"github.com/brogergvhs/komikd/internal/ui"
	"github.com/brogergvhs/komikd/internal/util"

	"github.com/spf13/cobra"
)

var (
	// selection
	flagURL     string
	flagChapter string
	flagRange   string
	flagList    string

	// runtime
	flagOutput         string
	flagImageWorkers   int
	flagChapterWorkers int
	flagKeepFolders    bool
	flagDryRun         bool
	flagSkipBroken     bool

	// headers/auth
	flagCookie     string
	flagCookieFile string
	flagUserAgent  string
)

func init() {
	downloadCmd := &cobra.Command{
		Use:   "download",
		Short: "Download manga chapters and produce CBZ files. Uses the defaults from the selected config, overwritten by CLI flags",
		RunE:  runDownload,
	}

	// selection
	downloadCmd.Flags().StringVar(&flagURL, "url", "", "manga page URL (absolute, or a path as listed by search)")
	downloadCmd.Flags().StringVar(&flagChapter, "chapter", "", "download single chapter by label or index (e.g. 28 or 5)")
	downloadCmd.Flags().StringVar(&flagRange, "range", "", "download range of chapters by index (e.g. 5-12)")
	downloadCmd.Flags().StringVar(&flagList, "list", "", "download specific chapter indices (e.g. 1,3,5)")

	// runtime
	downloadCmd.Flags().StringVar(&flagOutput, "output", "", "output folder for CBZ files")
	downloadCmd.Flags().IntVar(&flagImageWorkers, "image-workers", 5, "parallel image downloads per chapter")
	downloadCmd.Flags().IntVar(&flagChapterWorkers, "chapter-workers", 2, "parallel chapter downloads")
	downloadCmd.Flags().BoolVar(&flagKeepFolders, "keep-folders", false, "keep temporary folders")
	downloadCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "show what would be downloaded, don’t download")
	downloadCmd.Flags().BoolVar(&flagSkipBroken, "skip-broken", false, "skip failed images instead of failing the whole chapter")

	// headers/auth
	downloadCmd.Flags().StringVar(&flagCookie, "cookie", "", "cookie string, e.g. \"key=value; other=123\"")
	downloadCmd.Flags().StringVar(&flagCookieFile, "cookie-file", "", "path to a text file with cookies (one header line)")
	downloadCmd.Flags().StringVar(&flagUserAgent, "user-agent", "", "override User-Agent")

	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, _ []string) error {
	opts := baseOptions()
	opts.Output = flagOutput
	opts.KeepFolders = flagKeepFolders
	opts.DefaultURL = flagURL
	opts.DefaultRange = flagRange
	opts.DefaultList = flagList
	opts.Cookie = flagCookie
	opts.CookieFile = flagCookieFile
	opts.UserAgent = flagUserAgent
	opts.SkipBroken = flagSkipBroken

	sess, err := openSession(opts)
	if err != nil {
		return err
	}
	cfg := sess.cfg

	if cmd.Flags().Changed("image-workers") {
		cfg.ImageWorkers = flagImageWorkers
	}
	if cmd.Flags().Changed("chapter-workers") {
		cfg.ChapterWorkers = flagChapterWorkers
	}

	if sess.used != "" {
		fmt.Printf("Config file: %s\n", sess.used)
	}

	if err := os.MkdirAll(cfg.Output, 0755); err != nil {
		return fmt.Errorf("cannot create output folder: %w", err)
	}

	fmt.Println("Full config:")
	cfg.Print()
	fmt.Println()

	if cfg.DefaultURL == "" {
		return fmt.Errorf("missing --url and no default_url in config")
	}

	ctx := cmd.Context()
	work := util.NewWorkDirs(cfg.Output)
	work.AbandonOnInterrupt()

	list, err := sess.src.Chapters(ctx, cfg.DefaultURL)
	if err != nil {
		return err
	}
	allChapters := chapters.Wrap(list)

	if flagChapter == "" && cfg.DefaultRange == "" && cfg.DefaultList == "" {
		fmt.Printf("Found %d chapters on the site.\n\n", len(allChapters))
	}

	selected := chapters.Filter(allChapters, flagChapter, cfg.DefaultRange, cfg.DefaultList)
	if flagChapter != "" && len(selected) == 0 {
		return fmt.Errorf("chapter '%s' not found", flagChapter)
	}
	if len(selected) == 0 {
		return fmt.Errorf("no chapters selected")
	}

	if flagDryRun {
		fmt.Printf("Dry-run: %d chapters selected.\n\n", len(selected))
		for i, ch := range selected {
			fmt.Printf("%3d) %s  [%s]  %s\n    %s\n", i+1, ch.Name, ch.Label, formatDate(ch.DateUpload), ch.URL)
		}
		return nil
	}

	bars := ui.NewBars(os.Stdout)
	summary := ui.NewSummary()
	dl := downloader.New(sess.client, sess.log, cfg.SkipBroken)

	sem := make(chan struct{}, max(1, cfg.ChapterWorkers))
	var wg sync.WaitGroup

	for _, ch := range selected {
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			if err := downloadChapter(ctx, sess, dl, bars, work, ch, summary); err != nil {
				sess.log.Errorf("%s: %v", ui.BarLabel(ch), err)
				summary.Fail(ch.Label, err)
			}
		}()
	}
	wg.Wait()
	bars.Wait()

	fmt.Println()
	summary.Print(os.Stdout)
	if failed := summary.Failed(); len(failed) > 0 {
		return fmt.Errorf("%d of %d chapters failed", len(failed), len(selected))
	}

	fmt.Println("\nAll done.")
	return nil
}

// downloadChapter fetches the pages of ch and packs them into its CBZ.
func downloadChapter(
	ctx context.Context,
	sess *session,
	dl *downloader.Downloader,
	bars *ui.Bars,
	work *util.WorkDirs,
	ch chapters.Chapter,
	summary *ui.Summary,
) error {
	cfg := sess.cfg

	pages, err := sess.src.Pages(ctx, ch.URL)
	if err != nil {
		return err
	}

	tmpFolder := filepath.Join(cfg.Output, ch.FolderName())
	work.Add(tmpFolder)

	bar := bars.Chapter(ch, pages)
	files, bytes, err := dl.DownloadImagesConcurrently(ctx, pages, tmpFolder, sess.src.ImageHeaders, max(1, cfg.ImageWorkers), bar)
	if err != nil {
		work.Release(tmpFolder, false)
		return err
	}

	if err := util.CreateCBZ(files, ch.OutputCBZPath(cfg.Output)); err != nil {
		work.Release(tmpFolder, false)
		return fmt.Errorf("cbz: %w", err)
	}

	work.Release(tmpFolder, cfg.KeepFolders)
	summary.Done(len(files), bytes)

	return nil
}
