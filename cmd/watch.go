package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/flytaly/mdsite/cmd/ui"
	"github.com/flytaly/mdsite/pkg/config"
	"github.com/flytaly/mdsite/pkg/log"
	"github.com/flytaly/mdsite/pkg/site"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Build the site and rebuild it on changes",
	Long: `Build the site and rebuild it on changes

Changes of markdown files regenerate only the affected pages,
changes of the template or static files rebuild the whole site.
Internally, watcher polls the filesystem, so don't watch directories with a large number of files.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, root, err := getConfig(cmd)
		if err != nil {
			return err
		}
		plain, _ := cmd.Flags().GetBool("plain")
		if plain {
			return watchPlain(cfg, root)
		}

		var fileLog log.Logger = log.NewEmptyLog()
		if cfg.LogPath != "" {
			if fileLog, err = log.New(cfg.LogPath); err != nil {
				return err
			}
		}
		chanLog := log.NewChanLog(100, fileLog)
		s := newSite(cfg, root, chanLog)
		p := ui.NewProgram(s, chanLog.Records(), root, cfg.Interval)
		if _, err := p.Run(); err != nil {
			fmt.Printf("Error: %s", err)
			return err
		}
		return nil
	},
}

// watchPlain prints reports as lines instead of running the UI
func watchPlain(cfg config.Config, root string) error {
	logger, err := log.New(cfg.LogPath)
	if err != nil {
		return err
	}
	s := newSite(cfg, root, logger)
	defer s.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := s.Build(ctx)
	if err != nil {
		return err
	}
	fmt.Print(ui.FormatReport(report, 10, 100))

	s.Watch(ctx, cfg.Interval, func(r *site.Report, err error) {
		if err != nil {
			fmt.Printf("Error: %s\n", err)
		}
		if r != nil {
			fmt.Print(ui.FormatReport(r, 10, 100))
		}
	})
	<-ctx.Done()
	return nil
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().DurationP("interval", "i", 500*time.Millisecond, "poll interval duration (e.g. 1s, 500ms...)")
	watchCmd.Flags().Bool("plain", false, "print reports instead of the interactive UI")
}
