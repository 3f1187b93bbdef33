package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/flytaly/mdsite/cmd/ui"
	"github.com/flytaly/mdsite/pkg/config"
	"github.com/flytaly/mdsite/pkg/log"
	"github.com/flytaly/mdsite/pkg/site"
)

// getConfig loads the config file and applies flags on top of it
func getConfig(cmd *cobra.Command) (config.Config, string, error) {
	flags := cmd.Flags()
	root, _ := flags.GetString("path")
	if root == "" {
		var err error
		if root, err = os.Getwd(); err != nil {
			return config.Config{}, "", err
		}
	}

	cfgPath, _ := flags.GetString("config")
	if !filepath.IsAbs(cfgPath) {
		cfgPath = filepath.Join(root, cfgPath)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return cfg, root, err
	}

	strs := map[string]*string{
		"content":  &cfg.Content,
		"static":   &cfg.Static,
		"template": &cfg.Template,
		"public":   &cfg.Public,
		"log":      &cfg.LogPath,
	}
	for name, ptr := range strs {
		if flags.Changed(name) {
			*ptr, _ = flags.GetString(name)
		}
	}
	if flags.Changed("workers") {
		cfg.Workers, _ = flags.GetInt("workers")
	}
	if flags.Changed("size") {
		cfg.MaxFileSizeKB, _ = flags.GetInt64("size")
	}
	if flags.Lookup("interval") != nil && flags.Changed("interval") {
		cfg.Interval, _ = flags.GetDuration("interval")
	}
	return cfg, root, cfg.Validate()
}

func newSite(cfg config.Config, root string, logger log.Logger) *site.Site {
	return site.New(os.DirFS(root), root, site.Options{
		Content:     cfg.Content,
		Static:      cfg.Static,
		Template:    cfg.Template,
		Public:      cfg.Public,
		Workers:     cfg.Workers,
		MaxFileSize: cfg.MaxFileSizeKB * 1024,
	}, logger)
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mdsite",
	Short: "Generate a static site from Markdown files",
	Long: `Generate a static site from Markdown files

Every markdown file in the content directory is converted into an HTML page
using the template. The template must contain {{ Title }} and {{ Content }} markers.
Files of the static directory are copied into the public directory as is.
Use 'watch' command to rebuild the site on changes.
`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, root, err := getConfig(cmd)
		if err != nil {
			return err
		}
		logger, err := log.New(cfg.LogPath)
		if err != nil {
			return err
		}
		s := newSite(cfg, root, logger)
		defer s.Close()

		report, err := s.Build(context.Background())
		if err != nil {
			return err
		}
		fmt.Print(ui.FormatReport(report, 10, 100))
		return report.Err()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute(version string) {
	rootCmd.Version = version
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	defaults := config.Default()

	flags := rootCmd.PersistentFlags()
	flags.StringP("path", "p", "", "path to the site directory (default is the working directory)")
	flags.StringP("config", "c", config.DefaultFile, "path to the config file")
	flags.String("content", defaults.Content, "directory with markdown files")
	flags.String("static", defaults.Static, "directory with static files")
	flags.String("template", defaults.Template, "page template")
	flags.String("public", defaults.Public, "output directory")
	flags.StringP("log", "l", "", "path to the log file")
	flags.Int("workers", defaults.Workers, "number of pages generated concurrently")
	flags.Int64("size", defaults.MaxFileSizeKB, "maximum markdown file size in KB")
}
