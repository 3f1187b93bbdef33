package ui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gookit/color"

	"github.com/flytaly/mdsite/pkg/log"
	"github.com/flytaly/mdsite/pkg/site"
)

// FormatReport prints the summary of the build, lists are cut after limit items
func FormatReport(r *site.Report, limit int, maxWidth int) string {
	if r == nil {
		return ""
	}
	maxWidth = max(maxWidth-7, 20)
	pathSize := maxWidth / 2

	b := strings.Builder{}
	kind := "Updated"
	if r.Full {
		kind = "Built"
	}
	fmt.Fprintf(&b, " %s %s %d pages in %s\n", color.Green.Sprint("✓"), kind,
		len(r.Pages), r.Duration.Round(time.Millisecond))

	if len(r.Removed) > 0 {
		fmt.Fprintf(&b, " %s Removed:\n", color.Yellow.Sprint("-"))
		printList(&b, r.Removed, limit, func(p string) string {
			return color.Cyan.Sprint(tail(p, maxWidth))
		})
	}

	if len(r.Failed) > 0 {
		sources := make([]string, 0, len(r.Failed))
		for source := range r.Failed {
			sources = append(sources, source)
		}
		sort.Strings(sources)
		fmt.Fprintf(&b, " %s Failed:\n", color.Red.Sprint("✗"))
		printList(&b, sources, limit, func(source string) string {
			return fmt.Sprintf("%s: %s", color.Cyan.Sprint(tail(source, pathSize)), r.Failed[source])
		})
	}

	if len(r.Skipped) > 0 {
		fmt.Fprintf(&b, " %s Skipped (too large):\n", color.Yellow.Sprint("!"))
		printList(&b, r.Skipped, limit, func(p string) string {
			return color.Cyan.Sprint(tail(p, maxWidth))
		})
	}

	if len(r.Broken) > 0 {
		lines := make([]string, len(r.Broken))
		for i, br := range r.Broken {
			lines[i] = fmt.Sprintf("%s -> %s",
				color.Cyan.Sprint(tail(br.Page, pathSize)),
				color.Yellow.Sprint(tail(br.Ref.Dest, pathSize)))
		}
		fmt.Fprintf(&b, " %s Broken links:\n", color.Yellow.Sprint("!"))
		printList(&b, lines, limit, func(s string) string { return s })
	}
	return b.String()
}

func printList(b *strings.Builder, items []string, limit int, format func(string) string) {
	for i, item := range items {
		if i >= limit {
			fmt.Fprintf(b, "   and %d more...\n", len(items)-limit)
			return
		}
		fmt.Fprintf(b, "   - %s\n", format(item))
	}
}

// formatLogs prints the last n records
func formatLogs(records []log.Record, n int) string {
	if len(records) > n {
		records = records[len(records)-n:]
	}
	b := strings.Builder{}
	for _, r := range records {
		fmt.Fprintf(&b, " %s %s %s\n", r.Time.Format("15:04:05"), r.Level.Colored(), r.Text)
	}
	return b.String()
}

func tail(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return "..." + string(r[len(r)-(n-3):])
}
