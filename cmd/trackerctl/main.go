package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"protocol-tracker/internal/client"
	"protocol-tracker/internal/constants"
	"protocol-tracker/internal/stats"

	"github.com/rs/zerolog"
)

const usage = `usage: trackerctl [-server URL] <command> [args]

commands:
  seasons                          list configured seasons
  import  <season> <file.csv>      import matches from a CSV file
  export  <season> <file.csv>      write the season's matches to a CSV file
  stats   <season> [all|normal|ratio]
  archive <season>                 upload a CSV snapshot to object storage
`

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	serverURL := flag.String("server", envOr("TRACKER_URL", "http://localhost:8080"), "tracker server base URL")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.RequestTimeout)
	defer cancel()

	c := client.New(*serverURL)
	if err := run(ctx, c, flag.Args(), os.Stdout); err != nil {
		cancel()
		logger.Fatal().Err(err).Str("command", flag.Arg(0)).Msg("command failed")
	}
}

func run(ctx context.Context, c *client.Client, args []string, out io.Writer) error {
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "seasons":
		return listSeasons(ctx, c, out)
	case "import":
		if len(rest) != 2 {
			return fmt.Errorf("import needs <season> <file>")
		}
		return importFile(ctx, c, rest[0], rest[1], out)
	case "export":
		if len(rest) != 2 {
			return fmt.Errorf("export needs <season> <file>")
		}
		return exportFile(ctx, c, rest[0], rest[1], out)
	case "stats":
		if len(rest) < 1 || len(rest) > 2 {
			return fmt.Errorf("stats needs <season> [partition]")
		}
		partition := string(stats.PartitionAll)
		if len(rest) == 2 {
			partition = strings.ToLower(rest[1])
		}
		return printStats(ctx, c, rest[0], partition, out)
	case "archive":
		if len(rest) != 1 {
			return fmt.Errorf("archive needs <season>")
		}
		res, err := c.ArchiveSeason(ctx, rest[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "archived %d matches to %s\n", res.Matches, res.Key)
		return nil
	}
	return fmt.Errorf("unknown command %q", cmd)
}

func listSeasons(ctx context.Context, c *client.Client, out io.Writer) error {
	res, err := c.ListSeasons(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSET\tPROTOCOLS\tMAX RATIO\tSTATUS")
	for _, s := range res.Seasons {
		status := "open"
		if s.Closed {
			status = "closed"
		}
		if s.Default {
			status += " (default)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n", s.Name, s.ProtocolSet, len(s.Protocols), s.MaxRatio, status)
	}
	return tw.Flush()
}

func importFile(ctx context.Context, c *client.Client, season, path string, out io.Writer) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	res, err := c.ImportMatches(ctx, season, string(data))
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "imported %d matches into %s\n", res.Imported, season)
	for _, r := range res.Rejected {
		fmt.Fprintf(out, "  rejected line %d: %s\n", r.Line, r.Raw)
	}
	return nil
}

func exportFile(ctx context.Context, c *client.Client, season, path string, out io.Writer) error {
	res, err := c.ExportMatches(ctx, season)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(res.Csv), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Fprintf(out, "exported %d matches to %s\n", res.Count, path)
	return nil
}

func printStats(ctx context.Context, c *client.Client, season, partition string, out io.Writer) error {
	res, err := c.GetStats(ctx, season, partition)
	if err != nil {
		return err
	}
	section, ok := res.Sections[partition]
	if !ok {
		return fmt.Errorf("server returned no %q section", partition)
	}

	fmt.Fprintf(out, "%s (%s): %d matches\n", res.Season, partition, res.Total)
	if res.Skipped > 0 {
		fmt.Fprintf(out, "%d malformed matches skipped\n", res.Skipped)
	}

	for _, kind := range stats.Kinds {
		rows := section.Rows[kind]
		fmt.Fprintf(out, "\n[%s]\n", kind)
		if len(rows) == 0 {
			fmt.Fprintln(out, "  no data")
			continue
		}
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "  NAME\tGAMES\tWINS\tLOSSES\tWIN%")
		for _, r := range rows {
			fmt.Fprintf(tw, "  %s\t%d\t%d\t%d\t%.1f\n", r.Name, r.Games, r.Wins, r.Losses, r.WinPercent)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
