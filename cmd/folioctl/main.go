package main

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/kailas-cloud/folio/internal/config"
	domspam "github.com/kailas-cloud/folio/internal/domain/spam"
	logpkg "github.com/kailas-cloud/folio/internal/logger"
	"github.com/kailas-cloud/folio/internal/usecase/spam"
	"github.com/kailas-cloud/folio/internal/version"
	folio "github.com/kailas-cloud/folio/pkg/sdk"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "folioctl",
		Usage:   "Operate a folio deployment: seed content, search, classify text, manage votes",
		Version: version.String(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "env",
				Aliases: []string{"e"},
				Usage:   "Configuration environment (local, dev, prod)",
				EnvVars: []string{"ENV"},
				Value:   "local",
			},
			// -v stays with urfave's --version flag.
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable debug logging",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			seedCommand(),
			searchCommand(),
			classifyCommand(),
			votesCommand(),
			healthCommand(),
		},
	}
}

func setupLogger(c *cli.Context) error {
	logger, err := logpkg.NewCLILogger(c.Bool("verbose"))
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	c.Context = logpkg.ContextWithLogger(c.Context, logger)
	return nil
}

func seedCommand() *cli.Command {
	return &cli.Command{
		Name:      "seed",
		Usage:     "Load essays, projects and books from a YAML file",
		ArgsUsage: "<file.yaml>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return errors.New("seed requires exactly one file argument")
			}
			s, err := folio.LoadSeed(c.Args().First())
			if err != nil {
				return err
			}
			return withClient(c, func(client *folio.Client) error {
				n, err := client.Seed(c.Context, s)
				if err != nil {
					return fmt.Errorf("seed after %d documents: %w", n, err)
				}
				_, _ = fmt.Fprintf(c.App.Writer, "seeded %d documents\n", n)
				return nil
			})
		},
	}
}

func searchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Run a search against stored content",
		ArgsUsage: "<query>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "type", Usage: "essay, project, book or all", Value: "all"},
			&cli.StringFlag{Name: "tag", Usage: "Tag filter"},
			&cli.StringFlag{Name: "sort", Usage: "relevance, date, views or votes", Value: "relevance"},
			&cli.IntFlag{Name: "limit", Usage: "Maximum results", Value: 20},
		},
		Action: func(c *cli.Context) error {
			q := folio.SearchQuery{
				Query: strings.Join(c.Args().Slice(), " "),
				Type:  c.String("type"),
				Tag:   c.String("tag"),
				Sort:  c.String("sort"),
				Limit: c.Int("limit"),
			}
			if err := validSort(q.Sort); err != nil {
				return err
			}
			return withClient(c, func(client *folio.Client) error {
				page, err := client.Search(c.Context, q)
				if err != nil {
					return err
				}
				tw := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
				_, _ = fmt.Fprintln(tw, "TYPE\tID\tSCORE\tVOTES\tTITLE")
				for _, r := range page.Results {
					_, _ = fmt.Fprintf(tw, "%s\t%s\t%.2f\t%d\t%s\n", r.Type, r.ID, r.Score, r.NetVotes, r.Title)
				}
				_, _ = fmt.Fprintf(tw, "\n%d of %d results\n", len(page.Results), page.Total)
				return tw.Flush()
			})
		},
	}
}

// validSort rejects a bad sort before any connection is attempted.
func validSort(s string) error {
	switch s {
	case "", "relevance", "date", "views", "votes":
		return nil
	}
	return fmt.Errorf("invalid sort mode %q: want relevance, date, views or votes", s)
}

func classifyCommand() *cli.Command {
	return &cli.Command{
		Name:  "classify",
		Usage: "Score a submission with the spam heuristics",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Usage: "comment or contact", Value: "comment"},
			&cli.StringFlag{Name: "name"},
			&cli.StringFlag{Name: "email"},
			&cli.StringFlag{Name: "subject"},
			&cli.StringFlag{Name: "content", Required: true},
			&cli.StringFlag{Name: "honeypot"},
			&cli.Float64Flag{Name: "threshold", Usage: "Hold threshold", Value: domspam.DefaultThreshold},
		},
		Action: func(c *cli.Context) error {
			var weights domspam.Weights
			switch c.String("path") {
			case "comment":
				weights = domspam.CommentWeights()
			case "contact":
				weights = domspam.ContactWeights()
			default:
				return fmt.Errorf("path must be comment or contact, got %q", c.String("path"))
			}
			res := spam.NewClassifier(c.Float64("threshold"), weights).Classify(domspam.Submission{
				Name:     c.String("name"),
				Email:    c.String("email"),
				Subject:  c.String("subject"),
				Content:  c.String("content"),
				Honeypot: c.String("honeypot"),
			})
			signals := make([]string, len(res.Signals))
			for i, s := range res.Signals {
				signals[i] = string(s)
			}
			_, _ = fmt.Fprintf(c.App.Writer, "decision: %s\nscore: %.2f\nsignals: %s\n",
				res.Decision, res.Score, strings.Join(signals, ","))
			return nil
		},
	}
}

func votesCommand() *cli.Command {
	return &cli.Command{
		Name:  "votes",
		Usage: "Inspect or reset vote ledgers",
		Subcommands: []*cli.Command{
			{
				Name:      "tally",
				Usage:     "Print the tally of a target",
				ArgsUsage: "<essay:id|comment:id>",
				Action: func(c *cli.Context) error {
					target, err := targetArg(c)
					if err != nil {
						return err
					}
					return withClient(c, func(client *folio.Client) error {
						t, err := client.Tally(c.Context, target)
						if err != nil {
							return err
						}
						_, _ = fmt.Fprintf(c.App.Writer, "%s up=%d down=%d ratio=%d\n",
							t.Target, t.Upvotes, t.Downvotes, t.Ratio)
						return nil
					})
				},
			},
			{
				Name:      "reset",
				Usage:     "Clear every vote of a target",
				ArgsUsage: "<essay:id|comment:id>",
				Action: func(c *cli.Context) error {
					target, err := targetArg(c)
					if err != nil {
						return err
					}
					return withClient(c, func(client *folio.Client) error {
						if err := client.ResetVotes(c.Context, target); err != nil {
							return err
						}
						logpkg.FromContext(c.Context).Info("Votes reset", zap.String("target", target))
						_, _ = fmt.Fprintf(c.App.Writer, "reset %s\n", target)
						return nil
					})
				},
			},
			{
				Name:  "popular",
				Usage: "List the most upvoted targets",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "type", Usage: "essay, comment or empty for both"},
					&cli.IntFlag{Name: "limit", Value: 10},
				},
				Action: func(c *cli.Context) error {
					return withClient(c, func(client *folio.Client) error {
						tallies, err := client.Popular(c.Context, c.String("type"), c.Int("limit"))
						if err != nil {
							return err
						}
						for _, t := range tallies {
							_, _ = fmt.Fprintf(c.App.Writer, "%s up=%d down=%d ratio=%d\n",
								t.Target, t.Upvotes, t.Downvotes, t.Ratio)
						}
						return nil
					})
				},
			},
		},
	}
}

func healthCommand() *cli.Command {
	return &cli.Command{
		Name:  "health",
		Usage: "Probe the store and the vote backend; exits 1 unless both answer",
		Action: func(c *cli.Context) error {
			return withClient(c, func(client *folio.Client) error {
				h := client.Health(c.Context)
				names := make([]string, 0, len(h.Checks))
				for name := range h.Checks {
					names = append(names, name)
				}
				slices.Sort(names)
				_, _ = fmt.Fprintf(c.App.Writer, "status: %s\n", h.Status)
				for _, name := range names {
					_, _ = fmt.Fprintf(c.App.Writer, "  %s: %s\n", name, h.Checks[name])
				}
				if !h.Healthy() {
					return cli.Exit("unhealthy: "+strings.Join(h.Failing(), ", "), 1)
				}
				return nil
			})
		},
	}
}

func targetArg(c *cli.Context) (string, error) {
	if c.NArg() != 1 {
		return "", errors.New("expected exactly one target argument")
	}
	target := c.Args().First()
	kind, id, ok := strings.Cut(target, ":")
	if !ok || id == "" || (kind != "essay" && kind != "comment") {
		return "", fmt.Errorf("invalid target kind in %q: want essay:<id> or comment:<id>", target)
	}
	return target, nil
}

// withClient opens an embedded client from the environment's configuration.
// The memory vote backend has nothing to inspect from outside the server,
// so the CLI falls back to the shared store for it.
func withClient(c *cli.Context, fn func(*folio.Client) error) error {
	logger := logpkg.FromContext(c.Context)

	cfg, err := config.Load(c.String("env"))
	if err != nil {
		return err
	}

	opts := []folio.Option{
		folio.WithKeyPrefix(cfg.Storage.KeyPrefix),
		folio.WithSearchWorkers(cfg.Search.Workers),
		folio.WithLogger(logger),
	}
	if cfg.Database.Driver == "valkey" {
		opts = append(opts, folio.WithValkey(cfg.Database.Addrs[0], cfg.Database.Password))
	} else {
		opts = append(opts, folio.WithRedis(cfg.Database.Addrs[0], cfg.Database.Password))
	}
	opts = append(opts, folio.WithAddrs(cfg.Database.Addrs...))
	if cfg.Votes.Backend == config.VotesBadger {
		opts = append(opts, folio.WithBadgerVotes(cfg.Votes.BadgerPath))
	}

	client, err := folio.New(c.Context, opts...)
	if err != nil {
		return err
	}
	defer client.Close()

	logger.Debug("Client ready",
		zap.String("env", c.String("env")),
		zap.String("votes_backend", cfg.Votes.Backend))
	return fn(client)
}
