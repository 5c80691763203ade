package app

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"

	"slackexport/internal/auth"
	"slackexport/internal/banner"
	"slackexport/internal/export"
	"slackexport/internal/slack"
)

const dateLayout = "2006-01-02"

// Config holds the parsed command line.
type Config struct {
	Dir             string
	IncludeArchived bool
	Users           bool
	Channels        bool
	Messages        bool
	MinMembers      int
	From            string
	To              string
	Channel         string
	ProxyURL        string
	NoBanner        bool
	Verbose         bool
}

// Run parses the command line and executes the export. Configuration
// errors are fatal and reported before any network call is made.
func Run() {
	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	if cfg.Verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	banner.Print(cfg.NoBanner)

	session, err := cfg.Session()
	if err != nil {
		logrus.Fatal(err)
	}

	creds, err := auth.FromEnv(cfg.ProxyURL)
	if err != nil {
		logrus.Fatal(err)
	}

	client, err := slack.NewClient(creds)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := client.TestCredentials(); err != nil {
		logrus.Fatal(err)
	}

	if err := export.New(client, *session).Run(); err != nil {
		logrus.Fatal(err)
	}
}

func parseFlags(args []string) (*Config, error) {
	cfg := &Config{}
	fs := flag.NewFlagSet("slackexport", flag.ContinueOnError)

	fs.StringVar(&cfg.Dir, "dir", "data", "Output directory for exported JSON")
	fs.BoolVar(&cfg.IncludeArchived, "include-archived", false, "Include archived channels")
	fs.BoolVar(&cfg.Users, "users", true, "Export the user list to users.json")
	fs.BoolVar(&cfg.Channels, "channels", true, "Export the channel list to channels.json")
	fs.BoolVar(&cfg.Messages, "messages", true, "Export per-channel message history to logs/")
	fs.IntVar(&cfg.MinMembers, "min-members", 0, "Only export channels with at least this many members")
	fs.StringVar(&cfg.From, "from", "", "Start date, YYYY-MM-DD (default: beginning of time)")
	fs.StringVar(&cfg.To, "to", "", "End date, YYYY-MM-DD (default: today)")
	fs.StringVar(&cfg.Channel, "channel", "", "Export only the channel with this exact name")
	fs.StringVar(&cfg.ProxyURL, "proxy", "", "Proxy URL for API requests")
	fs.BoolVar(&cfg.NoBanner, "nobanner", false, "Disable banner output")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Enable debug logging")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Session validates the configuration and converts it into the run-scoped
// export session.
func (c *Config) Session() (*export.Session, error) {
	from := time.Unix(0, 0).UTC()
	if c.From != "" {
		parsed, err := time.Parse(dateLayout, c.From)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid start date %q", c.From)
		}
		from = parsed
	}

	to := time.Now().UTC().Truncate(24 * time.Hour)
	if c.To != "" {
		parsed, err := time.Parse(dateLayout, c.To)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid end date %q", c.To)
		}
		to = parsed
	}

	if from.After(to) {
		return nil, errors.Errorf("start date %s is after end date %s", from.Format(dateLayout), to.Format(dateLayout))
	}

	return &export.Session{
		Dir:      c.Dir,
		Users:    c.Users,
		Channels: c.Channels,
		Messages: c.Messages,
		Filter: export.ChannelFilter{
			MinMembers:      c.MinMembers,
			ExcludeArchived: !c.IncludeArchived,
			Name:            c.Channel,
		},
		Oldest: from,
		// Closed interval: include the whole end day.
		Latest: to.AddDate(0, 0, 1),
	}, nil
}
