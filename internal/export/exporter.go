package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"slackexport/internal/slack"
)

// Provider is the read-only API surface the exporter consumes.
type Provider interface {
	ListUsers() ([]json.RawMessage, error)
	ListChannels() ([]slack.Channel, error)
	HistorySource
}

// Session is the run-scoped export configuration. It exists only for the
// process lifetime and is never persisted.
type Session struct {
	Dir      string
	Users    bool
	Channels bool
	Messages bool
	Filter   ChannelFilter

	// Closed date interval: Oldest inclusive, Latest exclusive upper
	// bound (start of the day after the requested end date).
	Oldest time.Time
	Latest time.Time
}

// Exporter sequences the export: users, channel list, then per-channel
// message history. Side effects are strictly file writes; any error aborts
// the run with no cleanup of partial output.
type Exporter struct {
	Provider Provider
	Session  Session

	// Delay between channel history fetches, a courtesy toward the
	// provider's rate limits rather than a correctness requirement.
	Delay time.Duration

	log logrus.FieldLogger
}

// New creates an Exporter with the default inter-channel delay.
func New(provider Provider, session Session) *Exporter {
	return &Exporter{
		Provider: provider,
		Session:  session,
		Delay:    time.Second,
		log:      logrus.StandardLogger(),
	}
}

// Run executes the export. Reruns overwrite prior files unconditionally.
func (e *Exporter) Run() error {
	if err := os.MkdirAll(e.Session.Dir, 0755); err != nil {
		return errors.Wrap(err, "failed to create output directory")
	}

	if e.Session.Users {
		if err := e.exportUsers(); err != nil {
			return err
		}
	}

	if !e.Session.Channels && !e.Session.Messages {
		return nil
	}

	channels, err := e.Provider.ListChannels()
	if err != nil {
		return err
	}
	selected := e.Session.Filter.Apply(channels)
	e.log.Infof("selected %d of %d channels", len(selected), len(channels))

	if e.Session.Channels {
		if selected == nil {
			selected = []slack.Channel{}
		}
		if err := writeJSON(filepath.Join(e.Session.Dir, "channels.json"), selected); err != nil {
			return err
		}
	}

	if e.Session.Messages {
		if err := os.MkdirAll(filepath.Join(e.Session.Dir, "logs"), 0755); err != nil {
			return errors.Wrap(err, "failed to create logs directory")
		}
		for i, ch := range selected {
			if i > 0 && e.Delay > 0 {
				time.Sleep(e.Delay)
			}
			if err := e.exportChannel(ch); err != nil {
				return err
			}
		}
	}

	return nil
}

func (e *Exporter) exportUsers() error {
	users, err := e.Provider.ListUsers()
	if err != nil {
		return err
	}
	if users == nil {
		users = []json.RawMessage{}
	}
	e.log.Infof("exporting %d users", len(users))
	return writeJSON(filepath.Join(e.Session.Dir, "users.json"), users)
}

func (e *Exporter) exportChannel(ch slack.Channel) error {
	e.log.Infof("exporting #%s", ch.Name)

	messages, err := FetchHistory(e.Provider, ch.ID, formatTS(e.Session.Oldest), formatTS(e.Session.Latest))
	if err != nil {
		return err
	}
	if messages == nil {
		messages = []slack.Message{}
	}

	return writeJSON(filepath.Join(e.Session.Dir, "logs", ch.Name+".json"), messages)
}

// formatTS renders a time as a Slack timestamp bound, clamped to the epoch
// origin to avoid negative values.
func formatTS(t time.Time) string {
	sec := t.Unix()
	if sec < 0 {
		sec = 0
	}
	return strconv.FormatInt(sec, 10)
}

func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal JSON")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}
