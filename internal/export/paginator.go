package export

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"slackexport/internal/slack"
)

// pageSize is the message count requested per history call.
const pageSize = 100

// maxPages bounds pagination of a single channel against a provider that
// keeps reporting more data.
const maxPages = 10000

// HistorySource is the single provider operation the paginator depends on.
type HistorySource interface {
	History(channelID, oldest, latest string, limit int) (*slack.HistoryPage, error)
}

// FetchHistory returns every message for the channel between the oldest and
// latest timestamps, newest-first. The provider paginates backward from
// latest, so each page moves latest to the ts of the oldest message just
// fetched; that is the only way to advance without skipping or duplicating
// messages. An empty page always terminates, even when has_more is set.
func FetchHistory(source HistorySource, channelID, oldest, latest string) ([]slack.Message, error) {
	var messages []slack.Message

	for page := 0; ; page++ {
		if page >= maxPages {
			return nil, errors.Errorf("channel %s: pagination exceeded %d pages", channelID, maxPages)
		}

		resp, err := source.History(channelID, oldest, latest, pageSize)
		if err != nil {
			return nil, err
		}
		if len(resp.Messages) == 0 {
			break
		}

		messages = append(messages, resp.Messages...)
		logrus.WithFields(logrus.Fields{
			"channel": channelID,
			"page":    page + 1,
			"total":   len(messages),
		}).Debug("fetched history page")

		// Messages arrive newest-first, so the last element is the
		// oldest of the page.
		next := resp.Messages[len(resp.Messages)-1].TS
		if !tsBefore(next, latest) {
			return nil, errors.Errorf("channel %s: pagination stalled at ts %s", channelID, next)
		}
		latest = next

		if !resp.HasMore {
			break
		}
	}

	return messages, nil
}

// tsBefore reports whether timestamp a strictly precedes b. An empty b
// means the window is unbounded above.
func tsBefore(a, b string) bool {
	if b == "" {
		return true
	}
	af, err := strconv.ParseFloat(a, 64)
	if err != nil {
		return false
	}
	bf, err := strconv.ParseFloat(b, 64)
	if err != nil {
		return false
	}
	return af < bf
}
