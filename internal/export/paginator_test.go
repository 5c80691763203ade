package export

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slackexport/internal/slack"
)

type historyCall struct {
	channelID string
	oldest    string
	latest    string
	limit     int
}

// fakeHistorySource serves scripted pages in order. Calls beyond the script
// get an empty page, mimicking a provider that ran out of data.
type fakeHistorySource struct {
	pages []*slack.HistoryPage
	calls []historyCall
}

func (f *fakeHistorySource) History(channelID, oldest, latest string, limit int) (*slack.HistoryPage, error) {
	f.calls = append(f.calls, historyCall{channelID, oldest, latest, limit})
	if len(f.calls) > len(f.pages) {
		return &slack.HistoryPage{}, nil
	}
	return f.pages[len(f.calls)-1], nil
}

// page builds a newest-first page of count messages whose timestamps count
// down from newest.
func page(newest, count int, hasMore bool) *slack.HistoryPage {
	p := &slack.HistoryPage{HasMore: hasMore}
	for i := 0; i < count; i++ {
		p.Messages = append(p.Messages, slack.Message{TS: fmt.Sprintf("%d.000000", newest-i)})
	}
	return p
}

func TestFetchHistoryTwoPages(t *testing.T) {
	source := &fakeHistorySource{pages: []*slack.HistoryPage{
		page(2000, 100, true),
		page(1900, 40, false),
	}}

	messages, err := FetchHistory(source, "C123", "0", "3000")
	require.NoError(t, err)

	assert.Len(t, messages, 140)
	assert.Len(t, source.calls, 2)

	// The second request's window upper bound is the oldest ts of the
	// first page.
	assert.Equal(t, "1901.000000", source.calls[1].latest)
	assert.Equal(t, "0", source.calls[1].oldest)
	assert.Equal(t, pageSize, source.calls[1].limit)
}

func TestFetchHistoryNoDuplicatesNoGaps(t *testing.T) {
	source := &fakeHistorySource{pages: []*slack.HistoryPage{
		page(1000, 100, true),
		page(900, 100, true),
		page(800, 50, false),
	}}

	messages, err := FetchHistory(source, "C123", "0", "2000")
	require.NoError(t, err)
	require.Len(t, messages, 250)
	assert.Len(t, source.calls, 3)

	seen := make(map[string]bool, len(messages))
	for _, m := range messages {
		assert.False(t, seen[m.TS], "duplicate ts %s", m.TS)
		seen[m.TS] = true
	}
	// Newest-first and contiguous: 1000 down to 751.
	assert.Equal(t, "1000.000000", messages[0].TS)
	assert.Equal(t, "751.000000", messages[len(messages)-1].TS)
}

func TestFetchHistoryEmptyFirstPage(t *testing.T) {
	source := &fakeHistorySource{}

	messages, err := FetchHistory(source, "C123", "0", "100")
	require.NoError(t, err)
	assert.Empty(t, messages)
	assert.Len(t, source.calls, 1)
}

func TestFetchHistoryEmptyPageOverridesHasMore(t *testing.T) {
	source := &fakeHistorySource{pages: []*slack.HistoryPage{
		page(500, 10, true),
		{HasMore: true},
	}}

	messages, err := FetchHistory(source, "C123", "0", "1000")
	require.NoError(t, err)
	assert.Len(t, messages, 10)
	assert.Len(t, source.calls, 2)
}

func TestFetchHistoryStallDetection(t *testing.T) {
	// A provider that keeps returning the same page with has_more set
	// would loop forever without the window check.
	stuck := page(500, 1, true)
	source := &fakeHistorySource{pages: []*slack.HistoryPage{stuck, stuck, stuck}}

	_, err := FetchHistory(source, "C123", "0", "501")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stalled")
	assert.Len(t, source.calls, 2)
}

func TestFetchHistoryPropagatesSourceError(t *testing.T) {
	_, err := FetchHistory(errorSource{}, "C123", "0", "100")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

type errorSource struct{}

func (errorSource) History(channelID, oldest, latest string, limit int) (*slack.HistoryPage, error) {
	return nil, fmt.Errorf("boom")
}
