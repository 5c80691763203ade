package slack

import (
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/pkg/errors"
)

// listPageSize is the record count requested per list call.
const listPageSize = 200

type responseMetadata struct {
	NextCursor string `json:"next_cursor"`
}

// TestCredentials verifies the token against auth.test.
func (c *Client) TestCredentials() error {
	if err := c.makeRequest("auth.test", nil, nil); err != nil {
		return errors.Wrap(err, "credential check failed")
	}
	return nil
}

// ListUsers returns every workspace user record in provider-native shape,
// following cursor pagination on users.list.
func (c *Client) ListUsers() ([]json.RawMessage, error) {
	var users []json.RawMessage

	cursor := ""
	for {
		params := url.Values{"limit": {strconv.Itoa(listPageSize)}}
		if cursor != "" {
			params.Set("cursor", cursor)
		}

		var resp struct {
			Members          []json.RawMessage `json:"members"`
			ResponseMetadata responseMetadata  `json:"response_metadata"`
		}
		if err := c.makeRequest("users.list", params, &resp); err != nil {
			return nil, errors.Wrap(err, "failed to list users")
		}
		users = append(users, resp.Members...)

		cursor = resp.ResponseMetadata.NextCursor
		if cursor == "" {
			break
		}
	}

	return users, nil
}

// ListChannels returns all visible public and private channels, archived
// included. Archived exclusion is a local filtering concern.
func (c *Client) ListChannels() ([]Channel, error) {
	var channels []Channel

	cursor := ""
	for {
		params := url.Values{
			"types": {"public_channel,private_channel"},
			"limit": {strconv.Itoa(listPageSize)},
		}
		if cursor != "" {
			params.Set("cursor", cursor)
		}

		var resp struct {
			Channels         []Channel        `json:"channels"`
			ResponseMetadata responseMetadata `json:"response_metadata"`
		}
		if err := c.makeRequest("conversations.list", params, &resp); err != nil {
			return nil, errors.Wrap(err, "failed to list channels")
		}
		channels = append(channels, resp.Channels...)

		cursor = resp.ResponseMetadata.NextCursor
		if cursor == "" {
			break
		}
	}

	return channels, nil
}

// History fetches one page of up to limit messages for the channel within
// the (oldest, latest) timestamp window, newest-first. Empty bounds are
// omitted from the request.
func (c *Client) History(channelID, oldest, latest string, limit int) (*HistoryPage, error) {
	params := url.Values{
		"channel": {channelID},
		"limit":   {strconv.Itoa(limit)},
	}
	if oldest != "" {
		params.Set("oldest", oldest)
	}
	if latest != "" {
		params.Set("latest", latest)
	}

	var page HistoryPage
	if err := c.makeRequest("conversations.history", params, &page); err != nil {
		return nil, errors.Wrapf(err, "failed to fetch history for channel %s", channelID)
	}

	return &page, nil
}
