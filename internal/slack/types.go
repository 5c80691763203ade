package slack

import "encoding/json"

// Channel is a read-only snapshot of a conversation record. The raw
// provider record is retained so exports re-emit it unmodified.
type Channel struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	NumMembers int    `json:"num_members"`
	IsArchived bool   `json:"is_archived"`

	Raw json.RawMessage `json:"-"`
}

func (c *Channel) UnmarshalJSON(data []byte) error {
	type plain Channel
	if err := json.Unmarshal(data, (*plain)(c)); err != nil {
		return err
	}
	c.Raw = append(json.RawMessage(nil), data...)
	return nil
}

func (c Channel) MarshalJSON() ([]byte, error) {
	if c.Raw != nil {
		return c.Raw, nil
	}
	type plain Channel
	return json.Marshal(plain(c))
}

// Message is an opaque provider record. Only the ts field is decoded, for
// pagination cursoring; the payload is persisted as received.
type Message struct {
	TS  string
	Raw json.RawMessage
}

func (m *Message) UnmarshalJSON(data []byte) error {
	var probe struct {
		TS string `json:"ts"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	m.TS = probe.TS
	m.Raw = append(json.RawMessage(nil), data...)
	return nil
}

func (m Message) MarshalJSON() ([]byte, error) {
	if m.Raw == nil {
		return json.Marshal(struct {
			TS string `json:"ts"`
		}{m.TS})
	}
	return m.Raw, nil
}

// HistoryPage is one bounded batch of messages, newest-first, plus the
// provider's indication that older messages remain.
type HistoryPage struct {
	Messages []Message `json:"messages"`
	HasMore  bool      `json:"has_more"`
}
