package export

import "slackexport/internal/slack"

// ChannelFilter is a conjunction of optional channel predicates. A zero
// value disables its predicate; ExcludeArchived is the default posture and
// must be switched off explicitly.
type ChannelFilter struct {
	MinMembers      int
	ExcludeArchived bool
	Name            string
}

// Apply returns the channels satisfying every active predicate, preserving
// their original order. An empty result is valid.
func (f ChannelFilter) Apply(channels []slack.Channel) []slack.Channel {
	var selected []slack.Channel
	for _, ch := range channels {
		if f.ExcludeArchived && ch.IsArchived {
			continue
		}
		if f.MinMembers > 0 && ch.NumMembers < f.MinMembers {
			continue
		}
		if f.Name != "" && ch.Name != f.Name {
			continue
		}
		selected = append(selected, ch)
	}
	return selected
}
