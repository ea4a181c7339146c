package session

// RewardSignals are the reward-shaping primitives derived from one
// before/after snapshot pair (§8). The core only computes the raw
// booleans/deltas; the weighted composite is the shell's business, since
// the weights are a shell policy choice, never a core constant.
type RewardSignals struct {
	ScoreDelta      int  `json:"score_delta"`
	NovelRoom       bool `json:"novel_room"`
	NovelMessage    bool `json:"novel_message"`
	ObjectTaken     bool `json:"object_taken"`
	ContainerOpened bool `json:"container_opened"`
	Death           bool `json:"death"`
	ValidAction     bool `json:"valid_action"`
}

// Reward computes the signals for the transition from before to after,
// given whether the action that produced it was recognised by the
// dispatcher at all. Room and message novelty are remembered for the
// lifetime of the session: the first visit to a room, or the first time a
// given message hash is seen, is novel exactly once.
func (s *Session) Reward(before, after Snapshot, validAction bool) RewardSignals {
	if s.seenRooms == nil {
		s.seenRooms = map[string]bool{}
	}
	if s.seenMessages == nil {
		s.seenMessages = map[string]bool{}
	}

	roomKey := string(after.RoomID)
	novelRoom := !s.seenRooms[roomKey]
	s.seenRooms[roomKey] = true

	novelMessage := after.MessageHash != "" && !s.seenMessages[after.MessageHash]
	if after.MessageHash != "" {
		s.seenMessages[after.MessageHash] = true
	}

	return RewardSignals{
		ScoreDelta:      after.Score - before.Score,
		NovelRoom:       novelRoom,
		NovelMessage:    novelMessage,
		ObjectTaken:     len(after.Inventory) > len(before.Inventory),
		ContainerOpened: newlyOpened(before, after),
		Death:           after.Deaths > before.Deaths,
		ValidAction:     validAction,
	}
}

// newlyOpened reports whether any object visible in the room gained the
// open flag between before and after — a container or door opening.
func newlyOpened(before, after Snapshot) bool {
	wasOpen := map[string]bool{}
	for _, v := range before.Visible {
		wasOpen[string(v.ID)] = hasFlag(v.Flags, "open")
	}
	for _, v := range after.Visible {
		if hasFlag(v.Flags, "open") && !wasOpen[string(v.ID)] {
			return true
		}
	}
	return false
}

func hasFlag(flags []string, name string) bool {
	for _, f := range flags {
		if f == name {
			return true
		}
	}
	return false
}
