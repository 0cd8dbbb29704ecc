package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConversationParticipants(t *testing.T) {
	conv := &Conversation{
		InitiatorID:       "alice",
		CounterpartID:     "bob",
		InitiatorUnread:   2,
		CounterpartUnread: 5,
	}

	assert.True(t, conv.HasParticipant("alice"))
	assert.True(t, conv.HasParticipant("bob"))
	assert.False(t, conv.HasParticipant("carol"))
	assert.False(t, conv.HasParticipant(""))

	assert.Equal(t, "bob", conv.OtherParticipant("alice"))
	assert.Equal(t, "alice", conv.OtherParticipant("bob"))

	assert.Equal(t, 2, conv.UnreadFor("alice"))
	assert.Equal(t, 5, conv.UnreadFor("bob"))
	assert.Equal(t, 0, conv.UnreadFor("carol"))
}
