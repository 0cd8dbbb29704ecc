package entity

import "time"

// Conversation is a thread between two participants, optionally scoped to a
// product listing. The pair is unordered: initiator/counterpart only records
// who opened the thread.
type Conversation struct {
	ID                string    `json:"id" firestore:"id"`
	InitiatorID       string    `json:"initiator_id" firestore:"initiatorId"`
	CounterpartID     string    `json:"counterpart_id" firestore:"counterpartId"`
	ProductID         string    `json:"product_id,omitempty" firestore:"productId"`
	Subject           string    `json:"subject" firestore:"subject"`
	InitiatorUnread   int       `json:"initiator_unread" firestore:"initiatorUnread"`
	CounterpartUnread int       `json:"counterpart_unread" firestore:"counterpartUnread"`
	LastMessage       string    `json:"last_message,omitempty" firestore:"lastMessage"`
	LastSenderID      string    `json:"last_sender_id,omitempty" firestore:"lastSenderId"`
	LastMessageAt     time.Time `json:"last_message_at" firestore:"lastMessageAt"`
	CreatedAt         time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt         time.Time `json:"updated_at" firestore:"updatedAt"`
}

func (c *Conversation) HasParticipant(userID string) bool {
	return userID != "" && (userID == c.InitiatorID || userID == c.CounterpartID)
}

// OtherParticipant returns the participant that is not userID. Callers must
// have checked HasParticipant first.
func (c *Conversation) OtherParticipant(userID string) string {
	if userID == c.InitiatorID {
		return c.CounterpartID
	}
	return c.InitiatorID
}

func (c *Conversation) UnreadFor(userID string) int {
	if userID == c.InitiatorID {
		return c.InitiatorUnread
	}
	if userID == c.CounterpartID {
		return c.CounterpartUnread
	}
	return 0
}
