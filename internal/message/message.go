// Package message provides the in-memory chat rooms used for alliance and
// direct messaging.
package message

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// RoomType distinguishes alliance channels from direct conversations.
type RoomType string

const (
	RoomAlliance RoomType = "alliance"
	RoomDirect   RoomType = "direct"
)

// Room is a conversation between a fixed set of participants.
type Room struct {
	ID             string   `json:"id"`
	Type           RoomType `json:"type"`
	Title          string   `json:"title"`
	ParticipantIDs []string `json:"participantIds"`
}

// Message is a single chat entry.
type Message struct {
	ID        string `json:"id"`
	RoomID    string `json:"roomId"`
	AuthorID  string `json:"authorId"`
	Body      string `json:"body"`
	CreatedAt int64  `json:"createdAt"`
}

// Store keeps rooms and their messages for one session.
type Store struct {
	mu       sync.Mutex
	rooms    []Room
	messages map[string][]Message
	now      func() int64
}

// NewStore creates an empty message store.
func NewStore(now func() int64) *Store {
	return &Store{
		messages: make(map[string][]Message),
		now:      now,
	}
}

// CreateRoom opens a new conversation.
func (s *Store) CreateRoom(roomType RoomType, title string, participantIDs []string) Room {
	room := Room{
		ID:             uuid.NewString(),
		Type:           roomType,
		Title:          title,
		ParticipantIDs: participantIDs,
	}

	s.mu.Lock()
	s.rooms = append(s.rooms, room)
	s.mu.Unlock()
	return room
}

// Rooms lists all open conversations.
func (s *Store) Rooms() []Room {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Room, len(s.rooms))
	copy(out, s.rooms)
	return out
}

// Post appends a message to a room.
func (s *Store) Post(roomID, authorID, body string) (Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	for _, room := range s.rooms {
		if room.ID == roomID {
			found = true
			break
		}
	}
	if !found {
		return Message{}, fmt.Errorf("unknown room %q", roomID)
	}

	msg := Message{
		ID:        uuid.NewString(),
		RoomID:    roomID,
		AuthorID:  authorID,
		Body:      body,
		CreatedAt: s.now(),
	}
	s.messages[roomID] = append(s.messages[roomID], msg)
	return msg, nil
}

// History returns all messages of a room in posting order.
func (s *Store) History(roomID string) []Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs := s.messages[roomID]
	out := make([]Message, len(msgs))
	copy(out, msgs)
	return out
}
