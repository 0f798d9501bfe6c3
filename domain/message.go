// Package domain contains core concepts of the chat client.
// This file defines Message values and the host information record.
// Messages are immutable once created; display order is arrival order.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Message represents one chat line in a room. ID and ReceivedAt are
// local metadata; only Author and Body travel on the wire.
type Message struct {
	ID         uuid.UUID
	Author     string
	Body       string
	ReceivedAt time.Time
}

func NewMessage(author, body string) Message {
	return Message{
		ID:         uuid.New(),
		Author:     author,
		Body:       body,
		ReceivedAt: time.Now(),
	}
}

// HostInfo is supplied once per successful connection and stays
// immutable until the next connect.
type HostInfo struct {
	Host string `json:"host"`
	IP   string `json:"ip"`
}
