package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client *pubsub.Client
}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	// EventGameReports carries batches of game reports to be recorded.
	EventGameReports EventType = "game-reports"
)
