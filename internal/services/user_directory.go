package services

import (
	"context"

	"eventplanner/internal/domain"
)

// DefaultGuestName is recorded for users the directory does not know.
const DefaultGuestName = "Guest"

type staticUserDirectory struct {
	names    map[string]string
	fallback string
}

// NewStaticUserDirectory returns a UserDirectory over a fixed id to name map.
func NewStaticUserDirectory(names map[string]string, fallback string) domain.UserDirectory {
	if fallback == "" {
		fallback = DefaultGuestName
	}
	copied := make(map[string]string, len(names))
	for id, name := range names {
		copied[id] = name
	}
	return &staticUserDirectory{names: copied, fallback: fallback}
}

func (d *staticUserDirectory) DisplayName(_ context.Context, userID string) string {
	if name, ok := d.names[userID]; ok && name != "" {
		return name
	}
	return d.fallback
}
