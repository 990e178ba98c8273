package ics

import (
	"context"
	"strings"

	"github.com/InfraBits/trello-ics-shimmy/internal/models"
)

// BoardSource provides the board data one feed build needs.
type BoardSource interface {
	Lists(ctx context.Context, boardID string) ([]models.List, error)
	VisibleCards(ctx context.Context, boardID string) ([]models.Card, error)
}

// Builder assembles an ICS feed for a single board. Every build fetches
// fresh board data; nothing is cached across requests.
type Builder struct {
	source  BoardSource
	boardID string
}

func NewBuilder(source BoardSource, boardID string) *Builder {
	return &Builder{
		source:  source,
		boardID: boardID,
	}
}

// Build fetches the board's lists and visible cards and renders them as a
// complete VCALENDAR payload. Cards in the feed keep the upstream order.
// Any fetch or mapping failure aborts the whole build; there is no partial
// feed.
func (b *Builder) Build(ctx context.Context) (string, error) {
	lists, err := b.source.Lists(ctx, b.boardID)
	if err != nil {
		return "", err
	}
	listsByID := make(map[string]models.List, len(lists))
	for _, list := range lists {
		listsByID[list.ID] = list
	}

	cards, err := b.source.VisibleCards(ctx, b.boardID)
	if err != nil {
		return "", err
	}

	payload := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//Infra Bits//Trello -> ICS Shimmy//EN",
		"REFRESH-INTERVAL:PT5M",
	}

	for _, card := range cards {
		// No time data - can't map to a calendar
		if !card.HasDue() {
			continue
		}

		event, err := CardEvent(card, listsByID)
		if err != nil {
			return "", err
		}
		payload = append(payload, event...)
	}

	payload = append(payload, "END:VCALENDAR")

	return strings.Join(payload, "\n"), nil
}
