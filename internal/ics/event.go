package ics

import (
	"errors"
	"fmt"

	"github.com/InfraBits/trello-ics-shimmy/internal/models"
)

// uidSuffix is appended to the card id to form the event UID.
const uidSuffix = "@trello.com"

// ErrUnknownList is returned when a card references a list id that the
// board's list set does not contain.
var ErrUnknownList = errors.New("card references unknown list")

// CardEvent renders one card as the content lines of a VEVENT block. The
// card must carry a due date; callers filter due-less cards out beforehand.
// lists indexes the board's lists by id for the summary suffix.
func CardEvent(card models.Card, lists map[string]models.List) ([]string, error) {
	list, ok := lists[card.IDList]
	if !ok {
		return nil, fmt.Errorf("%w: card %s, list %s", ErrUnknownList, card.ID, card.IDList)
	}

	// Embedded newlines are carried as the two-character \n escape per the
	// iCalendar TEXT value convention, not as real line breaks.
	description := "Card URL: " + card.URL
	if card.Desc != "" {
		description = card.Desc + `\n\n` + description
	}

	lines := []string{
		"BEGIN:VEVENT",
		"DESCRIPTION:" + foldLine(description),
		"URL:" + card.URL,
		fmt.Sprintf("SUMMARY:%s [%s]", card.Name, list.Name),
		"UID:" + card.ID + uidSuffix,
	}

	if card.Start != "" {
		start, err := NormalizeStartTimestamp(card.Start)
		if err != nil {
			return nil, err
		}
		end, err := NormalizeTimestamp(card.Due)
		if err != nil {
			return nil, err
		}
		lines = append(lines,
			"DTSTAMP:"+start,
			"DTSTART:"+start,
			"DTEND:"+end,
		)
	} else {
		due, err := NormalizeTimestamp(card.Due)
		if err != nil {
			return nil, err
		}
		lines = append(lines,
			"DTSTAMP:"+due,
			"DTSTART:"+due,
			"DURATION:PT1H",
		)
	}

	lines = append(lines, "END:VEVENT")

	return lines, nil
}
