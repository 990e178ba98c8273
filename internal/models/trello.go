package models

// List is a Trello list as returned by the boards/{id}/lists endpoint.
type List struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Card is a Trello card as returned by the boards/{id}/cards/visible
// endpoint. Due and Start are ISO-8601 strings with a UTC offset; Trello
// sends null for cards without them, which decodes to the empty string.
type Card struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Desc   string `json:"desc"`
	URL    string `json:"url"`
	Due    string `json:"due"`
	Start  string `json:"start"`
	IDList string `json:"idList"`
}

// HasDue reports whether the card carries a due date and can therefore be
// mapped to a calendar event.
func (c Card) HasDue() bool {
	return c.Due != ""
}
