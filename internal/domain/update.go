package domain

import "strings"

// CommandMarker prefixes every typed command
const CommandMarker = "/"

// UpdateKind identifies which payload of an Update is populated
type UpdateKind int

const (
	KindOther UpdateKind = iota
	KindCallback
	KindLocation
	KindMedia
	KindText
)

func (k UpdateKind) String() string {
	switch k {
	case KindCallback:
		return "callback"
	case KindLocation:
		return "location"
	case KindMedia:
		return "media"
	case KindText:
		return "text"
	default:
		return "other"
	}
}

// Sender describes the user behind an update
type Sender struct {
	Username  string
	FirstName string
}

// Callback is an inline button press
type Callback struct {
	ID        string
	Data      string
	MessageID int
}

// Location is a shared geographic point
type Location struct {
	Lat float64
	Lon float64
}

// Media is an attachment with its caption
type Media struct {
	Ref     string
	Caption string
}

// Update is one inbound event from the chat platform.
// Exactly one of Callback, Location, Media or Text is expected to be set;
// Kind resolves the case when a transport fills more than one.
type Update struct {
	ID     int
	UserID int64
	ChatID int64
	From   Sender

	Callback *Callback
	Location *Location
	Media    *Media
	Text     string
}

// Kind reports the populated case, in dispatch priority order
func (u Update) Kind() UpdateKind {
	switch {
	case u.Callback != nil:
		return KindCallback
	case u.Location != nil:
		return KindLocation
	case u.Media != nil:
		return KindMedia
	case u.Text != "":
		return KindText
	default:
		return KindOther
	}
}

// IsCommand reports whether the text starts with the command marker
func (u Update) IsCommand() bool {
	return u.Kind() == KindText && strings.HasPrefix(strings.TrimSpace(u.Text), CommandMarker)
}

// NewTextUpdate builds a text message update
func NewTextUpdate(userID, chatID int64, text string) Update {
	return Update{UserID: userID, ChatID: chatID, Text: text}
}

// NewCallbackUpdate builds an inline button press update
func NewCallbackUpdate(userID, chatID int64, id, data string) Update {
	return Update{UserID: userID, ChatID: chatID, Callback: &Callback{ID: id, Data: data}}
}

// NewLocationUpdate builds a location share update
func NewLocationUpdate(userID, chatID int64, lat, lon float64) Update {
	return Update{UserID: userID, ChatID: chatID, Location: &Location{Lat: lat, Lon: lon}}
}

// NewMediaUpdate builds an attachment update
func NewMediaUpdate(userID, chatID int64, ref, caption string) Update {
	return Update{UserID: userID, ChatID: chatID, Media: &Media{Ref: ref, Caption: caption}}
}

// WithCommand returns a copy of u that carries only the given command text.
// Identity (update id, user, chat, sender) is preserved; u is not modified.
func WithCommand(u Update, command string) Update {
	return Update{
		ID:     u.ID,
		UserID: u.UserID,
		ChatID: u.ChatID,
		From:   u.From,
		Text:   command,
	}
}
