package handler

import (
	"strconv"

	tele "gopkg.in/telebot.v3"
)

// Commands
const (
	CmdStart        = "/start"
	CmdSongs        = "/songs"
	CmdQuotes       = "/quotes"
	CmdWeather      = "/weather"
	CmdNotes        = "/notes"
	CmdIdeas        = "/ideas"
	CmdInspirations = "/inspirations"
	CmdSettings     = "/settings"
	CmdHelp         = "/help"
)

// Persistent keyboard labels
const (
	BtnSongs        = "🎵 Songs"
	BtnQuotes       = "💬 Quotes"
	BtnWeather      = "🌤 Weather"
	BtnNotes        = "📝 Notes"
	BtnIdeas        = "💡 Ideas"
	BtnInspirations = "🎀 Inspirations"
	BtnSettings     = "⚙ Settings"
	BtnHelp         = "❓ Help"
)

// Inline callback actions. Actions taking an argument are sent as "action:arg".
const (
	ActWeatherCurrent = "weather_current"
	ActWeatherHourly  = "weather_hourly"
	ActWeatherDaily   = "weather_daily"
	ActWeatherWeekly  = "weather_weekly"
	ActWeatherSearch  = "weather_search"

	ActInspAdd           = "insp_add"
	ActInspList          = "insp_list"
	ActInspView          = "insp_view"
	ActInspEdit          = "insp_edit"
	ActInspTags          = "insp_tags"
	ActInspLabel         = "insp_label"
	ActInspFavorite      = "insp_fav"
	ActInspDeleteConfirm = "insp_delete_confirm"
	ActInspDelete        = "insp_delete"
	ActInspCancel        = "insp_cancel"

	weatherPrefix     = "weather_"
	inspirationPrefix = "insp_"
	actionSeparator   = ":"
)

// ButtonCommands maps each persistent keyboard label to the command it stands for.
// Labels without a registered command get the dispatcher fallback.
func ButtonCommands() map[string]string {
	return map[string]string{
		BtnSongs:        CmdSongs,
		BtnQuotes:       CmdQuotes,
		BtnWeather:      CmdWeather,
		BtnNotes:        CmdNotes,
		BtnIdeas:        CmdIdeas,
		BtnInspirations: CmdInspirations,
		BtnSettings:     CmdSettings,
		BtnHelp:         CmdHelp,
	}
}

func btn(text, data string) tele.InlineButton {
	return tele.InlineButton{Text: text, Data: data}
}

func withArg(action, arg string) string {
	return action + actionSeparator + arg
}

func inline(rows ...[]tele.InlineButton) *tele.ReplyMarkup {
	return &tele.ReplyMarkup{InlineKeyboard: rows}
}

// startMenuMarkup returns the main persistent keyboard
func startMenuMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{
		ResizeKeyboard: true,
		IsPersistent:   true,
		Placeholder:    "Choose an option...",
	}
	menu.Reply(
		menu.Row(menu.Text(BtnSongs), menu.Text(BtnWeather)),
		menu.Row(menu.Text(BtnQuotes), menu.Text(BtnNotes)),
		menu.Row(menu.Text(BtnIdeas), menu.Text(BtnInspirations)),
		menu.Row(menu.Text(BtnSettings), menu.Text(BtnHelp)),
	)
	return menu
}

func requestLocationMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}
	menu.Reply(menu.Row(menu.Location("📍 Send my location")))
	return menu
}

func removeKeyboardMarkup() *tele.ReplyMarkup {
	return &tele.ReplyMarkup{RemoveKeyboard: true}
}

func weatherMenuMarkup() *tele.ReplyMarkup {
	return inline(
		[]tele.InlineButton{btn("🌦 Current weather", ActWeatherCurrent), btn("⏱ Hourly forecast", ActWeatherHourly)},
		[]tele.InlineButton{btn("📆 Daily forecast", ActWeatherDaily), btn("📅 Weekly forecast", ActWeatherWeekly)},
		[]tele.InlineButton{btn("🔍 Search city", ActWeatherSearch)},
	)
}

func inspirationsMenuMarkup() *tele.ReplyMarkup {
	return inline(
		[]tele.InlineButton{btn("📖 List Inspirations", withArg(ActInspList, "0"))},
		[]tele.InlineButton{btn("➕ Add Inspiration", ActInspAdd)},
	)
}

// enhanceMarkup is shown right after an inspiration is saved
func enhanceMarkup(id string) *tele.ReplyMarkup {
	return inline(
		[]tele.InlineButton{btn("⭐ Favorite", withArg(ActInspFavorite, id)), btn("✏ Edit", withArg(ActInspEdit, id))},
		[]tele.InlineButton{btn("🏷 Tags", withArg(ActInspTags, id)), btn("📂 Label", withArg(ActInspLabel, id))},
	)
}

func singleMarkup(id string, favorite bool) *tele.ReplyMarkup {
	favText := "☆ Favorite"
	if favorite {
		favText = "⭐ Unfavorite"
	}
	return inline(
		[]tele.InlineButton{btn(favText, withArg(ActInspFavorite, id)), btn("✏ Edit", withArg(ActInspEdit, id))},
		[]tele.InlineButton{btn("🏷 Tags", withArg(ActInspTags, id)), btn("📂 Label", withArg(ActInspLabel, id))},
		[]tele.InlineButton{btn("🗑 Delete", withArg(ActInspDeleteConfirm, id))},
	)
}

func listItemMarkup(id string) *tele.ReplyMarkup {
	return inline(
		[]tele.InlineButton{btn("👁 View", withArg(ActInspView, id)), btn("🗑 Delete", withArg(ActInspDeleteConfirm, id))},
	)
}

// paginationMarkup returns nil when there is nowhere to go
func paginationMarkup(page int, hasPrev, hasNext bool) *tele.ReplyMarkup {
	var row []tele.InlineButton
	if hasPrev {
		row = append(row, btn("⬅ Prev", withArg(ActInspList, strconv.Itoa(page-1))))
	}
	if hasNext {
		row = append(row, btn("Next ➡", withArg(ActInspList, strconv.Itoa(page+1))))
	}
	if len(row) == 0 {
		return nil
	}
	return inline(row)
}

func deleteConfirmMarkup(id string) *tele.ReplyMarkup {
	return inline(
		[]tele.InlineButton{btn("✅ Yes", withArg(ActInspDelete, id)), btn("❌ Cancel", ActInspCancel)},
	)
}
