package handler

import (
	"context"
	"strings"
	"unicode"

	"nastaran/internal/bot"
	"nastaran/internal/domain"
	"nastaran/internal/state"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Deps are the collaborators shared by all handlers
type Deps struct {
	Messenger    Messenger
	Users        UserService
	Ideas        IdeaService
	Notes        NoteService
	Inspirations InspirationService
	Weather      WeatherProvider

	// Intents marks "the next captioned photo creates an inspiration"
	Intents *state.IntentStore
	// Edits records which inspiration field the next text replaces
	Edits *state.EditStore
	// CitySearch marks "the next text is a city name"
	CitySearch *state.IntentStore

	Logger *zap.Logger
}

// Handler manages all bot interactions
type Handler struct {
	msg          Messenger
	users        UserService
	ideas        IdeaService
	notes        NoteService
	inspirations InspirationService
	weather      WeatherProvider

	intents    *state.IntentStore
	edits      *state.EditStore
	citySearch *state.IntentStore

	logger *zap.Logger
}

// New creates a new handler instance
func New(d Deps) *Handler {
	return &Handler{
		msg:          d.Messenger,
		users:        d.Users,
		ideas:        d.Ideas,
		notes:        d.Notes,
		inspirations: d.Inspirations,
		weather:      d.Weather,
		intents:      d.Intents,
		edits:        d.Edits,
		citySearch:   d.CitySearch,
		logger:       d.Logger,
	}
}

// Commands returns every command handler
func (h *Handler) Commands() []bot.CommandHandler {
	return []bot.CommandHandler{
		commandFunc{CmdStart, h.handleStart},
		commandFunc{CmdWeather, h.handleWeather},
		commandFunc{CmdIdeas, h.handleIdeas},
		commandFunc{CmdNotes, h.handleNotes},
		commandFunc{CmdInspirations, h.handleInspirations},
		commandFunc{CmdHelp, h.handleHelp},
	}
}

// Updates returns the update handlers in priority order.
// State-gated text handlers come before the city search so an active
// edit is never shadowed by a pending search.
func (h *Handler) Updates() []bot.UpdateHandler {
	return []bot.UpdateHandler{
		updateFunc{"inspiration_callback", h.canHandleInspirationCallback, h.handleInspirationCallback},
		updateFunc{"weather_callback", h.canHandleWeatherCallback, h.handleWeatherCallback},
		updateFunc{"weather_location", h.canHandleLocation, h.handleLocation},
		updateFunc{"inspiration_create", h.canHandleInspirationCreate, h.handleInspirationCreate},
		updateFunc{"inspiration_edit", h.canHandleInspirationEdit, h.handleInspirationEdit},
		updateFunc{"weather_city_search", h.canHandleCitySearch, h.handleCitySearch},
	}
}

// commandFunc adapts a Handler method to bot.CommandHandler
type commandFunc struct {
	name   string
	handle func(ctx context.Context, u domain.Update) error
}

func (f commandFunc) Command() string { return f.name }

func (f commandFunc) Handle(ctx context.Context, u domain.Update) error { return f.handle(ctx, u) }

// updateFunc adapts a predicate and a Handler method to bot.UpdateHandler
type updateFunc struct {
	name      string
	canHandle func(u domain.Update) bool
	handle    func(ctx context.Context, u domain.Update) error
}

func (f updateFunc) CanHandle(u domain.Update) bool { return f.canHandle(u) }

func (f updateFunc) Handle(ctx context.Context, u domain.Update) error { return f.handle(ctx, u) }

func (f updateFunc) String() string { return f.name }

// send delivers a plain message. Failures are logged and returned.
func (h *Handler) send(ctx context.Context, chatID int64, text string, markup *tele.ReplyMarkup) error {
	if err := h.msg.Send(ctx, chatID, text, markup); err != nil {
		h.logger.Warn("Failed to send message", zap.Error(err), zap.Int64("chat_id", chatID))
		return err
	}
	return nil
}

func (h *Handler) sendMarkdown(ctx context.Context, chatID int64, text string, markup *tele.ReplyMarkup) error {
	if err := h.msg.SendMarkdown(ctx, chatID, text, markup); err != nil {
		h.logger.Warn("Failed to send message", zap.Error(err), zap.Int64("chat_id", chatID))
		return err
	}
	return nil
}

// answer acknowledges a button press so the client stops its spinner
func (h *Handler) answer(ctx context.Context, cb *domain.Callback) {
	if err := h.msg.AnswerCallback(ctx, cb.ID, ""); err != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(err), zap.String("data", cb.Data))
	}
}

// splitAction splits "action:arg" callback data; arg is empty when absent
func splitAction(data string) (action, arg string) {
	action, arg, _ = strings.Cut(data, actionSeparator)
	return action, arg
}

// cutWord splits off the first whitespace-delimited word; rest is trimmed
func cutWord(s string) (word, rest string) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i:])
}

// splitSubcommand parses "/cmd sub rest of text". sub is lower-cased and
// rest keeps its inner spacing.
func splitSubcommand(text string) (sub, rest string) {
	_, after := cutWord(text)
	sub, rest = cutWord(after)
	return strings.ToLower(sub), rest
}
