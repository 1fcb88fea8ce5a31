package bot

import (
	"context"
	"strings"

	"nastaran/internal/domain"
)

// CommandRouter runs the command handler named by the first word of the text
type CommandRouter struct {
	registry *Registry
}

// NewCommandRouter creates a command router over the registry
func NewCommandRouter(registry *Registry) *CommandRouter {
	return &CommandRouter{registry: registry}
}

// Route returns false without error when no handler matches,
// including for empty or whitespace-only text.
func (r *CommandRouter) Route(ctx context.Context, u domain.Update) (bool, error) {
	fields := strings.Fields(u.Text)
	if len(fields) == 0 {
		return false, nil
	}

	// in groups Telegram addresses commands as /start@BotName
	token, _, _ := strings.Cut(fields[0], "@")
	h, ok := r.registry.Command(strings.ToLower(token))
	if !ok {
		return false, nil
	}

	return true, h.Handle(ctx, u)
}

// UpdateRouter hands an update to the first handler whose predicate accepts it
type UpdateRouter struct {
	handlers []UpdateHandler
}

// NewUpdateRouter creates an update router. Order is priority: state-gated
// handlers must come before general ones or they will be shadowed.
func NewUpdateRouter(registry *Registry) *UpdateRouter {
	return &UpdateRouter{handlers: registry.Updates()}
}

// Route stops at the first match; later handlers are never consulted.
// No match is not an error.
func (r *UpdateRouter) Route(ctx context.Context, u domain.Update) (bool, error) {
	for _, h := range r.handlers {
		if h.CanHandle(u) {
			return true, h.Handle(ctx, u)
		}
	}
	return false, nil
}
