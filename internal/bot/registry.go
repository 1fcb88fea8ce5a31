package bot

import (
	"errors"
	"fmt"
	"strings"

	"nastaran/internal/domain"
)

var (
	// ErrDuplicateCommand is returned when two handlers claim one command
	ErrDuplicateCommand = errors.New("duplicate command handler")
	// ErrInvalidCommand is returned for a malformed command identifier
	ErrInvalidCommand = errors.New("invalid command identifier")
	// ErrNilHandler is returned when a nil handler is registered
	ErrNilHandler = errors.New("nil handler")
)

// Registry holds both handler sets. It is built once and never mutated,
// so lookups need no locking.
type Registry struct {
	commands map[string]CommandHandler
	names    []string
	updates  []UpdateHandler
}

// NewRegistry validates and indexes the handlers.
// Update handlers keep the given order: earlier entries win.
func NewRegistry(commands []CommandHandler, updates []UpdateHandler) (*Registry, error) {
	r := &Registry{
		commands: make(map[string]CommandHandler, len(commands)),
		updates:  make([]UpdateHandler, 0, len(updates)),
	}

	for i, h := range commands {
		if h == nil {
			return nil, fmt.Errorf("command handler #%d: %w", i, ErrNilHandler)
		}
		key := normalizeCommand(h.Command())
		if key == "" || !strings.HasPrefix(key, domain.CommandMarker) || strings.ContainsAny(key, " \t\n") {
			return nil, fmt.Errorf("command %q: %w", h.Command(), ErrInvalidCommand)
		}
		if _, exists := r.commands[key]; exists {
			return nil, fmt.Errorf("command %q: %w", key, ErrDuplicateCommand)
		}
		r.commands[key] = h
		r.names = append(r.names, key)
	}

	for i, h := range updates {
		if h == nil {
			return nil, fmt.Errorf("update handler #%d: %w", i, ErrNilHandler)
		}
		r.updates = append(r.updates, h)
	}

	return r, nil
}

// Command looks up a handler by its exact (case-insensitive) identifier
func (r *Registry) Command(token string) (CommandHandler, bool) {
	h, ok := r.commands[normalizeCommand(token)]
	return h, ok
}

// Commands returns registered command identifiers in registration order
func (r *Registry) Commands() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Updates returns update handlers in priority order
func (r *Registry) Updates() []UpdateHandler {
	out := make([]UpdateHandler, len(r.updates))
	copy(out, r.updates)
	return out
}

func normalizeCommand(token string) string {
	return strings.ToLower(strings.TrimSpace(token))
}
