package bot

import (
	"context"
	"strings"

	"nastaran/internal/domain"

	"go.uber.org/zap"
)

// FallbackText is sent when a command (typed or from a keyboard button) has no handler
const FallbackText = "Send a command, click a button, or share your location 🌤"

// Router routes an update and reports whether a handler ran
type Router interface {
	Route(ctx context.Context, u domain.Update) (bool, error)
}

// Dispatcher is the entry point for every inbound update
type Dispatcher struct {
	commands Router
	updates  Router
	buttons  map[string]string
	sender   Sender
	logger   *zap.Logger
}

// NewDispatcher creates a dispatcher. buttons maps exact persistent-keyboard
// labels to the command they stand for.
func NewDispatcher(commands, updates Router, buttons map[string]string, sender Sender, logger *zap.Logger) *Dispatcher {
	table := make(map[string]string, len(buttons))
	for label, cmd := range buttons {
		table[label] = cmd
	}
	return &Dispatcher{
		commands: commands,
		updates:  updates,
		buttons:  table,
		sender:   sender,
		logger:   logger,
	}
}

// Dispatch classifies the update and routes it. Rules, first match wins:
//
//  1. callback            -> update router
//  2. location            -> update router
//  3. no content          -> dropped
//  4. "/command"          -> command router
//  5. keyboard label      -> synthetic command -> command router
//  6. anything else       -> update router
//
// Only a command router miss produces the fallback reply. An update router
// miss is silent.
func (d *Dispatcher) Dispatch(ctx context.Context, u domain.Update) error {
	switch u.Kind() {
	case domain.KindCallback, domain.KindLocation, domain.KindMedia:
		return d.routeUpdate(ctx, u)
	case domain.KindOther:
		d.logger.Debug("Ignoring update without content",
			zap.Int("update_id", u.ID),
			zap.Int64("user_id", u.UserID),
		)
		return nil
	}

	if strings.TrimSpace(u.Text) != "" {
		if u.IsCommand() {
			return d.routeCommand(ctx, u)
		}
		if cmd, ok := d.buttons[u.Text]; ok {
			return d.routeCommand(ctx, domain.WithCommand(u, cmd))
		}
	}

	return d.routeUpdate(ctx, u)
}

func (d *Dispatcher) routeCommand(ctx context.Context, u domain.Update) error {
	handled, err := d.commands.Route(ctx, u)
	if err != nil {
		d.logger.Error("Command handler failed",
			zap.Error(err),
			zap.Int64("user_id", u.UserID),
			zap.String("text", u.Text),
		)
		return err
	}
	if handled {
		return nil
	}

	d.logger.Info("No command handler matched",
		zap.Int64("user_id", u.UserID),
		zap.String("text", u.Text),
	)
	if err := d.sender.Send(ctx, u.ChatID, FallbackText, nil); err != nil {
		d.logger.Warn("Failed to send fallback message", zap.Error(err), zap.Int64("chat_id", u.ChatID))
		return err
	}
	return nil
}

func (d *Dispatcher) routeUpdate(ctx context.Context, u domain.Update) error {
	handled, err := d.updates.Route(ctx, u)
	if err != nil {
		d.logger.Error("Update handler failed",
			zap.Error(err),
			zap.Int64("user_id", u.UserID),
			zap.Stringer("kind", u.Kind()),
		)
		return err
	}
	if !handled {
		d.logger.Debug("No update handler matched",
			zap.Int64("user_id", u.UserID),
			zap.Stringer("kind", u.Kind()),
		)
	}
	return nil
}
