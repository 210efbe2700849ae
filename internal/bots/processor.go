package bots

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/mo"

	"github.com/ziadkadry99/genaichat/internal/commands"
	"github.com/ziadkadry99/genaichat/internal/logger"
)

// TextGenerator produces model text for a prompt.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// CommandTable resolves normalized app command IDs to their configured text.
type CommandTable interface {
	Lookup(id string) mo.Option[string]
}

// Processor classifies chat events and produces their replies.
type Processor struct {
	commands  CommandTable
	generator TextGenerator
}

// NewProcessor creates a new event processor.
func NewProcessor(table CommandTable, generator TextGenerator) *Processor {
	return &Processor{
		commands:  table,
		generator: generator,
	}
}

// HandleEvent decides how to answer an event:
//   - added to a space -> no-action reply
//   - known QUICK_COMMAND -> the command text
//   - known SLASH_COMMAND -> generated text for the command text plus user input
//   - anything else with user input -> generated text for the input
//   - no user input -> a fixed prompt to try again
//
// Unknown commands fall through to plain generation. Generation failures are
// returned as an error result.
func (p *Processor) HandleEvent(ctx context.Context, event ChatEvent) mo.Result[Reply] {
	chat := event.Chat
	if chat.AddedToSpace() {
		return mo.Ok(Reply{})
	}

	userInput := chat.message().UserInput()

	if meta := chat.commandMetadata(); meta.AppCommandID != "" {
		if reply, ok := p.handleCommand(ctx, meta, userInput).Get(); ok {
			return reply
		}
	}

	if userInput == "" {
		logger.FromContext(ctx).Warn("Empty message received.", "event", event)
		return mo.Ok(FormatReply(EmptyMessageText))
	}

	return p.generate(ctx, userInput)
}

// handleCommand answers an app command, or returns None when the event should
// be treated as a plain message instead.
func (p *Processor) handleCommand(ctx context.Context, meta AppCommandMetadata, userInput string) mo.Option[mo.Result[Reply]] {
	log := logger.FromContext(ctx)

	id, err := commands.NormalizeID(string(meta.AppCommandID))
	if err != nil {
		log.Warn("Invalid command ID.", "command_id", string(meta.AppCommandID), "error", err.Error())
		return mo.None[mo.Result[Reply]]()
	}

	text, ok := p.commandText(id).Get()
	if !ok {
		log.Warn("Unknown command ID.", "command_id", id)
		return mo.None[mo.Result[Reply]]()
	}

	switch meta.AppCommandType {
	case QuickCommand:
		return mo.Some(mo.Ok(FormatReply(text)))
	case SlashCommand:
		return mo.Some(p.generate(ctx, fmt.Sprintf("%s. USER INPUT: %s", text, userInput)))
	}

	log.Warn("Unknown command type.", "command_type", meta.AppCommandType, "command_id", id)
	return mo.None[mo.Result[Reply]]()
}

func (p *Processor) commandText(id string) mo.Option[string] {
	if p.commands == nil {
		return mo.None[string]()
	}
	return p.commands.Lookup(id)
}

func (p *Processor) generate(ctx context.Context, prompt string) mo.Result[Reply] {
	if p.generator == nil {
		return mo.Err[Reply](errors.New("text generator not configured"))
	}
	text, err := p.generator.Generate(ctx, prompt)
	if err != nil {
		return mo.Err[Reply](err)
	}
	return mo.Ok(FormatReply(text))
}
