// Package commands parses and dispatches the habit palette grammar.
package commands

import (
	"fmt"
	"strings"

	"github.com/habitforge/habitd/internal/model"
)

type Type string

const (
	TypeAdd      Type = "add"
	TypeDone     Type = "done"
	TypeProgress Type = "progress"
	TypeRemind   Type = "remind"
	TypeDelete   Type = "delete"
	TypeNote     Type = "note"
	TypeReset    Type = "reset"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// TargetSelected addresses the habit currently highlighted in the list.
const TargetSelected = "selected"

type AddArgs struct {
	Name     string
	Category model.Category
}

type DoneArgs struct {
	Target string
}

type ProgressArgs struct {
	Target string
}

type RemindArgs struct {
	Target string
	Time   string
}

type DeleteArgs struct {
	Target string
}

type NoteArgs struct {
	Text string
}

type Command struct {
	Type     Type
	Raw      string
	Add      *AddArgs
	Done     *DoneArgs
	Progress *ProgressArgs
	Remind   *RemindArgs
	Delete   *DeleteArgs
	Note     *NoteArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeDone:
		return parseTargeted(input, TypeDone, args)
	case TypeProgress:
		return parseTargeted(input, TypeProgress, args)
	case TypeRemind:
		return parseRemind(input, args)
	case TypeDelete:
		return parseTargeted(input, TypeDelete, args)
	case TypeNote:
		return parseNote(input, args)
	case TypeReset:
		return Command{Type: TypeReset, Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

// parseAdd accepts "add <name> [#category]". The trailing #tag selects a
// category; without one the habit lands in Personal.
func parseAdd(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a habit name"}
	}

	category := model.CategoryPersonal
	if last := args[len(args)-1]; strings.HasPrefix(last, "#") {
		parsed, err := model.ParseCategory(strings.TrimPrefix(last, "#"))
		if err != nil {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown category: %s", last)}
		}
		category = parsed
		args = args[:len(args)-1]
	}

	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a habit name"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Name: name, Category: category}}, nil
}

func parseTargeted(raw string, typ Type, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires a target", typ)}
	}
	target := strings.ToLower(args[0])

	cmd := Command{Type: typ, Raw: raw}
	switch typ {
	case TypeDone:
		cmd.Done = &DoneArgs{Target: target}
	case TypeProgress:
		cmd.Progress = &ProgressArgs{Target: target}
	case TypeDelete:
		cmd.Delete = &DeleteArgs{Target: target}
	}
	return cmd, nil
}

func parseRemind(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "remind requires a target and an HH:MM time"}
	}
	at := args[1]
	if !model.ValidReminderTime(at) {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid remind time: %s", at)}
	}
	return Command{Type: TypeRemind, Raw: raw, Remind: &RemindArgs{Target: strings.ToLower(args[0]), Time: at}}, nil
}

func parseNote(raw string, args []string) (Command, error) {
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "note requires text"}
	}
	return Command{Type: TypeNote, Raw: raw, Note: &NoteArgs{Text: text}}, nil
}
