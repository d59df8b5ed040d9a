package commands

import (
	"fmt"
	"strings"

	"github.com/rohanmehra/habitd/internal/model"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeDone   Type = "done"
	TypeShow   Type = "show"
	TypeToggle Type = "toggle"
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

type AddArgs struct {
	Title     string
	StartTime string
	Repeat    model.Repeat
}

type DoneArgs struct {
	Target string
	All    bool
}

type ShowArgs struct {
	Subject string
}

type ToggleArgs struct {
	Setting string
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Done   *DoneArgs
	Show   *ShowArgs
	Toggle *ToggleArgs
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
		return parseDone(input, args)
	case TypeShow:
		return parseShow(input, args)
	case TypeToggle:
		return parseToggle(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}

	out := AddArgs{Repeat: model.RepeatNone}
	titleWords := make([]string, 0, len(args))
	for _, arg := range args {
		lower := strings.ToLower(arg)
		switch {
		case strings.HasPrefix(lower, "at:"):
			out.StartTime = arg[len("at:"):]
		case strings.HasPrefix(lower, "every:"):
			repeat := model.Repeat(lower[len("every:"):])
			if !repeat.IsValid() {
				return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown repeat rule: %s", repeat)}
			}
			out.Repeat = repeat
		default:
			titleWords = append(titleWords, arg)
		}
	}
	out.Title = strings.TrimSpace(strings.Join(titleWords, " "))
	if out.Title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &out}, nil
}

func parseDone(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "done requires a task id"}
	}
	out := DoneArgs{Target: args[0]}
	if len(args) > 1 {
		if strings.ToLower(args[1]) != "all" {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown done scope: %s", args[1])}
		}
		out.All = true
	}
	return Command{Type: TypeDone, Raw: raw, Done: &out}, nil
}

func parseShow(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "show requires a subject"}
	}
	subject := strings.ToLower(args[0])
	switch subject {
	case "today", "history":
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown subject: %s", subject)}
	}
	return Command{Type: TypeShow, Raw: raw, Show: &ShowArgs{Subject: subject}}, nil
}

func parseToggle(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "toggle requires a setting"}
	}
	return Command{Type: TypeToggle, Raw: raw, Toggle: &ToggleArgs{Setting: strings.ToLower(args[0])}}, nil
}
