package commands

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeEdit   Type = "edit"
	TypeToggle Type = "toggle"
	TypeRemove Type = "rm"
	TypeMove   Type = "mv"
	TypeClear  Type = "clear"
)

var aliases = map[string]Type{
	"done":   TypeToggle,
	"delete": TypeRemove,
	"del":    TypeRemove,
	"move":   TypeMove,
}

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
	Text string
}

// Row numbers are 1-based as shown in the list.
type EditArgs struct {
	Row  int
	Text string
}

type ToggleArgs struct {
	Row int
}

type RemoveArgs struct {
	Row int
}

type MoveArgs struct {
	From int
	To   int
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Edit   *EditArgs
	Toggle *ToggleArgs
	Remove *RemoveArgs
	Move   *MoveArgs
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
	if alias, ok := aliases[head]; ok {
		head = string(alias)
	}

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, afterFields(raw, 1))
	case TypeEdit:
		return parseEdit(input, args, afterFields(raw, 2))
	case TypeToggle:
		return parseToggle(input, args)
	case TypeRemove:
		return parseRemove(input, args)
	case TypeMove:
		return parseMove(input, args)
	case TypeClear:
		if len(args) > 0 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "clear takes no arguments"}
		}
		return Command{Type: TypeClear, Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw, text string) (Command, error) {
	if text == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires task text"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Text: text}}, nil
}

func parseEdit(raw string, args []string, text string) (Command, error) {
	if len(args) < 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "edit requires row and text"}
	}
	row, err := ParseRow(args[0])
	if err != nil {
		return Command{}, err
	}
	return Command{Type: TypeEdit, Raw: raw, Edit: &EditArgs{Row: row, Text: text}}, nil
}

func parseToggle(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "toggle requires a row"}
	}
	row, err := ParseRow(args[0])
	if err != nil {
		return Command{}, err
	}
	return Command{Type: TypeToggle, Raw: raw, Toggle: &ToggleArgs{Row: row}}, nil
}

func parseRemove(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "rm requires a row"}
	}
	row, err := ParseRow(args[0])
	if err != nil {
		return Command{}, err
	}
	return Command{Type: TypeRemove, Raw: raw, Remove: &RemoveArgs{Row: row}}, nil
}

func parseMove(raw string, args []string) (Command, error) {
	if len(args) != 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "mv requires from and to rows"}
	}
	from, err := ParseRow(args[0])
	if err != nil {
		return Command{}, err
	}
	to, err := ParseRow(args[1])
	if err != nil {
		return Command{}, err
	}
	return Command{Type: TypeMove, Raw: raw, Move: &MoveArgs{From: from, To: to}}, nil
}

// afterFields returns s with its first n whitespace-separated fields removed.
// Spacing inside the remainder is kept.
func afterFields(s string, n int) string {
	rest := strings.TrimSpace(s)
	for i := 0; i < n && rest != ""; i++ {
		cut := strings.IndexFunc(rest, unicode.IsSpace)
		if cut < 0 {
			return ""
		}
		rest = strings.TrimLeftFunc(rest[cut:], unicode.IsSpace)
	}
	return strings.TrimSpace(rest)
}

// ParseRow reads a 1-based row number, optionally written as "#3".
func ParseRow(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(s, "#"))
	if err != nil || n < 1 {
		return 0, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid row: %s", s)}
	}
	return n, nil
}
