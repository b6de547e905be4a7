// Package commands parses and dispatches the command-palette verbs.
package commands

import (
	"fmt"
	"strconv"
	"strings"
)

type Type string

const (
	TypeSync      Type = "sync"
	TypeStar      Type = "star"
	TypeArchive   Type = "archive"
	TypeUnarchive Type = "unarchive"
	TypeComment   Type = "comment"
	TypeLogout    Type = "logout"
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

type StarArgs struct {
	InsightID int
}

type ArchiveArgs struct {
	InsightID int
}

type CommentArgs struct {
	InsightID int
	Text      string
}

type Command struct {
	Type    Type
	Raw     string
	Star    *StarArgs
	Archive *ArchiveArgs
	Comment *CommentArgs
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
	case TypeSync, TypeLogout:
		return Command{Type: Type(head), Raw: input}, nil
	case TypeStar:
		id, err := parseInsightID(head, args)
		if err != nil {
			return Command{}, err
		}
		return Command{Type: TypeStar, Raw: input, Star: &StarArgs{InsightID: id}}, nil
	case TypeArchive, TypeUnarchive:
		id, err := parseInsightID(head, args)
		if err != nil {
			return Command{}, err
		}
		return Command{Type: Type(head), Raw: input, Archive: &ArchiveArgs{InsightID: id}}, nil
	case TypeComment:
		return parseComment(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseInsightID(verb string, args []string) (int, error) {
	if len(args) == 0 {
		return 0, &CommandError{Code: ErrCodeInvalidArgument, Message: verb + " requires an insight id"}
	}
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return 0, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s: invalid insight id %q", verb, args[0])}
	}
	return id, nil
}

func parseComment(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "comment requires an insight id and text"}
	}
	id, err := parseInsightID("comment", args)
	if err != nil {
		return Command{}, err
	}
	text := strings.TrimSpace(strings.Join(args[1:], " "))
	if text == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "comment requires text"}
	}
	return Command{Type: TypeComment, Raw: raw, Comment: &CommentArgs{InsightID: id, Text: text}}, nil
}
