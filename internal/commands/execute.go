package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Sync      func() (Result, error)
	Star      func(StarArgs) (Result, error)
	Archive   func(ArchiveArgs) (Result, error)
	Unarchive func(ArchiveArgs) (Result, error)
	Comment   func(CommentArgs) (Result, error)
	Logout    func() (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeSync:
		if handlers.Sync == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "sync handler not configured"}
		}
		return handlers.Sync()
	case TypeStar:
		if handlers.Star == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "star handler not configured"}
		}
		return handlers.Star(*cmd.Star)
	case TypeArchive:
		if handlers.Archive == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "archive handler not configured"}
		}
		return handlers.Archive(*cmd.Archive)
	case TypeUnarchive:
		if handlers.Unarchive == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "unarchive handler not configured"}
		}
		return handlers.Unarchive(*cmd.Archive)
	case TypeComment:
		if handlers.Comment == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "comment handler not configured"}
		}
		return handlers.Comment(*cmd.Comment)
	case TypeLogout:
		if handlers.Logout == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "logout handler not configured"}
		}
		return handlers.Logout()
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
