package commands

import (
	"errors"

	"github.com/robalyx/casebot/internal/database"
	"go.uber.org/zap"
)

var (
	ErrNameRequired       = errors.New("NAME argument required")
	ErrNumberRequired     = errors.New("NUMBER argument required")
	ErrUnknownRestriction = errors.New("unknown restriction")
)

// CLIDependencies holds the database connection and logger shared by every command.
type CLIDependencies struct {
	DB     database.Client
	Logger *zap.Logger
}
