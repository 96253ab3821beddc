package http

import (
	"log/slog"

	"github.com/aretw0/unitconv/internal/logging"
)

func nopLogger() *slog.Logger { return logging.NewNop() }
