package core

import (
	"errors"
)

var (
	ErrEngineNotInitialized = errors.New("engine not initialized")
)
