package state

import (
	"time"

	"github.com/google/uuid"

	"reflow/diag"
)

// newRunID prefers time ordered ids so reports sort by run.
func newRunID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// newLocalEnv creates a new LocalEnv instance with default values
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start: time.Now(),
		Diag:  diag.New(),
		RunID: newRunID(),
	}
}
