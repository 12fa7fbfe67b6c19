package board

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// ToastTTL is how long a notification stays visible.
const ToastTTL = 2500 * time.Millisecond

type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelError
)

// Toast is a transient notification. ID tells a newer toast from an older
// one carrying the same text.
type Toast struct {
	ID    ulid.ULID
	Level Level
	Text  string
}

func NewToast(level Level, text string) Toast {
	return Toast{ID: ulid.Make(), Level: level, Text: text}
}
