//go:build nogui
// +build nogui

package gui

import (
	"stackview/internal/config"
	"stackview/internal/errors"
	"stackview/internal/log"
)

// App is a stub used when building with the nogui tag (headless CI builds).
type App struct{}

// NewApp returns a stub application.
func NewApp(*config.Config) *App {
	return &App{}
}

// Run reports that GUI support was compiled out.
func (a *App) Run(string) {
	log.Error("gui unavailable", errors.New("built with the nogui tag"))
}
