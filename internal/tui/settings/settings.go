// Package settings edits the stored configuration through terminal prompts.
package settings

import (
	"errors"
	"fmt"

	"github.com/erikgeiser/promptkit"
	"github.com/erikgeiser/promptkit/selection"
	"github.com/erikgeiser/promptkit/textinput"

	"github.com/lazydino/lazyblog/internal/config"
)

// ErrAborted is returned when a prompt is cancelled.
var ErrAborted = errors.New("settings edit aborted")

var choices = map[string][]string{
	"search.empty_query": {"none", "all"},
	"log.level":          {"debug", "info", "warn", "error"},
	"log.format":         {"console", "json", "pretty"},
}

// Choices returns the accepted values for key, or nil when any text is
// accepted.
func Choices(key string) []string {
	return choices[key]
}

// Editor asks for a setting and its new value, then stores it.
type Editor struct {
	cfg *config.Config

	selectOne func(prompt string, options []string) (string, error)
	readText  func(prompt, initial string) (string, error)
}

func NewEditor(cfg *config.Config) *Editor {
	return &Editor{
		cfg:       cfg,
		selectOne: selectOne,
		readText:  readText,
	}
}

// Run prompts for one change and saves it. It returns the changed key.
func (e *Editor) Run() (string, error) {
	key, err := e.selectOne("Which setting do you want to change?", config.SortedKeys())
	if err != nil {
		return "", err
	}

	current, _ := e.cfg.Get(key)
	var value string
	if options := Choices(key); options != nil {
		value, err = e.selectOne(fmt.Sprintf("%s (currently %s)", key, current), options)
	} else {
		value, err = e.readText(key, current)
	}
	if err != nil {
		return "", err
	}

	if err := e.cfg.ChangeSetting(key, value); err != nil {
		return "", err
	}
	return key, nil
}

func selectOne(prompt string, options []string) (string, error) {
	sel := selection.New(prompt, options)
	sel.Filter = nil
	choice, err := sel.RunPrompt()
	if errors.Is(err, promptkit.ErrAborted) {
		return "", ErrAborted
	}
	return choice, err
}

func readText(prompt, initial string) (string, error) {
	input := textinput.New(prompt)
	input.InitialValue = initial
	value, err := input.RunPrompt()
	if errors.Is(err, promptkit.ErrAborted) {
		return "", ErrAborted
	}
	return value, err
}
