package ui

import (
	"errors"
	"strings"
)

// ErrUnknownCommand is returned by ParseCommand for an unrecognised
// slash command.
var ErrUnknownCommand = errors.New("unknown command")

// ParseCommand turns an input line into an Action. Plain text is typed;
// slash commands control the animation:
//
//	/pause /p      toggle pause
//	/restart /r    rebuild and rerun
//	/delete /d     delete everything shown
//	/paste TEXT    paste TEXT in one step
//	/lua CODE      run CODE in the script VM
//	/quit /q       exit
//
// A blank line yields ok == false.
func ParseCommand(line string) (act Action, ok bool, err error) {
	if strings.TrimSpace(line) == "" {
		return Action{}, false, nil
	}
	if !strings.HasPrefix(line, "/") {
		return Action{Kind: ActionType, Text: line}, true, nil
	}

	name, arg, _ := strings.Cut(line[1:], " ")
	switch strings.ToLower(name) {
	case "p", "pause":
		return Action{Kind: ActionTogglePause}, true, nil
	case "r", "restart":
		return Action{Kind: ActionRestart}, true, nil
	case "d", "delete":
		return Action{Kind: ActionDelete}, true, nil
	case "q", "quit":
		return Action{Kind: ActionQuit}, true, nil
	case "paste":
		if arg == "" {
			return Action{}, false, errors.New("/paste needs text")
		}
		return Action{Kind: ActionPaste, Text: arg}, true, nil
	case "lua":
		if strings.TrimSpace(arg) == "" {
			return Action{}, false, errors.New("/lua needs code")
		}
		return Action{Kind: ActionLua, Text: arg}, true, nil
	case "":
		// "/ text" types a line that starts with a slash
		return Action{Kind: ActionType, Text: "/" + arg}, true, nil
	}
	return Action{}, false, ErrUnknownCommand
}
