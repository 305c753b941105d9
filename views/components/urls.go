package components

import "github.com/a-h/templ"

type padButton struct {
	ID    string
	Dir   string
	Label string
}

var padButtons = []padButton{
	{ID: "up-btn", Dir: "up", Label: "↑"},
	{ID: "left-btn", Dir: "left", Label: "←"},
	{ID: "right-btn", Dir: "right", Label: "→"},
	{ID: "down-btn", Dir: "down", Label: "↓"},
}

func actionURL(gameID, action string) templ.SafeURL {
	return templ.SafeURL("/game/" + gameID + "/" + action)
}
