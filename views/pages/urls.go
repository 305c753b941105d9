package pages

import "github.com/a-h/templ"

func qrURL(gameID string) templ.SafeURL {
	return templ.SafeURL("/game/" + gameID + "/qr.png")
}
