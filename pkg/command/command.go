// Package command normalizes raw inbound chat text into attendance commands.
package command

import "strings"

// Name identifies a recognized command.
type Name string

const (
	CheckIn  Name = "checkin"
	CheckOut Name = "checkout"
	Status   Name = "status"
	Vacation Name = "vacation"
)

// Command is a normalized inbound command: a name and an optional free-text
// parameter.
type Command struct {
	Name  Name
	Param string
}

// HasParam reports whether free text followed the command token.
func (c *Command) HasParam() bool {
	return c.Param != ""
}

// Parse recognizes a command at the start of the message body. A leading "/"
// on the command token is accepted so slash-commands and plain messages parse
// alike. Anything else yields no command; per chat-bot etiquette the caller
// should stay silent rather than reply with an error.
func Parse(text string) (*Command, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, false
	}

	token := text
	rest := ""
	if i := strings.IndexAny(text, " \t\n"); i >= 0 {
		token, rest = text[:i], text[i+1:]
	}
	token = strings.TrimPrefix(token, "/")

	switch Name(strings.ToLower(token)) {
	case CheckIn, CheckOut, Status, Vacation:
		return &Command{
			Name:  Name(strings.ToLower(token)),
			Param: strings.TrimSpace(rest),
		}, true
	}
	return nil, false
}
