package main

import "fmt"

// Run executes the whoami command.
func (c *WhoamiCmd) Run(deps *Dependencies) error {
	session := deps.Service.Session(deps.Ctx)
	if !session.LoggedIn() {
		fmt.Fprintln(deps.Stdout, "Not logged in")
		return nil
	}

	theme := "day"
	if session.PrefersNightMode {
		theme = "night"
	}
	fmt.Fprintf(deps.Stdout, "Logged in, %s mode\n", theme)
	return nil
}
