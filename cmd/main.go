package main

import "github.com/orgball2608/insta-engagement-ingest/cmd/commands"

func main() {
	commands.Execute()
}
