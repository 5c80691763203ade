package main

import "slackexport/internal/app"

func main() {
	app.Run()
}
