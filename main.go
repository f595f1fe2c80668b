package main

import "couple-companion-backend/cmd"

func main() {
	cmd.Run()
}
