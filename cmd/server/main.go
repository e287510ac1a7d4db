package main

import "signup_portal/internal/cli"

func main() {
	cli.Execute()
}
