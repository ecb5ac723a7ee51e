package main

import "github.com/ashcraft-tech/contact-api/internal/cli"

func main() {
	cli.Execute()
}
