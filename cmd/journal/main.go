// Package main is the command-line entry point for the degen journal: it
// serves the HTTP API, runs database migrations and prints progress.
package main

func main() {
	Execute()
}
