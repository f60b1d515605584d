package main

import "resourcehub/internal/app/server"

func main() {
	server.Run()
}
