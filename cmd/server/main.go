package main

import "squeegee-samurai/go_backend/internal/app"

func main() {
	app.Run()
}
