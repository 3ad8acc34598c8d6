package main

import "github.com/DapP256/trabajo-final-uai/internal/app"

func main() {
	app.Run()
}
