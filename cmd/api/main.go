package main

import "github.com/yigit/registrar/internal/cli"

// @title Registrar API
// @version 1.0
// @description Faculty, course and student records with enrollment management
// @BasePath /api
// @schemes http

func main() {
	cli.Execute()
}
