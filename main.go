package main

import (
	"log"

	"learnmart/config"
	"learnmart/database"
	"learnmart/server"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := server.NewApp()

	log.Printf("Stub marketplace server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
