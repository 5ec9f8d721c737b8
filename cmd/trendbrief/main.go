package main

import (
	"trendbrief/cmd/handlers"
	"trendbrief/internal/logger"
)

func main() {
	logger.Init()
	handlers.Execute()
}
