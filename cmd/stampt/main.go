package main

import (
	"context"
	"os"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	os.Exit(Execute(context.Background(), newApp()))
}
