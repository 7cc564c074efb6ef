package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/EL-K-Code/recipe-app-api/internal/testutil"
)

func main() {
	var showHelp bool
	flag.BoolVar(&showHelp, "h", false, "show help")
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to the .env file")
	flag.Parse()

	usage := `
Run a throwaway MariaDB container seeded with the recipe schema.

Usage:

testcontainers [-h] [-f ENV_FILE_PATH]

ENV_FILE_PATH: path to the .env file (DB_IMAGE selects the image)

example
  testcontainers -f /path/to/something/.env
`
	if showHelp {
		fmt.Println(usage)
		return
	}

	if envFilename != "" {
		log.Printf("Loading environment variables from %s\n", envFilename)
		if err := godotenv.Load(envFilename); err != nil {
			log.Fatalf("Failed to load environment variables: %v\n", err)
		}
	} else {
		log.Printf("No environment file specified, using current environment variables\n")
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGTSTP, syscall.SIGQUIT)

	ctx := context.Background()

	var container *testutil.DBContainer
	go func() {
		var err error
		container, err = testutil.StartMariaDB(ctx)
		if err != nil {
			log.Fatalf("Failed to create database container: %v\n", err)
		}
		log.Printf("MariaDB ready at %s:%s (database %s, user %s)\n",
			container.Host, container.Port, container.Database, container.User)
	}()

	sig := <-sigs
	log.Printf("\nReceived signal: %v, terminating container...\n", sig)
	if container != nil {
		if err := container.Terminate(ctx); err != nil {
			log.Printf("Failed to terminate container: %v\n", err)
		}
	}
}
