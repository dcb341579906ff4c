package main

import (
	"flag"
	"log"
	"os"

	"github.com/momconnect/hub/cmd"
)

func main() {
	shouldRunMigrations := flag.Bool("migrations", false, "Run migrations")
	shouldRunServer := flag.Bool("server", false, "Run the http server")
	shouldRunWorker := flag.Bool("worker", false, "Run the task queue worker")
	flag.Parse()

	if !*shouldRunMigrations && !*shouldRunServer && !*shouldRunWorker {
		log.Fatal("expected at least one of -migrations, -server, -worker")
	}

	if *shouldRunMigrations {
		if err := cmd.RunMigrations(); err != nil {
			os.Exit(1)
		}
	}
	if *shouldRunServer {
		if err := cmd.RunServer(); err != nil {
			os.Exit(1)
		}
	}
	if *shouldRunWorker {
		if err := cmd.RunTaskQueue(); err != nil {
			os.Exit(1)
		}
	}
}
