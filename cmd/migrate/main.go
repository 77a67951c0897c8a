// AngelaMos | 2026
// main.go

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jdstudio/backoffice/internal/config"
	"github.com/jdstudio/backoffice/internal/db"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to config file")
		down       = flag.Bool("down", false, "roll back the most recent migration")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	if *down {
		err = db.Rollback(cfg.Database.URL)
	} else {
		err = db.Migrate(cfg.Database.URL)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "migrate:", err)
		os.Exit(1)
	}
}
