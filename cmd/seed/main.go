package main

import (
	"context"
	"flag"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/lucasmr/fitdiario/internal/diet"
	"github.com/lucasmr/fitdiario/internal/persistence"
	"github.com/lucasmr/fitdiario/internal/training"
	"github.com/lucasmr/fitdiario/internal/water"
	"github.com/lucasmr/fitdiario/internal/weight"
)

// Seeds a store file with the starter catalogs, templates and history,
// so a fresh deployment starts with usable data instead of empty screens.
func main() {
	storePath := flag.String("store", "./data/fitdiario.json", "path of the store file to seed")
	force := flag.Bool("force", false, "overwrite keys that already hold data")
	flag.Parse()

	store, err := persistence.NewFileStore(*storePath)
	if err != nil {
		log.Fatalf("open store: %s", err)
	}

	seeded := 0
	seed := func(key string, v any) {
		if !*force {
			var existing any
			if store.Load(key, &existing) {
				log.Warnf("key [%s] already set, skipping (use -force to overwrite)", key)
				return
			}
		}
		store.Save(key, v)
		seeded++
		log.Infof("seeded [%s]", key)
	}

	seed(diet.KeyCatalog, diet.SeedCatalog())
	seed(diet.KeyWeekly, diet.SeedWeekly())
	seed(water.KeyConfig, water.DefaultConfig())
	seed(water.KeyHistory, water.SeedHistory())
	seed(training.KeyCatalog, training.SeedCatalog())
	seed(training.KeyCardioCatalog, training.SeedCardioCatalog())
	seed(training.KeyTemplate, training.SeedTemplate())
	seed(training.KeyPreferences, training.DefaultPreferences())
	seed(weight.KeyConfig, weight.SeedConfig())
	seed(weight.KeyEntries, weight.SeedEntries())

	if err := store.Flush(context.Background()); err != nil {
		log.Fatalf("flush store: %s", err)
	}

	fmt.Printf("done, %d keys seeded into %s\n", seeded, *storePath)
}
