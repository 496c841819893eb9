package main

import (
	"flag"
	"fmt"

	"contentgenius/internal/app/catalog"
	"contentgenius/internal/app/config"
	"contentgenius/internal/app/repository"

	"github.com/sirupsen/logrus"
)

func main() {
	list := flag.Bool("list", false, "print the active content templates after migrating")
	skipSeed := flag.Bool("skip-seed", false, "only migrate the schema")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// repository.New runs AutoMigrate for every model
	repo, err := repository.New(cfg.DB.Driver, cfg.DB.DSN)
	if err != nil {
		logrus.Fatalf("Failed to migrate database: %v", err)
	}
	defer repo.Close()
	logrus.Infof("Database migration completed successfully (%s)", cfg.DB.Driver)

	if !*skipSeed {
		if err := repo.Seed(catalog.DefaultTemplates(), nil); err != nil {
			logrus.Fatalf("Failed to seed catalog: %v", err)
		}
	}

	if *list {
		templates, err := repo.GetActiveTemplates()
		if err != nil {
			logrus.Fatalf("Failed to get templates: %v", err)
		}
		fmt.Println("Content templates in database:")
		for _, tpl := range templates {
			fmt.Printf("ID: %d, Type: %s, Words: %d, Price: %.2f\n", tpl.ID, tpl.ContentType, tpl.DefaultWordCount, tpl.BasePrice)
		}
	}
}
