package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/wsatriyadi/blogger-auto-post/internal/auth"
	"github.com/wsatriyadi/blogger-auto-post/internal/blogger"
	"github.com/wsatriyadi/blogger-auto-post/internal/config"
	"github.com/wsatriyadi/blogger-auto-post/internal/loader"
	"github.com/wsatriyadi/blogger-auto-post/internal/publisher"
)

func main() {
	titleColumn := flag.String("title-column", loader.DefaultTitleColumn, "column name for post titles")
	contentColumn := flag.String("content-column", loader.DefaultContentColumn, "column name for post content")
	labelsColumn := flag.String("labels-column", loader.DefaultLabelsColumn, "column name for post labels/tags")
	draft := flag.Bool("draft", false, "save posts as drafts instead of publishing")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
		os.Exit(1)
	}
	csvFile := flag.Arg(0)

	// Pick up a .env file when present, same as the environment itself.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Missing required configuration: %v", err)
	}

	ctx := context.Background()

	client, err := auth.New(cfg.CredentialsFile, cfg.TokenFile, nil).Client(ctx)
	if err != nil {
		log.Fatalf("Authentication failed: %v", err)
	}

	result, err := loader.LoadRecords(csvFile, loader.Mapping{
		TitleColumn:   *titleColumn,
		ContentColumn: *contentColumn,
		LabelsColumn:  *labelsColumn,
	})
	if err != nil {
		log.Fatalf("Error reading CSV file: %v", err)
	}
	log.Printf("Read %d posts from %s (%d rows skipped)", len(result.Records), csvFile, result.Skipped)

	report := publisher.Publish(ctx, blogger.NewClient(client), cfg.BlogID, result.Records, *draft)

	log.Printf("Completed batch posting. Posted %d of %d, %d failed, %d skipped",
		report.Published(), len(result.Records), report.Failed, result.Skipped)
	for i, info := range report.Posted {
		log.Printf("Post %d: %s - %s", i+1, info.Title, info.URL)
	}
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(),
		"Usage: %s [flags] <csv_file>\n\nPost content to Blogspot from a CSV file.\n\nFlags:\n", os.Args[0])
	flag.PrintDefaults()
}
