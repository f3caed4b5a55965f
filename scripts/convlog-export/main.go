// Command convlog-export dumps the SQLite conversation log as JSON lines,
// for feeding tutoring transcripts into offline analysis.
//
// Usage:
//
//	go run scripts/convlog-export/main.go -db ./conversations.db [-lesson Area_Circle] [-limit 500]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"video-tutor/internal/convlog"
	"video-tutor/pkg/log"
)

func main() {
	dbPath := flag.String("db", "conversations.db", "path to the conversation log database")
	lessonID := flag.String("lesson", "", "only export exchanges for this lesson")
	userID := flag.String("user", "", "only export exchanges for this user")
	limit := flag.Int("limit", 1000, "maximum number of exchanges to export")
	flag.Parse()

	logger := log.Init(log.ZapConfig{Level: "warn", Mode: "production", Encoding: "console"})
	ctx := context.Background()

	store, err := convlog.New(logger, *dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open %s: %v\n", *dbPath, err)
		os.Exit(1)
	}
	defer store.Close()

	var records []convlog.Record
	switch {
	case *lessonID != "":
		records, err = store.ByLesson(ctx, *lessonID, *limit)
	case *userID != "":
		records, err = store.ByUser(ctx, *userID, *limit)
	default:
		records, err = store.Recent(ctx, *limit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "query: %v\n", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			fmt.Fprintf(os.Stderr, "encode: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Fprintf(os.Stderr, "exported %d exchanges\n", len(records))
}
