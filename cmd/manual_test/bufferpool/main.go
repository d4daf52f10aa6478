package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/tuannm99/novabuf/internal"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config (optional)")
	pages := flag.Int("pages", 8, "Number of pages to allocate")
	flag.Parse()

	cfg, err := internal.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	file, err := cfg.OpenFile("manual_test")
	if err != nil {
		log.Fatalf("Failed to open file: %v", err)
	}

	pool := cfg.NewPool()

	// One marker per page; once pages > frames the pool starts evicting.
	for i := range *pages {
		h, err := pool.AllocatePage(file)
		if err != nil {
			log.Fatalf("Failed to allocate page %d: %v", i, err)
		}
		buf, err := pool.Bytes(h)
		if err != nil {
			log.Fatalf("Failed to access page %d: %v", h.PageID, err)
		}
		copy(buf, fmt.Sprintf("page-%d", h.PageID))
		if err := pool.Unpin(file, h.PageID, true); err != nil {
			log.Fatalf("Failed to unpin page %d: %v", h.PageID, err)
		}
	}

	if err := pool.Dump(os.Stdout); err != nil {
		log.Fatalf("Failed to dump pool: %v", err)
	}
	if err := pool.FlushFile(file); err != nil {
		log.Fatalf("Failed to flush file: %v", err)
	}

	st := pool.Stats()
	fmt.Printf("accesses=%d hits=%d reads=%d writes=%d\n", st.Accesses, st.Hits, st.DiskReads, st.DiskWrites)

	if err := pool.Close(); err != nil {
		log.Fatalf("Failed to close pool: %v", err)
	}
}
