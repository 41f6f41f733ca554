package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/treefix50/learntube/internal/server"
	"github.com/treefix50/learntube/internal/storage"
)

func main() {
	var (
		addr     = flag.String("addr", ":8080", "listen address")
		dbPath   = flag.String("db", "learntube.db", "sqlite database path (empty disables persistence)")
		cors     = flag.Bool("cors", true, "send permissive CORS headers")
		readOnly = flag.Bool("read-only", false, "open the database read-only")
		verifyDB = flag.Bool("verify-db", false, "run a database integrity check on startup")
	)
	flag.Parse()

	var store server.LearningStore
	if *dbPath != "" {
		st, err := storage.Open(*dbPath, storage.Options{
			BusyTimeout: 5 * time.Second,
			CacheSize:   -20000,
			ReadOnly:    *readOnly,
		})
		if err != nil {
			log.Fatal(err)
		}
		defer st.Close()

		if *verifyDB {
			results, err := st.IntegrityCheck()
			if err != nil {
				log.Fatalf("integrity check failed: %v", err)
			}
			for _, result := range results {
				if result != "ok" {
					log.Fatalf("integrity check: %s", result)
				}
			}
		}
		store = st
	}

	s, err := server.New(*addr, store, *cors)
	if err != nil {
		log.Fatal(err)
	}

	// graceful-ish stop
	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		<-ch
		log.Println("shutting down...")
		_ = s.Close()
	}()

	log.Printf("LearnTube listening on http://localhost%s (db=%s)\n", *addr, *dbPath)
	log.Fatal(s.Start())
}
