// Facemeter feed watcher - tails the live websocket feed of a running
// dashboard and prints one line per sample. Useful for checking a
// session from a terminal without opening the browser dashboard.
package main

import (
	"flag"
	"fmt"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"

	"github.com/affectlab/facemeter/internal/log"
	"github.com/affectlab/facemeter/pkg/web"
)

func main() {
	addr := flag.String("addr", "localhost:8090", "dashboard host:port")
	count := flag.Int("n", 0, "number of samples to print before exiting (0 = until interrupted)")
	level := flag.String("log-level", "warn", "log level: debug, info, warn, error")
	flag.Parse()

	log.Init(*level)

	client := web.NewLiveClient(*addr)
	if err := client.Connect(); err != nil {
		stdlog.Fatalf("❌ Connect failed: %v", err)
	}
	defer client.Close()

	fmt.Printf("📡 Watching live feed at %s\n", *addr)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		client.Close()
	}()

	printed := 0
	for {
		u, err := client.Next()
		if err != nil {
			// Closed by the signal handler or the server went away.
			stdlog.Printf("Feed ended: %v", err)
			return
		}

		fmt.Printf("t=%7.1fs  confidence=%5.1f%%  nervousness=%5.1f%%  dominant=%-8s  window=%d\n",
			u.Sample.Timestamp, u.Sample.Confidence, u.Sample.Nervousness,
			u.Sample.Dominant, len(u.Window))

		printed++
		if *count > 0 && printed >= *count {
			return
		}
	}
}
