package main

import (
	"context"
	"flag"
	"log"
	"net/netip"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dnsscience/dnsdig/dnsconfig"
	"github.com/dnsscience/dnsdig/dnsmetrics"
	"github.com/dnsscience/dnsdig/internal/message"
	"github.com/dnsscience/dnsdig/internal/name"
	"github.com/dnsscience/dnsdig/internal/rr"
	"github.com/dnsscience/dnsdig/resolver"
)

var (
	target   = flag.String("target", "127.0.0.1:53", "DNS forwarder address")
	workers  = flag.Int("workers", 10, "Number of concurrent workers")
	qname    = flag.String("name", "example.com.", "Name to query")
	duration = flag.Duration("duration", 10*time.Second, "Test duration")
)

func main() {
	flag.Parse()

	endpoint, err := netip.ParseAddrPort(*target)
	if err != nil {
		log.Fatalf("invalid -target: %v", err)
	}
	owner, err := name.Parse(*qname)
	if err != nil {
		log.Fatalf("invalid -name: %v", err)
	}

	opts := dnsconfig.Default()
	opts.Servers = []netip.AddrPort{endpoint}
	opts.DiscoverFromOS = false

	res, err := resolver.NewFromOptions(opts, resolver.BuildOptions{Metrics: dnsmetrics.NewUnregistered()})
	if err != nil {
		log.Fatalf("failed to build resolver: %v", err)
	}

	log.Printf("benchmarking %s with %d workers for %v", *target, *workers, *duration)

	var count, errs uint64
	latencies := make([][]time.Duration, *workers)
	done := make(chan struct{})

	var wg sync.WaitGroup
	for w := 0; w < *workers; w++ {
		wg.Add(1)
		w := w
		go func() {
			defer wg.Done()
			question := message.Question{Name: owner, Type: rr.TypeA, Class: rr.ClassIN}
			for {
				select {
				case <-done:
					return
				default:
				}
				start := time.Now()
				_, err := res.Resolve(context.Background(), question, nil)
				elapsed := time.Since(start)
				if err != nil {
					atomic.AddUint64(&errs, 1)
					continue
				}
				atomic.AddUint64(&count, 1)
				latencies[w] = append(latencies[w], elapsed)
			}
		}()
	}

	start := time.Now()
	time.Sleep(*duration)
	close(done)
	wg.Wait()
	elapsed := time.Since(start)

	var all []time.Duration
	for _, ls := range latencies {
		all = append(all, ls...)
	}
	sort.Slice(all, func(i, j int) bool { return all[i] < all[j] })

	log.Printf("--- Results ---")
	log.Printf("Total Requests: %d", count)
	log.Printf("Total Errors:   %d", errs)
	log.Printf("Duration:       %.2fs", elapsed.Seconds())
	log.Printf("QPS:            %.2f", float64(count)/elapsed.Seconds())
	if len(all) > 0 {
		log.Printf("p50: %v  p90: %v  p99: %v", percentile(all, 0.50), percentile(all, 0.90), percentile(all, 0.99))
	}
}

func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(p * float64(len(sorted)))
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
