package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pzverkov/sionic/internal/constants"
	"github.com/pzverkov/sionic/pkg/crypto"
	"github.com/pzverkov/sionic/pkg/keyexchange"
	"github.com/pzverkov/sionic/pkg/stream"
)

func benchCommand() {
	fs := flag.NewFlagSet("bench", flag.ExitOnError)
	keyExchanges := fs.Int("keyexchanges", 0, "Number of hybrid key exchanges to benchmark (0 = skip)")
	throughput := fs.Bool("throughput", false, "Run channel throughput benchmark")
	size := fs.String("size", "100MB", "Data size for throughput test (e.g., 100MB, 1GB)")
	cipherSuite := fs.String("cipher", "aes-gcm", "Cipher suite: aes-gcm or chacha20")

	fs.Usage = func() {
		fmt.Println(`USAGE: sionic bench [options]

Run performance benchmarks for hybrid key exchange and channel throughput.

OPTIONS:`)
		fs.PrintDefaults()
		fmt.Println(`
EXAMPLES:
    # Benchmark 100 key exchanges
    sionic bench --keyexchanges 100

    # Benchmark channel throughput
    sionic bench --throughput --size 500MB

    # Run both
    sionic bench --keyexchanges 100 --throughput --size 1GB --cipher chacha20`)
	}
	_ = fs.Parse(os.Args[2:])

	fmt.Println("╔═══════════════════════════════════════════════════════════╗")
	fmt.Println("║      sionic Benchmark                                    ║")
	fmt.Println("║      Hybrid key exchange: ML-KEM-1024 + X25519           ║")
	fmt.Println("╚═══════════════════════════════════════════════════════════╝")
	fmt.Println()

	if *keyExchanges == 0 && !*throughput {
		fmt.Println("No benchmarks specified. Use --keyexchanges or --throughput")
		fmt.Println("Run 'sionic bench --help' for usage")
		os.Exit(1)
	}

	if *keyExchanges > 0 {
		benchKeyExchanges(*keyExchanges)
		fmt.Println()
	}

	if *throughput {
		suite, err := parseCipherSuite(*cipherSuite)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		benchThroughput(parseSize(*size), suite)
	}
}

func benchKeyExchanges(count int) {
	fmt.Printf("Benchmarking hybrid key exchanges (%d iterations)\n", count)
	fmt.Println(strings.Repeat("─", 60))

	durations := make([]time.Duration, count)
	errors := 0

	startTime := time.Now()
	for i := 0; i < count; i++ {
		start := time.Now()

		recipient, err := keyexchange.GenerateKeyPair()
		if err != nil {
			errors++
			continue
		}
		ct, secret, err := keyexchange.Encapsulate(recipient.PublicKey())
		if err != nil {
			errors++
			continue
		}
		if _, err := keyexchange.Decapsulate(ct, recipient); err != nil {
			errors++
			continue
		}
		if _, _, err := keyexchange.ChannelKeyNonce(secret); err != nil {
			errors++
			continue
		}

		durations[i] = time.Since(start)

		step := count / 10
		if step == 0 {
			step = 1
		}
		if (i+1)%step == 0 || i == count-1 {
			fmt.Printf("Progress: %d/%d (%.0f%%)\r", i+1, count, float64(i+1)/float64(count)*100)
		}
	}
	fmt.Println()
	totalTime := time.Since(startTime)

	printKeyExchangeResults(count, count-errors, errors, totalTime, durations)
}

func printKeyExchangeResults(total, successful, failed int, totalTime time.Duration, durations []time.Duration) {
	if failed == total {
		fmt.Fprintln(os.Stderr, "All key exchanges failed")
		os.Exit(1)
	}

	var sum, min, max time.Duration
	min = time.Hour

	for _, d := range durations {
		if d == 0 {
			continue
		}
		sum += d
		if d < min {
			min = d
		}
		if d > max {
			max = d
		}
	}

	avg := sum / time.Duration(successful)

	fmt.Println("\nResults:")
	fmt.Printf("  Total key exchanges: %d\n", total)
	fmt.Printf("  Successful: %d\n", successful)
	fmt.Printf("  Failed: %d\n", failed)
	fmt.Printf("  Total time: %v\n", totalTime)
	fmt.Println()
	fmt.Println("Key Exchange Performance:")
	fmt.Printf("  Average: %v\n", avg)
	fmt.Printf("  Minimum: %v\n", min)
	fmt.Printf("  Maximum: %v\n", max)
	fmt.Printf("  Throughput: %.2f exchanges/sec\n", float64(successful)/totalTime.Seconds())
}

func benchThroughput(totalBytes int64, suite constants.CipherSuite) {
	fmt.Printf("Benchmarking channel throughput\n")
	fmt.Println(strings.Repeat("─", 60))
	fmt.Printf("Target: %s, cipher %s\n\n", formatSize(totalBytes), suite)

	key := make([]byte, constants.KeyLen)
	nonce := make([]byte, constants.UserNonceLen)
	if err := crypto.SecureRandom(key); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := crypto.SecureRandom(nonce); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	enc, err := stream.NewEncWriter(io.Discard, key, nonce, nil, stream.WithCipherSuite(suite))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	chunkSize := 1 << 16
	chunk := make([]byte, chunkSize)
	for i := range chunk {
		chunk[i] = byte(i % 256)
	}

	var sent int64
	lastProgress := time.Now()
	start := time.Now()
	for sent < totalBytes {
		if _, err := enc.Write(chunk); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		sent += int64(len(chunk))

		if time.Since(lastProgress) >= time.Second {
			elapsed := time.Since(start)
			mbps := float64(sent) / elapsed.Seconds() / 1024 / 1024
			fmt.Printf("Progress: %s / %s (%.1f MB/s)\r", formatSize(sent), formatSize(totalBytes), mbps)
			lastProgress = time.Now()
		}
	}
	if err := enc.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	duration := time.Since(start)

	fmt.Println()
	fmt.Println("\nResults:")
	fmt.Printf("  Data sealed: %s\n", formatSize(sent))
	fmt.Printf("  Duration: %v\n", duration)

	mbps := float64(sent) / duration.Seconds() / 1024 / 1024
	fmt.Printf("  Throughput: %.2f MB/s (%.2f Mbps)\n", mbps, mbps*8)
	printThroughputRating(mbps)
}

func printThroughputRating(mbps float64) {
	fmt.Println()
	switch {
	case mbps > 500:
		fmt.Println("✓ Performance: Excellent (> 500 MB/s)")
	case mbps > 200:
		fmt.Println("✓ Performance: Good (> 200 MB/s)")
	case mbps > 50:
		fmt.Println("✓ Performance: Acceptable (> 50 MB/s)")
	default:
		fmt.Println("⚠ Performance: May need optimization (< 50 MB/s)")
	}
}

func parseSize(s string) int64 {
	var value int64
	var unit string
	_, _ = fmt.Sscanf(s, "%d%s", &value, &unit)

	switch unit {
	case "KB", "kb", "K", "k":
		return value * 1024
	case "MB", "mb", "M", "m":
		return value * 1024 * 1024
	case "GB", "gb", "G", "g":
		return value * 1024 * 1024 * 1024
	default:
		return value
	}
}

func formatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	units := []string{"KB", "MB", "GB", "TB"}
	return fmt.Sprintf("%.2f %s", float64(bytes)/float64(div), units[exp])
}
