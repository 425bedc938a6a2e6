package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/mushaf/internal/corpus"
	"github.com/csheth/mushaf/internal/reader"
	"github.com/csheth/mushaf/internal/tui"
)

const logEnvVar = "MUSHAF_LOG"

func main() {
	apiURL := flag.String("api", "", "scripture API endpoint (default from MUSHAF_API_URL or alquran.cloud)")
	edition := flag.String("edition", "", "text edition to fetch (default from MUSHAF_EDITION or quran-uthmani)")
	pageSize := flag.Int("page-size", reader.DefaultPageSize, "ayahs shown per page")
	timeout := flag.Duration("timeout", 30*time.Second, "HTTP timeout for the corpus request")
	noAltScreen := flag.Bool("no-alt-screen", false, "disable the alternate screen buffer")
	logPath := flag.String("log", os.Getenv(logEnvVar), "append debug logs to this file")
	flag.Parse()

	if *logPath != "" {
		f, err := tea.LogToFile(*logPath, "mushaf")
		if err != nil {
			fmt.Println("failed to open log file:", err)
			os.Exit(1)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	if *pageSize < 1 {
		fmt.Println("page size must be at least 1")
		os.Exit(2)
	}

	client, err := corpus.NewFromEnv(corpus.Config{
		Endpoint: *apiURL,
		Edition:  *edition,
		Timeout:  *timeout,
	})
	if err != nil {
		fmt.Println("invalid configuration:", err)
		os.Exit(2)
	}
	log.Printf("[reader] loading %s (edition %s, %d per page)", client.Endpoint(), client.Edition(), *pageSize)

	opts := []tea.ProgramOption{tea.WithMouseCellMotion()}
	if !*noAltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	program := tea.NewProgram(tui.New(readerConfig(client, *pageSize, *timeout)), opts...)

	if _, err := program.Run(); err != nil {
		fmt.Println("program error:", err)
		os.Exit(1)
	}
}

// readerConfig hands the -timeout value to the fetch job as well, so the
// context deadline never undercuts the HTTP client.
func readerConfig(client *corpus.Client, pageSize int, timeout time.Duration) tui.Config {
	return tui.Config{
		Loader:       client,
		PageSize:     pageSize,
		Edition:      client.Edition(),
		FetchTimeout: timeout,
	}
}
