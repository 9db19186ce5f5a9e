package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	serverURL   string
	noAutoStart bool
	rootCmd     = &cobra.Command{
		Use:   "audio-fetch",
		Short: "Audio-Fetch CLI - Extract audio from remote media URLs",
		Long:  `A command-line interface for downloading audio tracks from remote media URLs via yt-dlp.`,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:6172", "Server URL")
	rootCmd.PersistentFlags().BoolVar(&noAutoStart, "no-auto-start", false, "Don't auto-start server if not running")

	rootCmd.AddCommand(streamCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(healthCmd)
}

// ensureServer checks if server is running and starts it if needed (unless --no-auto-start)
func ensureServer() {
	if noAutoStart {
		return
	}
	if err := ensureServerRunning(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
}

// sseFrame is a decoded server-sent event: the optional event name plus the
// JSON payload carried in its data line.
type sseFrame struct {
	Event string
	Data  map[string]interface{}
}

// readSSE parses one event frame at a time from a text/event-stream body.
func readSSE(r io.Reader, handle func(sseFrame) bool) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	frame := sseFrame{}
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == "":
			if frame.Data != nil {
				if !handle(frame) {
					return nil
				}
			}
			frame = sseFrame{}
		case strings.HasPrefix(line, "event:"):
			frame.Event = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
			var data map[string]interface{}
			if err := json.Unmarshal([]byte(payload), &data); err == nil {
				frame.Data = data
			}
		}
	}
	return scanner.Err()
}

var streamCmd = &cobra.Command{
	Use:   "stream [url]",
	Short: "Download audio from a URL with live progress",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ensureServer()

		mediaURL := args[0]
		dest, _ := cmd.Flags().GetString("dest")

		q := url.Values{}
		q.Set("url", mediaURL)
		if dest != "" {
			q.Set("dest", dest)
		}

		resp, err := http.Get(serverURL + "/download/stream?" + q.Encode())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			fmt.Fprintf(os.Stderr, "Error: %s\n", string(body))
			os.Exit(1)
		}

		exitCode := 0
		err = readSSE(resp.Body, func(frame sseFrame) bool {
			switch frame.Event {
			case "complete":
				fmt.Printf("Completed: %v\n", frame.Data["filename"])
				if token, ok := frame.Data["token"]; ok && token != "" {
					fmt.Printf("Token: %v\n", token)
				}
				return false
			case "error":
				fmt.Fprintf(os.Stderr, "Error: %v\n", frame.Data["message"])
				exitCode = 1
				return false
			default:
				fmt.Printf("%v\n", frame.Data["message"])
				return true
			}
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(exitCode)
	},
}

var fetchCmd = &cobra.Command{
	Use:   "fetch [key]",
	Short: "Retrieve a downloaded audio file by filename or token",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ensureServer()

		key := args[0]
		dest, _ := cmd.Flags().GetString("dest")
		output, _ := cmd.Flags().GetString("output")

		q := url.Values{}
		if dest != "" {
			q.Set("dest", dest)
		}
		fetchURL := serverURL + "/download/" + url.PathEscape(key)
		if len(q) > 0 {
			fetchURL += "?" + q.Encode()
		}

		resp, err := http.Get(fetchURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			fmt.Fprintf(os.Stderr, "Error: %s\n", string(body))
			os.Exit(1)
		}

		if output == "" {
			output = key
		}
		file, err := os.Create(output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer file.Close()

		written, err := io.Copy(file, resp.Body)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Saved %s (%d bytes)\n", output, written)
	},
}

var browseCmd = &cobra.Command{
	Use:   "browse [path]",
	Short: "List destination directories on the server",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ensureServer()

		q := url.Values{}
		if len(args) > 0 {
			q.Set("path", args[0])
		}

		resp, err := http.Get(serverURL + "/browse?" + q.Encode())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer resp.Body.Close()

		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode != http.StatusOK {
			fmt.Fprintf(os.Stderr, "Error: %s\n", string(body))
			os.Exit(1)
		}

		var listing struct {
			Path    string `json:"path"`
			Entries []struct {
				Name string `json:"name"`
				Path string `json:"path"`
			} `json:"entries"`
		}
		json.Unmarshal(body, &listing)

		fmt.Printf("Directories under %s:\n", listing.Path)
		for _, entry := range listing.Entries {
			fmt.Printf("  %s\n", entry.Name)
		}
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past fetches",
	Run: func(cmd *cobra.Command, args []string) {
		ensureServer()
		status, _ := cmd.Flags().GetString("status")

		url := serverURL + "/api/v1/history"
		if status != "" {
			url += "?status=" + status
		}

		resp, err := http.Get(url)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer resp.Body.Close()

		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode != http.StatusOK {
			fmt.Fprintf(os.Stderr, "Error: %s\n", string(body))
			os.Exit(1)
		}

		var records []map[string]interface{}
		json.Unmarshal(body, &records)

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tURL\tSTATUS\tFILENAME\tCREATED")
		for _, r := range records {
			filename := ""
			if r["filename"] != nil {
				filename = fmt.Sprintf("%v", r["filename"])
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				truncate(fmt.Sprintf("%v", r["id"]), 8),
				truncate(fmt.Sprintf("%v", r["url"]), 40),
				r["status"],
				truncate(filename, 30),
				r["created_at"])
		}
		w.Flush()
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show fetch statistics",
	Run: func(cmd *cobra.Command, args []string) {
		ensureServer()
		resp, err := http.Get(serverURL + "/api/v1/history/stats")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer resp.Body.Close()

		body, _ := io.ReadAll(resp.Body)
		var stats map[string]interface{}
		json.Unmarshal(body, &stats)

		fmt.Println("Fetch Statistics:")
		fmt.Printf("  Total:      %v\n", stats["total"])
		fmt.Printf("  Processing: %v\n", stats["processing"])
		fmt.Printf("  Completed:  %v\n", stats["completed"])
		fmt.Printf("  Failed:     %v\n", stats["failed"])
	},
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check server health",
	Run: func(cmd *cobra.Command, args []string) {
		resp, err := http.Get(serverURL + "/health")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Server not reachable: %v\n", err)
			os.Exit(1)
		}
		defer resp.Body.Close()

		body, _ := io.ReadAll(resp.Body)
		var health map[string]interface{}
		json.Unmarshal(body, &health)

		fmt.Printf("Status:   %v\n", health["status"])
		fmt.Printf("Version:  %v\n", health["version"])
		fmt.Printf("Strategy: %v\n", health["strategy"])
	},
}

func init() {
	streamCmd.Flags().StringP("dest", "d", "", "Destination directory (relative to home)")
	fetchCmd.Flags().StringP("dest", "d", "", "Destination directory the file was saved to")
	fetchCmd.Flags().StringP("output", "o", "", "Local output path (defaults to the key)")
	historyCmd.Flags().StringP("status", "s", "", "Filter by status")
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
