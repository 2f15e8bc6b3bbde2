// Package main provides spinectl, a small CLI for driving the attendance
// service from a terminal or a cron entry. Every command is a thin wrapper
// over the service's HTTP trigger surface.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

const appName = "spinectl"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var serverURL string

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Attendance service control",
		Long: `spinectl triggers attendance operations on a running service:
checking today's record, reviewing gaps, clocking in or out, and filing
swipe applications.`,
	}

	cmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "Attendance service base URL")

	cmd.AddCommand(
		simpleCmd(&serverURL, "reconcile", "Run the daily reconciliation", http.MethodPost, "/reconcile"),
		simpleCmd(&serverURL, "clock-in", "Clock in now", http.MethodPost, "/clock-in"),
		simpleCmd(&serverURL, "clock-out", "Clock out now", http.MethodPost, "/clock-out"),
		simpleCmd(&serverURL, "attendance", "Show today's attendance record", http.MethodGet, "/attendance"),
		simpleCmd(&serverURL, "gaps", "Review missing attendance days", http.MethodGet, "/gaps"),
		simpleCmd(&serverURL, "health", "Check service health", http.MethodGet, "/health"),
		swipeCmd(&serverURL),
		recentCmd(&serverURL),
	)

	return cmd
}

// simpleCmd builds a command that calls one endpoint with no request body.
func simpleCmd(serverURL *string, use, short, method, path string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return call(*serverURL, method, path, nil)
		},
	}
}

func swipeCmd(serverURL *string) *cobra.Command {
	var (
		date    string
		inTime  string
		outTime string
		reason  string
	)

	cmd := &cobra.Command{
		Use:   "swipe",
		Short: "Submit a swipe application for a missed day",
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]string{
				"date":   date,
				"reason": reason,
			}
			if inTime != "" {
				body["inTime"] = inTime
			}
			if outTime != "" {
				body["outTime"] = outTime
			}
			return call(*serverURL, http.MethodPost, "/swipes", body)
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date of the missed day, e.g. 05-Mar-2024")
	cmd.Flags().StringVar(&inTime, "in", "", "Clock-in time, e.g. 09:00 (default shift start)")
	cmd.Flags().StringVar(&outTime, "out", "", "Clock-out time, e.g. 18:00 (default shift end)")
	cmd.Flags().StringVar(&reason, "reason", "", "Reason for the correction")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("reason")

	return cmd
}

func recentCmd(serverURL *string) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "swipes",
		Short: "List recent swipe applications",
		RunE: func(cmd *cobra.Command, args []string) error {
			return call(*serverURL, http.MethodGet, fmt.Sprintf("/swipes/recent?limit=%d", limit), nil)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of applications to fetch")
	return cmd
}

// call performs one request and pretty-prints the JSON envelope. A response
// with success=false exits non-zero so cron can notice.
func call(serverURL, method, path string, body any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, serverURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := &http.Client{Timeout: 3 * time.Minute}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("call service: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "  "); err != nil {
		fmt.Println(string(raw))
	} else {
		fmt.Println(pretty.String())
	}

	if resp.StatusCode >= 300 {
		return fmt.Errorf("service returned status %d", resp.StatusCode)
	}
	return nil
}
