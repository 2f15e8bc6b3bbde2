// A mock automation sidecar for local development. It serves canned portal
// pages so the service can be exercised without a browser or a portal login.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

type container struct {
	Selector string `json:"selector,omitempty"`
	Text     string `json:"text"`
	HTML     string `json:"html,omitempty"`
}

type page struct {
	Containers []container `json:"containers"`
	BodyText   string      `json:"bodyText"`
}

type card struct {
	DateText        string `json:"dateText"`
	DayText         string `json:"dayText"`
	InTime          string `json:"inTime"`
	OutTime         string `json:"outTime"`
	Reason          string `json:"reason"`
	RequestType     string `json:"requestType"`
	StatusIndicator string `json:"statusIndicator"`
}

func todayPage() page {
	today := time.Now().Format("02/01/2006")
	return page{
		Containers: []container{
			{
				Selector: ".attendance-summary",
				Text:     fmt.Sprintf("Attendance for %s: clocked in at 9:12 AM", today),
			},
		},
		BodyText: fmt.Sprintf("Welcome back. Today is %s.", today),
	}
}

func historyPages(startRaw, endRaw string) (map[string]page, error) {
	const layout = "02-Jan-2006"
	start, err := time.Parse(layout, startRaw)
	if err != nil {
		return nil, fmt.Errorf("bad start date: %w", err)
	}
	end, err := time.Parse(layout, endRaw)
	if err != nil {
		return nil, fmt.Errorf("bad end date: %w", err)
	}

	days := make(map[string]page)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		// Leave every fifth day without times so the gap review finds work.
		if d.Day()%5 == 0 {
			days[d.Format(layout)] = page{BodyText: "No records found."}
			continue
		}
		days[d.Format(layout)] = page{
			Containers: []container{
				{Text: fmt.Sprintf("%s in: 9:05 AM out: 6:20 PM", d.Format("02/01/2006"))},
			},
		}
	}
	return days, nil
}

func main() {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	mux.HandleFunc("GET /attendance/today", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(todayPage())
	})

	mux.HandleFunc("GET /attendance/history", func(w http.ResponseWriter, r *http.Request) {
		days, err := historyPages(r.URL.Query().Get("start"), r.URL.Query().Get("end"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(days)
	})

	mux.HandleFunc("GET /swipes/recent", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]card{
			{
				DateText:        time.Now().AddDate(0, 0, -5).Format("02-Jan-2006"),
				DayText:         "Monday",
				InTime:          "09:00",
				OutTime:         "18:00",
				Reason:          "Forgot to swipe",
				RequestType:     "Attendance Regularization",
				StatusIndicator: "pending",
			},
		})
	})

	mux.HandleFunc("POST /swipes", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Bad request", http.StatusBadRequest)
			return
		}
		log.Printf("Received swipe submission: %v", req)
		json.NewEncoder(w).Encode(map[string]any{"success": true, "message": "Swipe application submitted"})
	})

	mux.HandleFunc("POST /clock-in", func(w http.ResponseWriter, r *http.Request) {
		log.Println("Clock-in pressed")
		w.WriteHeader(http.StatusOK)
	})

	mux.HandleFunc("POST /clock-out", func(w http.ResponseWriter, r *http.Request) {
		log.Println("Clock-out pressed")
		w.WriteHeader(http.StatusOK)
	})

	log.Println("Driver mock server starting on port 8090...")
	log.Fatal(http.ListenAndServe(":8090", mux))
}
