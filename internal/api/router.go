package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aryaman-sowilo/spine-attendance/internal/api/handler"
	"github.com/aryaman-sowilo/spine-attendance/internal/core"
)

// NewRouter sets up the gorilla/mux router and defines all trigger routes.
func NewRouter(service *core.ReconcileService) *mux.Router {

	attendanceHandler := handler.AttendanceHandler{
		Service: service,
	}

	r := mux.NewRouter()

	r.HandleFunc("/", attendanceHandler.Index).Methods(http.MethodGet)
	r.HandleFunc("/health", attendanceHandler.Health).Methods(http.MethodGet)
	r.HandleFunc("/attendance", attendanceHandler.Attendance).Methods(http.MethodGet)
	r.HandleFunc("/gaps", attendanceHandler.Gaps).Methods(http.MethodGet)
	r.HandleFunc("/swipes/recent", attendanceHandler.RecentSwipes).Methods(http.MethodGet)
	r.HandleFunc("/clock-in", attendanceHandler.ClockIn).Methods(http.MethodPost)
	r.HandleFunc("/clock-out", attendanceHandler.ClockOut).Methods(http.MethodPost)
	r.HandleFunc("/reconcile", attendanceHandler.Reconcile).Methods(http.MethodPost)
	r.HandleFunc("/swipes", attendanceHandler.SubmitSwipe).Methods(http.MethodPost)
	r.HandleFunc("/swipes/batch", attendanceHandler.SubmitBatch).Methods(http.MethodPost)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return r
}
