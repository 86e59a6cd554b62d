package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/BrunoTulio/logr"

	"github.com/automationz/ftpsnap/internal/config"
	"github.com/automationz/ftpsnap/internal/scheduler"
	"github.com/automationz/ftpsnap/internal/snapshot"
	"github.com/automationz/ftpsnap/internal/utils"
)

type Server struct {
	scheduler *scheduler.Scheduler
	config    *config.Config
	log       logr.Logger
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /status", s.handleStatus)
	mux.HandleFunc("GET /jobs", s.handleJobs)
	mux.HandleFunc("GET /snapshots/{job}", s.handleSnapshots)

	mux.ServeHTTP(w, r)
}

func New(
	cfg *config.Config,
	scheduler *scheduler.Scheduler,
	log logr.Logger,
) http.Handler {
	return &Server{
		scheduler: scheduler,
		config:    cfg,
		log:       log,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "OK"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	jobs := s.scheduler.Status(now)

	running := 0
	for _, j := range jobs {
		if j.InFlight {
			running++
		}
	}

	resp := map[string]any{
		"running_jobs": running,
		"jobs":         jobs,
		"timestamp":    now.UTC(),
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func (s *Server) handleJobs(w http.ResponseWriter, r *http.Request) {
	out := make([]map[string]any, 0, len(s.config.Jobs))
	for _, job := range s.config.Jobs {
		out = append(out, map[string]any{
			"name":          job.Name,
			"enabled":       job.Enabled,
			"profile":       job.Profile,
			"remote_source": job.RemoteSource,
			"local_target":  job.LocalTarget,
			"schedule":      job.Schedule,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"jobs": out})
}

func (s *Server) handleSnapshots(w http.ResponseWriter, r *http.Request) {
	jobName := r.PathValue("job")
	job, ok := s.config.FindJob(jobName)
	if !ok {
		http.Error(w, fmt.Sprintf("job '%s' not found", jobName), http.StatusBadRequest)
		return
	}

	snaps, err := snapshot.List(job.LocalTarget, job.Name)
	if err != nil {
		s.log.Errorf("snapshot list failed: %v", err)
		http.Error(w, "failed to list snapshots", http.StatusInternalServerError)
		return
	}

	snapsResp := make([]map[string]any, len(snaps))
	for i, snap := range snaps {
		snapsResp[i] = map[string]any{
			"short_id":   snap.ShortID,
			"name":       snap.Name,
			"files":      snap.Files,
			"size_bytes": snap.Bytes,
			"size_human": utils.FormatBytes(snap.Bytes),
			"mod_time":   snap.ModTime.Format(time.RFC3339),
		}
	}

	response := map[string]interface{}{
		"job":       jobName,
		"count":     len(snaps),
		"snapshots": snapsResp,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(response)
}
