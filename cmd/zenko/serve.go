package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/darch7/zenko/internal/logutil"
	"github.com/darch7/zenko/internal/retryutil"
)

type chatRequest struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the chat endpoint over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			bind := strings.TrimSpace(viper.GetString("server.bind"))
			if bind == "" {
				bind = "127.0.0.1"
			}
			port := viper.GetInt("server.port")
			if port <= 0 {
				port = 8080
			}

			logger, err := logutil.LoggerFromViper()
			if err != nil {
				return err
			}
			slog.SetDefault(logger)

			eng, err := engineFromViper(logger)
			if err != nil {
				return err
			}

			snapshotPath := strings.TrimSpace(viper.GetString("session.snapshot_path"))
			if snapshotPath != "" {
				restored, err := eng.Store().LoadSnapshot(snapshotPath)
				if err != nil {
					logger.Warn("session_snapshot_load_error", "path", snapshotPath, "error", err.Error())
				} else if restored > 0 {
					logger.Info("session_snapshot_loaded", "path", snapshotPath, "sessions", restored)
				}
			}

			saveSnapshot := func(ctx context.Context) error {
				return eng.Store().SaveSnapshot(snapshotPath)
			}

			loopCtx, stopLoop := context.WithCancel(context.Background())
			defer stopLoop()
			if snapshotPath != "" {
				if interval := viper.GetDuration("session.snapshot_interval"); interval > 0 {
					go func() {
						ticker := time.NewTicker(interval)
						defer ticker.Stop()
						for {
							select {
							case <-loopCtx.Done():
								return
							case <-ticker.C:
								if err := retryutil.Do(loopCtx, logger, "session_snapshot", 3, 2*time.Second, saveSnapshot); err != nil {
									logger.Warn("session_snapshot_save_error", "path", snapshotPath, "error", err.Error())
								}
							}
						}
					}()
				}
			}

			mux := http.NewServeMux()
			mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
				_ = json.NewEncoder(w).Encode(map[string]any{
					"ok":   true,
					"time": time.Now().Format(time.RFC3339Nano),
				})
			})
			mux.HandleFunc("/chat", func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
					return
				}
				var req chatRequest
				if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
					http.Error(w, "invalid json", http.StatusBadRequest)
					return
				}
				if strings.TrimSpace(req.UserID) == "" {
					http.Error(w, "missing user_id", http.StatusBadRequest)
					return
				}
				reply := eng.Handle(r.Context(), req.UserID, req.Message)
				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(chatResponse{Reply: reply})
			})

			addr := bind + ":" + strconv.Itoa(port)
			srv := &http.Server{
				Addr:              addr,
				Handler:           mux,
				ReadHeaderTimeout: 5 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() { errCh <- srv.ListenAndServe() }()
			logger.Info("server_start", "addr", addr, "model", viper.GetString("llm.model"))

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logger.Info("server_stop", "signal", sig.String())
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
				stopLoop()
				if snapshotPath != "" {
					if err := retryutil.Do(context.Background(), logger, "session_snapshot", 3, 2*time.Second, saveSnapshot); err != nil {
						logger.Warn("session_snapshot_save_error", "path", snapshotPath, "error", err.Error())
					} else {
						logger.Info("session_snapshot_saved", "path", snapshotPath, "sessions", eng.Store().Len())
					}
				}
				return nil
			}
		},
	}

	cmd.Flags().String("server-bind", "127.0.0.1", "Bind address.")
	cmd.Flags().Int("server-port", 8080, "HTTP port to listen on.")
	_ = viper.BindPFlag("server.bind", cmd.Flags().Lookup("server-bind"))
	_ = viper.BindPFlag("server.port", cmd.Flags().Lookup("server-port"))

	return cmd
}
