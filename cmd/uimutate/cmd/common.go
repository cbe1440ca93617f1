package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jask/uimutate/internal/config"
	"github.com/jask/uimutate/internal/dispatch"
	"github.com/jask/uimutate/internal/widget"
)

// buildRegistry creates the configured widgets on owner. It must run before
// owner starts handing widgets to other goroutines.
func buildRegistry(owner dispatch.Dispatcher, widgets []config.WidgetConfig) (*widget.Registry, error) {
	reg := widget.NewRegistry()
	for _, wc := range widgets {
		w := widget.New(owner, wc.Name)
		if wc.Label != "" {
			w.SetLabel(wc.Label)
		}
		w.SetVisible(wc.Visible)
		w.SetEnabled(wc.Enabled)
		if err := reg.Add(w); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// serveMetrics exposes reg on addr until ctx is done. An empty addr disables
// the listener.
func serveMetrics(ctx context.Context, addr string, reg *prometheus.Registry) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("metrics: %v", err)
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	log.Printf("metrics: serving on %s/metrics", addr)
}
