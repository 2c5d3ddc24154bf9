package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"imgeng/internal/adapters/config"
	"imgeng/internal/adapters/file"
	"imgeng/internal/adapters/handler"

	"github.com/fsnotify/fsnotify"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	settleTimeout   = 5 * time.Second
	shutdownTimeout = 5 * time.Second
)

var (
	cfgFile     string
	outFile     string
	metricsAddr string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal().Err(err).Msg("command failed")
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "imgeng",
		Short:         "Render responsive, lazily loaded ImageEngine images",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./imgeng.toml)")
	root.PersistentFlags().StringVarP(&outFile, "out", "o", "", "write markup to this file instead of stdout")
	root.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	if err := viper.BindPFlag("app.log_level", root.PersistentFlags().Lookup("log-level")); err != nil {
		log.Error().Err(err).Msg("could not bind log-level flag")
	}

	root.AddCommand(newRenderCmd(), newReplayCmd(), newWatchCmd())

	return root
}

func newRenderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "render",
		Short: "Mount the configured images and print their markup",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			settings, err := loadSettings()
			if err != nil {
				return err
			}

			a := newApp(settings, nil, outFile)
			defer a.close()

			if err := a.mount(settings.Images); err != nil {
				return err
			}

			return a.write()
		},
	}
}

func newReplayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "replay <script>",
		Short: "Replay scroll and resize events against the configured images",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings()
			if err != nil {
				return err
			}

			script, err := file.Read(args[0])
			if err != nil {
				return fmt.Errorf("could not read script: %w", err)
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer cancel()

			a := newApp(settings, nil, outFile)
			defer a.close()

			if err := a.mount(settings.Images); err != nil {
				return err
			}

			if err := handler.Replay(ctx, bytes.NewReader(script), a.page, a.registry); err != nil {
				return fmt.Errorf("replay failed: %w", err)
			}

			settleCtx, settleCancel := context.WithTimeout(ctx, settleTimeout)
			defer settleCancel()

			if err := a.scheduler.Drain(settleCtx); err != nil {
				return fmt.Errorf("pending evaluations did not settle: %w", err)
			}

			return a.write()
		},
	}
}

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-render whenever the config file changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := loadSettings()
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer cancel()

			var reg *prometheus.Registry
			if metricsAddr != "" {
				reg = prometheus.NewRegistry()
			}

			a := newApp(settings, registerer(reg), outFile)
			defer a.close()

			if err := a.mount(settings.Images); err != nil {
				return err
			}
			if err := a.write(); err != nil {
				return err
			}

			viper.OnConfigChange(func(e fsnotify.Event) {
				log.Info().Str("file", e.Name).Msg("config changed, reloading")

				next, err := config.Load(viper.GetViper())
				if err != nil {
					log.Error().Err(err).Msg("invalid config, keeping previous settings")
					return
				}
				zerolog.SetGlobalLevel(next.LogLevel)

				a.reload(next)

				settleCtx, settleCancel := context.WithTimeout(ctx, settleTimeout)
				defer settleCancel()
				if err := a.scheduler.Drain(settleCtx); err != nil {
					log.Warn().Err(err).Msg("pending evaluations did not settle")
				}

				if err := a.write(); err != nil {
					log.Error().Err(err).Msg("failed to write markup")
				}
			})
			viper.WatchConfig()

			if reg != nil {
				go serveMetrics(ctx, reg)
			}

			log.Info().Msg("watching config")
			<-ctx.Done()
			log.Info().Msg("shutting down")

			return nil
		},
	}

	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")

	return cmd
}

// registerer keeps a nil registry from turning into a non-nil interface.
func registerer(reg *prometheus.Registry) prometheus.Registerer {
	if reg == nil {
		return nil
	}
	return reg
}

func serveMetrics(ctx context.Context, reg *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	srv := &http.Server{Addr: metricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info().Str("addr", metricsAddr).Msg("serving metrics")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("metrics server failed")
	}
}

func loadSettings() (*config.Settings, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("imgeng")
		viper.SetConfigType("toml")
	}

	log.Info().Msg("reading config file...")
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("could not read config file: %w", err)
	}

	settings, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}

	zerolog.SetGlobalLevel(settings.LogLevel)

	return settings, nil
}
