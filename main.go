package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/corregedoria/procedimentos-api/api/handlers"
	"github.com/corregedoria/procedimentos-api/api/scheduler"
	"github.com/corregedoria/procedimentos-api/config"
	"github.com/corregedoria/procedimentos-api/facade"
	"github.com/corregedoria/procedimentos-api/mapamensal"
	"github.com/corregedoria/procedimentos-api/mapamensal/raster"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	serve := newServeCommand()
	cmd := &cobra.Command{
		Use:           "procedimentos-api",
		Short:         "Corregedoria procedures API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve.RunE,
	}
	cmd.AddCommand(serve, newMapaCommand())
	return cmd
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the monthly map scheduler",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), *config.New())
		},
	}
}

func serve(ctx context.Context, conf config.Config) error {
	a := handlers.App{Config: conf}
	if err := a.Initialize(ctx); err != nil { //initialize database and router
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		a.Close(closeCtx)
	}()

	var mailer scheduler.Mailer
	if conf.SendgridAPIKey != "" {
		mailer = scheduler.SendgridMailer{APIKey: conf.SendgridAPIKey, From: conf.MailFrom, Nome: "Corregedoria"}
	}
	var archiver scheduler.Archiver
	if conf.CloudinaryURL != "" {
		cld, err := scheduler.NewCloudinaryArchiver(conf.CloudinaryURL, "mapas-mensais")
		if err != nil {
			zap.S().Warnw("cloudinary archiver disabled", "error", err)
		} else {
			archiver = cld
		}
	}
	s := scheduler.NewScheduler(a.Facade, a.Exporter, mailer, archiver, conf.TiposProcesso, conf.MapaDestinatarios)
	if err := s.Start(); err != nil {
		return err
	}
	defer s.Stop()

	srv := &http.Server{
		Addr:              ":" + conf.Port,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		zap.S().Infow("procedimentos-api is up and running",
			"port", conf.Port,
			"url", conf.BaseURL,
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	zap.S().Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newMapaCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mapa",
		Short: "Monthly map operations",
	}
	cmd.AddCommand(newMapaReabrirCommand())
	return cmd
}

func newMapaReabrirCommand() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("CORREGEDORIA")
	v.AutomaticEnv()

	var outputPath string
	cmd := &cobra.Command{
		Use:   "reabrir MAPA_ID",
		Short: "Export a previously saved monthly map to PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf := config.New()
			baseURL := v.GetString("url")
			if baseURL == "" {
				baseURL = conf.BaseURL
			}
			if baseURL == "" {
				return fmt.Errorf("--url or BASE_URL is required")
			}

			client := facade.NewClient(baseURL, nil)
			if email := v.GetString("email"); email != "" {
				if err := client.Login(cmd.Context(), email, v.GetString("senha")); err != nil {
					return fmt.Errorf("login: %s", facade.Mensagem(err))
				}
			}

			rod := raster.New(conf.ChromeControlURL, 0)
			defer rod.Close()

			p := mapamensal.NewPipeline(client, mapamensal.NewExporter(rod, conf.LogoPath))
			rel, arq, err := p.Reopen(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("%s", facade.Mensagem(err))
			}

			path := outputPath
			if path == "" {
				path = arq.Nome
			} else if info, err := os.Stat(path); err == nil && info.IsDir() {
				path = filepath.Join(path, arq.Nome)
			}
			if err := os.WriteFile(path, arq.Conteudo, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d processos (%d concluídos, %d em andamento) -> %s\n",
				rel.Titulo, rel.Agregado.Total, rel.Agregado.Concluidos, rel.Agregado.EmAndamento, path)
			return nil
		},
	}
	cmd.Flags().String("url", "", "base URL of the API (env CORREGEDORIA_URL, defaults to BASE_URL)")
	cmd.Flags().String("email", "", "login email (env CORREGEDORIA_EMAIL)")
	cmd.Flags().String("senha", "", "login password (env CORREGEDORIA_SENHA)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file or directory")
	_ = v.BindPFlag("url", cmd.Flags().Lookup("url"))
	_ = v.BindPFlag("email", cmd.Flags().Lookup("email"))
	_ = v.BindPFlag("senha", cmd.Flags().Lookup("senha"))
	return cmd
}
