package main

import (
	"context"
	"net"
	"net/http"

	chi "github.com/go-chi/chi/v5"
	"github.com/spf13/afero"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/Zzz0801/iNews/internal/config"
	handler "github.com/Zzz0801/iNews/internal/handler/v1"
	"github.com/Zzz0801/iNews/internal/newsapi"
	"github.com/Zzz0801/iNews/internal/service"
	"github.com/Zzz0801/iNews/internal/storage"
	"github.com/Zzz0801/iNews/pkg/httputils"
)

func NewConfig() (config.Config, error) {
	return config.LoadConfig(".")
}

func NewLogger() (*zap.Logger, error) {
	return zap.NewProduction()
}

func NewFilesystem() afero.Fs {
	return afero.NewOsFs()
}

type NewRouterParams struct {
	fx.In

	Handlers []httputils.Handler `group:"handlers"`
}

func NewRouter(params NewRouterParams) chi.Router {
	router := chi.NewRouter()
	for _, h := range params.Handlers {
		h.OnRouter(router)
	}
	return router
}

type StartHTTPServerParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    config.Config
	Router    chi.Router
	Log       *zap.Logger
}

func StartHTTPServer(params StartHTTPServerParams) {
	server := &http.Server{Handler: params.Router}

	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			listener, err := net.Listen("tcp", ":"+params.Config.Port)
			if err != nil {
				return err
			}
			if params.Config.NewsAPIKey == "" {
				params.Log.Warn("NEWS_API_KEY is empty, feed will serve placeholder content")
			}
			params.Log.Info("http server listening", zap.String("port", params.Config.Port))
			go server.Serve(listener)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return server.Shutdown(ctx)
		},
	})
}

func main() {
	fx.New(
		fx.Provide(
			NewConfig,
			NewLogger,
			NewFilesystem,

			storage.NewStore,
			newsapi.NewClient,

			service.NewFeedService,
			service.NewEngagementService,
			service.NewAccountService,

			httputils.AsHandler(`group:"handlers"`, handler.NewFeedHandler),
			httputils.AsHandler(`group:"handlers"`, handler.NewArticleHandler),
			httputils.AsHandler(`group:"handlers"`, handler.NewAccountHandler),
			httputils.AsHandler(`group:"handlers"`, handler.NewSpaHandler),

			NewRouter,
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(StartHTTPServer),
	).Run()
}
