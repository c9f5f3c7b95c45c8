package server

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path"
	"time"

	"github.com/hoklam-ng/proclaim/app/bible"
	"github.com/hoklam-ng/proclaim/app/common"
	"github.com/hoklam-ng/proclaim/app/config"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/crypto/acme/autocert"
	"golang.org/x/time/rate"
)

// httpErrorHandler maps UserVisibleError onto its status and message and
// collapses everything else to the status text, as JSON.
func httpErrorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	msg := http.StatusText(code)

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if he.Message != nil {
			msg = fmt.Sprintf("%v", he.Message)
		}
	}

	if he, ok := err.(*common.UserVisibleError); ok {
		code = he.HttpCode
		msg = he.Message
	}

	c.Logger().Error(err)

	if !c.Response().Committed {
		if jsonErr := c.JSON(code, map[string]string{"error": msg}); jsonErr != nil {
			c.Logger().Error(jsonErr)
		}
	}
}

// wsSkipper exempts the viewer channel from per-request middleware: the
// upgrade response must not be wrapped and the connection is long-lived.
func wsSkipper(c echo.Context) bool {
	return c.Path() == "/ws"
}

func buildEcho(controller *ProclaimController,
	conf *config.ProclaimConfig, serverConf config.ServerRuntimeConfig) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = httpErrorHandler
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	var identifierExtractor middleware.Extractor

	if serverConf.BehindLoadBalancer {
		identifierExtractor = func(ctx echo.Context) (string, error) {
			return ctx.RealIP(), nil
		}
	} else {
		identifierExtractor = func(ctx echo.Context) (string, error) {
			return ctx.Request().RemoteAddr, nil
		}
	}

	// configure rate limiting if enabled
	if serverConf.RateLimit > 0 {
		limiterConfig := middleware.RateLimiterConfig{
			Skipper: middleware.DefaultSkipper,
			Store: middleware.NewRateLimiterMemoryStoreWithConfig(
				middleware.RateLimiterMemoryStoreConfig{
					Rate:      rate.Limit(serverConf.RateLimit),
					Burst:     3 * serverConf.RateLimit,
					ExpiresIn: 3 * time.Minute,
				},
			),
			IdentifierExtractor: identifierExtractor,
			ErrorHandler: func(context echo.Context, err error) error {
				return context.String(http.StatusForbidden, "Forbidden")
			},
			DenyHandler: func(context echo.Context, identifier string, err error) error {
				return context.String(http.StatusTooManyRequests, "Too Many Requests")
			},
		}

		e.Use(middleware.RateLimiterWithConfig(limiterConfig))
	}

	if serverConf.GzipLevel != 0 {
		e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
			Level:     serverConf.GzipLevel,
			MinLength: 512,
			Skipper:   wsSkipper,
		}))
	}

	if conf.TimeoutSeconds != 0 {
		e.Use(middleware.ContextTimeoutWithConfig(middleware.ContextTimeoutConfig{
			Skipper: wsSkipper,
			Timeout: time.Duration(conf.TimeoutSeconds) * time.Second,
		}))
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:   true,
		LogURI:      true,
		LogError:    true,
		LogRemoteIP: true,
		LogLatency:  conf.LogLatency,
		HandleError: true, // forwards error to the global error handler, so it can decide appropriate status code
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error == nil {
				logger.LogAttrs(context.Background(), slog.LevelInfo, "REQUEST",
					slog.String("uri", v.URI),
					slog.Int("status", v.Status),
					slog.Int64("latency_ms", v.Latency.Milliseconds()),
					slog.String("remote_ip", v.RemoteIP),
				)
			} else {
				logger.LogAttrs(context.Background(), slog.LevelError, "REQUEST_ERROR",
					slog.String("uri", v.URI),
					slog.Int("status", v.Status),
					slog.String("err", v.Error.Error()),
					slog.String("remote_ip", v.RemoteIP),
					slog.Int64("latency_ms", v.Latency.Milliseconds()),
				)
			}
			return nil
		},
	}))

	staticDir, err := fs.Sub(staticFs, "static")
	if err != nil {
		e.Logger.Fatal(err)
	}

	staticServerHashFs, err := NewHashFS(staticDir)
	if err != nil {
		e.Logger.Fatal(err)
	}

	e.Renderer = NewTemplateRenderer(conf, staticServerHashFs)

	e.GET("/static/*", echo.WrapHandler(http.StripPrefix("/static/", staticServerHashFs)))

	e.GET("/", controller.GetControlPanel)
	e.GET("/display", controller.GetDisplay)
	e.GET("/ws", controller.ConnectViewer)
	e.GET("/api/bible-books", controller.GetBibleBooks)
	e.POST("/api/bible-search", controller.SearchBible)
	e.POST("/api/hymn-search", controller.SearchHymn)
	e.GET("/api/sermon-meta", controller.GetSermonMeta)
	e.POST("/api/sermon-meta", controller.UpdateSermonMeta)
	e.GET("/api/announcements", controller.GetAnnouncements)

	return e
}

// StartServer runs the HTTP server until interrupted. On SIGINT the server
// is shut down first and the verse store closed after, so the store
// connection is released before the process exits.
func StartServer(controller *ProclaimController, store bible.VerseStore,
	conf *config.ProclaimConfig, serverConf config.ServerRuntimeConfig) {
	e := buildEcho(controller, conf, serverConf)

	addr := fmt.Sprintf("%s:%d", serverConf.Addr, serverConf.Port)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		var err error
		if serverConf.CertDir != "" {
			if serverConf.AcmeEnabled {
				slog.Info("using TLS with ACME", "dir", serverConf.CertDir)
				e.AutoTLSManager.HostPolicy = autocert.HostWhitelist(conf.Hostnames...)
				e.AutoTLSManager.Cache = autocert.DirCache(serverConf.CertDir)
				err = e.StartAutoTLS(addr)
			} else {
				slog.Info("using TLS with certDir", "dir", serverConf.CertDir)
				err = e.StartTLS(addr,
					path.Join(serverConf.CertDir, "fullchain.pem"),
					path.Join(serverConf.CertDir, "privkey.pem"))
			}
		} else {
			err = e.Start(addr)
		}
		if err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal(err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("error during server shutdown", "err", err)
	}
	if err := store.Close(); err != nil {
		slog.Error("error closing verse store", "err", err)
	} else {
		slog.Info("verse store closed")
	}
}
