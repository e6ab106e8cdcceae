package main

import (
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"languremontas.com/web/internal/config"
	"languremontas.com/web/internal/content"
	"languremontas.com/web/internal/handlers"
	"languremontas.com/web/internal/i18n"
	"languremontas.com/web/internal/middleware"
	"languremontas.com/web/internal/render"
	"languremontas.com/web/internal/sitemap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log, err := newLogger(cfg.Dev)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	store := content.NewStore(os.DirFS(cfg.ContentDir), log)
	resolver := content.NewResolver(store, log)

	// The routes table is the backbone of every lookup; refusing to start
	// without it beats serving a site where nothing resolves.
	routes, err := store.Routes()
	if err != nil {
		log.Fatal("load routes config", zap.Error(err))
	}
	locales := i18n.New(routes.DefaultLocale, routes.SupportedLocales)

	app, err := newApp(cfg, log)
	if err != nil {
		log.Fatal("parse templates", zap.Error(err))
	}

	h := &handlers.Handlers{
		Resolver:   resolver,
		Locales:    locales,
		BaseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		Analytics:  cfg.Analytics,
		Log:        log,
		Render:     app.render,
		Components: app.renderer,
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/sitemap.xml", func(w http.ResponseWriter, req *http.Request) {
		body, err := sitemap.Generate(req.Context(), resolver, h.BaseURL)
		if err != nil {
			log.Error("generate sitemap", zap.Error(err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/xml; charset=utf-8")
		_, _ = w.Write(body)
	})
	r.Get("/robots.txt", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write(sitemap.Robots(h.BaseURL))
	})

	assets := http.StripPrefix("/assets/", http.FileServer(http.Dir(filepath.Join(cfg.PublicDir, "assets"))))
	r.Handle("/assets/*", assets)

	// Bare root redirects into the default locale tree.
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/"+locales.Fallback(), http.StatusFound)
	})

	r.Route("/{locale}", func(r chi.Router) {
		r.Use(middleware.Locale(locales))
		r.Get("/", h.Home)
		r.Get("/*", h.Dynamic)
	})
	r.NotFound(h.NotFound)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Info("web listening",
		zap.String("addr", cfg.Addr),
		zap.String("defaultLocale", locales.Fallback()),
		zap.Bool("dev", cfg.Dev))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("listen", zap.Error(err))
	}
}

func newLogger(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// app owns the parsed template set. In production templates are parsed once
// at startup; in dev mode every request reparses so edits show up without a
// restart.
type app struct {
	cfg *config.Config
	log *zap.Logger

	once  sync.Once
	tmpl  *template.Template
	comps *render.Renderer
	err   error
}

func newApp(cfg *config.Config, log *zap.Logger) (*app, error) {
	a := &app{cfg: cfg, log: log}
	if !cfg.Dev {
		if err := a.load(); err != nil {
			return nil, err
		}
	}
	return a, nil
}

func (a *app) load() error {
	a.once.Do(func() {
		a.tmpl, a.err = parseTemplates(a.cfg.TemplatesDir)
		if a.err != nil {
			return
		}
		a.comps, a.err = render.NewRenderer(a.tmpl, a.log)
	})
	return a.err
}

func (a *app) current() (*template.Template, *render.Renderer, error) {
	if a.cfg.Dev {
		tmpl, err := parseTemplates(a.cfg.TemplatesDir)
		if err != nil {
			return nil, nil, err
		}
		comps, err := render.NewRenderer(tmpl, a.log)
		if err != nil {
			return nil, nil, err
		}
		return tmpl, comps, nil
	}
	if err := a.load(); err != nil {
		return nil, nil, err
	}
	return a.tmpl, a.comps, nil
}

func (a *app) renderer() (*render.Renderer, error) {
	_, comps, err := a.current()
	return comps, err
}

// render executes the base layout for a page view model.
func (a *app) render(w http.ResponseWriter, r *http.Request, data *handlers.PageData) {
	tmpl, _, err := a.current()
	if err != nil {
		a.log.Error("templates unavailable", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if data.Status != 0 && data.Status != http.StatusOK {
		w.WriteHeader(data.Status)
	}
	if err := tmpl.ExecuteTemplate(w, "base", data); err != nil {
		a.log.Error("execute base template", zap.Error(err))
	}
}

// parseTemplates discovers and parses every .tmpl file under dir. ParseGlob
// does not recurse, so the walk collects files first.
func parseTemplates(dir string) (*template.Template, error) {
	funcMap := template.FuncMap{
		"now":      time.Now,
		"markdown": render.Markdown,
		"safehtml": render.SafeHTML,
		// structured data is marshalled server-side; bypass the JS escaper
		"jsonld": func(s string) template.JS { return template.JS(s) },
	}
	var files []string
	if err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".tmpl") {
			files = append(files, path)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no templates found under %s", dir)
	}
	return template.New("_root").Funcs(funcMap).ParseFiles(files...)
}
