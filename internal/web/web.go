// Package web serves the moodmix pages and JSON endpoints.
//
// # Routes
//
//	GET  /register, POST /register  account creation
//	GET  /login,    POST /login     credential check and session cookie
//	GET  /logout                    drops the session
//	GET  /, /webcam, /emoji         session-gated pages
//	GET  /video_feed                MJPEG stream of the mirrored camera
//	GET  /get_emotion               capture, detect and recommend
//	POST /emoji_select              recommend for a chosen emotion
//	GET  /healthz                   liveness
//
// Pages without a live session redirect to /login. The data routes answer 401 JSON instead
// when ProtectData is set, and are open otherwise.
//
// Camera and catalog failures never surface as HTTP errors. A catalog failure yields an empty
// track list and a camera failure yields {"error": "Unable to access camera"} with status 200.
package web

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/moodmix/internal/camera"
	"github.com/desertthunder/moodmix/internal/emotion"
	"github.com/desertthunder/moodmix/internal/models"
	"github.com/desertthunder/moodmix/internal/repositories"
	"github.com/desertthunder/moodmix/internal/server"
	"github.com/desertthunder/moodmix/internal/session"
)

//go:embed templates/*.html
var templateFiles embed.FS

var pages = []string{"login", "register", "index", "webcam", "emoji"}

var funcs = template.FuncMap{
	"emoji": func(e models.Emotion) string {
		switch e {
		case models.Happy:
			return "😄"
		case models.Sad:
			return "😢"
		case models.Angry:
			return "😠"
		default:
			return "😐"
		}
	},
}

// Recommender produces a recommendation for an emotion label.
type Recommender interface {
	Recommend(ctx context.Context, e models.Emotion) models.Recommendation
}

// Options wires the collaborators and policies of an [App].
type Options struct {
	Users       repositories.UserStore
	Sessions    session.Store
	Recommender Recommender
	Camera      *camera.Service // nil behaves as a service without a device
	Detector    emotion.Detector
	Logger      *log.Logger

	Cookie         session.CookieOptions
	ProtectData    bool    // gate the JSON and stream routes behind a session
	LoginRateLimit float64 // POST /login and /register attempts per second per client, 0 disables
	LoginBurst     int
}

// App holds the handlers of the web service.
type App struct {
	users       repositories.UserStore
	sessions    session.Store
	recommender Recommender
	camera      *camera.Service
	detector    emotion.Detector
	logger      *log.Logger
	cookie      session.CookieOptions
	protectData bool
	limiter     *server.RateLimiter
	templates   map[string]*template.Template
}

// New validates opts and parses the embedded templates.
func New(opts Options) (*App, error) {
	switch {
	case opts.Users == nil:
		return nil, fmt.Errorf("web: user store is required")
	case opts.Sessions == nil:
		return nil, fmt.Errorf("web: session store is required")
	case opts.Recommender == nil:
		return nil, fmt.Errorf("web: recommender is required")
	}
	if opts.Camera == nil {
		opts.Camera = camera.NewService(nil, camera.Options{})
	}
	if opts.Detector == nil {
		opts.Detector = emotion.NewRandomDetector()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	templates, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	return &App{
		users:       opts.Users,
		sessions:    opts.Sessions,
		recommender: opts.Recommender,
		camera:      opts.Camera,
		detector:    opts.Detector,
		logger:      opts.Logger,
		cookie:      opts.Cookie,
		protectData: opts.ProtectData,
		limiter:     server.NewRateLimiter(opts.LoginRateLimit, opts.LoginBurst),
		templates:   templates,
	}, nil
}

func parseTemplates() (map[string]*template.Template, error) {
	base, err := template.New("base.html").Funcs(funcs).ParseFS(templateFiles, "templates/base.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse base template: %w", err)
	}

	templates := make(map[string]*template.Template, len(pages))
	for _, name := range pages {
		t, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := t.ParseFS(templateFiles, "templates/"+name+".html"); err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		templates[name] = t
	}
	return templates, nil
}

// Router registers every route on a fresh [server.BasicRouter].
func (a *App) Router() *server.BasicRouter {
	r := server.NewBasicRouter()
	r.Use(server.Recover(a.logger), server.Logging(a.logger))

	page := a.RequireSession(false)
	data := a.RequireSession(true)
	limited := a.limiter.Middleware()

	r.HandleFunc(http.MethodGet, "/register", a.registerForm)
	r.HandleFunc(http.MethodPost, "/register", a.register, limited)
	r.HandleFunc(http.MethodGet, "/login", a.loginForm)
	r.HandleFunc(http.MethodPost, "/login", a.login, limited)
	r.HandleFunc(http.MethodGet, "/logout", a.logout)

	r.HandleFunc(http.MethodGet, "/", a.page("index"), page)
	r.HandleFunc(http.MethodGet, "/webcam", a.page("webcam"), page)
	r.HandleFunc(http.MethodGet, "/emoji", a.page("emoji"), page)

	r.Handler(a.cameraRoutes())
	r.HandleFunc(http.MethodPost, "/emoji_select", a.emojiSelect, data)

	r.HandleFunc(http.MethodGet, "/healthz", a.healthz)
	return r
}

// cameraHandler serves the endpoints that read from the capture device.
type cameraHandler struct {
	next http.Handler
}

func (a *App) cameraRoutes() *cameraHandler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /video_feed", a.videoFeed)
	mux.HandleFunc("GET /get_emotion", a.getEmotion)
	return &cameraHandler{next: server.Chain(mux, a.RequireSession(true))}
}

func (c *cameraHandler) Routes() []string {
	return []string{"/video_feed", "/get_emotion"}
}

func (c *cameraHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c.next.ServeHTTP(w, r)
}
