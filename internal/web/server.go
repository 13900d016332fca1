package web

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"ifc-reuse-backend/internal/logger"
	"ifc-reuse-backend/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

//go:embed templates/*.html
var templateFS embed.FS

// Options configures the page front end
type Options struct {
	APIBaseURL     string
	MaxUploadBytes int64
}

// Server renders the HTML pages and proxies form posts to the JSON API
type Server struct {
	api       *APIClient
	sessions  *SessionManager
	opts      Options
	templates map[string]*template.Template
}

// NewServer parses the embedded templates and builds the server
func NewServer(api *APIClient, sessions *SessionManager, opts Options) (*Server, error) {
	s := &Server{api: api, sessions: sessions, opts: opts}
	templates, err := s.parseTemplates()
	if err != nil {
		return nil, err
	}
	s.templates = templates
	return s, nil
}

// pageData is what every template receives
type pageData struct {
	Title   string
	User    *sessionUser
	Flashes []string
	Error   string
	Data    interface{}
}

// Routes returns the chi router for all pages
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer, requestLogger)

	r.Get("/", s.page("home.html", "Home"))
	r.Get("/about", s.page("about.html", "About"))
	r.Get("/api", s.apiPage)
	r.Get("/login", s.loginForm)
	r.Post("/login", s.login)
	r.Get("/register", s.registerForm)
	r.Post("/register", s.register)
	r.Post("/logout", s.logout)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Group(func(protected chi.Router) {
		protected.Use(s.requireLogin)
		protected.Get("/catalog", s.catalog)
		protected.Post("/catalog/{id}/reuse", s.toggleReuse)
		protected.Get("/upload", s.uploadForm)
		protected.Post("/upload", s.upload)
		protected.Get("/projects", s.projects)
	})
	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		logger.WithContext(r.Context()).WithFields(map[string]interface{}{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
			"request_id": middleware.GetReqID(r.Context()),
		}).Info("page request")
	})
}

// requireLogin redirects anonymous visitors to /login?next=<path>
func (s *Server) requireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := s.sessions.User(r); !ok {
			http.Redirect(w, r, "/login?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) parseTemplates() (map[string]*template.Template, error) {
	funcs := template.FuncMap{
		"meshLink": func(p string) string { return s.opts.APIBaseURL + p },
	}
	pages, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	out := make(map[string]*template.Template, len(pages))
	for _, p := range pages {
		name := path.Base(p)
		if name == "layout.html" {
			continue
		}
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", p)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		out[name] = t
	}
	return out, nil
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data pageData) {
	t, ok := s.templates[name]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}
	if user, ok := s.sessions.User(r); ok {
		data.User = &user
	}
	data.Flashes = s.sessions.Flashes(w, r)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := t.ExecuteTemplate(w, "layout.html", data); err != nil {
		logger.WithContext(r.Context()).WithError(err).WithField("template", name).Error("failed to render page")
	}
}

func (s *Server) page(name, title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.render(w, r, http.StatusOK, name, pageData{Title: title})
	}
}

func (s *Server) apiPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "api.html", pageData{
		Title: "API",
		Data:  map[string]string{"BaseURL": s.opts.APIBaseURL},
	})
}

// apiFailure turns an API error into a page message. An expired token logs the user out.
func (s *Server) apiFailure(w http.ResponseWriter, r *http.Request, err error) (string, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Unauthorized() {
			_ = s.sessions.Logout(w, r)
			http.Redirect(w, r, "/login?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusSeeOther)
			return "", true
		}
		return apiErr.Message, false
	}
	logger.WithContext(r.Context()).WithError(err).Error("api call failed")
	return "The API is not reachable right now. Please try again later.", false
}

type loginData struct {
	Email string
	Next  string
}

func (s *Server) loginForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "login.html", pageData{
		Title: "Log in",
		Data:  loginData{Next: r.URL.Query().Get("next")},
	})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.PostFormValue("email"))
	next := safeNext(r.PostFormValue("next"))

	resp, err := s.api.Login(r.Context(), email, r.PostFormValue("password"))
	if err != nil {
		var apiErr *APIError
		msg := "Invalid email or password"
		if !errors.As(err, &apiErr) || !apiErr.Unauthorized() {
			msg, _ = s.apiFailure(w, r, err)
		}
		s.render(w, r, http.StatusUnauthorized, "login.html", pageData{
			Title: "Log in",
			Error: msg,
			Data:  loginData{Email: email, Next: next},
		})
		return
	}

	user := sessionUser{Token: resp.AccessToken, Name: resp.User.Name, Admin: resp.User.Role == "admin"}
	if err := s.sessions.Login(w, r, user); err != nil {
		logger.WithContext(r.Context()).WithError(err).Error("failed to save session")
		http.Error(w, "failed to save session", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, next, http.StatusSeeOther)
}

type registerData struct {
	Name  string
	Email string
}

func (s *Server) registerForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "register.html", pageData{Title: "Register", Data: registerData{}})
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	form := registerData{
		Name:  strings.TrimSpace(r.PostFormValue("name")),
		Email: strings.TrimSpace(r.PostFormValue("email")),
	}
	password := r.PostFormValue("password")

	if _, err := s.api.Register(r.Context(), form.Name, form.Email, password); err != nil {
		msg, _ := s.apiFailure(w, r, err)
		s.render(w, r, http.StatusBadRequest, "register.html", pageData{Title: "Register", Error: msg, Data: form})
		return
	}

	resp, err := s.api.Login(r.Context(), form.Email, password)
	if err != nil {
		_ = s.sessions.Flash(w, r, "Registration successful. Please log in.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	user := sessionUser{Token: resp.AccessToken, Name: resp.User.Name, Admin: resp.User.Role == "admin"}
	if err := s.sessions.Login(w, r, user); err != nil {
		logger.WithContext(r.Context()).WithError(err).Error("failed to save session")
	}
	_ = s.sessions.Flash(w, r, "Registration successful!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Logout(w, r); err != nil {
		logger.WithContext(r.Context()).WithError(err).Warn("failed to clear session")
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

type catalogData struct {
	Query  url.Values
	Result *service.ComponentListResponse
}

var catalogFilters = []string{"category", "subcategory", "material", "location", "reusable", "project_id", "page", "page_size"}

func (s *Server) catalog(w http.ResponseWriter, r *http.Request) {
	user, _ := s.sessions.User(r)
	query := url.Values{}
	for _, key := range catalogFilters {
		if v := strings.TrimSpace(r.URL.Query().Get(key)); v != "" {
			query.Set(key, v)
		}
	}

	data := catalogData{Query: query}
	result, err := s.api.SearchComponents(r.Context(), user.Token, query)
	if err != nil {
		msg, handled := s.apiFailure(w, r, err)
		if handled {
			return
		}
		s.render(w, r, http.StatusBadGateway, "catalog.html", pageData{Title: "Catalog", Error: msg, Data: data})
		return
	}
	data.Result = result
	s.render(w, r, http.StatusOK, "catalog.html", pageData{Title: "Catalog", Data: data})
}

func (s *Server) toggleReuse(w http.ResponseWriter, r *http.Request) {
	user, _ := s.sessions.User(r)
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid component ID", http.StatusBadRequest)
		return
	}
	reusable, err := strconv.ParseBool(r.PostFormValue("reusable"))
	if err != nil {
		http.Error(w, "invalid reusable value", http.StatusBadRequest)
		return
	}

	back := "/catalog"
	if ret, err := url.ParseQuery(r.PostFormValue("return")); err == nil && len(ret) > 0 {
		back += "?" + ret.Encode()
	}

	component, err := s.api.SetReusable(r.Context(), user.Token, id, reusable)
	if err != nil {
		msg, handled := s.apiFailure(w, r, err)
		if handled {
			return
		}
		_ = s.sessions.Flash(w, r, "Could not update component: "+msg)
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}

	state := "not reusable"
	if component.Reusable {
		state = "reusable"
	}
	_ = s.sessions.Flash(w, r, fmt.Sprintf("%s is now marked %s.", displayName(component), state))
	http.Redirect(w, r, back, http.StatusSeeOther)
}

func displayName(c *service.ComponentResponse) string {
	if c.Name != "" {
		return c.Name
	}
	return c.GlobalID
}

type uploadData struct {
	ProjectName string
	Location    string
	MaxMiB      int64
	Result      *service.UploadResponse
}

func (s *Server) uploadForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "upload.html", pageData{
		Title: "Upload",
		Data:  uploadData{MaxMiB: s.opts.MaxUploadBytes >> 20},
	})
}

func (s *Server) upload(w http.ResponseWriter, r *http.Request) {
	user, _ := s.sessions.User(r)
	data := uploadData{MaxMiB: s.opts.MaxUploadBytes >> 20}
	fail := func(status int, msg string) {
		s.render(w, r, status, "upload.html", pageData{Title: "Upload", Error: msg, Data: data})
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes+(1<<20))
	file, header, err := r.FormFile("file")
	if err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			fail(http.StatusRequestEntityTooLarge, fmt.Sprintf("The file is larger than %d MiB.", data.MaxMiB))
			return
		}
		fail(http.StatusBadRequest, "Please choose an IFC file.")
		return
	}
	defer file.Close()

	data.ProjectName = strings.TrimSpace(r.FormValue("projectName"))
	data.Location = strings.TrimSpace(r.FormValue("location"))
	if data.ProjectName == "" {
		fail(http.StatusBadRequest, "Please enter a project name.")
		return
	}
	if !strings.EqualFold(path.Ext(header.Filename), ".ifc") {
		fail(http.StatusBadRequest, "Only .ifc files are allowed.")
		return
	}
	if header.Size > s.opts.MaxUploadBytes {
		fail(http.StatusRequestEntityTooLarge, fmt.Sprintf("The file is larger than %d MiB.", data.MaxMiB))
		return
	}

	result, err := s.api.Upload(r.Context(), user.Token, header.Filename, file, data.ProjectName, data.Location)
	if err != nil {
		msg, handled := s.apiFailure(w, r, err)
		if handled {
			return
		}
		fail(http.StatusBadGateway, msg)
		return
	}

	logger.WithContext(r.Context()).WithFields(logrus.Fields{
		"project_id": result.Data.ProjectID,
		"filename":   result.Data.Filename,
	}).Info("upload proxied")
	data.Result = result
	s.render(w, r, http.StatusOK, "upload.html", pageData{Title: "Upload", Data: data})
}

type projectsData struct {
	Projects []service.ProjectResponse
}

func (s *Server) projects(w http.ResponseWriter, r *http.Request) {
	user, _ := s.sessions.User(r)
	mine := r.URL.Query().Get("mine") == "true"

	projects, err := s.api.ListProjects(r.Context(), user.Token, mine)
	if err != nil {
		msg, handled := s.apiFailure(w, r, err)
		if handled {
			return
		}
		s.render(w, r, http.StatusBadGateway, "projects.html", pageData{
			Title: "Projects",
			Error: "Error fetching projects: " + msg,
			Data:  projectsData{},
		})
		return
	}
	s.render(w, r, http.StatusOK, "projects.html", pageData{Title: "Projects", Data: projectsData{Projects: projects}})
}

// safeNext keeps redirects on this site
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}
