package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/agenthands/persona/internal/collector"
	"github.com/agenthands/persona/internal/config"
	"github.com/agenthands/persona/internal/core"
	"github.com/agenthands/persona/internal/core/inference"
	"github.com/agenthands/persona/internal/core/model"
	"github.com/agenthands/persona/internal/llm"
	"github.com/agenthands/persona/internal/logging"
	"github.com/agenthands/persona/internal/metrics"
	"github.com/agenthands/persona/internal/render"
	"github.com/agenthands/persona/internal/store"
)

//go:embed templates/index.html
var templatesFS embed.FS

type Generator interface {
	Generate(ctx context.Context, username string) (model.Persona, error)
}

type Records interface {
	Load(id string) (model.Persona, error)
	Raw(id string) ([]byte, error)
}

type Exports interface {
	Export(ctx context.Context, p model.Persona, format render.Format) (string, error)
	Cleanup(id string)
}

type Options struct {
	Generator   Generator
	Records     Records
	Exports     Exports
	UploadDir   string
	CORSOrigins []string
	Logger      *logrus.Logger
}

type Server struct {
	Generator   Generator
	Records     Records
	Exports     Exports
	UploadDir   string
	CORSOrigins []string

	log       *logrus.Logger
	logWriter *io.PipeWriter
	closers   []func() error
}

func New(opts Options) *Server {
	log := logging.OrStandard(opts.Logger)
	return &Server{
		Generator:   opts.Generator,
		Records:     opts.Records,
		Exports:     opts.Exports,
		UploadDir:   opts.UploadDir,
		CORSOrigins: opts.CORSOrigins,
		log:         log,
		logWriter:   log.Writer(),
	}
}

// NewServer builds every component from cfg. Close releases the upload and
// export directories.
func NewServer(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Server, error) {
	logger = logging.OrStandard(logger)

	llmClient, err := llm.NewClient(ctx, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM client: %w", err)
	}

	records, err := store.NewFileStore(cfg.Server.UploadDir)
	if err != nil {
		return nil, err
	}

	workspace, err := render.NewWorkspace(cfg.Server.TempDir, render.NewChromeExporter(cfg.Export), cfg.Export.Width, cfg.Export.Height, logger)
	if err != nil {
		return nil, err
	}

	engine := inference.NewEngine(llmClient, cfg.Prompts, config.Duration(cfg.LLM.Timeout, 120*time.Second), logger)
	generator := core.NewGenerator(collector.New(cfg.Reddit, logger), engine, records, logger)

	s := New(Options{
		Generator:   generator,
		Records:     records,
		Exports:     workspace,
		UploadDir:   records.Dir(),
		CORSOrigins: cfg.Server.CORSOrigins,
		Logger:      logger,
	})
	s.closers = []func() error{workspace.Close, records.Wipe}
	return s, nil
}

// Close wipes the export workspace and every stored record, and stops the
// request log writer.
func (s *Server) Close() error {
	var errs []error
	if err := s.logWriter.Close(); err != nil {
		errs = append(errs, err)
	}
	for _, fn := range s.closers {
		if err := fn(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.LoggerWithWriter(s.logWriter), gin.Recovery())

	if len(s.CORSOrigins) > 0 {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = s.CORSOrigins
		corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
		corsConfig.AllowHeaders = []string{"Origin", "Content-Type"}
		corsConfig.ExposeHeaders = []string{"Content-Disposition"}
		r.Use(cors.New(corsConfig))
	}

	r.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/index.html")))

	r.GET("/", s.Index)
	r.POST("/generate", s.Generate)
	r.GET("/download/:id/:format", s.Download)
	if s.UploadDir != "" {
		r.Static("/temp_uploads", s.UploadDir)
	}
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func (s *Server) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", nil)
}

type GenerateRequest struct {
	Username string `json:"username" form:"username"`
}

func (s *Server) Generate(c *gin.Context) {
	var req GenerateRequest
	// An empty JSON body binds as an empty username.
	if err := c.ShouldBind(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	p, err := s.Generator.Generate(c.Request.Context(), req.Username)
	switch {
	case errors.Is(err, core.ErrEmptyUsername):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username is required"})
	case errors.Is(err, core.ErrNoData):
		c.JSON(http.StatusNotFound, gin.H{"error": "No data found for this user"})
	case err != nil:
		s.log.WithFields(logrus.Fields{
			"username": strings.TrimSpace(req.Username),
			"error":    err,
		}).Error("persona generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, p)
	}
}

func (s *Server) Download(c *gin.Context) {
	id := c.Param("id")

	format, formatErr := render.ParseFormat(c.Param("format"))
	label := string(format)
	if formatErr != nil {
		label = "unsupported"
	}

	// Unknown ids are reported before the format is checked.
	p, err := s.Records.Load(id)
	if errors.Is(err, store.ErrNotFound) {
		metrics.ExportTotal.WithLabelValues(label, "not_found").Inc()
		c.String(http.StatusNotFound, "Persona data not found")
		return
	}
	if err != nil {
		metrics.ExportTotal.WithLabelValues(label, "error").Inc()
		c.String(http.StatusInternalServerError, "Error loading persona: %v", err)
		return
	}

	if formatErr != nil {
		metrics.ExportTotal.WithLabelValues(label, "bad_request").Inc()
		c.String(http.StatusBadRequest, "Unsupported format: %s", c.Param("format"))
		return
	}

	if format == render.FormatJSON {
		raw, err := s.Records.Raw(id)
		if err != nil {
			metrics.ExportTotal.WithLabelValues(string(format), "error").Inc()
			c.String(http.StatusInternalServerError, "Error generating %s: %v", format, err)
			return
		}
		metrics.ExportTotal.WithLabelValues(string(format), "ok").Inc()
		c.Data(http.StatusOK, format.ContentType(), raw)
		return
	}

	p.ID = id
	defer s.Exports.Cleanup(id)

	path, err := s.Exports.Export(c.Request.Context(), p, format)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"id":     id,
			"format": format,
			"error":  err,
		}).Error("export failed")
		metrics.ExportTotal.WithLabelValues(string(format), "error").Inc()
		c.String(http.StatusInternalServerError, "Error generating %s: %v", format, err)
		return
	}

	metrics.ExportTotal.WithLabelValues(string(format), "ok").Inc()
	c.Header("Content-Type", format.ContentType())
	c.FileAttachment(path, fmt.Sprintf("persona_%s.%s", id, format))
}
