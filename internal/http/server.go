package http

import (
	"log"

	"credverify/internal/config"
	"credverify/internal/domain"
	registryhttp "credverify/internal/http/registry"
	verifyhttp "credverify/internal/http/verifications"
	"credverify/internal/usecase"

	"github.com/gin-gonic/gin"
)

type Server struct {
	cfg  config.Config
	r    *gin.Engine
	deps ServerDeps
}

type ServerDeps struct {
	Verifier      *usecase.VerifyCertificate
	Registry      usecase.RegistryAdmin
	Verifications usecase.VerificationReader
	Limiter       domain.RateLimiter
}

func NewServer(cfg config.Config, deps ServerDeps) *Server {
	r := gin.New()
	r.Use(gin.Recovery())

	s := &Server{cfg: cfg, r: r, deps: deps}
	s.routes()
	return s
}

func (s *Server) Run() error {
	addr := s.cfg.HTTPAddr
	if addr == "" {
		addr = ":8080"
	}
	log.Printf("credverify listening on %s", addr)
	return s.r.Run(addr)
}

// Engine exposes the router for in-process tests.
func (s *Server) Engine() *gin.Engine {
	return s.r
}

func (s *Server) routes() {
	s.r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	verifyHandler := verifyhttp.NewHandler(s.deps.Verifier, s.deps.Verifications)
	registryHandler := registryhttp.NewHandler(s.deps.Registry)

	v1 := s.r.Group("/v1")
	{
		limited := rateLimitMiddleware(s.deps.Limiter, s.cfg.RateLimitRequests, s.cfg.RateLimitWindow)
		v1.POST("/verifications", limited, verifyHandler.HandleSubmit)
		v1.GET("/verifications", verifyHandler.HandleList)
		v1.GET("/verifications/:id", verifyHandler.HandleGet)
		v1.GET("/stats", verifyHandler.HandleStats)
		v1.GET("/suspicious-activities", verifyHandler.HandleListSuspicious)

		v1.POST("/institutions", registryHandler.HandleCreateInstitution)
		v1.GET("/institutions", registryHandler.HandleListInstitutions)
		v1.POST("/certificates", registryHandler.HandleCreateCertificate)
		v1.GET("/certificates", registryHandler.HandleListCertificates)
	}
}
