package server

import (
	"net/http"

	"github.com/VictorChidex1/eventflow/internal/checkout"
	"github.com/VictorChidex1/eventflow/internal/config"
	"github.com/VictorChidex1/eventflow/internal/tracker"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Server struct {
	cfg    config.Config
	flow   *checkout.Flow
	ledger *tracker.Tracker
}

func New(cfg config.Config, flow *checkout.Flow, ledger *tracker.Tracker) *Server {
	return &Server{cfg: cfg, flow: flow, ledger: ledger}
}

func (s *Server) Router() *gin.Engine {
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.GET("/health", s.health)

	// Redirect target the gateway sends the buyer back to.
	r.GET("/payment/verify", s.verifyReturn)

	api := r.Group("/api")
	{
		api.POST("/checkout", s.beginCheckout)
		api.GET("/payments", s.listPayments)
		api.DELETE("/payments", s.clearPayments)
		api.GET("/payments/:reference", s.paymentByReference)
		api.GET("/payments/:reference/receipt", s.downloadReceipt)
		api.GET("/events/:id/payments", s.paymentsByEvent)
		api.GET("/stats", s.stats)
	}

	return r
}

func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:    s.cfg.ListenAddr,
		Handler: s.Router(),
	}
}
