package server

import (
	"fmt"
	"net/http"

	"github.com/VictorChidex1/eventflow/internal/domain"
	"github.com/VictorChidex1/eventflow/internal/receipt"
	"github.com/gin-gonic/gin"
)

type checkoutRequest struct {
	Email        string `json:"email" binding:"required"`
	Amount       int64  `json:"amount" binding:"required,gt=0"`
	EventID      string `json:"eventId" binding:"required"`
	TicketID     string `json:"ticketId"`
	Quantity     int    `json:"quantity"`
	CustomerName string `json:"customerName"`
	EventTitle   string `json:"eventTitle"`
}

// beginCheckout opens a session and drives it to the redirect. The
// response carries the gateway's hosted-page URL for the client to
// navigate to; on failure the client stays where it is and shows the
// message.
func (s *Server) beginCheckout(c *gin.Context) {
	var body checkoutRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email, amount and eventId are required"})
		return
	}

	quantity := body.Quantity
	if quantity == 0 {
		quantity = 1
	}

	session := s.flow.Open(domain.PaymentRequest{
		Email:        body.Email,
		Amount:       body.Amount,
		EventID:      body.EventID,
		TicketID:     body.TicketID,
		Quantity:     quantity,
		CustomerName: body.CustomerName,
		EventTitle:   body.EventTitle,
	})

	if err := s.flow.Submit(c.Request.Context(), session); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"reference": session.Reference,
			"state":     session.State,
			"error":     session.ErrorMessage,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reference":         session.Reference,
		"state":             session.State,
		"authorization_url": session.AuthorizationURL,
	})
}

func (s *Server) verifyReturn(c *gin.Context) {
	outcome := s.flow.HandleReturn(c.Request.Context(), c.Request.URL.Query())

	if outcome.State != domain.CheckoutVerifiedSuccess {
		c.JSON(http.StatusOK, gin.H{
			"state":     outcome.State,
			"reference": outcome.Reference,
			"message":   outcome.Message,
			"browse":    "/events",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"state":     outcome.State,
		"reference": outcome.Reference,
		"payment":   outcome.Payment,
		"tickets":   "/tickets",
	})
}

func (s *Server) listPayments(c *gin.Context) {
	payments := s.ledger.Payments(c.Request.Context())
	if payments == nil {
		payments = []domain.TrackedPayment{}
	}
	c.JSON(http.StatusOK, payments)
}

func (s *Server) paymentByReference(c *gin.Context) {
	p, ok := s.ledger.PaymentByReference(c.Request.Context(), c.Param("reference"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "payment not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) paymentsByEvent(c *gin.Context) {
	payments := s.ledger.PaymentsByEvent(c.Request.Context(), c.Param("id"))
	if payments == nil {
		payments = []domain.TrackedPayment{}
	}
	c.JSON(http.StatusOK, payments)
}

func (s *Server) clearPayments(c *gin.Context) {
	if err := s.ledger.Clear(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not clear payments"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) stats(c *gin.Context) {
	ctx := c.Request.Context()
	c.JSON(http.StatusOK, gin.H{
		"totalRevenue": s.ledger.TotalRevenue(ctx),
		"ticketsSold":  s.ledger.TicketsSold(ctx),
	})
}

func (s *Server) downloadReceipt(c *gin.Context) {
	p, ok := s.ledger.PaymentByReference(c.Request.Context(), c.Param("reference"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "payment not found"})
		return
	}

	raw, err := receipt.Generate(p, receipt.Customer{Email: p.Email}, s.cfg.CurrencySymbol)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not download receipt"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="receipt-%s.pdf"`, p.Reference))
	c.Data(http.StatusOK, "application/pdf", raw)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "up",
		"gateway": s.cfg.Mode,
	})
}
