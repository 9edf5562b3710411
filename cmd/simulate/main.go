package main

import (
	"context"
	"fmt"
	"log"
	"net/url"

	"github.com/VictorChidex1/eventflow/internal/checkout"
	"github.com/VictorChidex1/eventflow/internal/config"
	"github.com/VictorChidex1/eventflow/internal/domain"
	"github.com/VictorChidex1/eventflow/internal/service"
	"github.com/VictorChidex1/eventflow/internal/storage"
	"github.com/VictorChidex1/eventflow/internal/tracker"
)

// Drives a batch of checkouts end to end against the mock gateway and
// prints the ledger aggregates afterwards. Useful for eyeballing the
// full initialize → redirect → verify → track loop without a browser.
func main() {
	ctx := context.Background()

	cfg := config.Load()
	cfg.Mode = config.ModeMock
	cfg.MockDelay = 0

	ledger := tracker.New(storage.NewMemory())
	payments := service.NewPaymentService(cfg)
	sessions := checkout.NewSessions()
	flow := checkout.NewFlow(payments, ledger, sessions)

	fmt.Println("--- STARTING SIMULATION (20 CHECKOUTS) ---")
	for i := 0; i < 20; i++ {
		session := flow.Open(domain.PaymentRequest{
			Email:      fmt.Sprintf("buyer%d@example.com", i+1),
			Amount:     5000,
			EventID:    fmt.Sprintf("%d", i%3+1),
			TicketID:   "general",
			Quantity:   i%4 + 1,
			EventTitle: fmt.Sprintf("Simulated Event %d", i%3+1),
		})

		fmt.Printf("[%d] Checkout %s ... ", i+1, session.Reference)
		if err := flow.Submit(ctx, session); err != nil {
			fmt.Printf("FAILED: %v\n", err)
			continue
		}

		// The mock's authorization URL points straight back at the
		// verification route; follow it the way a browser would.
		redirect, err := url.Parse(session.AuthorizationURL)
		if err != nil {
			log.Printf("bad authorization url: %v", err)
			continue
		}

		outcome := flow.HandleReturn(ctx, redirect.Query())
		fmt.Printf("%s\n", outcome.State)
	}

	fmt.Println("---------------------------------------------------")
	fmt.Printf("Payments recorded: %d\n", len(ledger.Payments(ctx)))
	fmt.Printf("Tickets sold:      %d\n", ledger.TicketsSold(ctx))
	fmt.Printf("Total revenue:     %d (minor units)\n", ledger.TotalRevenue(ctx))
}
