package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/cinematorino/boxoffice/internal/booking"
	"github.com/cinematorino/boxoffice/internal/domain"
	"github.com/cinematorino/boxoffice/internal/mailer"
	"github.com/cinematorino/boxoffice/internal/payment"
	"github.com/cinematorino/boxoffice/internal/vcs"
	"github.com/shopspring/decimal"
)

var (
	version = vcs.Version()
)

type config struct {
	cinemaName     string
	approvalRate   float64
	paymentLatency time.Duration
	paymentTimeout time.Duration
	smtp           struct {
		host     string
		port     int
		username string
		password string
		sender   string
	}
}

func main() {
	var cfg config

	flag.StringVar(&cfg.cinemaName, "cinema-name", "Cinema Torino", "Cinema display name")
	flag.Float64Var(&cfg.approvalRate, "approval-rate", payment.DefaultApprovalRate, "Simulated payment approval rate (0..1)")
	flag.DurationVar(&cfg.paymentLatency, "payment-latency", 800*time.Millisecond, "Simulated payment gateway latency")
	flag.DurationVar(&cfg.paymentTimeout, "payment-timeout", booking.DefaultPaymentTimeout, "Payment authorization timeout")

	flag.StringVar(&cfg.smtp.host, "smtp-host", "sandbox.smtp.mailtrap.io", "SMTP host")
	flag.IntVar(&cfg.smtp.port, "smtp-port", 2525, "SMTP port")
	flag.StringVar(&cfg.smtp.username, "smtp-username", "", "SMTP username")
	flag.StringVar(&cfg.smtp.password, "smtp-password", "", "SMTP password")
	flag.StringVar(&cfg.smtp.sender, "smtp-sender", "Box Office <no-reply@cinematorino.it>", "SMTP sender")

	displayVersion := flag.Bool("version", false, "Display version and exit")

	flag.Parse()

	if *displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	provider := payment.NewSimulator(
		payment.WithApprovalRate(cfg.approvalRate),
		payment.WithLatency(cfg.paymentLatency),
	)

	m := mailer.NewSMTPMailer(cfg.smtp.host, cfg.smtp.port, cfg.smtp.username, cfg.smtp.password, cfg.smtp.sender)

	svc := booking.New(seedCinema(cfg.cinemaName), provider, m, logger,
		booking.WithPaymentTimeout(cfg.paymentTimeout))

	sh := newShell(svc, os.Stdin, os.Stdout)
	sh.run()

	svc.Wait()
}

// seedCinema builds the demo program: three 30-seat auditoriums, a few
// seats already taken, three showings.
func seedCinema(name string) *domain.Cinema {
	cinema := domain.NewCinema(name)

	hall1 := domain.NewAuditorium(1, 30)
	hall2 := domain.NewAuditorium(2, 30)
	hall3 := domain.NewAuditorium(3, 30)

	cinema.AddAuditorium(hall1)
	cinema.AddAuditorium(hall2)
	cinema.AddAuditorium(hall3)

	hall1.Hold("B3")
	hall1.Hold("C2")
	hall2.Hold("A1")

	cinema.AddShowing(domain.NewShowing("S001", "Il Padrino", "20:30", hall1, decimal.NewFromFloat(9.00)))
	cinema.AddShowing(domain.NewShowing("S002", "Inception", "21:00", hall2, decimal.NewFromFloat(8.50)))
	cinema.AddShowing(domain.NewShowing("S003", "Interstellar", "22:00", hall3, decimal.NewFromFloat(10.00)))

	return cinema
}
