package app

import (
	httpH "github.com/hritamkar/library-management/internal/http/handlers"
	"github.com/hritamkar/library-management/internal/pkg/logger"
)

type Handlers struct {
	Book         *httpH.BookHandler
	Member       *httpH.MemberHandler
	Loan         *httpH.LoanHandler
	Subscription *httpH.SubscriptionHandler
	Health       *httpH.HealthHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Book:         httpH.NewBookHandler(log, services.Book),
		Member:       httpH.NewMemberHandler(log, services.Member, services.Loan),
		Loan:         httpH.NewLoanHandler(log, services.Loan),
		Subscription: httpH.NewSubscriptionHandler(log),
		Health:       httpH.NewHealthHandler(),
	}
}
