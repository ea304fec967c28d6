package app

import (
	"github.com/gin-gonic/gin"

	httpserver "github.com/hritamkar/library-management/internal/http"
	"github.com/hritamkar/library-management/internal/pkg/logger"
)

func wireRouter(log *logger.Logger, cfg Config, handlers Handlers) *gin.Engine {
	return httpserver.NewRouter(httpserver.RouterConfig{
		Log:                 log,
		BookHandler:         handlers.Book,
		MemberHandler:       handlers.Member,
		LoanHandler:         handlers.Loan,
		SubscriptionHandler: handlers.Subscription,
		HealthHandler:       handlers.Health,
		CORSOrigins:         cfg.CORSOrigins,
	})
}
