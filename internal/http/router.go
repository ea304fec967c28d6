package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/hritamkar/library-management/internal/http/handlers"
	httpMW "github.com/hritamkar/library-management/internal/http/middleware"
	"github.com/hritamkar/library-management/internal/pkg/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	BookHandler         *httpH.BookHandler
	MemberHandler       *httpH.MemberHandler
	LoanHandler         *httpH.LoanHandler
	SubscriptionHandler *httpH.SubscriptionHandler
	HealthHandler       *httpH.HealthHandler

	CORSOrigins []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Books
		if cfg.BookHandler != nil {
			api.POST("/books", cfg.BookHandler.CreateBook)
			api.GET("/books", cfg.BookHandler.ListBooks)
			api.GET("/books/:id", cfg.BookHandler.GetBook)
		}

		// Members
		if cfg.MemberHandler != nil {
			api.POST("/members", cfg.MemberHandler.CreateMember)
			api.GET("/members", cfg.MemberHandler.ListMembers)
			api.GET("/members/:id", cfg.MemberHandler.GetMember)
			api.GET("/members/:id/loans", cfg.MemberHandler.ListMemberLoans)
		}

		// Loans
		if cfg.LoanHandler != nil {
			api.POST("/loans", cfg.LoanHandler.CreateLoan)
			api.GET("/loans", cfg.LoanHandler.ListLoans)
			api.GET("/loans/:id", cfg.LoanHandler.GetLoan)
			api.GET("/loans/:id/history", cfg.LoanHandler.GetLoanHistory)
			api.POST("/loans/return", cfg.LoanHandler.ReturnBook)
		}
	}

	// Multi-tenant provisioning callbacks (no-op acknowledgements)
	if cfg.SubscriptionHandler != nil {
		mt := r.Group("/mt/v1.0/subscriptions")
		{
			mt.GET("/dependencies", cfg.SubscriptionHandler.GetDependencies)
			mt.PUT("/tenants/:tenantId", cfg.SubscriptionHandler.Subscribe)
			mt.DELETE("/tenants/:tenantId", cfg.SubscriptionHandler.Unsubscribe)
		}
	}

	return r
}
