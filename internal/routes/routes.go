package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"salescrm/internal/handlers"
)

func SetupRoutes(
	r *gin.Engine,
	leadHandler *handlers.LeadHandler,
	opportunityHandler *handlers.OpportunityHandler,
	dashboardHandler *handlers.DashboardHandler,
	referenceHandler *handlers.ReferenceHandler,
	healthHandler *handlers.HealthHandler,
) *gin.Engine {

	r.GET("/healthz", healthHandler.Check)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// LEADS
	leads := r.Group("/leads")
	{
		leads.POST("/", leadHandler.Create)
		leads.GET("/", leadHandler.List)
		leads.GET("/:id", leadHandler.GetByID)
		leads.POST("/:id/status", leadHandler.UpdateStatus)
		leads.POST("/:id/convert", leadHandler.Convert)
	}

	// OPPORTUNITIES
	opps := r.Group("/opportunities")
	{
		opps.GET("/", opportunityHandler.List)
		opps.GET("/:id", opportunityHandler.GetByID)
		opps.GET("/:id/history", opportunityHandler.History)
		opps.POST("/:id/advance", opportunityHandler.Advance)
		opps.POST("/:id/close", opportunityHandler.Close)
	}

	// REPORTS
	reports := r.Group("/reports")
	{
		reports.GET("/dashboard", dashboardHandler.Dashboard)
		reports.GET("/export/leads.csv", dashboardHandler.ExportLeadsCSV)
		reports.GET("/export/opportunities.csv", dashboardHandler.ExportOpportunitiesCSV)
		reports.GET("/pipeline.pdf", dashboardHandler.PipelinePDF)
	}

	// DIMENSIONS
	r.GET("/stages", referenceHandler.ListStages)
	r.GET("/sources", referenceHandler.ListSources)
	r.GET("/users", referenceHandler.ListUsers)

	return r
}
