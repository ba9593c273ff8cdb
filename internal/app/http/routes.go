package routes

import (
	"log/slog"

	adminapi "staffms/internal/api/admin"
	authapi "staffms/internal/api/auth"
	billingapi "staffms/internal/api/billing"
	filesapi "staffms/internal/api/files"
	orgapi "staffms/internal/api/organizations"
	plansapi "staffms/internal/api/plans"
	reportsapi "staffms/internal/api/reports"
	stripewebhooks "staffms/internal/api/stripewebhook"
	usersapi "staffms/internal/api/users"
	"staffms/internal/app/http/middleware"
	"staffms/internal/domain/access"
	"staffms/internal/domain/plans"
	"staffms/internal/domain/users"
	"staffms/internal/infra/mail"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Deps carries the shared services every handler is built from.
type Deps struct {
	DB      *gorm.DB
	Catalog *plans.Catalog
	Gate    *access.Gate
	Advisor *access.Advisor
	Users   middleware.UserLoader
	Mailer  mail.Mailer
	Uploads string
	Log     *slog.Logger
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	auth := authapi.NewHandler(d.Catalog, d.Mailer, d.Log)
	planH := plansapi.NewHandler(d.Catalog, d.Log)
	billing := billingapi.NewHandler(d.Catalog, d.Log)
	webhook := stripewebhooks.NewHandler(d.DB, d.Catalog, d.Log)
	me := usersapi.NewHandler(d.Gate, d.Advisor, d.Log)
	orgs := orgapi.NewHandler(d.DB, d.Gate, d.Advisor, d.Mailer, d.Log)
	reports := reportsapi.NewHandler(d.DB, d.Advisor, d.Log)
	admin := adminapi.NewHandler(d.DB, d.Catalog, d.Log)
	files := filesapi.NewHandler(d.DB, d.Advisor, d.Uploads, d.Log)

	requireModule := func(module string) gin.HandlerFunc {
		return middleware.RequireModule(d.Gate, d.Users, module, d.Log)
	}

	r.POST("/webhook", webhook.StripeWebhook)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/plans", planH.ListPlans)
	r.GET("/plans/:key", planH.GetPlan)

	// Input sanitization applies to public routes only.
	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.POST("/register", auth.Register)
	public.POST("/login", auth.Login)
	public.POST("/logout", auth.Logout)
	public.GET("/verify", auth.VerifyEmail)
	public.POST("/request-password-reset", auth.RequestPasswordReset)
	public.POST("/reset-password", auth.ResetPassword)

	public.GET("/auth/google", auth.GoogleStart)
	public.GET("/auth/google/callback", auth.GoogleCallback)

	// Authenticated
	authed := r.Group("/")
	authed.Use(middleware.AuthMiddleware(), middleware.WithCurrentUser(d.Users, d.Log))
	authed.GET("/me", me.GetCurrentUser)
	authed.POST("/change-password", auth.ChangePassword)
	authed.GET("/organization/usage", orgs.Usage)
	authed.PUT("/organization/working-hours", orgs.UpdateWorkingHours)
	authed.POST("/organization/employees", orgs.AddEmployee)
	authed.GET("/organization/files", files.List)
	authed.POST("/organization/files", files.Upload)
	authed.DELETE("/organization/files/:id", files.Delete)
	authed.GET("/payments", billing.GetPaymentHistory)
	authed.POST("/create-checkout-session", billing.CreateCheckoutSession)
	authed.POST("/billing-portal", billing.CreateBillingPortal)

	// Subscribed organizations
	subscribed := authed.Group("/")
	subscribed.Use(middleware.RequireActiveSubscription())
	subscribed.POST("/change-plan", billing.ChangePlan)

	// Plan-gated modules. OptionalAuth lets RequireModule send anonymous
	// browsers to the login page instead of a bare 401.
	gated := r.Group("/")
	gated.Use(middleware.OptionalAuth())
	gated.GET("/modules/:module/access", middleware.WithCurrentUser(d.Users, d.Log), orgs.ModuleAccess)
	gated.GET("/reports/usage", requireModule(access.ModuleReports), reports.UsageReport)
	gated.GET("/reports/advanced", requireModule(access.ModuleAdvancedReports), reports.AdvancedReport)

	api := r.Group("/api/v1")
	api.Use(middleware.OptionalAuth(), requireModule(access.ModuleAPI))
	api.GET("/organization", orgs.APIOrganization)

	// Platform admin
	adm := r.Group("/admin")
	adm.Use(middleware.AuthMiddleware(), middleware.RequireRole(users.RoleSuperAdmin))
	adm.GET("/organizations", admin.ListOrganizations)
	adm.PUT("/organizations/:id/plan", admin.ChangeOrganizationPlan)
	adm.GET("/payments", admin.ListAllPayments)
	adm.GET("/stats", admin.GetAdminStats)
	adm.POST("/sync-plans", planH.SyncPricesFromStripe)
}
