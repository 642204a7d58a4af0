package router

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/hotelworks/hotel-api/internal/handler/health"
	"github.com/hotelworks/hotel-api/internal/middleware"
	"github.com/hotelworks/hotel-api/internal/model"
)

type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Router struct {
	engine        *gin.Engine
	auth          *middleware.AuthMiddleware
	authH         Handler
	userH         Handler
	shiftH        Handler
	housekeepingH Handler
	roomH         Handler
	catalogH      Handler
	bookingH      Handler
	healthH       *health.Handler
	metrics       *routerMetrics
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	errorTotal      *prometheus.CounterVec
}

type RouterConfig struct {
	RateLimit     rate.Limit
	RateBurst     int
	CORSConfig    middleware.CORSConfig
	MetricsPrefix string
}

func NewRouter(
	auth *middleware.AuthMiddleware,
	authH Handler,
	userH Handler,
	shiftH Handler,
	housekeepingH Handler,
	roomH Handler,
	catalogH Handler,
	bookingH Handler,
	healthH *health.Handler,
	config RouterConfig,
) *Router {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()

	metrics := initRouterMetrics(config.MetricsPrefix)

	r := &Router{
		engine:        engine,
		auth:          auth,
		authH:         authH,
		userH:         userH,
		shiftH:        shiftH,
		housekeepingH: housekeepingH,
		roomH:         roomH,
		catalogH:      catalogH,
		bookingH:      bookingH,
		healthH:       healthH,
		metrics:       metrics,
	}

	engine.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.Logger(),
		middleware.ErrorHandler(),
		r.metricsMiddleware(),
		middleware.Timeout(middleware.DefaultTimeoutConfig()),
		middleware.SecurityHeaders(middleware.DefaultSecurityConfig()),
		middleware.SizeLimit(middleware.DefaultSizeLimitConfig()),
		middleware.Compress(middleware.DefaultCompressConfig()),
	)

	engine.Use(middleware.CORS(config.CORSConfig))

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Rate:  rate.Limit(config.RateLimit),
		Burst: config.RateBurst,
	})
	engine.Use(rateLimiter.RateLimit())

	return r
}

func (r *Router) Setup() {
	api := r.engine.Group("/api/v1")

	api.Use(func(c *gin.Context) {
		c.Header("X-API-Version", "1.0")
		c.Next()
	})

	r.setupHealthCheck(api)

	// Public routes
	r.authH.RegisterRoutes(api)

	// Protected routes
	protected := api.Group("")
	protected.Use(r.auth.Authenticate())
	r.setupProtectedRoutes(protected)
}

func (r *Router) setupHealthCheck(rg *gin.RouterGroup) {
	r.healthH.RegisterRoutes(rg)
}

func (r *Router) setupProtectedRoutes(rg *gin.RouterGroup) {
	r.userH.RegisterRoutes(rg)
	r.shiftH.RegisterRoutes(rg)

	// Task workflow routes are department scoped. Admins pass through the
	// department check inside the middleware.
	housekeeping := rg.Group("")
	housekeeping.Use(r.auth.RequireDepartment(model.DepartmentHousekeeping))
	r.housekeepingH.RegisterRoutes(housekeeping)
	r.roomH.RegisterRoutes(housekeeping)

	frontdesk := rg.Group("")
	frontdesk.Use(r.auth.RequireDepartment(model.DepartmentFrontDesk))
	r.bookingH.RegisterRoutes(frontdesk)

	catalogs := rg.Group("")
	catalogs.Use(middleware.Cache(middleware.DefaultCacheConfig()), r.catalogGate())
	r.catalogH.RegisterRoutes(catalogs)
}

// catalogDepartments maps a catalog URL segment to the department that
// owns it. Catalogs not listed here default to Housekeeping.
var catalogDepartments = map[string]string{
	"name-titles": model.DepartmentFrontDesk,
	"genders":     model.DepartmentFrontDesk,
	"countries":   model.DepartmentFrontDesk,
}

func (r *Router) catalogGate() gin.HandlerFunc {
	return func(c *gin.Context) {
		department, ok := catalogDepartments[c.Param("catalog")]
		if !ok {
			department = model.DepartmentHousekeeping
		}
		r.auth.RequireDepartment(department)(c)
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func initRouterMetrics(prefix string) *routerMetrics {
	return &routerMetrics{
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: prefix + "_request_duration_seconds",
				Help: "Duration of HTTP requests in seconds",
			},
			[]string{"method", "path", "status"},
		),
		requestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		errorTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_errors_total",
				Help: "Total number of HTTP errors",
			},
			[]string{"method", "path", "type"},
		),
	}
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()

		c.Next()

		status := fmt.Sprintf("%d", c.Writer.Status())
		duration := time.Since(start).Seconds()

		r.metrics.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(duration)
		r.metrics.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()

		if c.Writer.Status() >= 400 {
			r.metrics.errorTotal.WithLabelValues(c.Request.Method, path, "http").Inc()
		}
	}
}

func (r *Router) Use(middleware ...gin.HandlerFunc) {
	r.engine.Use(middleware...)
}
