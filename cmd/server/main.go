package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/stripe/stripe-go/v82"

	"homeaway/internal/api"
	"homeaway/internal/auth"
	"homeaway/internal/ratelimit"
	"homeaway/internal/repository"
	"homeaway/internal/service"
)

func main() {
	godotenv.Load()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")

	bookingRepo := repository.NewBookingRepository(db)
	propertyRepo := repository.NewPropertyRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	adminAuthRepo := repository.NewAdminAuthRepository(db)
	jobRepo := repository.NewJobRepository(db)

	stripeService := service.NewStripeService()
	senderService := service.NewSenderService()
	bookingService := service.NewBookingService(bookingRepo, propertyRepo, stripeService)
	propertyService := service.NewPropertyService(propertyRepo, bookingRepo)
	profileService := service.NewProfileService(profileRepo)
	reviewService := service.NewReviewService(reviewRepo, propertyRepo)
	adminAuthService := service.NewAdminAuthService(adminAuthRepo)
	jobService := service.NewJobService(jobRepo)

	limiter := ratelimit.New(newRateLimitStore())

	bookingHandler := api.NewBookingHandler(bookingService)
	propertyHandler := api.NewPropertyHandler(propertyService)
	profileHandler := api.NewProfileHandler(profileService)
	reviewHandler := api.NewReviewHandler(reviewService)
	adminHandler := api.NewAdminHandler(bookingService)
	adminAuthHandler := api.NewAdminAuthHandler(adminAuthService)
	webhookHandler := api.NewStripeWebhookHandler(
		os.Getenv("STRIPE_WEBHOOK_SECRET"),
		bookingService, stripeService, senderService, profileRepo, propertyRepo,
	)

	r := mux.NewRouter()
	r.Use(api.SecurityHeaders)
	r.Use(auth.Middleware)

	// Public endpoints
	public := r.PathPrefix("/api").Subrouter()
	public.Use(ratelimit.Middleware(limiter, ratelimit.Lenient))
	public.HandleFunc("/properties", propertyHandler.ListProperties).Methods("GET")
	public.HandleFunc("/properties/{id:[0-9]+}", propertyHandler.GetProperty).Methods("GET")
	public.HandleFunc("/properties/{id:[0-9]+}/calendar", bookingHandler.PropertyCalendar).Methods("GET")
	public.HandleFunc("/properties/{id:[0-9]+}/reviews", reviewHandler.ListReviews).Methods("GET")
	public.HandleFunc("/bookings/quote", bookingHandler.Quote).Methods("POST")

	// Authenticated endpoints
	private := r.PathPrefix("/api").Subrouter()
	private.Use(ratelimit.Middleware(limiter, ratelimit.Standard))
	private.Use(auth.RequireAuth)
	private.HandleFunc("/profile", profileHandler.GetProfile).Methods("GET")
	private.HandleFunc("/profile", profileHandler.CreateProfile).Methods("POST")
	private.HandleFunc("/profile", profileHandler.UpdateProfile).Methods("PUT")
	private.HandleFunc("/properties", propertyHandler.CreateProperty).Methods("POST")
	private.HandleFunc("/bookings", bookingHandler.ListBookings).Methods("GET")
	private.HandleFunc("/reviews", reviewHandler.CreateReview).Methods("POST")
	private.HandleFunc("/reviews/{id:[0-9]+}", reviewHandler.DeleteReview).Methods("DELETE")

	// Sensitive operations get the strict buckets
	booking := r.PathPrefix("/api/bookings").Subrouter()
	booking.Use(ratelimit.Middleware(limiter, withBucket(ratelimit.Strict, "booking")))
	booking.Use(auth.RequireAuth)
	booking.HandleFunc("", bookingHandler.CreateBooking).Methods("POST")
	booking.HandleFunc("/{code}", bookingHandler.CancelBooking).Methods("DELETE")

	payment := r.PathPrefix("/api/payment").Subrouter()
	payment.Use(ratelimit.Middleware(limiter, withBucket(ratelimit.Payment, "payment")))
	payment.HandleFunc("/session", webhookHandler.GetBookingBySessionID).Methods("GET")
	payment.HandleFunc("/webhook", webhookHandler.HandleWebhook).Methods("POST")

	authRoutes := r.PathPrefix("/api/auth").Subrouter()
	authRoutes.Use(ratelimit.Middleware(limiter, withBucket(ratelimit.Auth, "auth")))
	authRoutes.HandleFunc("/login", adminAuthHandler.Login).Methods("POST")

	// Admin endpoints (protected)
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(ratelimit.Middleware(limiter, withBucket(ratelimit.Standard, "admin")))
	admin.Use(auth.RequireAdmin)
	admin.HandleFunc("/bookings", adminHandler.ListBookings).Methods("GET")
	admin.HandleFunc("/bookings/{code}", adminHandler.DeleteBooking).Methods("DELETE")
	admin.HandleFunc("/users", adminAuthHandler.CreateAdmin).Methods("POST")

	c := cron.New()
	c.AddFunc("@every 5m", limiter.Sweep)
	c.AddFunc("@hourly", func() {
		if err := jobService.CompleteFinishedStays(); err != nil {
			log.Printf("Cron job error: %v", err)
		}
		deleted, err := jobService.DeleteStalePendingBookings(time.Now().UTC().Add(-24 * time.Hour))
		if err != nil {
			log.Printf("Cron job error: %v", err)
		} else if deleted > 0 {
			log.Printf("Cron Job: deleted %d stale pending bookings", deleted)
		}
	})
	c.Start()
	defer c.Stop()

	cors := handlers.CORS(
		handlers.AllowedOrigins(allowedOrigins()),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		handlers.ExposedHeaders([]string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After"}),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, handlers.CombinedLoggingHandler(os.Stdout, cors(r))))
}

// newRateLimitStore prefers a shared Redis store when REDIS_ADDR is
// configured, so limits hold across instances; otherwise counters stay
// in-process and best-effort.
func newRateLimitStore() ratelimit.Store {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return ratelimit.NewMemoryStore()
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	log.Printf("Rate limiting backed by Redis at %s", addr)
	return ratelimit.NewRedisStore(client)
}

func withBucket(opts ratelimit.Options, bucket string) ratelimit.Options {
	opts.Bucket = bucket
	return opts
}

func allowedOrigins() []string {
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		return strings.Split(origins, ",")
	}
	return []string{"http://localhost:3000"}
}
