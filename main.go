package main

import (
	auth "Rampart/internal/auth"
	report "Rampart/internal/calc/report"
	wall "Rampart/internal/calc/wall"
	pay "Rampart/internal/pay"
	profile "Rampart/internal/profile"
	repo "Rampart/internal/repo"

	batch "Rampart/internal/calc/premium/batch"
	importer "Rampart/internal/calc/premium/importer"
	recommend "Rampart/internal/calc/premium/recommend"

	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
)

var wg sync.WaitGroup

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

// limitsFromEnv reads operator overrides for the safety-factor minimums.
// When nothing is set the zero value is returned and each request picks
// its limits from the design code it names.
func limitsFromEnv() wall.Limits {
	read := func(key string) (float64, bool) {
		s := os.Getenv(key)
		if s == "" {
			return 0, false
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			log.Fatalf("invalid %s: %v", key, err)
		}
		return v, true
	}

	ot, okOT := read("WALL_MIN_OVERTURNING")
	sl, okSL := read("WALL_MIN_SLIDING")
	br, okBR := read("WALL_MIN_BEARING")
	if !okOT && !okSL && !okBR {
		return wall.Limits{}
	}

	lim := wall.DefaultLimits()
	if okOT {
		lim.MinOverturning = ot
	}
	if okSL {
		lim.MinSliding = sl
	}
	if okBR {
		lim.MinBearing = br
	}
	return lim
}

func HandleList(router *mux.Router, db *sql.DB) {
	userRepo := repo.NewPostgresDB(db)
	err := godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file")
	}
	tokenKey := os.Getenv("TOKEN_KEY")
	if tokenKey == "" {
		log.Fatal("TOKEN_KEY environment variable is not set")
	}

	authEnv := &auth.Authenv{JWTkey: []byte(tokenKey), Repo: userRepo}
	profileH := &profile.ProfileHandler{Repo: userRepo}

	limiter := auth.NewIPRateLimiter(1, 3)

	api := router.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/login", authEnv.AuthHandler).Methods("POST")
	api.HandleFunc("/register", authEnv.RegisterHandler).Methods("POST")

	secureApi := api.PathPrefix("/user").Subrouter()
	secureApi.Use(authEnv.AuthMiddleware)

	secureApi.HandleFunc("/profile", profileH.GetProfile).Methods("GET")
	secureApi.HandleFunc("/profile", profileH.UpdateProfile).Methods("PATCH", "PUT")
	secureApi.HandleFunc("/profile/{id:[0-9]+}", profileH.GetProfile).Methods("GET")
	secureApi.HandleFunc("/upload-avatar", profileH.UploadAvatar).Methods("POST")

	limits := limitsFromEnv()

	wallH := &wall.Handler{Limits: limits, Store: userRepo}
	reportH := &report.Handler{Limits: limits}
	recommendH := &recommend.Handler{}

	secureApi.HandleFunc("/tools/wall/design", wallH.Design).Methods("POST")
	secureApi.HandleFunc("/tools/wall/spec/{request_id}", func(w http.ResponseWriter, r *http.Request) {
		payload, err := userRepo.GetSpecification(r.Context(), mux.Vars(r)["request_id"])
		if err != nil {
			http.Error(w, "Specification not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(payload)
	}).Methods("GET")
	secureApi.HandleFunc("/tools/wall/recommend", recommendH.Wall).Methods("POST")
	secureApi.HandleFunc("/tools/wall/report/preview", reportH.Preview).Methods("POST")

	batchH := &batch.Handler{Limits: limits}
	importerH := &importer.Handler{Limits: limits}

	premiumApi := secureApi.PathPrefix("/premium").Subrouter()
	premiumApi.Use(profileH.RequirePremium)
	premiumApi.HandleFunc("/wall/report/detailed", reportH.Detailed).Methods("POST")
	premiumApi.HandleFunc("/wall/batch", batchH.Wall).Methods("POST")
	premiumApi.HandleFunc("/wall/import", importerH.Wall).Methods("POST")

	if terminalKey := os.Getenv("TINKOFF_TERMINAL_KEY"); terminalKey != "" {
		payH := &pay.Handler{
			Client: pay.NewClient(terminalKey, os.Getenv("TINKOFF_PASSWORD")),
			Repo:   userRepo,
		}
		secureApi.HandleFunc("/premium/purchase", payH.Purchase).Methods("POST")
		api.HandleFunc("/pay/webhook", payH.Webhook).Methods("POST")
	} else {
		log.Println("TINKOFF_TERMINAL_KEY not set, premium purchase disabled")
	}

	router.PathPrefix("/uploads/").
		Handler(http.StripPrefix("/uploads/", http.FileServer(http.Dir("./static/uploads/"))))

	authFileServer := http.FileServer(http.Dir("./static/auth"))
	router.PathPrefix("/auth/").
		Handler(authEnv.RedirectIfLoggedIn(http.StripPrefix("/auth", authFileServer)))
	profileFileServer := http.FileServer(http.Dir("./static/profile"))
	router.Handle("/profile/{id:[0-9]+}", authEnv.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./static/profile/index.html")
	})))
	router.PathPrefix("/profile/").
		Handler(authEnv.AuthMiddleware(http.StripPrefix("/profile", profileFileServer)))
	mainFileServer := http.FileServer(http.Dir("./static/main"))
	router.PathPrefix("/").
		Handler(mainFileServer)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	db := auth.InitDB()
	defer db.Close()
	mux := mux.NewRouter()
	log.Println("Starting server on :443")
	HandleList(mux, db)
	handler := CORS(mux)

	server := &http.Server{
		Addr:    ":443",
		Handler: handler,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := server.ListenAndServeTLS("server.crt", "server.key"); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutdown signal received, draining connections")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")

	wg.Wait()
}
