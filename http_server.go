package secretshare

import (
	"crypto/tls"
	_ "embed"
	"encoding/json"
	"log"
	"net"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"
)

//go:embed web/index.html
var indexHTML []byte

var (
	rateLimit = 60 // max requests per minute
	limiter   = make(map[string]int)
	limMu     sync.Mutex
)

// authMiddleware checks for a Bearer token matching SECRETSHARE_TOKEN. With
// no token configured the server stays open, like the original local web
// UI.
func authMiddleware(next http.Handler) http.Handler {
	token := os.Getenv("SECRETSHARE_TOKEN")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token != "" {
			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") || strings.TrimPrefix(auth, "Bearer ") != token {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// rateLimitMiddleware limits requests per remote IP.
func rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limMu.Lock()
		ip, _, _ := net.SplitHostPort(r.RemoteAddr)
		limiter[ip]++
		count := limiter[ip]
		limMu.Unlock()
		if count > rateLimit {
			http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func resetRateLimiter() {
	for {
		time.Sleep(time.Minute)
		limMu.Lock()
		limiter = make(map[string]int)
		limMu.Unlock()
	}
}

// apiResponse is the JSON envelope shared by both endpoints. Exactly one of
// Shares/Secret is set on success.
type apiResponse struct {
	Success    bool     `json:"success"`
	Shares     []string `json:"shares,omitempty"`
	Secret     string   `json:"secret,omitempty"`
	PartsCount int      `json:"partsCount,omitempty"`
	Error      string   `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, resp apiResponse) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// NewHandler returns the HTTP handler serving the embedded web UI and the
// split/reconstruct API.
func NewHandler(engine *Engine) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(indexHTML)
	})

	// Split a secret into shares.
	mux.HandleFunc("/api/create", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Only POST allowed", http.StatusMethodNotAllowed)
			return
		}
		var req struct {
			Secret string `json:"secret"`
			N      int    `json:"n"`
			K      int    `json:"k"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, apiResponse{Error: "invalid JSON: " + err.Error()})
			return
		}
		shares, err := engine.SplitText(req.Secret, req.N, req.K)
		if err != nil {
			writeJSON(w, apiResponse{Error: err.Error()})
			return
		}
		encoded := make([]string, len(shares))
		for i, s := range shares {
			encoded[i] = EncodeShare(s)
		}
		writeJSON(w, apiResponse{Success: true, Shares: encoded})
	})

	// Reconstruct a secret from a newline-separated block of shares.
	mux.HandleFunc("/api/recover", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Only POST allowed", http.StatusMethodNotAllowed)
			return
		}
		var req struct {
			Parts string `json:"parts"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, apiResponse{Error: "invalid JSON: " + err.Error()})
			return
		}
		shares, err := ParseShares(req.Parts)
		if err != nil {
			writeJSON(w, apiResponse{Error: err.Error()})
			return
		}
		secret, err := engine.ReconstructText(shares)
		if err != nil {
			writeJSON(w, apiResponse{Error: err.Error()})
			return
		}
		writeJSON(w, apiResponse{Success: true, Secret: secret, PartsCount: len(shares)})
	})

	return authMiddleware(rateLimitMiddleware(mux))
}

// StartHTTPServer serves the web UI and API on the configured address,
// over TLS when SECRETSHARE_CERT and SECRETSHARE_KEY are set. It blocks.
func StartHTTPServer(engine *Engine, settings *Settings) {
	go resetRateLimiter()

	server := &http.Server{
		Addr:    settings.Listen,
		Handler: NewHandler(engine),
	}
	certFile := os.Getenv("SECRETSHARE_CERT")
	keyFile := os.Getenv("SECRETSHARE_KEY")
	log.Printf("secretshare listening on %s", settings.Listen)
	if certFile != "" && keyFile != "" {
		server.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		log.Fatal(server.ListenAndServeTLS(certFile, keyFile))
	} else {
		log.Fatal(server.ListenAndServe())
	}
}
