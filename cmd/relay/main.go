package main

import (
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"emberwallet/internal/domain"
)

type memoryStore struct {
	mu     sync.Mutex
	queues map[domain.WalletAddress][]domain.RelayEnvelope
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		queues: make(map[domain.WalletAddress][]domain.RelayEnvelope),
	}
}

func (ms *memoryStore) push(env domain.RelayEnvelope) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.queues[env.To] = append(ms.queues[env.To], env)
}

func (ms *memoryStore) peek(addr domain.WalletAddress, limit int) []domain.RelayEnvelope {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	q := ms.queues[addr]
	if limit > 0 && limit < len(q) {
		q = q[:limit]
	}
	return append([]domain.RelayEnvelope(nil), q...)
}

func (ms *memoryStore) ack(addr domain.WalletAddress, count int) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	q := ms.queues[addr]
	if count > len(q) {
		count = len(q)
	}
	ms.queues[addr] = q[count:]
}

func main() {
	listen := flag.String("listen", ":8080", "listen address")
	flag.Parse()

	ms := newMemoryStore()

	// POST /v1/slate/{addr}       enqueue an envelope for {addr}
	// GET  /v1/slate/{addr}?limit=N  peek up to N queued envelopes
	// POST /v1/slate/{addr}/ack   drop the first N queued envelopes
	http.HandleFunc("/v1/slate/", func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		rest := strings.TrimPrefix(r.URL.Path, "/v1/slate/")

		if addrStr, ok := strings.CutSuffix(rest, "/ack"); ok {
			addr, err := domain.ParseAddress(addrStr)
			if err != nil || r.Method != http.MethodPost {
				http.Error(w, "bad request", 400)
				return
			}
			var body struct {
				Count int `json:"count"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				http.Error(w, err.Error(), 400)
				return
			}
			ms.ack(addr, body.Count)
			w.WriteHeader(200)
			return
		}

		addr, err := domain.ParseAddress(rest)
		if err != nil {
			http.Error(w, "bad address", 400)
			return
		}

		switch r.Method {
		case http.MethodPost:
			var env domain.RelayEnvelope
			if err := json.NewDecoder(r.Body).Decode(&env); err != nil {
				http.Error(w, err.Error(), 400)
				return
			}
			env.To = addr
			if env.Timestamp == 0 {
				env.Timestamp = time.Now().Unix()
			}
			ms.push(env)
			w.WriteHeader(200)

		case http.MethodGet:
			limit := 0
			if s := r.URL.Query().Get("limit"); s != "" {
				if limit, err = strconv.Atoi(s); err != nil {
					http.Error(w, "bad limit", 400)
					return
				}
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(ms.peek(addr, limit))

		default:
			http.Error(w, "method not allowed", 405)
		}
	})

	log.Println("relay listening on", *listen)
	log.Fatal(http.ListenAndServe(*listen, accessLog(http.DefaultServeMux)))
}

// accessLog records method, path, remote and duration for each request.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s %v", r.Method, r.URL.Path, r.RemoteAddr, time.Since(start))
	})
}
