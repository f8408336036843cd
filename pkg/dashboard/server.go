package dashboard

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/vmmuthu31/ChainWatchdog-sub000/pkg/chains"
	"github.com/vmmuthu31/ChainWatchdog-sub000/pkg/db"
	"github.com/vmmuthu31/ChainWatchdog-sub000/pkg/engine"
)

type Dashboard struct {
	engine *engine.Engine
	store  *db.Store
	port   int
}

func New(e *engine.Engine, store *db.Store, port int) *Dashboard {
	return &Dashboard{engine: e, store: store, port: port}
}

func (d *Dashboard) Run() error {
	mux := http.NewServeMux()

	// API endpoints
	mux.HandleFunc("/api/analyze", cors(d.handleAnalyze))
	mux.HandleFunc("/api/detect", cors(d.handleDetect))
	mux.HandleFunc("/api/history", cors(d.handleHistory))
	mux.HandleFunc("/api/stats", cors(d.handleStats))

	// Serve frontend
	mux.HandleFunc("/", d.serveFrontend)

	addr := fmt.Sprintf(":%d", d.port)
	log.Info().Str("addr", addr).Msg("🌐 dashboard started")
	return http.ListenAndServe(addr, mux)
}

func cors(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(200)
			return
		}
		h(w, r)
	}
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func (d *Dashboard) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		http.Error(w, "POST only", 405)
		return
	}

	body, _ := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	var req struct {
		Address string `json:"address"`
		Chain   string `json:"chain"`
		Intent  string `json:"intent"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "invalid json", 400)
		return
	}

	intent := engine.Intent(req.Intent)
	switch intent {
	case engine.IntentWallet, engine.IntentTokenSpamCheck, engine.IntentHoneypotCheck:
	case "":
		intent = engine.IntentHoneypotCheck
	default:
		http.Error(w, "unknown intent", 400)
		return
	}

	v, err := d.engine.Analyze(r.Context(), req.Address, chains.Parse(req.Chain), intent)
	if err != nil {
		http.Error(w, err.Error(), 400)
		return
	}

	if d.store != nil {
		if err := d.store.SaveScan(v); err != nil {
			log.Warn().Err(err).Msg("failed to persist scan")
		}
	}
	writeJSON(w, v)
}

func (d *Dashboard) handleDetect(w http.ResponseWriter, r *http.Request) {
	addr := r.URL.Query().Get("address")
	if addr == "" {
		http.Error(w, "address required", 400)
		return
	}

	chain, ok := d.engine.DetectChain(r.Context(), addr)
	resp := map[string]interface{}{
		"address":  addr,
		"detected": ok,
	}
	if ok {
		resp["chain"] = chain
		resp["chain_id"] = chain.NumericID()
	}
	writeJSON(w, resp)
}

func (d *Dashboard) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	scans, err := d.store.GetRecentScans(limit)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	if scans == nil {
		scans = []db.Scan{}
	}
	writeJSON(w, scans)
}

func (d *Dashboard) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := d.store.GetStats()
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	writeJSON(w, stats)
}
