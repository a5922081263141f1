package httpadapter

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"svw.info/magicsquares/internal/arith"
	"svw.info/magicsquares/internal/domain"
	"svw.info/magicsquares/internal/usecase"
)

type Handler struct {
	UC *usecase.Service
}

func New(uc *usecase.Service) *Handler { return &Handler{UC: uc} }

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/search", h.handleSearch)
	mux.HandleFunc("/api/finds", h.handleFinds)
	mux.HandleFunc("/api/healthz", h.handleHealthz)
}

// ---- Search ----

type searchReq struct {
	Value string `json:"value"`
	Sign  string `json:"sign,omitempty"` // "+" (default) or "-"
}

type findResp struct {
	Artifact string   `json:"artifact"`
	Class    string   `json:"class"`
	Count    int      `json:"count"`
	Seq      int      `json:"seq"`
	Squares  [4]bool  `json:"squares"`
	Grid     []string `json:"grid"`
}

type searchResp struct {
	Label        string     `json:"label,omitempty"`
	Number       string     `json:"number,omitempty"`
	FactorPairs  int        `json:"factorPairs"`
	Progressions int        `json:"progressions"`
	Pairs        int        `json:"pairs"`
	Skipped      int        `json:"skipped"`
	DurationMs   int64      `json:"durationMs"`
	Finds        []findResp `json:"finds"`
	Error        string     `json:"error,omitempty"`
}

func parseSign(s string) (domain.Sign, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "+", "plus", "p":
		return domain.Plus, true
	case "-", "minus", "m":
		return domain.Minus, true
	default:
		return domain.Plus, false
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if r.Method != http.MethodPost {
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}
	var req searchReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, searchResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	input, ok := arith.Parse(strings.TrimSpace(req.Value))
	if !ok {
		writeJSON(w, http.StatusBadRequest, searchResp{Error: "value must be a decimal integer"})
		return
	}
	sign, ok := parseSign(req.Sign)
	if !ok {
		writeJSON(w, http.StatusBadRequest, searchResp{Error: "sign must be + or -"})
		return
	}
	rep, err := h.UC.Search(r.Context(), domain.Value{Input: input, Sign: sign})
	if err != nil {
		status := http.StatusInternalServerError
		if usecase.IsNotConfigured(err) {
			status = http.StatusNotImplemented
		}
		writeJSON(w, status, searchResp{Error: err.Error()})
		return
	}
	resp := searchResp{
		Label:        rep.Value.Label(),
		Number:       rep.Number.String(),
		FactorPairs:  rep.Stats.FactorPairs,
		Progressions: rep.Stats.Progressions,
		Pairs:        rep.Stats.Pairs,
		Skipped:      rep.Stats.Skipped,
		DurationMs:   rep.Stats.Duration.Milliseconds(),
		Finds:        make([]findResp, 0, len(rep.Finds)),
	}
	for _, e := range rep.Finds {
		fr := findResp{
			Artifact: e.Artifact,
			Class:    e.Find.Class.Tag(),
			Count:    e.Find.Evaluation.Count,
			Seq:      e.Find.Seq,
			Squares:  e.Find.Evaluation.Squares,
		}
		for _, c := range e.Find.Evaluation.Grid {
			fr.Grid = append(fr.Grid, c.String())
		}
		resp.Finds = append(resp.Finds, fr)
	}
	writeJSON(w, http.StatusOK, resp)
}

// ---- Finds ----

type findsResp struct {
	Finds []domain.FindMeta `json:"finds"`
	Error string            `json:"error,omitempty"`
}

func (h *Handler) handleFinds(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if r.Method != http.MethodGet {
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}
	q := r.URL.Query()
	class := domain.ClassNone
	if tag := q.Get("class"); tag != "" {
		c, err := domain.ParseClass(tag)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, findsResp{Error: err.Error()})
			return
		}
		class = c
	}
	limit := 100
	if s := q.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			writeJSON(w, http.StatusBadRequest, findsResp{Error: "limit must be a non-negative integer"})
			return
		}
		limit = n
	}
	fs, err := h.UC.Finds(r.Context(), class, limit)
	if err != nil {
		if usecase.IsNotConfigured(err) {
			writeJSON(w, http.StatusNotImplemented, findsResp{Error: "ledger not enabled"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, findsResp{Error: err.Error()})
		return
	}
	if fs == nil {
		fs = []domain.FindMeta{}
	}
	writeJSON(w, http.StatusOK, findsResp{Finds: fs})
}

// ---- Health ----

func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "backend": arith.Backend})
}
