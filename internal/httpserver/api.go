package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/netip"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/language"

	"archject/internal/i18n"
	"archject/internal/security/password"
	"archject/internal/security/ratelimit"
)

const (
	GateMinimum = "minimum"
	GateStrong  = "strong"
)

var errUnknownGate = errors.New("unknown gate")

type API struct {
	limiter        *ratelimit.Limiter
	defaultLang    language.Tag
	trustedProxies []netip.Prefix
	now            func() time.Time

	pruneMu   sync.Mutex
	lastPrune time.Time
}

// NewAPI builds the password API. X-Forwarded-For is only consulted for
// requests whose direct peer falls inside trustedProxies.
func NewAPI(limiter *ratelimit.Limiter, defaultLang language.Tag, trustedProxies []netip.Prefix) *API {
	return &API{
		limiter:        limiter,
		defaultLang:    defaultLang,
		trustedProxies: trustedProxies,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

func (a *API) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("POST /v1/password/strength", a.rateLimited(http.HandlerFunc(a.handleStrength)))
	mux.Handle("POST /v1/password/validate", a.rateLimited(http.HandlerFunc(a.handleValidate)))
	mux.Handle("GET /v1/password/policy", a.rateLimited(http.HandlerFunc(a.handlePolicy)))
}

type strengthRequest struct {
	Password string `json:"password"`
}

type strengthResponse struct {
	password.StrengthResult
	StrongEnough bool   `json:"strong_enough"`
	MeetsMinimum bool   `json:"meets_minimum"`
	Lang         string `json:"lang"`
}

func (a *API) handleStrength(w http.ResponseWriter, r *http.Request) {
	var req strengthRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	tag := i18n.ResolveTag(r, a.defaultLang)
	result := password.Evaluate(req.Password)
	writeJSON(w, http.StatusOK, strengthResponse{
		StrengthResult: i18n.Localize(tag, result),
		StrongEnough:   password.IsStrongEnough(req.Password),
		MeetsMinimum:   password.MeetsMinimumRequirements(req.Password),
		Lang:           tag.String(),
	})
}

type validateRequest struct {
	Password string `json:"password"`
	Gate     string `json:"gate"`
}

type validateResponse struct {
	Gate    string   `json:"gate"`
	OK      bool     `json:"ok"`
	Missing []string `json:"missing"`
}

func (a *API) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	gate := strings.ToLower(strings.TrimSpace(req.Gate))
	if gate == "" {
		gate = GateMinimum
	}

	ok, missing, err := checkGate(gate, req.Password)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("%s: %q", err, req.Gate))
		return
	}
	writeJSON(w, http.StatusOK, validateResponse{
		Gate:    gate,
		OK:      ok,
		Missing: missing,
	})
}

func checkGate(gate, plain string) (bool, []string, error) {
	var (
		ok       bool
		required []string
	)
	switch gate {
	case GateMinimum:
		ok = password.MeetsMinimumRequirements(plain)
		required = password.MinimumCheckIDs()
	case GateStrong:
		ok = password.IsStrongEnough(plain)
		required = password.CheckIDs()
	default:
		return false, nil, errUnknownGate
	}

	failed := make(map[string]bool)
	for _, id := range password.Evaluate(plain).Missing() {
		failed[id] = true
	}
	missing := make([]string, 0, len(required))
	for _, id := range required {
		if failed[id] {
			missing = append(missing, id)
		}
	}
	return ok, missing, nil
}

type policyCheck struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type policyResponse struct {
	MinLength         int                 `json:"min_length"`
	SpecialCharacters string              `json:"special_characters"`
	Checks            []policyCheck       `json:"checks"`
	Gates             map[string][]string `json:"gates"`
	Lang              string              `json:"lang"`
}

func (a *API) handlePolicy(w http.ResponseWriter, r *http.Request) {
	tag := i18n.ResolveTag(r, a.defaultLang)
	labels := password.CheckLabels()
	ids := password.CheckIDs()
	checks := make([]policyCheck, 0, len(ids))
	for _, id := range ids {
		checks = append(checks, policyCheck{ID: id, Label: i18n.Text(tag, labels[id])})
	}
	writeJSON(w, http.StatusOK, policyResponse{
		MinLength:         password.MinLength,
		SpecialCharacters: password.SpecialChars,
		Checks:            checks,
		Gates: map[string][]string{
			GateMinimum: password.MinimumCheckIDs(),
			GateStrong:  ids,
		},
		Lang: tag.String(),
	})
}

func (a *API) rateLimited(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.limiter == nil {
			next.ServeHTTP(w, r)
			return
		}
		now := a.now()
		a.maybePrune(now)
		if !a.limiter.Allow(clientKey(r, a.trustedProxies), now) {
			w.Header().Set("Retry-After", strconv.Itoa(int(a.limiter.Window().Seconds())))
			writeError(w, http.StatusTooManyRequests, "too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (a *API) maybePrune(now time.Time) {
	a.pruneMu.Lock()
	defer a.pruneMu.Unlock()
	if now.Sub(a.lastPrune) < a.limiter.Window() {
		return
	}
	a.lastPrune = now
	a.limiter.Prune(now)
}

func decodeJSON(r *http.Request, out any) error {
	reader := io.LimitReader(r.Body, 1<<20)
	defer r.Body.Close()
	dec := json.NewDecoder(reader)
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("invalid json body")
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("invalid json body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"error":     message,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// clientKey returns the address the rate limiter charges. The peer address
// is used unless the peer is a trusted proxy, in which case X-Forwarded-For is
// walked from the right and the first untrusted hop wins.
func clientKey(r *http.Request, trusted []netip.Prefix) string {
	peer := strings.TrimSpace(r.RemoteAddr)
	if host, _, err := net.SplitHostPort(peer); err == nil {
		peer = host
	}
	if !isTrusted(peer, trusted) {
		return peer
	}

	forwardedFor := strings.TrimSpace(r.Header.Get("X-Forwarded-For"))
	if forwardedFor == "" {
		return peer
	}
	hops := strings.Split(forwardedFor, ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if hop == "" {
			continue
		}
		if !isTrusted(hop, trusted) {
			return hop
		}
		peer = hop
	}
	return peer
}

func isTrusted(host string, trusted []netip.Prefix) bool {
	if len(trusted) == 0 {
		return false
	}
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, p := range trusted {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}
