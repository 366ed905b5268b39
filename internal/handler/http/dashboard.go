package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/mesaitak/mesaitak-backend-go/internal/domain/dashboard"
	"github.com/mesaitak/mesaitak-backend-go/internal/domain/user"
	"github.com/mesaitak/mesaitak-backend-go/internal/handler/http/response"
	"github.com/mesaitak/mesaitak-backend-go/internal/pkg/jwt"
)

type DashboardHandler interface {
	// Live returns a one-shot classification of today
	Live(w http.ResponseWriter, r *http.Request)
	// GetSSEToken issues a short-lived token for Stream
	GetSSEToken(w http.ResponseWriter, r *http.Request)
	// Stream pushes a fresh classification on every attendance change
	Stream(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
	jwtService       jwt.Service
	keepalive        time.Duration
}

func NewDashboardHandler(dashboardService dashboard.DashboardService, jwtService jwt.Service) DashboardHandler {
	return &dashboardHandlerImpl{
		dashboardService: dashboardService,
		jwtService:       jwtService,
		keepalive:        30 * time.Second,
	}
}

// Live handles GET /dashboard/live?company_id=&branch_id=
func (h *dashboardHandlerImpl) Live(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := dashboard.LiveQuery{
		CompanyID: scopedCompanyID(r, q.Get("company_id")),
		BranchID:  q.Get("branch_id"),
	}

	result, err := h.dashboardService.Live(r.Context(), query)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetSSEToken handles GET /dashboard/sse-token
func (h *dashboardHandlerImpl) GetSSEToken(w http.ResponseWriter, r *http.Request) {
	claims := jwt.StreamClaims{
		UserID: claimString(r, "user_id"),
		Role:   user.Role(claimString(r, "role")),
	}
	if companyID := claimString(r, "company_id"); companyID != "" {
		claims.CompanyID = &companyID
	}
	if claims.UserID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	token, expiresIn, err := h.jwtService.GenerateSSEToken(claims)
	if err != nil {
		slog.Error("Failed to generate SSE token", "error", err)
		response.InternalServerError(w, "Failed to generate SSE token")
		return
	}

	response.Success(w, dashboard.SSETokenResponse{
		Token:     token,
		ExpiresIn: expiresIn,
	})
}

// Stream handles GET /dashboard/live/stream?token=&branch_id=
func (h *dashboardHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	// EventSource cannot send headers, so the token comes in the query string
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		http.Error(w, "Missing token", http.StatusUnauthorized)
		return
	}

	claims, err := h.jwtService.ValidateSSEToken(tokenStr)
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}
	if !user.HasPermission(claims.Role, user.PermissionDashboardView) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	query := dashboard.LiveQuery{
		CompanyID: r.URL.Query().Get("company_id"),
		BranchID:  r.URL.Query().Get("branch_id"),
	}
	if claims.Role != user.RoleAdmin && claims.CompanyID != nil {
		query.CompanyID = *claims.CompanyID
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	// Watch and the keepalive ticker both write, so writes are serialized.
	var mu sync.Mutex
	write := func(event string, payload interface{}) {
		data, err := json.Marshal(payload)
		if err != nil {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
		flusher.Flush()
	}

	ctx := r.Context()
	done := make(chan error, 1)
	go func() {
		done <- h.dashboardService.Watch(ctx, query, func(stats dashboard.LiveStatsResponse) {
			write(dashboard.EventSnapshot, stats)
		})
	}()

	keepalive := time.NewTicker(h.keepalive)
	defer keepalive.Stop()

	for {
		select {
		case err := <-done:
			if err != nil {
				slog.Error("Dashboard stream failed", "user_id", claims.UserID, "error", err)
				write("error", map[string]string{"message": "failed to load dashboard"})
			}
			return

		case <-keepalive.C:
			write("ping", map[string]int64{"timestamp": time.Now().Unix()})

		case <-ctx.Done():
			<-done
			return
		}
	}
}
