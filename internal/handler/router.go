package handler

import (
	"net/http"

	"github.com/lumina/backend/pkg/auth"
)

// Router holds the handlers mounted under /api.
type Router struct {
	Health      *Handler
	Bookings    *BookingHandler
	Contact     *ContactHandler
	Portfolio   *PortfolioHandler
	Upload      *UploadHandler
	Site        *SiteHandler
	WhatsApp    *WhatsAppHandler
	AdminSecret string
	// SubmitLimit wraps the public form endpoints. Nil disables limiting.
	SubmitLimit func(http.Handler) http.Handler
	// Metrics, when set, is mounted at GET /metrics.
	Metrics http.Handler
}

// Mux registers every route on a new ServeMux.
func (rt Router) Mux() *http.ServeMux {
	admin := auth.RequireAdmin(rt.AdminSecret)
	limit := rt.SubmitLimit
	if limit == nil {
		limit = func(next http.Handler) http.Handler { return next }
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", rt.Health.Health)
	mux.HandleFunc("GET /api/site", rt.Site.Site)
	mux.HandleFunc("GET /api/whatsapp/qr", rt.WhatsApp.QR)

	// 公開フォーム（レート制限あり）
	mux.Handle("POST /api/bookings", limit(http.HandlerFunc(rt.Bookings.Submit)))
	mux.Handle("POST /api/contact", limit(http.HandlerFunc(rt.Contact.Submit)))

	mux.HandleFunc("GET /api/portfolio", rt.Portfolio.List)
	mux.HandleFunc("GET /api/portfolio/{slug}", rt.Portfolio.Get)

	// 管理者エンドポイント
	mux.Handle("GET /api/bookings/admin", admin(http.HandlerFunc(rt.Bookings.AdminList)))
	mux.Handle("PATCH /api/bookings/admin", admin(http.HandlerFunc(rt.Bookings.AdminUpdateStatus)))
	mux.Handle("GET /api/bookings/admin/export", admin(http.HandlerFunc(rt.Bookings.AdminExport)))
	mux.Handle("GET /api/bookings/admin/{id}", admin(http.HandlerFunc(rt.Bookings.AdminGet)))
	mux.Handle("POST /api/cloudinary-sign", admin(http.HandlerFunc(rt.Upload.Sign)))

	if rt.Metrics != nil {
		mux.Handle("GET /metrics", rt.Metrics)
	}
	return mux
}
