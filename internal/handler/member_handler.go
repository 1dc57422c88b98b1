package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/hellomember/internal/middleware"
	"github.com/hitoshi/hellomember/internal/model"
	"github.com/hitoshi/hellomember/internal/security"
)

// MemberServiceInterface は会員ハンドラーが必要とするサービスインターフェース。
// member.Serviceが実装する。
type MemberServiceInterface interface {
	// Join は会員を登録し、割り当てられたIDを返す。
	Join(ctx context.Context, m *model.Member) (int64, error)
	// FindMembers は全会員を返す。
	FindMembers(ctx context.Context) ([]*model.Member, error)
	// FindOne はIDで会員を検索する。存在しない場合はnil, nilを返す。
	FindOne(ctx context.Context, memberID int64) (*model.Member, error)
}

// MemberHandler は会員APIのHTTPハンドラー。
type MemberHandler struct {
	service   MemberServiceInterface
	sanitizer security.NameSanitizer
}

// NewMemberHandler はMemberHandlerを生成する。
func NewMemberHandler(service MemberServiceInterface, sanitizer security.NameSanitizer) *MemberHandler {
	return &MemberHandler{
		service:   service,
		sanitizer: sanitizer,
	}
}

// createMemberRequest は会員登録リクエストのボディ。
type createMemberRequest struct {
	Name string `json:"name"`
}

// memberResponse は会員情報のAPIレスポンス。
type memberResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CreateMember は会員登録を処理する。
// POST /api/members
func (h *MemberHandler) CreateMember(w http.ResponseWriter, r *http.Request) {
	var req createMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, invalidRequestError)
		return
	}

	name := h.sanitizer.Sanitize(req.Name)
	if name == "" {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidMemberNameError())
		return
	}

	member := &model.Member{Name: name}
	id, err := h.service.Join(r.Context(), member)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/members/"+strconv.FormatInt(id, 10))
	writeJSON(w, http.StatusCreated, memberResponse{ID: id, Name: member.Name})
}

// ListMembers は全会員を返す。会員がいない場合も空配列を返す。
// GET /api/members
func (h *MemberHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.service.FindMembers(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	resp := make([]memberResponse, 0, len(members))
	for _, m := range members {
		resp = append(resp, toMemberResponse(m))
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetMember は会員を1件返す。
// GET /api/members/{id}
func (h *MemberHandler) GetMember(w http.ResponseWriter, r *http.Request) {
	rawID := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidMemberIDError(rawID))
		return
	}

	member, err := h.service.FindOne(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	if member == nil {
		writeAPIErrorResponse(w, http.StatusNotFound, model.NewMemberNotFoundError(id))
		return
	}

	writeJSON(w, http.StatusOK, toMemberResponse(member))
}

func toMemberResponse(m *model.Member) memberResponse {
	return memberResponse{ID: m.ID, Name: m.Name}
}

// requestID はリクエストに割り当てられたIDを返す。
func requestID(r *http.Request) string {
	return middleware.RequestIDFromContext(r.Context())
}
