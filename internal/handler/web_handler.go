package handler

import (
	"net/http"

	"github.com/hitoshi/hellomember/internal/middleware"
	"github.com/hitoshi/hellomember/internal/model"
	"github.com/hitoshi/hellomember/internal/security"
)

// memberFormPage は会員登録フォームの表示データ。
type memberFormPage struct {
	CSRFToken string
	Name      string
	Error     string
}

// memberListPage は会員一覧ページの表示データ。
type memberListPage struct {
	Members []*model.Member
}

// WebHandler は会員機能のHTMLページを扱うハンドラー。
type WebHandler struct {
	service   MemberServiceInterface
	sanitizer security.NameSanitizer
}

// NewWebHandler はWebHandlerを生成する。
func NewWebHandler(service MemberServiceInterface, sanitizer security.NameSanitizer) *WebHandler {
	return &WebHandler{
		service:   service,
		sanitizer: sanitizer,
	}
}

// Home はトップページを返す。
// GET /
func (h *WebHandler) Home(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, http.StatusOK, pageHome, nil)
}

// NewMemberForm は会員登録フォームを返す。
// GET /members/new
func (h *WebHandler) NewMemberForm(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, http.StatusOK, pageMemberForm, memberFormPage{
		CSRFToken: middleware.CSRFTokenFromContext(r.Context()),
	})
}

// CreateMember はフォームから送信された会員を登録し、トップページへリダイレクトする。
// 名前が空の場合は400、重複時は409でメッセージ付きのフォームを再表示する。
// POST /members/new
func (h *WebHandler) CreateMember(w http.ResponseWriter, r *http.Request) {
	name := h.sanitizer.Sanitize(r.PostFormValue("name"))
	form := memberFormPage{
		CSRFToken: middleware.CSRFTokenFromContext(r.Context()),
		Name:      name,
	}

	if name == "" {
		form.Error = model.NewInvalidMemberNameError().Message
		renderPage(w, r, http.StatusBadRequest, pageMemberForm, form)
		return
	}

	if _, err := h.service.Join(r.Context(), &model.Member{Name: name}); err != nil {
		if model.IsDuplicateMember(err) {
			form.Error = model.DuplicateMemberMessage
			renderPage(w, r, http.StatusConflict, pageMemberForm, form)
			return
		}
		logInternalError(r, err)
		http.Error(w, internalError.Message, http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ListMembers は会員一覧ページを返す。
// GET /members
func (h *WebHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.service.FindMembers(r.Context())
	if err != nil {
		logInternalError(r, err)
		http.Error(w, internalError.Message, http.StatusInternalServerError)
		return
	}

	renderPage(w, r, http.StatusOK, pageMemberList, memberListPage{Members: members})
}
