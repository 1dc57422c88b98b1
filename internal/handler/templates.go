package handler

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

// ページテンプレート名。各ページはlayout.htmlのcontentブロックを定義する。
const (
	pageHome       = "home.html"
	pageHello      = "hello.html"
	pageHelloMVC   = "hello_mvc.html"
	pageMemberForm = "member_form.html"
	pageMemberList = "member_list.html"
)

var pages = mustParsePages(pageHome, pageHello, pageHelloMVC, pageMemberForm, pageMemberList)

// mustParsePages はページごとにレイアウトと組み合わせたテンプレートを生成する。
// 埋め込みテンプレートの構文エラーは起動時にpanicする。
func mustParsePages(names ...string) map[string]*template.Template {
	parsed := make(map[string]*template.Template, len(names))
	for _, name := range names {
		parsed[name] = template.Must(template.ParseFS(templateFS, "templates/layout.html", "templates/"+name))
	}
	return parsed
}

// renderPage はページをバッファに描画してから書き込む。
// 描画に失敗した場合は途中まで書き込まず500を返す。
func renderPage(w http.ResponseWriter, r *http.Request, statusCode int, page string, data any) {
	tmpl, ok := pages[page]
	if !ok {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		logInternalError(r, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	buf.WriteTo(w)
}
