package handler

import (
	"net/http"

	"github.com/hitoshi/hellomember/internal/model"
)

// helloPage はhelloページの表示データ。
type helloPage struct {
	Data string
}

// helloMVCPage はhello-mvcページの表示データ。
type helloMVCPage struct {
	Name string
}

// helloResponse はhello-apiのレスポンス。
type helloResponse struct {
	Name string `json:"name"`
}

// missingNameError はnameクエリパラメータが指定されていない場合のエラー。
var missingNameError = &model.APIError{
	Code:     "MISSING_NAME",
	Message:  "nameパラメータが指定されていません。",
	Category: "validation",
	Action:   "?name=で名前を指定してください。",
}

// Hello は固定データを埋め込んだページを返す。
// GET /hello
func Hello(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, http.StatusOK, pageHello, helloPage{Data: "hello!"})
}

// HelloMVC はnameパラメータ（任意）を表示するページを返す。
// GET /hello-mvc?name=
func HelloMVC(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, http.StatusOK, pageHelloMVC, helloMVCPage{Name: r.URL.Query().Get("name")})
}

// HelloString は"hello <name>"をプレーンテキストで返す。nameは必須。
// GET /hello-string?name=
func HelloString(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if !query.Has("name") {
		http.Error(w, missingNameError.Message, http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("hello " + query.Get("name")))
}

// HelloAPI は{"name": "<name>"}をJSONで返す。nameは必須。
// GET /hello-api?name=
func HelloAPI(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if !query.Has("name") {
		writeAPIErrorResponse(w, http.StatusBadRequest, missingNameError)
		return
	}

	writeJSON(w, http.StatusOK, helloResponse{Name: query.Get("name")})
}
