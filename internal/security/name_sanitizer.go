// Package security はアプリケーションのセキュリティ機能を提供する。
//
// NameSanitizer は利用者が入力した会員名からHTMLマークアップを取り除く。
// bluemondayのStrictPolicyで全タグを除去し、前後の空白を切り詰める。
package security

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// NameSanitizer は会員名のサニタイズ機能のインターフェースを定義する。
type NameSanitizer interface {
	// Sanitize はタグを除去し前後の空白を切り詰めた名前を返す。
	// 空文字列または空白とタグのみの入力には空文字列を返す。
	// 出力を再度Sanitizeしても結果は変化しない。
	Sanitize(raw string) string
}

// nameSanitizer はNameSanitizerの実装。
// bluemondayのポリシーはスレッドセーフなので共有して使う。
type nameSanitizer struct {
	policy *bluemonday.Policy
}

// NewNameSanitizer はNameSanitizerの新しいインスタンスを生成する。
func NewNameSanitizer() NameSanitizer {
	return &nameSanitizer{
		policy: bluemonday.StrictPolicy(),
	}
}

// maxSanitizePasses は実体参照の多重エンコードを解く最大回数。
const maxSanitizePasses = 8

// Sanitize はタグを除去し前後の空白を切り詰めた名前を返す。
// StrictPolicyは&などをエスケープして返すため、テンプレート側での二重エスケープを避けるためにアンエスケープする。
// アンエスケープでタグが復元され得るので、結果が変化しなくなるまで繰り返す。
// 上限回数内に収束しない入力は空文字列として拒否する。
func (s *nameSanitizer) Sanitize(raw string) string {
	cleaned := strings.TrimSpace(raw)
	for i := 0; i < maxSanitizePasses; i++ {
		if cleaned == "" {
			return ""
		}
		next := strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(cleaned)))
		if next == cleaned {
			return cleaned
		}
		cleaned = next
	}
	return ""
}
