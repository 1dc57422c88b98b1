// Package model はドメインモデルを定義する。
package model

import (
	"errors"
	"fmt"
)

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: member, validation, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeDuplicateMember   = "DUPLICATE_MEMBER"
	ErrCodeMemberNotFound    = "MEMBER_NOT_FOUND"
	ErrCodeInvalidMemberName = "INVALID_MEMBER_NAME"
	ErrCodeInvalidMemberID   = "INVALID_MEMBER_ID"
)

// DuplicateMemberMessage は重複会員エラーの固定メッセージ。
const DuplicateMemberMessage = "이미 존재하는 회원입니다."

// NewDuplicateMemberError は同名の会員が既に存在する場合のエラーを生成する。
// メッセージは常にDuplicateMemberMessageとなる。
func NewDuplicateMemberError() *APIError {
	return &APIError{
		Code:     ErrCodeDuplicateMember,
		Message:  DuplicateMemberMessage,
		Category: "member",
		Action:   "別の名前で登録してください。",
	}
}

// NewMemberNotFoundError は会員が見つからない場合のエラーを生成する。
func NewMemberNotFoundError(id int64) *APIError {
	return &APIError{
		Code:     ErrCodeMemberNotFound,
		Message:  fmt.Sprintf("指定された会員が見つかりません: %d", id),
		Category: "member",
		Action:   "会員IDを確認してください。",
	}
}

// NewInvalidMemberNameError は会員名が無効な場合のエラーを生成する。
func NewInvalidMemberNameError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidMemberName,
		Message:  "会員名が空です。",
		Category: "validation",
		Action:   "名前を入力してください。",
	}
}

// NewInvalidMemberIDError は会員IDの形式が無効な場合のエラーを生成する。
func NewInvalidMemberIDError(raw string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidMemberID,
		Message:  fmt.Sprintf("無効な会員IDです: %s", raw),
		Category: "validation",
		Action:   "会員IDには正の整数を指定してください。",
	}
}

// IsDuplicateMember はerrが重複会員エラーを含むかどうかを返す。
func IsDuplicateMember(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == ErrCodeDuplicateMember
}
