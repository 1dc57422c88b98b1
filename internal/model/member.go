// Package model はドメインモデルを定義する。
package model

// Member は登録済みの会員を表す。
// IDは保存時にストレージ層が採番する。0は未保存を意味する。
type Member struct {
	ID   int64
	Name string
}
