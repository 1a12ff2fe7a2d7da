// Package api 設定 gin 路由。
//
// /data 資源的 handlers 位於 handlers 子包，
// 負責把 HTTP 請求轉成 service 呼叫，再把結果轉回 JSON 響應。
package api
