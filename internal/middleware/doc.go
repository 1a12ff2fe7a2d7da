// Package middleware 提供了 HTTP 請求處理的中間件。
//
// 這個包包含請求日誌與 Prometheus 指標收集，
// 在每個 HTTP 請求的前後執行。
package middleware
