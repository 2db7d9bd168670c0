package respond

import (
	"regexp"
)

var (
	// データベースパスワードパターン（DSN内）
	dbPasswordPattern = regexp.MustCompile(`://([^:/@]+):([^@]+)@`)

	// 設定 JSON 内のパスワード
	passwordFieldPattern = regexp.MustCompile(`("password"\s*:\s*)"[^"]*"`)

	// SMTP AUTH PLAIN の資格情報（base64）
	authPlainPattern = regexp.MustCompile(`(AUTH PLAIN )[A-Za-z0-9+/=]+`)
)

// SanitizeError は機密情報をマスクしたエラーメッセージを返す
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	msg = dbPasswordPattern.ReplaceAllString(msg, "://$1:****@")
	msg = passwordFieldPattern.ReplaceAllString(msg, `$1"****"`)
	msg = authPlainPattern.ReplaceAllString(msg, "${1}****")
	return msg
}
