package validate

import (
	"fmt"
	"regexp"
	"strings"
)

// 表单校验规则（与前端保持一致）
const (
	NameMin     = 20
	NameMax     = 60
	PasswordMin = 8
	PasswordMax = 16
	AddressMax  = 400
	RatingMin   = 1
	RatingMax   = 5
)

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	upperRe = regexp.MustCompile(`[A-Z]`)
	// 特殊字符集合与密码规则一致
	symbolRe = regexp.MustCompile(`[!@#$%^&*()_+\-=\[\]{};':"\\|,.<>\/?]`)
)

// 每个函数都是纯函数：返回 "" 表示通过，否则返回给用户看的提示文案。

func Name(name string) string {
	if name == "" {
		return "Name is required."
	}
	if len(name) < NameMin {
		return fmt.Sprintf("Name must be at least %d characters.", NameMin)
	}
	if len(name) > NameMax {
		return fmt.Sprintf("Name must be no more than %d characters.", NameMax)
	}
	return ""
}

func Email(email string) string {
	if email == "" {
		return "Email is required."
	}
	if !emailRe.MatchString(email) {
		return "Invalid email address."
	}
	return ""
}

func Password(password string) string {
	if password == "" {
		return "Password is required."
	}
	if len(password) < PasswordMin || len(password) > PasswordMax {
		return fmt.Sprintf("Password must be between %d and %d characters.", PasswordMin, PasswordMax)
	}
	if !upperRe.MatchString(password) || !symbolRe.MatchString(password) {
		return "Password must be 8-16 characters, include at least one uppercase letter and one special character."
	}
	return ""
}

func Address(address string) string {
	if address == "" {
		return "Address is required."
	}
	if len(address) > AddressMax {
		return fmt.Sprintf("Address must be no more than %d characters.", AddressMax)
	}
	return ""
}

func Rating(value int) string {
	if value < RatingMin || value > RatingMax {
		return fmt.Sprintf("Rating must be between %d and %d.", RatingMin, RatingMax)
	}
	return ""
}

// First 返回第一条非空错误，方便服务层一次校验多个字段
func First(msgs ...string) string {
	for _, m := range msgs {
		if strings.TrimSpace(m) != "" {
			return m
		}
	}
	return ""
}
