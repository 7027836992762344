package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword bcrypt 加盐哈希；入参已过长度校验（8-16），不会触发 72 字节上限
func HashPassword(pw string) string {
	b, _ := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(b)
}

func CheckPassword(pw, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(pw)) == nil
}
