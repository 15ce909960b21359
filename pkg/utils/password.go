package utils

import "golang.org/x/crypto/bcrypt"

// 固定 10 轮，与既有数据的哈希成本保持一致
const bcryptCost = 10

// HashPassword bcrypt 对明文长度有上限（72 字节），超限返回错误而不是空哈希
func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func CheckPassword(pw, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(pw)) == nil
}
