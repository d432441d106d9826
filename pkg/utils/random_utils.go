package utils

import (
	"crypto/rand"
	"math/big"
)

// 订单追踪码字符集与前缀
const (
	trackingAlphabet   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	trackingPrefix     = "POA"
	trackingCodeLength = 8
)

// GenerateTrackingCode 生成订单追踪码: POA + 8位大写字母或数字，逐位均匀采样
// 不做碰撞检测，唯一性由数据库的唯一索引保证
func GenerateTrackingCode() string {
	alphabetSize := big.NewInt(int64(len(trackingAlphabet)))

	code := make([]byte, trackingCodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			panic("generate tracking code failed")
		}
		code[i] = trackingAlphabet[n.Int64()]
	}
	return trackingPrefix + string(code)
}

// RandomSuffix 生成一个 [0, 1e9) 的安全随机数，用于上传文件命名
func RandomSuffix() int64 {
	n, err := rand.Int(rand.Reader, big.NewInt(1e9))
	if err != nil {
		panic("generate random suffix failed")
	}
	return n.Int64()
}
