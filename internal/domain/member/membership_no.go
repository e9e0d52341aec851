package member

import (
	"fmt"
	"math/rand"
	"time"
)

// GenerateMembershipNumber 生成借书证号
// 格式: LIB + Unix时间戳 + 4位随机数
// 时间戳保证大体有序，随机数降低同秒注册的冲突概率；
// 最终唯一性由数据库唯一索引兜底，冲突时重新生成
func GenerateMembershipNumber() string {
	timestamp := time.Now().Unix()
	random := rand.Intn(10000)
	return fmt.Sprintf("LIB%d%04d", timestamp, random)
}
