// Package sequence 生成定宽人读单号（前缀 + 零填充递增序号）。
//
// 单号定宽零填充，字典序即数值序，因此"取最大单号"可以直接按字符串排序。
// 默认分配路径是"读最大值再插入"，读与插入不在同一事务内：两个并发请求
// 读到同一最大值会算出同一个下一号。该空档沿袭自原始实现，仅在开启
// sequence.hardened（Redis 计数器）时才被关闭。
package sequence

import (
	"fmt"
	"strconv"
	"strings"
)

// Auto 单号字段请求自动生成的哨兵值
const Auto = "NA"

// IsAuto 判断单号字段是否请求自动生成
func IsAuto(code string) bool {
	return code == Auto
}

// Next 根据当前最大单号计算下一个单号。
// latest 为空表示该前缀下尚无单号，从 1 开始。
// latest 去掉前缀后必须是纯数字，否则报错而不是静默回退到 1。
func Next(prefix string, width int, latest string) (string, error) {
	if prefix == "" {
		return "", fmt.Errorf("单号前缀不能为空")
	}
	if width <= 0 {
		return "", fmt.Errorf("单号位宽无效: %d", width)
	}

	if latest == "" {
		return fmt.Sprintf("%s%0*d", prefix, width, 1), nil
	}

	if !strings.HasPrefix(latest, prefix) {
		return "", fmt.Errorf("单号 %q 与前缀 %q 不匹配", latest, prefix)
	}
	suffix := strings.TrimPrefix(latest, prefix)
	n, err := strconv.ParseUint(suffix, 10, 64)
	if err != nil {
		return "", fmt.Errorf("单号 %q 序号部分非数字: %w", latest, err)
	}

	return fmt.Sprintf("%s%0*d", prefix, width, n+1), nil
}
