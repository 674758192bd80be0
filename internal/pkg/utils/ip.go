package utils

import (
	"net"
	"net/netip"
	"strings"
)

// NormalizeIP 日志与登录记录统一使用的客户端地址
// 转发列表取第一跳，去掉端口，IPv4 映射地址还原为 IPv4；无法解析时原样返回
func NormalizeIP(addr string) string {
	first, _, _ := strings.Cut(addr, ",")
	first = strings.TrimSpace(first)
	if first == "" {
		return ""
	}
	if host, _, err := net.SplitHostPort(first); err == nil {
		first = host
	}
	ip, err := netip.ParseAddr(first)
	if err != nil {
		return first
	}
	return ip.Unmap().String()
}
