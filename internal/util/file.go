package util

import (
	"io"
	"net/http"
)

// DetectMimeType 读取文件头 512 字节探测 MIME 类型
func DetectMimeType(reader io.Reader) (string, error) {
	buffer := make([]byte, 512)
	n, err := reader.Read(buffer)
	if err != nil && err != io.EOF {
		return "", err
	}
	return http.DetectContentType(buffer[:n]), nil
}

// Truncate 截取字符串前 n 个字符，按 rune 计数，避免把多字节序列切成非法 UTF-8
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
