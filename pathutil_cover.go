package daily_music

import (
	"os"
	"path/filepath"
	"strings"
)

// 封面图路径处理。远程地址原样写库，本地相对路径补上配置的前缀，
// 交给宿主应用的静态资源路由处理。

// NormalizeCoverURL 规范化封面地址。
func (e *MusicEngine) NormalizeCoverURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	prefix := e.config.CoverURLPrefix
	if prefix == "" {
		prefix = "uploads/covers"
	}
	return strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(raw, "/")
}

// DefaultCoverUploadDir 默认封面上传目录。
// "main.go 所在目录"在编译后的二进制里不可得，用可执行文件所在目录
// 作为应用根目录，更适合线上部署；拿不到时兜底到系统临时目录。
func DefaultCoverUploadDir(configured string) string {
	if strings.TrimSpace(configured) != "" {
		return configured
	}
	if exe, err := os.Executable(); err == nil {
		return filepath.Join(filepath.Dir(exe), "uploads", "covers")
	}
	return filepath.Join(os.TempDir(), "daily-music-covers")
}
