package service

import (
	"fmt"
	"regexp"
)

// 外链播放器的嵌入地址拼装。只做字符串层面的转换，不发任何请求。

var qqSongmidRe = regexp.MustCompile(`songmid=([^&]+)`)

// ExtractQQMusicID 从 QQ 音乐页面链接里提取 songmid 参数，取不到返回空串。
func ExtractQQMusicID(url string) string {
	m := qqSongmidRe.FindStringSubmatch(url)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}

// QQMusicEmbedURL 构建 QQ 音乐播放器嵌入链接。
func QQMusicEmbedURL(songmid string) string {
	if songmid == "" {
		return ""
	}
	return "https://y.qq.com/n/ryqq/player/index.html?songmid=" + songmid
}

// BilibiliEmbedURL 构建 B 站播放器嵌入链接（关弹幕、高画质、不自动播放）。
func BilibiliEmbedURL(bvid string, page int) string {
	if bvid == "" {
		return ""
	}
	if page <= 0 {
		page = 1
	}
	return fmt.Sprintf("https://player.bilibili.com/player.html?bvid=%s&page=%d&high_quality=1&danmaku=0&autoplay=0", bvid, page)
}
