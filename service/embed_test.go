package service

import "testing"

func TestExtractQQMusicID(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://y.qq.com/n/ryqq/player/index.html?songmid=003aAYrm3GE0Ac", "003aAYrm3GE0Ac"},
		{"https://i.y.qq.com/v8/playsong.html?songmid=abc123&ADTAG=x", "abc123"},
		{"https://y.qq.com/n/ryqq/songDetail/003aAYrm3GE0Ac", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := ExtractQQMusicID(tc.url); got != tc.want {
			t.Errorf("ExtractQQMusicID(%q) = %q, want %q", tc.url, got, tc.want)
		}
	}
}

func TestQQMusicEmbedURL(t *testing.T) {
	if got := QQMusicEmbedURL(""); got != "" {
		t.Fatalf("empty songmid should yield empty url, got %q", got)
	}
	want := "https://y.qq.com/n/ryqq/player/index.html?songmid=abc123"
	if got := QQMusicEmbedURL("abc123"); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestBilibiliEmbedURL(t *testing.T) {
	if got := BilibiliEmbedURL("", 1); got != "" {
		t.Fatalf("empty bvid should yield empty url, got %q", got)
	}

	want := "https://player.bilibili.com/player.html?bvid=BV1xx411c7mD&page=1&high_quality=1&danmaku=0&autoplay=0"
	if got := BilibiliEmbedURL("BV1xx411c7mD", 1); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	// page <= 0 回退到第 1P
	if got := BilibiliEmbedURL("BV1xx411c7mD", 0); got != want {
		t.Fatalf("page fallback: got %q", got)
	}
}
