package daily_music

import (
	"testing"

	"github.com/gongcheng0311-dotcom/daily-music/cons"
	"github.com/gongcheng0311-dotcom/daily-music/service"
)

// 宿主应用只 import 根包就能订阅会话事件（SessionEvent 是 service 类型的别名）。
func TestSessionEventAlias(t *testing.T) {
	h := service.NewSessionEventHub()

	var got []SessionEvent
	unsub := h.Subscribe(func(evt SessionEvent) { got = append(got, evt) })
	defer unsub()

	h.Publish(service.SessionEvent{Type: cons.EventSessionSignedIn, UserID: 3})
	if len(got) != 1 || got[0].UserID != 3 || got[0].Type != cons.EventSessionSignedIn {
		t.Fatalf("unexpected events: %+v", got)
	}
}
