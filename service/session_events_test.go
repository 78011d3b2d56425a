package service

import (
	"testing"

	"github.com/gongcheng0311-dotcom/daily-music/cons"
)

func TestSessionEventHub_SubscribePublish(t *testing.T) {
	h := NewSessionEventHub()

	var got []SessionEvent
	unsub := h.Subscribe(func(evt SessionEvent) {
		got = append(got, evt)
	})
	if h.SubscriberCount() != 1 {
		t.Fatalf("expected 1 subscriber, got %d", h.SubscriberCount())
	}

	h.Publish(SessionEvent{Type: cons.EventSessionSignedIn, UserID: 7})
	if len(got) != 1 || got[0].UserID != 7 || got[0].Type != cons.EventSessionSignedIn {
		t.Fatalf("unexpected events: %+v", got)
	}
	// Publish 给 At 补当前时间
	if got[0].At.IsZero() {
		t.Fatal("expected At to be filled")
	}

	// 退订后不再收到
	unsub()
	if h.SubscriberCount() != 0 {
		t.Fatalf("expected 0 subscribers, got %d", h.SubscriberCount())
	}
	h.Publish(SessionEvent{Type: cons.EventSessionSignedOut, UserID: 7})
	if len(got) != 1 {
		t.Fatalf("unsubscribed callback still invoked: %+v", got)
	}
}

func TestSessionEventHub_MultipleSubscribers(t *testing.T) {
	h := NewSessionEventHub()

	var a, b int
	unsubA := h.Subscribe(func(SessionEvent) { a++ })
	h.Subscribe(func(SessionEvent) { b++ })

	h.Publish(SessionEvent{Type: cons.EventSessionSignedIn, UserID: 1})
	if a != 1 || b != 1 {
		t.Fatalf("a=%d b=%d, want 1 1", a, b)
	}

	unsubA()
	unsubA() // 重复退订应无副作用
	h.Publish(SessionEvent{Type: cons.EventSessionSignedOut, UserID: 1})
	if a != 1 || b != 2 {
		t.Fatalf("a=%d b=%d, want 1 2", a, b)
	}
}

func TestSessionEventHub_NilCallback(t *testing.T) {
	h := NewSessionEventHub()
	unsub := h.Subscribe(nil)
	if h.SubscriberCount() != 0 {
		t.Fatalf("nil callback should not register, got %d", h.SubscriberCount())
	}
	unsub()
	h.Publish(SessionEvent{UserID: 1})
}
