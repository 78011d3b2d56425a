package service

import (
	"sync"
	"time"
)

// SessionEvent 会话变化事件（登录/登出）
type SessionEvent struct {
	Type   string    `json:"type"` // cons.EventSessionSignedIn / SignedOut
	UserID uint64    `json:"user_id"`
	At     time.Time `json:"at"`
}

// SessionEventHub 会话事件总线。
// UI（导航栏用户菜单等）注册回调感知登录态变化，Subscribe 返回退订函数，
// 调用方在自己的生命周期结束时退订，不留全局状态。
type SessionEventHub struct {
	mu   sync.RWMutex
	seq  uint64
	subs map[uint64]func(SessionEvent)
}

func NewSessionEventHub() *SessionEventHub {
	return &SessionEventHub{subs: make(map[uint64]func(SessionEvent))}
}

// Subscribe 注册回调，返回的函数用于退订。退订后回调不会再被调用。
func (h *SessionEventHub) Subscribe(fn func(SessionEvent)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	h.mu.Lock()
	h.seq++
	id := h.seq
	h.subs[id] = fn
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		delete(h.subs, id)
		h.mu.Unlock()
	}
}

// Publish 同步调用当前全部订阅者。
func (h *SessionEventHub) Publish(evt SessionEvent) {
	if evt.At.IsZero() {
		evt.At = time.Now()
	}
	h.mu.RLock()
	fns := make([]func(SessionEvent), 0, len(h.subs))
	for _, fn := range h.subs {
		fns = append(fns, fn)
	}
	h.mu.RUnlock()

	for _, fn := range fns {
		fn(evt)
	}
}

// SubscriberCount 当前订阅者数量（测试/调试用）。
func (h *SessionEventHub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
