package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventSystemFireStopsAtFirstHandler(t *testing.T) {
	es := NewEventSystem()
	var calls []string

	first, second := &struct{ n int }{1}, &struct{ n int }{2}
	assert.True(t, es.Register(EVENT_CODE_RESIZED, first, func(code SystemEventCode, sender, listener interface{}, data EventContext) bool {
		calls = append(calls, "first")
		assert.Equal(t, uint32(640), data.Data.U32[0])
		return true
	}))
	assert.True(t, es.Register(EVENT_CODE_RESIZED, second, func(code SystemEventCode, sender, listener interface{}, data EventContext) bool {
		calls = append(calls, "second")
		return true
	}))

	ctx := EventContext{}
	ctx.Data.U32[0] = 640
	assert.True(t, es.Fire(EVENT_CODE_RESIZED, nil, ctx))
	assert.Equal(t, []string{"first"}, calls)
}

func TestEventSystemRejectsDuplicateListener(t *testing.T) {
	es := NewEventSystem()
	listener := &struct{}{}
	cb := func(SystemEventCode, interface{}, interface{}, EventContext) bool { return false }

	assert.True(t, es.Register(EVENT_CODE_KEY_PRESSED, listener, cb))
	assert.False(t, es.Register(EVENT_CODE_KEY_PRESSED, listener, cb))
	assert.False(t, es.Register(EVENT_CODE_KEY_PRESSED, nil, nil))
}

func TestEventSystemUnregister(t *testing.T) {
	es := NewEventSystem()
	listener := &struct{}{}
	fired := 0
	es.Register(EVENT_CODE_APPLICATION_QUIT, listener, func(SystemEventCode, interface{}, interface{}, EventContext) bool {
		fired++
		return true
	})

	assert.True(t, es.Unregister(EVENT_CODE_APPLICATION_QUIT, listener))
	assert.False(t, es.Unregister(EVENT_CODE_APPLICATION_QUIT, listener))
	assert.False(t, es.Fire(EVENT_CODE_APPLICATION_QUIT, nil, EventContext{}))
	assert.Zero(t, fired)
}
