package passes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ormwire/internal/core/domain"
	"go.trai.ch/ormwire/internal/engine/passes"
)

func TestEventListener_ScopedToConnection(t *testing.T) {
	c := graph(t, []domain.ServiceConfig{
		{
			ID:    "app.audit",
			Class: `App\AuditListener`,
			Tags: []domain.Tag{{Name: domain.EventListenerTag, Attributes: domain.Attributes{
				"event": "postFlush", "connection": "other",
			}}},
		},
		{
			ID:    "app.everywhere",
			Class: `App\EverywhereListener`,
			Tags:  []domain.Tag{{Name: domain.EventListenerTag, Attributes: domain.Attributes{"event": "onFlush"}}},
		},
	}, "default", "other")

	require.NoError(t, process(t, passes.NewEventListener(newLogger(t)), c))

	defaultCalls := definition(t, c, domain.EventManagerID("default")).MethodCalls("addEventListener")
	otherCalls := definition(t, c, domain.EventManagerID("other")).MethodCalls("addEventListener")

	assert.NotContains(t, defaultCalls, domain.MethodCall{
		Method: "addEventListener",
		Args:   []any{[]any{"postFlush"}, domain.Ref("app.audit")},
	})
	assert.Contains(t, otherCalls, domain.MethodCall{
		Method: "addEventListener",
		Args:   []any{[]any{"postFlush"}, domain.Ref("app.audit")},
	})
	for _, calls := range [][]domain.MethodCall{defaultCalls, otherCalls} {
		assert.Contains(t, calls, domain.MethodCall{
			Method: "addEventListener",
			Args:   []any{[]any{"onFlush"}, domain.Ref("app.everywhere")},
		})
	}
}

func TestEventListener_AttachSubscriberOnOwningConnection(t *testing.T) {
	c := graph(t, nil, "default", "other")

	require.NoError(t, process(t, passes.NewEventListener(newLogger(t)), c))

	want := domain.MethodCall{
		Method: "addEventListener",
		Args:   []any{[]any{"loadClassMetadata"}, domain.Ref(domain.AttachEntityListenersID("default"))},
	}
	assert.Contains(t, definition(t, c, domain.EventManagerID("default")).Calls, want)
	assert.NotContains(t, definition(t, c, domain.EventManagerID("other")).Calls, want)
}

func TestEventListener_Subscribers(t *testing.T) {
	c := graph(t, []domain.ServiceConfig{
		{
			ID:    "app.subscriber",
			Class: `App\Subscriber`,
			Tags:  []domain.Tag{{Name: domain.EventSubscriberTag, Attributes: domain.Attributes{"connection": "default"}}},
		},
	}, "default", "other")

	require.NoError(t, process(t, passes.NewEventListener(newLogger(t)), c))

	want := domain.MethodCall{Method: "addEventSubscriber", Args: []any{domain.Ref("app.subscriber")}}
	assert.Contains(t, definition(t, c, domain.EventManagerID("default")).Calls, want)
	assert.NotContains(t, definition(t, c, domain.EventManagerID("other")).Calls, want)
}

func TestEventListener_MissingEvent(t *testing.T) {
	c := graph(t, []domain.ServiceConfig{
		{ID: "app.listener", Class: `App\Listener`, Tags: []domain.Tag{{Name: domain.EventListenerTag}}},
	})

	err := process(t, passes.NewEventListener(newLogger(t)), c)
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrInvalidConfiguration.Error())
}

func TestEventListener_AddsOnce(t *testing.T) {
	c := graph(t, nil)
	p := passes.NewEventListener(newLogger(t))

	require.NoError(t, process(t, p, c))
	require.NoError(t, process(t, p, c))

	assert.Len(t, definition(t, c, domain.EventManagerID("default")).MethodCalls("addEventListener"), 1)
	assert.Len(t, definition(t, c, domain.EventManagerID("default")).MethodCalls("addEventSubscriber"), 1)
}
