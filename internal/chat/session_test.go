package chat

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrisense/farm_assist_gemini/internal/common"
	"github.com/agrisense/farm_assist_gemini/internal/identify"
)

type stubResponder struct {
	answer string
	err    error
	delay  time.Duration
	calls  atomic.Int64
	block  chan struct{}
}

func (s *stubResponder) AnswerQuery(ctx context.Context, query string, reqCtx *common.RequestContext) (string, *common.TokenUsage, error) {
	s.calls.Add(1)
	if s.block != nil {
		<-s.block
	}
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	return s.answer, nil, s.err
}

func TestSendAppendsUserAndAssistantTurns(t *testing.T) {
	responder := &stubResponder{answer: "Armyworm damage shows as ragged leaf holes."}
	session := NewSession("s1", responder)

	msg, err := session.Send(context.Background(), nil, "My maize has armyworm", "")
	require.NoError(t, err)
	assert.Equal(t, RoleAssistant, msg.Role)
	assert.NotEmpty(t, msg.Text)
	assert.False(t, strings.HasPrefix(msg.Text, identify.RefusalMessage))

	history := session.Messages()
	require.Len(t, history, 2)
	assert.Equal(t, RoleUser, history[0].Role)
	assert.Equal(t, "My maize has armyworm", history[0].Text)
	assert.Equal(t, RoleAssistant, history[1].Role)
}

func TestSendRecordsAttachedImageOnUserTurn(t *testing.T) {
	responder := &stubResponder{answer: "Looks like early blight."}
	session := NewSession("s1", responder)

	_, err := session.Send(context.Background(), nil, "what is wrong with this tomato leaf", "uploads/leaf.jpg")
	require.NoError(t, err)

	history := session.Messages()
	require.Len(t, history, 2)
	assert.Equal(t, "uploads/leaf.jpg", history[0].AttachedImage)
	assert.Empty(t, history[1].AttachedImage, "assistant turns carry no image")
}

func TestSendSanitizesAssistantText(t *testing.T) {
	responder := &stubResponder{answer: "# Advice\n**Rotate** your crops.\nNote: general guidance only"}
	session := NewSession("s1", responder)

	msg, err := session.Send(context.Background(), nil, "how do I stop blight on potato", "")
	require.NoError(t, err)
	assert.Equal(t, "Rotate your crops.", msg.Text)
}

func TestSecondSendWhileAwaitingIsRejected(t *testing.T) {
	responder := &stubResponder{answer: "ok", block: make(chan struct{})}
	session := NewSession("s1", responder)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := session.Send(context.Background(), nil, "first farm question about maize", "")
		assert.NoError(t, err)
	}()

	// wait for the first call to reach the responder
	require.Eventually(t, func() bool { return responder.calls.Load() == 1 },
		time.Second, 5*time.Millisecond)

	_, err := session.Send(context.Background(), nil, "second question", "")
	assert.ErrorIs(t, err, ErrAwaitingResponse)
	assert.Equal(t, int64(1), responder.calls.Load(), "no second outstanding call")

	close(responder.block)
	<-done

	history := session.Messages()
	require.Len(t, history, 2, "no duplicate user message")
	assert.Equal(t, "first farm question about maize", history[0].Text)
}

func TestFailedCallOutOfDomainGetsExactRefusal(t *testing.T) {
	responder := &stubResponder{err: errors.New("upstream 503")}
	session := NewSession("s1", responder)

	msg, err := session.Send(context.Background(), nil, "tell me a joke", "")
	require.NoError(t, err)
	assert.Equal(t, identify.RefusalMessage, msg.Text)
}

func TestFailedCallInDomainGetsSingleErrorTurn(t *testing.T) {
	responder := &stubResponder{err: errors.New("upstream 503")}
	session := NewSession("s1", responder)

	msg, err := session.Send(context.Background(), nil, "what fertilizer for maize", "")
	require.NoError(t, err)
	assert.Contains(t, msg.Text, "couldn't reach the assistant")
	assert.Contains(t, msg.Text, "upstream 503")

	// exactly one assistant message, no retry
	require.Len(t, session.Messages(), 2)
	assert.Equal(t, int64(1), responder.calls.Load())
}

func TestSessionReturnsToIdleAfterFailure(t *testing.T) {
	responder := &stubResponder{err: errors.New("boom")}
	session := NewSession("s1", responder)

	_, err := session.Send(context.Background(), nil, "crop rotation tips", "")
	require.NoError(t, err)

	responder.err = nil
	responder.answer = "Rotate legumes with cereals."
	msg, err := session.Send(context.Background(), nil, "crop rotation tips", "")
	require.NoError(t, err)
	assert.Equal(t, "Rotate legumes with cereals.", msg.Text)
}

func TestManagerReturnsSameSession(t *testing.T) {
	m := NewManager(&stubResponder{answer: "ok"})
	a := m.GetOrCreate("abc")
	b := m.GetOrCreate("abc")
	assert.Same(t, a, b)
	assert.NotSame(t, a, m.GetOrCreate("other"))
}

func TestMessagesOrderedBySend(t *testing.T) {
	responder := &stubResponder{answer: "answer"}
	session := NewSession("s1", responder)

	for i := 0; i < 3; i++ {
		_, err := session.Send(context.Background(), nil, "soil health question", "")
		require.NoError(t, err)
	}

	history := session.Messages()
	require.Len(t, history, 6)
	for i, msg := range history {
		if i%2 == 0 {
			assert.Equal(t, RoleUser, msg.Role)
		} else {
			assert.Equal(t, RoleAssistant, msg.Role)
		}
		if i > 0 {
			assert.False(t, msg.CreatedAt.Before(history[i-1].CreatedAt))
		}
	}
}
