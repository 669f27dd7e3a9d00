package runner_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/tendril/pkg/adapters/memory"
	"github.com/aretw0/tendril/pkg/domain"
	"github.com/aretw0/tendril/pkg/runner"
	"github.com/aretw0/tendril/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRunner_TextConversation(t *testing.T) {
	engine := newEngine(t)
	var out bytes.Buffer

	r := runner.NewRunner(runner.WithIO(strings.NewReader("我想买衣服\n  中号\t\n多少钱\n"), &out))
	final, err := r.Run(context.Background(), engine, nil)
	require.NoError(t, err)

	assert.Equal(t, runner.DefaultSessionID, final.SessionID)
	assert.Equal(t, 3, final.Turn)
	assert.Equal(t, []string{"buy-clothes-node1", "buy-clothes-node1", "buy-clothes-node3"}, final.History)
	assert.Equal(t, "多少钱", final.UserInput)

	want := "user: bot: 请问您需要的尺码？\n\n" +
		"user: bot: 好的，您要的尺码是中，请问还需要什么？\n\n" +
		"user: bot: 这件衣服的价格是199元\n\n" +
		"[System] " + runner.EndMessage + "\n"
	assert.Equal(t, want, out.String())
}

func TestRunner_BlankUtteranceIsATurn(t *testing.T) {
	var out bytes.Buffer
	r := runner.NewRunner(runner.WithIO(strings.NewReader("我想买衣服\n\n中号\n"), &out))
	final, err := r.Run(context.Background(), newEngine(t), nil)
	require.NoError(t, err)

	assert.Equal(t, 3, final.Turn)
	assert.Equal(t, "中", final.Slots["size"])
	assert.Equal(t, 2, strings.Count(out.String(), "bot: 请问您需要的尺码？"), "the blank turn asks again")
}

func TestRunner_ExitCommands(t *testing.T) {
	for _, cmd := range []string{"exit", "quit"} {
		t.Run(cmd, func(t *testing.T) {
			var out bytes.Buffer
			r := runner.NewRunner(runner.WithIO(strings.NewReader("我想买衣服\n"+cmd+"\n中号\n"), &out))
			final, err := r.Run(context.Background(), newEngine(t), nil)
			require.NoError(t, err)
			assert.Equal(t, 1, final.Turn)
			assert.NotContains(t, out.String(), runner.EndMessage)
		})
	}
}

func TestRunner_NoReachableIntentEndsSession(t *testing.T) {
	handler := new(MockHandler)
	handler.On("Input", mock.Anything).Return("你好", nil).Once()
	handler.On("SystemOutput", mock.Anything, runner.EndMessage).Return(nil).Once()

	r := runner.NewRunner(runner.WithInputHandler(handler))
	initial := domain.NewState("empty")

	final, err := r.Run(context.Background(), newEngine(t), initial)
	require.NoError(t, err)
	assert.Same(t, initial, final)
	assert.Zero(t, final.Turn)
	handler.AssertExpectations(t)
}

func TestRunner_UnresolvedReferenceIsFatal(t *testing.T) {
	handler := new(MockHandler)
	handler.On("Input", mock.Anything).Return("我想买衣服", nil).Once()

	r := runner.NewRunner(runner.WithInputHandler(handler))
	_, err := r.Run(context.Background(), newEngine(t), domain.NewState("s1", "ghost"))
	assert.ErrorIs(t, err, domain.ErrUnresolvedReference)
	handler.AssertNotCalled(t, "Output", mock.Anything, mock.Anything)
}

func TestRunner_MaxInputSize(t *testing.T) {
	var out bytes.Buffer
	r := runner.NewRunner(
		runner.WithIO(strings.NewReader("我想买衣服我想买衣服\n我想买衣服\n"), &out),
		runner.WithMaxInputSize(20),
	)
	final, err := r.Run(context.Background(), newEngine(t), nil)
	require.NoError(t, err)

	assert.Equal(t, 1, final.Turn)
	assert.Contains(t, out.String(), runner.ErrInputTooLarge.Error())
}

func TestRunner_RejectedInputContinues(t *testing.T) {
	handler := new(MockHandler)
	handler.On("Input", mock.Anything).Return("\xff\xfe", nil).Once()
	handler.On("Input", mock.Anything).Return("", io.EOF).Once()
	handler.On("SystemOutput", mock.Anything, mock.MatchedBy(func(msg string) bool {
		return strings.Contains(msg, runner.ErrInvalidUTF8.Error())
	})).Return(nil).Once()

	r := runner.NewRunner(runner.WithInputHandler(handler))
	_, err := r.Run(context.Background(), newEngine(t), nil)
	require.NoError(t, err)
	handler.AssertExpectations(t)
}

func TestRunner_ReplyCarriesTurnOutcome(t *testing.T) {
	handler := new(MockHandler)
	handler.On("Input", mock.Anything).Return("今天天气怎么样", nil).Once()
	handler.On("Input", mock.Anything).Return("", io.EOF).Once()
	handler.On("Output", mock.Anything, runner.Reply{
		SessionID: "w1",
		Text:      "请问您在哪个城市？",
		Action:    domain.ActionAsk,
		HitIntent: "weather-ask",
		NeedSlot:  "city",
	}).Return(nil).Once()

	r := runner.NewRunner(runner.WithInputHandler(handler), runner.WithSessionID("w1"))
	_, err := r.Run(context.Background(), newEngine(t), nil)
	require.NoError(t, err)
	handler.AssertExpectations(t)
}

func TestRunner_ContextCancelled(t *testing.T) {
	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	r := runner.NewRunner(runner.WithIO(pr, io.Discard))

	done := make(chan error, 1)
	go func() {
		_, err := r.Run(ctx, newEngine(t), nil)
		done <- err
	}()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Runner hung")
	}
}

func TestRunner_SessionsResume(t *testing.T) {
	engine := newEngine(t)
	store := memory.NewStore()
	sessions := session.NewManager(store)
	ctx := context.Background()

	first := runner.NewRunner(
		runner.WithIO(strings.NewReader("我想买衣服\n"), io.Discard),
		runner.WithSessions(sessions),
		runner.WithSessionID("shop"),
	)
	_, err := first.Run(ctx, engine, nil)
	require.NoError(t, err)

	saved, err := store.Load(ctx, "shop")
	require.NoError(t, err)
	assert.Equal(t, "size", saved.NeedSlot)

	var out bytes.Buffer
	second := runner.NewRunner(
		runner.WithIO(strings.NewReader("大号\n"), &out),
		runner.WithSessions(sessions),
		runner.WithSessionID("shop"),
	)
	final, err := second.Run(ctx, engine, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, final.Turn)
	assert.Contains(t, out.String(), "bot: 好的，您要的尺码是大，请问还需要什么？")

	saved, err = store.Load(ctx, "shop")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"size": "大"}, saved.Slots)
}

func TestRunner_InitialStateIsSaved(t *testing.T) {
	store := memory.NewStore()
	initial := domain.NewState("seeded", "buy-clothes-node3")

	r := runner.NewRunner(
		runner.WithIO(strings.NewReader("多少钱\n"), io.Discard),
		runner.WithSessions(session.NewManager(store)),
	)
	final, err := r.Run(context.Background(), newEngine(t), initial)
	require.NoError(t, err)
	assert.True(t, runner.Finished(final))

	saved, err := store.Load(context.Background(), "seeded")
	require.NoError(t, err)
	assert.Equal(t, 1, saved.Turn)
}

func TestRunner_HeadlessUsesJSON(t *testing.T) {
	var out bytes.Buffer
	r := runner.NewRunner(
		runner.WithIO(strings.NewReader(`{"input":"多少钱"}`+"\n"), &out),
		runner.WithHeadless(true),
	)
	_, err := r.Run(context.Background(), newEngine(t), domain.NewState("h1", "buy-clothes-node3"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.JSONEq(t, `{"session_id":"h1","text":"这件衣服的价格是199元","action":"answer","hit_intent":"buy-clothes-node3","finished":true}`, lines[0])
	assert.JSONEq(t, `{"system":"`+runner.EndMessage+`"}`, lines[1])
}
