package bots

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/genaichat/internal/commands"
	"github.com/ziadkadry99/genaichat/internal/logger"
)

// mockGenerator implements TextGenerator for testing.
type mockGenerator struct {
	mock.Mock
}

func (m *mockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func testTable(t *testing.T) *commands.Table {
	t.Helper()
	table, err := commands.New(map[string]string{
		"1": "Hello! I am the team assistant.",
		"2": "Summarize the following text",
	})
	require.NoError(t, err)
	return table
}

// newTestGateway wires a gateway over a processor with the test table.
func newTestGateway(t *testing.T, gen *mockGenerator) *Gateway {
	t.Helper()
	return NewGateway(NewProcessor(testTable(t), gen))
}

// captureLogs returns a context whose logger writes JSON lines into the buffer.
func captureLogs() (context.Context, *bytes.Buffer) {
	var buf bytes.Buffer
	l := logger.New(&buf, "debug", "json")
	return logger.WithContext(context.Background(), l), &buf
}

func dispatchJSON(t *testing.T, gw *Gateway, body string) Reply {
	t.Helper()
	event, err := DecodeEvent([]byte(body))
	require.NoError(t, err)
	ctx, _ := captureLogs()
	return gw.Dispatch(ctx, event)
}

func TestDispatchAddedToSpaceIsIgnored(t *testing.T) {
	gen := &mockGenerator{}
	reply := dispatchJSON(t, newTestGateway(t, gen), `{"chat":{"addedToSpacePayload":{"space":{"name":"spaces/1"}},"messagePayload":{"message":{"text":"hi"}}}}`)

	assert.True(t, reply.IsEmpty())
	gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestDispatchQuickCommand(t *testing.T) {
	gen := &mockGenerator{}
	reply := dispatchJSON(t, newTestGateway(t, gen), `{"chat":{"appCommandPayload":{
		"appCommandMetadata":{"appCommandId":1,"appCommandType":"QUICK_COMMAND"}}}}`)

	assert.Equal(t, "Hello! I am the team assistant.", reply.Text())
	gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestDispatchSlashCommand(t *testing.T) {
	gen := &mockGenerator{}
	gen.On("Generate", mock.Anything, "Summarize the following text. USER INPUT: the quarterly report").
		Return("A short summary.", nil).Once()

	reply := dispatchJSON(t, newTestGateway(t, gen), `{"chat":{"appCommandPayload":{
		"appCommandMetadata":{"appCommandId":"2","appCommandType":"SLASH_COMMAND"},
		"message":{"text":"/summarize the quarterly report","argumentText":" the quarterly report "}}}}`)

	assert.Equal(t, "A short summary.", reply.Text())
	gen.AssertExpectations(t)
}

func TestDispatchSlashCommandWithoutInput(t *testing.T) {
	gen := &mockGenerator{}
	gen.On("Generate", mock.Anything, "Summarize the following text. USER INPUT: ").Return("Nothing to summarize.", nil).Once()

	reply := dispatchJSON(t, newTestGateway(t, gen), `{"chat":{"appCommandPayload":{
		"appCommandMetadata":{"appCommandId":2,"appCommandType":"SLASH_COMMAND"}}}}`)

	assert.Equal(t, "Nothing to summarize.", reply.Text())
	gen.AssertExpectations(t)
}

func TestDispatchNormalizesCommandID(t *testing.T) {
	gen := &mockGenerator{}
	reply := dispatchJSON(t, newTestGateway(t, gen), `{"chat":{"appCommandPayload":{
		"appCommandMetadata":{"appCommandId":"001","appCommandType":"QUICK_COMMAND"}}}}`)

	assert.Equal(t, "Hello! I am the team assistant.", reply.Text())
}

func TestDispatchUnknownCommandFallsThrough(t *testing.T) {
	gen := &mockGenerator{}
	gen.On("Generate", mock.Anything, "what is the weather").Return("Sunny.", nil).Once()

	gw := newTestGateway(t, gen)
	event, err := DecodeEvent([]byte(`{"chat":{"appCommandPayload":{
		"appCommandMetadata":{"appCommandId":99,"appCommandType":"SLASH_COMMAND"},
		"message":{"text":"what is the weather"}}}}`))
	require.NoError(t, err)
	ctx, logs := captureLogs()

	reply := gw.Dispatch(ctx, event)

	assert.Equal(t, "Sunny.", reply.Text())
	assert.Contains(t, logs.String(), `"msg":"Unknown command ID."`)
	assert.Contains(t, logs.String(), `"command_id":"99"`)
	gen.AssertExpectations(t)
}

func TestDispatchNonNumericCommandIDFallsThrough(t *testing.T) {
	gen := &mockGenerator{}
	gen.On("Generate", mock.Anything, "hello").Return("Hi!", nil).Once()

	reply := dispatchJSON(t, newTestGateway(t, gen), `{"chat":{"appCommandPayload":{
		"appCommandMetadata":{"appCommandId":"abc","appCommandType":"QUICK_COMMAND"},
		"message":{"text":"hello"}}}}`)

	assert.Equal(t, "Hi!", reply.Text())
	gen.AssertExpectations(t)
}

func TestDispatchUnknownCommandTypeFallsThrough(t *testing.T) {
	gen := &mockGenerator{}
	ctx, logs := captureLogs()
	event, err := DecodeEvent([]byte(`{"chat":{"appCommandPayload":{
		"appCommandMetadata":{"appCommandId":1,"appCommandType":"DIALOG_COMMAND"}}}}`))
	require.NoError(t, err)

	reply := newTestGateway(t, gen).Dispatch(ctx, event)

	assert.Equal(t, EmptyMessageText, reply.Text())
	assert.Contains(t, logs.String(), `"msg":"Unknown command type."`)
	assert.Contains(t, logs.String(), `"msg":"Empty message received."`)
	gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestDispatchEmptyMessage(t *testing.T) {
	tests := map[string]string{
		"no chat":          `{}`,
		"empty chat":       `{"chat":{}}`,
		"whitespace text":  `{"chat":{"messagePayload":{"message":{"text":"   "}}}}`,
		"blank argument":   `{"chat":{"messagePayload":{"message":{"argumentText":" ","text":"ignored"}}}}`,
		"message missing":  `{"chat":{"messagePayload":{}}}`,
		"unknown fields":   `{"type":"MESSAGE","chat":{"user":{"name":"users/1"}}}`,
		"command no input": `{"chat":{"appCommandPayload":{"appCommandMetadata":{"appCommandId":5}}}}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			gen := &mockGenerator{}
			reply := dispatchJSON(t, newTestGateway(t, gen), body)

			assert.Equal(t, EmptyMessageText, reply.Text())
			gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
		})
	}
}

func TestDispatchPlainMessage(t *testing.T) {
	gen := &mockGenerator{}
	gen.On("Generate", mock.Anything, "hello").Return("Hello there!", nil).Once()

	reply := dispatchJSON(t, newTestGateway(t, gen), `{"chat":{"messagePayload":{"message":{"text":"hello"}}}}`)

	assert.Equal(t, "Hello there!", reply.Text())
	gen.AssertExpectations(t)
	gen.AssertNumberOfCalls(t, "Generate", 1)
}

func TestDispatchPrefersArgumentText(t *testing.T) {
	gen := &mockGenerator{}
	gen.On("Generate", mock.Anything, "translate this").Return("ok", nil).Once()

	dispatchJSON(t, newTestGateway(t, gen), `{"chat":{"messagePayload":{"message":{"text":"@bot translate this","argumentText":"  translate this\n"}}}}`)

	gen.AssertExpectations(t)
}

func TestDispatchPrefersAppCommandMessage(t *testing.T) {
	gen := &mockGenerator{}
	gen.On("Generate", mock.Anything, "from command").Return("ok", nil).Once()

	dispatchJSON(t, newTestGateway(t, gen), `{"chat":{
		"appCommandPayload":{"message":{"text":"from command"}},
		"messagePayload":{"message":{"text":"from message"}}}}`)

	gen.AssertExpectations(t)
}

func TestDispatchEmptyAppCommandMessageFallsBack(t *testing.T) {
	gen := &mockGenerator{}
	gen.On("Generate", mock.Anything, "hello").Return("Hi!", nil).Once()

	reply := dispatchJSON(t, newTestGateway(t, gen), `{"chat":{
		"appCommandPayload":{"message":{}},
		"messagePayload":{"message":{"text":"hello"}}}}`)

	assert.Equal(t, "Hi!", reply.Text())
	gen.AssertExpectations(t)
}

func TestDispatchFractionalCommandID(t *testing.T) {
	gen := &mockGenerator{}
	reply := dispatchJSON(t, newTestGateway(t, gen), `{"chat":{"appCommandPayload":{
		"appCommandMetadata":{"appCommandId":1.0,"appCommandType":"QUICK_COMMAND"}}}}`)

	assert.Equal(t, "Hello! I am the team assistant.", reply.Text())
	gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestDispatchZeroCommandIDIsNoCommand(t *testing.T) {
	table, err := commands.New(map[string]string{"0": "zero"})
	require.NoError(t, err)

	gen := &mockGenerator{}
	gen.On("Generate", mock.Anything, "hello").Return("generated", nil).Once()

	gw := NewGateway(NewProcessor(table, gen))
	reply := dispatchJSON(t, gw, `{"chat":{"appCommandPayload":{
		"appCommandMetadata":{"appCommandId":0,"appCommandType":"QUICK_COMMAND"},
		"message":{"text":"hello"}}}}`)

	assert.Equal(t, "generated", reply.Text())
	gen.AssertExpectations(t)
}

func TestDispatchEmptyGeneration(t *testing.T) {
	gen := &mockGenerator{}
	gen.On("Generate", mock.Anything, "blocked prompt").Return("", nil).Once()

	reply := dispatchJSON(t, newTestGateway(t, gen), `{"chat":{"messagePayload":{"message":{"text":"blocked prompt"}}}}`)

	assert.False(t, reply.IsEmpty())
	assert.Equal(t, "", reply.Text())
}

func TestDispatchGenerationFailure(t *testing.T) {
	gen := &mockGenerator{}
	gen.On("Generate", mock.Anything, "hello").Return("", errors.New("quota exceeded")).Once()

	gw := newTestGateway(t, gen)
	event, err := DecodeEvent([]byte(`{"chat":{"messagePayload":{"message":{"text":"hello"}}}}`))
	require.NoError(t, err)
	ctx, logs := captureLogs()

	reply := gw.Dispatch(ctx, event)

	assert.Equal(t, ErrorText, reply.Text())
	assert.Contains(t, logs.String(), `"msg":"Error processing event."`)
	assert.Contains(t, logs.String(), `"error":"quota exceeded"`)
	assert.Contains(t, logs.String(), `"stack":"`)
	assert.Contains(t, logs.String(), `"severity":"ERROR"`)
}

func TestDispatchSlashCommandGenerationFailure(t *testing.T) {
	gen := &mockGenerator{}
	gen.On("Generate", mock.Anything, mock.Anything).Return("", errors.New("blocked")).Once()

	reply := dispatchJSON(t, newTestGateway(t, gen), `{"chat":{"appCommandPayload":{
		"appCommandMetadata":{"appCommandId":2,"appCommandType":"SLASH_COMMAND"},
		"message":{"argumentText":"x"}}}}`)

	assert.Equal(t, ErrorText, reply.Text())
}

func TestDispatchRecoversFromPanic(t *testing.T) {
	gen := &mockGenerator{}
	gen.On("Generate", mock.Anything, "hello").Run(func(mock.Arguments) {
		panic("boom")
	}).Return("", nil)

	gw := newTestGateway(t, gen)
	event, err := DecodeEvent([]byte(`{"chat":{"messagePayload":{"message":{"text":"hello"}}}}`))
	require.NoError(t, err)
	ctx, logs := captureLogs()

	reply := gw.Dispatch(ctx, event)

	assert.Equal(t, ErrorText, reply.Text())
	assert.Contains(t, logs.String(), `"error":"boom"`)
	assert.Contains(t, logs.String(), `"stack"`)
}

func TestDispatchWithoutGenerator(t *testing.T) {
	gw := NewGateway(NewProcessor(nil, nil))
	ctx, _ := captureLogs()
	reply := gw.Dispatch(ctx, ChatEvent{Chat: ChatPayload{MessagePayload: &MessagePayload{Message: &Message{Text: "hi"}}}})
	assert.Equal(t, ErrorText, reply.Text())
}

func TestDispatchLogsReceivedEventWithID(t *testing.T) {
	gen := &mockGenerator{}
	gen.On("Generate", mock.Anything, "hello").Return("hi", nil)

	body := `{"chat":{"messagePayload":{"message":{"text":"hello"}}},"commonEventObject":{"hostApp":"CHAT"}}`
	event, err := DecodeEvent([]byte(body))
	require.NoError(t, err)
	ctx, logs := captureLogs()

	newTestGateway(t, gen).Dispatch(ctx, event)

	out := logs.String()
	assert.Contains(t, out, `"msg":"Chat event received."`)
	assert.Contains(t, out, `"hostApp":"CHAT"`, "the original body is logged, unknown fields included")
	assert.Contains(t, out, `"event_id":"`)
}

func TestGeneratorReceivesRequestLogger(t *testing.T) {
	var seen *slog.Logger
	gen := &mockGenerator{}
	gen.On("Generate", mock.Anything, "hello").Run(func(args mock.Arguments) {
		seen = logger.FromContext(args.Get(0).(context.Context))
	}).Return("hi", nil)

	ctx, _ := captureLogs()
	event, err := DecodeEvent([]byte(`{"chat":{"messagePayload":{"message":{"text":"hello"}}}}`))
	require.NoError(t, err)
	newTestGateway(t, gen).Dispatch(ctx, event)

	require.NotNil(t, seen)
	assert.NotSame(t, logger.FromContext(ctx), seen, "dispatch scopes the logger to the event")
}
