package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChatModel struct {
	seen  []*schema.Message
	reply string
	err   error
}

func (f *fakeChatModel) Generate(_ context.Context, input []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	f.seen = input
	if f.err != nil {
		return nil, f.err
	}
	return schema.AssistantMessage(f.reply, nil), nil
}

func (f *fakeChatModel) Stream(_ context.Context, input []*schema.Message, _ ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	f.seen = input
	if f.err != nil {
		return nil, f.err
	}
	return schema.StreamReaderFromArray([]*schema.Message{schema.AssistantMessage(f.reply, nil)}), nil
}

func (f *fakeChatModel) BindTools(_ []*schema.ToolInfo) error { return nil }

func TestGenerateReplyRendersSiteContext(t *testing.T) {
	fake := &fakeChatModel{reply: "  Мы открыты до 21:00.  "}
	svc, err := NewService(context.Background(), fake, nil)
	require.NoError(t, err)

	reply, err := svc.GenerateReply(context.Background(), "до скольки вы работаете?", "Часы работы: Пн-Пт 9:00-21:00")
	require.NoError(t, err)
	assert.Equal(t, "Мы открыты до 21:00.", reply)

	require.Len(t, fake.seen, 2)
	assert.Equal(t, schema.System, fake.seen[0].Role)
	assert.Contains(t, fake.seen[0].Content, "Часы работы: Пн-Пт 9:00-21:00")
	assert.Equal(t, schema.User, fake.seen[1].Role)
	assert.Equal(t, "до скольки вы работаете?", fake.seen[1].Content)
}

func TestGenerateReplyPropagatesModelError(t *testing.T) {
	boom := errors.New("quota exceeded")
	svc, err := NewService(context.Background(), &fakeChatModel{err: boom}, nil)
	require.NoError(t, err)

	_, err = svc.GenerateReply(context.Background(), "привет", "ctx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), boom.Error())
}

func TestGenerateReplyRejectsBlank(t *testing.T) {
	svc, err := NewService(context.Background(), &fakeChatModel{}, nil)
	require.NoError(t, err)

	_, err = svc.GenerateReply(context.Background(), "  ", "ctx")
	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestBuildChainInputDefaultsContext(t *testing.T) {
	input := buildChainInput("вопрос", " ")
	assert.Equal(t, "вопрос", input["query"])
	assert.NotEmpty(t, input["context"])
}

func TestNewServiceRequiresModel(t *testing.T) {
	_, err := NewService(context.Background(), nil, nil)
	assert.Error(t, err)
}
