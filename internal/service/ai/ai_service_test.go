package ai

import (
	"context"
	"fmt"
	"testing"

	"pigeon_chat_server/internal/dao/db"
	"pigeon_chat_server/internal/dao/db/repository"
	"pigeon_chat_server/internal/dto/request"
	"pigeon_chat_server/internal/model"
	"pigeon_chat_server/pkg/errorx"

	"github.com/stretchr/testify/require"
	sqlitedriver "gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type stubCompleter struct {
	reply      string
	lastSystem string
	lastUser   string
}

func (s *stubCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	s.lastSystem = system
	s.lastUser = user
	return s.reply, nil
}

func bootstrap(t *testing.T) *repository.Repositories {
	t.Helper()
	dsn := fmt.Sprintf("file:ai_%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlitedriver.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	return repository.NewRepositories(gdb)
}

func seedChatWithHistory(t *testing.T, repos *repository.Repositories) {
	t.Helper()
	require.NoError(t, repos.Chat.Create(&model.Chat{Uuid: "C1", OwnerId: "U1", IsGroup: false}))
	require.NoError(t, repos.ChatMember.CreateBatch([]model.ChatMember{
		{ChatUuid: "C1", UserUuid: "U1"},
		{ChatUuid: "C1", UserUuid: "U2"},
	}))
	require.NoError(t, repos.Message.Create(&model.Message{
		Uuid: 1, ChatUuid: "C1", SendId: "U2", SendName: "Bob", Content: "lunch tomorrow?",
	}))
	require.NoError(t, repos.Message.Create(&model.Message{
		Uuid: 2, ChatUuid: "C1", SendId: "U1", SendName: "Alice", Content: "let me check",
	}))
}

func TestSuggestRepliesParsesLines(t *testing.T) {
	repos := bootstrap(t)
	seedChatWithHistory(t, repos)
	stub := &stubCompleter{reply: "Sounds good!\n- Can we do Friday instead?\n\nWhere should we meet?\nExtra fourth line"}
	svc := NewAIService(repos, stub)

	rsp, err := svc.SuggestReplies(context.Background(), request.SuggestRepliesRequest{OwnerId: "U1", ChatId: "C1"})
	require.NoError(t, err)
	require.Equal(t, []string{
		"Sounds good!",
		"Can we do Friday instead?",
		"Where should we meet?",
	}, rsp.Suggestions)

	// The caller appears as "me" in the prompt transcript.
	require.Contains(t, stub.lastUser, "Bob: lunch tomorrow?")
	require.Contains(t, stub.lastUser, "me: let me check")
}

func TestSuggestRepliesRequiresMembership(t *testing.T) {
	repos := bootstrap(t)
	seedChatWithHistory(t, repos)
	svc := NewAIService(repos, &stubCompleter{reply: "x"})

	_, err := svc.SuggestReplies(context.Background(), request.SuggestRepliesRequest{OwnerId: "U_outsider", ChatId: "C1"})
	require.Equal(t, errorx.CodeForbidden, errorx.GetCode(err))
}

func TestTranslateTargetsLanguage(t *testing.T) {
	repos := bootstrap(t)
	stub := &stubCompleter{reply: "  Hola  "}
	svc := NewAIService(repos, stub)

	rsp, err := svc.Translate(context.Background(), request.TranslateRequest{Text: "Hello", TargetLang: "Spanish"})
	require.NoError(t, err)
	require.Equal(t, "Hola", rsp.Text)
	require.Contains(t, stub.lastSystem, "Spanish")
	require.Equal(t, "Hello", stub.lastUser)
}

func TestSummarizeUsesTranscript(t *testing.T) {
	repos := bootstrap(t)
	seedChatWithHistory(t, repos)
	stub := &stubCompleter{reply: "Bob asked about lunch; Alice is checking."}
	svc := NewAIService(repos, stub)

	rsp, err := svc.Summarize(context.Background(), request.SummarizeRequest{OwnerId: "U1", ChatId: "C1"})
	require.NoError(t, err)
	require.NotEmpty(t, rsp.Summary)
	require.Contains(t, stub.lastUser, "lunch tomorrow?")
}
