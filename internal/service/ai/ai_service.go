// Package ai turns chat history into completion prompts for reply
// suggestions, translation and summarization.
package ai

import (
	"context"
	"fmt"
	"strings"

	"pigeon_chat_server/internal/dao/db/repository"
	"pigeon_chat_server/internal/dto/request"
	"pigeon_chat_server/internal/dto/respond"
	"pigeon_chat_server/internal/infrastructure/ai"
	"pigeon_chat_server/pkg/enum/message/message_type_enum"
	"pigeon_chat_server/pkg/errorx"
)

// historyWindow caps how many recent messages feed a prompt.
const historyWindow = 20

type aiService struct {
	repos     *repository.Repositories
	completer ai.Completer
}

// NewAIService builds the AI service.
func NewAIService(repos *repository.Repositories, completer ai.Completer) *aiService {
	return &aiService{repos: repos, completer: completer}
}

// SuggestReplies proposes up to three short replies to the chat's
// recent history, from the caller's perspective.
func (s *aiService) SuggestReplies(ctx context.Context, req request.SuggestRepliesRequest) (*respond.SuggestRepliesRespond, error) {
	transcript, err := s.recentTranscript(req.ChatId, req.OwnerId)
	if err != nil {
		return nil, err
	}
	if transcript == "" {
		return &respond.SuggestRepliesRespond{Suggestions: []string{}}, nil
	}

	system := "You suggest short chat replies. Respond with up to three suggestions, one per line, no numbering, no commentary."
	user := fmt.Sprintf("Conversation so far:\n%s\n\nSuggest replies the user \"me\" could send next.", transcript)
	raw, err := s.completer.Complete(ctx, system, user)
	if err != nil {
		return nil, err
	}

	suggestions := make([]string, 0, 3)
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "-"))
		if line == "" {
			continue
		}
		suggestions = append(suggestions, line)
		if len(suggestions) == 3 {
			break
		}
	}
	return &respond.SuggestRepliesRespond{Suggestions: suggestions}, nil
}

// Translate renders text into the target language, returning only the
// translation.
func (s *aiService) Translate(ctx context.Context, req request.TranslateRequest) (*respond.TranslateRespond, error) {
	system := fmt.Sprintf("You translate chat messages into %s. Respond with the translation only.", req.TargetLang)
	raw, err := s.completer.Complete(ctx, system, req.Text)
	if err != nil {
		return nil, err
	}
	return &respond.TranslateRespond{Text: strings.TrimSpace(raw)}, nil
}

// Summarize condenses the chat's recent history into a few sentences.
func (s *aiService) Summarize(ctx context.Context, req request.SummarizeRequest) (*respond.SummarizeRespond, error) {
	transcript, err := s.recentTranscript(req.ChatId, req.OwnerId)
	if err != nil {
		return nil, err
	}
	if transcript == "" {
		return &respond.SummarizeRespond{Summary: ""}, nil
	}

	system := "You summarize chat conversations in at most three sentences. Respond with the summary only."
	raw, err := s.completer.Complete(ctx, system, transcript)
	if err != nil {
		return nil, err
	}
	return &respond.SummarizeRespond{Summary: strings.TrimSpace(raw)}, nil
}

// recentTranscript renders the last historyWindow text messages as
// "name: content" lines, with the caller shown as "me".
func (s *aiService) recentTranscript(chatUuid, ownerId string) (string, error) {
	isMember, err := s.repos.ChatMember.IsMember(chatUuid, ownerId)
	if err != nil {
		return "", err
	}
	if !isMember {
		return "", errorx.New(errorx.CodeForbidden, "not a member of this chat")
	}

	rows, err := s.repos.Message.FindByChatUuid(chatUuid)
	if err != nil {
		return "", err
	}
	if len(rows) > historyWindow {
		rows = rows[len(rows)-historyWindow:]
	}

	var b strings.Builder
	for _, row := range rows {
		if row.Type != message_type_enum.Text || row.Content == "" {
			continue
		}
		name := row.SendName
		if row.SendId == ownerId {
			name = "me"
		}
		fmt.Fprintf(&b, "%s: %s\n", name, row.Content)
	}
	return strings.TrimSpace(b.String()), nil
}
