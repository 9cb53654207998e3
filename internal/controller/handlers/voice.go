package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleVoiceMessage обрабатывает голосовые сообщения: скачивает файл
// и отправляет расшифровку вместо сообщения "обрабатываю"
func (h *Handlers) HandleVoiceMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Voice == nil {
		return
	}

	voice := update.Message.Voice
	h.transcribeAndReply(ctx, b, update.Message.Chat.ID, voice.FileID, voice.FileSize, "voice.ogg",
		"🎤 Обрабатываю голосовое сообщение...")
}

// HandleAudioMessage обрабатывает аудиофайлы
func (h *Handlers) HandleAudioMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Audio == nil {
		return
	}

	audio := update.Message.Audio
	h.transcribeAndReply(ctx, b, update.Message.Chat.ID, audio.FileID, audio.FileSize,
		audioFilename(audio.MimeType), "🎵 Обрабатываю аудио сообщение...")
}

// audioFilename подбирает расширение файла по MIME типу
func audioFilename(mimeType string) string {
	switch {
	case strings.Contains(mimeType, "ogg"):
		return "audio.ogg"
	case strings.Contains(mimeType, "wav"):
		return "audio.wav"
	case strings.Contains(mimeType, "m4a"), strings.Contains(mimeType, "mp4"):
		return "audio.m4a"
	default:
		return "audio.mp3"
	}
}

func (h *Handlers) transcribeAndReply(ctx context.Context, b *bot.Bot, chatID int64, fileID string, fileSize int64, filename, processingText string) {
	if !h.transcriber.Enabled() {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ Распознавание голоса недоступно. OpenAI API ключ не настроен.",
		})
		return
	}

	maxSize := int64(h.cfg.MaxAudioSizeMB) * 1024 * 1024
	if fileSize > maxSize {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   fmt.Sprintf("❌ Размер файла слишком большой. Максимум: %dMB", h.cfg.MaxAudioSizeMB),
		})
		return
	}

	processingMsg, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   processingText,
	})
	if err != nil {
		h.logger.Error("Failed to send processing message", zap.Error(err))
		return
	}

	text, err := h.downloadAndTranscribe(ctx, b, fileID, filename)
	if err != nil {
		h.logger.Error("Failed to transcribe audio",
			zap.String("file_id", fileID),
			zap.Error(err))
		b.EditMessageText(ctx, &bot.EditMessageTextParams{
			ChatID:    chatID,
			MessageID: processingMsg.ID,
			Text:      "❌ Не удалось распознать речь. Попробуйте говорить четче или отправить текстовое сообщение.",
		})
		return
	}

	b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:    chatID,
		MessageID: processingMsg.ID,
		Text:      "📝 Расшифровка сообщения:\n\n" + text,
	})
}

// downloadAndTranscribe скачивает файл с серверов Telegram и распознаёт речь
func (h *Handlers) downloadAndTranscribe(ctx context.Context, b *bot.Bot, fileID, filename string) (string, error) {
	file, err := b.GetFile(ctx, &bot.GetFileParams{FileID: fileID})
	if err != nil {
		return "", fmt.Errorf("get file: %w", err)
	}

	link := b.FileDownloadLink(file)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return "", fmt.Errorf("create download request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download file: status %d", resp.StatusCode)
	}

	text, err := h.transcriber.Transcribe(ctx, resp.Body, filename)
	if err != nil {
		return "", fmt.Errorf("transcribe: %w", err)
	}
	if text == "" {
		return "", fmt.Errorf("empty transcription")
	}

	return text, nil
}
