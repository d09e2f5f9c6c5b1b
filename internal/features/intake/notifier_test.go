package intake

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBot struct {
	sent    []tgbotapi.Chattable
	sendErr error
}

func (f *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if f.sendErr != nil {
		return tgbotapi.Message{}, f.sendErr
	}
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, nil
}

func TestFormatApplication(t *testing.T) {
	app := &Application{
		Name:        "Анна",
		Age:         "25",
		Height:      "175",
		Citizenship: "Россия",
		Countries:   "Россия, Италия",
	}

	got := formatApplication(app)
	assert.Contains(t, got, "<b>НОВАЯ АНКЕТА МОДЕЛИ</b>")
	assert.Contains(t, got, "<b>Имя:</b> Анна")
	assert.Contains(t, got, "<b>Возраст:</b> 25 лет")
	assert.Contains(t, got, "<b>Страны опыта:</b> Россия, Италия")
	// незаполненные поля показываются заглушкой
	assert.Contains(t, got, "<b>Вес:</b> Не указано")
}

func TestFormatApplicationNoCountries(t *testing.T) {
	got := formatApplication(&Application{Name: "Анна"})
	assert.NotContains(t, got, "Страны опыта")
}

func TestNotifierSend(t *testing.T) {
	bot := &fakeBot{}
	n := NewNotifier(bot, -100500)

	err := n.Send(&Application{Name: "Анна"}, []string{"/tmp/a.jpg", "/tmp/b.jpg"}, "/tmp/v.mp4")
	require.NoError(t, err)

	// текст анкеты + 2 фото + видео
	require.Len(t, bot.sent, 4)

	msg, ok := bot.sent[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, int64(-100500), msg.ChatID)
	assert.Equal(t, tgbotapi.ModeHTML, msg.ParseMode)

	video, ok := bot.sent[3].(tgbotapi.VideoConfig)
	require.True(t, ok)
	assert.Equal(t, "📹 Видео презентация", video.Caption)
}

func TestNotifierSendTextFailure(t *testing.T) {
	bot := &fakeBot{sendErr: assert.AnError}
	n := NewNotifier(bot, -1)

	err := n.Send(&Application{}, nil, "")
	assert.Error(t, err)
}
