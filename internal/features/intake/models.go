// Package intake принимает анкеты с сайта и пересылает их в Telegram.
// models.go описывает структуру анкеты и ограничения на вложения.
package intake

import "net/url"

// Application — анкета, заполненная на сайте.
// Все поля опциональны: незаполненные отображаются как "Не указано".
type Application struct {
	Name        string
	Age         string
	Height      string
	Weight      string
	Citizenship string
	Telegram    string
	WhatsApp    string
	Experience  string
	Countries   string
}

// ApplicationFromForm собирает анкету из полей multipart-формы.
func ApplicationFromForm(form url.Values) *Application {
	return &Application{
		Name:        form.Get("name"),
		Age:         form.Get("age"),
		Height:      form.Get("height"),
		Weight:      form.Get("weight"),
		Citizenship: form.Get("citizenship"),
		Telegram:    form.Get("telegram"),
		WhatsApp:    form.Get("whatsapp"),
		Experience:  form.Get("experience"),
		Countries:   form.Get("countries"),
	}
}

// Разрешённые расширения вложений (в нижнем регистре, без точки).
var (
	allowedPhotoExtensions = map[string]bool{
		"png": true, "jpg": true, "jpeg": true, "heic": true,
	}
	allowedVideoExtensions = map[string]bool{
		"mp4": true, "mov": true, "avi": true,
	}
)
