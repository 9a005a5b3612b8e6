package catalog

// Location is the map centre and marker of the shop.
type Location struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
	Zoom      int     `json:"zoom"`
	Popup     string  `json:"popup"`
}

// Site carries the business facts rendered on the page and handed to the
// text responder as context.
type Site struct {
	Name     string   `json:"name"`
	Address  string   `json:"address"`
	Postcode string   `json:"postcode"`
	Phone    string   `json:"phone"`
	Hours    []string `json:"hours"`
	Location Location `json:"location"`
	Context  string   `json:"context"`
}

const (
	// Greeting seeds every chat transcript.
	Greeting = "Привет! Я помогу ответить на ваши вопросы о BAZA Barbershop. Что вас интересует?"

	// FallbackEmptyReply is shown when the text responder answers without a reply.
	FallbackEmptyReply = "Извините, я не понял вопрос. Попробуйте спросить о записи, ценах или нашей программе лояльности."

	// FallbackUnavailable is shown when the text responder cannot be reached.
	FallbackUnavailable = "Извините, сервис временно недоступен. Позвоните нам: +420 777 888 999"

	siteContext = "BAZA Barbershop - премиум барбершоп в центре Праги. Предлагаем стрижки, бритьё, уход за бородой и усами. Работаем с 2019 года. Адрес: Václavské náměstí 1, Praha 1. Телефон: +420 777 888 999. Часы работы: Пн-Пт 9:00-21:00, Сб-Вс 10:00-20:00."
)

// DefaultSite returns the shop's fixed contact details.
func DefaultSite() Site {
	return Site{
		Name:     "BAZA Barbershop",
		Address:  "Václavské náměstí 1, Praha 1",
		Postcode: "110 00, Czech Republic",
		Phone:    "+420 777 888 999",
		Hours:    []string{"Пн-Пт: 9:00 — 21:00", "Сб-Вс: 10:00 — 20:00"},
		Location: Location{
			Longitude: 14.4378,
			Latitude:  50.0755,
			Zoom:      14,
			Popup:     "BAZA Barbershop, Václavské náměstí 1, Praha",
		},
		Context: siteContext,
	}
}
