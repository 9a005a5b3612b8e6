package catalog

// Service is one bookable item of the price list.
type Service struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Duration string `json:"duration"`
	Icon     string `json:"icon,omitempty"`
}

// Seed returns the price list shown on the site.
func Seed() []Service {
	return []Service{
		{ID: "haircut", Name: "Стрижка мужская", Price: "600 Kč", Duration: "45 мин", Icon: "scissors"},
		{ID: "haircut-beard", Name: "Стрижка + борода", Price: "900 Kč", Duration: "60 мин", Icon: "crown"},
		{ID: "royal-shave", Name: "Королевское бритьё", Price: "500 Kč", Duration: "30 мин", Icon: "sparkles"},
		{ID: "beard-care", Name: "Уход за бородой", Price: "400 Kč", Duration: "20 мин", Icon: "hand"},
		{ID: "kids-haircut", Name: "Детская стрижка", Price: "450 Kč", Duration: "30 мин", Icon: "smile"},
		{ID: "moustache", Name: "Оформление усов", Price: "200 Kč", Duration: "15 мин", Icon: "mustache"},
	}
}
