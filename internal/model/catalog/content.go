package catalog

// Review is a client testimonial shown on the page.
type Review struct {
	Name   string `json:"name"`
	Text   string `json:"text"`
	Rating int    `json:"rating"`
}

// BlogPost is a teaser for an article in the blog section.
type BlogPost struct {
	Title string `json:"title"`
	Date  string `json:"date"`
	Image string `json:"image"`
}

// Portfolio returns the gallery image URLs in display order.
func Portfolio() []string {
	return []string{
		"https://images.unsplash.com/photo-1622286342621-4bd786c2447c?w=600&q=80",
		"https://images.unsplash.com/photo-1621605815971-fbc98d665033?w=600&q=80",
		"https://images.unsplash.com/photo-1599351431202-0e671340044d?w=600&q=80",
		"https://images.unsplash.com/photo-1503951914875-452162b0f3f1?w=600&q=80",
		"https://images.unsplash.com/photo-1585747860715-2ba37e788b70?w=600&q=80",
		"https://images.unsplash.com/photo-1593702295094-aea13ccadd1e?w=600&q=80",
	}
}

// Reviews returns the testimonials shown on the page.
func Reviews() []Review {
	return []Review{
		{Name: "Александр", Text: "Лучший барбершоп в Праге! Атмосфера, сервис и результат на высоте.", Rating: 5},
		{Name: "Михаил", Text: "Хожу сюда уже 2 года. Мастера настоящие профессионалы.", Rating: 5},
		{Name: "Иван", Text: "Отличная система лояльности. Уже получил две бесплатные стрижки!", Rating: 5},
		{Name: "Петр", Text: "Премиальный сервис за разумные деньги. Рекомендую!", Rating: 5},
	}
}

// BlogPosts returns the latest posts, newest first.
func BlogPosts() []BlogPost {
	return []BlogPost{
		{Title: "Как выбрать стрижку под тип лица", Date: "15 янв 2024", Image: "https://images.unsplash.com/photo-1621605815971-fbc98d665033?w=400&q=80"},
		{Title: "Уход за бородой зимой: 5 советов", Date: "10 янв 2024", Image: "https://images.unsplash.com/photo-1622286342621-4bd786c2447c?w=400&q=80"},
		{Title: "Тренды мужских стрижек 2024", Date: "5 янв 2024", Image: "https://images.unsplash.com/photo-1599351431202-0e671340044d?w=400&q=80"},
	}
}
