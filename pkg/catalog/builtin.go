package catalog

import "context"

const imageBase = "https://cdn.poehali.dev/projects/8916f4ad-94df-45ce-bf78-021b77d43695/files/"

// Builtin is the catalog shipped with the storefront.
type Builtin struct{}

// Load returns the built-in product list.
func (Builtin) Load(context.Context) ([]Product, error) {
	return []Product{
		{
			ID:        1,
			Name:      `Гирлянда "Уютные домики"`,
			Price:     1290,
			Category:  Garland,
			Image:     imageBase + "d9869f04-495f-4ef8-a44f-0e015441169b.jpg",
			Features:  []string{"2 метра", "10 домиков", "Тёплый свет", "USB/батарейки"},
			Occasions: []string{"Новый год", "Фотосессии", "Детская комната"},
			Power:     "USB + батарейки",
		},
		{
			ID:        2,
			Name:      `Гирлянда "Звёздное небо"`,
			Price:     890,
			Category:  Garland,
			Image:     imageBase + "c73c03da-8ec3-4e39-ba16-6e517f4fe06d.jpg",
			Features:  []string{"3 метра", "Светодиодная", "Тёплый свет", "На батарейках"},
			Occasions: []string{"Свадьба", "День рождения", "Декор окон"},
			Power:     "Батарейки",
		},
		{
			ID:        3,
			Name:      "Набор праздничного декора",
			Price:     1590,
			Category:  Decor,
			Image:     imageBase + "61b66473-e480-40b1-9b24-63dfcbbf3b87.jpg",
			Features:  []string{"Шарики + гирлянда", "Комплект", "Яркие цвета", "USB"},
			Occasions: []string{"День рождения", "Вечеринки", "Хэллоуин"},
			Power:     "USB",
		},
		{
			ID:        4,
			Name:      `Гирлянда "Волшебный свет"`,
			Price:     990,
			Category:  Garland,
			Image:     imageBase + "d9869f04-495f-4ef8-a44f-0e015441169b.jpg",
			Features:  []string{"2.5 метра", "LED", "Тёплый свет", "На батарейках"},
			Occasions: []string{"Офис", "Квартира", "Стеллаж"},
			Power:     "Батарейки",
		},
		{
			ID:        5,
			Name:      `Декор "Праздничная атмосфера"`,
			Price:     1790,
			Category:  Decor,
			Image:     imageBase + "61b66473-e480-40b1-9b24-63dfcbbf3b87.jpg",
			Features:  []string{"Гирлянда + фонарики", "Деревянные элементы", "USB/батарейки"},
			Occasions: []string{"Свадьба", "Новый год", "Фотосессии"},
			Power:     "USB + батарейки",
		},
		{
			ID:        6,
			Name:      `Гирлянда "Тёплый вечер"`,
			Price:     790,
			Category:  Garland,
			Image:     imageBase + "c73c03da-8ec3-4e39-ba16-6e517f4fe06d.jpg",
			Features:  []string{"1.5 метра", "LED", "Тёплый свет", "USB"},
			Occasions: []string{"Ночник", "Детская", "Елка"},
			Power:     "USB",
		},
	}, nil
}
