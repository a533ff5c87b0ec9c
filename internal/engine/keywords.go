// internal/engine/keywords.go
package engine

import "nutrition-advisor/internal/models"

// CategoryKeywords maps a warning reason to the ingredient-name substrings
// that typically drive that nutrient. This is configuration data curated
// from the Vietnamese recipe corpus the app serves, kept as a table so the
// lists can be extended or tested without touching the matching code.
var CategoryKeywords = map[models.ReasonType][]string{
	models.ReasonSodium: {
		"muối", "nước mắm", "nước tương", "bột canh", "hạt nêm",
		"phô mai", "thịt nguội", "xúc xích", "thịt xông khói",
	},
	models.ReasonSugar: {
		"đường", "mật ong", "sữa đặc", "kẹo", "bánh ngọt",
		"nước ngọt", "si rô", "mứt", "chè",
	},
	models.ReasonFat: {
		"mỡ", "bơ", "dầu", "kem", "phô mai",
		"ba chỉ", "da gà", "lạp xưởng", "đậu phộng",
	},
	models.ReasonCarbs: {
		"cơm", "gạo", "bún", "phở", "mì",
		"bánh mì", "khoai", "nếp", "bột", "miến",
	},
	models.ReasonFiber: {
		"rau", "củ", "đậu", "nấm", "trái cây", "yến mạch", "ngũ cốc",
	},
	models.ReasonProtein: {
		"thịt", "cá", "tôm", "trứng", "sữa", "đậu hũ", "gà", "bò", "heo",
	},
	models.ReasonCalorie: {
		"chiên", "quay", "xào", "mỡ", "đường", "kem", "xúc xích", "bánh ngọt",
	},
}
