package holiday

import "time"

type entry struct {
	month time.Month
	day   int
	name  string
}

// calendars lists official holidays per year. Religious holidays move every year, so each year
// is maintained explicitly.
var calendars = map[int][]entry{
	2026: {
		{time.January, 1, "Yılbaşı"},
		{time.March, 19, "Ramazan Bayramı (1. Gün)"},
		{time.March, 20, "Ramazan Bayramı (2. Gün)"},
		{time.March, 21, "Ramazan Bayramı (3. Gün)"},
		{time.April, 23, "Ulusal Egemenlik ve Çocuk Bayramı"},
		{time.May, 1, "Emek ve Dayanışma Günü"},
		{time.May, 19, "Atatürk’ü Anma, Gençlik ve Spor Bayramı"},
		{time.May, 26, "Kurban Bayramı (1. Gün)"},
		{time.May, 27, "Kurban Bayramı (2. Gün)"},
		{time.May, 28, "Kurban Bayramı (3. Gün)"},
		{time.May, 29, "Kurban Bayramı (4. Gün)"},
		{time.August, 30, "Zafer Bayramı"},
		{time.October, 29, "Cumhuriyet Bayramı"},
	},
}
