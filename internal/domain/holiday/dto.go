package holiday

type HolidayResponse struct {
	Date    string `json:"date"`
	Name    string `json:"name"`
	Weekday string `json:"weekday"`
}

func ToResponse(h Holiday) HolidayResponse {
	return HolidayResponse{
		Date:    h.Date.Format("2006-01-02"),
		Name:    h.Name,
		Weekday: weekdayNames[h.Date.Weekday()],
	}
}

var weekdayNames = [...]string{
	"Pazar", "Pazartesi", "Salı", "Çarşamba", "Perşembe", "Cuma", "Cumartesi",
}
