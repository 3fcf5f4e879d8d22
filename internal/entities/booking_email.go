package entities

type BookingEmailData struct {
	UserName          string
	BookingCode       string
	PropertyName      string
	Country           string
	CheckInFormatted  string
	CheckOutFormatted string
	TotalNights       int
	OrderTotal        float64
	CurrentYear       int
	Status            string
}
