package service

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"path/filepath"
	"time"

	"homeaway/internal/db"
	"homeaway/internal/entities"
)

type SenderService struct {
}

func NewSenderService() *SenderService {
	return &SenderService{}
}

// SendBookingEmail sends the booking status email asynchronously. Failures
// are logged, never surfaced: a booking must not fail because mail did.
func (s *SenderService) SendBookingEmail(profile *db.Profile, booking *db.Booking, property *db.Property, status string) {
	emailData := entities.BookingEmailData{
		UserName:          profile.FirstName,
		BookingCode:       booking.Code,
		PropertyName:      property.Name,
		Country:           property.Country,
		CheckInFormatted:  booking.CheckIn.UTC().Format("02 Jan 2006"),
		CheckOutFormatted: booking.CheckOut.UTC().Format("02 Jan 2006"),
		TotalNights:       booking.TotalNights,
		OrderTotal:        booking.OrderTotal,
		CurrentYear:       time.Now().UTC().Year(),
		Status:            status,
	}

	emailSubject := fmt.Sprintf("Your HomeAway Hub booking is %s - Code: %s", status, emailData.BookingCode)
	plainTextBody := fmt.Sprintf(
		"Hello %s,\n\nYour booking at HomeAway Hub is %s.\n\n"+
			"Booking details:\n"+
			"Booking code: %s\n"+
			"Property: %s (%s)\n"+
			"Check-in: %s\n"+
			"Check-out: %s\n"+
			"Nights: %d\n"+
			"Order total: $%.2f\n\n"+
			"Thank you for choosing HomeAway Hub.\n\n"+
			"HomeAway Hub. All rights reserved.",
		emailData.UserName, status, emailData.BookingCode, emailData.PropertyName, emailData.Country,
		emailData.CheckInFormatted, emailData.CheckOutFormatted, emailData.TotalNights, emailData.OrderTotal,
	)

	tmplPath := filepath.Join("internal", "templates", "booking_email.html")
	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		log.Printf("ALERT: error parsing HTML email template (%s): %v", tmplPath, err)
	}

	var htmlBody string
	if tmpl != nil {
		var htmlBodyBuffer bytes.Buffer
		if err := tmpl.Execute(&htmlBodyBuffer, emailData); err != nil {
			log.Printf("ALERT: error executing HTML email template for booking %s: %v", emailData.BookingCode, err)
		}
		htmlBody = htmlBodyBuffer.String()
	}

	go func(toEmail, toName, subject, plainBody, htmlBodyContent string) {
		if errEmail := SendEmailWithSendGrid(toEmail, toName, subject, plainBody, htmlBodyContent); errEmail != nil {
			log.Printf("ALERT (async): failed to send email for booking %s: %v", emailData.BookingCode, errEmail)
		}
	}(profile.Email, emailData.UserName, emailSubject, plainTextBody, htmlBody)
}

// SendBookingSMS texts the booking status to the guest when a phone number
// is on file.
func (s *SenderService) SendBookingSMS(profile *db.Profile, booking *db.Booking, status string) {
	if profile.Phone == "" {
		return
	}

	smsMessage := fmt.Sprintf("HomeAway Hub: booking %s has been %s!\nCheck-in: %s.\nMore details in your email.",
		booking.Code, status,
		booking.CheckIn.UTC().Format("02/01"),
	)

	if errSMS := SendSMS(profile.Phone, smsMessage); errSMS != nil {
		log.Printf("ALERT: booking %s was updated, but the confirmation SMS to %s failed: %v", booking.Code, profile.Phone, errSMS)
	}
}
