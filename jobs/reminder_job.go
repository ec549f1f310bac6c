package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/tutorlink/api/database"
	"github.com/tutorlink/api/models"
	"github.com/tutorlink/api/notifications"
)

// SendSessionReminders notifies both parties of confirmed sessions starting
// roughly an hour from now. The window matches the cron cadence so each
// booking is picked up exactly once.
func SendSessionReminders() {
	log.Println("Running job: SendSessionReminders...")

	now := time.Now()
	lowerBound := now.Add(60 * time.Minute)
	upperBound := now.Add(65 * time.Minute)

	var upcomingBookings []models.Booking
	err := database.DB.
		Where("status = ? AND date_time >= ? AND date_time < ?",
			models.BookingConfirmed, lowerBound, upperBound).
		Find(&upcomingBookings).Error
	if err != nil {
		log.Printf("Error checking for upcoming sessions: %v", err)
		return
	}

	if len(upcomingBookings) == 0 {
		return
	}

	for _, booking := range upcomingBookings {
		log.Printf("Sending reminder for booking ID: %s", booking.ID)

		link := "/bookings#" + booking.ID.String()
		when := booking.DateTime.Format("3:04 PM")

		reminders := []models.Notification{
			{
				UserID:  booking.StudentID,
				Title:   "Session Starting Soon",
				Message: fmt.Sprintf("Your session with %s starts at %s.", booking.TutorName, when),
				Type:    models.NotificationReminder,
				Link:    &link,
			},
			{
				UserID:  booking.TutorID,
				Title:   "Session Starting Soon",
				Message: fmt.Sprintf("Your session with %s starts at %s.", booking.StudentName, when),
				Type:    models.NotificationReminder,
				Link:    &link,
			},
		}
		if err := database.DB.Create(&reminders).Error; err != nil {
			log.Printf("Error creating reminder notifications for booking %s: %v", booking.ID, err)
			continue
		}

		for _, party := range []struct{ id, name string }{
			{booking.StudentID.String(), booking.StudentName},
			{booking.TutorID.String(), booking.TutorName},
		} {
			var user models.User
			if err := database.DB.First(&user, "id = ?", party.id).Error; err != nil {
				continue
			}
			body := fmt.Sprintf("<p>Hi %s,</p><p>Your session %q starts at %s.</p>",
				user.FullName, booking.ReasonForSession, when)
			go notifications.SendEmail(user.FullName, user.Email, "Your session starts in an hour", body)
		}
	}

	log.Printf("Sent reminders for %d booking(s).", len(upcomingBookings))
}
