package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/anjiri1684/tutor_marketplace/database"
	"github.com/anjiri1684/tutor_marketplace/models"
	"github.com/anjiri1684/tutor_marketplace/notifications"
)

func SendClassReminders() {
	log.Println("Running job: SendClassReminders...")

	now := time.Now().UTC()
	lowerBound := now.Add(60 * time.Minute)
	upperBound := now.Add(65 * time.Minute)

	var upcomingClasses []models.ClassSession
	err := database.DB.
		Where("status = ? AND starts_at BETWEEN ? AND ?", models.ClassScheduled, lowerBound, upperBound).
		Find(&upcomingClasses).Error
	if err != nil {
		log.Printf("Error checking for upcoming classes: %v", err)
		return
	}

	if len(upcomingClasses) == 0 {
		return
	}

	for _, session := range upcomingClasses {
		var enrollments []models.Enrollment
		err := database.DB.Preload("Student").
			Where("course_id = ?", session.CourseID).
			Find(&enrollments).Error
		if err != nil {
			log.Printf("Error fetching roster for class %s: %v", session.ID, err)
			continue
		}

		link := "to be announced"
		if session.MeetingLink != nil {
			link = fmt.Sprintf("<a href='%s'>Join Class</a>", *session.MeetingLink)
		}
		emailSubject := "Reminder: Your Class Starts in 1 Hour!"
		emailBody := fmt.Sprintf(
			"<h1>Class Reminder</h1><p>Hi there,</p><p>Your class \"%s\" starts at %s UTC.</p><p><b>Meeting Link:</b> %s</p>",
			session.Title,
			session.StartsAt.Format(time.Kitchen),
			link,
		)

		log.Printf("Sending reminders for class %s to %d student(s)", session.ID, len(enrollments))
		for _, enrollment := range enrollments {
			go notifications.SendEmail(enrollment.Student.FirstName, enrollment.Student.Email, emailSubject, emailBody)
		}
	}
}
