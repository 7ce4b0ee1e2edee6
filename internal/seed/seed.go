// Package seed fills an empty store with demo records for development.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/portaladmin/internal/app/models"
	"github.com/yigit/portaladmin/internal/app/services"
	"github.com/yigit/portaladmin/internal/pkg/docstore"
)

var demoStudents = []map[string]any{
	{"sid": "S-1001", "fullname": "Ama Owusu", "email": "ama.owusu@example.com", "phone": int64(233201234567),
		"user_type": models.UserTypeStudent, "user_access": "Batch 1 - Online", "end_subs": "Dec 2025", "isAdmitted": true, "sessionId": "2024-A"},
	{"sid": "S-1002", "fullname": "Kwame Asante", "email": "kwame.asante@example.com", "phone": int64(233241112223),
		"user_type": models.UserTypeStudent, "user_access": "Batch 1 - Onsite", "end_subs": "Dec 2025", "isAdmitted": false},
	{"sid": "S-1003", "fullname": "Efua Mensah", "email": "efua.mensah@example.com",
		"user_type": models.UserTypeStudent, "user_access": "Batch 2 - Online", "isAdmitted": true},
	{"sid": "S-1004", "fullname": "Yaw Boateng", "email": "yaw.boateng@example.com", "phone": "0201112233",
		"user_type": models.UserTypeStudent, "user_access": "Batch 12 - Online", "end_subs": "Jun 2026", "isAdmitted": false},
	{"fullname": "Portal Staff", "email": "staff@example.com", "user_type": "Admin"},
}

type demoCourse struct {
	draft    models.CourseDraft
	lectures []models.LectureDraft
}

var demoCourses = []demoCourse{
	{
		draft: models.CourseDraft{Title: "Data Analysis", Description: "Spreadsheets to dashboards", Category: "Analytics"},
		lectures: []models.LectureDraft{
			{Title: "Week 1: Cleaning data", Lecturer: "Dr. Boateng", AccessBy: []string{models.AccessOnline}, URL: "https://videos.example.com/da-1"},
			{Title: "Week 2: Pivot tables", Lecturer: "Dr. Boateng", AccessBy: []string{models.AccessOnsite}},
			{Title: "Week 3: Dashboards", Lecturer: "Ms. Ofori", AccessBy: []string{models.AccessOnline, models.AccessOnsite}, URL: "https://videos.example.com/da-3"},
		},
	},
	{
		draft: models.CourseDraft{Title: "Web Development", Description: "HTML, CSS and a little Go", Category: "Engineering"},
		lectures: []models.LectureDraft{
			{Title: "Intro to HTTP", Lecturer: "Mr. Addo", AccessBy: []string{models.AccessOnline}},
		},
	},
	{draft: models.CourseDraft{Title: "Project Management", Category: "Business"}},
}

var demoAnnouncements = []models.AnnouncementDraft{
	{Title: "Exam timetable", Content: "The end of term exam timetable is now available at the registry and on the portal.", Author: "Registry", IsImportant: true},
	{Title: "Library hours", Content: "The library stays open until 9pm during exam weeks.", Author: "Library"},
	{Title: "Welcome", Content: "Welcome to the new term. Check your course pages for lecture recordings.", Author: "Admin"},
}

// CreateDefaultData writes the demo records when the store holds no
// courses yet. Failures are collected and returned together.
func CreateDefaultData(ctx context.Context, store docstore.Store, svc *services.Services, lgr zerolog.Logger) error {
	existing, err := svc.Courses.ListCourses(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		lgr.Info().Int("courses", len(existing)).Msg("Store already has data, skipping seed")
		return nil
	}

	lgr.Info().Msg("Creating demo data...")
	var finalErr error

	for _, student := range demoStudents {
		if _, err := store.Create(ctx, models.CollectionUsers, student); err != nil {
			lgr.Error().Err(err).Msg("Error creating demo user")
			finalErr = errors.Join(finalErr, err)
		}
	}

	for _, course := range demoCourses {
		draft := course.draft
		courseID, err := svc.Courses.SaveCourse(ctx, &draft)
		if err != nil {
			lgr.Error().Err(err).Str("title", draft.Title).Msg("Error creating demo course")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		for _, lecture := range course.lectures {
			lecture.CourseID = courseID
			if _, err := svc.Lectures.SaveLecture(ctx, &lecture); err != nil {
				lgr.Error().Err(err).Str("title", lecture.Title).Msg("Error creating demo lecture")
				finalErr = errors.Join(finalErr, err)
			}
		}
	}

	posted := time.Now().Add(-time.Duration(len(demoAnnouncements)) * 24 * time.Hour)
	for _, post := range demoAnnouncements {
		posted = posted.Add(24 * time.Hour)
		at := posted
		post.PostDate = &at
		if _, err := svc.Announcements.SaveAnnouncement(ctx, &post); err != nil {
			lgr.Error().Err(err).Str("title", post.Title).Msg("Error creating demo announcement")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if finalErr == nil {
		lgr.Info().Msg("Demo data created")
	}
	return finalErr
}
