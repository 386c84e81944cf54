package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"squadron-ops/airboss/internal/constants"
	"squadron-ops/airboss/internal/logging"
	gormModels "squadron-ops/airboss/internal/models/gorm"
)

// CalendarService renders pilot schedules as ICS feeds for calendar
// subscriptions.
type CalendarService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewCalendarService(db *gorm.DB) *CalendarService {
	return &CalendarService{db: db, now: time.Now}
}

const icsTimeLayout = "20060102T150405Z"

// ICSForPilot renders the pilot's assigned events, optionally bounded by
// start/end filters on event start time.
func (s *CalendarService) ICSForPilot(ctx context.Context, pilotID int64, startDate, endDate *time.Time) (string, error) {
	var pilot gormModels.Pilot
	if err := s.db.WithContext(ctx).First(&pilot, pilotID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", &OpsError{
				Code:    constants.ErrCodePilotNotFound,
				Message: constants.GetErrorMessage(constants.ErrCodePilotNotFound),
				Err:     err,
			}
		}
		return "", &OpsError{
			Code:    constants.ErrCodeStorageFailure,
			Message: constants.GetErrorMessage(constants.ErrCodeStorageFailure),
			Err:     err,
		}
	}

	query := s.db.WithContext(ctx).
		Joins("JOIN event_assignments ON event_assignments.event_id = events.id").
		Where("event_assignments.pilot_id = ?", pilotID).
		Preload("Aircraft").
		Preload("Simulator")
	if startDate != nil {
		query = query.Where("events.start_time >= ?", *startDate)
	}
	if endDate != nil {
		query = query.Where("events.start_time <= ?", *endDate)
	}

	var events []gormModels.Event
	if err := query.Order("events.start_time").Find(&events).Error; err != nil {
		return "", &OpsError{
			Code:    constants.ErrCodeStorageFailure,
			Message: constants.GetErrorMessage(constants.ErrCodeStorageFailure),
			Err:     err,
		}
	}

	calName := fmt.Sprintf("Pilot %d", pilotID)
	if pilot.CallSign != nil && *pilot.CallSign != "" {
		calName = *pilot.CallSign
	}

	var b strings.Builder
	writeLine := func(line string) {
		b.WriteString(line)
		b.WriteString("\r\n")
	}

	writeLine("BEGIN:VCALENDAR")
	writeLine("VERSION:2.0")
	writeLine("PRODID:-//Airboss//Squadron Operations//EN")
	writeLine("X-WR-CALNAME:Schedule - " + escapeICSText(calName))
	writeLine("X-WR-TIMEZONE:UTC")

	stamp := s.now().UTC().Format(icsTimeLayout)
	// One row per assignment comes back from the join; a pilot filling two
	// positions on an event must still get a single VEVENT.
	seen := make(map[int64]struct{}, len(events))
	for _, event := range events {
		if _, dup := seen[event.ID]; dup {
			continue
		}
		seen[event.ID] = struct{}{}

		writeLine("BEGIN:VEVENT")
		writeLine(fmt.Sprintf("UID:event-%d@airboss", event.ID))
		writeLine("DTSTAMP:" + stamp)
		writeLine("DTSTART:" + event.StartTime.UTC().Format(icsTimeLayout))
		writeLine("DTEND:" + event.EndTime.UTC().Format(icsTimeLayout))
		writeLine("SUMMARY:" + escapeICSText(event.Title))

		description := "Event Type: " + string(event.EventType)
		if event.Notes != nil && *event.Notes != "" {
			description += "\n" + *event.Notes
		}
		writeLine("DESCRIPTION:" + escapeICSText(description))

		if location := eventLocation(&event); location != "" {
			writeLine("LOCATION:" + escapeICSText(location))
		}
		writeLine("END:VEVENT")
	}
	writeLine("END:VCALENDAR")

	return b.String(), nil
}

// ICSForAllPilots renders a feed per active pilot. A failure for one pilot is
// logged and skipped.
func (s *CalendarService) ICSForAllPilots(ctx context.Context, startDate, endDate *time.Time) (map[int64]string, error) {
	var pilots []gormModels.Pilot
	if err := s.db.WithContext(ctx).Where("is_active = ?", true).Order("id").Find(&pilots).Error; err != nil {
		return nil, &OpsError{
			Code:    constants.ErrCodeStorageFailure,
			Message: constants.GetErrorMessage(constants.ErrCodeStorageFailure),
			Err:     err,
		}
	}

	feeds := make(map[int64]string, len(pilots))
	for _, pilot := range pilots {
		feed, err := s.ICSForPilot(ctx, pilot.ID, startDate, endDate)
		if err != nil {
			logging.Error("Calendar export failed for pilot, skipping",
				"pilot_id", pilot.ID,
				"error", err.Error(),
			)
			continue
		}
		feeds[pilot.ID] = feed
	}
	return feeds, nil
}

func eventLocation(event *gormModels.Event) string {
	if event.Aircraft != nil {
		return event.Aircraft.TailNumber
	}
	if event.Simulator != nil {
		return event.Simulator.DeviceID
	}
	return ""
}

// escapeICSText escapes the characters RFC 5545 treats specially in text
// values.
func escapeICSText(s string) string {
	r := strings.NewReplacer(
		"\\", "\\\\",
		";", "\\;",
		",", "\\,",
		"\n", "\\n",
	)
	return r.Replace(s)
}
