// Package ics renders calendar events as an iCalendar document for
// export into external calendar clients.
package ics

import (
	"bytes"
	"fmt"

	"github.com/emersion/go-ical"

	"noteapp-api/internal/model"
)

const prodID = "-//NoteApp//Calendar 1.0//EN"

// Encode builds a single VCALENDAR containing one VEVENT per event.
func Encode(events []model.CalendarEvent) (string, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, prodID)

	for i := range events {
		ev := &events[i]
		e := ical.NewEvent()
		e.Props.SetText(ical.PropUID, fmt.Sprintf("event-%d@noteapp", ev.ID))
		e.Props.SetText(ical.PropSummary, ev.Title)
		if ev.Description != nil {
			e.Props.SetText(ical.PropDescription, *ev.Description)
		}
		e.Props.SetDateTime(ical.PropDateTimeStamp, ev.UpdatedAt)
		e.Props.SetDateTime(ical.PropDateTimeStart, ev.StartTime)
		e.Props.SetDateTime(ical.PropDateTimeEnd, ev.EndTime)
		cal.Children = append(cal.Children, e.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return "", fmt.Errorf("encode calendar: %w", err)
	}
	return buf.String(), nil
}
