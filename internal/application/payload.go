package application

import (
	"randohub/internal/domain/entities"
	"randohub/internal/ports/output"
)

// eventPayload builds the template data shared by every event-related message.
func eventPayload(event *entities.Event, firstName, lastName string) output.Payload {
	return output.Payload{
		"FirstName":   firstName,
		"LastName":    lastName,
		"EventID":     event.ID,
		"EventName":   event.Name,
		"Date":        event.Date,
		"Location":    event.Location,
		"StartPoint":  event.StartPoint,
		"Description": event.Description,
	}
}
