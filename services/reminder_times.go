// services/reminder_times.go
package services

import "time"

// ReminderTimeOption is one supported reminder lead time, e.g. "24h" for
// 24 hours before the appointment.
type ReminderTimeOption struct {
	Code  string  `json:"value"`
	Label string  `json:"label"`
	Hours float64 `json:"hours"`
}

// LeadTime returns the option's offset as a duration before the appointment.
func (o ReminderTimeOption) LeadTime() time.Duration {
	return time.Duration(o.Hours * float64(time.Hour))
}

var reminderTimeOptions = []ReminderTimeOption{
	{Code: "24h", Label: "24 hours before", Hours: 24},
	{Code: "12h", Label: "12 hours before", Hours: 12},
	{Code: "6h", Label: "6 hours before", Hours: 6},
	{Code: "2h", Label: "2 hours before", Hours: 2},
	{Code: "1h", Label: "1 hour before", Hours: 1},
	{Code: "30m", Label: "30 minutes before", Hours: 0.5},
}

// ReminderTimeOptions returns the supported lead times in display order.
func ReminderTimeOptions() []ReminderTimeOption {
	options := make([]ReminderTimeOption, len(reminderTimeOptions))
	copy(options, reminderTimeOptions)
	return options
}

// LookupReminderTime resolves a lead-time code. Unknown codes are not an
// error; callers skip them.
func LookupReminderTime(code string) (ReminderTimeOption, bool) {
	for _, option := range reminderTimeOptions {
		if option.Code == code {
			return option, true
		}
	}
	return ReminderTimeOption{}, false
}
