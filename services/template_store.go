// services/template_store.go
package services

import "sync"

// RecipientType selects which template set applies to a reminder.
type RecipientType string

const (
	RecipientPatient RecipientType = "patient"
	RecipientDoctor  RecipientType = "doctor"
)

// Channel is a delivery medium for notifications.
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
)

// MessageTemplate holds the template text for one (recipient, channel) slot.
// SMS templates carry only a body.
type MessageTemplate struct {
	Subject string `json:"subject,omitempty"`
	Body    string `json:"body"`
}

type templateKey struct {
	recipient RecipientType
	channel   Channel
}

// TemplateStore holds the reminder templates for the four known
// (recipient, channel) slots. Placeholder syntax is not validated on
// update; malformed placeholders are left verbatim at render time.
type TemplateStore struct {
	mu        sync.RWMutex
	templates map[templateKey]MessageTemplate
}

// NewTemplateStore returns a store pre-seeded with the default clinic
// reminder templates.
func NewTemplateStore() *TemplateStore {
	return &TemplateStore{
		templates: map[templateKey]MessageTemplate{
			{RecipientPatient, ChannelEmail}: {
				Subject: "Appointment Reminder - {doctorName}",
				Body: `Dear {patientName},

This is a reminder that you have an appointment scheduled with {doctorName} on {date} at {time}.

Appointment Details:
- Doctor: {doctorName}
- Date: {date}
- Time: {time}
- Reason: {reason}
- Location: MediFlow Pro Clinic

Please arrive 15 minutes early for check-in.

If you need to reschedule or cancel, please contact us as soon as possible.

Best regards,
MediFlow Pro Team`,
			},
			{RecipientPatient, ChannelSMS}: {
				Body: "Reminder: Appointment with {doctorName} on {date} at {time}. Reason: {reason}. Please arrive 15 mins early. MediFlow Pro",
			},
			{RecipientDoctor, ChannelEmail}: {
				Subject: "Patient Appointment Reminder - {patientName}",
				Body: `Dear Dr. {doctorName},

You have an upcoming appointment with {patientName} on {date} at {time}.

Patient Details:
- Name: {patientName}
- Date: {date}
- Time: {time}
- Reason: {reason}
- Contact: {patientPhone}

Please review the patient's medical history if needed.

Best regards,
MediFlow Pro System`,
			},
			{RecipientDoctor, ChannelSMS}: {
				Body: "Appointment reminder: {patientName} on {date} at {time}. Reason: {reason}. MediFlow Pro",
			},
		},
	}
}

// Get returns a copy of the template for the slot, or nil if the
// (recipient, channel) pair is unknown.
func (s *TemplateStore) Get(recipient RecipientType, channel Channel) *MessageTemplate {
	s.mu.RLock()
	defer s.mu.RUnlock()

	template, ok := s.templates[templateKey{recipient, channel}]
	if !ok {
		return nil
	}
	return &template
}

// Update replaces the template for a known slot. Returns false for unknown
// (recipient, channel) pairs; unknown slots are a no-op, not an error.
func (s *TemplateStore) Update(recipient RecipientType, channel Channel, template MessageTemplate) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := templateKey{recipient, channel}
	if _, ok := s.templates[key]; !ok {
		return false
	}
	s.templates[key] = template
	return true
}
