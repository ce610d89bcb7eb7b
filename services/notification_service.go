// services/notification_service.go
package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"mediflow-backend/models"
	"mediflow-backend/utils"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Recipient is anyone a reminder can be addressed to. Patients and doctors
// both satisfy it.
type Recipient interface {
	DisplayName() string
	EmailAddress() string
	PhoneNumber() string
}

// PatientDirectory resolves patient records at scheduling time.
type PatientDirectory interface {
	PatientByID(id uuid.UUID) (*models.Patient, error)
}

// DoctorDirectory resolves doctor records at scheduling time.
type DoctorDirectory interface {
	DoctorByID(id uuid.UUID) (*models.Doctor, error)
}

type gormPatientDirectory struct{ db *gorm.DB }

func (d gormPatientDirectory) PatientByID(id uuid.UUID) (*models.Patient, error) {
	var patient models.Patient
	if err := d.db.First(&patient, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &patient, nil
}

type gormDoctorDirectory struct{ db *gorm.DB }

func (d gormDoctorDirectory) DoctorByID(id uuid.UUID) (*models.Doctor, error) {
	var doctor models.Doctor
	if err := d.db.First(&doctor, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &doctor, nil
}

// NotificationLogRecorder persists one row per delivery attempt.
type NotificationLogRecorder interface {
	Record(entry models.NotificationLog)
}

type gormLogRecorder struct{ db *gorm.DB }

func (r gormLogRecorder) Record(entry models.NotificationLog) {
	if err := r.db.Create(&entry).Error; err != nil {
		logrus.WithError(err).Errorf("Failed to log notification for appointment %s", entry.AppointmentID)
	}
}

// scheduledReminder is one armed trigger. The timer is the cancelable
// handle; stopping it before it fires cancels the dispatch.
type scheduledReminder struct {
	key           string
	appointmentID uuid.UUID
	recipientType RecipientType
	fireAt        time.Time
	methods       []Channel
	timer         *time.Timer
}

// NotificationService owns the reminder templates, the per-channel
// notifiers and the registry of armed reminder timers. Timers live in
// process memory only; a restart drops them, and the daily rearm sweep
// re-creates the ones still in the future.
type NotificationService struct {
	db        *gorm.DB
	patients  PatientDirectory
	doctors   DoctorDirectory
	templates *TemplateStore
	notifiers map[Channel]Notifier
	logs      NotificationLogRecorder
	now       func() time.Time

	mu        sync.Mutex
	reminders map[string]*scheduledReminder
}

// NewNotificationService wires a service against the application database
// and the channel transports configured in the environment.
func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{
		db:        db,
		patients:  gormPatientDirectory{db},
		doctors:   gormDoctorDirectory{db},
		templates: NewTemplateStore(),
		notifiers: NotifiersFromEnv(),
		logs:      gormLogRecorder{db},
		now:       time.Now,
		reminders: make(map[string]*scheduledReminder),
	}
}

func reminderKey(appointmentID uuid.UUID, recipient RecipientType, code string) string {
	return fmt.Sprintf("appointment_%s_%s_%s", appointmentID, recipient, code)
}

func reminderKeyPrefix(appointmentID uuid.UUID) string {
	return fmt.Sprintf("appointment_%s_", appointmentID)
}

// ScheduleReminders arms one timer per configured (recipient, offset) pair
// of the appointment. It is best-effort: a failed patient or doctor lookup
// returns false without touching already-armed reminders, and must never
// block the appointment save that triggered it. Re-scheduling the same
// appointment replaces its pending timers key by key instead of
// duplicating them.
func (s *NotificationService) ScheduleReminders(appointment models.Appointment) bool {
	patient, err := s.patients.PatientByID(appointment.PatientID)
	if err != nil {
		logrus.WithError(err).Errorf("Failed to schedule reminders: patient %s lookup failed", appointment.PatientID)
		return false
	}
	doctor, err := s.doctors.DoctorByID(appointment.DoctorID)
	if err != nil {
		logrus.WithError(err).Errorf("Failed to schedule reminders: doctor %s lookup failed", appointment.DoctorID)
		return false
	}

	when, err := utils.CombineDateTime(appointment.Date, appointment.Time)
	if err != nil {
		logrus.WithError(err).Errorf("Failed to schedule reminders for appointment %s", appointment.ID)
		return false
	}

	settings := appointment.ReminderSettings

	// Email is the default only when methods were never configured. An
	// explicit empty list, or one filtered down to nothing, arms reminders
	// that deliver over no channel.
	methods := toChannels(settings.NotificationMethods)
	if settings.NotificationMethods == nil {
		methods = []Channel{ChannelEmail}
	}
	s.armOffsets(appointment, RecipientPatient, patient, doctor, settings.PatientReminders, methods, when)

	// Doctors get email-only reminders regardless of the configured methods.
	s.armOffsets(appointment, RecipientDoctor, patient, doctor, settings.DoctorReminders, []Channel{ChannelEmail}, when)

	return true
}

func (s *NotificationService) armOffsets(appointment models.Appointment, recipientType RecipientType,
	patient *models.Patient, doctor *models.Doctor, codes []string, methods []Channel, when time.Time) {

	for _, code := range codes {
		option, ok := LookupReminderTime(code)
		if !ok {
			logrus.Debugf("Unknown reminder offset %q on appointment %s, skipping", code, appointment.ID)
			continue
		}
		fireAt := when.Add(-option.LeadTime())
		if !fireAt.After(s.now()) {
			// Past-due offsets are dropped, never sent immediately.
			continue
		}
		s.arm(reminderKey(appointment.ID, recipientType, code), appointment, recipientType, patient, doctor, methods, fireAt)
	}
}

func (s *NotificationService) arm(key string, appointment models.Appointment, recipientType RecipientType,
	patient *models.Patient, doctor *models.Doctor, methods []Channel, fireAt time.Time) {

	delay := fireAt.Sub(s.now())

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.reminders[key]; ok {
		existing.timer.Stop()
	}

	reminder := &scheduledReminder{
		key:           key,
		appointmentID: appointment.ID,
		recipientType: recipientType,
		fireAt:        fireAt,
		methods:       methods,
	}
	// The closure captures the records as they are now; later edits to the
	// patient or doctor do not change in-flight reminder content.
	reminder.timer = time.AfterFunc(delay, func() {
		s.fire(key, appointment, recipientType, *patient, *doctor, methods)
	})
	s.reminders[key] = reminder

	logrus.WithFields(logrus.Fields{
		"key":     key,
		"fire_at": fireAt.Format(time.RFC3339),
	}).Info("Reminder armed")
}

// fire runs on the timer goroutine. Every failure is absorbed here; nothing
// may crash the process or affect other armed reminders.
func (s *NotificationService) fire(key string, appointment models.Appointment, recipientType RecipientType,
	patient models.Patient, doctor models.Doctor, methods []Channel) {

	defer func() {
		if r := recover(); r != nil {
			logrus.Errorf("Reminder dispatch panic for %s: %v", key, r)
		}
	}()

	s.mu.Lock()
	delete(s.reminders, key)
	s.mu.Unlock()

	var recipient Recipient = patient
	if recipientType == RecipientDoctor {
		recipient = doctor
	}

	variables := notificationVariables(appointment, patient, doctor)

	for _, channel := range methods {
		s.sendOne(appointment, recipientType, recipient, channel, variables)
	}
}

// sendOne attempts a single (recipient, channel) delivery. Failure of one
// channel never cancels the others.
func (s *NotificationService) sendOne(appointment models.Appointment, recipientType RecipientType,
	recipient Recipient, channel Channel, variables map[string]string) {

	address := addressFor(recipient, channel)
	if address == "" {
		s.recordOutcome(appointment, recipientType, channel, "", "", "skipped", "no address for channel")
		return
	}

	template := s.templates.Get(recipientType, channel)
	if template == nil {
		logrus.Warnf("No template for %s/%s, skipping send", recipientType, channel)
		s.recordOutcome(appointment, recipientType, channel, address, "", "skipped", "no template")
		return
	}

	notifier, ok := s.notifiers[channel]
	if !ok {
		logrus.Warnf("No notifier for channel %s, skipping send", channel)
		s.recordOutcome(appointment, recipientType, channel, address, "", "skipped", "no notifier")
		return
	}

	msg := Message{
		Subject: RenderTemplate(template.Subject, variables),
		Body:    RenderTemplate(template.Body, variables),
	}

	if err := notifier.Send(context.Background(), address, msg); err != nil {
		logrus.WithError(err).Errorf("Failed to send %s reminder to %s", channel, address)
		s.recordOutcome(appointment, recipientType, channel, address, msg.Body, "failed", err.Error())
		return
	}
	s.recordOutcome(appointment, recipientType, channel, address, msg.Body, "sent", "")
}

func (s *NotificationService) recordOutcome(appointment models.Appointment, recipientType RecipientType,
	channel Channel, address, message, status, detail string) {

	if s.logs == nil {
		return
	}

	s.logs.Record(models.NotificationLog{
		ClinicID:      appointment.ClinicID,
		AppointmentID: appointment.ID,
		RecipientType: string(recipientType),
		Channel:       string(channel),
		Address:       address,
		Message:       message,
		Status:        status,
		ErrorMessage:  detail,
		SentAt:        s.now(),
	})
}

// CancelReminders stops and removes every armed reminder belonging to the
// appointment. Canceling an appointment with no armed reminders is a no-op,
// not an error; once this returns no future dispatch for the appointment
// can start.
func (s *NotificationService) CancelReminders(appointmentID uuid.UUID) bool {
	prefix := reminderKeyPrefix(appointmentID)

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, reminder := range s.reminders {
		if strings.HasPrefix(key, prefix) {
			reminder.timer.Stop()
			delete(s.reminders, key)
		}
	}
	return true
}

// GetTemplate returns the template for the slot, or nil if unknown.
func (s *NotificationService) GetTemplate(recipient RecipientType, channel Channel) *MessageTemplate {
	return s.templates.Get(recipient, channel)
}

// UpdateTemplate replaces the template for a known slot.
func (s *NotificationService) UpdateTemplate(recipient RecipientType, channel Channel, template MessageTemplate) bool {
	return s.templates.Update(recipient, channel, template)
}

// TestNotification renders and sends one message immediately, bypassing
// scheduling. Used by staff to verify channel and template configuration.
func (s *NotificationService) TestNotification(recipient RecipientType, channel Channel, address string, variables map[string]string) bool {
	template := s.templates.Get(recipient, channel)
	if template == nil {
		logrus.Warnf("Test notification: no template for %s/%s", recipient, channel)
		return false
	}
	notifier, ok := s.notifiers[channel]
	if !ok {
		logrus.Warnf("Test notification: no notifier for channel %s", channel)
		return false
	}

	msg := Message{
		Subject: RenderTemplate(template.Subject, variables),
		Body:    RenderTemplate(template.Body, variables),
	}
	if err := notifier.Send(context.Background(), address, msg); err != nil {
		logrus.WithError(err).Errorf("Test notification to %s failed", address)
		return false
	}
	return true
}

// ArmedReminderKeys lists the keys of all armed reminders, sorted.
func (s *NotificationService) ArmedReminderKeys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]string, 0, len(s.reminders))
	for key := range s.reminders {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// RearmUpcoming re-arms reminders for appointments in the next 48 hours.
// Scheduling is keyed, so running this repeatedly never duplicates timers.
func (s *NotificationService) RearmUpcoming() {
	if s.db == nil {
		return
	}

	now := s.now()
	var appointments []models.Appointment
	err := s.db.
		Where("date >= ? AND date <= ? AND status IN ?",
			utils.BeginningOfDay(now), now.Add(48*time.Hour), []string{"scheduled", "confirmed"}).
		Find(&appointments).Error
	if err != nil {
		logrus.WithError(err).Error("Failed to fetch upcoming appointments for rearm")
		return
	}

	rearmed := 0
	for _, appointment := range appointments {
		if appointment.ReminderSettings.Empty() {
			continue
		}
		if s.ScheduleReminders(appointment) {
			rearmed++
		}
	}
	logrus.Infof("Reminder rearm sweep completed: %d of %d upcoming appointments", rearmed, len(appointments))
}

// StartScheduler runs the rearm sweep now and again every day at 6 AM.
func (s *NotificationService) StartScheduler() {
	c := cron.New()

	s.RearmUpcoming()

	if _, err := c.AddFunc("0 6 * * *", s.RearmUpcoming); err != nil {
		logrus.WithError(err).Error("Failed to register rearm cron job")
		return
	}

	c.Start()
	logrus.Info("Reminder scheduler started")
}

func toChannels(codes []string) []Channel {
	var channels []Channel
	for _, code := range codes {
		switch Channel(code) {
		case ChannelEmail, ChannelSMS:
			channels = append(channels, Channel(code))
		default:
			logrus.Debugf("Unknown notification method %q, skipping", code)
		}
	}
	return channels
}

func addressFor(recipient Recipient, channel Channel) string {
	switch channel {
	case ChannelEmail:
		return recipient.EmailAddress()
	case ChannelSMS:
		return recipient.PhoneNumber()
	}
	return ""
}

func notificationVariables(appointment models.Appointment, patient models.Patient, doctor models.Doctor) map[string]string {
	phone := patient.Phone
	if phone == "" {
		phone = "N/A"
	}
	return map[string]string{
		"patientName":  patient.Name,
		"doctorName":   doctor.Name,
		"date":         appointment.Date.Format("January 2, 2006"),
		"time":         appointment.Time,
		"reason":       appointment.Reason,
		"patientPhone": phone,
	}
}
